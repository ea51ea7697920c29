package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMemeConfigFromEnv(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "tok")
	t.Setenv("MEME_GROUP_ID", "100")
	t.Setenv("MEME_CHANNEL_ID", "200")
	t.Setenv("MEME_N_VOTES", "3")
	t.Setenv("MEME_RESET_ON_LOAD", "yes")
	t.Setenv("GATEWAY_TIMEOUT", "3s")
	t.Setenv("CONVERSATION_TTL", "not-a-duration")

	cfg := LoadMemeConfig(nil)
	assert.Equal(t, "tok", cfg.Token)
	assert.Equal(t, "100", cfg.ReviewChannelID)
	assert.Equal(t, "200", cfg.PublicChannelID)
	assert.Equal(t, 3, cfg.Quorum)
	assert.True(t, cfg.ResetOnLoad)
	assert.Equal(t, 3*time.Second, cfg.GatewayTimeout)
	assert.Equal(t, 30*time.Minute, cfg.ConversationTTL)
	require.NoError(t, cfg.Validate())
}

func TestLoadMemeConfigBadQuorumFallsBack(t *testing.T) {
	t.Setenv("MEME_N_VOTES", "0")
	assert.Equal(t, 2, LoadMemeConfig(nil).Quorum)
}

func TestValidateReportsMissingFields(t *testing.T) {
	err := MemeConfig{Quorum: 0}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "discord_token")
	assert.Contains(t, err.Error(), "meme_group_id")
	assert.Contains(t, err.Error(), "meme_n_votes")
}

func TestParseBoolDefault(t *testing.T) {
	assert.True(t, parseBoolDefault("ON", false))
	assert.False(t, parseBoolDefault("off", true))
	assert.True(t, parseBoolDefault("maybe", true))
}

func TestLoadAPIConfigOrigins(t *testing.T) {
	t.Setenv("API_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	cfg := LoadAPIConfig(nil)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, ":8080", cfg.Addr)
}
