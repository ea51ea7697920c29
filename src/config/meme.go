package config

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"
)

// MemeConfig holds the moderation bot configuration.
type MemeConfig struct {
	Base
	// ReviewChannelID is where moderators vote (the admin group).
	ReviewChannelID string
	// PublicChannelID is where approved posts land.
	PublicChannelID  string
	Quorum           int
	ModeratorRoleID  string
	ResetOnLoad      bool
	RedisURL         string
	ConversationTTL  time.Duration
	GatewayTimeout   time.Duration
	InteractionRPS   float64
	InteractionBurst int
	LogMessages      bool
	Enabled          bool
}

// LoadMemeConfig loads the moderation bot configuration.
func LoadMemeConfig(db *gorm.DB) MemeConfig {
	base := LoadBase(db)

	quorum := getIntSetting("meme_n_votes", "MEME_N_VOTES", 2)
	if quorum < 1 {
		quorum = 2
	}

	return MemeConfig{
		Base:             base,
		ReviewChannelID:  GetSetting("meme_group_id", "MEME_GROUP_ID", ""),
		PublicChannelID:  GetSetting("meme_channel_id", "MEME_CHANNEL_ID", ""),
		Quorum:           quorum,
		ModeratorRoleID:  GetSetting("moderator_role_id", "MODERATOR_ROLE_ID", ""),
		ResetOnLoad:      getBoolSetting("meme_reset_on_load", "MEME_RESET_ON_LOAD", false),
		RedisURL:         GetSetting("redis_url", "REDIS_URL", ""),
		ConversationTTL:  getDurationSetting("conversation_ttl", "CONVERSATION_TTL", 30*time.Minute),
		GatewayTimeout:   getDurationSetting("gateway_timeout", "GATEWAY_TIMEOUT", 10*time.Second),
		InteractionRPS:   getFloatSetting("interaction_rps", "INTERACTION_RPS", 2),
		InteractionBurst: getIntSetting("interaction_burst", "INTERACTION_BURST", 5),
		LogMessages:      getBoolSetting("debug_log_messages", "DEBUG_LOG_MESSAGES", false),
		Enabled:          getBoolSetting("enable_meme", "ENABLE_MEME", true),
	}
}

// Validate reports configuration that would keep the bot from working.
func (c MemeConfig) Validate() error {
	var errs []error
	if c.Token == "" {
		errs = append(errs, errors.New("discord_token is not set"))
	}
	if _, err := strconv.ParseInt(c.ReviewChannelID, 10, 64); err != nil {
		errs = append(errs, fmt.Errorf("meme_group_id %q is not a channel id", c.ReviewChannelID))
	}
	if _, err := strconv.ParseInt(c.PublicChannelID, 10, 64); err != nil {
		errs = append(errs, fmt.Errorf("meme_channel_id %q is not a channel id", c.PublicChannelID))
	}
	if c.Quorum < 1 {
		errs = append(errs, fmt.Errorf("meme_n_votes must be at least 1, got %d", c.Quorum))
	}
	return errors.Join(errs...)
}

// APIConfig holds the ops HTTP API configuration.
type APIConfig struct {
	Addr           string
	JWTSecret      string
	AllowedOrigins []string
	Enabled        bool
}

// LoadAPIConfig loads the ops HTTP API configuration.
func LoadAPIConfig(db *gorm.DB) APIConfig {
	if db != nil {
		_ = LoadBase(db)
	}
	return APIConfig{
		Addr:           GetSetting("api_addr", "API_ADDR", ":8080"),
		JWTSecret:      GetSetting("jwt_secret", "JWT_SECRET", ""),
		AllowedOrigins: parseCSV(GetSetting("api_allowed_origins", "API_ALLOWED_ORIGINS", "")),
		Enabled:        getBoolSetting("enable_api", "ENABLE_API", true),
	}
}
