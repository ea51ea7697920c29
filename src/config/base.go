package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/TendTo/MemeBot/src/data"
	"gorm.io/gorm"
)

// Base contains common configuration fields
type Base struct {
	Token   string
	GuildID string
	DSN     string
}

// LoadBase loads common configuration (discord token, guild ID, database DSN)
func LoadBase(db *gorm.DB) Base {
	if db != nil {
		// A missing settings table is fine, env fallbacks cover it.
		_ = data.LoadSettings(db)
	}

	dsn, _ := data.GetDSN()

	return Base{
		Token:   GetSetting("discord_token", "DISCORD_TOKEN", ""),
		GuildID: GetSetting("guild_id", "GUILD_ID", ""),
		DSN:     dsn,
	}
}

// GetSetting retrieves a setting with env fallback
func GetSetting(name, envKey, defaultValue string) string {
	val := data.GetSetting(name)
	if val == "" && envKey != "" {
		val = os.Getenv(envKey)
	}
	if val == "" {
		val = defaultValue
	}
	return strings.TrimSpace(val)
}

func getBoolSetting(settingKey, envKey string, defaultValue bool) bool {
	return parseBoolDefault(GetSetting(settingKey, envKey, ""), defaultValue)
}

func getIntSetting(settingKey, envKey string, defaultValue int) int {
	raw := GetSetting(settingKey, envKey, "")
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return n
}

func getFloatSetting(settingKey, envKey string, defaultValue float64) float64 {
	raw := GetSetting(settingKey, envKey, "")
	if raw == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return defaultValue
	}
	return f
}

func getDurationSetting(settingKey, envKey string, defaultValue time.Duration) time.Duration {
	raw := GetSetting(settingKey, envKey, "")
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}

func parseBoolDefault(value string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func parseCSV(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == '|' || r == ' '
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if trimmed := strings.TrimSpace(f); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
