package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/fxelysrism/a-map-of-us-bot/internal/core/domain"
)

// Defaults for the fixed constants of the deployment. Each has an env
// override so variant deployments are configuration, not code paths.
const (
	DefaultAPIBase        = "https://api.amapof.us/mous"
	DefaultDailyChannelID = "1466859419781435392"
	DefaultTimezone       = "Europe/London"
	DefaultStateFile      = "daily_post.json"
	DefaultStatusText     = "Exploring The Map 🌎"
)

// ErrMissingToken is the one fatal configuration error: without a bot
// token the process cannot do anything.
var ErrMissingToken = errors.New("missing env: DISCORD_BOT_TOKEN")

// Config is built once at startup and treated as immutable afterwards.
// The rule maps are process-lifetime configuration, empty by default.
type Config struct {
	Token          string
	GuildID        string
	APIBase        string
	DailyChannelID string
	Timezone       string
	StateFile      string
	DatabaseURL    string
	HealthPort     string
	StatusText     string

	ReactionRoles     domain.ReactionRoles
	AutoReactChannels domain.AutoReactChannels
	AutoReactKeywords domain.AutoReactKeywords
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Token:          strings.TrimSpace(os.Getenv("DISCORD_BOT_TOKEN")),
		GuildID:        strings.TrimSpace(os.Getenv("DISCORD_GUILD_ID")),
		APIBase:        getenv("MOUS_API_BASE", DefaultAPIBase),
		DailyChannelID: getenv("DAILY_CHANNEL_ID", DefaultDailyChannelID),
		Timezone:       getenv("DAILY_TIMEZONE", DefaultTimezone),
		StateFile:      getenv("DAILY_STATE_FILE", DefaultStateFile),
		DatabaseURL:    strings.TrimSpace(os.Getenv("DATABASE_URL")),
		HealthPort:     strings.TrimSpace(os.Getenv("PORT")),
		StatusText:     getenv("STATUS_TEXT", DefaultStatusText),

		ReactionRoles:     domain.ReactionRoles{},
		AutoReactChannels: domain.AutoReactChannels{},
		AutoReactKeywords: domain.AutoReactKeywords{},
	}

	if cfg.Token == "" {
		return Config{}, ErrMissingToken
	}
	return cfg, nil
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}
