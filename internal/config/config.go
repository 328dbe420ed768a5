package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/diegoclair/vigil-bot/internal/domain"
	"github.com/diegoclair/vigil-bot/internal/domain/contest"
	"gopkg.in/yaml.v3"
)

type Config struct {
	SlackBotToken      string
	SlackSigningSecret string
	DatabasePath       string
	Port               string
	ConfigPath         string
	LogLevel           string
	LogFormat          string
	NatsURL            string
	NatsSubjectPrefix  string
	TickSpec           string
	TickWorkers        int

	// Bot is read from the YAML file at ConfigPath
	Bot BotConfig
}

// BotConfig holds the settings that do not fit in environment variables
type BotConfig struct {
	Admins   []string      `yaml:"admins"`
	Defaults GroupDefaults `yaml:"defaults"`
}

// GroupDefaults is applied to every newly set up group
type GroupDefaults struct {
	Timezone             string `yaml:"timezone"`
	Mode                 string `yaml:"mode"`
	Deadline             int    `yaml:"deadline"`
	StartHour            int    `yaml:"start_hour"`
	StopHour             int    `yaml:"stop_hour"`
	DelayWinnerBroadcast bool   `yaml:"delay_winner_broadcast"`
	TitleTemplate        string `yaml:"title_template"`
	BroadcastStatus      bool   `yaml:"broadcast_status"`
	BroadcastWinner      bool   `yaml:"broadcast_winner"`
}

func defaultBotConfig() BotConfig {
	cfg := contest.DefaultConfig()
	return BotConfig{
		Defaults: GroupDefaults{
			Timezone:        "UTC",
			Mode:            cfg.Mode.String(),
			Deadline:        cfg.Deadline,
			StartHour:       cfg.StartHour,
			StopHour:        cfg.StopHour,
			TitleTemplate:   domain.DefaultTitleTemplate,
			BroadcastStatus: true,
			BroadcastWinner: true,
		},
	}
}

func Load() (*Config, error) {
	cfg := &Config{
		SlackBotToken:      getEnv("SLACK_BOT_TOKEN", ""),
		SlackSigningSecret: getEnv("SLACK_SIGNING_SECRET", ""),
		DatabasePath:       getEnv("DATABASE_PATH", "./vigil.db"),
		Port:               getEnv("PORT", "3000"),
		ConfigPath:         getEnv("CONFIG_PATH", ""),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "json"),
		NatsURL:            getEnv("NATS_URL", ""),
		NatsSubjectPrefix:  getEnv("NATS_SUBJECT_PREFIX", "vigil"),
		TickSpec:           getEnv("TICK_SPEC", "* * * * *"),
		TickWorkers:        getEnvAsInt("TICK_WORKERS", 4),
		Bot:                defaultBotConfig(),
	}

	if cfg.ConfigPath != "" {
		bot, err := loadBotConfig(cfg.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg.Bot = *bot
	}

	if _, err := cfg.Bot.Defaults.Contest(); err != nil {
		return nil, fmt.Errorf("invalid group defaults: %w", err)
	}

	return cfg, nil
}

// loadBotConfig reads the YAML file on top of the built-in defaults, so keys
// missing from the file keep their default value
func loadBotConfig(path string) (*BotConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	bot := defaultBotConfig()
	if err := yaml.Unmarshal(data, &bot); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &bot, nil
}

// Contest converts the defaults into a validated contest configuration
func (d GroupDefaults) Contest() (contest.Config, error) {
	mode, err := contest.ParseMode(d.Mode)
	if err != nil {
		return contest.Config{}, err
	}

	cfg := contest.Config{
		Mode:           mode,
		Deadline:       d.Deadline,
		StartHour:      d.StartHour,
		StopHour:       d.StopHour,
		DelayBroadcast: d.DelayWinnerBroadcast,
	}
	if err := cfg.Validate(); err != nil {
		return contest.Config{}, err
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
