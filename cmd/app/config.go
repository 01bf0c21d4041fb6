package main

import (
	"fmt"
	"strings"

	"treasure_hunter_bot/internal/repository"
	"treasure_hunter_bot/internal/service"
	"treasure_hunter_bot/internal/worker"

	"github.com/spf13/viper"
)

const (
	configPath   = "./"
	configName   = "config"
	configFormat = "yaml"
)

type Config struct {
	Database repository.Config `yaml:"database"`
	Server   ServerConfig      `yaml:"server"`
	Redis    RedisConfig       `yaml:"redis"`

	TelegramAuth TelegramAuthConfig `yaml:"telegramAuth"`

	RateLimit    RateLimitConfig       `yaml:"rateLimit"`
	Scoring      service.ScoreConfig   `yaml:"scoring"`
	Snapshot     worker.SnapshotConfig `yaml:"snapshot"`
	Achievements AchievementsConfig    `yaml:"achievements"`

	LogLevel string `yaml:"logLevel"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type TelegramAuthConfig struct {
	TelegramBotToken string `yaml:"telegramBotToken"`
	DebugMode        bool   `yaml:"debugMode"`
}

type RateLimitConfig struct {
	MaxRequestsPerMinute int `yaml:"maxRequestsPerMinute"`
}

type AchievementsConfig struct {
	// CatalogFile optionally overrides the built-in achievement catalog with
	// a JSON file.
	CatalogFile string `yaml:"catalogFile"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(configName)
	viper.AddConfigPath(configPath)
	viper.SetConfigType(configFormat)

	viper.AutomaticEnv()
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.RateLimit.MaxRequestsPerMinute <= 0 {
		cfg.RateLimit.MaxRequestsPerMinute = 10
	}
	if len(cfg.Scoring.BasePoints) == 0 {
		cfg.Scoring = service.DefaultScoreConfig()
	}

	return &cfg, nil
}
