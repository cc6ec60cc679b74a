package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Feed    FeedConfig    `yaml:"feed"`
	Synth   SynthConfig   `yaml:"synth"`
	Insight InsightConfig `yaml:"insight"`
	Log     LogConfig     `yaml:"log"`
}

type ServerConfig struct {
	Address         string        `yaml:"address"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type FeedConfig struct {
	Interval    time.Duration `yaml:"interval"`
	Capacity    int           `yaml:"capacity"`
	InitialSize int           `yaml:"initial_size"`
	RefreshSize int           `yaml:"refresh_size"`
	LogSize     int           `yaml:"log_size"`
}

type SynthConfig struct {
	AwardProbability float64 `yaml:"award_probability"`
	Seed             uint64  `yaml:"seed"`
}

type InsightConfig struct {
	Model         string        `yaml:"model"`
	APIKey        string        `yaml:"-"`
	SampleSize    int           `yaml:"sample_size"`
	MaxAttempts   int           `yaml:"max_attempts"`
	BaseDelay     time.Duration `yaml:"base_delay"`
	MaxJitter     time.Duration `yaml:"max_jitter"`
	RatePerMinute int           `yaml:"rate_per_minute"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// Default значения, с которыми сервис работает без файла конфигурации
func Default() Config {
	return Config{
		Server: ServerConfig{
			Address:         "0.0.0.0:8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Feed: FeedConfig{
			Interval:    15 * time.Second,
			Capacity:    500,
			InitialSize: 120,
			RefreshSize: 150,
			LogSize:     10,
		},
		Synth: SynthConfig{AwardProbability: 0.6},
		Insight: InsightConfig{
			Model:         "gemini-3-flash-preview",
			SampleSize:    5,
			MaxAttempts:   3,
			BaseDelay:     3 * time.Second,
			MaxJitter:     time.Second,
			RatePerMinute: 30,
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 14,
		},
	}
}

// LoadEnv подхватывает .env, если он есть
func LoadEnv(files ...string) error {
	err := godotenv.Load(files...)
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// LoadConfig пустой путь или отсутствующий файл дают значения по умолчанию
func LoadConfig(path string) (*Config, error) {
	config := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &config); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	applyEnv(&config)

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &config, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("SERVER_ADDRESS"); v != "" {
		cfg.Server.Address = strings.TrimSpace(v)
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = strings.TrimSpace(v)
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.Insight.APIKey = strings.TrimSpace(v)
	} else if v := os.Getenv("API_KEY"); v != "" {
		cfg.Insight.APIKey = strings.TrimSpace(v)
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Address == "" {
		return fmt.Errorf("server.address is required")
	}
	if cfg.Feed.Interval <= 0 {
		return fmt.Errorf("feed.interval must be greater than 0")
	}
	if cfg.Feed.Capacity <= 0 {
		return fmt.Errorf("feed.capacity must be greater than 0")
	}
	if cfg.Feed.InitialSize < 0 || cfg.Feed.RefreshSize < 0 {
		return fmt.Errorf("feed.initial_size and feed.refresh_size must not be negative")
	}
	if cfg.Feed.LogSize <= 0 {
		return fmt.Errorf("feed.log_size must be greater than 0")
	}
	if cfg.Synth.AwardProbability < 0 || cfg.Synth.AwardProbability > 1 {
		return fmt.Errorf("synth.award_probability must be within [0, 1]")
	}
	if cfg.Insight.SampleSize <= 0 || cfg.Insight.SampleSize > 10 {
		return fmt.Errorf("insight.sample_size must be within [1, 10]")
	}
	if cfg.Insight.MaxAttempts <= 0 {
		return fmt.Errorf("insight.max_attempts must be greater than 0")
	}
	if cfg.Insight.BaseDelay < 0 || cfg.Insight.MaxJitter < 0 {
		return fmt.Errorf("insight delays must not be negative")
	}
	return nil
}
