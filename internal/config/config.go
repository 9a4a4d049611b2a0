package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"
)

type Config struct {
	Env          string        `yaml:"env" env:"TASKMASTER_ENV" env-default:"prod"`
	DataDir      string        `yaml:"data_dir" env:"TASKMASTER_DATA_DIR"`
	ScanInterval time.Duration `yaml:"scan_interval" env:"TASKMASTER_SCAN_INTERVAL" env-default:"10s"`
	UrgentWindow time.Duration `yaml:"urgent_window" env:"TASKMASTER_URGENT_WINDOW" env-default:"1h"`
	Mute         bool          `yaml:"mute" env:"TASKMASTER_MUTE"`
	LogLevel     string        `yaml:"log_level" env:"TASKMASTER_LOG_LEVEL" env-default:"info"`
	LogFile      string        `yaml:"log_file" env:"TASKMASTER_LOG_FILE"`
}

// Read loads the config file at path (yaml, json, toml or env), with
// environment variables taking precedence. An empty path reads only the
// environment.
func Read(path string) (*Config, error) {
	cfg := new(Config)
	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, cfg)
	} else {
		err = cleanenv.ReadEnv(cfg)
	}
	if err != nil {
		return nil, err
	}
	if cfg.DataDir == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve data dir: %w", err)
		}
		cfg.DataDir = filepath.Join(dir, "taskmaster")
	}
	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	switch c.Env {
	case EnvDev, EnvProd, EnvLocal:
	default:
		return fmt.Errorf("unknown env: %s", c.Env)
	}
	if c.ScanInterval <= 0 {
		return errors.New("scan interval must be positive")
	}
	if c.UrgentWindow <= 0 {
		return errors.New("urgent window must be positive")
	}
	return nil
}

// Usage describes every environment variable, for -h output
func Usage() string {
	s, err := cleanenv.GetDescription(&Config{}, nil)
	if err != nil {
		return ""
	}
	return s
}
