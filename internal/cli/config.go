package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/insurebook/internal/logging"
	"github.com/mesh-intelligence/insurebook/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	envPrefix = "INSUREBOOK"
)

// Config is the content of config.yaml.
type Config struct {
	Backend string    `mapstructure:"backend" yaml:"backend" validate:"required,oneof=json sqlite"`
	DataDir string    `mapstructure:"data_dir" yaml:"data_dir,omitempty"`
	Log     LogConfig `mapstructure:"log" yaml:"log"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string        `mapstructure:"level" yaml:"level" validate:"oneof=debug info warn error"`
	Format string        `mapstructure:"format" yaml:"format" validate:"oneof=json text pretty"`
	File   LogFileConfig `mapstructure:"file" yaml:"file"`
}

// LogFileConfig configures the rotating log file.
type LogFileConfig struct {
	Enabled    bool   `mapstructure:"enabled" yaml:"enabled"`
	Path       string `mapstructure:"path" yaml:"path,omitempty" validate:"required_if=Enabled true"`
	MaxSize    int    `mapstructure:"max_size" yaml:"max_size" validate:"gte=0"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups" validate:"gte=0"`
	MaxAge     int    `mapstructure:"max_age" yaml:"max_age" validate:"gte=0"`
}

func (c LogConfig) toLogging() logging.Config {
	return logging.Config{
		Level:  c.Level,
		Format: c.Format,
		File: logging.FileConfig{
			Enabled:    c.File.Enabled,
			Path:       c.File.Path,
			MaxSizeMB:  c.File.MaxSize,
			MaxBackups: c.File.MaxBackups,
			MaxAgeDays: c.File.MaxAge,
		},
	}
}

func defaultConfig() Config {
	return Config{
		Backend: types.BackendJSON,
		Log: LogConfig{
			Level:  "warn",
			Format: logging.FormatText,
			File:   LogFileConfig{MaxSize: 10, MaxBackups: 3, MaxAge: 28},
		},
	}
}

var configValidator = validator.New(validator.WithRequiredStructEnabled())

// loadConfig reads config.yaml from configDir using Viper, applying defaults
// and INSUREBOOK_ environment overrides. A missing config.yaml is not an
// error.
func loadConfig(configDir string) (Config, error) {
	def := defaultConfig()

	v := viper.New()
	v.SetDefault("backend", def.Backend)
	v.SetDefault("data_dir", def.DataDir)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)
	v.SetDefault("log.file.enabled", def.Log.File.Enabled)
	v.SetDefault("log.file.path", def.Log.File.Path)
	v.SetDefault("log.file.max_size", def.Log.File.MaxSize)
	v.SetDefault("log.file.max_backups", def.Log.File.MaxBackups)
	v.SetDefault("log.file.max_age", def.Log.File.MaxAge)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, userErrorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, userErrorf("parse config: %w", err)
	}
	if err := configValidator.Struct(cfg); err != nil {
		return Config{}, userErrorf("invalid config %s: %w", filepath.Join(configDir, configFileExt), err)
	}
	return cfg, nil
}

// writeConfigIfMissing creates config.yaml with default values if the file
// does not exist. If it already exists, the function returns false, nil.
func writeConfigIfMissing(configDir, dataDir string) (bool, error) {
	path := filepath.Join(configDir, configFileExt)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	cfg := defaultConfig()
	cfg.DataDir = dataDir
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, err
	}
	return true, nil
}
