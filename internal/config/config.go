// Package config resolves where the backing file lives and how output looks.
// Precedence: flags > TASKS_* environment > config.yaml > defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	EnvPrefix       = "TASKS"
	DefaultFileName = "tasks.json"
	appDirName      = "tasks"
)

// Keys shared with the flag bindings in the cli package.
const (
	KeyFile     = "file"
	KeyTheme    = "theme"
	KeyLogLevel = "log_level"
	KeyVerbose  = "verbose"
	KeyNoColor  = "no_color"
	KeyConfig   = "config"
)

type Config struct {
	File     string `mapstructure:"file" validate:"required"`
	Theme    string `mapstructure:"theme" validate:"oneof=classic neon mono"`
	LogLevel string `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	Verbose  bool   `mapstructure:"verbose"`
	NoColor  bool   `mapstructure:"no_color"`
}

var validate = validator.New()

// New returns a viper instance with defaults and environment lookup wired.
// Callers bind flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyFile, "")
	v.SetDefault(KeyTheme, "classic")
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyVerbose, false)
	v.SetDefault(KeyNoColor, false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the optional config file, decodes and validates the result.
func Load(v *viper.Viper) (*Config, error) {
	if explicit := v.GetString(KeyConfig); explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, appDirName))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Verbose {
		cfg.LogLevel = "debug"
	}
	cfg.Theme = strings.ToLower(cfg.Theme)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	path, err := resolveFile(cfg.File)
	if err != nil {
		return nil, err
	}
	cfg.File = path

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate flattens validator errors into one readable line.
func Validate(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		if e.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: must be %s %s (got %q)", strings.ToLower(e.Field()), e.Tag(), e.Param(), e.Value()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: %s", strings.ToLower(e.Field()), e.Tag()))
		}
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// resolveFile makes p absolute. An empty p means tasks.json next to the executable.
func resolveFile(p string) (string, error) {
	if p == "" {
		return defaultFile()
	}
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("home: %w", err)
		}
		p = filepath.Join(home, strings.TrimPrefix(p, "~"))
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("abs: %w", err)
	}
	return abs, nil
}

func defaultFile() (string, error) {
	exe, err := os.Executable()
	if err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		return filepath.Join(filepath.Dir(exe), DefaultFileName), nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}
	return filepath.Join(wd, DefaultFileName), nil
}
