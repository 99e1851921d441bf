package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "DEVTOOLS"

// Environment overrides, applied after the config file.
const (
	EnvTemplatesDir = envPrefix + "_TEMPLATES_DIR"
	EnvDebug        = envPrefix + "_DEBUG"
	EnvNoPrompt     = envPrefix + "_NO_PROMPT"
)

type Config struct {
	// TemplatesDir replaces the bundled templates with a directory on disk.
	TemplatesDir string `mapstructure:"templates_dir"`
	Debug        bool   `mapstructure:"debug"`
	// NoPrompt makes an ambiguous package manager an error instead of a question.
	NoPrompt bool `mapstructure:"no_prompt"`
}

func DefaultConfig() Config {
	return Config{}
}

// ConfigDir is $XDG_CONFIG_HOME/devtools, or ~/.config/devtools.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "devtools")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "devtools")
}

func Path() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Load reads ConfigDir()/.env into the environment, then layers the config
// file and the DEVTOOLS_* overrides over the defaults. Missing files are not
// an error.
func Load() (Config, error) {
	if err := godotenv.Load(filepath.Join(ConfigDir(), ".env")); err != nil && !os.IsNotExist(err) {
		return DefaultConfig(), fmt.Errorf("load .env: %w", err)
	}
	return LoadFrom(Path())
}

// LoadFrom layers the YAML file at path, when it exists, and the environment
// over the defaults.
func LoadFrom(path string) (Config, error) {
	v := newViper()
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return DefaultConfig(), fmt.Errorf("parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return DefaultConfig(), err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")

	d := DefaultConfig()
	v.SetDefault("templates_dir", d.TemplatesDir)
	v.SetDefault("debug", d.Debug)
	v.SetDefault("no_prompt", d.NoPrompt)

	// templates_dir is read from DEVTOOLS_TEMPLATES_DIR and so on.
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	return v
}
