package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

type Config struct {
	API    APIConfig    `toml:"api"`
	Job    JobConfig    `toml:"job"`
	Output OutputConfig `toml:"output"`
}

type APIConfig struct {
	UserID    string `toml:"user_id"`
	AuthToken string `toml:"auth_token"`
	BaseURL   string `toml:"base_url"`
}

type JobConfig struct {
	Language          string `toml:"language"`
	Notification      string `toml:"notification"`
	CallbackURL       string `toml:"callback_url"`
	NotificationEmail string `toml:"notification_email"`
}

type OutputConfig struct {
	WrapTranscriptJSON bool `toml:"wrap_transcript_json"`
}

func Default() *Config {
	return &Config{
		Job: JobConfig{
			Language: "en-US",
		},
		Output: OutputConfig{
			WrapTranscriptJSON: true,
		},
	}
}

// Path is the default config file location, honoring XDG_CONFIG_HOME.
func Path() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "smcli", "config.toml"), nil
}

func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return LoadFrom(path)
}

func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) ApplyEnv() {
	if v := os.Getenv("SPEECHMATICS_USER_ID"); v != "" {
		c.API.UserID = v
	}
	if v := os.Getenv("SPEECHMATICS_AUTH_TOKEN"); v != "" {
		c.API.AuthToken = v
	}
	if v := os.Getenv("SPEECHMATICS_BASE_URL"); v != "" {
		c.API.BaseURL = v
	}
}

func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}
	// The file carries the auth token, keep it private.
	return os.WriteFile(path, data, 0600)
}
