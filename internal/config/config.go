package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds JIRA and QMetry connection settings for one pipeline run.
// It is constructed once at startup and passed by value; core packages
// never read ambient process state themselves.
type Config struct {
	URL   string `yaml:"url"   mapstructure:"url"`
	Email string `yaml:"email" mapstructure:"email"`
	Token string `yaml:"token" mapstructure:"token"`

	QMetryAPIKey     string `yaml:"qmetry_api_key"     mapstructure:"qmetry_api_key"`
	QMetryProjectID  string `yaml:"qmetry_project_id"  mapstructure:"qmetry_project_id"`
	QMetryProjectKey string `yaml:"qmetry_project_key" mapstructure:"qmetry_project_key"`

	GenAIKey   string `yaml:"genai_key,omitempty"   mapstructure:"genai_key"`
	GenAIModel string `yaml:"genai_model,omitempty" mapstructure:"genai_model"`
}

// DefaultPath returns the default config file path (~/.testcase-pipeline.yaml).
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".testcase-pipeline.yaml"
	}
	return filepath.Join(home, ".testcase-pipeline.yaml")
}

// Load reads config from the YAML file and applies env var overrides.
// configPath may be empty to use the default path.
func Load(configPath string) (Config, error) {
	v := viper.New()

	if configPath == "" {
		configPath = DefaultPath()
	}

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Env var overrides
	v.BindEnv("url", "JIRA_URL")
	v.BindEnv("email", "JIRA_EMAIL")
	v.BindEnv("token", "JIRA_API_TOKEN")
	v.BindEnv("qmetry_api_key", "QMETRY_API_KEY")
	v.BindEnv("qmetry_project_id", "QMETRY_PROJECT_ID")
	v.BindEnv("qmetry_project_key", "QMETRY_PROJECT_KEY")
	v.BindEnv("genai_key", "GENAI_API_KEY")
	v.BindEnv("genai_model", "GENAI_MODEL")

	// Read the config file (ignore "not found" errors so env vars still work)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Only ignore file-not-found; other errors (e.g. parse) are real
			if !os.IsNotExist(err) {
				return Config{}, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Validate checks the fields every command needs (JIRA access).
func (c Config) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("JIRA URL is required (set in config file or JIRA_URL env var)")
	}
	if c.Email == "" {
		return fmt.Errorf("JIRA email is required (set in config file or JIRA_EMAIL env var)")
	}
	if c.Token == "" {
		return fmt.Errorf("JIRA API token is required (set in config file or JIRA_API_TOKEN env var)")
	}
	return nil
}

// ValidatePublish checks the additional fields the QMetry publisher needs.
func (c Config) ValidatePublish() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.QMetryAPIKey == "" {
		return fmt.Errorf("QMetry API key is required (set in config file or QMETRY_API_KEY env var)")
	}
	if c.QMetryProjectID == "" {
		return fmt.Errorf("QMetry project id is required (set in config file or QMETRY_PROJECT_ID env var)")
	}
	if c.QMetryProjectKey == "" {
		return fmt.Errorf("QMetry project key is required (set in config file or QMETRY_PROJECT_KEY env var)")
	}
	return nil
}

// Save writes the config to the given path (or default path if empty).
func Save(cfg Config, configPath string) error {
	if configPath == "" {
		configPath = DefaultPath()
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
