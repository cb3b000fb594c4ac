package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything sendmail needs to build a sender. Values come from
// an optional YAML file, then SERVICE_* environment variables, then flags.
type Config struct {
	Provider string        `mapstructure:"provider"`
	APIKey   string        `mapstructure:"api_key"`
	APIRoot  string        `mapstructure:"api_root"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Log      LogConfig     `mapstructure:"log"`
	SES      SESConfig     `mapstructure:"ses"`
	Gmail    GmailConfig   `mapstructure:"gmail"`
	Resend   ResendConfig  `mapstructure:"resend"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type SESConfig struct {
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	SessionToken    string `mapstructure:"session_token"`
}

type GmailConfig struct {
	CredentialsFile string `mapstructure:"credentials_file"`
	User            string `mapstructure:"user"`
}

type ResendConfig struct {
	APIKey string `mapstructure:"api_key"`
}

func loadConfig(v *viper.Viper, configFile string) (*Config, error) {
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// api_key -> SERVICE_API_KEY, ses.region -> SERVICE_SES_REGION
	v.SetEnvPrefix("SERVICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Every key needs a default so that Unmarshal sees environment overrides.
func setDefaults(v *viper.Viper) {
	v.SetDefault("provider", "api")
	v.SetDefault("api_key", "")
	v.SetDefault("api_root", "")
	v.SetDefault("timeout", 30*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("ses.region", "")
	v.SetDefault("ses.access_key_id", "")
	v.SetDefault("ses.secret_access_key", "")
	v.SetDefault("ses.session_token", "")

	v.SetDefault("gmail.credentials_file", "")
	v.SetDefault("gmail.user", "")

	v.SetDefault("resend.api_key", "")
}
