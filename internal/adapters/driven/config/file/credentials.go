package file

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/PeterTheobald/instapaper-gdocs/internal/core/domain"
)

// DefaultPath is the credentials file used when --config is not given.
const DefaultPath = "config.json"

// Credentials holds the service credentials for both APIs. Field names
// match the keys of the JSON file (and the environment variables that can
// override them).
type Credentials struct {
	InstapaperConsumerKey    string `mapstructure:"INSTAPAPER_CONSUMER_KEY"`
	InstapaperConsumerSecret string `mapstructure:"INSTAPAPER_CONSUMER_SECRET"`
	InstapaperUsername       string `mapstructure:"INSTAPAPER_USERNAME"`
	InstapaperPassword       string `mapstructure:"INSTAPAPER_PASSWORD"`

	// GoogleCredentialsPath points at the OAuth client config downloaded
	// from the Google Cloud console.
	GoogleCredentialsPath string `mapstructure:"GOOGLE_CREDENTIALS_PATH"`

	// GoogleAuthorizedUserPath is where the authorized token is cached.
	// Optional; the wiring falls back to a default next to the binary.
	GoogleAuthorizedUserPath string `mapstructure:"GOOGLE_AUTHORIZED_USER_PATH"`
}

// requiredKeys are the keys a usable credentials file must provide.
var requiredKeys = []string{
	"INSTAPAPER_CONSUMER_KEY",
	"INSTAPAPER_CONSUMER_SECRET",
	"INSTAPAPER_USERNAME",
	"INSTAPAPER_PASSWORD",
	"GOOGLE_CREDENTIALS_PATH",
}

// LoadCredentials reads the credentials file at path and applies
// environment-variable overrides.
func LoadCredentials(path string) (*Credentials, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.AutomaticEnv()

	for _, key := range requiredKeys {
		_ = v.BindEnv(key)
	}
	_ = v.BindEnv("GOOGLE_AUTHORIZED_USER_PATH")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read credentials file %s: %w", path, err)
	}

	var creds Credentials
	if err := v.Unmarshal(&creds); err != nil {
		return nil, fmt.Errorf("parse credentials file %s: %w", path, err)
	}

	for _, key := range requiredKeys {
		if v.GetString(key) == "" {
			return nil, fmt.Errorf("%w: missing required key %s in %s", domain.ErrInvalidConfig, key, path)
		}
	}

	return &creds, nil
}
