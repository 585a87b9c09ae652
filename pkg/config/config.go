// Package config loads layered service settings: built-in defaults, then a YAML
// file per environment, then prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	configDir  = "configs"
	fallback   = "example"
	defaultEnv = "dev"
)

// Settings is a loaded configuration.
type Settings struct {
	v *viper.Viper
}

func (s *Settings) GetString(key string) string          { return s.v.GetString(key) }
func (s *Settings) GetInt(key string) int                { return s.v.GetInt(key) }
func (s *Settings) GetBool(key string) bool              { return s.v.GetBool(key) }
func (s *Settings) GetDuration(key string) time.Duration { return s.v.GetDuration(key) }
func (s *Settings) GetStringSlice(key string) []string   { return s.v.GetStringSlice(key) }

// File is the path of the YAML file that was read.
func (s *Settings) File() string {
	return s.v.ConfigFileUsed()
}

// Unmarshal decodes every setting into out using mapstructure tags. Durations
// and comma-separated lists are decoded from strings.
func (s *Settings) Unmarshal(out interface{}) error {
	return s.v.Unmarshal(out)
}

// Load reads {serviceName}.yaml from CONFIG_PATH, or configs/{APP_ENV} when unset,
// falling back to configs/example. Every key present in defaults or the file can be
// overridden by {SERVICENAME}_{KEY} with dots replaced by underscores.
func Load(serviceName string, defaults map[string]interface{}) (*Settings, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName(serviceName)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(strings.ToUpper(serviceName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, dir := range searchPaths() {
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil, fmt.Errorf("no %s.yaml found in %s", serviceName, strings.Join(searchPaths(), ", "))
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return &Settings{v: v}, nil
}

func searchPaths() []string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return []string{path, filepath.Join(configDir, fallback)}
	}
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = defaultEnv
	}
	return []string{filepath.Join(configDir, env), filepath.Join(configDir, fallback)}
}
