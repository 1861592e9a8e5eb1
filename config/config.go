// Package config loads engine settings from the environment.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config carries everything a ferrum instance needs at startup.
type Config struct {
	Identity  IdentityConfig `mapstructure:"identity"`
	Log       LogConfig      `mapstructure:"log"`
	Snapshots bool           `mapstructure:"snapshots"`
}

type IdentityConfig struct {
	Name  string `mapstructure:"name"`
	Email string `mapstructure:"email"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Identity:  IdentityConfig{Name: "ferrum", Email: "ferrum@localhost"},
		Log:       LogConfig{Level: "INFO", Format: "text"},
		Snapshots: true,
	}
}

// Load reads an optional .env file and then prefixed environment
// variables into target. FERRUM_LOG_LEVEL=DEBUG sets log.level.
func Load(prefix string, target interface{}) error {
	v := viper.New()

	v.SetConfigFile(".env")
	// .env is optional; a broken file surfaces through Unmarshal below.
	_ = v.ReadInConfig()

	prefixUpper := strings.ToUpper(prefix)
	for _, envStr := range os.Environ() {
		pair := strings.SplitN(envStr, "=", 2)
		key, value := pair[0], pair[1]

		if strings.HasPrefix(key, prefixUpper) {
			// FERRUM_LOG_LEVEL -> log.level
			propKey := strings.TrimPrefix(key, prefixUpper)
			propKey = strings.ToLower(strings.ReplaceAll(propKey, "_", "."))
			propKey = strings.TrimPrefix(propKey, ".")

			v.Set(propKey, value)
		}
	}

	if err := v.Unmarshal(target); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return nil
}
