package datasource

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

var (
	// ErrConfigNotFound is returned when the configuration file does not exist
	ErrConfigNotFound = errors.New("configuration file not found")
	// ErrConfigParse is returned when the configuration file cannot be decoded
	ErrConfigParse = errors.New("configuration file is malformed")
)

// DefaultTimeout bounds the forecast request when the configuration sets none
const DefaultTimeout = 10 * time.Second

// Config represents the application configuration
type Config struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Cities  []string      `mapstructure:"cities"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// strictTypes rejects values of the wrong type instead of coercing them
func strictTypes(dc *mapstructure.DecoderConfig) {
	dc.WeaklyTypedInput = false
}

// LoadConfig loads configuration from a JSON, YAML or TOML file.
// WEATHER_API_KEY in the environment takes precedence over api_key.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, filename)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, filename, err)
	}

	v := viper.New()
	v.SetConfigFile(filename)
	if filepath.Ext(filename) == "" {
		v.SetConfigType("json")
	}
	v.SetDefault("timeout", DefaultTimeout)
	v.SetEnvPrefix("weather")
	if err := v.BindEnv("api_key"); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, filename, err)
	}

	var config Config
	if err := v.Unmarshal(&config, strictTypes); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, filename, err)
	}

	if config.BaseURL == "" {
		return nil, fmt.Errorf("%w: %s: base_url is required", ErrConfigParse, filename)
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}

	return &config, nil
}
