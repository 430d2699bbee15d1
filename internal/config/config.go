package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// APIKeyEnv seeds the weather API key when none is stored.
const APIKeyEnv = "ATMOS_API_KEY"

// Config is the resolved atmos configuration.
type Config struct {
	StatePath string
	LogPath   string
	LogLevel  string
	Weather   Weather
	Summary   Summary
	Location  Location

	// APIKey comes from the environment, never from the TOML file.
	APIKey string
}

// Weather configures the weather data sources.
type Weather struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
	MockDelay         time.Duration
}

// Summary configures the place summary lookup.
type Summary struct {
	BaseURL string
	Timeout time.Duration
}

// Location configures "use my location".
type Location struct {
	Enabled  bool
	Endpoint string
	Timeout  time.Duration
}

const (
	defaultConfigPath  = "~/.config/atmos/config.toml"
	defaultStatePath   = "~/.local/share/atmos/atmos.db"
	defaultLogPath     = "~/.local/state/atmos/atmos.log"
	defaultLogLevel    = "info"
	defaultWeatherURL  = "https://api.openweathermap.org/data/2.5"
	defaultSummaryURL  = "https://en.wikipedia.org/api/rest_v1"
	defaultLocationURL = "http://ip-api.com/json/"
	defaultTimeout     = 10 * time.Second
	defaultLocTimeout  = 5 * time.Second
	defaultRPS         = 5.0
	defaultBurst       = 2
	defaultMockDelay   = 600 * time.Millisecond
	logDisabledKeyword = "off"
)

type rawConfig struct {
	StatePath string `toml:"state_path"`
	LogPath   string `toml:"log_path"`
	LogLevel  string `toml:"log_level"`
	Weather   struct {
		BaseURL           string  `toml:"base_url"`
		TimeoutSeconds    float64 `toml:"timeout_seconds"`
		RequestsPerSecond float64 `toml:"requests_per_second"`
		Burst             int     `toml:"burst"`
		MockDelayMS       int     `toml:"mock_delay_ms"`
	} `toml:"weather"`
	Summary struct {
		BaseURL        string  `toml:"base_url"`
		TimeoutSeconds float64 `toml:"timeout_seconds"`
	} `toml:"summary"`
	Location struct {
		Enabled        *bool   `toml:"enabled"`
		Endpoint       string  `toml:"endpoint"`
		TimeoutSeconds float64 `toml:"timeout_seconds"`
	} `toml:"location"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		StatePath: mustExpand(defaultStatePath),
		LogPath:   mustExpand(defaultLogPath),
		LogLevel:  defaultLogLevel,
		Weather: Weather{
			BaseURL:           defaultWeatherURL,
			Timeout:           defaultTimeout,
			RequestsPerSecond: defaultRPS,
			Burst:             defaultBurst,
			MockDelay:         defaultMockDelay,
		},
		Summary: Summary{
			BaseURL: defaultSummaryURL,
			Timeout: defaultTimeout,
		},
		Location: Location{
			Enabled:  true,
			Endpoint: defaultLocationURL,
			Timeout:  defaultLocTimeout,
		},
		APIKey: strings.TrimSpace(os.Getenv(APIKeyEnv)),
	}
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Load locates and parses the atmos config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.apply(raw)
	return cfg, nil
}

func (c *Config) apply(raw rawConfig) {
	if v := strings.TrimSpace(raw.StatePath); v != "" {
		c.StatePath = mustExpand(v)
	}
	switch v := strings.TrimSpace(raw.LogPath); {
	case strings.EqualFold(v, logDisabledKeyword):
		c.LogPath = ""
	case v != "":
		c.LogPath = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		c.LogLevel = strings.ToLower(v)
	}

	if v := strings.TrimSpace(raw.Weather.BaseURL); v != "" {
		c.Weather.BaseURL = v
	}
	if d := seconds(raw.Weather.TimeoutSeconds); d > 0 {
		c.Weather.Timeout = d
	}
	if raw.Weather.RequestsPerSecond > 0 {
		c.Weather.RequestsPerSecond = raw.Weather.RequestsPerSecond
	}
	if raw.Weather.Burst > 0 {
		c.Weather.Burst = raw.Weather.Burst
	}
	switch ms := raw.Weather.MockDelayMS; {
	case ms < 0:
		c.Weather.MockDelay = -1
	case ms > 0:
		c.Weather.MockDelay = time.Duration(ms) * time.Millisecond
	}

	if v := strings.TrimSpace(raw.Summary.BaseURL); v != "" {
		c.Summary.BaseURL = v
	}
	if d := seconds(raw.Summary.TimeoutSeconds); d > 0 {
		c.Summary.Timeout = d
	}

	if raw.Location.Enabled != nil {
		c.Location.Enabled = *raw.Location.Enabled
	}
	if v := strings.TrimSpace(raw.Location.Endpoint); v != "" {
		c.Location.Endpoint = v
	}
	if d := seconds(raw.Location.TimeoutSeconds); d > 0 {
		c.Location.Timeout = d
	}
}

// LoadEnv reads KEY=VALUE pairs from an optional dotenv file into the process
// environment and refreshes APIKey. Variables already set win. A missing file
// is not an error.
func (c *Config) LoadEnv(path string) error {
	if strings.TrimSpace(path) != "" {
		resolved, err := expandPath(path)
		if err != nil {
			return err
		}
		if err := godotenv.Load(resolved); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load env file: %w", err)
		}
	}
	c.APIKey = strings.TrimSpace(os.Getenv(APIKeyEnv))
	return nil
}

func seconds(v float64) time.Duration {
	if v <= 0 {
		return 0
	}
	return time.Duration(v * float64(time.Second))
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
