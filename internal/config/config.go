package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/jfmyers9/verses/pkg/genius"
)

// Config holds application configuration
type Config struct {
	// Output format template for song metadata
	// Default: "{{.Artist}} - {{.Title}}"
	OutputFormat string

	// Maximum number of lyrics pages fetched at once
	Parallel int

	// Genius API credentials
	Genius GeniusConfig

	// Lyrics scraping options
	Lyrics LyricsConfig

	// Fetch history log
	History HistoryConfig
}

// GeniusConfig holds Genius specific configuration
type GeniusConfig struct {
	AccessToken string
	BaseURL     string // API endpoint override, empty for api.genius.com
}

// LyricsConfig holds lyrics scraping configuration
type LyricsConfig struct {
	StripHeaders bool
	Timeout      time.Duration
	Selector     string
}

// HistoryConfig holds fetch history configuration
type HistoryConfig struct {
	Enabled bool
	DB      string
}

// Load reads configuration from file, .env files and environment
func Load() (*Config, error) {
	return load(getConfigDir())
}

func load(configDir string) (*Config, error) {
	// .env values never override variables already set in the environment
	loadDotEnv(filepath.Join(configDir, ".env"), ".env")

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Config file locations (in order of precedence)
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	// Set defaults
	v.SetDefault("output_format", "{{.Artist}} - {{.Title}}")
	v.SetDefault("parallel", 4)
	v.SetDefault("lyrics.strip_headers", "false")
	v.SetDefault("lyrics.timeout", genius.DefaultLyricsTimeout)
	v.SetDefault("lyrics.selector", genius.DefaultLyricsSelector)
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.db", filepath.Join(configDir, "history.db"))

	// Read config file (optional - don't fail if missing)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	// Read from environment variables, e.g. VERSES_GENIUS_ACCESS_TOKEN
	v.SetEnvPrefix("VERSES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("genius.access_token", "VERSES_GENIUS_ACCESS_TOKEN", "GENIUS_ACCESS_TOKEN")

	stripHeaders, err := genius.ParseBool("lyrics.strip_headers", v.GetString("lyrics.strip_headers"))
	if err != nil {
		return nil, err
	}

	// Map config to struct
	cfg := &Config{
		OutputFormat: v.GetString("output_format"),
		Parallel:     v.GetInt("parallel"),
		Genius: GeniusConfig{
			AccessToken: v.GetString("genius.access_token"),
			BaseURL:     v.GetString("genius.base_url"),
		},
		Lyrics: LyricsConfig{
			StripHeaders: stripHeaders,
			Timeout:      v.GetDuration("lyrics.timeout"),
			Selector:     v.GetString("lyrics.selector"),
		},
		History: HistoryConfig{
			Enabled: v.GetBool("history.enabled"),
			DB:      v.GetString("history.db"),
		},
	}

	if cfg.Parallel < 1 {
		cfg.Parallel = 1
	}

	return cfg, nil
}

// loadDotEnv loads every existing file in paths into the environment.
func loadDotEnv(paths ...string) {
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		_ = godotenv.Load(p)
	}
}

// getConfigDir returns the configuration directory path
// Creates the directory if it doesn't exist
func getConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	configDir := filepath.Join(homeDir, ".config", "verses")

	// Create config directory if it doesn't exist
	_ = os.MkdirAll(configDir, 0755)

	return configDir
}

// GetConfigDir returns the configuration directory path (public helper)
func GetConfigDir() string {
	return getConfigDir()
}

// Save writes configuration to file
func (c *Config) Save() error {
	return c.save(getConfigDir())
}

func (c *Config) save(configDir string) error {
	v := viper.New()

	// Set config file path
	configFile := filepath.Join(configDir, "config.yaml")

	// Set values in viper
	v.Set("output_format", c.OutputFormat)
	v.Set("parallel", c.Parallel)
	v.Set("genius.access_token", c.Genius.AccessToken)
	v.Set("genius.base_url", c.Genius.BaseURL)
	v.Set("lyrics.strip_headers", c.Lyrics.StripHeaders)
	v.Set("lyrics.timeout", c.Lyrics.Timeout.String())
	v.Set("lyrics.selector", c.Lyrics.Selector)
	v.Set("history.enabled", c.History.Enabled)
	v.Set("history.db", c.History.DB)

	// Write to file
	return v.WriteConfigAs(configFile)
}
