// Package config provides configuration loading and validation for the
// service: a JSON config file, environment variable overrides, and a
// schema-validated board list.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config is the service configuration. All fields are optional; missing
// values use defaults or come from the environment.
type Config struct {
	// Server
	Port                  int  `json:"port,omitempty"`
	RequestTimeoutSeconds int  `json:"request_timeout_seconds,omitempty"`
	LogJSON               bool `json:"log_json,omitempty"`
	Debug                 bool `json:"debug,omitempty"`

	// Sources
	BoardsFile    string `json:"boards_file,omitempty"` // Path to the board list JSON
	Location      string `json:"location,omitempty"`    // Country hint for aggregator sources
	PerBoardLimit int    `json:"per_board_limit,omitempty"`

	// Credentials. Environment variables take precedence over the file so
	// secrets stay out of committed configs.
	GeminiAPIKey string `json:"gemini_api_key,omitempty"`
	AshbyAPIKey  string `json:"ashby_api_key,omitempty"`
	AdzunaAppID  string `json:"adzuna_app_id,omitempty"`
	AdzunaAppKey string `json:"adzuna_app_key,omitempty"`
	DatabaseURL  string `json:"database_url,omitempty"`
	JWTSecret    string `json:"jwt_secret,omitempty"`

	// Pipeline
	ScoreThreshold float64  `json:"score_threshold,omitempty"`
	MaxJobs        int      `json:"max_jobs,omitempty"`
	AllowedHosts   []string `json:"allowed_hosts,omitempty"`
	UseBrowser     bool     `json:"use_browser,omitempty"` // Headless browser for client-rendered career sites
}

// Defaults applied when neither file nor environment set a value.
const (
	DefaultPort                  = 8080
	DefaultRequestTimeoutSeconds = 45
	DefaultPerBoardLimit         = 50
	DefaultScoreThreshold        = 0.3
	DefaultMaxJobs               = 50
)

// Load reads the config file (when path is non-empty), applies environment
// overrides, and fills defaults. A missing file with an empty path is fine;
// a named file that cannot be read is an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	cfg.applyEnv()
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string) (*Config, error) {
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	setString := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setString(&c.GeminiAPIKey, "GEMINI_API_KEY")
	setString(&c.AshbyAPIKey, "ASHBY_API_KEY")
	setString(&c.AdzunaAppID, "ADZUNA_APP_ID")
	setString(&c.AdzunaAppKey, "ADZUNA_APP_KEY")
	setString(&c.DatabaseURL, "DATABASE_URL")
	setString(&c.JWTSecret, "AUTH_JWT_SECRET")
	setString(&c.BoardsFile, "BOARDS_FILE")

	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.RequestTimeoutSeconds == 0 {
		c.RequestTimeoutSeconds = DefaultRequestTimeoutSeconds
	}
	if c.PerBoardLimit == 0 {
		c.PerBoardLimit = DefaultPerBoardLimit
	}
	if c.ScoreThreshold == 0 {
		c.ScoreThreshold = DefaultScoreThreshold
	}
	if c.MaxJobs == 0 {
		c.MaxJobs = DefaultMaxJobs
	}
}

// Validate checks numeric ranges and referenced files.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be in 1-65535, got %d", c.Port)
	}
	if c.RequestTimeoutSeconds < 1 {
		return fmt.Errorf("config error: 'request_timeout_seconds' must be positive")
	}
	if c.ScoreThreshold < 0 || c.ScoreThreshold > 1 {
		return fmt.Errorf("config error: 'score_threshold' must be in 0.0-1.0")
	}
	if c.MaxJobs < 1 {
		return fmt.Errorf("config error: 'max_jobs' must be positive")
	}
	if c.BoardsFile != "" {
		if _, err := os.Stat(c.BoardsFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: boards file not found: %s", c.BoardsFile)
		}
	}
	return nil
}
