package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string          `toml:"environment"` // "development" or "production"
	Server      ServerConfig    `toml:"server"`
	Logging     LoggingConfig   `toml:"logging"`
	Storage     StorageConfig   `toml:"storage"`
	Warehouse   WarehouseConfig `toml:"warehouse"`
	Gemini      GeminiConfig    `toml:"gemini"`
	Claude      ClaudeConfig    `toml:"claude"`
	LLM         LLMConfig       `toml:"llm"`
	Report      ReportConfig    `toml:"report"`
	Render      RenderConfig    `toml:"render"`
	Delivery    DeliveryConfig  `toml:"delivery"`
	Schedule    ScheduleConfig  `toml:"schedule"`
}

type ServerConfig struct {
	Port int    `toml:"port" validate:"min=1,max=65535"`
	Host string `toml:"host"`
}

type LoggingConfig struct {
	Level  string   `toml:"level"`  // "debug", "info", "warn", "error"
	Output []string `toml:"output"` // "stdout", "file"
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path"`             // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"` // Delete database on startup for clean test runs
}

// WarehouseConfig configures the analytical warehouse HTTP collaborator.
type WarehouseConfig struct {
	BaseURL        string        `toml:"base_url" validate:"omitempty,url"`
	APIKey         string        `toml:"api_key"`
	RequestTimeout time.Duration `toml:"request_timeout"`
	RateLimit      int           `toml:"rate_limit"` // Requests per second
}

// GeminiConfig contains Google Gemini API configuration
type GeminiConfig struct {
	APIKey      string  `toml:"api_key"`
	Model       string  `toml:"model"`       // Model for generation (default: "gemini-3-flash-preview")
	Temperature float32 `toml:"temperature"` // Completion temperature (default: 0.7)
}

// ClaudeConfig contains Anthropic Claude API configuration
type ClaudeConfig struct {
	APIKey      string  `toml:"api_key"`
	Model       string  `toml:"model"`      // Model for generation (default: "claude-haiku-3-5-20241022")
	MaxTokens   int     `toml:"max_tokens"` // Maximum tokens in response (default: 8192)
	Temperature float32 `toml:"temperature"`
}

// LLMProvider represents the AI provider type
type LLMProvider string

const (
	// LLMProviderGemini uses Google Gemini API
	LLMProviderGemini LLMProvider = "gemini"
	// LLMProviderClaude uses Anthropic Claude API
	LLMProviderClaude LLMProvider = "claude"
)

// LLMConfig contains unified configuration for all AI providers
type LLMConfig struct {
	DefaultProvider LLMProvider `toml:"default_provider"` // "gemini" or "claude" (default: "gemini")
	RateLimit       int         `toml:"rate_limit"`       // Generation calls per second
}

// ReportConfig tunes the report composition pipeline.
type ReportConfig struct {
	Days               int           `toml:"days" validate:"min=1"`                // Trailing analysis window in days
	BatchSize          int           `toml:"batch_size" validate:"min=1"`          // Meetings per conversation-card generation call
	MaxWorkers         int           `toml:"max_workers" validate:"min=1"`         // Bounded pool size for batch generation
	BatchTimeout       time.Duration `toml:"batch_timeout"`                        // Per-batch generation timeout
	QualifiedThreshold int           `toml:"qualified_threshold" validate:"min=0"` // Score at or above which a meeting counts as qualified
}

// RenderConfig configures the layout rendering stage.
type RenderConfig struct {
	TemplatesDir string        `toml:"templates_dir"` // User override directory for layout templates
	MJMLCommand  []string      `toml:"mjml_command"`  // External layout tool invocation
	MJMLTimeout  time.Duration `toml:"mjml_timeout"`
}

// DeliveryConfig configures the outbound webhook collaborator.
type DeliveryConfig struct {
	WebhookURL     string        `toml:"webhook_url" validate:"omitempty,url"`
	DefaultTo      string        `toml:"default_to"`
	RequestTimeout time.Duration `toml:"request_timeout"`
}

// ScheduleConfig configures the periodic report trigger.
type ScheduleConfig struct {
	Enabled bool   `toml:"enabled"`
	Cron    string `toml:"cron"` // Cron expression, e.g. "0 8 * * FRI"
}

// NewDefaultConfig creates a configuration with default values.
// Technical parameters are hardcoded here for production stability; only
// user-facing settings should be exposed in brevis.toml.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8085,
			Host: "localhost",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout", "file"},
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data",
			},
		},
		Warehouse: WarehouseConfig{
			RequestTimeout: 30 * time.Second,
			RateLimit:      5,
		},
		Gemini: GeminiConfig{
			Model:       "gemini-3-flash-preview",
			Temperature: 0.7,
		},
		Claude: ClaudeConfig{
			Model:       "claude-haiku-3-5-20241022",
			MaxTokens:   8192,
			Temperature: 0.7,
		},
		LLM: LLMConfig{
			DefaultProvider: LLMProviderGemini,
			RateLimit:       5,
		},
		Report: ReportConfig{
			Days:               7,
			BatchSize:          3,
			MaxWorkers:         10,
			BatchTimeout:       30 * time.Second,
			QualifiedThreshold: 3,
		},
		Render: RenderConfig{
			TemplatesDir: "./layouts",
			MJMLCommand:  []string{"npx", "mjml", "-s"},
			MJMLTimeout:  10 * time.Second,
		},
		Delivery: DeliveryConfig{
			RequestTimeout: 30 * time.Second,
		},
		Schedule: ScheduleConfig{
			Enabled: false,
			Cron:    "0 8 * * FRI",
		},
	}
}

// LoadFromFile loads configuration from a TOML file merged over defaults,
// then applies environment overrides.
func LoadFromFile(path string) (*Config, error) {
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple TOML files in order.
// Later files override earlier ones; environment variables override all.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ApplyFlagOverrides applies command-line flag overrides to config.
// CLI flags have the highest priority, above config files and environment.
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port != 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// Validate checks configuration constraints using struct tags.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("BREVIS_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	if port := os.Getenv("BREVIS_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("BREVIS_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	if level := os.Getenv("BREVIS_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if path := os.Getenv("BREVIS_BADGER_PATH"); path != "" {
		config.Storage.Badger.Path = path
	}

	if baseURL := os.Getenv("BREVIS_WAREHOUSE_URL"); baseURL != "" {
		config.Warehouse.BaseURL = baseURL
	}
	if key := os.Getenv("BREVIS_WAREHOUSE_API_KEY"); key != "" {
		config.Warehouse.APIKey = key
	}

	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		config.Gemini.APIKey = key
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		config.Claude.APIKey = key
	}
	if provider := os.Getenv("BREVIS_LLM_PROVIDER"); provider != "" {
		config.LLM.DefaultProvider = LLMProvider(provider)
	}

	if days := os.Getenv("BREVIS_REPORT_DAYS"); days != "" {
		if d, err := strconv.Atoi(days); err == nil {
			config.Report.Days = d
		}
	}
	if workers := os.Getenv("BREVIS_REPORT_MAX_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil {
			config.Report.MaxWorkers = w
		}
	}

	if url := os.Getenv("BREVIS_DELIVERY_WEBHOOK_URL"); url != "" {
		config.Delivery.WebhookURL = url
	}
	if to := os.Getenv("BREVIS_DELIVERY_DEFAULT_TO"); to != "" {
		config.Delivery.DefaultTo = to
	}
}
