package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App        AppConfig                 `json:"app" yaml:"app"`
	Gateways   map[string]GatewayConfig  `json:"gateways" yaml:"gateways" validate:"dive"`
	Providers  map[string]ProviderConfig `json:"providers" yaml:"providers" validate:"dive"`
	Generation GenerationConfig          `json:"generation" yaml:"generation"`
	Store      StoreConfig               `json:"store" yaml:"store"`
	Policy     PolicyConfig              `json:"policy" yaml:"policy"`
	Log        LogConfig                 `json:"log" yaml:"log"`
}

type AppConfig struct {
	Name    string `json:"name" yaml:"name" validate:"required"`
	Prompts string `json:"prompts" yaml:"prompts"`
	ChatID  string `json:"chat_id" yaml:"chat_id" validate:"required"`
}

type GatewayConfig struct {
	Token   string `json:"token" yaml:"token" validate:"required_if=Enabled true"`
	Enabled bool   `json:"enabled" yaml:"enabled"`
}

type ProviderConfig struct {
	APIKey  string `json:"api_key" yaml:"api_key"`
	Model   string `json:"model" yaml:"model" validate:"required_if=Enabled true"`
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty" validate:"omitempty,url"`
	Enabled bool   `json:"enabled" yaml:"enabled"`
}

// GenerationConfig holds the sampling options passed on every agent call.
type GenerationConfig struct {
	Temperature float64 `json:"temperature" yaml:"temperature" validate:"gte=0,lte=2"`
	MaxTokens   int     `json:"max_tokens" yaml:"max_tokens" validate:"gte=0"`
	TopP        float64 `json:"top_p" yaml:"top_p" validate:"gte=0,lte=1"`
	TopK        int     `json:"top_k" yaml:"top_k" validate:"gte=0"`
}

type StoreConfig struct {
	Type string `json:"type" yaml:"type" validate:"oneof=sqlite"`
	Path string `json:"path" yaml:"path" validate:"required"`
}

// PolicyConfig lists actions and input patterns that must never run, and
// caps how many todos one search may complete (0 means no cap).
type PolicyConfig struct {
	DenyActions  []string `json:"deny_actions" yaml:"deny_actions" validate:"dive,oneof=getAllTodos createTodo deleteTodoById searchTodo"`
	DenyPatterns []string `json:"deny_patterns" yaml:"deny_patterns"`
	MaxCascade   int      `json:"max_cascade" yaml:"max_cascade" validate:"gte=0"`
}

type LogConfig struct {
	Path  string `json:"path" yaml:"path" validate:"required"`
	Level string `json:"level" yaml:"level" validate:"oneof=debug info warn error"`
}

// Default returns a configuration that runs against Gemini with a local
// SQLite file once GEMINI_API_KEY is set.
func Default() *Config {
	return &Config{
		App: AppConfig{
			Name:    "Alfred",
			Prompts: "./prompts",
			ChatID:  "console",
		},
		Gateways: map[string]GatewayConfig{},
		Providers: map[string]ProviderConfig{
			"googleai": {Model: "gemini-1.5-flash", Enabled: true},
		},
		Generation: GenerationConfig{
			Temperature: 0.7,
			MaxTokens:   1024,
			TopP:        0.8,
			TopK:        40,
		},
		Store: StoreConfig{Type: "sqlite", Path: "alfred.db"},
		Log:   LogConfig{Path: filepath.Join("logs", "alfred.jsonl"), Level: "info"},
	}
}

// LoadConfig reads a YAML or JSON file over the defaults, applies
// environment overrides (including a .env file in the working directory)
// and validates the result. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to open config file: %w", err)
		default:
			// Provider and gateway maps from the file replace the defaults
			// rather than merging with them.
			defaults := cfg.Providers
			cfg.Providers = nil
			if err := decode(path, data, cfg); err != nil {
				return nil, fmt.Errorf("failed to decode config file: %w", err)
			}
			if len(cfg.Providers) == 0 {
				cfg.Providers = defaults
			}
			if cfg.Gateways == nil {
				cfg.Gateways = map[string]GatewayConfig{}
			}
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return json.Unmarshal(data, cfg)
	default:
		return yaml.Unmarshal(data, cfg)
	}
}

func (c *Config) applyEnv() {
	setProviderKey(c, "googleai", os.Getenv("GEMINI_API_KEY"), os.Getenv("GOOGLE_API_KEY"))
	setProviderKey(c, "openai", os.Getenv("OPENAI_API_KEY"))
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		if p, ok := c.Providers["openai"]; ok && p.BaseURL == "" {
			p.BaseURL = v
			c.Providers["openai"] = p
		}
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		if g, ok := c.Gateways["telegram"]; ok && g.Token == "" {
			g.Token = v
			c.Gateways["telegram"] = g
		}
	}
	if v := os.Getenv("ALFRED_DB_PATH"); v != "" {
		c.Store.Path = v
	}
}

func setProviderKey(c *Config, name string, values ...string) {
	p, ok := c.Providers[name]
	if !ok || p.APIKey != "" {
		return
	}
	for _, v := range values {
		if v != "" {
			p.APIKey = v
			c.Providers[name] = p
			return
		}
	}
}

var validate = validator.New()

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// GetDefaultProvider returns the first enabled provider in name order.
func (c *Config) GetDefaultProvider() (string, ProviderConfig) {
	names := make([]string, 0, len(c.Providers))
	for name := range c.Providers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if p := c.Providers[name]; p.Enabled {
			return name, p
		}
	}
	return "", ProviderConfig{}
}

// GetTelegramConfig returns telegram config if enabled
func (c *Config) GetTelegramConfig() (GatewayConfig, bool) {
	tg, ok := c.Gateways["telegram"]
	if ok && tg.Enabled {
		return tg, true
	}
	return GatewayConfig{}, false
}
