// Package config loads server configuration: defaults, then an optional
// YAML file, then EDUBOT_* environment variables (a .env file is loaded
// first if present).
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/edubot/edubot/internal/llm"
	"github.com/edubot/edubot/internal/logger"
	"github.com/edubot/edubot/internal/store"
)

// DevJWTSecret is the placeholder secret. Release mode refuses to start
// with it.
const DevJWTSecret = "dev-secret-change-me"

// Config holds all application configuration.
type Config struct {
	Server ServerConfig   `yaml:"server"`
	Log    logger.Options `yaml:"log"`
	Store  store.Options  `yaml:"store"`
	Redis  RedisConfig    `yaml:"redis"`
	LLM    llm.Config     `yaml:"llm"`
	Chat   ChatConfig     `yaml:"chat"`
	Auth   AuthConfig     `yaml:"auth"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr string `yaml:"addr"`
	// Mode is "debug" or "release". It also picks the log encoder.
	Mode            string        `yaml:"mode"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
	RateLimit       float64       `yaml:"rate_limit"` // requests per second per client IP; 0 disables
	RateBurst       int           `yaml:"rate_burst"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// RedisConfig enables the shared session lock when Addr is set.
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	LockTTL  time.Duration `yaml:"lock_ttl"`
}

// ChatConfig tunes the conversation controller.
type ChatConfig struct {
	GuidanceFile   string        `yaml:"guidance_file"`
	MCQMaxAttempts int           `yaml:"mcq_max_attempts"`
	LockWait       time.Duration `yaml:"lock_wait"`
}

// AuthConfig configures token signing.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":5000",
			Mode:            "debug",
			AllowedOrigins:  []string{"http://localhost:5173", "http://localhost:3000"},
			RateLimit:       5,
			RateBurst:       20,
			ShutdownTimeout: 10 * time.Second,
		},
		Log:   logger.Options{Mode: "dev"},
		Store: store.Options{Driver: store.DriverSQLite, MongoDatabase: "edubot"},
		Redis: RedisConfig{LockTTL: 2 * time.Minute},
		LLM:   llm.DefaultConfig(),
		Chat: ChatConfig{
			GuidanceFile:   "guidance.txt",
			MCQMaxAttempts: 2,
			LockWait:       time.Minute,
		},
		Auth: AuthConfig{JWTSecret: DevJWTSecret},
	}
}

// Load reads and validates the configuration for commands that talk to a
// model.
func Load(path string) (Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Read builds the configuration without validating it. path may be empty,
// in which case EDUBOT_CONFIG is consulted; a missing file at an explicit
// path is an error.
func Read(path string) (Config, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	cfg := Default()

	if path == "" {
		path = os.Getenv("EDUBOT_CONFIG")
	}
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	applyEnv(&cfg)

	if !cfg.LLM.HasKey() {
		if found, ok := llm.DiscoverConfig(); ok {
			adoptDiscovered(&cfg.LLM, found)
		}
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := firstEnv("EDUBOT_ADDR"); v != "" {
		cfg.Server.Addr = v
	} else if p := firstEnv("PORT"); p != "" {
		cfg.Server.Addr = ":" + p
	}
	if v := firstEnv("EDUBOT_MODE", "GIN_MODE"); v != "" {
		cfg.Server.Mode = v
	}
	if v := firstEnv("EDUBOT_ALLOWED_ORIGINS"); v != "" {
		cfg.Server.AllowedOrigins = splitList(v)
	}
	if v := firstEnv("EDUBOT_RATE_LIMIT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Server.RateLimit = f
		}
	}

	if v := firstEnv("EDUBOT_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := firstEnv("EDUBOT_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}

	if v := firstEnv("EDUBOT_STORE_DRIVER"); v != "" {
		cfg.Store.Driver = v
	}
	if v := firstEnv("EDUBOT_DB"); v != "" {
		cfg.Store.Path = v
	}
	if v := firstEnv("EDUBOT_MONGO_URI", "MONGO_URI"); v != "" {
		cfg.Store.MongoURI = v
		if firstEnv("EDUBOT_STORE_DRIVER") == "" {
			cfg.Store.Driver = store.DriverMongo
		}
	}
	if v := firstEnv("EDUBOT_MONGO_DATABASE"); v != "" {
		cfg.Store.MongoDatabase = v
	}

	if v := firstEnv("EDUBOT_REDIS_ADDR", "REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := firstEnv("EDUBOT_REDIS_PASSWORD", "REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}

	if v := firstEnv("EDUBOT_GUIDANCE_FILE"); v != "" {
		cfg.Chat.GuidanceFile = v
	}
	if v := firstEnv("EDUBOT_MCQ_MAX_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Chat.MCQMaxAttempts = n
		}
	}

	if v := firstEnv("EDUBOT_JWT_SECRET", "JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}

	llm.ApplyEnv(&cfg.LLM)
}

// adoptDiscovered takes the provider and key found by llm.DiscoverConfig
// while keeping models and timeouts already configured.
func adoptDiscovered(dst *llm.Config, found llm.Config) {
	dst.Provider = found.Provider
	switch found.Provider {
	case "openrouter":
		dst.OpenRouter.APIKey = found.OpenRouter.APIKey
	case "anthropic":
		dst.Anthropic.APIKey = found.Anthropic.APIKey
	case "openai":
		dst.OpenAI.APIKey = found.OpenAI.APIKey
	case "gemini":
		dst.Gemini.APIKey = found.Gemini.APIKey
	}
}

// Validate checks that the configuration can start a server.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr cannot be empty"))
	}
	if c.Server.Mode != "debug" && c.Server.Mode != "release" && c.Server.Mode != "test" {
		errs = append(errs, fmt.Errorf("server.mode must be debug, release or test, got %q", c.Server.Mode))
	}
	if c.Server.RateLimit < 0 {
		errs = append(errs, errors.New("server.rate_limit must not be negative"))
	}
	switch c.Store.Driver {
	case store.DriverSQLite, store.DriverMemory:
	case store.DriverMongo:
		if c.Store.MongoURI == "" {
			errs = append(errs, errors.New("store.mongo_uri is required for the mongo driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown store driver %q", c.Store.Driver))
	}
	if c.Chat.MCQMaxAttempts < 1 {
		errs = append(errs, errors.New("chat.mcq_max_attempts must be at least 1"))
	}
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("auth.jwt_secret cannot be empty"))
	}
	if c.IsRelease() && c.Auth.JWTSecret == DevJWTSecret {
		errs = append(errs, errors.New("EDUBOT_JWT_SECRET must be set in release mode"))
	}
	if err := c.LLM.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// IsRelease reports whether the server runs in release mode.
func (c *Config) IsRelease() bool {
	return c.Server.Mode == "release"
}

// LogOptions returns the logger options with the encoder chosen by mode.
func (c *Config) LogOptions() logger.Options {
	opts := c.Log
	if c.IsRelease() && opts.Mode == "dev" {
		opts.Mode = "prod"
	}
	return opts
}

func firstEnv(names ...string) string {
	for _, n := range names {
		if v := strings.TrimSpace(os.Getenv(n)); v != "" {
			return v
		}
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
