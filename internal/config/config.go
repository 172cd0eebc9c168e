package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"
	defaultPort       = 8000
	defaultEnv        = "development"
	defaultDBHost     = "127.0.0.1"
	defaultDBPort     = 3306
	defaultDBUser     = "root"
	defaultDBPassword = "password"
	defaultDBName     = "reportgen"
	defaultDBCharset  = "utf8mb4"
	defaultDBLoc      = "Local"
)

// Load reads the YAML config file, applies env overrides and defaults.
// A missing file is not an error; defaults plus env are used.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{}

	if path == "" {
		path = DefaultConfigPath
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool {
	return strings.ToLower(strings.TrimSpace(c.Env)) != "production"
}

// ReportsDir returns the artifact store directory.
func (c *AppConfig) ReportsDir() string { return c.Paths.Reports }

// DataDir returns the directory for persisted vector stores.
func (c *AppConfig) DataDir() string { return c.Paths.Data }

// EnsureDirs creates the runtime directories.
func (c *AppConfig) EnsureDirs() error {
	for _, dir := range []string{c.Paths.Reports, c.Paths.Data} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv("OPENAI_API_KEY")); v != "" && !hasEnabledProvider(cfg.AI) {
		cfg.AI.Providers = append(cfg.AI.Providers, AIProvider{
			ID:      "openai-env",
			Name:    "OpenAI (env)",
			Type:    "openai",
			APIKey:  v,
			Enabled: true,
		})
	}
	if v := strings.TrimSpace(os.Getenv("JWT_SECRET")); v != "" && cfg.JWTSecret == "" {
		cfg.JWTSecret = v
	}
	if v := strings.TrimSpace(os.Getenv("DATABASE_DSN")); v != "" && cfg.DSN == "" {
		cfg.DSN = v
	}
	if v := strings.TrimSpace(os.Getenv("REDIS_URL")); v != "" && cfg.RedisURL == "" {
		cfg.RedisURL = v
	}
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	if cfg.Env == "" {
		cfg.Env = defaultEnv
	}
	if cfg.RedisURL == "" {
		cfg.RedisURL = "redis://localhost:6379/0"
	}
	if cfg.Paths.Reports == "" {
		cfg.Paths.Reports = filepath.Join(".", "reports")
	}
	if cfg.Paths.Data == "" {
		cfg.Paths.Data = filepath.Join(".", "data")
	}
	if cfg.DSN == "" {
		cfg.DSN = buildDSN(cfg.Database)
	}
}

func buildDSN(db DatabaseRuntimeConfig) string {
	host := db.Host
	if host == "" {
		host = defaultDBHost
	}
	port := db.Port
	if port == 0 {
		port = defaultDBPort
	}
	user := db.User
	if user == "" {
		user = defaultDBUser
	}
	password := db.Password
	if password == "" {
		password = defaultDBPassword
	}
	name := db.Name
	if name == "" {
		name = defaultDBName
	}
	charset := db.Charset
	if charset == "" {
		charset = defaultDBCharset
	}
	loc := db.Loc
	if loc == "" {
		loc = defaultDBLoc
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=%s",
		user, password, host, port, name, charset, loc)
}

func hasEnabledProvider(ai AIConfig) bool {
	for _, p := range ai.Providers {
		if p.Enabled && strings.TrimSpace(p.APIKey) != "" {
			return true
		}
	}
	return false
}
