// ABOUTME: AGE-WELL configuration management with backend selection.
// ABOUTME: Loads settings through viper (file, env, .env) and builds the storage backend.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/agewell/internal/charm"
	"github.com/harperreed/agewell/internal/storage"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. AGEWELL_BACKEND.
const EnvPrefix = "AGEWELL"

// Supported storage backends.
const (
	BackendSQLite   = "sqlite"
	BackendMarkdown = "markdown"
	BackendPostgres = "postgres"
	BackendCharm    = "charm"
)

// Config stores agewell configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default), "markdown", "postgres" or "charm".
	Backend string `json:"backend,omitempty" mapstructure:"backend"`

	// DataDir is the root directory for local data.
	// SQLite puts agewell.db here. Markdown puts habits/ and cycles/ folders here.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/agewell.
	DataDir string `json:"data_dir,omitempty" mapstructure:"data_dir"`

	PostgresDSN string `json:"postgres_dsn,omitempty" mapstructure:"postgres_dsn"`

	LogLevel  string `json:"log_level,omitempty" mapstructure:"log_level"`
	LogFormat string `json:"log_format,omitempty" mapstructure:"log_format"`

	Server   ServerConfig   `json:"server,omitzero" mapstructure:"server"`
	Reminder ReminderConfig `json:"reminder,omitzero" mapstructure:"reminder"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr string `json:"addr,omitempty" mapstructure:"addr"`
}

// ReminderConfig holds period reminder settings.
type ReminderConfig struct {
	Cron     string      `json:"cron,omitempty" mapstructure:"cron"`
	LeadDays int         `json:"lead_days,omitempty" mapstructure:"lead_days"`
	Email    EmailConfig `json:"email,omitzero" mapstructure:"email"`
}

// EmailConfig holds SMTP settings for emailed reminders.
type EmailConfig struct {
	To       string `json:"to,omitempty" mapstructure:"to"`
	From     string `json:"from,omitempty" mapstructure:"from"`
	SMTPHost string `json:"smtp_host,omitempty" mapstructure:"smtp_host"`
	SMTPPort int    `json:"smtp_port,omitempty" mapstructure:"smtp_port"`
	Username string `json:"username,omitempty" mapstructure:"username"`
	Password string `json:"password,omitempty" mapstructure:"password"`
}

// Enabled reports whether enough is configured to send mail.
func (e EmailConfig) Enabled() bool {
	return e.To != "" && e.From != "" && e.SMTPHost != ""
}

// Default values applied by Load and the getters.
const (
	DefaultServerAddr   = ":8080"
	DefaultReminderCron = "0 8 * * *"
	DefaultLeadDays     = 3
	DefaultSMTPPort     = 587
)

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return BackendSQLite
	}
	return strings.ToLower(c.Backend)
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetServerAddr returns the HTTP listen address.
func (c *Config) GetServerAddr() string {
	if c.Server.Addr == "" {
		return DefaultServerAddr
	}
	return c.Server.Addr
}

// GetReminderCron returns the cron spec for reminder checks.
func (c *Config) GetReminderCron() string {
	if c.Reminder.Cron == "" {
		return DefaultReminderCron
	}
	return c.Reminder.Cron
}

// GetLeadDays returns how many days ahead a reminder fires.
func (c *Config) GetLeadDays() int {
	if c.Reminder.LeadDays <= 0 {
		return DefaultLeadDays
	}
	return c.Reminder.LeadDays
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage creates a Repository implementation based on the configured backend.
func (c *Config) OpenStorage() (storage.Repository, error) {
	backend := c.GetBackend()
	dataDir := c.GetDataDir()

	switch backend {
	case BackendSQLite:
		dbPath := filepath.Join(dataDir, "agewell.db")
		return storage.Open(dbPath)
	case BackendMarkdown:
		return storage.NewMarkdownStore(dataDir)
	case BackendPostgres:
		if c.PostgresDSN == "" {
			return nil, fmt.Errorf("postgres backend requires postgres_dsn")
		}
		return storage.OpenPostgres(c.PostgresDSN)
	case BackendCharm:
		return charm.InitClient()
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// OpenPhotoStore returns where profile photos go for the configured backend.
func (c *Config) OpenPhotoStore() (storage.PhotoStore, error) {
	if c.GetBackend() == BackendCharm {
		return charm.NewPhotoStore()
	}
	return storage.NewLocalPhotoStore(c.GetDataDir()), nil
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "agewell", "config.json")
}

// Load reads config from .env, the config file and AGEWELL_* environment variables,
// in increasing order of precedence.
func Load() (*Config, error) {
	// A missing .env is normal.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path := GetConfigPath()
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("stat config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("backend", "")
	v.SetDefault("data_dir", "")
	v.SetDefault("postgres_dsn", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("server.addr", DefaultServerAddr)
	v.SetDefault("reminder.cron", DefaultReminderCron)
	v.SetDefault("reminder.lead_days", DefaultLeadDays)
	v.SetDefault("reminder.email.to", "")
	v.SetDefault("reminder.email.from", "")
	v.SetDefault("reminder.email.smtp_host", "")
	v.SetDefault("reminder.email.smtp_port", DefaultSMTPPort)
	v.SetDefault("reminder.email.username", "")
	v.SetDefault("reminder.email.password", "")
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
