package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AI providers.
const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
)

// Storage drivers.
const (
	StorageSQLite  = "sqlite"
	StorageMongoDB = "mongodb"
	StorageMemory  = "memory"
)

// Config represents the full application configuration surface.
type Config struct {
	Server   ServerConfig
	Log      LogConfig
	AI       AIConfig
	Storage  StorageConfig
	Notify   NotifyConfig
	WhatsApp WhatsAppConfig
	Sheets   SheetsConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// LogConfig selects the zap level and encoding.
type LogConfig struct {
	Level  string
	Format string
}

// AIConfig holds settings for LLM providers.
type AIConfig struct {
	Provider        string
	ProjectID       string
	Location        string
	CredentialsFile string
	GeminiModel     string
	AnthropicKey    string
	AnthropicModel  string
}

// StorageConfig selects where the kitchen slots are persisted.
type StorageConfig struct {
	Driver     string
	SQLitePath string
	MongoURI   string
	MongoDB    string
}

// NotifyConfig holds the expiry alert settings.
type NotifyConfig struct {
	Enabled      bool
	CronSchedule string
	Timezone     string
}

// WhatsAppConfig contains credentials and options for the Meta WhatsApp Cloud API.
type WhatsAppConfig struct {
	AccessToken   string
	PhoneNumberID string
	BaseURL       string
	APIVersion    string
	Recipient     string
}

// Enabled reports whether alerts can be delivered over WhatsApp.
func (w WhatsAppConfig) Enabled() bool {
	return w.AccessToken != "" && w.PhoneNumberID != "" && w.Recipient != ""
}

// SheetsConfig contains configuration required to interact with Google Sheets.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// Enabled reports whether spreadsheet export is configured.
func (s SheetsConfig) Enabled() bool {
	return s.CredentialsPath != "" && s.SpreadsheetID != ""
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	notifyEnabled, err := strconv.ParseBool(getenvWithDefault("NOTIFY_ENABLED", "true"))
	if err != nil {
		return nil, fmt.Errorf("NOTIFY_ENABLED: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Log: LogConfig{
			Level:  getenvWithDefault("LOG_LEVEL", "info"),
			Format: getenvWithDefault("LOG_FORMAT", "json"),
		},
		AI: AIConfig{
			Provider:        strings.ToLower(getenvWithDefault("AI_PROVIDER", ProviderGemini)),
			ProjectID:       os.Getenv("GOOGLE_PROJECT_ID"),
			Location:        getenvWithDefault("GOOGLE_LOCATION", "us-central1"),
			CredentialsFile: os.Getenv("GOOGLE_CREDENTIALS_FILE"),
			GeminiModel:     getenvWithDefault("GEMINI_MODEL", "gemini-2.5-flash"),
			AnthropicKey:    os.Getenv("ANTHROPIC_API_KEY"),
			AnthropicModel:  os.Getenv("ANTHROPIC_MODEL"),
		},
		Storage: StorageConfig{
			Driver:     strings.ToLower(getenvWithDefault("STORAGE_DRIVER", StorageSQLite)),
			SQLitePath: getenvWithDefault("SQLITE_PATH", "kitchen.db"),
			MongoURI:   os.Getenv("MONGODB_URI"),
			MongoDB:    getenvWithDefault("MONGODB_DB_NAME", "kitchen"),
		},
		Notify: NotifyConfig{
			Enabled:      notifyEnabled,
			CronSchedule: getenvWithDefault("NOTIFY_CRON_SCHEDULE", "0 9 * * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "UTC"),
		},
		WhatsApp: WhatsAppConfig{
			AccessToken:   os.Getenv("WHATSAPP_TOKEN"),
			PhoneNumberID: os.Getenv("WHATSAPP_PHONE_NUMBER_ID"),
			BaseURL:       getenvWithDefault("WHATSAPP_BASE_URL", "https://graph.facebook.com"),
			APIVersion:    getenvWithDefault("WHATSAPP_API_VERSION", "v20.0"),
			Recipient:     os.Getenv("WHATSAPP_RECIPIENT"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Log.Format)
	}

	switch c.AI.Provider {
	case ProviderGemini:
		if c.AI.ProjectID == "" {
			return errors.New("GOOGLE_PROJECT_ID must be provided")
		}
		if c.AI.Location == "" {
			return errors.New("GOOGLE_LOCATION must not be empty")
		}
	case ProviderAnthropic:
		if c.AI.AnthropicKey == "" {
			return errors.New("ANTHROPIC_API_KEY must be provided")
		}
	default:
		return fmt.Errorf("AI_PROVIDER must be %s or %s, got %q", ProviderGemini, ProviderAnthropic, c.AI.Provider)
	}

	switch c.Storage.Driver {
	case StorageSQLite:
		if c.Storage.SQLitePath == "" {
			return errors.New("SQLITE_PATH must not be empty")
		}
	case StorageMongoDB:
		if c.Storage.MongoURI == "" {
			return errors.New("MONGODB_URI must be provided")
		}
		if c.Storage.MongoDB == "" {
			return errors.New("MONGODB_DB_NAME must not be empty")
		}
	case StorageMemory:
	default:
		return fmt.Errorf("STORAGE_DRIVER must be sqlite, mongodb or memory, got %q", c.Storage.Driver)
	}

	if c.Notify.Enabled {
		if c.Notify.CronSchedule == "" {
			return errors.New("NOTIFY_CRON_SCHEDULE must be provided")
		}
		if _, err := time.LoadLocation(c.Notify.Timezone); err != nil {
			return fmt.Errorf("TIMEZONE: %w", err)
		}
	}

	if c.WhatsApp.Enabled() {
		if c.WhatsApp.BaseURL == "" {
			return errors.New("WHATSAPP_BASE_URL must not be empty")
		}
		if c.WhatsApp.APIVersion == "" {
			return errors.New("WHATSAPP_API_VERSION must not be empty")
		}
	}

	if (c.Sheets.CredentialsPath == "") != (c.Sheets.SpreadsheetID == "") {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH and GOOGLE_SHEET_DATABASE_ID must be provided together")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
