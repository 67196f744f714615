package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Storage  StorageConfig
	OpenAI   OpenAIConfig
	Assembly AssemblyAIConfig
	Live     LiveConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	AllowedOrigins  []string
	ShutdownTimeout int
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	MaxConns    int
	MinConns    int
	AutoMigrate bool
}

// RedisConfig holds Redis configuration. Redis is optional: when Enabled is
// false session events are delivered in-process only.
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

// StorageConfig holds object storage configuration for the segment archive.
type StorageConfig struct {
	Enabled         bool
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	UseSSL          bool
}

// OpenAIConfig holds credentials for the OpenAI-compatible transcription and
// chat endpoints (OpenAI itself or a Groq-style proxy).
type OpenAIConfig struct {
	APIKey       string
	BaseURL      string
	WhisperModel string
	ChatModel    string
}

// AssemblyAIConfig holds AssemblyAI credentials for the alternate STT provider.
type AssemblyAIConfig struct {
	APIKey string
}

// LiveConfig holds the live-session tuning knobs. Defaults match the
// behavior the product shipped with; override only for experiments.
type LiveConfig struct {
	STTProvider          string // "whisper" or "assemblyai"
	DefaultLanguage      string
	AudioBatchSize       int
	MinSegmentBytes      int
	SummaryInterval      time.Duration
	ResponderMinInterval time.Duration
	PhaseIntroPercent    float64
	PhaseSharingPercent  float64
	PhaseWrapUpPercent   float64
	DenylistPhrases      []string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			AllowedOrigins:  []string{getEnv("ALLOWED_ORIGINS", "http://localhost:3000")},
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 10),
		},
		Database: DatabaseConfig{
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnv("DB_PORT", "5432"),
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", "postgres"),
			Name:        getEnv("DB_NAME", "liveminutes"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			MaxConns:    getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:    getEnvAsInt("DB_MIN_CONNS", 5),
			AutoMigrate: getEnvAsBool("DB_AUTO_MIGRATE", false),
		},
		Redis: RedisConfig{
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Storage: StorageConfig{
			Enabled:         getEnvAsBool("STORAGE_ENABLED", false),
			Endpoint:        getEnv("STORAGE_ENDPOINT", "localhost:9000"),
			AccessKeyID:     getEnv("STORAGE_ACCESS_KEY", "minioadmin"),
			SecretAccessKey: getEnv("STORAGE_SECRET_KEY", "minioadmin"),
			BucketName:      getEnv("STORAGE_BUCKET", "liveminutes"),
			UseSSL:          getEnvAsBool("STORAGE_USE_SSL", false),
		},
		OpenAI: OpenAIConfig{
			APIKey:       getEnv("OPENAI_API_KEY", ""),
			BaseURL:      getEnv("OPENAI_BASE_URL", "https://api.openai.com"),
			WhisperModel: getEnv("OPENAI_WHISPER_MODEL", "whisper-1"),
			ChatModel:    getEnv("OPENAI_CHAT_MODEL", "gpt-4o-mini"),
		},
		Assembly: AssemblyAIConfig{
			APIKey: getEnv("ASSEMBLYAI_API_KEY", ""),
		},
		Live: LiveConfig{
			STTProvider:          getEnv("STT_PROVIDER", "whisper"),
			DefaultLanguage:      getEnv("LIVE_DEFAULT_LANGUAGE", "ja"),
			AudioBatchSize:       getEnvAsInt("LIVE_AUDIO_BATCH_SIZE", 10),
			MinSegmentBytes:      getEnvAsInt("LIVE_MIN_SEGMENT_BYTES", 1024),
			SummaryInterval:      getEnvAsDuration("LIVE_SUMMARY_INTERVAL", "30s"),
			ResponderMinInterval: getEnvAsDuration("LIVE_RESPONDER_MIN_INTERVAL", "15s"),
			PhaseIntroPercent:    getEnvAsFloat("LIVE_PHASE_INTRO_PERCENT", 10),
			PhaseSharingPercent:  getEnvAsFloat("LIVE_PHASE_SHARING_PERCENT", 25),
			PhaseWrapUpPercent:   getEnvAsFloat("LIVE_PHASE_WRAPUP_PERCENT", 85),
			DenylistPhrases:      getEnvAsList("LIVE_DENYLIST_PHRASES", defaultDenylist),
		},
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// defaultDenylist contains phrases the transcription engine is known to
// hallucinate on low-quality audio (YouTube sign-off boilerplate).
var defaultDenylist = []string{
	"ご視聴ありがとうございました",
	"最後までご視聴頂き有難うございました。",
	"字幕",
	"チャンネル登録",
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Live.STTProvider {
	case "whisper":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when STT_PROVIDER=whisper")
		}
	case "assemblyai":
		if c.Assembly.APIKey == "" {
			return fmt.Errorf("ASSEMBLYAI_API_KEY is required when STT_PROVIDER=assemblyai")
		}
	default:
		return fmt.Errorf("unknown STT_PROVIDER %q", c.Live.STTProvider)
	}
	if c.OpenAI.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required for summary and response generation")
	}
	if c.Live.AudioBatchSize < 1 {
		return fmt.Errorf("LIVE_AUDIO_BATCH_SIZE must be positive")
	}
	return nil
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}
	return duration
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
