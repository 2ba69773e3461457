package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string
	Env  string

	// Data files
	DataDir            string
	KnowledgeFile      string
	SuggestionsFile    string
	MenuFile           string
	MenuCategoriesFile string
	BookingsFile       string
	LogFile            string
	FeedbackFile       string
	BackupsDir         string

	// Admin panel
	AdminUser  string
	AdminPass  string
	SessionTTL time.Duration

	// External generation
	LLMProvider    string
	// LLMProviderSet reports whether LLM_PROVIDER was given explicitly.
	LLMProviderSet bool
	YandexAPIKey   string
	YandexFolderID string
	OpenAIKey      string
	LLMModel       string
	LLMBaseURL     string
	LLMTimeout     time.Duration
	LLMTemperature float32
	LLMMaxTokens   int
	VenueName      string

	// Conversation history bounds
	HistoryMaxMessages int
	HistoryIdleTTL     time.Duration

	// Backups
	LogBackupEvery  int
	BackupSchedule  string
	BackupRetention int

	// TTF font for PDF exports; Cyrillic needs one
	PDFFontPath string

	// Off-site copies of scheduled backups: none|local|s3|cloudinary
	UploadProvider      string
	UploadFolder        string
	UploadLocalDir      string
	AWSAccessKeyID      string
	AWSSecretAccessKey  string
	AWSRegion           string
	S3Bucket            string
	S3Endpoint          string
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	// Staff e-mail on new bookings: none|brevo|resend
	EmailProvider string
	BrevoAPIKey   string
	ResendAPIKey  string
	EmailFrom     string
	EmailFromName string
	EmailReplyTo  string
	AdminEmail    string

	// Optional SQL mirror for bookings and the conversation log
	StorageBackend string
	DatabaseURL    string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ .env file not found, using system environment variables")
	}

	cfg := &Config{
		Port:    os.Getenv("PORT"),
		Env:     os.Getenv("ENV"),
		DataDir: os.Getenv("DATA_DIR"),

		AdminUser: os.Getenv("ADMIN_USER"),
		AdminPass: os.Getenv("ADMIN_PASS"),

		LLMProvider:    os.Getenv("LLM_PROVIDER"),
		YandexAPIKey:   os.Getenv("YANDEX_API_KEY"),
		YandexFolderID: os.Getenv("YANDEX_FOLDER_ID"),
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		LLMModel:       os.Getenv("LLM_MODEL"),
		LLMBaseURL:     os.Getenv("LLM_BASE_URL"),
		VenueName:      os.Getenv("VENUE_NAME"),

		BackupSchedule: os.Getenv("BACKUP_SCHEDULE"),
		StorageBackend: os.Getenv("STORAGE_BACKEND"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		PDFFontPath:    os.Getenv("PDF_FONT_PATH"),

		UploadProvider:      os.Getenv("UPLOAD_PROVIDER"),
		UploadFolder:        os.Getenv("UPLOAD_FOLDER"),
		UploadLocalDir:      os.Getenv("UPLOAD_LOCAL_DIR"),
		AWSAccessKeyID:      os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey:  os.Getenv("AWS_SECRET_ACCESS_KEY"),
		AWSRegion:           os.Getenv("AWS_REGION"),
		S3Bucket:            os.Getenv("S3_BUCKET"),
		S3Endpoint:          os.Getenv("S3_ENDPOINT"),
		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),

		EmailProvider: os.Getenv("EMAIL_PROVIDER"),
		BrevoAPIKey:   os.Getenv("BREVO_API_KEY"),
		ResendAPIKey:  os.Getenv("RESEND_API_KEY"),
		EmailFrom:     os.Getenv("EMAIL_FROM"),
		EmailFromName: os.Getenv("EMAIL_FROM_NAME"),
		EmailReplyTo:  os.Getenv("EMAIL_REPLY_TO"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
	}

	// Default values
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "data"
	}
	if cfg.AdminUser == "" {
		cfg.AdminUser = "admin"
	}
	if cfg.AdminPass == "" {
		cfg.AdminPass = "1"
	}
	cfg.LLMProviderSet = cfg.LLMProvider != ""
	if cfg.LLMProvider == "" {
		cfg.LLMProvider = "yandex"
	}
	if cfg.VenueName == "" {
		cfg.VenueName = "D-Space"
	}
	if cfg.BackupSchedule == "" {
		cfg.BackupSchedule = "0 3 * * *"
	}
	if cfg.StorageBackend == "" {
		cfg.StorageBackend = "file"
	}
	if cfg.UploadFolder == "" {
		cfg.UploadFolder = "venue-backups"
	}
	if cfg.EmailFromName == "" {
		cfg.EmailFromName = cfg.VenueName
	}
	if cfg.AWSRegion == "" {
		cfg.AWSRegion = "us-east-1"
	}

	cfg.KnowledgeFile = dataPath(cfg.DataDir, "KNOWLEDGE_FILE", "knowledge_base.json")
	cfg.SuggestionsFile = dataPath(cfg.DataDir, "SUGGESTIONS_FILE", "suggestions.json")
	cfg.MenuFile = dataPath(cfg.DataDir, "MENU_FILE", "menu.json")
	cfg.MenuCategoriesFile = dataPath(cfg.DataDir, "MENU_CATEGORIES_FILE", "menu_categories.json")
	cfg.BookingsFile = dataPath(cfg.DataDir, "BOOKINGS_FILE", "bookings.json")
	cfg.LogFile = dataPath(cfg.DataDir, "LOG_FILE", "bot_log.json")
	cfg.FeedbackFile = dataPath(cfg.DataDir, "FEEDBACK_FILE", "feedback.json")
	cfg.BackupsDir = dataPath(cfg.DataDir, "BACKUPS_DIR", "backups")

	cfg.SessionTTL = envDuration("SESSION_TTL", 12*time.Hour)
	cfg.LLMTimeout = envDuration("LLM_TIMEOUT", 10*time.Second)
	cfg.LLMTemperature = float32(envFloat("LLM_TEMPERATURE", 0.3))
	cfg.LLMMaxTokens = envInt("LLM_MAX_TOKENS", 1000)
	cfg.HistoryMaxMessages = envInt("HISTORY_MAX_MESSAGES", 20)
	cfg.HistoryIdleTTL = envDuration("HISTORY_IDLE_TTL", 24*time.Hour)
	cfg.LogBackupEvery = envInt("LOG_BACKUP_EVERY", 100)
	cfg.BackupRetention = envInt("BACKUP_RETENTION", 30)

	return cfg
}

// IsProduction reports whether the service runs with ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// dataPath resolves a data file name from env, relative names land in dataDir.
func dataPath(dataDir, key, fallback string) string {
	name := os.Getenv(key)
	if name == "" {
		name = fallback
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dataDir, name)
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("⚠️ invalid %s=%q, using %d", key, raw, fallback)
		return fallback
	}
	return v
}

func envFloat(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 32)
	if err != nil {
		log.Printf("⚠️ invalid %s=%q, using %v", key, raw, fallback)
		return fallback
	}
	return v
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("⚠️ invalid %s=%q, using %s", key, raw, fallback)
		return fallback
	}
	return v
}
