package config

import (
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// S3Config describes the optional S3-compatible bucket for chat attachments.
type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	PublicBaseURL   string
}

// Enabled reports whether enough settings are present to presign uploads.
func (c S3Config) Enabled() bool {
	return c.Bucket != "" && c.AccessKeyID != "" && c.SecretAccessKey != ""
}

// DevJWTSecret is the signing key used when JWT_SECRET is unset. It is only
// acceptable outside production.
const DevJWTSecret = "supersecretjwtkey"

type Config struct {
	Port                    string
	Env                     string
	LogLevel                string
	JWTSecret               string
	TokenTTL                time.Duration
	StorageDriver           string
	MongoURI                string
	MongoDatabase           string
	PostgresConnStr         string
	FirebaseCredentialsPath string
	AllowedOrigins          []string
	HandlerTimeout          time.Duration
	SendBuffer              int
	S3                      S3Config
}

// Load reads .env (if present) and the process environment. Unset keys fall
// back to development defaults.
func Load() *Config {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("No", envFile, "file found, assuming environment variables are set.")
	}

	v := viper.New()
	v.SetDefault("PORT", "6001")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("JWT_SECRET", DevJWTSecret)
	v.SetDefault("TOKEN_TTL", "1h")
	v.SetDefault("STORAGE_DRIVER", "mongo")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "socialex")
	v.SetDefault("CLIENT_ORIGIN", "http://localhost:5173")
	v.SetDefault("HANDLER_TIMEOUT", "10s")
	v.SetDefault("SEND_BUFFER", 64)
	v.SetDefault("S3_REGION", "auto")
	v.AutomaticEnv()

	return &Config{
		Port:                    v.GetString("PORT"),
		Env:                     v.GetString("ENV"),
		LogLevel:                v.GetString("LOG_LEVEL"),
		JWTSecret:               v.GetString("JWT_SECRET"),
		TokenTTL:                parseDuration(v.GetString("TOKEN_TTL"), time.Hour),
		StorageDriver:           strings.ToLower(v.GetString("STORAGE_DRIVER")),
		MongoURI:                v.GetString("MONGO_URI"),
		MongoDatabase:           v.GetString("MONGO_DATABASE"),
		PostgresConnStr:         v.GetString("POSTGRES_CONN_STR"),
		FirebaseCredentialsPath: v.GetString("FIREBASE_CREDENTIALS_PATH"),
		AllowedOrigins:          splitList(v.GetString("CLIENT_ORIGIN")),
		HandlerTimeout:          parseDuration(v.GetString("HANDLER_TIMEOUT"), 10*time.Second),
		SendBuffer:              positiveOr(v.GetInt("SEND_BUFFER"), 64),
		S3: S3Config{
			Bucket:          v.GetString("S3_BUCKET"),
			Region:          v.GetString("S3_REGION"),
			Endpoint:        v.GetString("S3_ENDPOINT"),
			AccessKeyID:     v.GetString("S3_ACCESS_KEY_ID"),
			SecretAccessKey: v.GetString("S3_SECRET_ACCESS_KEY"),
			PublicBaseURL:   v.GetString("S3_PUBLIC_BASE_URL"),
		},
	}
}

func parseDuration(s string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil && d > 0 {
		return d
	}
	return def
}

func positiveOr(n, def int) int {
	if n > 0 {
		return n
	}
	return def
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

// Validate rejects settings that are unsafe for the configured environment.
func (c *Config) Validate() error {
	if c.Env == "production" && (c.JWTSecret == "" || c.JWTSecret == DevJWTSecret) {
		return errors.New("JWT_SECRET must be set to a non-default value in production")
	}
	return nil
}

// UsesDevSecret reports whether tokens are signed with the built-in key.
func (c *Config) UsesDevSecret() bool {
	return c.JWTSecret == DevJWTSecret
}
