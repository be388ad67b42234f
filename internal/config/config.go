package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string

	// DBDriver selects the GORM driver: "postgres" or "mysql".
	DBDriver string
	DBDSN    string

	SessionSecret string
	SessionMaxAge int // seconds
	RedisAddr     string
	RedisPassword string

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	AdminEmail   string

	LogLevel string
}

func Load() *Config {
	_ = godotenv.Load()

	driver := getEnv("DB_DRIVER", "postgres")

	dsnDefault := "host=localhost user=bbs password=bbs dbname=bbs_db port=5432 sslmode=disable"
	if driver == "mysql" {
		dsnDefault = "bbs:bbs@tcp(localhost:3306)/bbs_db?charset=utf8mb4&parseTime=True&loc=Local"
	}

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),

		DBDriver: driver,
		DBDSN:    getEnv("DB_DSN", dsnDefault),

		SessionSecret: getEnv("SESSION_SECRET", "bbs-secret-key"),
		SessionMaxAge: getEnvInt("SESSION_MAX_AGE_HOURS", 12) * 3600,
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		AdminEmail:   os.Getenv("ADMIN_EMAIL"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
