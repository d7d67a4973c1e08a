package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	Env             string
	PostgresConnStr string
	MongoURI        string
	MongoDBName     string
	JWTSecret       string
	FrontendURL     string
	SMTPHost        string
	SMTPPort        string
	SMTPUser        string
	SMTPPass        string
	EmailFrom       string
}

// Load reads the .env file, if any, and builds the config from the
// environment. It must run before anything reads these variables.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	return &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("ENV", "development"),
		PostgresConnStr: getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:     getEnv("MONGO_DB_NAME", "glorious-tales"),
		JWTSecret:       getEnv("JWT_SECRET", "supersecretjwtkey"),
		FrontendURL:     getEnv("FRONTEND_URL", "http://localhost:5173"),
		SMTPHost:        getEnv("SMTP_HOST", ""),
		SMTPPort:        getEnv("SMTP_PORT", "587"),
		SMTPUser:        getEnv("SMTP_USER", ""),
		SMTPPass:        getEnv("SMTP_PASS", ""),
		EmailFrom:       getEnv("EMAIL_FROM", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
