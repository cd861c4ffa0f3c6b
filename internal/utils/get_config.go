package utils

import (
	"os"
	"sync"

	"github.com/gofiber/fiber/v2/log"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	// Server
	Port    string `yaml:"PORT"`
	LogFile string `yaml:"LOG_FILE"`

	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	// JWT
	JWTSecret string `yaml:"JWT_SECRET"`

	// Mailing configuration
	AppURL           string `yaml:"APP_URL"`
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`

	// Gemini API configuration
	GeminiAPIKey string `yaml:"GEMINI_API_KEY"`
	GeminiModel  string `yaml:"GEMINI_MODEL"`

	// Google Maps geocoding
	GoogleMapsAPIKey string `yaml:"GOOGLE_MAPS_API_KEY"`
}

var (
	config     Config
	loadConfig sync.Once
)

// LoadConfig reads config.yaml, then .env, then the process environment.
// Later sources win. Safe to call more than once.
func LoadConfig() {
	loadConfig.Do(func() {
		file, err := os.ReadFile("config.yaml")
		if err != nil {
			log.Warnf("error reading YAML file: %v", err)
		} else if err := yaml.Unmarshal(file, &config); err != nil {
			log.Errorf("error parsing YAML file: %v", err)
		}

		if err := godotenv.Load(); err != nil {
			log.Debugf(".env file not loaded: %v", err)
		}
	})
}

func GetConfig(key string) string {
	LoadConfig()
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}

	switch key {
	case "PORT":
		return withDefault(config.Port, "8080")
	case "LOG_FILE":
		return withDefault(config.LogFile, "./logs/app.log")
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return withDefault(config.DBPort, "5432")
	case "DB_HOST":
		return withDefault(config.DBHost, "localhost")
	case "JWT_SECRET":
		return config.JWTSecret
	case "APP_URL":
		return config.AppURL
	case "SMTP_HOST":
		return config.SMTPHost
	case "SMTP_PORT":
		return config.SMTPPort
	case "SMTP_SENDER_NAME":
		return config.SMTPSenderName
	case "SMTP_AUTH_EMAIL":
		return config.SMTPAuthEmail
	case "SMTP_AUTH_PASSWORD":
		return config.SMTPAuthPassword
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	case "GEMINI_API_KEY":
		return config.GeminiAPIKey
	case "GEMINI_MODEL":
		return withDefault(config.GeminiModel, "gemini-2.5-flash")
	case "GOOGLE_MAPS_API_KEY":
		return config.GoogleMapsAPIKey
	default:
		return ""
	}
}

func withDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
