package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	DBDSN        string
	JWTSecret    string
	UploadDir    string
	LogFile      string
	PayPalClient string

	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSRegion          string
	S3Bucket           string
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() Config {
	_ = godotenv.Load() // load .env if it exists

	cfg := Config{
		Port:         getenv("PORT", "5000"),
		DBDSN:        getenv("DB_DSN", "shopline.db"),
		JWTSecret:    getenv("JWT_SECRET", "somethingsecret"),
		UploadDir:    getenv("UPLOAD_DIR", "./uploads"),
		LogFile:      getenv("LOG_FILE", ""),
		PayPalClient: getenv("PAYPAL_CLIENT_ID", "sb"),

		AWSAccessKeyID:     getenv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getenv("AWS_SECRET_ACCESS_KEY", ""),
		AWSRegion:          getenv("AWS_REGION", "us-east-1"),
		S3Bucket:           getenv("S3_BUCKET", ""),
	}
	log.Printf("[config] PORT=%s DB_DSN=%s UPLOAD_DIR=%s S3_BUCKET=%s", cfg.Port, cfg.DBDSN, cfg.UploadDir, cfg.S3Bucket)
	return cfg
}
