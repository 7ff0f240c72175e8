package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI string
	MongoDB  string
	Port     string
	Env      string
}

func LoadConfig() *Config {
	// Solo cargar .env en desarrollo local
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Error loading .env file:", err)
		}
	}

	return &Config{
		MongoURI: getEnv("MONGO_URI", "mongodb://localhost:27017/"),
		MongoDB:  getEnv("MONGO_DB", "moto_shop_db"),
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("APP_ENV", "development"),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
