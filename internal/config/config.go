package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port          string `env:"PORT" envDefault:"5000"`
	MongoURI      string `env:"MONGO_URI,required"`
	DBName        string `env:"DB_NAME" envDefault:"akariomart"`
	JWTSecret     string `env:"JWT_SECRET,required"`
	JWTExpireDays int    `env:"JWT_EXPIRE_DAYS" envDefault:"30"`
}

// TokenTTL is the lifetime of issued session tokens.
func (c Config) TokenTTL() time.Duration {
	return time.Duration(c.JWTExpireDays) * 24 * time.Hour
}

// Load reads .env when present and parses the environment into a Config.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
