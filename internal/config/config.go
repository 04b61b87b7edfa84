package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	DBDSN     string
	RedisAddr string
	JWTSecret string
	LogFile   string
}

func Load() Config {
	// .env is optional; env vars win
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "ecofinds.db" // sqlite file in project root
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "ecofinds-dev-secret"
		log.Println("[config] JWT_SECRET not set, using dev secret")
	}

	cfg := Config{
		Port:      port,
		DBDSN:     dsn,
		RedisAddr: os.Getenv("REDIS_ADDR"), // empty disables the idempotency cache
		JWTSecret: secret,
		LogFile:   os.Getenv("LOG_FILE"),
	}
	log.Printf("[config] PORT=%s DB_DSN=%s REDIS_ADDR=%s LOG_FILE=%s", cfg.Port, cfg.DBDSN, cfg.RedisAddr, cfg.LogFile)
	return cfg
}
