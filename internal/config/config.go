package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port    string
	DBDSN   string
	LogFile string
	Metrics bool
}

func Load() Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "fieldstock.db" // sqlite file in project root
	}
	logFile := os.Getenv("LOG_FILE")

	metrics := os.Getenv("METRICS_DISABLED") == ""

	cfg := Config{Port: port, DBDSN: dsn, LogFile: logFile, Metrics: metrics}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s METRICS=%v", cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.Metrics)
	return cfg
}
