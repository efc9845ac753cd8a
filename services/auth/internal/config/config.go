package config

import (
	"log"
	"os"
)

type Config struct {
	ListenAddr  string
	DatabaseURL string
	JWTSecret   []byte
	LogLevel    string
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func must(v string, name string) string {
	if v == "" {
		log.Fatalf("missing required env %s", name)
	}
	return v
}

func Load() *Config {
	return &Config{
		ListenAddr:  getenv("AUTH_ADDR", ":8081"),
		DatabaseURL: must(os.Getenv("DATABASE_URL"), "DATABASE_URL"),
		JWTSecret:   []byte(must(os.Getenv("JWT_HS256_SECRET"), "JWT_HS256_SECRET")),
		LogLevel:    getenv("LOG_LEVEL", "info"),
	}
}
