package config

import (
	"log"
	"os"
)

type Config struct {
	ListenAddr string
	AuthURL    string
	EventURL   string
	JWTSecret  []byte
	LogLevel   string
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
		ListenAddr: getenv("GATEWAY_ADDR", ":8080"),
		AuthURL:    must(os.Getenv("AUTH_URL"), "AUTH_URL"),
		EventURL:   must(os.Getenv("EVENT_URL"), "EVENT_URL"),
		JWTSecret:  []byte(must(os.Getenv("JWT_HS256_SECRET"), "JWT_HS256_SECRET")),
		LogLevel:   getenv("LOG_LEVEL", "info"),
	}
}
