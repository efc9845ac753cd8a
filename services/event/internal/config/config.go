package config

import (
	"log"
	"os"
	"strings"
)

type Config struct {
	ListenAddr  string
	DatabaseURL string
	LogLevel    string

	// KafkaBrokers empty means verdict publishing is disabled.
	KafkaBrokers []string
	KafkaTopic   string

	// ESURL empty means search is disabled.
	ESURL      string
	ESUser     string
	ESPassword string
	ESIndex    string
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

func splitCSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func Load() *Config {
	return &Config{
		ListenAddr:   getenv("EVENT_ADDR", ":8082"),
		DatabaseURL:  must(os.Getenv("DATABASE_URL"), "DATABASE_URL"),
		LogLevel:     getenv("LOG_LEVEL", "info"),
		KafkaBrokers: splitCSV(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   getenv("KAFKA_TOPIC", "reward-request-verdicts"),
		ESURL:        os.Getenv("ES_URL"),
		ESUser:       os.Getenv("ES_USER"),
		ESPassword:   os.Getenv("ES_PASSWORD"),
		ESIndex:      getenv("ES_INDEX", "events"),
	}
}
