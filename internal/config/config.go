package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	APIAddr           string
	TemporalAddress   string
	TemporalTaskQueue string
	DataInRoot        string
	DataOutRoot       string
	MaxUploadMB       int
	HighlightRunes    int
	BatchEnabled      bool
}

func Load() Config {
	return Config{
		APIAddr:           getenv("RESUMERANK_API_ADDR", ":8080"),
		TemporalAddress:   getenv("RESUMERANK_TEMPORAL_ADDRESS", "localhost:7233"),
		TemporalTaskQueue: getenv("RESUMERANK_TEMPORAL_TASK_QUEUE", "resumerank"),
		DataInRoot:        getenv("RESUMERANK_DATA_IN", "./data/in"),
		DataOutRoot:       getenv("RESUMERANK_DATA_OUT", "./data/out"),
		MaxUploadMB:       getenvInt("RESUMERANK_MAX_UPLOAD_MB", 64),
		HighlightRunes:    getenvInt("RESUMERANK_HIGHLIGHT_RUNES", 280),
		BatchEnabled:      getenvBool("RESUMERANK_BATCH_ENABLED", true),
	}
}

func getenv(k, fallback string) string {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	return v
}

func getenvInt(k string, fallback int) int {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getenvBool(k string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
