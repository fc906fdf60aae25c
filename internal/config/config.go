package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath    string
	InboxDir  string
	OutputDir string

	CMEDPageURL   string
	HTTPTimeoutMs int
	DownloadDir   string

	WatcherIntervalSec int
	WatcherBatch       int
	WatcherAutoExport  bool
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DBPath:    getEnv("DB_PATH", filepath.Join(cwd, "data", "cmed.db")),
		InboxDir:  getEnv("INBOX_DIR", filepath.Join(cwd, "data", "inbox")),
		OutputDir: getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),

		CMEDPageURL:   getEnv("CMED_PAGE_URL", "https://www.gov.br/anvisa/pt-br/assuntos/medicamentos/cmed/precos"),
		HTTPTimeoutMs: getEnvInt("HTTP_TIMEOUT_MS", 120000),
		DownloadDir:   getEnv("DOWNLOAD_DIR", filepath.Join(cwd, "data", "downloads")),

		WatcherIntervalSec: getEnvInt("WATCHER_INTERVAL_SEC", 60),
		WatcherBatch:       getEnvInt("WATCHER_BATCH", 5),
		WatcherAutoExport:  getEnvBool("WATCHER_AUTO_EXPORT", true),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(key, "")))
	if value == "" {
		return fallback
	}
	if value == "1" || value == "true" || value == "yes" || value == "on" {
		return true
	}
	if value == "0" || value == "false" || value == "no" || value == "off" {
		return false
	}
	return fallback
}
