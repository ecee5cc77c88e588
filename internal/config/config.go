package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr  string
	OutputDir string

	SheetURL string
	DataFile string

	FetchTimeoutMs int
	FetchRetries   int

	PageSize           int
	TopPersonnel       int
	PDFSubjectMaxRunes int

	RefreshIntervalSec int
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		HTTPAddr:  getEnv("ADOS_HTTP_ADDR", ":8080"),
		OutputDir: getEnv("ADOS_OUTPUT_DIR", filepath.Join(cwd, "out")),

		SheetURL: getEnv("ADOS_SHEET_URL", ""),
		DataFile: getEnv("ADOS_DATA_FILE", ""),

		FetchTimeoutMs: getEnvInt("ADOS_FETCH_TIMEOUT_MS", 30000),
		FetchRetries:   getEnvInt("ADOS_FETCH_RETRIES", 3),

		PageSize:           getEnvInt("ADOS_PAGE_SIZE", 10),
		TopPersonnel:       getEnvInt("ADOS_TOP_PERSONNEL", 10),
		PDFSubjectMaxRunes: getEnvInt("ADOS_PDF_SUBJECT_MAX", 30),

		RefreshIntervalSec: getEnvInt("ADOS_REFRESH_INTERVAL_SEC", 0),
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
	value := strings.TrimSpace(getEnv(key, ""))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
