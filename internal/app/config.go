package app

import (
	"os"
	"strconv"
	"strings"
)

// Config stores runtime configuration loaded from environment variables.
type Config struct {
	AppEnv   string
	HTTPAddr string
	LogLevel string

	QuesttDir    string
	OutputDir    string
	QuizTemplate string
	CatalogFile  string

	ExpectedQuestions int
	MaxFileBytes      int64
	MaxParseBodyBytes int64
	ParseRateLimitMin int
}

func LoadConfig() Config {
	return Config{
		AppEnv:            envOrDefault("APP_ENV", "development"),
		HTTPAddr:          envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:          envOrDefault("LOG_LEVEL", "info"),
		QuesttDir:         envOrDefault("QUESTT_DIR", "questt"),
		OutputDir:         envOrDefault("OUTPUT_DIR", "site"),
		QuizTemplate:      os.Getenv("QUIZ_TEMPLATE"),
		CatalogFile:       os.Getenv("CATALOG_FILE"),
		ExpectedQuestions: intOrDefault("EXPECTED_QUESTIONS", 35),
		MaxFileBytes:      int64(intOrDefault("MAX_FILE_BYTES", 5_000_000)),
		MaxParseBodyBytes: int64(intOrDefault("MAX_PARSE_BODY_BYTES", 5_000_000)),
		ParseRateLimitMin: intOrDefault("PARSE_RATE_LIMIT_PER_MINUTE", 60),
	}
}

func (c Config) IsDevelopment() bool {
	return strings.EqualFold(c.AppEnv, "development")
}

func envOrDefault(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func stringsToInt(v string) int {
	n, _ := strconv.Atoi(v)
	return n
}

func intOrDefault(key string, fallback int) int {
	v := stringsToInt(os.Getenv(key))
	if v <= 0 {
		return fallback
	}
	return v
}
