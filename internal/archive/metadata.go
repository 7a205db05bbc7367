package archive

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

var ErrEmptyDayRange = errors.New("day range is empty")

type Metadata struct {
	Period           int    `json:"period"`
	DayRange         string `json:"day_range"`
	GeneratedDate    string `json:"generated_date"`
	ValidationStatus string `json:"validation_status"`
	TotalFiles       int    `json:"total_files"`
	ValidFiles       int    `json:"valid_files"`
}

// MetadataFromEnv reads PERIOD, DAY_RANGE, GEN_DATE, VALIDATION_STATUS,
// TOTAL_COUNT and VALID_COUNT through getenv.
func MetadataFromEnv(getenv func(string) string) (Metadata, error) {
	m := Metadata{
		DayRange:         strings.TrimSpace(getenv("DAY_RANGE")),
		GeneratedDate:    getenv("GEN_DATE"),
		ValidationStatus: getenv("VALIDATION_STATUS"),
	}
	if m.DayRange == "" {
		return Metadata{}, fmt.Errorf("DAY_RANGE: %w", ErrEmptyDayRange)
	}
	if m.ValidationStatus == "" {
		m.ValidationStatus = "UNKNOWN"
	}

	var err error
	if m.Period, err = envInt(getenv, "PERIOD", 1); err != nil {
		return Metadata{}, err
	}
	if m.TotalFiles, err = envInt(getenv, "TOTAL_COUNT", 0); err != nil {
		return Metadata{}, err
	}
	if m.ValidFiles, err = envInt(getenv, "VALID_COUNT", 0); err != nil {
		return Metadata{}, err
	}
	return m, nil
}

func envInt(getenv func(string) string, key string, fallback int) (int, error) {
	v := strings.TrimSpace(getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return n, nil
}

// WriteMetadata writes <root>/day-<range>/metadata.json and returns its path.
func WriteMetadata(root string, m Metadata) (string, error) {
	if strings.TrimSpace(m.DayRange) == "" {
		return "", ErrEmptyDayRange
	}
	dir := filepath.Join(root, "day-"+m.DayRange)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}
	raw, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode metadata: %w", err)
	}
	path := filepath.Join(dir, "metadata.json")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", fmt.Errorf("write metadata: %w", err)
	}
	return path, nil
}
