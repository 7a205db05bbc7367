package archive

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"utmequiz/internal/question"
	"utmequiz/internal/validation"

	"go.uber.org/zap"
)

// PreviousQuestion is an archived question kept as opaque JSON.
type PreviousQuestion map[string]any

// listKeys are the object keys, in lookup order, that may hold the question
// list when the file is not a bare array.
var listKeys = []string{"questions", "previous_questions", "items", "data"}

// Collector gathers the questions of an archived period into one JSON array.
type Collector struct {
	parser *question.Parser
	log    *zap.Logger
}

func NewCollector(p *question.Parser, log *zap.Logger) *Collector {
	if p == nil {
		p = question.NewParser(nil, 0)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Collector{parser: p, log: log}
}

// Collect parses <archiveDir>/day-<dayRange>/*.txt and writes every question
// of each successfully parsed file to outFile. A missing folder or one with
// no question files yields "[]". Only failing to write outFile is an error.
func (c *Collector) Collect(archiveDir, dayRange, outFile string) (int, error) {
	folder := filepath.Join(archiveDir, "day-"+dayRange)

	all := []question.Record{}
	if _, err := os.Stat(folder); err != nil {
		c.log.Info("archive folder not found, writing empty array", zap.String("folder", folder))
		return 0, writeJSON(outFile, all)
	}

	paths, err := validation.QuestionFiles(folder)
	if err != nil {
		c.log.Warn("archive folder unreadable, writing empty array", zap.String("folder", folder), zap.Error(err))
		return 0, writeJSON(outFile, all)
	}
	if len(paths) == 0 {
		c.log.Info("no question files in archive folder", zap.String("folder", folder))
		return 0, writeJSON(outFile, all)
	}

	for _, path := range paths {
		res := c.parser.ParseFile(path)
		if !res.Success || res.QuestionCount() == 0 {
			c.log.Warn("archived file skipped", zap.String("file", res.Filename), zap.Strings("errors", res.Errors))
			continue
		}
		all = append(all, res.Questions...)
		c.log.Debug("archived file collected", zap.String("file", res.Filename), zap.Int("questions", res.QuestionCount()))
	}

	if err := writeJSON(outFile, all); err != nil {
		return 0, err
	}
	c.log.Info("previous questions collected", zap.Int("questions", len(all)), zap.String("output", outFile))
	return len(all), nil
}

// LoadPrevious reads previously published questions. It accepts a JSON array
// or an object holding the array under one of listKeys. Anything else,
// including a missing or malformed file, yields an empty list.
func LoadPrevious(path string) []PreviousQuestion {
	out := []PreviousQuestion{}
	if path == "" {
		return out
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return out
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return out
	}

	var items []any
	switch v := doc.(type) {
	case []any:
		items = v
	case map[string]any:
		for _, k := range listKeys {
			if list, ok := v[k].([]any); ok {
				items = list
				break
			}
		}
	}

	for _, it := range items {
		if obj, ok := it.(map[string]any); ok {
			out = append(out, PreviousQuestion(obj))
		}
	}
	return out
}

// PreviousJSON encodes previous questions for embedding in a quiz page.
func PreviousJSON(items []PreviousQuestion) ([]byte, error) {
	if items == nil {
		items = []PreviousQuestion{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode previous questions: %w", err)
	}
	return raw, nil
}

func writeJSON(path string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
