package validation

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"utmequiz/internal/question"

	"go.uber.org/zap"
)

const DefaultMaxFileBytes int64 = 5_000_000

var (
	ErrDirectoryNotFound = errors.New("question directory not found")
	ErrNoQuestionFiles   = errors.New("no .txt question files found")
)

// Validator applies file-level checks on top of the parser and aggregates
// them into a Report. It holds no mutable state.
type Validator struct {
	parser   *question.Parser
	maxBytes int64
	log      *zap.Logger
	now      func() time.Time
}

func NewValidator(p *question.Parser, maxBytes int64, log *zap.Logger) *Validator {
	if p == nil {
		p = question.NewParser(nil, 0)
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxFileBytes
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Validator{parser: p, maxBytes: maxBytes, log: log, now: time.Now}
}

func (v *Validator) ValidateFile(path string) FileResult {
	name := filepath.Base(path)
	res := FileResult{
		Filename: name,
		Filepath: path,
		Errors:   []string{},
		Warnings: []string{},
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			res.Errors = append(res.Errors, fmt.Sprintf("file not found: %s", path))
		} else {
			res.Errors = append(res.Errors, fmt.Sprintf("failed to read file: %v", err))
		}
		return res
	}

	size := info.Size()
	if size == 0 {
		res.Errors = append(res.Errors, "file is empty")
		return res
	}
	if size > v.maxBytes {
		res.Errors = append(res.Errors, fmt.Sprintf("file too large: %.2fMB (max %gMB)",
			float64(size)/1_000_000, float64(v.maxBytes)/1_000_000))
		return res
	}
	res.Metadata.FileSizeBytes = size

	if ext := filepath.Ext(name); ext != ".txt" {
		res.Warnings = append(res.Warnings, fmt.Sprintf("unexpected file extension: %s (expected .txt)", ext))
	}

	subject, detected := v.parser.Subject(name)
	if !detected {
		res.Warnings = append(res.Warnings, "could not detect subject from filename")
	}
	res.Subject = subject

	// A count other than the parser's expected count already fails here as
	// "question count mismatch", so a parsed file always has exactly that many.
	parsed := v.parser.ParseFile(path)
	if !parsed.Success {
		res.Errors = append(res.Errors, parsed.Errors...)
		return res
	}
	count := parsed.QuestionCount()

	dups := duplicateTextPositions(parsed.Questions)
	if len(dups) > 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("possible duplicate questions at positions: %s", formatPositions(dups)))
	}

	res.Metadata.QuestionCount = count
	res.Metadata.Subject = subject
	res.Metadata.HasDuplicates = len(dups) > 0
	res.Questions = parsed.Questions
	res.Valid = len(res.Errors) == 0
	return res
}

// ValidateDirectory validates every *.txt file directly inside dir, in name
// order. Invalid files are part of the report, not an error.
func (v *Validator) ValidateDirectory(dir string) (Report, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Report{}, fmt.Errorf("validate %s: %w", dir, ErrDirectoryNotFound)
		}
		return Report{}, fmt.Errorf("stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return Report{}, fmt.Errorf("validate %s: %w", dir, ErrDirectoryNotFound)
	}

	paths, err := QuestionFiles(dir)
	if err != nil {
		return Report{}, err
	}
	if len(paths) == 0 {
		return Report{}, fmt.Errorf("validate %s: %w", dir, ErrNoQuestionFiles)
	}

	results := make([]FileResult, 0, len(paths))
	for _, path := range paths {
		res := v.ValidateFile(path)
		v.log.Debug("validated question file",
			zap.String("file", res.Filename),
			zap.Bool("valid", res.Valid),
			zap.Int("errors", len(res.Errors)),
			zap.Int("warnings", len(res.Warnings)),
		)
		results = append(results, res)
	}

	r := BuildReport(results, v.now())
	v.log.Info("validation finished",
		zap.String("dir", dir),
		zap.Int("total", r.Summary.TotalFiles),
		zap.Int("valid", r.Summary.ValidFiles),
		zap.Int("invalid", r.Summary.InvalidFiles),
		zap.String("status", r.Summary.ValidationStatus),
	)
	return r, nil
}

// QuestionFiles lists the regular files in dir whose extension is .txt in any
// letter case. os.ReadDir already returns them sorted by name.
func QuestionFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".txt") {
			continue
		}
		out = append(out, filepath.Join(dir, e.Name()))
	}
	return out, nil
}

func BuildReport(results []FileResult, at time.Time) Report {
	r := Report{
		Timestamp:    at.UTC().Format(time.RFC3339),
		ValidFiles:   []string{},
		InvalidFiles: []string{},
		Details:      make(map[string]FileResult, len(results)),
		Warnings:     []string{},
	}
	for _, res := range results {
		r.Details[res.Filename] = res
		if res.Valid {
			r.ValidFiles = append(r.ValidFiles, res.Filename)
		} else {
			r.InvalidFiles = append(r.InvalidFiles, res.Filename)
		}
	}

	r.Summary = Summary{
		TotalFiles:       len(r.Details),
		ValidFiles:       len(r.ValidFiles),
		InvalidFiles:     len(r.InvalidFiles),
		ValidationStatus: StatusPassed,
	}
	if len(r.InvalidFiles) > 0 {
		r.Summary.ValidationStatus = StatusPartial
	}
	return r
}

func duplicateTextPositions(records []question.Record) []int {
	seen := make(map[string]struct{}, len(records))
	var dups []int
	for i, rec := range records {
		text := strings.ToLower(strings.TrimSpace(rec.Text))
		if _, ok := seen[text]; ok {
			dups = append(dups, i+1)
			continue
		}
		seen[text] = struct{}{}
	}
	return dups
}

func formatPositions(ps []int) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = strconv.Itoa(p)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
