package validation

import (
	"sort"

	"utmequiz/internal/question"
)

const (
	StatusPassed  = "PASSED"
	StatusPartial = "PARTIAL"
)

type FileMetadata struct {
	FileSizeBytes int64  `json:"file_size_bytes,omitempty"`
	QuestionCount int    `json:"question_count"`
	Subject       string `json:"subject,omitempty"`
	HasDuplicates bool   `json:"has_duplicates"`
}

// FileResult is the validation outcome of one question file. Warnings never
// affect Valid.
type FileResult struct {
	Filename string       `json:"filename"`
	Filepath string       `json:"filepath"`
	Subject  string       `json:"subject,omitempty"`
	Valid    bool         `json:"valid"`
	Errors   []string     `json:"errors"`
	Warnings []string     `json:"warnings"`
	Metadata FileMetadata `json:"metadata"`

	// Questions is kept for the renderer and never serialized.
	Questions []question.Record `json:"-"`
}

type Summary struct {
	TotalFiles       int    `json:"total_files"`
	ValidFiles       int    `json:"valid_files"`
	InvalidFiles     int    `json:"invalid_files"`
	ValidationStatus string `json:"validation_status"`
}

type Report struct {
	Timestamp    string                `json:"timestamp"`
	Summary      Summary               `json:"summary"`
	ValidFiles   []string              `json:"valid_files"`
	InvalidFiles []string              `json:"invalid_files"`
	Details      map[string]FileResult `json:"details"`
	Warnings     []string              `json:"warnings"`
}

// Results returns the per-file results in filename order, which is also the
// order ValidateDirectory visits them.
func (r Report) Results() []FileResult {
	names := make([]string, 0, len(r.Details))
	for name := range r.Details {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]FileResult, 0, len(names))
	for _, name := range names {
		out = append(out, r.Details[name])
	}
	return out
}
