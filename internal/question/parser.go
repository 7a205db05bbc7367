package question

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"utmequiz/internal/catalog"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Parser turns question files into ParseResults. It holds no mutable state
// and is safe to share.
type Parser struct {
	catalog  *catalog.Catalog
	expected int
}

func NewParser(c *catalog.Catalog, expectedCount int) *Parser {
	if c == nil {
		c = catalog.Default()
	}
	if expectedCount <= 0 {
		expectedCount = DefaultExpectedCount
	}
	return &Parser{catalog: c, expected: expectedCount}
}

func (p *Parser) ExpectedCount() int {
	return p.expected
}

// Subject detects the subject from a filename. When detection fails the
// title-cased filename stem is returned with detected=false.
func (p *Parser) Subject(filename string) (subject string, detected bool) {
	if s, ok := p.catalog.Detect(filename); ok {
		return s, true
	}
	return FallbackSubject(filename), false
}

// FallbackSubject derives a display name from the filename stem:
// "past_papers-2024.txt" becomes "Past Papers 2024".
func FallbackSubject(filename string) string {
	base := filepath.Base(filename)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	stem = strings.NewReplacer("_", " ", "-", " ").Replace(stem)
	return cases.Title(language.Und).String(stem)
}

// ParseFile never fails: every problem, including I/O trouble, ends up as a
// diagnostic in the returned result.
func (p *Parser) ParseFile(path string) ParseResult {
	name := filepath.Base(path)

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return failed(name, "", fmt.Sprintf("file not found: %s", path))
		}
		return failed(name, "", fmt.Sprintf("failed to read file: %v", err))
	}

	content, err := os.ReadFile(path)
	if err != nil {
		subject, diags := p.subjectDiagnostics(name)
		return failed(name, subject, append(diags, fmt.Sprintf("failed to read file: %v", err))...)
	}
	return p.ParseContent(name, content)
}

// ParseContent runs detection, tokenizing, block grammar and corpus checks
// over already-read file content.
func (p *Parser) ParseContent(filename string, content []byte) ParseResult {
	name := filepath.Base(filename)
	subject, diags := p.subjectDiagnostics(name)

	if !utf8.Valid(content) {
		return failed(name, subject, append(diags, fmt.Sprintf("file encoding error - not UTF-8: %s", name))...)
	}

	blocks := Tokenize(string(content))
	if len(blocks.Candidates) == 0 {
		res := failed(name, subject, append(diags, "no question blocks found")...)
		res.BlocksSkipped = blocks.Skipped
		return res
	}

	records := make([]Record, 0, len(blocks.Candidates))
	for i, b := range blocks.Candidates {
		rec, err := ParseBlock(b)
		if err != nil {
			diags = append(diags, fmt.Sprintf("Block %d: failed to parse question: %v", i+1, err))
			continue
		}
		records = append(records, rec)
	}

	if len(records) > 0 {
		diags = append(diags, ValidateCorpus(records, p.expected)...)
	}

	return ParseResult{
		Filename:      name,
		Subject:       subject,
		Questions:     records,
		Errors:        diags,
		Success:       len(diags) == 0,
		BlocksSkipped: blocks.Skipped,
	}
}

// BatchParse parses each path independently and keys results by filename.
func (p *Parser) BatchParse(paths []string) map[string]ParseResult {
	out := make(map[string]ParseResult, len(paths))
	for _, path := range paths {
		res := p.ParseFile(path)
		out[res.Filename] = res
	}
	return out
}

func (p *Parser) subjectDiagnostics(filename string) (string, []string) {
	subject, ok := p.Subject(filename)
	if ok {
		return subject, nil
	}
	return subject, []string{fmt.Sprintf("warning: could not detect subject from filename: %s", filename)}
}

func failed(filename, subject string, diags ...string) ParseResult {
	return ParseResult{
		Filename:  filename,
		Subject:   subject,
		Questions: []Record{},
		Errors:    diags,
		Success:   false,
	}
}
