package question

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Labels are the option letters in canonical order.
var Labels = []string{"A", "B", "C", "D"}

// Record is one accepted question. Text fields hold the source text verbatim;
// escaping is left to whoever renders them.
type Record struct {
	ID      int    `json:"id"`
	Text    string `json:"text"`
	OptionA string `json:"optionA"`
	OptionB string `json:"optionB"`
	OptionC string `json:"optionC"`
	OptionD string `json:"optionD"`
	Answer  string `json:"answer"`
}

// Option returns the text for an option label, or "" for an unknown label.
func (r Record) Option(label string) string {
	switch strings.ToUpper(label) {
	case "A":
		return r.OptionA
	case "B":
		return r.OptionB
	case "C":
		return r.OptionC
	case "D":
		return r.OptionD
	default:
		return ""
	}
}

// Canonical renders the record back into block form: id line, options A to D
// in order, answer line.
func (r Record) Canonical() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d. %s\n", r.ID, r.Text))
	for _, l := range Labels {
		sb.WriteString(fmt.Sprintf("%s. %s\n", l, r.Option(l)))
	}
	sb.WriteString(fmt.Sprintf("Answer: %s", r.Answer))
	return sb.String()
}

// ParseResult is the outcome of parsing one question file.
type ParseResult struct {
	Filename      string
	Subject       string
	Questions     []Record
	Errors        []string
	Success       bool
	BlocksSkipped int
}

func (p ParseResult) QuestionCount() int {
	return len(p.Questions)
}

type parseResultJSON struct {
	Success       bool     `json:"success"`
	Subject       *string  `json:"subject"`
	Questions     []Record `json:"questions"`
	QuestionCount int      `json:"question_count"`
	Errors        []string `json:"errors"`
	Filename      string   `json:"filename"`
	BlocksSkipped int      `json:"blocks_skipped"`
}

func (p ParseResult) MarshalJSON() ([]byte, error) {
	out := parseResultJSON{
		Success:       p.Success,
		Questions:     p.Questions,
		QuestionCount: len(p.Questions),
		Errors:        p.Errors,
		Filename:      p.Filename,
		BlocksSkipped: p.BlocksSkipped,
	}
	if p.Subject != "" {
		s := p.Subject
		out.Subject = &s
	}
	if out.Questions == nil {
		out.Questions = []Record{}
	}
	if out.Errors == nil {
		out.Errors = []string{}
	}
	return json.Marshal(out)
}

func (p *ParseResult) UnmarshalJSON(b []byte) error {
	var in parseResultJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	*p = ParseResult{
		Filename:      in.Filename,
		Questions:     in.Questions,
		Errors:        in.Errors,
		Success:       in.Success,
		BlocksSkipped: in.BlocksSkipped,
	}
	if in.Subject != nil {
		p.Subject = *in.Subject
	}
	return nil
}
