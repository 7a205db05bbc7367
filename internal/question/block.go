package question

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	ErrTooFewLines       = errors.New("block has fewer than 6 lines")
	ErrNoQuestionLine    = errors.New(`first line is not "<number>. <question text>"`)
	ErrBadQuestionNumber = errors.New("question number must be a positive integer")
	ErrDuplicateOption   = errors.New("duplicate option label")
	ErrMissingOptions    = errors.New("options A, B, C and D are not all present")
	ErrMissingAnswer     = errors.New(`no "Answer: <A-D>" line`)
)

const minBlockLines = 6

var (
	questionLinePattern = regexp.MustCompile(`^(\d+)\.\s*(.+)$`)
	optionLinePattern   = regexp.MustCompile(`(?i)^([A-D])\.\s*(.+)$`)
	answerLinePattern   = regexp.MustCompile(`(?i)^Answer:\s*([A-D])$`)
)

// ParseBlock applies the block grammar to one non-blank chunk. It either
// returns a complete record or an error naming the first rule the block
// broke; partial records are never produced.
func ParseBlock(block string) (Record, error) {
	lines := nonBlankLines(block)
	if len(lines) < minBlockLines {
		return Record{}, fmt.Errorf("%w (got %d)", ErrTooFewLines, len(lines))
	}

	m := questionLinePattern.FindStringSubmatch(lines[0])
	if m == nil {
		return Record{}, ErrNoQuestionLine
	}
	id, err := strconv.Atoi(m[1])
	if err != nil || id < 1 {
		return Record{}, fmt.Errorf("%w: %q", ErrBadQuestionNumber, m[1])
	}

	options := make(map[string]string, len(Labels))
	for _, line := range lines[1:] {
		om := optionLinePattern.FindStringSubmatch(line)
		if om == nil {
			continue
		}
		label := strings.ToUpper(om[1])
		if _, dup := options[label]; dup {
			return Record{}, fmt.Errorf("%w %s", ErrDuplicateOption, label)
		}
		options[label] = strings.TrimSpace(om[2])
	}
	if len(options) != len(Labels) {
		return Record{}, fmt.Errorf("%w (found %d)", ErrMissingOptions, len(options))
	}

	answer := ""
	for _, line := range lines {
		if am := answerLinePattern.FindStringSubmatch(line); am != nil {
			answer = strings.ToUpper(am[1])
			break
		}
	}
	if answer == "" {
		return Record{}, ErrMissingAnswer
	}

	return Record{
		ID:      id,
		Text:    strings.TrimSpace(m[2]),
		OptionA: options["A"],
		OptionB: options["B"],
		OptionC: options["C"],
		OptionD: options["D"],
		Answer:  answer,
	}, nil
}

func nonBlankLines(block string) []string {
	raw := strings.Split(block, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
