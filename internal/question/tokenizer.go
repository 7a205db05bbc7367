package question

import (
	"regexp"
	"strings"
)

var questionStartLine = regexp.MustCompile(`^\d+\.`)

const byteOrderMark = "\ufeff"

// Blocks is the tokenizer output. Candidates are the chunks the grammar will
// attempt; Skipped counts leading header chunks that were filtered out and
// are never reported as failed blocks.
type Blocks struct {
	Candidates []string
	Skipped    int
}

// Tokenize splits raw file text into question-candidate blocks.
//
// Chunks are separated by one or more blank lines. A line is blank when
// strings.TrimSpace empties it, the same test the block grammar uses, so
// Unicode spaces such as U+00A0 separate blocks too. Chunks that appear
// before the first chunk opening with "<digits>." are treated as a title or
// header and skipped; everything from that chunk on is a parse attempt,
// including later chunks that do not look like questions.
func Tokenize(content string) Blocks {
	content = strings.TrimPrefix(content, byteOrderMark)
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.TrimSpace(content)

	var out Blocks
	if content == "" {
		return out
	}

	seenQuestion := false
	for _, chunk := range splitOnBlankLines(content) {
		if !seenQuestion {
			if !questionStartLine.MatchString(firstLine(chunk)) {
				out.Skipped++
				continue
			}
			seenQuestion = true
		}
		out.Candidates = append(out.Candidates, chunk)
	}
	return out
}

func firstLine(chunk string) string {
	if i := strings.IndexByte(chunk, '\n'); i >= 0 {
		return strings.TrimSpace(chunk[:i])
	}
	return chunk
}

func splitOnBlankLines(content string) []string {
	var chunks []string
	var cur []string
	flush := func() {
		if len(cur) > 0 {
			chunks = append(chunks, strings.TrimSpace(strings.Join(cur, "\n")))
			cur = cur[:0]
		}
	}
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		cur = append(cur, line)
	}
	flush()
	return chunks
}
