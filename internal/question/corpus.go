package question

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// DefaultExpectedCount is the number of questions a file carries by convention.
const DefaultExpectedCount = 35

// ValidateCorpus checks the records of one file against each other and
// returns diagnostics. Records are never removed. Every check runs even when
// an earlier one already failed.
func ValidateCorpus(records []Record, expected int) []string {
	var diags []string

	if len(records) != expected {
		diags = append(diags, fmt.Sprintf("question count mismatch: expected %d, got %d", expected, len(records)))
	}

	counts := make(map[int]int, len(records))
	for _, r := range records {
		counts[r.ID]++
	}

	var dups []int
	for id, n := range counts {
		if n > 1 {
			dups = append(dups, id)
		}
	}
	if len(dups) > 0 {
		sort.Ints(dups)
		diags = append(diags, fmt.Sprintf("duplicate question ids: {%s}", joinInts(dups)))
	}

	var missing []int
	for id := 1; id <= len(records); id++ {
		if counts[id] == 0 {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		diags = append(diags, fmt.Sprintf("missing question numbers: [%s]", joinInts(missing)))
	}

	for _, r := range records {
		if r.Text == "" {
			diags = append(diags, fmt.Sprintf("question %d: empty question text", r.ID))
		}
		for _, l := range Labels {
			if r.Option(l) == "" {
				diags = append(diags, fmt.Sprintf("question %d: empty option %s", r.ID, l))
			}
		}
		if !isLabel(r.Answer) {
			diags = append(diags, fmt.Sprintf("question %d: invalid answer %q", r.ID, r.Answer))
		}
	}

	return diags
}

func isLabel(v string) bool {
	for _, l := range Labels {
		if v == l {
			return true
		}
	}
	return false
}

func joinInts(vals []int) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}
