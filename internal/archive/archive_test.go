package archive

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func questionFile(n int) string {
	blocks := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		blocks = append(blocks, fmt.Sprintf("%d. Question %d?\nA. one\nB. two\nC. three\nD. four\nAnswer: D", i, i))
	}
	return strings.Join(blocks, "\n\n")
}

func readArray(t *testing.T, path string) []map[string]any {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var out []map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestCollect(t *testing.T) {
	root := t.TempDir()
	day := filepath.Join(root, "day-1-2")
	require.NoError(t, os.MkdirAll(day, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(day, "physics.txt"), []byte(questionFile(35)), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(day, "english.txt"), []byte(questionFile(35)), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(day, "chemistry.txt"), []byte(questionFile(10)), 0o644))

	out := filepath.Join(t.TempDir(), "tmp", "prev.json")
	n, err := NewCollector(nil, nil).Collect(root, "1-2", out)
	require.NoError(t, err)
	require.Equal(t, 70, n)

	items := readArray(t, out)
	require.Len(t, items, 70)
	require.Equal(t, "D", items[0]["answer"])
}

func TestCollectEmptyCases(t *testing.T) {
	tests := []struct {
		name  string
		setup func(root string)
	}{
		{name: "missing folder", setup: func(string) {}},
		{name: "no txt files", setup: func(root string) {
			dir := filepath.Join(root, "day-3-4")
			_ = os.MkdirAll(dir, 0o755)
			_ = os.WriteFile(filepath.Join(dir, "metadata.json"), []byte("{}"), 0o644)
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			root := t.TempDir()
			tc.setup(root)
			out := filepath.Join(t.TempDir(), "prev.json")

			n, err := NewCollector(nil, nil).Collect(root, "3-4", out)
			require.NoError(t, err)
			require.Zero(t, n)

			raw, err := os.ReadFile(out)
			require.NoError(t, err)
			require.Equal(t, "[]", string(raw))
		})
	}
}

func TestLoadPrevious(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{name: "bare list", content: `[{"id":1},{"id":2}]`, want: 2},
		{name: "questions key", content: `{"questions":[{"id":1}]}`, want: 1},
		{name: "previous_questions key", content: `{"previous_questions":[{"id":1},{"id":2},{"id":3}]}`, want: 3},
		{name: "items key", content: `{"items":[{"id":1}]}`, want: 1},
		{name: "data key", content: `{"data":[{"id":1}]}`, want: 1},
		{name: "first key wins", content: `{"data":[{"id":1},{"id":2}],"questions":[{"id":9}]}`, want: 1},
		{name: "non-list value skipped", content: `{"questions":"nope","items":[{"id":1}]}`, want: 1},
		{name: "non-object items dropped", content: `[1,"two",{"id":3}]`, want: 1},
		{name: "unknown shape", content: `{"other":[{"id":1}]}`, want: 0},
		{name: "scalar", content: `42`, want: 0},
		{name: "malformed", content: `[{"id":`, want: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "prev.json")
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0o644))

			got := LoadPrevious(path)
			require.NotNil(t, got)
			require.Len(t, got, tc.want)
		})
	}

	require.Empty(t, LoadPrevious(filepath.Join(t.TempDir(), "missing.json")))
	require.Empty(t, LoadPrevious(""))
}

func TestPreviousJSON(t *testing.T) {
	raw, err := PreviousJSON(nil)
	require.NoError(t, err)
	require.Equal(t, "[]", string(raw))

	raw, err = PreviousJSON([]PreviousQuestion{{"text": "<i>"}})
	require.NoError(t, err)
	require.Equal(t, `[{"text":"\u003ci\u003e"}]`, string(raw))
}

func TestMetadataFromEnv(t *testing.T) {
	env := map[string]string{
		"PERIOD":            "4",
		"DAY_RANGE":         "7-8",
		"GEN_DATE":          "2026-03-09",
		"VALIDATION_STATUS": "PASSED",
		"TOTAL_COUNT":       "11",
		"VALID_COUNT":       "10",
	}
	m, err := MetadataFromEnv(func(k string) string { return env[k] })
	require.NoError(t, err)
	require.Equal(t, Metadata{Period: 4, DayRange: "7-8", GeneratedDate: "2026-03-09", ValidationStatus: "PASSED", TotalFiles: 11, ValidFiles: 10}, m)

	m, err = MetadataFromEnv(func(k string) string {
		if k == "DAY_RANGE" {
			return "1-2"
		}
		return ""
	})
	require.NoError(t, err)
	require.Equal(t, Metadata{Period: 1, DayRange: "1-2", ValidationStatus: "UNKNOWN"}, m)

	_, err = MetadataFromEnv(func(string) string { return "" })
	require.True(t, errors.Is(err, ErrEmptyDayRange))

	env["PERIOD"] = "four"
	_, err = MetadataFromEnv(func(k string) string { return env[k] })
	require.Error(t, err)
}

func TestWriteMetadata(t *testing.T) {
	root := t.TempDir()
	path, err := WriteMetadata(root, Metadata{Period: 2, DayRange: "3-4", ValidationStatus: "PARTIAL", TotalFiles: 5, ValidFiles: 4})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "day-3-4", "metadata.json"), path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	require.Equal(t, "3-4", got["day_range"])
	require.Equal(t, float64(4), got["valid_files"])

	_, err = WriteMetadata(root, Metadata{})
	require.True(t, errors.Is(err, ErrEmptyDayRange))
}
