package render

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func questionFile(n int) string {
	blocks := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		blocks = append(blocks, fmt.Sprintf("%d. Question %d?\nA. one\nB. two\nC. three\nD. four\nAnswer: C", i, i))
	}
	return strings.Join(blocks, "\n\n")
}

func writeSources(t *testing.T, files map[string]string) (string, []string) {
	t.Helper()
	dir := t.TempDir()
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	paths := make([]string, 0, len(names))
	for _, name := range names {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(files[name]), 0o644))
		paths = append(paths, p)
	}
	return dir, paths
}

func readOut(t *testing.T, dir, name string) string {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	return string(raw)
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{in: "", want: ModeAll},
		{in: "Individual", want: ModeIndividual},
		{in: "clusters", want: ModeClusters},
		{in: "pages", want: ModePages},
		{in: "everything", wantErr: true},
	}
	for _, tc := range tests {
		got, err := ParseMode(tc.in)
		if tc.wantErr {
			require.True(t, errors.Is(err, ErrUnknownMode))
			continue
		}
		require.NoError(t, err)
		require.Equal(t, tc.want, got)
	}
}

func TestGenerateAll(t *testing.T) {
	_, sources := writeSources(t, map[string]string{
		"physics.txt":   questionFile(35),
		"chemistry.txt": questionFile(35),
		"broken.txt":    questionFile(35),
	})
	out := filepath.Join(t.TempDir(), "site")

	g := NewGenerator(GeneratorConfig{
		Period: Period{Number: 2, DayRange: "3-4", GeneratedDate: "2026-03-01", ValidationStatus: "PARTIAL"},
	})
	res, err := g.Generate(ModeAll, sources, out)
	require.NoError(t, err)

	require.Equal(t, []string{
		"quiz-chemistry.html",
		"quiz-physics.html",
		"quiz-science-cluster-a.html",
		"quiz-science-cluster-b.html",
		"science_clusters.html",
		"art_clusters.html",
		"commercial_clusters.html",
	}, res.Generated)
	require.Equal(t, []string{
		"broken.txt",
		"arts-cluster-a",
		"commercial-cluster-a",
		"commercial-cluster-b",
		"commercial-cluster-c",
	}, res.Skipped)

	physics := readOut(t, out, "quiz-physics.html")
	require.Contains(t, physics, "<title>Physics - Day 3-4</title>")
	require.Contains(t, physics, "35 questions")
	require.Contains(t, physics, `data-minutes="15">15:00`)

	cluster := readOut(t, out, "quiz-science-cluster-a.html")
	require.Contains(t, cluster, "<title>Science Cluster A - Day 3-4</title>")
	require.Contains(t, cluster, "Physics, Chemistry")
	require.Contains(t, cluster, "70 questions")
	require.Contains(t, cluster, `data-minutes="60">60:00`)

	listing := readOut(t, out, "science_clusters.html")
	require.Contains(t, listing, `href="quiz-physics.html"`)
	require.NotContains(t, listing, `href="quiz-biology.html"`)
}

func TestGenerateModesAndFailures(t *testing.T) {
	_, sources := writeSources(t, map[string]string{"notes_subject.txt": questionFile(35)})
	g := NewGenerator(GeneratorConfig{})

	res, err := g.Generate(ModeIndividual, sources, t.TempDir())
	require.True(t, errors.Is(err, ErrNothingGenerated))
	require.Equal(t, []string{"notes_subject.txt"}, res.Skipped)

	_, err = g.Generate(ModeClusters, nil, t.TempDir())
	require.True(t, errors.Is(err, ErrNoQuestionSources))

	res, err = g.Generate(ModePages, nil, t.TempDir())
	require.NoError(t, err)
	require.Len(t, res.Generated, 3)
}

func TestFindSubjectFile(t *testing.T) {
	sources := []string{"/q/Day1_English.txt", "/q/english-extra.txt", "/q/maths.txt"}

	got, ok := FindSubjectFile("english", sources)
	require.True(t, ok)
	require.Equal(t, "/q/Day1_English.txt", got)

	_, ok = FindSubjectFile("mathematics", sources)
	require.False(t, ok)
}
