package render

import (
	"strings"
	"testing"

	"utmequiz/internal/question"

	"github.com/stretchr/testify/require"
)

func TestFillQuiz(t *testing.T) {
	tmpl := "{{SUBJECT_NAME}}|{{PERIOD}}|{{DAY_RANGE}}|{{GENERATED_DATE}}|{{VALIDATION_STATUS}}|" +
		"{{SUBJECTS_LIST}}|{{TOTAL_QUESTIONS}}|{{TIMER_DURATION}}|{{TIMER_MINUTES}}|{{QUESTIONS_JSON}}|{{PREV_QUESTIONS_JSON}}"

	got, err := FillQuiz(tmpl,
		Period{Number: 2, DayRange: "3-4", GeneratedDate: "2026-03-01", ValidationStatus: "PASSED"},
		QuizPage{
			Title:        "Physics",
			SubjectsList: "Physics",
			Questions: []question.Record{
				{ID: 1, Text: "Is <b> bold?", OptionA: "yes", OptionB: "no", OptionC: "x & y", OptionD: "maybe", Answer: "A"},
			},
			TimerMinutes: 15,
		},
		nil,
	)
	require.NoError(t, err)

	parts := strings.Split(got, "|")
	require.Equal(t, []string{"Physics", "2", "3-4", "2026-03-01", "PASSED", "Physics", "1", "15:00", "15"}, parts[:9])
	require.Equal(t,
		`[{"id":1,"text":"Is \u003cb\u003e bold?","optionA":"yes","optionB":"no","optionC":"x \u0026 y","optionD":"maybe","answer":"A"}]`,
		parts[9])
	require.Equal(t, "[]", parts[10])
}

func TestFillQuizEmptyQuestionsAndPrevious(t *testing.T) {
	got, err := FillQuiz("{{QUESTIONS_JSON}} {{PREV_QUESTIONS_JSON}} {{TOTAL_QUESTIONS}}", Period{}, QuizPage{}, []byte(`[{"id":9}]`))
	require.NoError(t, err)
	require.Equal(t, `[] [{"id":9}] 0`, got)
}

func TestDefaultQuizTemplateHasAllPlaceholders(t *testing.T) {
	tmpl, err := LoadQuizTemplate("")
	require.NoError(t, err)
	for _, ph := range []string{"{{SUBJECT_NAME}}", "{{QUESTIONS_JSON}}", "{{PREV_QUESTIONS_JSON}}", "{{TIMER_DURATION}}"} {
		require.Contains(t, tmpl, ph)
	}

	_, err = LoadQuizTemplate("/definitely/not/here.html")
	require.Error(t, err)
}
