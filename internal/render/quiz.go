package render

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"utmequiz/internal/question"
)

const (
	IndividualMinutes = 15
	ClusterMinutes    = 60
)

//go:embed templates/quiz.html
var defaultQuizTemplate string

// DefaultQuizTemplate returns the built-in quiz page template.
func DefaultQuizTemplate() string {
	return defaultQuizTemplate
}

// LoadQuizTemplate reads a template file; an empty path selects the built-in
// template.
func LoadQuizTemplate(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return defaultQuizTemplate, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read quiz template: %w", err)
	}
	return string(raw), nil
}

// Period describes the publishing window shared by every page of one run.
type Period struct {
	Number           int
	DayRange         string
	GeneratedDate    string
	ValidationStatus string
}

// QuizPage is everything a single quiz page shows.
type QuizPage struct {
	Title        string
	SubjectsList string
	Questions    []question.Record
	TimerMinutes int
}

// FillQuiz substitutes every placeholder in tmpl. Question data is embedded
// with encoding/json's HTML-safe escaping so record text can never close the
// surrounding <script> element. prevJSON must already be a JSON array.
func FillQuiz(tmpl string, p Period, page QuizPage, prevJSON []byte) (string, error) {
	questions := page.Questions
	if questions == nil {
		questions = []question.Record{}
	}
	qJSON, err := json.Marshal(questions)
	if err != nil {
		return "", fmt.Errorf("encode questions: %w", err)
	}
	if len(prevJSON) == 0 {
		prevJSON = []byte("[]")
	}

	r := strings.NewReplacer(
		"{{SUBJECT_NAME}}", page.Title,
		"{{PERIOD}}", strconv.Itoa(p.Number),
		"{{DAY_RANGE}}", p.DayRange,
		"{{GENERATED_DATE}}", p.GeneratedDate,
		"{{VALIDATION_STATUS}}", p.ValidationStatus,
		"{{SUBJECTS_LIST}}", page.SubjectsList,
		"{{TOTAL_QUESTIONS}}", strconv.Itoa(len(questions)),
		"{{TIMER_DURATION}}", fmt.Sprintf("%d:00", page.TimerMinutes),
		"{{TIMER_MINUTES}}", strconv.Itoa(page.TimerMinutes),
		"{{QUESTIONS_JSON}}", string(qJSON),
		"{{PREV_QUESTIONS_JSON}}", string(prevJSON),
	)
	return r.Replace(tmpl), nil
}
