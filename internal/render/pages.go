package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/listing.html
var listingFS embed.FS

var listingTmpl = template.Must(template.ParseFS(listingFS, "templates/listing.html"))

type ClusterCard struct {
	Name     string
	Code     string
	File     string
	Subjects []string
	For      []string
}

type SubjectCard struct {
	Emoji string
	Name  string
	File  string
}

// StreamPage is one listing page: the cluster exams and single-subject
// quizzes of a stream.
type StreamPage struct {
	Filename    string
	Title       string
	Stream      string
	BadgeClass  string
	ButtonClass string
	Clusters    []ClusterCard
	Individuals []SubjectCard
}

func DefaultStreamPages() []StreamPage {
	return []StreamPage{
		{
			Filename:    "science_clusters.html",
			Title:       "Science Practice",
			Stream:      "Science",
			BadgeClass:  "bg-blue-100 text-blue-700",
			ButtonClass: "btn-primary",
			Clusters: []ClusterCard{
				{
					Name: "Engineering & Tech", Code: "MEPC", File: "quiz-science-cluster-a.html",
					Subjects: []string{"Mathematics", "English Language", "Physics", "Chemistry"},
					For:      []string{"Engineering (All disciplines)", "Computer Science", "Mathematics", "Architecture"},
				},
				{
					Name: "Medical & Life Sciences", Code: "BEPC", File: "quiz-science-cluster-b.html",
					Subjects: []string{"Biology", "English Language", "Physics", "Chemistry"},
					For:      []string{"Medicine & Surgery", "Pharmacy", "Nursing", "Biochemistry"},
				},
			},
			Individuals: []SubjectCard{
				{Emoji: "📐", Name: "Mathematics", File: "quiz-mathematics.html"},
				{Emoji: "⚡", Name: "Physics", File: "quiz-physics.html"},
				{Emoji: "🧪", Name: "Chemistry", File: "quiz-chemistry.html"},
				{Emoji: "🧬", Name: "Biology", File: "quiz-biology.html"},
				{Emoji: "📖", Name: "English Language", File: "quiz-english.html"},
			},
		},
		{
			Filename:    "art_clusters.html",
			Title:       "Arts & Humanities Practice",
			Stream:      "Arts & Humanities",
			BadgeClass:  "bg-purple-100 text-purple-700",
			ButtonClass: "btn-art",
			Clusters: []ClusterCard{
				{
					Name: "Humanities & Social Sciences", Code: "ELGC", File: "quiz-arts-cluster-a.html",
					Subjects: []string{"English Language", "Literature in English", "Government", "CRS"},
					For:      []string{"Law", "Mass Communication", "International Relations", "Political Science"},
				},
			},
			Individuals: []SubjectCard{
				{Emoji: "📖", Name: "English Language", File: "quiz-english.html"},
				{Emoji: "📚", Name: "Literature in English", File: "quiz-literature.html"},
				{Emoji: "🏛️", Name: "Government", File: "quiz-government.html"},
				{Emoji: "✝️", Name: "CRS", File: "quiz-crs.html"},
			},
		},
		{
			Filename:    "commercial_clusters.html",
			Title:       "Commercial Practice",
			Stream:      "Commercial",
			BadgeClass:  "bg-teal-100 text-teal-700",
			ButtonClass: "btn-commerce",
			Clusters: []ClusterCard{
				{
					Name: "Accounting & Business", Code: "EACE", File: "quiz-commercial-cluster-a.html",
					Subjects: []string{"English Language", "Accounting", "Commerce", "Economics"},
					For:      []string{"Accounting", "Business Administration"},
				},
				{
					Name: "Economics & Finance", Code: "EMEG", File: "quiz-commercial-cluster-b.html",
					Subjects: []string{"English Language", "Mathematics", "Economics", "Government"},
					For:      []string{"Economics", "Banking & Finance"},
				},
				{
					Name: "Public Admin & Business", Code: "EEGC", File: "quiz-commercial-cluster-c.html",
					Subjects: []string{"English Language", "Economics", "Government", "Commerce"},
					For:      []string{"Public Administration", "Business Management"},
				},
			},
			Individuals: []SubjectCard{
				{Emoji: "📖", Name: "English Language", File: "quiz-english.html"},
				{Emoji: "📊", Name: "Accounting", File: "quiz-accounting.html"},
				{Emoji: "💼", Name: "Commerce", File: "quiz-commerce.html"},
				{Emoji: "💰", Name: "Economics", File: "quiz-economics.html"},
				{Emoji: "🏛️", Name: "Government", File: "quiz-government.html"},
			},
		},
	}
}

type listingData struct {
	Page      StreamPage
	DayRange  string
	Available map[string]bool
}

// RenderListing renders a stream page. Cards link only to files present in
// available; the rest show a disabled placeholder.
func RenderListing(page StreamPage, dayRange string, available map[string]bool) ([]byte, error) {
	if available == nil {
		available = map[string]bool{}
	}
	var buf bytes.Buffer
	if err := listingTmpl.Execute(&buf, listingData{Page: page, DayRange: dayRange, Available: available}); err != nil {
		return nil, fmt.Errorf("render %s: %w", page.Filename, err)
	}
	return buf.Bytes(), nil
}
