package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNormalizedPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: "/"},
		{in: "/archive/day/12", want: "/archive/day/{id}"},
		{in: "/quiz-physics.html", want: "/{quiz}"},
		{in: "/science_clusters.html", want: "/science_clusters.html"},
	}
	for _, tc := range tests {
		if got := normalizedPath(tc.in); got != tc.want {
			t.Fatalf("normalizedPath(%q) got=%s want=%s", tc.in, got, tc.want)
		}
	}
}

func TestMiddlewareAndMetrics(t *testing.T) {
	c := NewCollector(nil)
	h := c.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	for i := 0; i < 2; i++ {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/quiz-english.html", nil))
	}
	c.RecordValidation(3, 2, 1)

	w := httptest.NewRecorder()
	c.MetricsHandler(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := w.Body.String()

	for _, want := range []string{
		`quizgen_http_requests_total{method="GET",path="/{quiz}",status="418"} 2`,
		"quizgen_validation_runs_total 1",
		`quizgen_validation_files{state="invalid"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("metrics missing %q:\n%s", want, body)
		}
	}
}
