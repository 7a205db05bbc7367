package question

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type mockContentParser struct {
	parseFn func(filename string, content []byte) ParseResult
}

func (m *mockContentParser) ParseContent(filename string, content []byte) ParseResult {
	return m.parseFn(filename, content)
}

type envelope struct {
	OK    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func TestHandlerParse(t *testing.T) {
	var gotName string
	h := newHandler(&mockContentParser{parseFn: func(filename string, content []byte) ParseResult {
		gotName = filename
		return ParseResult{Filename: filename, Subject: "Physics", Success: true, Questions: []Record{{ID: 1}}}
	}}, 1024)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/parse?filename=physics.txt", strings.NewReader(validBlock(1)))
	w := httptest.NewRecorder()
	h.Parse(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "physics.txt", gotName)

	var env envelope
	require.NoError(t, json.NewDecoder(w.Body).Decode(&env))
	require.True(t, env.OK)

	var res ParseResult
	require.NoError(t, json.Unmarshal(env.Data, &res))
	require.Equal(t, "Physics", res.Subject)
	require.Equal(t, 1, res.QuestionCount())
}

func TestHandlerParseDefaultsFilename(t *testing.T) {
	var gotName string
	h := newHandler(&mockContentParser{parseFn: func(filename string, content []byte) ParseResult {
		gotName = filename
		return ParseResult{Filename: filename}
	}}, 1024)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/parse", strings.NewReader("1. x"))
	w := httptest.NewRecorder()
	h.Parse(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, defaultUploadName, gotName)
}

func TestHandlerParseRejectsBadBodies(t *testing.T) {
	h := newHandler(&mockContentParser{parseFn: func(string, []byte) ParseResult {
		t.Fatalf("parser must not be called")
		return ParseResult{}
	}}, 8)

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{name: "empty", body: "", wantStatus: http.StatusBadRequest},
		{name: "too large", body: strings.Repeat("x", 64), wantStatus: http.StatusRequestEntityTooLarge},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/parse", strings.NewReader(tc.body))
			w := httptest.NewRecorder()
			h.Parse(w, req)
			require.Equal(t, tc.wantStatus, w.Code)

			var env envelope
			require.NoError(t, json.NewDecoder(w.Body).Decode(&env))
			require.False(t, env.OK)
			require.NotNil(t, env.Error)
		})
	}
}

func TestHandlerWithRealParser(t *testing.T) {
	h := NewHandler(newTestParser(), 0)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/parse?filename=mystery.txt", strings.NewReader(validBlock(1)))
	w := httptest.NewRecorder()
	h.Parse(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var env envelope
	require.NoError(t, json.NewDecoder(w.Body).Decode(&env))
	var res ParseResult
	require.NoError(t, json.Unmarshal(env.Data, &res))
	require.False(t, res.Success)
	require.Equal(t, "Mystery", res.Subject)
	require.Len(t, res.Questions, 1)
}
