package apiresp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		status   int
		msg      string
		wantCode string
		wantMsg  string
	}{
		{status: http.StatusBadRequest, msg: "bad", wantCode: "invalid_request", wantMsg: "bad"},
		{status: http.StatusRequestEntityTooLarge, msg: "", wantCode: "payload_too_large", wantMsg: "Request Entity Too Large"},
		{status: http.StatusTeapot, msg: "tea", wantCode: "error", wantMsg: "tea"},
	}

	for _, tc := range tests {
		w := httptest.NewRecorder()
		WriteError(w, httptest.NewRequest(http.MethodGet, "/", nil), tc.status, tc.msg)
		require.Equal(t, tc.status, w.Code)
		require.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var env Envelope
		require.NoError(t, json.NewDecoder(w.Body).Decode(&env))
		require.False(t, env.OK)
		require.Equal(t, tc.wantCode, env.Error.Code)
		require.Equal(t, tc.wantMsg, env.Error.Message)
	}
}

func TestWriteOK(t *testing.T) {
	w := httptest.NewRecorder()
	WriteOK(w, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusOK, map[string]int{"n": 1})

	var env struct {
		OK   bool           `json:"ok"`
		Data map[string]int `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&env))
	require.True(t, env.OK)
	require.Equal(t, 1, env.Data["n"])
}
