package question

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"utmequiz/internal/app/apiresp"
)

const defaultUploadName = "upload.txt"

type Handler struct {
	svc      contentParser
	maxBytes int64
}

type contentParser interface {
	ParseContent(filename string, content []byte) ParseResult
}

type apiResponse struct {
	OK    bool        `json:"ok"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

func NewHandler(svc *Parser, maxBytes int64) *Handler {
	return newHandler(svc, maxBytes)
}

func newHandler(svc contentParser, maxBytes int64) *Handler {
	if maxBytes <= 0 {
		maxBytes = 5_000_000
	}
	return &Handler{svc: svc, maxBytes: maxBytes}
}

// Parse reads question text from the request body and returns its
// ParseResult. The filename query parameter drives subject detection.
// A body that parses with diagnostics is still a 200: the result carries
// success=false.
func (h *Handler) Parse(w http.ResponseWriter, r *http.Request) {
	filename := strings.TrimSpace(r.URL.Query().Get("filename"))
	if filename == "" {
		filename = defaultUploadName
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, r, http.StatusRequestEntityTooLarge, apiResponse{OK: false, Error: "request body too large"})
			return
		}
		writeJSON(w, r, http.StatusBadRequest, apiResponse{OK: false, Error: "invalid request body"})
		return
	}
	if len(body) == 0 {
		writeJSON(w, r, http.StatusBadRequest, apiResponse{OK: false, Error: "request body is empty"})
		return
	}

	writeJSON(w, r, http.StatusOK, apiResponse{OK: true, Data: h.svc.ParseContent(filename, body)})
}

func writeJSON(w http.ResponseWriter, r *http.Request, code int, payload apiResponse) {
	if payload.OK {
		apiresp.WriteOK(w, r, code, payload.Data)
		return
	}
	apiresp.WriteError(w, r, code, payload.Error)
}
