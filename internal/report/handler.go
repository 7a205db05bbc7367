package report

import (
	"errors"
	"net/http"

	"utmequiz/internal/app/apiresp"
	"utmequiz/internal/catalog"
	"utmequiz/internal/validation"

	"go.uber.org/zap"
)

type directoryValidator interface {
	ValidateDirectory(dir string) (validation.Report, error)
}

// Recorder receives the summary of every report served.
type Recorder interface {
	RecordValidation(total, valid, invalid int)
}

// Handler serves a freshly built validation report of one question
// directory. Nothing is cached between requests.
type Handler struct {
	svc      directoryValidator
	dir      string
	clusters []catalog.Cluster
	rec      Recorder
	log      *zap.Logger
}

func NewHandler(v *validation.Validator, dir string, clusters []catalog.Cluster, rec Recorder, log *zap.Logger) *Handler {
	return newHandler(v, dir, clusters, rec, log)
}

func newHandler(svc directoryValidator, dir string, clusters []catalog.Cluster, rec Recorder, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{svc: svc, dir: dir, clusters: clusters, rec: rec, log: log}
}

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.build(w, r)
	if !ok {
		return
	}
	apiresp.WriteOK(w, r, http.StatusOK, rep)
}

func (h *Handler) Clusters(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.build(w, r)
	if !ok {
		return
	}
	apiresp.WriteOK(w, r, http.StatusOK, validation.CheckClusters(rep.Results(), h.clusters))
}

func (h *Handler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.build(w, r)
	if !ok {
		return
	}
	raw, err := XLSX(rep, validation.CheckClusters(rep.Results(), h.clusters))
	if err != nil {
		h.log.Error("export report", zap.Error(err))
		apiresp.WriteError(w, r, http.StatusInternalServerError, "failed to export report")
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="validation-report.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

func (h *Handler) build(w http.ResponseWriter, r *http.Request) (validation.Report, bool) {
	rep, err := h.svc.ValidateDirectory(h.dir)
	switch {
	case errors.Is(err, validation.ErrDirectoryNotFound):
		apiresp.WriteError(w, r, http.StatusNotFound, "question directory not found")
		return validation.Report{}, false
	case errors.Is(err, validation.ErrNoQuestionFiles):
		apiresp.WriteError(w, r, http.StatusUnprocessableEntity, "no .txt question files found")
		return validation.Report{}, false
	case err != nil:
		h.log.Error("validate directory", zap.String("dir", h.dir), zap.Error(err))
		apiresp.WriteError(w, r, http.StatusInternalServerError, "failed to validate questions")
		return validation.Report{}, false
	}
	if h.rec != nil {
		h.rec.RecordValidation(rep.Summary.TotalFiles, rep.Summary.ValidFiles, rep.Summary.InvalidFiles)
	}
	return rep, true
}
