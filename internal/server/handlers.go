package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/funnelgraph/pkg/chartfile"
	"github.com/matzehuels/funnelgraph/pkg/errors"
	"github.com/matzehuels/funnelgraph/pkg/observability"
	"github.com/matzehuels/funnelgraph/pkg/pipeline"
	"github.com/matzehuels/funnelgraph/pkg/store"
)

// contentTypes maps output formats to response content types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
}

// renderResponse is the multi-format render envelope. Artifact bytes
// are base64-encoded by encoding/json.
type renderResponse struct {
	DatasetHash string            `json:"dataset_hash"`
	Segments    int               `json:"segments"`
	Artifacts   map[string][]byte `json:"artifacts"`
}

// saveChartRequest is the body for POST /v1/charts.
type saveChartRequest struct {
	Name       string         `json:"name"`
	Definition chartfile.File `json:"definition"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleRender renders a chart definition from the request body. A
// single requested format is returned raw with its content type;
// multiple formats come back in a JSON envelope.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}
	opts.Logger = s.logger

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeArtifacts(w, r, result)
}

// handleSaveChart validates and stores a chart definition.
func (s *Server) handleSaveChart(w http.ResponseWriter, r *http.Request) {
	var req saveChartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}

	// Reject definitions whose data can never render.
	if _, err := req.Definition.Dataset(); err != nil {
		s.writeError(w, r, err)
		return
	}

	name := req.Name
	if name == "" {
		name = req.Definition.Title
	}
	c := store.NewChart(name, req.Definition)

	start := time.Now()
	err := s.store.Save(r.Context(), c)
	observability.Store().OnStoreOp(r.Context(), "save", time.Since(start), err)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) handleListCharts(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	charts, err := s.store.List(r.Context())
	observability.Store().OnStoreOp(r.Context(), "list", time.Since(start), err)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"charts": charts})
}

func (s *Server) handleGetChart(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	c, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	observability.Store().OnStoreOp(r.Context(), "get", time.Since(start), err)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// handleRenderChart renders a stored chart. Render options come from
// query parameters and override the stored definition.
func (s *Server) handleRenderChart(w http.ResponseWriter, r *http.Request) {
	c, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts, err := optionsFromQuery(r, &c.Definition)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Logger = s.logger

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeArtifacts(w, r, result)
}

func (s *Server) handleDeleteChart(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	err := s.store.Delete(r.Context(), chi.URLParam(r, "id"))
	observability.Store().OnStoreOp(r.Context(), "delete", time.Since(start), err)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// optionsFromQuery builds pipeline options for a stored definition from
// query parameters.
func optionsFromQuery(r *http.Request, def *chartfile.File) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Definition:  def,
		Orientation: q.Get("orientation"),
		Style:       q.Get("style"),
		Gradient:    q.Get("gradient"),
		Refresh:     q.Get("refresh") == "true",
		Labels:      q.Get("labels") == "true",
	}

	if f := q.Get("format"); f != "" {
		opts.Formats = strings.Split(f, ",")
	}
	for name, dst := range map[string]*float64{"width": &opts.Width, "height": &opts.Height} {
		if raw := q.Get(name); raw != "" {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return pipeline.Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse %s", name)
			}
			*dst = v
		}
	}
	return opts, nil
}

// writeArtifacts writes a pipeline result: raw bytes for a single
// format, a JSON envelope for several.
func (s *Server) writeArtifacts(w http.ResponseWriter, r *http.Request, result *pipeline.Result) {
	if len(result.Artifacts) == 1 {
		for format, data := range result.Artifacts {
			w.Header().Set("Content-Type", contentTypes[format])
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(data)
			return
		}
	}
	writeJSON(w, http.StatusOK, renderResponse{
		DatasetHash: result.DatasetHash,
		Segments:    result.Stats.Segments,
		Artifacts:   result.Artifacts,
	})
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// httpStatus maps error codes onto HTTP status codes.
func httpStatus(code errors.Code) int {
	switch code {
	case errors.ErrCodeMissingData,
		errors.ErrCodeDimensionMismatch,
		errors.ErrCodeInvalidData,
		errors.ErrCodeInvalidInput,
		errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidStyle,
		errors.ErrCodeInvalidOrientation,
		errors.ErrCodeInvalidChartFile,
		errors.ErrCodeInvalidDimensions:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound,
		errors.ErrCodeChartNotFound,
		errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// writeError writes the JSON error envelope, logging server-side
// failures.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := httpStatus(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err, "request_id", requestIDFromContext(r.Context()))
	}
	writeJSON(w, status, errorResponse{Error: errorBody{
		Code:      string(code),
		Message:   errors.UserMessage(err),
		RequestID: requestIDFromContext(r.Context()),
	}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
