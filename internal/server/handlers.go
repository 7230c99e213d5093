package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/forcegraph/pkg/buildinfo"
	"github.com/matzehuels/forcegraph/pkg/errors"
	"github.com/matzehuels/forcegraph/pkg/pipeline"
	"github.com/matzehuels/forcegraph/pkg/render"
)

// =============================================================================
// Responses
// =============================================================================

// RenderResponse is the body of POST /v1/render.
type RenderResponse struct {
	RequestID string            `json:"request_id"`
	Layout    string            `json:"layout"`
	Artifacts map[string][]byte `json:"artifacts"`
	Stats     StatsResponse     `json:"stats"`
}

// LayoutResponse is the body of POST /v1/layout.
type LayoutResponse struct {
	RequestID string              `json:"request_id"`
	Layout    string              `json:"layout"`
	Positions []pipeline.Position `json:"positions"`
	Frame     render.Frame        `json:"frame"`
	Stats     StatsResponse       `json:"stats"`
}

// StatsResponse summarizes a run.
type StatsResponse struct {
	Nodes       int     `json:"nodes"`
	Links       int     `json:"links"`
	Unresolved  int     `json:"unresolved"`
	Ticks       int     `json:"ticks"`
	Alpha       float64 `json:"alpha"`
	LayoutCache bool    `json:"layout_cached"`
	RenderCache bool    `json:"render_cached"`
	DurationMS  int64   `json:"duration_ms"`
}

// ErrorResponse is the body of every error.
type ErrorResponse struct {
	RequestID string `json:"request_id"`
	Code      string `json:"code"`
	Error     string `json:"error"`
}

var contentTypes = map[string]string{
	pipeline.FormatSVG:      "image/svg+xml",
	pipeline.FormatGraphviz: "image/svg+xml",
	pipeline.FormatJSON:     "application/json",
	pipeline.FormatDOT:      "text/vnd.graphviz",
	pipeline.FormatPNG:      "image/png",
	pipeline.FormatPDF:      "application/pdf",
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.String(),
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.decodeOptions(w, r)
	if !ok {
		return
	}
	result, err := s.execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, RenderResponse{
		RequestID: requestIDFrom(r.Context()),
		Layout:    result.Mode.String(),
		Artifacts: result.Artifacts,
		Stats:     stats(result),
	})
}

func (s *Server) handleRenderFormat(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, ok := s.decodeOptions(w, r)
	if !ok {
		return
	}
	opts.Formats = []string{format}

	result, err := s.execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.decodeOptions(w, r)
	if !ok {
		return
	}
	opts.Formats = []string{pipeline.FormatJSON}

	result, err := s.execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	entry := pipeline.NewLayoutEntry(&result.Data, pipeline.LayoutResult{Ticks: result.Stats.Ticks, Alpha: result.Stats.Alpha})
	writeJSON(w, http.StatusOK, LayoutResponse{
		RequestID: requestIDFrom(r.Context()),
		Layout:    result.Mode.String(),
		Positions: entry.Positions,
		Frame:     result.Frame,
		Stats:     stats(result),
	})
}

// =============================================================================
// Helpers
// =============================================================================

// decodeOptions reads pipeline options from the body. Only inline graphs
// and configs are accepted.
func (s *Server) decodeOptions(w http.ResponseWriter, r *http.Request) (pipeline.Options, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var opts pipeline.Options
	if err := dec.Decode(&opts); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			s.writeStatus(w, r, http.StatusRequestEntityTooLarge, errors.ErrCodeInvalidInput,
				fmt.Sprintf("request body exceeds %d bytes", s.maxBody))
			return opts, false
		}
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "invalid request body: %v", err))
		return opts, false
	}
	if opts.GraphPath != "" || opts.ConfigPath != "" {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "file paths are not accepted; send graph and config inline"))
		return opts, false
	}
	if len(opts.Graph) == 0 {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "graph is required"))
		return opts, false
	}
	if opts.Ticks > s.maxTicks {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "ticks must be <= %d, got %d", s.maxTicks, opts.Ticks))
		return opts, false
	}
	return opts, true
}

func (s *Server) execute(ctx context.Context, opts pipeline.Options) (*pipeline.Result, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	opts.Logger = s.logger.With("request_id", requestIDFrom(ctx))
	return s.runner.Execute(ctx, opts)
}

func stats(res *pipeline.Result) StatsResponse {
	return StatsResponse{
		Nodes:       res.Stats.NodeCount,
		Links:       res.Stats.LinkCount,
		Unresolved:  res.Stats.Unresolved,
		Ticks:       res.Stats.Ticks,
		Alpha:       res.Stats.Alpha,
		LayoutCache: res.CacheInfo.LayoutHit,
		RenderCache: res.CacheInfo.RenderHit,
		DurationMS:  (res.Stats.LoadTime + res.Stats.LayoutTime + res.Stats.RenderTime).Milliseconds(),
	}
}

// statusFor maps error codes to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.IsInvalid(err):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeNotFound), errors.Is(err, errors.ErrCodeFileNotFound):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrCodeUnsupported):
		return http.StatusNotImplemented
	case stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := errors.GetCode(err)
	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "id", requestIDFrom(r.Context()), "error", err)
		if code == "" {
			code = errors.ErrCodeInternal
		}
		msg = "internal error"
	}
	s.writeStatus(w, r, status, code, msg)
}

func (s *Server) writeStatus(w http.ResponseWriter, r *http.Request, status int, code errors.Code, msg string) {
	writeJSON(w, status, ErrorResponse{
		RequestID: requestIDFrom(r.Context()),
		Code:      string(code),
		Error:     msg,
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
