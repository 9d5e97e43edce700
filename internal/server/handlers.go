package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matzehuels/mindmap/pkg/buildinfo"
	"github.com/matzehuels/mindmap/pkg/cache"
	"github.com/matzehuels/mindmap/pkg/diagram"
	"github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/pipeline"
)

// textFormats are returned inline by /api/render; binary formats are only
// served through their share URL.
var textFormats = map[string]bool{
	diagram.FormatSVG:  true,
	diagram.FormatJSON: true,
	diagram.FormatDOT:  true,
	diagram.FormatHTML: true,
}

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

type parseResponse struct {
	Tree     *diagram.OutlineNode `json:"tree"`
	Hash     string               `json:"hash"`
	Nodes    int                  `json:"nodes"`
	Visible  int                  `json:"visible"`
	MaxDepth int                  `json:"max_depth"`
}

type renderResponse struct {
	ID        string            `json:"id"`
	Artifacts map[string]string `json:"artifacts"`
	URLs      map[string]string `json:"urls"`
	Cached    bool              `json:"cached"`
}

// share is what a share ID points to: the diagram plus the render options
// that affect its artifacts.
type share struct {
	Diagram     diagram.Diagram `json:"diagram"`
	Style       string          `json:"style"`
	Padding     float64         `json:"padding"`
	Scale       float64         `json:"scale"`
	Interactive bool            `json:"interactive,omitempty"`
	EmbedFont   bool            `json:"embed_font,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.decodeOptions(w, r)
	if !ok {
		return
	}
	root, err := s.runner.Parse(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, parseResponse{
		Tree:     diagram.FromOutline(root),
		Hash:     pipeline.TreeHash(root),
		Nodes:    root.Count(),
		Visible:  root.VisibleCount(),
		MaxDepth: root.MaxDepth(),
	})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.decodeOptions(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	root, err := s.runner.Parse(ctx, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	d, hit, err := s.runner.LayoutWithCacheInfo(ctx, root, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("X-Cache", cacheHeader(hit))
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.decodeOptions(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	result, err := s.runner.Execute(ctx, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	// Execute works on a copy; resolve the defaults it applied.
	if err := opts.ValidateAndSetDefaults(); err != nil {
		writeError(w, err)
		return
	}
	rec := share{
		Diagram:     result.Diagram,
		Style:       opts.Style,
		Padding:     opts.Padding,
		Scale:       opts.Scale,
		Interactive: opts.Interactive,
		EmbedFont:   opts.EmbedFont,
	}
	data, err := json.Marshal(rec)
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "encode share"))
		return
	}
	id := uuid.NewString()
	if err := s.runner.Cache.Set(ctx, s.runner.Keyer.DiagramKey(id), data, cache.TTLDiagram); err != nil {
		s.log.Warn("share not stored", "id", id, "err", err)
	}

	resp := renderResponse{
		ID:        id,
		Artifacts: make(map[string]string),
		URLs:      make(map[string]string, len(result.Artifacts)),
		Cached:    result.CacheInfo.RenderHit,
	}
	for format, data := range result.Artifacts {
		if textFormats[format] {
			resp.Artifacts[format] = string(data)
		}
		resp.URLs[format] = "/api/diagrams/" + id + "." + format
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDiagram(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	format := chi.URLParam(r, "format")
	if err := errors.ValidateDiagramID(id); err != nil {
		writeError(w, err)
		return
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, err)
		return
	}

	ctx := r.Context()
	data, hit, err := s.runner.Cache.Get(ctx, s.runner.Keyer.DiagramKey(id))
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "read share"))
		return
	}
	if !hit {
		writeError(w, errors.New(errors.ErrCodeNotFound, "diagram %s not found", id))
		return
	}
	var rec share
	if err := json.Unmarshal(data, &rec); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "decode share"))
		return
	}

	artifacts, hit, err := s.runner.RenderWithCacheInfo(ctx, rec.Diagram, pipeline.Options{
		Formats:     []string{format},
		Style:       rec.Style,
		Padding:     rec.Padding,
		Scale:       rec.Scale,
		Interactive: rec.Interactive,
		EmbedFont:   rec.EmbedFont,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", diagram.ContentType(format))
	w.Header().Set("X-Cache", cacheHeader(hit))
	w.WriteHeader(http.StatusOK)
	w.Write(artifacts[format])
}

// decodeOptions reads a JSON options body, writing the error response itself
// when it fails.
func (s *Server) decodeOptions(w http.ResponseWriter, r *http.Request) (pipeline.Options, bool) {
	var opts pipeline.Options
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			jsonError(w, "request body too large", string(errors.ErrCodeInvalidInput), http.StatusRequestEntityTooLarge)
			return opts, false
		}
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body"))
		return opts, false
	}
	opts.Logger = s.log
	return opts, true
}

func cacheHeader(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps coded errors onto their HTTP status. Uncoded errors are
// reported as internal without leaking their text.
func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		jsonError(w, "internal error", string(errors.ErrCodeInternal), http.StatusInternalServerError)
		return
	}
	jsonError(w, errors.UserMessage(err), string(code), errors.HTTPStatus(code))
}

func jsonError(w http.ResponseWriter, msg, code string, status int) {
	writeJSON(w, status, map[string]string{"error": msg, "code": code})
}
