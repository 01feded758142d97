// Package httpapi exposes the layout search over HTTP.
//
// The API is intentionally small: POST a piece inventory to /api/v1/generate,
// get back a run with its layouts, and fetch runs or rendered figures later
// by run ID. Runs live in memory; restarting the server forgets them.
package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"gonum.org/v1/plot/vg"

	sferrors "github.com/slotforge/slotforge/pkg/errors"
	"github.com/slotforge/slotforge/pkg/render"
	"github.com/slotforge/slotforge/pkg/search"
	"github.com/slotforge/slotforge/pkg/track"
	"github.com/slotforge/slotforge/pkg/track/geom"
)

// GenerateRequest is the JSON body of POST /api/v1/generate.
type GenerateRequest struct {
	Turns              int     `json:"turns"`
	Straights          int     `json:"straights"`
	Start              string  `json:"start,omitempty"`
	TurnRadius         float64 `json:"turn_radius,omitempty"`
	StraightLength     float64 `json:"straight_length,omitempty"`
	AllowIntersections bool    `json:"allow_intersections,omitempty"`
	MaxTracks          int     `json:"max_tracks,omitempty"`
	MaxTimeSeconds     int     `json:"max_time_seconds,omitempty"`
}

// Run is a finished search, addressable by ID.
type Run struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	Request   GenerateRequest `json:"request"`
	Layouts   []string        `json:"layouts"`
	Splits    int             `json:"splits"`
	TimedOut  int             `json:"timed_out_splits"`
	ElapsedMS int64           `json:"elapsed_ms"`
}

// maxAPITimePerSplit caps the per-split budget for API callers so one request
// cannot hold a worker for minutes.
const maxAPITimePerSplit = 30 * time.Second

// Server holds the run registry and the search engine.
type Server struct {
	logger *log.Logger
	engine *search.Engine

	mu   sync.RWMutex
	runs map[string]*Run
}

// NewServer creates a server. A nil logger falls back to log.Default().
func NewServer(logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		logger: logger,
		engine: search.NewEngine(),
		runs:   make(map[string]*Run),
	}
}

// Router builds the HTTP handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/generate", s.handleGenerate)
		r.Get("/runs/{id}", s.handleGetRun)
		r.Get("/runs/{id}/svg", s.handleRunSVG)
	})
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleGenerate runs a search synchronously and registers the run.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, sferrors.New(sferrors.ErrCodeInvalidInput, "invalid JSON body"))
		return
	}
	if err := sferrors.ValidateSequenceString(req.Start); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	opts := search.Options{
		Turns:              req.Turns,
		Straights:          req.Straights,
		StartSequence:      track.Sequence(req.Start),
		TurnRadius:         req.TurnRadius,
		StraightLength:     req.StraightLength,
		AllowIntersections: req.AllowIntersections,
		MaxTracksPerSplit:  req.MaxTracks,
		MaxTimePerSplit:    time.Duration(req.MaxTimeSeconds) * time.Second,
		Logger:             s.logger,
	}
	if opts.MaxTimePerSplit > maxAPITimePerSplit {
		opts.MaxTimePerSplit = maxAPITimePerSplit
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	res, err := s.engine.Run(r.Context(), opts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	layouts := res.Layouts()
	strs := make([]string, len(layouts))
	for i, l := range layouts {
		strs[i] = string(l)
	}
	run := &Run{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Request:   req,
		Layouts:   strs,
		Splits:    res.Stats.Splits,
		TimedOut:  res.Stats.TimedOut,
		ElapsedMS: res.Stats.Elapsed.Milliseconds(),
	}

	s.mu.Lock()
	s.runs[run.ID] = run
	s.mu.Unlock()

	s.logger.Infof("Run %s: %d layouts for %d turns, %d straights", run.ID, len(run.Layouts), req.Turns, req.Straights)
	writeJSON(w, http.StatusCreated, run)
}

// handleGetRun returns a registered run by ID.
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	run, ok := s.lookupRun(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, sferrors.New(sferrors.ErrCodeRunNotFound, "run not found"))
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// handleRunSVG renders one layout of a run as SVG. The layout index comes
// from the ?layout query parameter and defaults to 0.
func (s *Server) handleRunSVG(w http.ResponseWriter, r *http.Request) {
	run, ok := s.lookupRun(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, sferrors.New(sferrors.ErrCodeRunNotFound, "run not found"))
		return
	}
	if len(run.Layouts) == 0 {
		writeError(w, http.StatusNotFound, sferrors.New(sferrors.ErrCodeNotFound, "run has no layouts"))
		return
	}

	idx := 0
	if q := r.URL.Query().Get("layout"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 0 || n >= len(run.Layouts) {
			writeError(w, http.StatusBadRequest, sferrors.New(sferrors.ErrCodeInvalidInput, "layout index out of range"))
			return
		}
		idx = n
	}

	seq, err := track.Parse(run.Layouts[idx])
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	g := geom.Geometry{TurnRadius: run.Request.TurnRadius, StraightLength: run.Request.StraightLength}
	if g.TurnRadius == 0 {
		g.TurnRadius = search.DefaultTurnRadius
	}
	if g.StraightLength == 0 {
		g.StraightLength = search.DefaultStraightLength
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	if err := render.Write(w, g, seq, render.FormatSVG, 6*vg.Inch, 6*vg.Inch); err != nil {
		s.logger.Errorf("Render run %s layout %d: %v", run.ID, idx, err)
	}
}

func (s *Server) lookupRun(id string) (*Run, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[id]
	return run, ok
}

// errorResponse is the JSON error body.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	code := string(sferrors.GetCode(err))
	if code == "" {
		code = string(sferrors.ErrCodeInternal)
	}
	writeJSON(w, status, errorResponse{Code: code, Message: sferrors.UserMessage(err)})
}
