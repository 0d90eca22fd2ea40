package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"svw.info/lightsout/internal/domain"
	"svw.info/lightsout/internal/scoring"
	"svw.info/lightsout/internal/session"
	"svw.info/lightsout/internal/usecase"
)

type Handler struct {
	UC     *usecase.Service
	Logger *zap.Logger
}

func New(uc *usecase.Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{UC: uc, Logger: logger}
}

// Register mounts the JSON API under /api.
func (h *Handler) Register(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/levels", h.handleLevels)
		r.Get("/leaderboard", h.handleLeaderboard)

		r.Post("/generate", h.handleGenerate)
		r.Post("/toggle", h.handleToggle)
		r.Post("/solved", h.handleSolved)
		r.Post("/score", h.handleScore)
		r.Post("/solve", h.handleSolve)

		r.Post("/sessions", h.handleCreateSession)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", h.handleGetSession)
			r.Delete("/", h.handleDeleteSession)
			r.Post("/start", h.sessionAction(h.UC.Start))
			r.Post("/undo", h.sessionAction(h.UC.Undo))
			r.Post("/reset", h.sessionAction(h.UC.Reset))
			r.Post("/advance", h.sessionAction(h.UC.Advance))
			r.Post("/press", h.handlePress)
			r.Post("/name", h.handleName)
			r.Get("/hint", h.handleHint)
		})
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument), errors.Is(err, domain.ErrIndexOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNotPlaying), errors.Is(err, domain.ErrWrongPhase):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUnsolvable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}

type errorResp struct {
	Error string `json:"error"`
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.Logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
	writeJSON(w, status, errorResp{Error: err.Error()})
}

// maxBodyBytes caps request bodies. A MaxGridSize grid encodes well below it.
const maxBodyBytes = 1 << 20

func decode(w http.ResponseWriter, r *http.Request, v any, allowEmpty bool) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || (allowEmpty && errors.Is(err, io.EOF)) {
		return nil
	}
	return err
}

func badJSON(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusBadRequest, errorResp{Error: "invalid JSON: " + err.Error()})
}

// gridSize infers the side length of g when size is zero.
func gridSize(g domain.Grid, size int) int {
	if size > 0 {
		return size
	}
	n := 0
	for n*n < len(g) {
		n++
	}
	return n
}

// ---- Levels / Leaderboard ----

type levelsResp struct {
	Levels domain.Levels `json:"levels"`
}

func (h *Handler) handleLevels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, levelsResp{Levels: h.UC.Levels()})
}

type leaderboardResp struct {
	Entries []domain.LeaderboardEntry `json:"entries"`
	Error   string                    `json:"error,omitempty"`
}

func (h *Handler) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.UC.LeaderboardEntries(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if entries == nil {
		entries = []domain.LeaderboardEntry{}
	}
	writeJSON(w, http.StatusOK, leaderboardResp{Entries: entries})
}

// ---- Generate ----

type generateReq struct {
	Size     int    `json:"size"`
	Active   int    `json:"active"`
	Seed     *int64 `json:"seed,omitempty"`
	Solvable bool   `json:"solvable,omitempty"`
}

type generateResp struct {
	Grid       domain.Grid `json:"grid,omitempty"`
	Seed       int64       `json:"seed"`
	Solvable   bool        `json:"solvable"`
	Attempts   int         `json:"attempts,omitempty"`
	DurationMs int64       `json:"durationMs,omitempty"`
	Error      string      `json:"error,omitempty"`
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateReq
	if err := decode(w, r, &req, true); err != nil {
		badJSON(w, err)
		return
	}
	seed := time.Now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}
	if !req.Solvable {
		g, err := h.UC.GenerateGrid(seed, req.Size, req.Active)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, generateResp{Grid: g, Seed: seed, Attempts: 1})
		return
	}
	lvl := domain.LevelConfig{GridSize: req.Size, InitialActiveLights: req.Active}
	p, st, err := h.UC.Generate(r.Context(), seed, lvl)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, generateResp{
		Grid:       p.Grid,
		Seed:       seed,
		Solvable:   p.Solvable,
		Attempts:   st.Attempts,
		DurationMs: st.Duration.Milliseconds(),
	})
}

// ---- Toggle / Solved / Score ----

type toggleReq struct {
	Grid  domain.Grid `json:"grid"`
	Index int         `json:"index"`
	Size  int         `json:"size,omitempty"`
}

type toggleResp struct {
	Grid   domain.Grid `json:"grid,omitempty"`
	Solved bool        `json:"solved"`
	Error  string      `json:"error,omitempty"`
}

func (h *Handler) handleToggle(w http.ResponseWriter, r *http.Request) {
	var req toggleReq
	if err := decode(w, r, &req, false); err != nil {
		badJSON(w, err)
		return
	}
	g, err := h.UC.Toggle(req.Grid, req.Index, gridSize(req.Grid, req.Size))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toggleResp{Grid: g, Solved: h.UC.IsSolved(g)})
}

type solvedReq struct {
	Grid domain.Grid `json:"grid"`
	Size int         `json:"size,omitempty"`
}

type solvedResp struct {
	Solved bool   `json:"solved"`
	Lit    []int  `json:"lit"`
	Error  string `json:"error,omitempty"`
}

func (h *Handler) handleSolved(w http.ResponseWriter, r *http.Request) {
	var req solvedReq
	if err := decode(w, r, &req, false); err != nil {
		badJSON(w, err)
		return
	}
	solved, lit, err := h.UC.Validate(r.Context(), req.Grid, gridSize(req.Grid, req.Size))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, solvedResp{Solved: solved, Lit: lit})
}

type scoreReq struct {
	Moves    int `json:"moves"`
	GridSize int `json:"gridSize"`
}

type scoreResp struct {
	Score        int    `json:"score"`
	PerfectMoves int    `json:"perfectMoves"`
	Error        string `json:"error,omitempty"`
}

func (h *Handler) handleScore(w http.ResponseWriter, r *http.Request) {
	var req scoreReq
	if err := decode(w, r, &req, false); err != nil {
		badJSON(w, err)
		return
	}
	score, err := h.UC.CalculateScore(req.Moves, req.GridSize)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, scoreResp{Score: score, PerfectMoves: scoring.PerfectMoves(req.GridSize)})
}

// ---- Solve ----

type solveResp struct {
	Presses    []int  `json:"presses"`
	DurationMs int64  `json:"durationMs,omitempty"`
	Nodes      int    `json:"nodes,omitempty"`
	Error      string `json:"error,omitempty"`
}

func (h *Handler) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solvedReq
	if err := decode(w, r, &req, false); err != nil {
		badJSON(w, err)
		return
	}
	presses, st, err := h.UC.Solve(r.Context(), req.Grid, gridSize(req.Grid, req.Size))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, solveResp{Presses: presses, DurationMs: st.Duration.Milliseconds(), Nodes: st.Nodes})
}

// ---- Sessions ----

type sessionResp struct {
	Session *session.View            `json:"session,omitempty"`
	Solved  bool                     `json:"solved,omitempty"`
	Entry   *domain.LeaderboardEntry `json:"entry,omitempty"`
	Error   string                   `json:"error,omitempty"`
}

func (h *Handler) writeSession(w http.ResponseWriter, r *http.Request, v session.View, err error) {
	if err != nil {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			h.Logger.Error("session request failed", zap.String("path", r.URL.Path), zap.Error(err))
		}
		resp := sessionResp{Error: err.Error()}
		if v.ID != "" {
			resp.Session = &v
		}
		writeJSON(w, status, resp)
		return
	}
	writeJSON(w, http.StatusOK, sessionResp{Session: &v})
}

func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	v := h.UC.CreateSession()
	writeJSON(w, http.StatusCreated, sessionResp{Session: &v})
}

func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	v, err := h.UC.Session(chi.URLParam(r, "id"))
	h.writeSession(w, r, v, err)
}

func (h *Handler) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.UC.DeleteSession(chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) sessionAction(fn func(ctx context.Context, id string) (session.View, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := fn(r.Context(), chi.URLParam(r, "id"))
		h.writeSession(w, r, v, err)
	}
}

type pressReq struct {
	Index *int `json:"index"`
}

func (h *Handler) handlePress(w http.ResponseWriter, r *http.Request) {
	var req pressReq
	if err := decode(w, r, &req, false); err != nil {
		badJSON(w, err)
		return
	}
	if req.Index == nil {
		writeJSON(w, http.StatusBadRequest, errorResp{Error: "missing index"})
		return
	}
	v, solved, err := h.UC.Press(r.Context(), chi.URLParam(r, "id"), *req.Index)
	if err != nil {
		h.writeSession(w, r, v, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResp{Session: &v, Solved: solved})
}

type nameReq struct {
	Name string `json:"name"`
}

func (h *Handler) handleName(w http.ResponseWriter, r *http.Request) {
	var req nameReq
	if err := decode(w, r, &req, true); err != nil {
		badJSON(w, err)
		return
	}
	v, entry, err := h.UC.SubmitName(r.Context(), chi.URLParam(r, "id"), req.Name)
	if err != nil {
		h.writeSession(w, r, v, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResp{Session: &v, Entry: &entry})
}

type hintResp struct {
	Found bool         `json:"found"`
	Hint  *domain.Hint `json:"hint,omitempty"`
	Error string       `json:"error,omitempty"`
}

func (h *Handler) handleHint(w http.ResponseWriter, r *http.Request) {
	hh, ok, err := h.UC.Hint(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	resp := hintResp{Found: ok}
	if ok {
		resp.Hint = &hh
	}
	writeJSON(w, http.StatusOK, resp)
}
