package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/rcliao/vocab-drill/internal/model"
	"github.com/rcliao/vocab-drill/internal/session"
	"github.com/rcliao/vocab-drill/internal/store"
)

type batchResponse struct {
	Cards []session.Card `json:"cards"`
	Error string         `json:"error,omitempty"`
}

// handleCurrent returns the batch on screen.
// GET /api/v1/batch
func (s *Server) handleCurrent(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, batchResponse{Cards: s.sess.Current()})
}

// handleRefresh selects and views the next batch.
// POST /api/v1/batch?count=N
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	count, err := intParam(r, "count", 0)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if count < 0 || count > model.MaxDisplayCount {
		s.writeError(w, http.StatusBadRequest,
			fmt.Errorf("count must be between %d and %d", model.MinDisplayCount, model.MaxDisplayCount))
		return
	}

	cards, err := s.sess.Refresh(r.Context(), count)
	switch {
	case errors.Is(err, session.ErrCooldown):
		writeJSON(w, http.StatusTooManyRequests, batchResponse{Cards: cards, Error: err.Error()})
	case err != nil:
		s.writeError(w, http.StatusInternalServerError, err)
	default:
		writeJSON(w, http.StatusOK, batchResponse{Cards: cards})
	}
}

// handleMaster marks a word as mastered.
// POST /api/v1/words/{id}/master
func (s *Server) handleMaster(w http.ResponseWriter, r *http.Request) {
	rec, err := s.sess.Master(r.Context(), chi.URLParam(r, "id"))
	s.writeRecord(w, rec, err)
}

// handleFavorite toggles a word's favorite flag.
// POST /api/v1/words/{id}/favorite
func (s *Server) handleFavorite(w http.ResponseWriter, r *http.Request) {
	rec, err := s.sess.ToggleFavorite(r.Context(), chi.URLParam(r, "id"))
	s.writeRecord(w, rec, err)
}

func (s *Server) writeRecord(w http.ResponseWriter, rec model.LearningRecord, err error) {
	switch {
	case errors.Is(err, session.ErrUnknownWord):
		s.writeError(w, http.StatusNotFound, err)
	case err != nil:
		s.writeError(w, http.StatusInternalServerError, err)
	default:
		writeJSON(w, http.StatusOK, rec)
	}
}

// handleRecords lists words with their learning records.
// GET /api/v1/records?sort=&favorites=&status=&limit=
func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := store.ListParams{Sort: model.SortMode(q.Get("sort")), Status: q.Get("status")}

	if p.Sort == "" {
		prefs, err := s.db.Preferences(r.Context())
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err)
			return
		}
		p.Sort = prefs.RecordSortMode
	} else if !model.ValidSortModes[p.Sort] {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("unknown sort mode %q", p.Sort))
		return
	}

	if v := q.Get("favorites"); v != "" {
		fav, err := strconv.ParseBool(v)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, fmt.Errorf("favorites: %w", err))
			return
		}
		p.FavoritesOnly = fav
	}

	var err error
	if p.Limit, err = intParam(r, "limit", 0); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	rows, err := s.db.ListRecords(r.Context(), p)
	switch {
	case errors.Is(err, store.ErrInvalidStatus):
		s.writeError(w, http.StatusBadRequest, err)
	case err != nil:
		s.writeError(w, http.StatusInternalServerError, err)
	default:
		if rows == nil {
			rows = []store.RecordRow{}
		}
		writeJSON(w, http.StatusOK, rows)
	}
}

// handleSearch finds words by kanji, kana or meaning.
// GET /api/v1/search?q=&limit=
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		s.writeError(w, http.StatusBadRequest, errors.New("q is required"))
		return
	}
	limit, err := intParam(r, "limit", 0)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	words, err := s.db.Search(r.Context(), store.SearchParams{Query: query, Limit: limit})
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	if words == nil {
		words = []model.Word{}
	}
	writeJSON(w, http.StatusOK, words)
}

// handleStats reports progress counters.
// GET /api/v1/stats
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.db.Stats(r.Context(), s.dbPath, s.now())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// GET /api/v1/preferences
func (s *Server) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	prefs, err := s.db.Preferences(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}

// handlePutPreferences merges the body over the stored preferences.
// PUT /api/v1/preferences
func (s *Server) handlePutPreferences(w http.ResponseWriter, r *http.Request) {
	var patch model.Preferences
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&patch); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	current, err := s.db.Preferences(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	merged := current.Merge(patch)
	if err := merged.Validate(); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.db.SavePreferences(r.Context(), merged); err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, merged)
}

func intParam(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: not an integer: %q", name, v)
	}
	return n, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
