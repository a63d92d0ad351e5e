// Package session drives a study session: it pulls words and records from a
// store, asks the engine for the next batch and persists every change.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rcliao/vocab-drill/internal/model"
	"github.com/rcliao/vocab-drill/internal/srs"
	"github.com/rcliao/vocab-drill/internal/store"
)

// Cooldown bounds for Refresh.
const (
	DefaultCooldown = 800 * time.Millisecond
	MinCooldown     = 500 * time.Millisecond
)

var (
	// ErrCooldown is returned by Refresh when called again too soon. The
	// previous batch is returned alongside it.
	ErrCooldown = errors.New("refresh cooldown active")

	// ErrUnknownWord is returned when an action names a word not in the store.
	ErrUnknownWord = errors.New("unknown word")
)

// Card is a word on screen together with its learning record.
type Card struct {
	model.Word
	Record model.LearningRecord `json:"record"`
}

// Session is safe for concurrent use. All reads and writes to the store
// happen under one mutex, so two refreshes never interleave.
type Session struct {
	mu       sync.Mutex
	store    store.Store
	engine   *srs.Engine
	now      func() time.Time
	cooldown time.Duration
	log      *zap.Logger

	batch []Card
	last  time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithClock sets the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithCooldown sets the minimum gap between refreshes. Values below
// MinCooldown are raised to it.
func WithCooldown(d time.Duration) Option {
	return func(s *Session) { s.cooldown = max(d, MinCooldown) }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.log = l }
}

// New creates a session over st using engine.
func New(st store.Store, engine *srs.Engine, opts ...Option) *Session {
	s := &Session{
		store:    st,
		engine:   engine,
		now:      time.Now,
		cooldown: DefaultCooldown,
		log:      zap.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Refresh selects the next batch, marks every selected word as viewed and
// saves the records. count <= 0 uses the stored DisplayCount preference.
func (s *Session) Refresh(ctx context.Context, count int) ([]Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if !s.last.IsZero() && now.Sub(s.last) < s.cooldown {
		return cloneCards(s.batch), ErrCooldown
	}

	if count <= 0 {
		prefs, err := s.store.Preferences(ctx)
		if err != nil {
			return nil, fmt.Errorf("load preferences: %w", err)
		}
		count = prefs.DisplayCount
	}

	words, err := s.store.Words(ctx)
	if err != nil {
		return nil, fmt.Errorf("load words: %w", err)
	}
	records, err := s.store.Records(ctx)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}

	picked := s.engine.SelectNext(words, records, count, now)
	updated, err := s.engine.ApplyAll(picked, records, model.ActionView, now)
	if err != nil {
		return nil, err
	}
	if len(picked) > 0 {
		if err := s.store.SaveRecords(ctx, updated); err != nil {
			return nil, fmt.Errorf("save records: %w", err)
		}
	}

	s.batch = makeCards(picked, updated)
	s.last = now
	s.log.Debug("batch refreshed",
		zap.Int("requested", count),
		zap.Int("selected", len(picked)),
		zap.Int("words", len(words)),
	)
	return cloneCards(s.batch), nil
}

// Current returns the batch from the last successful Refresh.
func (s *Session) Current() []Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneCards(s.batch)
}

// Master marks the word as mastered and drops it from the current batch.
func (s *Session) Master(ctx context.Context, wordID string) (model.LearningRecord, error) {
	return s.apply(ctx, wordID, model.ActionMaster)
}

// ToggleFavorite flips the word's favorite flag.
func (s *Session) ToggleFavorite(ctx context.Context, wordID string) (model.LearningRecord, error) {
	return s.apply(ctx, wordID, model.ActionToggleFavorite)
}

func (s *Session) apply(ctx context.Context, wordID string, action model.Action) (model.LearningRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	words, err := s.store.Words(ctx)
	if err != nil {
		return model.LearningRecord{}, fmt.Errorf("load words: %w", err)
	}
	if !hasWord(words, wordID) {
		return model.LearningRecord{}, fmt.Errorf("%w: %s", ErrUnknownWord, wordID)
	}

	records, err := s.store.Records(ctx)
	if err != nil {
		return model.LearningRecord{}, fmt.Errorf("load records: %w", err)
	}
	updated, err := s.engine.ApplyAction(wordID, records, action, s.now())
	if err != nil {
		return model.LearningRecord{}, err
	}
	if err := s.store.SaveRecords(ctx, updated); err != nil {
		return model.LearningRecord{}, fmt.Errorf("save records: %w", err)
	}

	rec, _ := srs.Find(updated, wordID)
	kept := s.batch[:0:0]
	for _, c := range s.batch {
		if c.ID != wordID {
			kept = append(kept, c)
			continue
		}
		if action == model.ActionMaster {
			continue
		}
		c.Record = rec
		kept = append(kept, c)
	}
	s.batch = kept

	s.log.Info("word updated",
		zap.String("word", wordID),
		zap.Stringer("action", action),
		zap.Bool("mastered", rec.IsMastered),
		zap.Bool("favorite", rec.IsFavorite),
	)
	return rec, nil
}

func makeCards(words []model.Word, records []model.LearningRecord) []Card {
	idx := model.IndexRecords(records)
	cards := make([]Card, 0, len(words))
	for _, w := range words {
		c := Card{Word: w}
		if i, ok := idx[w.ID]; ok {
			c.Record = records[i]
		}
		cards = append(cards, c)
	}
	return cards
}

func cloneCards(cards []Card) []Card {
	return append(make([]Card, 0, len(cards)), cards...)
}

func hasWord(words []model.Word, id string) bool {
	for _, w := range words {
		if w.ID == id {
			return true
		}
	}
	return false
}
