// Package store provides the vocabulary storage interface and SQLite implementation.
package store

import (
	"context"
	"errors"

	"github.com/rcliao/vocab-drill/internal/model"
)

// ListParams holds parameters for listing words with their records.
type ListParams struct {
	Sort          model.SortMode
	FavoritesOnly bool
	Status        string // new | learning | mastered | "" (all)
	Limit         int    // 0 means no limit
}

// SearchParams holds parameters for searching words.
type SearchParams struct {
	Query string
	Limit int
}

// Valid list statuses.
const (
	StatusNew      = "new"
	StatusLearning = "learning"
	StatusMastered = "mastered"
)

// ErrInvalidStatus is returned by ListRecords for an unknown status filter.
var ErrInvalidStatus = errors.New("invalid status")

// Store defines the vocabulary storage interface.
type Store interface {
	// ReplaceWords swaps the whole word set. With resetRecords the learning
	// records are cleared in the same transaction.
	ReplaceWords(ctx context.Context, words []model.Word, resetRecords bool) error

	// Words returns all words in import order.
	Words(ctx context.Context) ([]model.Word, error)

	// Records returns all learning records in stored order.
	Records(ctx context.Context) ([]model.LearningRecord, error)

	// SaveRecords replaces the stored records with records, keeping order.
	SaveRecords(ctx context.Context, records []model.LearningRecord) error

	// ResetRecords deletes every learning record. Words are kept.
	ResetRecords(ctx context.Context) error

	// Preferences returns stored preferences merged over the defaults.
	Preferences(ctx context.Context) (model.Preferences, error)

	// SavePreferences stores p.
	SavePreferences(ctx context.Context, p model.Preferences) error

	// Close closes the store.
	Close() error
}
