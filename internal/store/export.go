package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rcliao/vocab-drill/internal/model"
)

// ExportAll returns words, records and preferences as one snapshot.
func (s *SQLiteStore) ExportAll(ctx context.Context) (*model.Snapshot, error) {
	words, err := s.Words(ctx)
	if err != nil {
		return nil, fmt.Errorf("export words: %w", err)
	}
	records, err := s.Records(ctx)
	if err != nil {
		return nil, fmt.Errorf("export records: %w", err)
	}
	prefs, err := s.Preferences(ctx)
	if err != nil {
		return nil, fmt.Errorf("export preferences: %w", err)
	}
	return &model.Snapshot{Words: words, Records: records, Preferences: &prefs}, nil
}

// Restore replaces all stored state with snap. Duplicate word IDs and
// duplicate records keep their first occurrence. Preferences are only
// written when the snapshot carries them.
func (s *SQLiteStore) Restore(ctx context.Context, snap model.Snapshot) (words, records int, err error) {
	ws := dedupeWords(snap.Words)
	rs := dedupeRecords(snap.Records)

	err = s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM words`); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
			return err
		}
		if err := insertWords(ctx, tx, ws); err != nil {
			return err
		}
		return insertRecords(ctx, tx, rs)
	})
	if err != nil {
		return 0, 0, fmt.Errorf("restore: %w", err)
	}

	if snap.Preferences != nil {
		prefs := model.DefaultPreferences().Merge(*snap.Preferences)
		if err := s.SavePreferences(ctx, prefs); err != nil {
			return len(ws), len(rs), fmt.Errorf("restore preferences: %w", err)
		}
	}
	return len(ws), len(rs), nil
}

func dedupeWords(words []model.Word) []model.Word {
	seen := make(map[string]bool, len(words))
	out := make([]model.Word, 0, len(words))
	for _, w := range words {
		if seen[w.ID] {
			continue
		}
		seen[w.ID] = true
		out = append(out, w)
	}
	return out
}

func dedupeRecords(records []model.LearningRecord) []model.LearningRecord {
	seen := make(map[string]bool, len(records))
	out := make([]model.LearningRecord, 0, len(records))
	for _, r := range records {
		if seen[r.WordID] {
			continue
		}
		seen[r.WordID] = true
		out = append(out, r)
	}
	return out
}
