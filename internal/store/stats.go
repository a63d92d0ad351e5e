package store

import (
	"context"
	"os"
	"time"

	"github.com/rcliao/vocab-drill/internal/srs"
)

// Stats holds database statistics.
type Stats struct {
	DBPath      string `json:"db_path"`
	DBSizeBytes int64  `json:"db_size_bytes"`
	Records     int    `json:"records"`
	srs.Summary
}

// Stats returns database statistics evaluated at now.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath string, now time.Time) (*Stats, error) {
	st := &Stats{DBPath: dbPath}

	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	words, err := s.Words(ctx)
	if err != nil {
		return st, err
	}
	records, err := s.Records(ctx)
	if err != nil {
		return st, err
	}

	st.Records = len(records)
	st.Summary = srs.Summarize(words, records, now)
	return st, nil
}
