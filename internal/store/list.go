package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/rcliao/vocab-drill/internal/model"
	"github.com/rcliao/vocab-drill/internal/srs"
)

// RecordRow is a word joined with its learning record, if any.
type RecordRow struct {
	model.Word
	Record   *model.LearningRecord `json:"record,omitempty"`
	Progress float64               `json:"progress"`
}

// ListRecords returns words with their records, filtered and ordered per p.
func (s *SQLiteStore) ListRecords(ctx context.Context, p ListParams) ([]RecordRow, error) {
	q := sq.Select(
		"w.id", "w.kanji", "w.kana", "w.type", "w.meaning",
		"r.word_id", "r.next_review_time", "r.interval_level", "r.is_mastered", "r.show_count", "r.is_favorite",
	).
		From("words w").
		LeftJoin("records r ON r.word_id = w.id").
		OrderBy("w.position")

	if p.FavoritesOnly {
		q = q.Where(sq.Eq{"r.is_favorite": true})
	}
	switch p.Status {
	case "":
	case StatusNew:
		q = q.Where(sq.Eq{"r.word_id": nil})
	case StatusLearning:
		q = q.Where(sq.And{sq.NotEq{"r.word_id": nil}, sq.Eq{"r.is_mastered": false}})
	case StatusMastered:
		q = q.Where(sq.Eq{"r.is_mastered": true})
	default:
		return nil, fmt.Errorf("%w %q (valid: new, learning, mastered)", ErrInvalidStatus, p.Status)
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var words []model.Word
	var records []model.LearningRecord
	byID := map[string]model.LearningRecord{}
	for rows.Next() {
		var w model.Word
		var wordID sql.NullString
		var next, level, shows sql.NullInt64
		var mastered, favorite sql.NullBool
		if err := rows.Scan(&w.ID, &w.Kanji, &w.Kana, &w.Type, &w.Meaning,
			&wordID, &next, &level, &mastered, &shows, &favorite); err != nil {
			return nil, err
		}
		words = append(words, w)
		if wordID.Valid {
			r := model.LearningRecord{
				WordID:         wordID.String,
				NextReviewTime: next.Int64,
				IntervalLevel:  int(level.Int64),
				IsMastered:     mastered.Bool,
				ShowCount:      int(shows.Int64),
				IsFavorite:     favorite.Bool,
			}
			records = append(records, r)
			byID[r.WordID] = r
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	mode := p.Sort
	if mode == "" {
		mode = model.SortOriginal
	}
	sorted := srs.SortWords(words, records, mode)
	if p.Limit > 0 && len(sorted) > p.Limit {
		sorted = sorted[:p.Limit]
	}

	out := make([]RecordRow, 0, len(sorted))
	for _, w := range sorted {
		row := RecordRow{Word: w}
		if r, ok := byID[w.ID]; ok {
			row.Record = &r
			row.Progress = srs.Progress(r.ShowCount)
		}
		out = append(out, row)
	}
	return out, nil
}
