package store

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/rcliao/vocab-drill/internal/model"
)

// Search finds words whose kanji, kana or meaning contain the query substring.
func (s *SQLiteStore) Search(ctx context.Context, p SearchParams) ([]model.Word, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}

	pattern := "%" + p.Query + "%"
	query, args, err := sq.Select("id", "kanji", "kana", "type", "meaning").
		From("words").
		Where(sq.Or{
			sq.Like{"kanji": pattern},
			sq.Like{"kana": pattern},
			sq.Like{"meaning": pattern},
		}).
		OrderBy("position").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []model.Word{}
	for rows.Next() {
		w, err := scanWord(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, w)
	}
	return results, rows.Err()
}
