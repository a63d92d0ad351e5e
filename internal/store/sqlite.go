package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/rcliao/vocab-drill/internal/model"
)

//go:embed migrations/*.sql
var migrations embed.FS

const prefsKey = "user"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)&_pragma=busy_timeout(10000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{db: db}

	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) migrate(ctx context.Context) error {
	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return err
	}
	p, err := goose.NewProvider(goose.DialectSQLite3, s.db, fsys)
	if err != nil {
		return err
	}
	_, err = p.Up(ctx)
	return err
}

// withTx runs fn inside a transaction, committing on success.
func (s *SQLiteStore) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLiteStore) ReplaceWords(ctx context.Context, words []model.Word, resetRecords bool) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM words`); err != nil {
			return fmt.Errorf("clear words: %w", err)
		}
		if err := insertWords(ctx, tx, words); err != nil {
			return err
		}
		if resetRecords {
			if _, err := tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
				return fmt.Errorf("clear records: %w", err)
			}
		}
		return nil
	})
}

func insertWords(ctx context.Context, tx *sql.Tx, words []model.Word) error {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO words (position, id, kanji, kana, type, meaning) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, w := range words {
		if _, err := stmt.ExecContext(ctx, i, w.ID, w.Kanji, w.Kana, w.Type, w.Meaning); err != nil {
			return fmt.Errorf("insert word %s: %w", w.ID, err)
		}
	}
	return nil
}

func (s *SQLiteStore) Words(ctx context.Context) ([]model.Word, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kanji, kana, type, meaning FROM words ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	words := []model.Word{}
	for rows.Next() {
		w, err := scanWord(rows)
		if err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	return words, rows.Err()
}

func (s *SQLiteStore) Records(ctx context.Context) ([]model.LearningRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT word_id, next_review_time, interval_level, is_mastered, show_count, is_favorite
		 FROM records ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []model.LearningRecord{}
	for rows.Next() {
		var r model.LearningRecord
		if err := rows.Scan(&r.WordID, &r.NextReviewTime, &r.IntervalLevel,
			&r.IsMastered, &r.ShowCount, &r.IsFavorite); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *SQLiteStore) SaveRecords(ctx context.Context, records []model.LearningRecord) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
			return fmt.Errorf("clear records: %w", err)
		}
		return insertRecords(ctx, tx, records)
	})
}

func insertRecords(ctx context.Context, tx *sql.Tx, records []model.LearningRecord) error {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO records (position, word_id, next_review_time, interval_level, is_mastered, show_count, is_favorite)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, r := range records {
		if _, err := stmt.ExecContext(ctx, i, r.WordID, r.NextReviewTime, r.IntervalLevel,
			r.IsMastered, r.ShowCount, r.IsFavorite); err != nil {
			return fmt.Errorf("insert record %s: %w", r.WordID, err)
		}
	}
	return nil
}

func (s *SQLiteStore) ResetRecords(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM records`)
	return err
}

func (s *SQLiteStore) Preferences(ctx context.Context) (model.Preferences, error) {
	prefs := model.DefaultPreferences()

	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = ?`, prefsKey).Scan(&raw)
	if err == sql.ErrNoRows {
		return prefs, nil
	}
	if err != nil {
		return prefs, err
	}

	var stored model.Preferences
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return prefs, fmt.Errorf("decode preferences: %w", err)
	}
	return prefs.Merge(stored), nil
}

func (s *SQLiteStore) SavePreferences(ctx context.Context, p model.Preferences) error {
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		prefsKey, string(b), time.Now().UTC().Format(time.RFC3339))
	return err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanWord(row scanner) (model.Word, error) {
	var w model.Word
	err := row.Scan(&w.ID, &w.Kanji, &w.Kana, &w.Type, &w.Meaning)
	return w, err
}
