package srs

import (
	"sort"
	"time"

	"github.com/rcliao/vocab-drill/internal/model"
)

// SelectNext picks the next batch of at most count words.
//
// Due reviews come first, most overdue first. New words (no record) fill
// next in shuffled order, then any remaining word regardless of mastery or
// due time. The result has min(count, distinct words) entries and never
// repeats an ID.
func (e *Engine) SelectNext(words []model.Word, records []model.LearningRecord, count int, now time.Time) []model.Word {
	if count <= 0 || len(words) == 0 {
		return []model.Word{}
	}

	pool := make([]model.Word, 0, len(words))
	byID := make(map[string]model.Word, len(words))
	for _, w := range words {
		if _, dup := byID[w.ID]; dup {
			continue
		}
		byID[w.ID] = w
		pool = append(pool, w)
	}

	result := make([]model.Word, 0, min(count, len(pool)))
	chosen := make(map[string]bool, cap(result))
	take := func(w model.Word) {
		result = append(result, w)
		chosen[w.ID] = true
	}

	for _, r := range dueRecords(records, now) {
		if len(result) >= count {
			break
		}
		w, ok := byID[r.WordID]
		if !ok || chosen[w.ID] {
			continue
		}
		take(w)
	}

	if len(result) < count {
		known := model.IndexRecords(records)
		var fresh []model.Word
		for _, w := range pool {
			if _, ok := known[w.ID]; !ok && !chosen[w.ID] {
				fresh = append(fresh, w)
			}
		}
		e.shuffle(fresh)
		for _, w := range fresh {
			if len(result) >= count {
				break
			}
			take(w)
		}
	}

	if len(result) < count {
		var rest []model.Word
		for _, w := range pool {
			if !chosen[w.ID] {
				rest = append(rest, w)
			}
		}
		e.shuffle(rest)
		for _, w := range rest {
			if len(result) >= count {
				break
			}
			take(w)
		}
	}

	return result
}

// dueRecords returns unmastered records whose review time has passed,
// ordered by review time. Ties keep record order.
func dueRecords(records []model.LearningRecord, now time.Time) []model.LearningRecord {
	var due []model.LearningRecord
	for _, r := range records {
		if IsDue(r, now) {
			due = append(due, r)
		}
	}
	sort.SliceStable(due, func(i, j int) bool {
		return due[i].NextReviewTime < due[j].NextReviewTime
	})
	return due
}

// IsDue reports whether r should be reviewed at now.
func IsDue(r model.LearningRecord, now time.Time) bool {
	return !r.IsMastered && r.NextReviewTime <= now.UnixMilli()
}
