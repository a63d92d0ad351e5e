package srs

import (
	"sort"
	"time"

	"github.com/rcliao/vocab-drill/internal/model"
)

// ProgressTarget is the show count at which a word's progress is full.
const ProgressTarget = 10

// Progress maps a show count onto [0, 1].
func Progress(showCount int) float64 {
	if showCount <= 0 {
		return 0
	}
	return min(float64(showCount)/ProgressTarget, 1)
}

// SortWords returns words ordered for the record listing. Unknown modes and
// SortOriginal keep the input order.
func SortWords(words []model.Word, records []model.LearningRecord, mode model.SortMode) []model.Word {
	out := append([]model.Word(nil), words...)
	switch mode {
	case model.SortAlphabetical:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Kana < out[j].Kana })
	case model.SortShowCount:
		idx := model.IndexRecords(records)
		shows := func(id string) int {
			if i, ok := idx[id]; ok {
				return records[i].ShowCount
			}
			return 0
		}
		sort.SliceStable(out, func(i, j int) bool { return shows(out[i].ID) > shows(out[j].ID) })
	}
	return out
}

// Summary counts words by learning state.
type Summary struct {
	Words     int `json:"words"`
	New       int `json:"new"`
	Due       int `json:"due"`
	Learning  int `json:"learning"`
	Mastered  int `json:"mastered"`
	Favorites int `json:"favorites"`
	Orphans   int `json:"orphans"`
}

// Summarize counts each word once. Learning means an unmastered record not
// yet due. Orphans are records whose word is gone.
func Summarize(words []model.Word, records []model.LearningRecord, now time.Time) Summary {
	idx := model.IndexRecords(records)
	present := make(map[string]bool, len(words))
	var s Summary
	for _, w := range words {
		if present[w.ID] {
			continue
		}
		present[w.ID] = true
		s.Words++

		i, ok := idx[w.ID]
		if !ok {
			s.New++
			continue
		}
		r := records[i]
		switch {
		case r.IsMastered:
			s.Mastered++
		case IsDue(r, now):
			s.Due++
		default:
			s.Learning++
		}
		if r.IsFavorite {
			s.Favorites++
		}
	}
	for id := range idx {
		if !present[id] {
			s.Orphans++
		}
	}
	return s
}
