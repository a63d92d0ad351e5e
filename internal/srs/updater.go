package srs

import (
	"fmt"
	"time"

	"github.com/rcliao/vocab-drill/internal/model"
)

// ApplyAction returns a copy of records with action applied to wordID's
// record. The input slice is not modified.
//
// A word without a record gets one seeded at level 0 with ShowCount 1,
// whatever the action; only IsMastered or IsFavorite differ. On an existing
// record, view advances the level (clamped to the last one) and reschedules
// from now, master sets IsMastered, and toggle_favorite flips IsFavorite.
// The word ID is not checked against any word set.
func (e *Engine) ApplyAction(wordID string, records []model.LearningRecord, action model.Action, now time.Time) ([]model.LearningRecord, error) {
	if !action.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, string(action))
	}

	out := make([]model.LearningRecord, len(records), len(records)+1)
	copy(out, records)

	i, ok := model.IndexRecords(out)[wordID]
	if !ok {
		out = append(out, model.LearningRecord{
			WordID:         wordID,
			NextReviewTime: e.intervals.NextReview(0, now),
			IntervalLevel:  0,
			IsMastered:     action == model.ActionMaster,
			ShowCount:      1,
			IsFavorite:     action == model.ActionToggleFavorite,
		})
		return out, nil
	}

	r := out[i]
	switch action {
	case model.ActionView:
		r.ShowCount++
		r.IntervalLevel = min(r.IntervalLevel+1, e.intervals.LastLevel())
		r.NextReviewTime = e.intervals.NextReview(r.IntervalLevel, now)
	case model.ActionMaster:
		r.IsMastered = true
	case model.ActionToggleFavorite:
		r.IsFavorite = !r.IsFavorite
	}
	out[i] = r
	return out, nil
}

// ApplyAll applies action to each word in turn, threading the records
// through every call.
func (e *Engine) ApplyAll(words []model.Word, records []model.LearningRecord, action model.Action, now time.Time) ([]model.LearningRecord, error) {
	out := records
	for _, w := range words {
		var err error
		out, err = e.ApplyAction(w.ID, out, action, now)
		if err != nil {
			return nil, err
		}
	}
	if len(words) == 0 {
		out = append([]model.LearningRecord(nil), records...)
	}
	return out, nil
}

// Find returns the record for wordID, if any.
func Find(records []model.LearningRecord, wordID string) (model.LearningRecord, bool) {
	for _, r := range records {
		if r.WordID == wordID {
			return r, true
		}
	}
	return model.LearningRecord{}, false
}
