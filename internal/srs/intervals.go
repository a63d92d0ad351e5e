// Package srs implements the spaced-repetition engine: the fixed interval
// table, batch selection and learning record transitions.
//
// Everything here is a pure function of its inputs. Callers pass the current
// time and the latest record snapshot on every call; nothing is cached.
package srs

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for the srs package.
var (
	ErrInvalidIntervals = errors.New("srs: invalid interval table")
	ErrUnknownAction    = errors.New("srs: unknown action")
)

// Intervals is an ordered table of review delays indexed by interval level.
type Intervals []time.Duration

// DefaultIntervals: 30m, 12h, 1d, 2d, 4d, 7d, 15d, 30d.
var DefaultIntervals = Intervals{
	30 * time.Minute,
	12 * time.Hour,
	24 * time.Hour,
	2 * 24 * time.Hour,
	4 * 24 * time.Hour,
	7 * 24 * time.Hour,
	15 * 24 * time.Hour,
	30 * 24 * time.Hour,
}

// IntervalsFromMinutes builds a table from durations expressed in minutes.
func IntervalsFromMinutes(minutes []int) (Intervals, error) {
	iv := make(Intervals, len(minutes))
	for i, m := range minutes {
		iv[i] = time.Duration(m) * time.Minute
	}
	if err := iv.Validate(); err != nil {
		return nil, err
	}
	return iv, nil
}

// Validate rejects empty tables and non-positive entries.
func (iv Intervals) Validate() error {
	if len(iv) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidIntervals)
	}
	for i, d := range iv {
		if d <= 0 {
			return fmt.Errorf("%w: entry %d is %v", ErrInvalidIntervals, i, d)
		}
	}
	return nil
}

// LastLevel is the highest reachable interval level.
func (iv Intervals) LastLevel() int {
	return len(iv) - 1
}

// At returns the delay for level, clamped into the table.
func (iv Intervals) At(level int) time.Duration {
	if level < 0 {
		level = 0
	}
	if level > iv.LastLevel() {
		level = iv.LastLevel()
	}
	return iv[level]
}

// NextReview returns the epoch-millisecond review time for level reached at now.
func (iv Intervals) NextReview(level int, now time.Time) int64 {
	return now.UnixMilli() + iv.At(level).Milliseconds()
}

// Minutes returns the table expressed in minutes.
func (iv Intervals) Minutes() []int {
	out := make([]int, len(iv))
	for i, d := range iv {
		out[i] = int(d / time.Minute)
	}
	return out
}
