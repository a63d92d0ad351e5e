package srs

import (
	"math/rand"
	"time"

	"github.com/rcliao/vocab-drill/internal/model"
)

// Shuffler permutes words in place. Selection uses it for the new-word and
// fallback tiers.
type Shuffler func([]model.Word)

// RandomShuffle returns a Shuffler backed by rng. The returned func is not
// safe for concurrent use.
func RandomShuffle(rng *rand.Rand) Shuffler {
	return func(ws []model.Word) {
		rng.Shuffle(len(ws), func(i, j int) { ws[i], ws[j] = ws[j], ws[i] })
	}
}

// NoShuffle keeps input order.
func NoShuffle([]model.Word) {}

// Engine holds the scheduling configuration.
type Engine struct {
	intervals Intervals
	shuffle   Shuffler
}

// NewEngine returns an Engine. A nil table selects DefaultIntervals and a
// nil shuffler a clock-seeded random one.
func NewEngine(intervals Intervals, shuffle Shuffler) (*Engine, error) {
	if intervals == nil {
		intervals = DefaultIntervals
	}
	if err := intervals.Validate(); err != nil {
		return nil, err
	}
	if shuffle == nil {
		shuffle = RandomShuffle(rand.New(rand.NewSource(time.Now().UnixNano())))
	}
	return &Engine{
		intervals: append(Intervals(nil), intervals...),
		shuffle:   shuffle,
	}, nil
}

// Intervals returns a copy of the engine's interval table.
func (e *Engine) Intervals() Intervals {
	return append(Intervals(nil), e.intervals...)
}
