package model

import (
	"errors"
	"fmt"
)

// ErrInvalidPreferences is returned by Preferences.Validate.
var ErrInvalidPreferences = errors.New("model: invalid preferences")

// Displayable word fields.
const (
	FieldKanji   = "kanji"
	FieldKana    = "kana"
	FieldType    = "type"
	FieldMeaning = "meaning"
)

// AllFields lists the displayable fields in display order.
var AllFields = []string{FieldKanji, FieldKana, FieldType, FieldMeaning}

// Display count bounds.
const (
	MinDisplayCount = 1
	MaxDisplayCount = 5
)

// SortMode orders the learning record listing.
type SortMode string

const (
	SortOriginal     SortMode = "original"
	SortAlphabetical SortMode = "alphabetical"
	SortShowCount    SortMode = "showCount"
)

// ValidSortModes are the allowed record listing orders.
var ValidSortModes = map[SortMode]bool{
	SortOriginal:     true,
	SortAlphabetical: true,
	SortShowCount:    true,
}

// Preferences is the user's persisted configuration.
type Preferences struct {
	DisplayCount   int      `json:"displayCount"`
	VisibleFields  []string `json:"visibleFields"`
	RecordSortMode SortMode `json:"recordSortMode,omitempty"`
	LastFilename   string   `json:"lastFilename,omitempty"`
}

// DefaultPreferences returns the preferences used before anything is saved.
func DefaultPreferences() Preferences {
	return Preferences{
		DisplayCount:   3,
		VisibleFields:  append([]string(nil), AllFields...),
		RecordSortMode: SortShowCount,
	}
}

// Merge overlays the set fields of override on p and returns the result.
func (p Preferences) Merge(override Preferences) Preferences {
	out := p
	out.VisibleFields = append([]string(nil), p.VisibleFields...)
	if override.DisplayCount != 0 {
		out.DisplayCount = override.DisplayCount
	}
	if override.VisibleFields != nil {
		out.VisibleFields = append([]string(nil), override.VisibleFields...)
	}
	if override.RecordSortMode != "" {
		out.RecordSortMode = override.RecordSortMode
	}
	if override.LastFilename != "" {
		out.LastFilename = override.LastFilename
	}
	return out
}

// Validate checks display count bounds, field names and sort mode.
func (p Preferences) Validate() error {
	if p.DisplayCount < MinDisplayCount || p.DisplayCount > MaxDisplayCount {
		return fmt.Errorf("%w: display count %d out of range [%d, %d]",
			ErrInvalidPreferences, p.DisplayCount, MinDisplayCount, MaxDisplayCount)
	}
	for _, f := range p.VisibleFields {
		switch f {
		case FieldKanji, FieldKana, FieldType, FieldMeaning:
		default:
			return fmt.Errorf("%w: unknown field %q", ErrInvalidPreferences, f)
		}
	}
	if p.RecordSortMode != "" && !ValidSortModes[p.RecordSortMode] {
		return fmt.Errorf("%w: unknown sort mode %q", ErrInvalidPreferences, p.RecordSortMode)
	}
	return nil
}
