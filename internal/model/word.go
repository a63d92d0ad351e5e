// Package model defines the core vocabulary data types.
package model

// NoneValue fills the type and meaning columns when a sheet has none.
const NoneValue = "无"

// Word is a vocabulary entry. Words are created on import and replaced
// wholesale on re-import.
type Word struct {
	ID      string `json:"id"`
	Kanji   string `json:"kanji"`
	Kana    string `json:"kana"`
	Type    string `json:"type"`
	Meaning string `json:"meaning"`
}

// LearningRecord is the review state of one word. NextReviewTime is in
// epoch milliseconds.
type LearningRecord struct {
	WordID         string `json:"wordId"`
	NextReviewTime int64  `json:"nextReviewTime"`
	IntervalLevel  int    `json:"intervalLevel"`
	IsMastered     bool   `json:"isMastered"`
	ShowCount      int    `json:"showCount"`
	IsFavorite     bool   `json:"isFavorite"`
}

// Snapshot is the full persisted state, as produced by export.
type Snapshot struct {
	Words       []Word           `json:"words"`
	Records     []LearningRecord `json:"records"`
	Preferences *Preferences     `json:"preferences,omitempty"`
}

// Field returns the value of a displayable word field by name.
func (w Word) Field(name string) string {
	switch name {
	case FieldKanji:
		return w.Kanji
	case FieldKana:
		return w.Kana
	case FieldType:
		return w.Type
	case FieldMeaning:
		return w.Meaning
	}
	return ""
}

// IndexRecords maps word IDs to their position in records. When a word has
// more than one record the first wins.
func IndexRecords(records []LearningRecord) map[string]int {
	idx := make(map[string]int, len(records))
	for i, r := range records {
		if _, ok := idx[r.WordID]; !ok {
			idx[r.WordID] = i
		}
	}
	return idx
}
