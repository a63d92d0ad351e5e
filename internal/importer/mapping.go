package importer

import (
	"fmt"
	"strings"
)

// headerScanRows bounds how far down the header row is searched for.
const headerScanRows = 10

// Sheet is a table split into its header and the data rows below it.
type Sheet struct {
	HeaderRow int
	Headers   []string
	Rows      [][]string
}

// DetectHeader picks the first of the leading rows with at least two
// non-blank cells as the header, falling back to the first row.
func DetectHeader(rows [][]string) (Sheet, error) {
	if len(rows) == 0 {
		return Sheet{}, ErrEmptySheet
	}

	header := 0
	for i := 0; i < min(len(rows), headerScanRows); i++ {
		filled := 0
		for _, c := range rows[i] {
			if strings.TrimSpace(c) != "" {
				filled++
			}
		}
		if filled >= 2 {
			header = i
			break
		}
	}

	headers := make([]string, len(rows[header]))
	valid := 0
	for i, h := range rows[header] {
		headers[i] = strings.TrimSpace(h)
		if headers[i] != "" {
			valid++
		}
	}
	if valid == 0 {
		return Sheet{}, ErrNoHeader
	}

	return Sheet{HeaderRow: header, Headers: headers, Rows: rows[header+1:]}, nil
}

// Mapping names the header column that feeds each word field. Empty means
// the column is absent.
type Mapping struct {
	Kanji   string `json:"kanji"`
	Kana    string `json:"kana"`
	Type    string `json:"type"`
	Meaning string `json:"meaning"`
}

var fieldHints = map[string][]string{
	"kanji":   {"汉字", "词汇", "漢字", "単語"},
	"kana":    {"假名", "读音", "仮名", "かな", "読み"},
	"type":    {"词性", "品詞"},
	"meaning": {"翻译", "词义", "解释", "词意", "意味"},
}

// GuessMapping matches header names against known column titles.
func GuessMapping(headers []string) Mapping {
	return Mapping{
		Kanji:   guessColumn(headers, "kanji"),
		Kana:    guessColumn(headers, "kana"),
		Type:    guessColumn(headers, "type"),
		Meaning: guessColumn(headers, "meaning"),
	}
}

func guessColumn(headers []string, field string) string {
	for _, h := range headers {
		if h == "" {
			continue
		}
		if strings.EqualFold(h, field) {
			return h
		}
		for _, hint := range fieldHints[field] {
			if strings.Contains(h, hint) {
				return h
			}
		}
	}
	return ""
}

// Override returns m with every non-empty field of o applied.
func (m Mapping) Override(o Mapping) Mapping {
	if o.Kanji != "" {
		m.Kanji = o.Kanji
	}
	if o.Kana != "" {
		m.Kana = o.Kana
	}
	if o.Type != "" {
		m.Type = o.Type
	}
	if o.Meaning != "" {
		m.Meaning = o.Meaning
	}
	return m
}

// Validate requires the kanji and kana columns and checks every named
// column exists in headers.
func (m Mapping) Validate(headers []string) error {
	if m.Kanji == "" || m.Kana == "" {
		return ErrMappingIncomplete
	}
	for _, col := range []string{m.Kanji, m.Kana, m.Type, m.Meaning} {
		if col != "" && indexOf(headers, col) < 0 {
			return fmt.Errorf("%w: %q", ErrUnknownColumn, col)
		}
	}
	return nil
}

func indexOf(headers []string, name string) int {
	if name == "" {
		return -1
	}
	for i, h := range headers {
		if h == name {
			return i
		}
	}
	return -1
}
