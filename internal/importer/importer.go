package importer

import (
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/rcliao/vocab-drill/internal/model"
)

// IDGenerator produces word IDs.
type IDGenerator func() string

// NewULIDGenerator returns a generator of monotonic ULIDs. It is not safe
// for concurrent use.
func NewULIDGenerator() IDGenerator {
	entropy := ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
	return func() string {
		return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
	}
}

// Options configures Import.
type Options struct {
	// Mapping overrides guessed columns field by field.
	Mapping Mapping
	// NewID defaults to NewULIDGenerator.
	NewID IDGenerator
	// Filler, when set, supplies kana for rows whose kana cell is blank.
	Filler *ReadingFiller
}

// Result describes an import.
type Result struct {
	Words     []model.Word `json:"-"`
	Imported  int          `json:"imported"`
	Skipped   int          `json:"skipped"`
	Filled    int          `json:"filled_kana"`
	HeaderRow int          `json:"header_row"`
	Mapping   Mapping      `json:"mapping"`
}

// Import reads a spreadsheet and builds words from it.
func Import(r io.Reader, filename string, opts Options) (*Result, error) {
	rows, err := ReadRows(r, filename)
	if err != nil {
		return nil, err
	}
	sheet, err := DetectHeader(rows)
	if err != nil {
		return nil, err
	}
	mapping := GuessMapping(sheet.Headers).Override(opts.Mapping)
	if err := mapping.Validate(sheet.Headers); err != nil {
		return nil, err
	}

	res, err := BuildWords(sheet, mapping, opts)
	if err != nil {
		return nil, err
	}
	res.HeaderRow = sheet.HeaderRow
	return res, nil
}

// BuildWords converts data rows using mapping. Rows with a blank kanji cell
// are skipped; a missing or blank type or meaning becomes model.NoneValue.
func BuildWords(sheet Sheet, mapping Mapping, opts Options) (*Result, error) {
	if err := mapping.Validate(sheet.Headers); err != nil {
		return nil, err
	}
	newID := opts.NewID
	if newID == nil {
		newID = NewULIDGenerator()
	}

	kanjiIdx := indexOf(sheet.Headers, mapping.Kanji)
	kanaIdx := indexOf(sheet.Headers, mapping.Kana)
	typeIdx := indexOf(sheet.Headers, mapping.Type)
	meaningIdx := indexOf(sheet.Headers, mapping.Meaning)

	res := &Result{Mapping: mapping, Words: []model.Word{}}
	for _, row := range sheet.Rows {
		w := model.Word{
			Kanji:   cell(row, kanjiIdx),
			Kana:    cell(row, kanaIdx),
			Type:    orNone(cell(row, typeIdx)),
			Meaning: orNone(cell(row, meaningIdx)),
		}
		if w.Kanji == "" {
			res.Skipped++
			continue
		}
		if w.Kana == "" && opts.Filler != nil {
			w.Kana = opts.Filler.Reading(w.Kanji)
			res.Filled++
		}
		w.ID = newID()
		res.Words = append(res.Words, w)
	}

	if len(res.Words) == 0 {
		return nil, ErrNoWords
	}
	res.Imported = len(res.Words)
	return res, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func orNone(s string) string {
	if s == "" {
		return model.NoneValue
	}
	return s
}
