package importer

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"

	"github.com/rcliao/vocab-drill/internal/model"
)

func seqIDs() IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func TestDetectHeader(t *testing.T) {
	tests := []struct {
		name    string
		rows    [][]string
		wantRow int
		want    []string
	}{
		{
			name:    "first row",
			rows:    [][]string{{"汉字", "假名"}, {"猫", "ねこ"}},
			wantRow: 0,
			want:    []string{"汉字", "假名"},
		},
		{
			name:    "title row above header",
			rows:    [][]string{{"N5 词汇表"}, {}, {" 汉字 ", "假名", "翻译"}, {"猫", "ねこ", "猫"}},
			wantRow: 2,
			want:    []string{"汉字", "假名", "翻译"},
		},
		{
			name:    "no row with two cells",
			rows:    [][]string{{"kanji"}, {"猫"}},
			wantRow: 0,
			want:    []string{"kanji"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sheet, err := DetectHeader(tc.rows)
			if err != nil {
				t.Fatalf("detect: %v", err)
			}
			if sheet.HeaderRow != tc.wantRow {
				t.Errorf("expected header row %d, got %d", tc.wantRow, sheet.HeaderRow)
			}
			if diff := cmp.Diff(tc.want, sheet.Headers); diff != "" {
				t.Errorf("headers mismatch (-want +got):\n%s", diff)
			}
			if len(sheet.Rows) != len(tc.rows)-tc.wantRow-1 {
				t.Errorf("expected %d data rows, got %d", len(tc.rows)-tc.wantRow-1, len(sheet.Rows))
			}
		})
	}
}

func TestDetectHeaderErrors(t *testing.T) {
	if _, err := DetectHeader(nil); !errors.Is(err, ErrEmptySheet) {
		t.Errorf("expected ErrEmptySheet, got %v", err)
	}
	if _, err := DetectHeader([][]string{{" ", ""}, {"猫"}}); !errors.Is(err, ErrNoHeader) {
		t.Errorf("expected ErrNoHeader, got %v", err)
	}
}

func TestGuessMapping(t *testing.T) {
	tests := []struct {
		headers []string
		want    Mapping
	}{
		{
			[]string{"序号", "汉字写法", "假名", "词性", "中文翻译"},
			Mapping{Kanji: "汉字写法", Kana: "假名", Type: "词性", Meaning: "中文翻译"},
		},
		{
			[]string{"Kanji", "KANA", "Type", "meaning"},
			Mapping{Kanji: "Kanji", Kana: "KANA", Type: "Type", Meaning: "meaning"},
		},
		{
			[]string{"単語", "読み方", "意味"},
			Mapping{Kanji: "単語", Kana: "読み方", Meaning: "意味"},
		},
		{
			[]string{"词汇", "读音", "解释"},
			Mapping{Kanji: "词汇", Kana: "读音", Meaning: "解释"},
		},
		{
			[]string{"front", "back"},
			Mapping{},
		},
	}
	for _, tc := range tests {
		if diff := cmp.Diff(tc.want, GuessMapping(tc.headers)); diff != "" {
			t.Errorf("GuessMapping(%v) mismatch (-want +got):\n%s", tc.headers, diff)
		}
	}
}

func TestMappingValidate(t *testing.T) {
	headers := []string{"a", "b", "c"}
	if err := (Mapping{Kanji: "a"}).Validate(headers); !errors.Is(err, ErrMappingIncomplete) {
		t.Errorf("expected ErrMappingIncomplete, got %v", err)
	}
	if err := (Mapping{Kanji: "a", Kana: "z"}).Validate(headers); !errors.Is(err, ErrUnknownColumn) {
		t.Errorf("expected ErrUnknownColumn, got %v", err)
	}
	if err := (Mapping{Kanji: "a", Kana: "b", Meaning: "c"}).Validate(headers); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestBuildWords(t *testing.T) {
	sheet := Sheet{
		Headers: []string{"汉字", "假名", "词性", "翻译"},
		Rows: [][]string{
			{" 猫 ", "ねこ", "名词", "猫"},
			{"", "あめ", "名词", "雨"},
			{"走る", "はしる"},
			{"雨", "あめ", " ", "雨"},
		},
	}
	mapping := GuessMapping(sheet.Headers)

	res, err := BuildWords(sheet, mapping, Options{NewID: seqIDs()})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	want := []model.Word{
		{ID: "id-1", Kanji: "猫", Kana: "ねこ", Type: "名词", Meaning: "猫"},
		{ID: "id-2", Kanji: "走る", Kana: "はしる", Type: model.NoneValue, Meaning: model.NoneValue},
		{ID: "id-3", Kanji: "雨", Kana: "あめ", Type: model.NoneValue, Meaning: "雨"},
	}
	if diff := cmp.Diff(want, res.Words); diff != "" {
		t.Errorf("words mismatch (-want +got):\n%s", diff)
	}
	if res.Imported != 3 || res.Skipped != 1 {
		t.Errorf("expected 3 imported 1 skipped, got %d/%d", res.Imported, res.Skipped)
	}
}

func TestBuildWordsWithoutOptionalColumns(t *testing.T) {
	sheet := Sheet{Headers: []string{"kanji", "kana"}, Rows: [][]string{{"犬", "いぬ"}}}
	res, err := BuildWords(sheet, Mapping{Kanji: "kanji", Kana: "kana"}, Options{NewID: seqIDs()})
	if err != nil {
		t.Fatal(err)
	}
	if res.Words[0].Type != model.NoneValue || res.Words[0].Meaning != model.NoneValue {
		t.Errorf("expected sentinel values, got %+v", res.Words[0])
	}
}

func TestBuildWordsNoRows(t *testing.T) {
	sheet := Sheet{Headers: []string{"kanji", "kana"}, Rows: [][]string{{"", "いぬ"}}}
	_, err := BuildWords(sheet, Mapping{Kanji: "kanji", Kana: "kana"}, Options{})
	if !errors.Is(err, ErrNoWords) {
		t.Errorf("expected ErrNoWords, got %v", err)
	}
}

func TestULIDGeneratorUnique(t *testing.T) {
	gen := NewULIDGenerator()
	seen := map[string]bool{}
	prev := ""
	for i := 0; i < 500; i++ {
		id := gen()
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		if id <= prev {
			t.Fatalf("ids not increasing: %s after %s", id, prev)
		}
		seen[id] = true
		prev = id
	}
}

func TestImportCSV(t *testing.T) {
	data := "\ufeff单词表,,\n汉字,假名,翻译\n猫,ねこ,猫\n\"雨\",あめ,雨\n,,\n"
	res, err := Import(strings.NewReader(data), "n5.csv", Options{NewID: seqIDs()})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if res.HeaderRow != 1 {
		t.Errorf("expected header row 1, got %d", res.HeaderRow)
	}
	if res.Imported != 2 || res.Skipped != 1 {
		t.Errorf("expected 2 imported 1 skipped, got %d/%d", res.Imported, res.Skipped)
	}
	if res.Words[1].Kanji != "雨" || res.Words[1].Type != model.NoneValue {
		t.Errorf("unexpected word: %+v", res.Words[1])
	}
}

func TestImportTSVWithOverride(t *testing.T) {
	data := "front\tback\tnote\n猫\tねこ\tcat\n"
	_, err := Import(strings.NewReader(data), "deck.tsv", Options{})
	if !errors.Is(err, ErrMappingIncomplete) {
		t.Fatalf("expected ErrMappingIncomplete, got %v", err)
	}

	res, err := Import(strings.NewReader(data), "deck.tsv", Options{
		Mapping: Mapping{Kanji: "front", Kana: "back", Meaning: "note"},
		NewID:   seqIDs(),
	})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	want := model.Word{ID: "id-1", Kanji: "猫", Kana: "ねこ", Type: model.NoneValue, Meaning: "cat"}
	if diff := cmp.Diff(want, res.Words[0]); diff != "" {
		t.Errorf("word mismatch (-want +got):\n%s", diff)
	}
}

func TestImportXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	rows := [][]interface{}{
		{"汉字", "假名", "词性", "翻译"},
		{"猫", "ねこ", "名词", "猫"},
		{"走る", "はしる", "动词", "跑"},
	}
	for i, row := range rows {
		cellRef, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cellRef, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	res, err := Import(buf, "N5.XLSX", Options{NewID: seqIDs()})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	want := []model.Word{
		{ID: "id-1", Kanji: "猫", Kana: "ねこ", Type: "名词", Meaning: "猫"},
		{ID: "id-2", Kanji: "走る", Kana: "はしる", Type: "动词", Meaning: "跑"},
	}
	if diff := cmp.Diff(want, res.Words); diff != "" {
		t.Errorf("words mismatch (-want +got):\n%s", diff)
	}
}

func TestReadRowsErrors(t *testing.T) {
	if _, err := ReadRows(strings.NewReader("x"), "words.xls"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
	if _, err := ReadRows(strings.NewReader(""), "words.csv"); !errors.Is(err, ErrEmptySheet) {
		t.Errorf("expected ErrEmptySheet, got %v", err)
	}
	if _, err := ReadRows(strings.NewReader("not a zip"), "words.xlsx"); err == nil {
		t.Error("expected error for corrupt workbook")
	}
}
