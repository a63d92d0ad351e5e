package importer

import (
	"strings"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// ReadingFiller derives hiragana readings for words imported without kana.
type ReadingFiller struct {
	t *tokenizer.Tokenizer
}

// NewReadingFiller loads the IPA dictionary tokenizer.
func NewReadingFiller() (*ReadingFiller, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, err
	}
	return &ReadingFiller{t: t}, nil
}

// Reading returns the hiragana reading of text. Tokens without a reading
// in the dictionary keep their surface form.
func (f *ReadingFiller) Reading(text string) string {
	var b strings.Builder
	for _, token := range f.t.Tokenize(text) {
		if token.Class == tokenizer.DUMMY {
			continue
		}
		// IPA features: 7 is the katakana reading.
		features := token.Features()
		if len(features) > 7 && features[7] != "*" {
			b.WriteString(toHiragana(features[7]))
			continue
		}
		b.WriteString(token.Surface)
	}
	return b.String()
}

// toHiragana shifts katakana letters into the hiragana block. The long
// vowel mark and other symbols pass through.
func toHiragana(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'ァ' && r <= 'ヶ' {
			return r - 0x60
		}
		return r
	}, s)
}
