package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/rcliao/vocab-drill/internal/model"
	"github.com/rcliao/vocab-drill/internal/session"
	"github.com/rcliao/vocab-drill/internal/srs"
	"github.com/rcliao/vocab-drill/internal/store"
)

const barWidth = 10

func fieldValues(w model.Word, fields []string) string {
	vals := make([]string, 0, len(fields))
	for _, f := range fields {
		vals = append(vals, w.Field(f))
	}
	return strings.Join(vals, " | ")
}

func progressBar(showCount int) string {
	filled := int(srs.Progress(showCount) * barWidth)
	return strings.Repeat("#", filled) + strings.Repeat(".", barWidth-filled)
}

func star(fav bool) string {
	if fav {
		return "*"
	}
	return " "
}

func renderCards(w io.Writer, cards []session.Card, fields []string) {
	if len(cards) == 0 {
		fmt.Fprintln(w, "(nothing to study)")
		return
	}
	for i, c := range cards {
		fmt.Fprintf(w, "%d.%s %s  [%s]\n", i+1, star(c.Record.IsFavorite), fieldValues(c.Word, fields), progressBar(c.Record.ShowCount))
	}
}

func renderRows(w io.Writer, rows []store.RecordRow, fields []string) {
	for _, r := range rows {
		var rec model.LearningRecord
		if r.Record != nil {
			rec = *r.Record
		}
		state := "new"
		switch {
		case rec.IsMastered:
			state = "mastered"
		case r.Record != nil:
			state = fmt.Sprintf("level %d", rec.IntervalLevel)
		}
		fmt.Fprintf(w, "%s %s  [%s] x%d %s  %s\n", star(rec.IsFavorite), fieldValues(r.Word, fields), progressBar(rec.ShowCount), rec.ShowCount, state, r.ID)
	}
}
