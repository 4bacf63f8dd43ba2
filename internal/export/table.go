// Package export renders attendance rows for offline use: CSV downloads and
// a Google Sheets mirror.
package export

import (
	"time"

	"github.com/lojf/festival/internal/services"
)

var Header = []string{
	"Event", "Team ID", "Team", "Lot", "Contestant", "D.No",
	"Status", "Malpractice Details", "Marked By", "Marked At",
}

const timeLayout = "2006-01-02 15:04"

// Table flattens rows into Header's column order.
func Table(rows []services.ExportRow) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.EventName,
			r.TeamID,
			r.TeamName,
			r.LotNumber,
			r.ContestantName,
			r.DNo,
			r.Status,
			r.MalpracticeDetails,
			r.MarkedBy,
			fmtTime(r.MarkedAt),
		})
	}
	return out
}

func fmtTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Local().Format(timeLayout)
}
