package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/lojf/festival/internal/services"
)

// WriteCSV writes Header followed by one line per row.
func WriteCSV(w io.Writer, rows []services.ExportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	if err := cw.WriteAll(Table(rows)); err != nil {
		return fmt.Errorf("write csv rows: %w", err)
	}
	return nil
}

// Filename is the attachment name for an event's sheet, e.g.
// "attendance-group-dance-2026-02-01.csv".
func Filename(eventName string, now time.Time) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		}
		return '-'
	}, strings.TrimSpace(eventName))
	slug = strings.Trim(strings.Join(strings.FieldsFunc(slug, func(r rune) bool { return r == '-' }), "-"), "-")
	if slug == "" {
		slug = "all"
	}
	return fmt.Sprintf("attendance-%s-%s.csv", slug, now.Format("2006-01-02"))
}
