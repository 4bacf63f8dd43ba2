package export

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"

	"github.com/lojf/festival/internal/config"
	"github.com/lojf/festival/internal/services"
)

const SheetAttendance = "Attendance"

// Sheets appends attendance snapshots to a spreadsheet tab. Each push adds a
// stamped header line and the rows below it; earlier pushes stay as history.
type Sheets struct {
	srv           *sheetsv4.Service
	spreadsheetID string
	tab           string
}

// NewSheets returns nil, nil when the export is not configured.
func NewSheets(cfg *config.Config, log zerolog.Logger) (*Sheets, error) {
	if !cfg.SheetsEnabled() {
		log.Info().Msg("google sheets export disabled")
		return nil, nil
	}
	if _, err := os.Stat(cfg.SheetsCredentialsFile); err != nil {
		return nil, fmt.Errorf("service account json: %w", err)
	}
	return NewSheetsWithOptions(context.Background(), cfg.SheetsSpreadsheetID, SheetAttendance,
		option.WithCredentialsFile(cfg.SheetsCredentialsFile),
		option.WithScopes(sheetsv4.SpreadsheetsScope),
	)
}

func NewSheetsWithOptions(ctx context.Context, spreadsheetID, tab string, opts ...option.ClientOption) (*Sheets, error) {
	srv, err := sheetsv4.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &Sheets{srv: srv, spreadsheetID: spreadsheetID, tab: tab}, nil
}

func (s *Sheets) SpreadsheetID() string { return s.spreadsheetID }

// Push appends a snapshot for one event and returns the number of data rows.
func (s *Sheets) Push(ctx context.Context, eventName string, rows []services.ExportRow, now time.Time) (int, error) {
	values := make([][]interface{}, 0, len(rows)+2)
	values = append(values, []interface{}{"Snapshot", eventName, now.Format(time.RFC3339)})
	values = append(values, toCells(Header))
	for _, r := range Table(rows) {
		values = append(values, toCells(r))
	}

	vr := &sheetsv4.ValueRange{Values: values}
	_, err := s.srv.Spreadsheets.Values.Append(s.spreadsheetID, s.tab+"!A:Z", vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return 0, fmt.Errorf("append to %s: %w", s.tab, err)
	}
	return len(rows), nil
}

func toCells(row []string) []interface{} {
	out := make([]interface{}, len(row))
	for i, v := range row {
		out[i] = v
	}
	return out
}
