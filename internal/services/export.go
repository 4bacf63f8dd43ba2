package services

import (
	"context"
	"time"

	"github.com/lojf/festival/internal/models"
)

// ExportRow is one contestant line of an attendance sheet. Column layout is
// the renderer's concern.
type ExportRow struct {
	EventName          string
	TeamID             string
	TeamName           string
	LotNumber          string
	ContestantName     string
	DNo                string
	Status             string // PRESENT | ABSENT | MALPRACTICE | UNMARKED
	MalpracticeDetails string
	MarkedBy           string
	MarkedAt           *time.Time
}

type ExportFilter struct {
	EventName string
	Status    string // optional; UNMARKED selects contestants with no mark
}

type Exports struct {
	regs *Registrations
	att  *Attendance
}

func NewExports(regs *Registrations, att *Attendance) *Exports {
	return &Exports{regs: regs, att: att}
}

// Rows joins the event's registered contestants with the ledger. Each dNo
// appears once even when duplicate registrations are still present; marks
// for dNos with no registration follow at the end.
func (x *Exports) Rows(ctx context.Context, f ExportFilter) ([]ExportRow, error) {
	title, err := x.att.EventTitle(ctx, f.EventName)
	if err != nil {
		return nil, err
	}
	listing, err := x.regs.ListByEvent(ctx, title)
	if err != nil {
		return nil, err
	}
	recs, err := x.att.Records(ctx, title)
	if err != nil {
		return nil, err
	}
	byDNo := make(map[string]models.AttendanceRecord, len(recs))
	for _, r := range recs {
		byDNo[r.DNo] = r
	}

	var rows []ExportRow
	seen := map[string]bool{}
	for _, reg := range listing.OnStage {
		for _, c := range reg.Contestants {
			if seen[c.DNo] {
				continue
			}
			seen[c.DNo] = true
			row := ExportRow{
				EventName:      reg.EventName,
				TeamID:         reg.TeamID,
				TeamName:       reg.TeamName,
				ContestantName: c.ContestantName,
				DNo:            c.DNo,
				Status:         models.AttendanceUnmarked,
			}
			if rec, ok := byDNo[c.DNo]; ok {
				applyMark(&row, rec)
			}
			rows = append(rows, row)
		}
	}
	for _, rec := range recs {
		if seen[rec.DNo] {
			continue
		}
		row := ExportRow{EventName: rec.EventName, DNo: rec.DNo}
		applyMark(&row, rec)
		rows = append(rows, row)
	}

	if f.Status == "" {
		return rows, nil
	}
	want := upper(NormText(f.Status))
	filtered := rows[:0]
	for _, r := range rows {
		if r.Status == want {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

func applyMark(row *ExportRow, rec models.AttendanceRecord) {
	at := rec.UpdatedAt
	row.Status = rec.Status
	row.MalpracticeDetails = rec.MalpracticeDetails
	row.LotNumber = rec.LotNumber
	row.MarkedBy = rec.MarkedBy
	row.MarkedAt = &at
}
