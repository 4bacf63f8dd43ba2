package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lojf/festival/internal/events"
	"github.com/lojf/festival/internal/models"
)

// Attendance records one snapshot per (event, dNo). Any status may replace
// any other; nothing of the previous mark survives.
type Attendance struct {
	db      *gorm.DB
	catalog *Catalog
	hooks   *events.Hooks
	logger  zerolog.Logger
}

func NewAttendance(db *gorm.DB, catalog *Catalog, hooks *events.Hooks, logger zerolog.Logger) *Attendance {
	return &Attendance{db: db, catalog: catalog, hooks: hooks, logger: logger}
}

type MarkInput struct {
	EventName          string
	LotNumber          string // opaque lot context from the caller, kept if non-empty
	DNo                string
	Status             string
	MalpracticeDetails string
	MarkedBy           string
}

type Mark struct {
	Status             string
	MalpracticeDetails string
}

// Sheet maps a normalized dNo to its current mark.
type Sheet map[string]Mark

// Lookup normalizes dNo and reports UNMARKED for contestants with no mark.
func (s Sheet) Lookup(dNo string) Mark {
	if m, ok := s[NormDNo(dNo)]; ok {
		return m
	}
	return Mark{Status: models.AttendanceUnmarked}
}

// EventTitle resolves a caller-supplied event name to the catalog title the
// ledger is keyed by.
func (a *Attendance) EventTitle(ctx context.Context, name string) (string, error) {
	name = NormTitle(name)
	if name == "" {
		return "", validationError("eventName", "event name is required")
	}
	ev, err := a.catalog.EventByTitle(ctx, name)
	if errors.Is(err, ErrNotFound) {
		e := validationError("eventName", fmt.Sprintf("unknown event %q", name))
		e.Metadata["record"] = name
		return "", e
	}
	if err != nil {
		return "", err
	}
	return ev.Title, nil
}

func (a *Attendance) Mark(ctx context.Context, in MarkInput) (*models.AttendanceRecord, error) {
	dno := NormDNo(in.DNo)
	status, ok := NormAttendance(in.Status)
	switch {
	case NormTitle(in.EventName) == "":
		return nil, validationError("eventName", "event name is required")
	case dno == "":
		return nil, validationError("dNo", "dNo is required")
	case !ok:
		return nil, validationError("status", "status must be PRESENT, ABSENT or MALPRACTICE")
	}

	details := NormText(in.MalpracticeDetails)
	if status == models.AttendanceMalpractice && details == "" {
		e := validationError("malpracticeDetails", "malpractice details are required")
		e.Metadata["record"] = dno
		return nil, e
	}
	if status != models.AttendanceMalpractice {
		details = ""
	}
	eventName, err := a.EventTitle(ctx, in.EventName)
	if err != nil {
		return nil, err
	}

	rec := models.AttendanceRecord{
		EventName:          eventName,
		DNo:                dno,
		Status:             status,
		MalpracticeDetails: details,
		LotNumber:          NormText(in.LotNumber),
		MarkedBy:           NormText(in.MarkedBy),
	}
	update := []string{"status", "malpractice_details", "marked_by", "updated_at"}
	if rec.LotNumber != "" {
		update = append(update, "lot_number")
	}

	db := a.db.WithContext(ctx)
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_name"}, {Name: "d_no"}},
		DoUpdates: clause.AssignmentColumns(update),
	}).Create(&rec).Error; err != nil {
		return nil, fmt.Errorf("mark %s/%s: %w", eventName, dno, err)
	}

	// The insert id is unreliable after an upsert; read the row back.
	var stored models.AttendanceRecord
	if err := db.Where("event_name = ? AND d_no = ?", eventName, dno).First(&stored).Error; err != nil {
		return nil, storeErr(err, "attendance record", eventName+"/"+dno)
	}

	a.logger.Info().
		Str("event", eventName).
		Str("d_no", dno).
		Str("status", status).
		Str("marked_by", rec.MarkedBy).
		Msg("attendance marked")
	if status == models.AttendanceMalpractice {
		a.hooks.FireMalpractice(stored)
	}
	return &stored, nil
}

type ContestantMark struct {
	DNo                string
	Status             string
	MalpracticeDetails string
}

type TeamMarkInput struct {
	EventName string
	LotNumber string
	MarkedBy  string
	Marks     []ContestantMark
}

type MarkResult struct {
	DNo    string
	Record *models.AttendanceRecord
	Err    error
}

// MarkTeam marks each contestant of a team row independently. Some marks may
// succeed while others fail; the caller gets one result per contestant and
// can retry the failed ones.
func (a *Attendance) MarkTeam(ctx context.Context, in TeamMarkInput) []MarkResult {
	results := make([]MarkResult, len(in.Marks))
	g := new(errgroup.Group)
	for i, m := range in.Marks {
		g.Go(func() error {
			rec, err := a.Mark(ctx, MarkInput{
				EventName:          in.EventName,
				LotNumber:          in.LotNumber,
				DNo:                m.DNo,
				Status:             m.Status,
				MalpracticeDetails: m.MalpracticeDetails,
				MarkedBy:           in.MarkedBy,
			})
			results[i] = MarkResult{DNo: NormDNo(m.DNo), Record: rec, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	if failed := FailedMarks(results); failed > 0 {
		a.logger.Warn().Str("event", NormTitle(in.EventName)).Int("failed", failed).Int("total", len(results)).Msg("team marked partially")
	}
	return results
}

func FailedMarks(results []MarkResult) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

func (a *Attendance) Query(ctx context.Context, eventName string) (Sheet, error) {
	eventName, err := a.EventTitle(ctx, eventName)
	if err != nil {
		return nil, err
	}
	var recs []models.AttendanceRecord
	if err := a.db.WithContext(ctx).Where("event_name = ?", eventName).Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("query attendance for %s: %w", eventName, err)
	}
	sheet := make(Sheet, len(recs))
	for _, r := range recs {
		sheet[r.DNo] = Mark{Status: r.Status, MalpracticeDetails: r.MalpracticeDetails}
	}
	return sheet, nil
}

// Records returns the full rows for an event, ordered by dNo.
func (a *Attendance) Records(ctx context.Context, eventName string) ([]models.AttendanceRecord, error) {
	eventName, err := a.EventTitle(ctx, eventName)
	if err != nil {
		return nil, err
	}
	var recs []models.AttendanceRecord
	if err := a.db.WithContext(ctx).Where("event_name = ?", eventName).Order("d_no asc").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("attendance records: %w", err)
	}
	return recs, nil
}
