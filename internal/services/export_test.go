package services

import (
	"context"
	"errors"
	"testing"

	"github.com/lojf/festival/internal/models"
)

func TestExportRows(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.event(t, "Group Dance", models.StageOn, true)

	env.onStage(t, "25ICA02", "Group Dance", alice, bob)
	env.onStage(t, "25ICA02", "Group Dance", alice, bob)
	env.onStage(t, "25ICA03", "Group Dance", carol)

	marks := []MarkInput{
		{EventName: "Group Dance", LotNumber: "4", DNo: "24UCC001", Status: "PRESENT", MarkedBy: "vol1"},
		{EventName: "Group Dance", DNo: "24UCC003", Status: "MALPRACTICE", MalpracticeDetails: "phone"},
		{EventName: "Group Dance", DNo: "24ZZZ999", Status: "ABSENT"},
	}
	for _, m := range marks {
		if _, err := env.att.Mark(ctx, m); err != nil {
			t.Fatalf("mark %s: %v", m.DNo, err)
		}
	}

	rows, err := env.exports.Rows(ctx, ExportFilter{EventName: "Group Dance"})
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("want 4 rows (duplicates collapsed, stray mark kept), got %d: %+v", len(rows), rows)
	}
	byDNo := map[string]ExportRow{}
	for _, r := range rows {
		byDNo[r.DNo] = r
	}
	if r := byDNo["24UCC001"]; r.Status != models.AttendancePresent || r.LotNumber != "4" || r.TeamID != "25ICA02" || r.MarkedAt == nil {
		t.Errorf("alice: %+v", r)
	}
	if r := byDNo["24UCC002"]; r.Status != models.AttendanceUnmarked || r.MarkedAt != nil || r.ContestantName != "Bob" {
		t.Errorf("bob: %+v", r)
	}
	if r := byDNo["24UCC003"]; r.Status != models.AttendanceMalpractice || r.MalpracticeDetails != "phone" || r.TeamName != "Team 25ICA03" {
		t.Errorf("carol: %+v", r)
	}
	if r := rows[len(rows)-1]; r.DNo != "24ZZZ999" || r.TeamID != "" || r.Status != models.AttendanceAbsent {
		t.Errorf("unregistered mark should come last: %+v", r)
	}

	unmarked, err := env.exports.Rows(ctx, ExportFilter{EventName: "Group Dance", Status: "unmarked"})
	if err != nil {
		t.Fatalf("filtered rows: %v", err)
	}
	if len(unmarked) != 1 || unmarked[0].DNo != "24UCC002" {
		t.Errorf("unmarked filter: %+v", unmarked)
	}
}

func TestExportRows_EmptyEvent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.event(t, "Mime", models.StageOn, true)

	rows, err := env.exports.Rows(ctx, ExportFilter{EventName: "Mime"})
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("want no rows, got %+v", rows)
	}
	if _, err := env.exports.Rows(ctx, ExportFilter{EventName: "Nothing"}); !errors.Is(err, ErrValidation) {
		t.Errorf("unknown event: want ErrValidation, got %v", err)
	}
}

func TestExportRows_EventCaseInsensitive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.event(t, "Group Dance", models.StageOn, true)
	env.onStage(t, "25ICA02", "Group Dance", alice, bob)

	if _, err := env.att.Mark(ctx, MarkInput{EventName: "group dance", DNo: "24UCC001", Status: "MALPRACTICE", MalpracticeDetails: "left early"}); err != nil {
		t.Fatalf("mark: %v", err)
	}
	rows, err := env.exports.Rows(ctx, ExportFilter{EventName: "GROUP DANCE"})
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 2 || rows[0].DNo != "24UCC001" || rows[0].Status != models.AttendanceMalpractice {
		t.Errorf("rows: %+v", rows)
	}
}
