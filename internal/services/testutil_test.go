package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/lojf/festival/internal/db"
	"github.com/lojf/festival/internal/events"
	"github.com/lojf/festival/internal/models"
)

type testEnv struct {
	db      *gorm.DB
	hooks   *events.Hooks
	catalog *Catalog
	regs    *Registrations
	dups    *Duplicates
	reviews *Reviews
	att     *Attendance
	exports *Exports
}

// newTestEnv returns services over an isolated, fully migrated SQLite file.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gdb, err := db.Open(filepath.Join(t.TempDir(), "test.db"), zerolog.Nop())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(gdb) })

	log := zerolog.Nop()
	hooks := &events.Hooks{}
	catalog := NewCatalog(gdb, log)
	regs := NewRegistrations(gdb, catalog, log)
	att := NewAttendance(gdb, catalog, hooks, log)
	return &testEnv{
		db:      gdb,
		hooks:   hooks,
		catalog: catalog,
		regs:    regs,
		dups:    NewDuplicates(gdb, log),
		reviews: NewReviews(gdb, hooks, log),
		att:     att,
		exports: NewExports(regs, att),
	}
}

func (e *testEnv) event(t *testing.T, title, stage string, open bool) *models.Event {
	t.Helper()
	ev, err := e.catalog.CreateEvent(context.Background(), EventInput{Title: title, StageType: stage, OpenRegistration: open})
	if err != nil {
		t.Fatalf("create event %q: %v", title, err)
	}
	return ev
}

func (e *testEnv) onStage(t *testing.T, teamID, event string, cs ...Contestant) *models.OnStageRegistration {
	t.Helper()
	reg, err := e.regs.SubmitOnStage(context.Background(), OnStageInput{
		TeamID: teamID, TeamName: "Team " + teamID, EventName: event, Contestants: cs,
	})
	if err != nil {
		t.Fatalf("submit on-stage: %v", err)
	}
	return reg
}

func (e *testEnv) count(t *testing.T, model any, where string, args ...any) int64 {
	t.Helper()
	var n int64
	if err := e.db.Model(model).Where(where, args...).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

var (
	alice = Contestant{ContestantName: "Alice", DNo: "24UCC001"}
	bob   = Contestant{ContestantName: "Bob", DNo: "24UCC002"}
	carol = Contestant{ContestantName: "Carol", DNo: "24UCC003"}
)
