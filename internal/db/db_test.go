package db_test

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/lojf/festival/internal/db"
)

func openTemp(t *testing.T) *sql.DB {
	t.Helper()
	gdb, err := db.Open(filepath.Join(t.TempDir(), "test.db"), zerolog.Nop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(gdb) })
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	return sqlDB
}

// TestWALMode verifies that the DSN parameters enable WAL journal mode.
func TestWALMode(t *testing.T) {
	sqlDB := openTemp(t)

	var mode string
	if err := sqlDB.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("pragma: %v", err)
	}
	if mode != "wal" {
		t.Errorf("expected journal_mode=wal, got %q", mode)
	}
}

// TestOpen_CreatesIndexes checks the lookup indexes and the one storage-level
// uniqueness rule (attendance per event and dNo).
func TestOpen_CreatesIndexes(t *testing.T) {
	sqlDB := openTemp(t)

	cases := map[string][]string{
		"off_stage_registrations": {"idx_offstage_team_event", "idx_offstage_event"},
		"on_stage_registrations":  {"idx_onstage_team", "idx_onstage_event"},
		"attendance_records":      {"idx_attendance_event_dno"},
	}
	for table, want := range cases {
		found := indexNames(t, sqlDB, table)
		for _, name := range want {
			if _, ok := found[name]; !ok {
				t.Errorf("index %q missing from %s; found: %v", name, table, found)
			}
		}
	}

	if unique := indexNames(t, sqlDB, "attendance_records")["idx_attendance_event_dno"]; !unique {
		t.Error("idx_attendance_event_dno must be unique")
	}
	if unique := indexNames(t, sqlDB, "off_stage_registrations")["idx_offstage_team_event"]; unique {
		t.Error("off-stage (team, event) must not be unique at the storage level")
	}
}

// TestOpen_Idempotent reopens a migrated file; goose must treat it as current.
func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twice.db")
	for i := 0; i < 2; i++ {
		gdb, err := db.Open(path, zerolog.Nop())
		if err != nil {
			t.Fatalf("open #%d: %v", i+1, err)
		}
		_ = db.Close(gdb)
	}
}

// indexNames maps index name -> unique flag.
func indexNames(t *testing.T, sqlDB *sql.DB, table string) map[string]bool {
	t.Helper()
	rows, err := sqlDB.Query("PRAGMA index_list(" + table + ")")
	if err != nil {
		t.Fatalf("PRAGMA index_list: %v", err)
	}
	defer rows.Close()

	out := make(map[string]bool)
	for rows.Next() {
		var seq int
		var name string
		var unique bool
		var origin, partial string
		if err := rows.Scan(&seq, &name, &unique, &origin, &partial); err != nil {
			t.Fatalf("scan: %v", err)
		}
		out[name] = unique
	}
	return out
}
