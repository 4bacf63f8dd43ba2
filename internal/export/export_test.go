package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"google.golang.org/api/option"

	"github.com/lojf/festival/internal/services"
)

func sampleRows() []services.ExportRow {
	at := time.Date(2026, 2, 1, 10, 30, 0, 0, time.Local)
	return []services.ExportRow{
		{EventName: "Group Dance", TeamID: "25ICA02", TeamName: "Commerce, A", LotNumber: "4", ContestantName: "Alice", DNo: "24UCC001", Status: "PRESENT", MarkedBy: "vol1", MarkedAt: &at},
		{EventName: "Group Dance", TeamID: "25ICA02", TeamName: "Commerce, A", ContestantName: "Bob", DNo: "24UCC002", Status: "UNMARKED"},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleRows()); err != nil {
		t.Fatalf("write: %v", err)
	}
	recs, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("want header + 2 rows, got %d", len(recs))
	}
	if recs[0][5] != "D.No" || recs[1][2] != "Commerce, A" || recs[1][9] != "2026-02-01 10:30" {
		t.Errorf("unexpected rows: %q", recs)
	}
	if recs[2][6] != "UNMARKED" || recs[2][9] != "" {
		t.Errorf("unmarked row: %q", recs[2])
	}
}

func TestFilename(t *testing.T) {
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	cases := map[string]string{
		"Group Dance":      "attendance-group-dance-2026-02-01.csv",
		"  Mime / Skit!! ": "attendance-mime-skit-2026-02-01.csv",
		"":                "attendance-all-2026-02-01.csv",
	}
	for in, want := range cases {
		if got := Filename(in, now); got != want {
			t.Errorf("Filename(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSheetsPush(t *testing.T) {
	var gotPath string
	var body struct {
		Values [][]string `json:"values"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode: %v", err)
		}
		if r.URL.Query().Get("valueInputOption") != "RAW" {
			t.Errorf("valueInputOption: %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"spreadsheetId":"sheet-1"}`))
	}))
	defer srv.Close()

	s, err := NewSheetsWithOptions(context.Background(), "sheet-1", SheetAttendance,
		option.WithEndpoint(srv.URL+"/"),
		option.WithoutAuthentication(),
		option.WithHTTPClient(srv.Client()),
	)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	n, err := s.Push(context.Background(), "Group Dance", sampleRows(), time.Now())
	if err != nil {
		t.Fatalf("push: %v", err)
	}
	if n != 2 {
		t.Errorf("pushed %d rows, want 2", n)
	}
	if !strings.Contains(gotPath, "/spreadsheets/sheet-1/values/") || !strings.HasSuffix(gotPath, ":append") {
		t.Errorf("path: %s", gotPath)
	}
	if len(body.Values) != 4 || body.Values[0][1] != "Group Dance" || body.Values[1][0] != "Event" || body.Values[2][5] != "24UCC001" {
		t.Errorf("values: %q", body.Values)
	}
}
