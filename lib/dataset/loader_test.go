package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

// writeSpreadsheet writes header and rows to a new workbook at path.
func writeSpreadsheet(t *testing.T, path string, header []interface{}, rows ...[]interface{}) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	all := append([][]interface{}{header}, rows...)
	for i, r := range all {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("Failed to compute cell name: %v", err)
		}
		r := r
		if err := f.SetSheetRow("Sheet1", cell, &r); err != nil {
			t.Fatalf("Failed to write row %d: %v", i, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save workbook: %v", err)
	}
}

func fullHeader() []interface{} {
	header := make([]interface{}, len(Columns))
	for i, c := range Columns {
		header[i] = string(c)
	}
	return header
}

func TestReadFileSpreadsheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.xlsx")

	// lower-case headers, an extra column and a shuffled order
	header := []interface{}{
		"pitcher", "batter", "extra", "game_date", "launch_angle", "exit_speed",
		"exit_direction", "hit_distance", "hang_time", "hit_spin_rate", "play_outcome", "video_link",
	}
	writeSpreadsheet(t, path, header,
		[]interface{}{"Max Fried", "John Smith", "x", time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC), 12.0, 95.2, -3.5, 310.0, 4.2, 2100.0, "Single", "https://video/1"},
		[]interface{}{"Spencer Strider", "Jane Doe", "y", "2023-04-02", 25.0, 88.0, 10.0, 250.0, nil, 1800.0, "Out", nil},
		[]interface{}{nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil},
	)

	table, err := ReadFile(path, "")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if table.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", table.Len())
	}

	first := table.Row(0)
	if first.Batter != "John Smith" || first.Pitcher != "Max Fried" {
		t.Errorf("unexpected names: %+v", first)
	}
	if first.GameDate != "2023-04-01" {
		t.Errorf("expected date serial to be formatted as 2023-04-01, got %q", first.GameDate)
	}
	if first.ExitSpeed != Num(95.2) || first.LaunchAngle != Num(12) {
		t.Errorf("unexpected numeric cells: exit_speed=%v launch_angle=%v", first.ExitSpeed, first.LaunchAngle)
	}
	if first.VideoLink != "https://video/1" {
		t.Errorf("expected video link, got %q", first.VideoLink)
	}

	second := table.Row(1)
	if second.GameDate != "2023-04-02" {
		t.Errorf("expected text date to pass through, got %q", second.GameDate)
	}
	if second.HangTime.Valid {
		t.Errorf("expected missing hang time, got %v", second.HangTime)
	}
	if second.VideoLink != "" {
		t.Errorf("expected missing video link, got %q", second.VideoLink)
	}
}

func TestReadFileCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	content := "BATTER,PITCHER,GAME_DATE,LAUNCH_ANGLE,EXIT_SPEED,EXIT_DIRECTION,HIT_DISTANCE,HANG_TIME,HIT_SPIN_RATE,PLAY_OUTCOME,VIDEO_LINK\n" +
		"John Smith,Max Fried,2023-04-01,12,95.2,-3.5,310,4.2,2100,Single,https://video/1\n" +
		"Jane Doe,Spencer Strider,2023-04-02,25,n/a,10,250,,1800,Out\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write csv: %v", err)
	}

	table, err := ReadFile(path, "")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if table.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", table.Len())
	}

	second := table.Row(1)
	if second.ExitSpeed.Valid {
		t.Errorf("expected unparsable exit speed to be missing, got %v", second.ExitSpeed)
	}
	if second.HangTime.Valid {
		t.Errorf("expected empty hang time to be missing, got %v", second.HangTime)
	}
	if second.VideoLink != "" {
		t.Errorf("expected short row to leave video link missing, got %q", second.VideoLink)
	}
	if second.HitSpinRate != Num(1800) {
		t.Errorf("expected spin rate 1800, got %v", second.HitSpinRate)
	}
}

func TestReadFileSchemaError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.xlsx")
	writeSpreadsheet(t, path, []interface{}{"BATTER", "PITCHER", "EXIT_SPEED"},
		[]interface{}{"John Smith", "Max Fried", 95.2},
	)

	_, err := ReadFile(path, "")
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected *SchemaError, got %v", err)
	}
	if len(schemaErr.Missing) != len(Columns)-3 {
		t.Errorf("expected %d missing columns, got %v", len(Columns)-3, schemaErr.Missing)
	}
	for _, c := range schemaErr.Missing {
		if c == ColBatter || c == ColPitcher || c == ColExitSpeed {
			t.Errorf("column %s reported missing but present", c)
		}
	}
}

func TestReadFileUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	if _, err := ReadFile(path, ""); err == nil {
		t.Errorf("expected error for unsupported format")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	fallback := filepath.Join(dir, "fallback.xlsx")
	writeSpreadsheet(t, fallback, fullHeader(),
		[]interface{}{"John Smith", "Max Fried", "2023-04-01", 12.0, 95.2, 0.0, 300.0, 4.0, 2000.0, "Single", ""},
	)

	broken := filepath.Join(dir, "broken.xlsx")
	if err := os.WriteFile(broken, []byte("not a zip archive"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	tests := []struct {
		name  string
		paths []string
		rows  int
	}{
		{"Primary", []string{fallback}, 1},
		{"Fallback", []string{filepath.Join(dir, "missing.xlsx"), fallback}, 1},
		{"NoFile", []string{filepath.Join(dir, "missing.xlsx"), filepath.Join(dir, "also-missing.xlsx")}, 0},
		{"Malformed", []string{broken}, 0},
		{"Directory", []string{dir}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			table := Load(LoaderConfig{Paths: tc.paths})
			if table == nil {
				t.Fatalf("Load returned nil table")
			}
			if table.Len() != tc.rows {
				t.Errorf("expected %d rows, got %d", tc.rows, table.Len())
			}
		})
	}
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "data.csv")
	if err := os.WriteFile(existing, []byte("x"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	got, err := Resolve([]string{"", filepath.Join(dir, "nope.csv"), existing})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got != existing {
		t.Errorf("expected %s, got %s", existing, got)
	}

	if _, err := Resolve([]string{filepath.Join(dir, "nope.csv")}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
