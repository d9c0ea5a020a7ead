package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lni/dragonboat/v4/logger"
	"github.com/xuri/excelize/v2"
)

var Logger = logger.GetLogger("dataset")

const (
	// DefaultFileName is the name of the data file shipped next to the server.
	DefaultFileName = "BattedBallData.xlsx"

	// maxExcelSerial is the serial of 9999-12-31, the last date a spreadsheet can hold.
	maxExcelSerial = 2958465
)

// DefaultPaths returns the primary and fallback locations of the data file.
func DefaultPaths() []string {
	return []string{
		DefaultFileName,
		filepath.Join("..", DefaultFileName),
	}
}

// LoaderConfig controls where and how the data file is read.
type LoaderConfig struct {
	// Paths are tried in order, the first existing file is read
	Paths []string
	// Sheet selects the worksheet of a spreadsheet file (empty = first sheet)
	Sheet string
}

// --------------------------------------------------------------------------
// Errors
// --------------------------------------------------------------------------

// ErrNotFound is returned when none of the candidate paths exists.
var ErrNotFound = errors.New("data file not found")

// SchemaError reports required columns missing from the file header.
type SchemaError struct {
	Path    string
	Missing []Column
}

func (e *SchemaError) Error() string {
	names := make([]string, len(e.Missing))
	for i, c := range e.Missing {
		names[i] = string(c)
	}
	return fmt.Sprintf("schema mismatch in %s: missing columns %s", e.Path, strings.Join(names, ", "))
}

// --------------------------------------------------------------------------
// Loading
// --------------------------------------------------------------------------

// Load reads the data file described by config. It never fails: if no file is
// found or the read fails, the error is logged and an empty table is returned.
func Load(config LoaderConfig) *Table {
	paths := config.Paths
	if len(paths) == 0 {
		paths = DefaultPaths()
	}

	path, err := Resolve(paths)
	if err != nil {
		Logger.Errorf("Error loading data: %v", err)
		return EmptyTable()
	}

	table, err := ReadFile(path, config.Sheet)
	if err != nil {
		Logger.Errorf("Error loading data: %v", err)
		return EmptyTable()
	}

	Logger.Infof("Loaded %d batted balls from %s", table.Len(), path)
	return table
}

// Resolve returns the first of paths that exists as a regular file.
func Resolve(paths []string) (string, error) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		info, err := os.Stat(p)
		if err == nil && !info.IsDir() {
			return p, nil
		}
		Logger.Debugf("data file candidate %s not usable: %v", p, err)
	}
	return "", fmt.Errorf("%w (tried %s)", ErrNotFound, strings.Join(paths, ", "))
}

// ReadFile reads a single data file and validates its header.
func ReadFile(path, sheet string) (*Table, error) {
	var (
		records [][]string
		err     error
		serials bool
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		records, err = readSpreadsheet(path, sheet)
		serials = true
	case ".csv":
		records, err = readCSV(path)
	default:
		return nil, fmt.Errorf("unsupported data file format: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return buildTable(path, records, serials)
}

// readSpreadsheet returns the raw cell values of one worksheet.
func readSpreadsheet(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			Logger.Warningf("failed to close %s: %v", path, err)
		}
	}()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	// raw values keep numbers at full precision and dates as serials
	return f.GetRows(sheet, excelize.Options{RawCellValue: true})
}

// readCSV returns all records of a comma separated file.
func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	var records [][]string
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// buildTable maps the header onto the typed schema and converts every record.
func buildTable(path string, records [][]string, serials bool) (*Table, error) {
	if len(records) == 0 {
		return nil, &SchemaError{Path: path, Missing: Columns}
	}

	// locate required columns (case-insensitive, trimmed)
	index := make(map[Column]int, len(Columns))
	for i, name := range records[0] {
		col := Column(strings.ToUpper(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))))
		if _, dup := index[col]; !dup {
			index[col] = i
		}
	}
	var missing []Column
	for _, col := range Columns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Path: path, Missing: missing}
	}

	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		if isBlank(rec) {
			continue
		}
		var row Row
		for _, col := range Columns {
			i := index[col]
			if i >= len(rec) {
				continue // short rows: trailing cells are missing
			}
			raw := rec[i]
			if col == ColGameDate && serials {
				raw = formatDateSerial(raw)
			}
			row.set(col, raw)
		}
		rows = append(rows, row)
	}

	return &Table{rows: rows}, nil
}

// formatDateSerial converts a spreadsheet date serial to YYYY-MM-DD.
// Anything that is not a plausible serial is returned unchanged.
func formatDateSerial(raw string) string {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || v < 1 || v > maxExcelSerial {
		return raw
	}
	t, err := excelize.ExcelDateToTime(v, false)
	if err != nil {
		return raw
	}
	return t.Format("2006-01-02")
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
