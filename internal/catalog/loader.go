package catalog

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	// ErrLoad covers any failure to turn the source table into a catalog:
	// missing file, missing column, malformed row. The service degrades
	// instead of crashing on it.
	ErrLoad = errors.New("catalog load failed")

	// ErrParse is the ErrLoad subset for a malformed French-names cell.
	ErrParse = fmt.Errorf("%w: parse error", ErrLoad)
)

// rawRow is one source row before locale explosion.
type rawRow struct {
	id          string
	englishName string
	frenchNames []string
	idf         float64
}

// Load reads the keyword source table at path and builds the catalog.
// CSV and XLSX sources are supported, chosen by file extension. Exactly the
// four schema columns are consumed; anything else in the source is dropped.
func Load(path string, schema FieldSchema) (*Catalog, error) {
	rows, err := readTable(path)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: source %s is empty", ErrLoad, filepath.Base(path))
	}

	indices, err := schema.Validate(rows[0])
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for i, row := range rows[1:] {
		raw, err := parseRow(row, indices)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, explode(raw)...)
	}

	return New(entries), nil
}

// readTable returns the source as raw records, header first.
func readTable(path string) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return readXLSX(path)
	default:
		return readCSV(path)
	}
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrLoad, filepath.Base(path), err)
	}
	return records, nil
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook %s has no sheets", ErrLoad, filepath.Base(path))
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrLoad, filepath.Base(path), err)
	}
	return rows, nil
}

func parseRow(row []string, indices []int) (rawRow, error) {
	for _, idx := range indices {
		if idx >= len(row) {
			return rawRow{}, fmt.Errorf("%w: row has %d columns, need index %d", ErrLoad, len(row), idx)
		}
	}

	id := strings.TrimSpace(row[indices[0]])
	if id == "" {
		return rawRow{}, fmt.Errorf("%w: empty keyword id", ErrLoad)
	}

	frenchNames, err := parseFrenchNames(row[indices[2]])
	if err != nil {
		return rawRow{}, err
	}

	idfCell := strings.TrimSpace(row[indices[3]])
	idf := 0.0
	if idfCell != "" {
		idf, err = strconv.ParseFloat(idfCell, 64)
		if err != nil {
			return rawRow{}, fmt.Errorf("%w: invalid IDF value %q", ErrLoad, idfCell)
		}
	}

	return rawRow{
		id:          id,
		englishName: row[indices[1]],
		frenchNames: frenchNames,
		idf:         idf,
	}, nil
}

// parseFrenchNames decodes the French-names cell. The cell holds either a
// JSON array of strings or a single bare name. Anything that starts like a
// list but does not decode is a ParseError; the cell content is never
// evaluated as code.
func parseFrenchNames(cell string) ([]string, error) {
	trimmed := strings.TrimSpace(cell)
	if !strings.HasPrefix(trimmed, "[") {
		return []string{trimmed}, nil
	}

	var names []string
	if err := json.Unmarshal([]byte(trimmed), &names); err != nil {
		return nil, fmt.Errorf("%w: french names cell %q is not a valid list of strings", ErrParse, cell)
	}
	return names, nil
}

// explode produces one entry per French name variant, all sharing the
// row's id, English name and IDF. A row without variants still yields one
// entry so the id stays searchable by its English name.
func explode(raw rawRow) []Entry {
	if len(raw.frenchNames) == 0 {
		return []Entry{{
			ID:          raw.id,
			EnglishName: raw.englishName,
			IDF:         raw.idf,
		}}
	}

	entries := make([]Entry, 0, len(raw.frenchNames))
	for _, fr := range raw.frenchNames {
		entries = append(entries, Entry{
			ID:          raw.id,
			EnglishName: raw.englishName,
			FrenchName:  fr,
			IDF:         raw.idf,
		})
	}
	return entries
}
