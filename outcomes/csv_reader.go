package outcomes

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// DefaultNAToken is the sentinel the CMS file uses for missing rates.
const DefaultNAToken = "Not Available"

// Columns binds the logical input columns to header names in the source
// file. Zero-value fields fall back to the CMS outcome-of-care-measures
// headers.
type Columns struct {
	State        string
	Hospital     string
	HeartAttack  string
	HeartFailure string
	Pneumonia    string
}

// DefaultColumns returns the header names used by the CMS
// outcome-of-care-measures file.
func DefaultColumns() Columns {
	return Columns{
		State:        "State",
		Hospital:     "Hospital Name",
		HeartAttack:  "Hospital 30-Day Death (Mortality) Rates from Heart Attack",
		HeartFailure: "Hospital 30-Day Death (Mortality) Rates from Heart Failure",
		Pneumonia:    "Hospital 30-Day Death (Mortality) Rates from Pneumonia",
	}
}

func (c Columns) withDefaults() Columns {
	d := DefaultColumns()
	if c.State == "" {
		c.State = d.State
	}
	if c.Hospital == "" {
		c.Hospital = d.Hospital
	}
	if c.HeartAttack == "" {
		c.HeartAttack = d.HeartAttack
	}
	if c.HeartFailure == "" {
		c.HeartFailure = d.HeartFailure
	}
	if c.Pneumonia == "" {
		c.Pneumonia = d.Pneumonia
	}
	return c
}

// ReaderOptions configures a CSVReader.
type ReaderOptions struct {
	// Columns binds logical columns by header name. Zero-value fields use
	// the CMS defaults.
	Columns Columns
	// NAToken is the missing-value sentinel. Empty means DefaultNAToken.
	NAToken string
}

// CSVReader streams RawRecords from a wide outcome-of-care CSV. Columns are
// bound by header name from the first row; rate cells holding the NA
// sentinel (or anything unparseable) come back as nil.
type CSVReader struct {
	file    *os.File
	csv     *csv.Reader
	naToken string
	rowNum  int64

	stateIdx    int
	hospitalIdx int
	rateIdx     [3]int // indexed by Cause
}

// NewCSVReader opens path and binds the configured columns from its header
// row.
func NewCSVReader(path string, opts ReaderOptions) (*CSVReader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	bufReader := bufio.NewReaderSize(file, 256*1024)

	// Skip UTF-8 BOM if present
	bom, err := bufReader.Peek(3)
	if err == nil && len(bom) >= 3 && bom[0] == 0xEF && bom[1] == 0xBB && bom[2] == 0xBF {
		bufReader.Discard(3)
	}

	reader := csv.NewReader(bufReader)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	r := &CSVReader{
		file:    file,
		csv:     reader,
		naToken: opts.NAToken,
	}
	if r.naToken == "" {
		r.naToken = DefaultNAToken
	}

	if err := r.readHeader(opts.Columns.withDefaults()); err != nil {
		file.Close()
		return nil, err
	}

	return r, nil
}

func (r *CSVReader) readHeader(cols Columns) error {
	headerRow, err := r.csv.Read()
	if err != nil {
		return fmt.Errorf("read header row: %w", err)
	}
	r.rowNum++

	colIdx := make(map[string]int, len(headerRow))
	for i, h := range headerRow {
		colIdx[strings.TrimSpace(h)] = i
	}

	bind := func(name string) (int, error) {
		idx, ok := colIdx[name]
		if !ok {
			return 0, fmt.Errorf("column %q not found in header", name)
		}
		return idx, nil
	}

	if r.stateIdx, err = bind(cols.State); err != nil {
		return err
	}
	if r.hospitalIdx, err = bind(cols.Hospital); err != nil {
		return err
	}
	if r.rateIdx[HeartAttack], err = bind(cols.HeartAttack); err != nil {
		return err
	}
	if r.rateIdx[HeartFailure], err = bind(cols.HeartFailure); err != nil {
		return err
	}
	if r.rateIdx[Pneumonia], err = bind(cols.Pneumonia); err != nil {
		return err
	}
	return nil
}

// Next returns the next RawRecord, or io.EOF when the file is exhausted.
// Empty rows are skipped.
func (r *CSVReader) Next() (RawRecord, error) {
	for {
		row, err := r.csv.Read()
		if err != nil {
			return RawRecord{}, err
		}
		r.rowNum++

		if len(row) == 0 || (len(row) == 1 && row[0] == "") {
			continue
		}

		rec := RawRecord{
			State:    field(row, r.stateIdx),
			Hospital: field(row, r.hospitalIdx),
		}
		rec.HeartAttackRate = r.parseRate(field(row, r.rateIdx[HeartAttack]))
		rec.HeartFailureRate = r.parseRate(field(row, r.rateIdx[HeartFailure]))
		rec.PneumoniaRate = r.parseRate(field(row, r.rateIdx[Pneumonia]))
		return rec, nil
	}
}

// ReadAll drains the reader into a slice.
func (r *CSVReader) ReadAll() ([]RawRecord, error) {
	var rows []RawRecord
	for {
		rec, err := r.Next()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return rows, fmt.Errorf("read row %d: %w", r.rowNum, err)
		}
		rows = append(rows, rec)
	}
}

// RowNum returns the current row number (1-based, header included).
func (r *CSVReader) RowNum() int64 {
	return r.rowNum
}

// Close closes the underlying file.
func (r *CSVReader) Close() error {
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

func field(row []string, idx int) string {
	if idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

// parseRate parses a rate cell, returning nil for the NA sentinel, empty
// strings, and anything that does not parse as a number.
func (r *CSVReader) parseRate(s string) *float64 {
	if s == "" || s == r.naToken {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}
