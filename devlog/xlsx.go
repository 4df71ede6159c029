package devlog

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/cwbudde/algo-oedometer/measure/consolidation"
)

// Sheet names of the spreadsheet layout.
const (
	DataSheet    = "data"
	SampleSheet  = "sample"
	ResultsSheet = "results"
)

// WriteXLSX writes l as a workbook with a time/strain data sheet and a
// sample sheet. A non-nil res adds a results sheet; absent quantities are
// left blank.
func WriteXLSX(w io.Writer, l Log, res *consolidation.Result) error {
	if err := l.validate(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", DataSheet); err != nil {
		return fmt.Errorf("devlog: xlsx: %w", err)
	}
	sw, err := f.NewStreamWriter(DataSheet)
	if err != nil {
		return fmt.Errorf("devlog: xlsx: %w", err)
	}
	if err := sw.SetRow("A1", []interface{}{"time", "strain"}); err != nil {
		return fmt.Errorf("devlog: xlsx: %w", err)
	}
	for i := range l.Time {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := sw.SetRow(cell, []interface{}{l.Time[i], l.Strain[i]}); err != nil {
			return fmt.Errorf("devlog: xlsx: %w", err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("devlog: xlsx: %w", err)
	}

	h := l.Header
	sample := [][]interface{}{
		{"SampleHeight", h.SampleHeight},
		{"SampleDiameter", h.SampleDiameter},
		{"Press", h.Press},
		{"Trajectory", h.Trajectory},
	}
	if err := writeTable(f, SampleSheet, sample); err != nil {
		return err
	}

	if res != nil {
		rows := [][]interface{}{{"quantity", "value"}}
		for _, field := range res.Fields() {
			row := []interface{}{field.Name, nil}
			if v, ok := field.Value.Get(); ok {
				row[1] = v
			}
			rows = append(rows, row)
		}
		if err := writeTable(f, ResultsSheet, rows); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("devlog: xlsx: %w", err)
	}
	return nil
}

func writeTable(f *excelize.File, sheet string, rows [][]interface{}) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("devlog: xlsx: %w", err)
	}
	for r, row := range rows {
		for c, v := range row {
			if v == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("devlog: xlsx: %w", err)
			}
		}
	}
	return nil
}

// ReadXLSX reads the time and strain columns of the data sheet, or of the
// first sheet when there is none, matching header names case-insensitively.
// The sample sheet is optional.
func ReadXLSX(r io.Reader) (Log, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Log{}, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Log{}, fmt.Errorf("%w: no sheets", ErrFormat)
	}
	sheet := sheets[0]
	for _, s := range sheets {
		if strings.EqualFold(s, DataSheet) {
			sheet = s
		}
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return Log{}, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	if len(rows) == 0 {
		return Log{}, ErrEmpty
	}
	cols, err := columnIndex(rows[0], "time", "strain")
	if err != nil {
		return Log{}, err
	}

	var l Log
	for n, row := range rows[1:] {
		if cols["time"] >= len(row) || cols["strain"] >= len(row) {
			continue
		}
		ts, tsErr := parseFloat(row[cols["time"]])
		st, stErr := parseFloat(row[cols["strain"]])
		if tsErr != nil && stErr != nil {
			continue
		}
		if tsErr != nil || stErr != nil {
			return Log{}, fmt.Errorf("%w: %s row %d", ErrFormat, sheet, n+2)
		}
		l.Time = append(l.Time, ts)
		l.Strain = append(l.Strain, st)
	}
	if len(l.Time) == 0 {
		return Log{}, ErrEmpty
	}

	if rows, err := f.GetRows(SampleSheet, excelize.Options{RawCellValue: true}); err == nil {
		l.Header = parseSampleSheet(rows)
	}
	return l, nil
}

func parseSampleSheet(rows [][]string) Header {
	var h Header
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		v, _ := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		switch strings.TrimSpace(row[0]) {
		case "SampleHeight":
			h.SampleHeight = v
		case "SampleDiameter":
			h.SampleDiameter = v
		case "Press":
			h.Press = v
		case "Trajectory":
			h.Trajectory = row[1]
		}
	}
	return h
}
