package devlog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"
)

// DateTimeLayout is the timestamp layout of the DateTime column.
const DateTimeLayout = "2006-01-02 15:04:05.000"

var (
	metaColumns = []string{"SampleHeight", "SampleDiameter", "Press", "Trajectory"}
	rowColumns  = []string{"ID", "DateTime", "Press", "Deformation", "StabEnd", "Consolidation"}
)

// WriteCSV writes l in the device-log format. Deformation is rounded to
// 0.01 mm.
func WriteCSV(w io.Writer, l Log) error {
	if err := l.validate(); err != nil {
		return err
	}
	h := l.Header
	trajectory := h.Trajectory
	if trajectory == "" {
		trajectory = DefaultTrajectory
	}

	cw := csv.NewWriter(w)
	cw.Comma = ';'

	records := [][]string{
		metaColumns,
		{formatFloat(h.SampleHeight), formatFloat(h.SampleDiameter), formatFloat(h.Press), trajectory},
		rowColumns,
	}
	press := formatFloat(h.Press)
	s0 := l.Strain[0]
	last := len(l.Time) - 1
	for i, t := range l.Time {
		stabEnd := "0"
		if i == last {
			stabEnd = "1"
		}
		deformation := math.Abs(l.Strain[i]-s0) * h.SampleHeight
		records = append(records, []string{
			strconv.Itoa(i + 1),
			l.Start.Add(offset(t)).Format(DateTimeLayout),
			press,
			strconv.FormatFloat(deformation, 'f', 2, 64),
			stabEnd,
			"1",
		})
	}

	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("devlog: write csv: %w", err)
	}
	return nil
}

// ReadCSV parses a device log. Strain is recovered as compression, i.e.
// -Deformation/SampleHeight, relative to the first sample.
func ReadCSV(r io.Reader) (Log, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return Log{}, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	if len(records) < 3 {
		return Log{}, fmt.Errorf("%w: header has %d of 3 lines", ErrFormat, len(records))
	}

	meta, err := columnIndex(stripBOM(records[0]), metaColumns[:3]...)
	if err != nil {
		return Log{}, err
	}
	vals := records[1]
	var h Header
	for name, dst := range map[string]*float64{
		"SampleHeight":   &h.SampleHeight,
		"SampleDiameter": &h.SampleDiameter,
		"Press":          &h.Press,
	} {
		if meta[name] >= len(vals) {
			return Log{}, fmt.Errorf("%w: no value for %s", ErrFormat, name)
		}
		if *dst, err = parseFloat(vals[meta[name]]); err != nil {
			return Log{}, fmt.Errorf("%w: %s: %w", ErrFormat, name, err)
		}
	}
	if i := indexOf(records[0], "Trajectory"); i >= 0 && i < len(vals) {
		h.Trajectory = vals[i]
	}
	if !(h.SampleHeight > 0) {
		return Log{}, fmt.Errorf("%w: sample height %v", ErrFormat, h.SampleHeight)
	}

	cols, err := columnIndex(records[2], "DateTime", "Deformation")
	if err != nil {
		return Log{}, err
	}

	l := Log{Header: h}
	for n, rec := range records[3:] {
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		line := n + 4
		if cols["DateTime"] >= len(rec) || cols["Deformation"] >= len(rec) {
			return Log{}, fmt.Errorf("%w: line %d has %d fields", ErrFormat, line, len(rec))
		}
		ts, err := time.Parse(DateTimeLayout, rec[cols["DateTime"]])
		if err != nil {
			return Log{}, fmt.Errorf("%w: line %d: %w", ErrFormat, line, err)
		}
		def, err := parseFloat(rec[cols["Deformation"]])
		if err != nil {
			return Log{}, fmt.Errorf("%w: line %d: %w", ErrFormat, line, err)
		}
		if len(l.Time) == 0 {
			l.Start = ts
		}
		l.Time = append(l.Time, minutes(ts.Sub(l.Start)))
		l.Strain = append(l.Strain, -def/h.SampleHeight)
	}
	if len(l.Time) == 0 {
		return Log{}, ErrEmpty
	}
	return l, nil
}

func columnIndex(header []string, names ...string) (map[string]int, error) {
	idx := make(map[string]int, len(names))
	for _, name := range names {
		i := indexOf(header, name)
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
		idx[name] = i
	}
	return idx, nil
}

func indexOf(header []string, name string) int {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

func stripBOM(header []string) []string {
	if len(header) == 0 {
		return header
	}
	out := append([]string(nil), header...)
	out[0] = strings.TrimPrefix(out[0], "\ufeff")
	return out
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// parseFloat accepts a decimal comma as written by some controllers.
func parseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty value")
	}
	return strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
}
