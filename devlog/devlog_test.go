package devlog

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/xuri/excelize/v2"

	"github.com/cwbudde/algo-oedometer/measure/consolidation"
)

func testLog() Log {
	return Log{
		Header: Header{SampleHeight: 20, SampleDiameter: 71.4, Press: 200},
		Start:  time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
		Time:   []float64{0, 0.1, 0.25, 1, 4, 15, 60},
		Strain: []float64{0, -0.0012, -0.0031, -0.0104, -0.0252, -0.0411, -0.0456},
	}
}

func TestWriteCSVHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, testLog()); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	want := []string{
		"SampleHeight;SampleDiameter;Press;Trajectory",
		"20;71.4;200;consolidation",
		"ID;DateTime;Press;Deformation;StabEnd;Consolidation",
		"1;2024-03-01 09:30:00.000;200;0.00;0;1",
		"2;2024-03-01 09:30:06.000;200;0.02;0;1",
	}
	if diff := cmp.Diff(want, lines[:len(want)]); diff != "" {
		t.Fatalf("CSV head mismatch (-want +got):\n%s", diff)
	}
	if got := lines[len(lines)-1]; got != "7;2024-03-01 10:30:00.000;200;0.91;1;1" {
		t.Fatalf("last row = %q", got)
	}
}

func TestCSVRoundTrip(t *testing.T) {
	in := testLog()
	var buf bytes.Buffer
	if err := WriteCSV(&buf, in); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	out, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	wantHeader := in.Header
	wantHeader.Trajectory = DefaultTrajectory
	if out.Header != wantHeader {
		t.Fatalf("header = %+v, want %+v", out.Header, wantHeader)
	}
	if !out.Start.Equal(in.Start) {
		t.Fatalf("start = %v, want %v", out.Start, in.Start)
	}
	if diff := cmp.Diff(in.Time, out.Time, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Fatalf("time mismatch (-want +got):\n%s", diff)
	}
	// Deformation keeps 0.01 mm.
	resolution := 0.005 / in.Header.SampleHeight
	if diff := cmp.Diff(in.Strain, out.Strain, cmpopts.EquateApprox(0, resolution+1e-12)); diff != "" {
		t.Fatalf("strain mismatch (-want +got):\n%s", diff)
	}
}

func TestReadCSVDecimalComma(t *testing.T) {
	src := "SampleHeight;SampleDiameter;Press;Trajectory\n" +
		"19;38;100;consolidation\n" +
		"ID;DateTime;Press;Deformation;StabEnd;Consolidation\n" +
		"1;2024-01-01 00:00:00.000;100;0,00;0;1\n" +
		"2;2024-01-01 00:01:30.000;100;0,19;1;1\n"

	l, err := ReadCSV(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	if l.Header.SampleHeight != 19 || l.Header.SampleDiameter != 38 {
		t.Fatalf("header = %+v", l.Header)
	}
	if l.Time[1] != 1.5 || math.Abs(l.Strain[1]+0.01) > 1e-15 {
		t.Fatalf("second sample = (%v, %v), want (1.5, -0.01)", l.Time[1], l.Strain[1])
	}
}

func TestReadCSVErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		src  string
		want error
	}{
		{"short header", "SampleHeight;SampleDiameter;Press\n20;71.4;200\n", ErrFormat},
		{"missing column", "SampleHeight;SampleDiameter\n20;71.4\nID;DateTime\n", ErrMissingColumn},
		{"no rows", "SampleHeight;SampleDiameter;Press\n20;71.4;200\nID;DateTime;Deformation\n", ErrEmpty},
		{"bad time", "SampleHeight;SampleDiameter;Press\n20;71.4;200\nID;DateTime;Deformation\n1;yesterday;0.1\n", ErrFormat},
		{"zero height", "SampleHeight;SampleDiameter;Press\n0;71.4;200\nID;DateTime;Deformation\n", ErrFormat},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ReadCSV(strings.NewReader(tc.src)); !errors.Is(err, tc.want) {
				t.Fatalf("ReadCSV() error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestWriteRejectsBadLog(t *testing.T) {
	l := testLog()
	l.Strain = l.Strain[:3]
	if err := WriteCSV(&bytes.Buffer{}, l); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("WriteCSV(mismatch) error = %v", err)
	}
	if err := WriteXLSX(&bytes.Buffer{}, Log{Header: testLog().Header}, nil); !errors.Is(err, ErrEmpty) {
		t.Fatalf("WriteXLSX(empty) error = %v", err)
	}
}

func TestXLSXRoundTrip(t *testing.T) {
	in := testLog()
	in.Header.Trajectory = "stage 3"
	res := consolidation.Result{CvSqrt: consolidation.Some(0.0123)}

	var buf bytes.Buffer
	if err := WriteXLSX(&buf, in, &res); err != nil {
		t.Fatalf("WriteXLSX() error = %v", err)
	}

	out, err := ReadXLSX(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ReadXLSX() error = %v", err)
	}
	if diff := cmp.Diff(in.Time, out.Time, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Fatalf("time mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(in.Strain, out.Strain, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Fatalf("strain mismatch (-want +got):\n%s", diff)
	}
	if out.Header != in.Header {
		t.Fatalf("header = %+v, want %+v", out.Header, in.Header)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows(ResultsSheet, excelize.Options{RawCellValue: true})
	if err != nil {
		t.Fatalf("GetRows(results) error = %v", err)
	}
	if len(rows) != 15 || rows[1][0] != "Cv_sqrt" || rows[1][1] != "0.0123" {
		t.Fatalf("results sheet = %v", rows)
	}
	if len(rows[2]) != 1 {
		t.Fatalf("absent quantity written as %v", rows[2])
	}
}

func TestReadXLSXFirstSheetFallback(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	for cell, v := range map[string]interface{}{
		"A1": "Strain", "B1": "Time",
		"A2": -0.001, "B2": 0.5,
		"A3": -0.002, "B3": 2,
	} {
		if err := f.SetCellValue("Sheet1", cell, v); err != nil {
			t.Fatal(err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatal(err)
	}

	l, err := ReadXLSX(&buf)
	if err != nil {
		t.Fatalf("ReadXLSX() error = %v", err)
	}
	if diff := cmp.Diff([]float64{0.5, 2}, l.Time); diff != "" {
		t.Fatalf("time mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{-0.001, -0.002}, l.Strain); diff != "" {
		t.Fatalf("strain mismatch (-want +got):\n%s", diff)
	}
	if l.Header != (Header{}) {
		t.Fatalf("header = %+v, want zero without a sample sheet", l.Header)
	}
}

func TestReadXLSXMissingColumn(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetCellValue("Sheet1", "A1", "time"); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadXLSX(&buf); !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("ReadXLSX() error = %v, want ErrMissingColumn", err)
	}
}

func TestLogSeries(t *testing.T) {
	l := testLog()
	s := l.Series()
	s.Time[0] = 99
	if l.Time[0] != 0 {
		t.Fatal("Series() aliases the log")
	}
	if l.Header.Sample() != (consolidation.Sample{Height: 20, Diameter: 71.4}) {
		t.Fatalf("Sample() = %+v", l.Header.Sample())
	}
}
