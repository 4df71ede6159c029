package consolidation

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-oedometer/geom"
)

// Sample describes the specimen geometry in millimetres.
type Sample struct {
	Height   float64
	Diameter float64
}

// DefaultSample is the standard 20 mm x 71.4 mm oedometer ring.
var DefaultSample = Sample{Height: 20, Diameter: 71.4}

// Area returns the specimen cross-section in mm².
func (s Sample) Area() float64 {
	r := s.Diameter / 2
	return math.Pi * r * r
}

func (s Sample) validate() error {
	if !(s.Height > 0) || !(s.Diameter > 0) {
		return fmt.Errorf("%w: %+v", ErrInvalidSample, s)
	}
	return nil
}

// heightCm is the specimen height in centimetres, the unit Cv is quoted in.
func (s Sample) heightCm() float64 {
	return s.Height / 10
}

// Series is a time/strain record of one load stage.
type Series struct {
	Time   []float64 // minutes
	Strain []float64 // dimensionless, compression negative
}

// Len returns the number of samples.
func (s Series) Len() int {
	return len(s.Time)
}

// Window selects samples [Left, Right) of a series.
type Window struct {
	Left  int
	Right int
}

// Resampled is the cut series on an even sqrt(t) grid.
type Resampled struct {
	TimeSqrt []float64
	// TimeLog is log10(TimeSqrt²); the first entry is -Inf when the grid
	// starts at zero.
	TimeLog []float64
	Strain  []float64
}

// Method selects one of the two graphical constructions.
type Method int

const (
	MethodSqrt Method = iota
	MethodLog
)

func (m Method) String() string {
	switch m {
	case MethodSqrt:
		return "sqrt"
	case MethodLog:
		return "log"
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// InterpType selects how the cut series is put on the sqrt(t) grid.
type InterpType int

const (
	// InterpHermite uses monotone cubic Hermite interpolation followed by
	// Gaussian smoothing with sigma = param grid steps.
	InterpHermite InterpType = iota
	// InterpPoly fits a least-squares polynomial of degree param.
	InterpPoly
)

func (t InterpType) String() string {
	switch t {
	case InterpHermite:
		return "hermite"
	case InterpPoly:
		return "poly"
	}
	return fmt.Sprintf("InterpType(%d)", int(t))
}

// ParseInterpType maps "hermite"/"ermit" and "poly" to an InterpType.
func ParseInterpType(s string) (InterpType, error) {
	switch s {
	case "hermite", "ermit":
		return InterpHermite, nil
	case "poly":
		return InterpPoly, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownInterpolation, s)
}

// PointID names a draggable line endpoint.
type PointID int

const (
	PointSqrtStart PointID = iota
	PointSqrtEnd
	PointLogFirstStart
	PointLogFirstEnd
	PointLogSecondStart
	PointLogSecondEnd
)

func (id PointID) method() Method {
	if id <= PointSqrtEnd {
		return MethodSqrt
	}
	return MethodLog
}

func (id PointID) String() string {
	switch id {
	case PointSqrtStart:
		return "line_start_point"
	case PointSqrtEnd:
		return "line_end_point"
	case PointLogFirstStart:
		return "first_line_start_point"
	case PointLogFirstEnd:
		return "first_line_end_point"
	case PointLogSecondStart:
		return "second_line_start_point"
	case PointLogSecondEnd:
		return "second_line_end_point"
	}
	return fmt.Sprintf("PointID(%d)", int(id))
}

// SqrtLines holds the construction of the square-root method. X is
// sqrt(minutes). Nil points are undetermined.
type SqrtLines struct {
	Start *geom.Point
	End   *geom.Point
	Cv    *geom.Point
}

// LogLines holds the construction of the logarithm method. X is
// log10(minutes). Nil points are undetermined.
type LogLines struct {
	FirstStart  *geom.Point
	FirstEnd    *geom.Point
	SecondStart *geom.Point
	SecondEnd   *geom.Point
	Cv          *geom.Point
}

// Result holds the derived quantities of both methods.
type Result struct {
	CvSqrt        Value // cm²/min
	T50Sqrt       Value // min
	T90Sqrt       Value // min
	T100Sqrt      Value // min
	Strain50Sqrt  Value
	Strain100Sqrt Value
	Velocity      Value // mm/min, loading rate for a 4% strain test

	CvLog        Value // cm²/min
	CaLog        Value // strain per log10 cycle
	T50Log       Value // min
	T100Log      Value // min
	Strain100Log Value
	D0           Value
	KfLog        Value // m/day
}

// Field is one named quantity of a Result.
type Field struct {
	Name  string
	Value Value
}

// Fields lists the quantities in report order.
func (r Result) Fields() []Field {
	return []Field{
		{"Cv_sqrt", r.CvSqrt},
		{"t50_sqrt", r.T50Sqrt},
		{"t90_sqrt", r.T90Sqrt},
		{"t100_sqrt", r.T100Sqrt},
		{"strain50_sqrt", r.Strain50Sqrt},
		{"strain100_sqrt", r.Strain100Sqrt},
		{"velocity", r.Velocity},
		{"Cv_log", r.CvLog},
		{"Ca_log", r.CaLog},
		{"t50_log", r.T50Log},
		{"t100_log", r.T100Log},
		{"strain100_log", r.Strain100Log},
		{"d0", r.D0},
		{"Kf_log", r.KfLog},
	}
}

func (r *Result) clearSqrt() {
	r.CvSqrt, r.T50Sqrt, r.T90Sqrt, r.T100Sqrt = Value{}, Value{}, Value{}, Value{}
	r.Strain50Sqrt, r.Strain100Sqrt, r.Velocity = Value{}, Value{}, Value{}
}

func (r *Result) clearLog() {
	r.CvLog, r.CaLog, r.T50Log, r.T100Log = Value{}, Value{}, Value{}, Value{}
	r.Strain100Log, r.D0, r.KfLog = Value{}, Value{}, Value{}
}

func ptr(p geom.Point) *geom.Point {
	return &p
}
