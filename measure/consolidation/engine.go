package consolidation

import (
	"fmt"
	"log"
	"math"

	"github.com/cwbudde/algo-oedometer/dsp/core"
	"github.com/cwbudde/algo-oedometer/geom"
)

// Engine processes one consolidation stage. Every mutating call re-derives
// the dependent state before it returns. An Engine is not safe for
// concurrent use.
type Engine struct {
	sample      Sample
	pointsCount int
	pressure    float64
	interpType  InterpType
	interpParam float64
	shift       bool
	logger      *log.Logger

	raw       Series
	window    *Window
	cut       Series
	resampled *Resampled

	sqrt       SqrtLines
	log        LogLines
	pinnedSqrt bool
	pinnedLog  bool

	result Result
}

// New creates an Engine.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		sample:      DefaultSample,
		pointsCount: DefaultPointsCount,
		interpType:  InterpHermite,
		interpParam: 1,
		shift:       true,
		logger:      log.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	if err := e.sample.validate(); err != nil {
		return nil, err
	}
	if err := validateInterp(e.interpType, e.interpParam); err != nil {
		return nil, err
	}
	return e, nil
}

// Sample returns the specimen geometry.
func (e *Engine) Sample() Sample {
	return e.sample
}

// SetData replaces the raw series and resets all derived state. An empty
// series is not an error: the stage is treated as not performed.
func (e *Engine) SetData(s Series) error {
	e.reset()

	if len(s.Time) != len(s.Strain) {
		return fmt.Errorf("%w: %d times, %d strains", ErrLengthMismatch, len(s.Time), len(s.Strain))
	}
	if len(s.Time) == 0 {
		e.logger.Printf("consolidation: no data, stage not performed")
		return nil
	}
	for i := range s.Time {
		t, v := s.Time[i], s.Strain[i]
		if math.IsNaN(t) || math.IsInf(t, 0) || t < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: sample %d (t=%v, strain=%v)", ErrInvalidSeries, i, t, v)
		}
	}

	e.raw = Series{
		Time:   append([]float64(nil), s.Time...),
		Strain: append([]float64(nil), s.Strain...),
	}
	return nil
}

// Process sets the data and cuts it to its full length.
func (e *Engine) Process(s Series) (Result, error) {
	if err := e.SetData(s); err != nil {
		return Result{}, err
	}
	if s.Len() == 0 {
		return e.result, nil
	}
	if err := e.ChangeBorders(0, s.Len()); err != nil {
		return Result{}, err
	}
	return e.result, nil
}

func (e *Engine) reset() {
	e.raw = Series{}
	e.window = nil
	e.cut = Series{}
	e.resampled = nil
	e.sqrt = SqrtLines{}
	e.log = LogLines{}
	e.result = Result{}
}

// ChangeBorders cuts the raw series to samples [left, right) and re-runs
// resampling, line detection and both methods.
func (e *Engine) ChangeBorders(left, right int) error {
	if left < 0 || right > e.raw.Len() || right-left < 2 {
		return fmt.Errorf("%w: [%d, %d) of %d samples", ErrInvalidBorders, left, right, e.raw.Len())
	}
	e.window = &Window{Left: left, Right: right}
	e.cut = cut(e.raw, *e.window, e.shift)
	e.rederive()
	return nil
}

// SetInterpolationType changes the interpolation and re-derives if the
// series has been resampled before.
func (e *Engine) SetInterpolationType(t InterpType) error {
	if err := validateInterp(t, e.interpParam); err != nil {
		return err
	}
	e.interpType = t
	if e.resampled != nil {
		e.rederive()
	}
	return nil
}

// SetInterpolationParam changes the smoothing sigma (Hermite) or the
// polynomial degree (poly) and re-derives if the series has been
// resampled before.
func (e *Engine) SetInterpolationParam(param float64) error {
	if err := validateInterp(e.interpType, param); err != nil {
		return err
	}
	e.interpParam = param
	if e.resampled != nil {
		e.rederive()
	}
	return nil
}

func validateInterp(t InterpType, param float64) error {
	switch t {
	case InterpHermite, InterpPoly:
	default:
		return fmt.Errorf("%w: %d", ErrUnknownInterpolation, int(t))
	}
	if math.IsNaN(param) || math.IsInf(param, 0) || param < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidParam, param)
	}
	return nil
}

// SetPinned keeps the current lines of method across later re-derivations
// instead of detecting them again.
func (e *Engine) SetPinned(m Method, pinned bool) error {
	switch m {
	case MethodSqrt:
		e.pinnedSqrt = pinned
	case MethodLog:
		e.pinnedLog = pinned
	default:
		return fmt.Errorf("%w: %d", ErrUnknownMethod, int(m))
	}
	return nil
}

func (e *Engine) rederive() {
	e.resampled = resample(e.cut, e.pointsCount, e.interpType, e.interpParam, e.shift)
	if e.resampled == nil || e.resampled.flat() {
		// Nothing to construct: keep the degenerate lines for display but
		// report every quantity absent.
		e.sqrt, e.log, e.result = SqrtLines{}, LogLines{}, Result{}
		if e.resampled != nil {
			e.sqrt = detectSqrt(e.resampled)
			e.sqrt.Cv = nil
			e.log = detectLog(e.resampled, e.cut)
		}
		return
	}

	if !e.pinnedSqrt || e.sqrt.Start == nil {
		e.sqrt = detectSqrt(e.resampled)
	}
	if !e.pinnedLog || e.log.FirstStart == nil {
		e.log = detectLog(e.resampled, e.cut)
	}
	deriveSqrt(e.resampled, &e.sqrt, e.sample, &e.result)
	deriveLog(e.resampled, &e.log, e.sample, e.pressure, &e.result)
}

// MovePoint places a line endpoint at (x, y) and re-derives only that
// method's results. The square-root start point always stays at x = 0.
func (e *Engine) MovePoint(x, y float64, id PointID, m Method) error {
	if e.resampled == nil {
		return ErrNotCut
	}
	if m != MethodSqrt && m != MethodLog {
		return fmt.Errorf("%w: %d", ErrUnknownMethod, int(m))
	}
	if id < PointSqrtStart || id > PointLogSecondEnd || id.method() != m {
		return fmt.Errorf("%w: %v for %v method", ErrUnknownPoint, id, m)
	}

	p := geom.Pt(x, y)
	switch id {
	case PointSqrtStart:
		p.X = 0
		e.sqrt.Start = ptr(p)
	case PointSqrtEnd:
		e.sqrt.End = ptr(p)
	case PointLogFirstStart:
		e.log.FirstStart = ptr(p)
	case PointLogFirstEnd:
		e.log.FirstEnd = ptr(p)
	case PointLogSecondStart:
		e.log.SecondStart = ptr(p)
	case PointLogSecondEnd:
		e.log.SecondEnd = ptr(p)
	}

	if m == MethodSqrt {
		deriveSqrt(e.resampled, &e.sqrt, e.sample, &e.result)
	} else {
		deriveLog(e.resampled, &e.log, e.sample, e.pressure, &e.result)
	}
	return nil
}

// HitTest returns the line endpoint of method m near (x, y). A point hits
// when it lies inside an ellipse whose semi-axes are a twentieth of the
// data range along each axis. The nearest hit wins.
func (e *Engine) HitTest(x, y float64, m Method) (PointID, bool) {
	if e.resampled == nil {
		return 0, false
	}

	var xs []float64
	var cands []PointID
	switch m {
	case MethodSqrt:
		xs = e.resampled.TimeSqrt
		cands = []PointID{PointSqrtStart, PointSqrtEnd}
	case MethodLog:
		xs, _ = e.resampled.logPoints()
		cands = []PointID{PointLogFirstStart, PointLogFirstEnd, PointLogSecondStart, PointLogSecondEnd}
	default:
		return 0, false
	}
	if len(xs) == 0 {
		return 0, false
	}

	ax := (xs[len(xs)-1] - xs[0]) / 20
	ymin, ymax := core.MinMax(e.resampled.Strain)
	ay := (ymax - ymin) / 20
	if !(ax > 0) || !(ay > 0) {
		return 0, false
	}

	best, bestDist := PointID(0), math.Inf(1)
	for _, id := range cands {
		p := e.point(id)
		if p == nil {
			continue
		}
		dx := (x - p.X) / ax
		dy := (y - p.Y) / ay
		if d := dx*dx + dy*dy; d <= 1 && d < bestDist {
			best, bestDist = id, d
		}
	}
	return best, !math.IsInf(bestDist, 1)
}

func (e *Engine) point(id PointID) *geom.Point {
	switch id {
	case PointSqrtStart:
		return e.sqrt.Start
	case PointSqrtEnd:
		return e.sqrt.End
	case PointLogFirstStart:
		return e.log.FirstStart
	case PointLogFirstEnd:
		return e.log.FirstEnd
	case PointLogSecondStart:
		return e.log.SecondStart
	case PointLogSecondEnd:
		return e.log.SecondEnd
	}
	return nil
}

// Results returns the derived quantities.
func (e *Engine) Results() Result {
	return e.result
}

// SqrtLines returns a copy of the square-root construction.
func (e *Engine) SqrtLines() SqrtLines {
	return SqrtLines{Start: clonePoint(e.sqrt.Start), End: clonePoint(e.sqrt.End), Cv: clonePoint(e.sqrt.Cv)}
}

// LogLines returns a copy of the logarithm construction.
func (e *Engine) LogLines() LogLines {
	return LogLines{
		FirstStart:  clonePoint(e.log.FirstStart),
		FirstEnd:    clonePoint(e.log.FirstEnd),
		SecondStart: clonePoint(e.log.SecondStart),
		SecondEnd:   clonePoint(e.log.SecondEnd),
		Cv:          clonePoint(e.log.Cv),
	}
}

// Resampled returns the current grid, or nil before ChangeBorders.
func (e *Engine) Resampled() *Resampled {
	if e.resampled == nil {
		return nil
	}
	r := *e.resampled
	r.TimeSqrt = append([]float64(nil), r.TimeSqrt...)
	r.TimeLog = append([]float64(nil), r.TimeLog...)
	r.Strain = append([]float64(nil), r.Strain...)
	return &r
}

// Cut returns the current cut series.
func (e *Engine) Cut() Series {
	return Series{
		Time:   append([]float64(nil), e.cut.Time...),
		Strain: append([]float64(nil), e.cut.Strain...),
	}
}

// Borders returns the current window and whether one is set.
func (e *Engine) Borders() (Window, bool) {
	if e.window == nil {
		return Window{}, false
	}
	return *e.window, true
}

func clonePoint(p *geom.Point) *geom.Point {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}
