// Package recovery measures how well the processing engine recovers the
// parameters a synthetic stage was generated with.
//
// A [Tracker] collects relative errors got/want-1 per quantity. Signed
// moments are accumulated with Welford's method; magnitudes go into an HDR
// histogram for percentiles.
package recovery

import (
	"errors"
	"fmt"
	"math"

	"github.com/HdrHistogram/hdrhistogram-go"

	"github.com/cwbudde/algo-oedometer/measure/consolidation"
)

// Quantities tracked by [Calibrate].
const (
	CvSqrt = "Cv_sqrt"
	CvLog  = "Cv_log"
	CaLog  = "Ca_log"
	T90    = "t90_sqrt"
)

const (
	// scale converts a relative error to histogram units (parts per
	// million).
	scale = 1e6
	// maxError is the largest magnitude the histogram resolves; larger
	// errors are clamped.
	maxError  = 100.0
	sigDigits = 3
)

var ErrUnknownQuantity = errors.New("recovery: unknown quantity")

// moments is a running mean/variance of signed errors.
type moments struct {
	n        int64
	mean, m2 float64
	min, max float64
}

func (m *moments) add(x float64) {
	m.n++
	if m.n == 1 {
		m.min, m.max = x, x
	}
	delta := x - m.mean
	m.mean += delta / float64(m.n)
	m.m2 += delta * (x - m.mean)
	m.min = math.Min(m.min, x)
	m.max = math.Max(m.max, x)
}

// merge combines two accumulators (Chan et al.).
func (m *moments) merge(o moments) {
	if o.n == 0 {
		return
	}
	if m.n == 0 {
		*m = o
		return
	}
	n := m.n + o.n
	delta := o.mean - m.mean
	m.m2 += o.m2 + delta*delta*float64(m.n)*float64(o.n)/float64(n)
	m.mean += delta * float64(o.n) / float64(n)
	m.min = math.Min(m.min, o.min)
	m.max = math.Max(m.max, o.max)
	m.n = n
}

type series struct {
	hist    *hdrhistogram.Histogram
	signed  moments
	missing int64
}

func newSeries() *series {
	return &series{hist: hdrhistogram.New(1, int64(maxError*scale), sigDigits)}
}

// Tracker accumulates recovery errors. It is not safe for concurrent use;
// give each worker its own and [Tracker.Merge] them.
type Tracker struct {
	names  []string
	series map[string]*series
}

// NewTracker creates a tracker for the named quantities.
func NewTracker(names ...string) *Tracker {
	t := &Tracker{series: make(map[string]*series, len(names))}
	for _, n := range names {
		if _, ok := t.series[n]; ok {
			continue
		}
		t.names = append(t.names, n)
		t.series[n] = newSeries()
	}
	return t
}

// Record adds one recovery of quantity name. An absent value counts as a
// miss.
func (t *Tracker) Record(name string, got consolidation.Value, want float64) error {
	s, ok := t.series[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownQuantity, name)
	}
	v, ok := got.Get()
	if !ok || want == 0 {
		s.missing++
		return nil
	}

	e := v/want - 1
	s.signed.add(e)
	units := int64(math.Round(math.Min(math.Abs(e), maxError) * scale))
	if units < 1 {
		units = 1
	}
	return s.hist.RecordValue(units)
}

// Merge adds the samples of o. Quantities unknown to t are added.
func (t *Tracker) Merge(o *Tracker) {
	for _, name := range o.names {
		src := o.series[name]
		dst, ok := t.series[name]
		if !ok {
			dst = newSeries()
			t.names = append(t.names, name)
			t.series[name] = dst
		}
		dst.hist.Merge(src.hist)
		dst.signed.merge(src.signed)
		dst.missing += src.missing
	}
}

// Summary describes the errors of one quantity. Errors are relative,
// got/want-1.
type Summary struct {
	Name    string
	Count   int64 // recovered samples
	Missing int64 // absent results
	Mean    float64
	StdDev  float64
	Min     float64
	Max     float64
	// P50, P90 and P99 are percentiles of the error magnitude.
	P50 float64
	P90 float64
	P99 float64
}

// Within reports whether every recovery succeeded and the 99th percentile
// error magnitude is at most tol.
func (s Summary) Within(tol float64) bool {
	return s.Missing == 0 && s.Count > 0 && s.P99 <= tol
}

// Summary returns the statistics of quantity name.
func (t *Tracker) Summary(name string) (Summary, error) {
	s, ok := t.series[name]
	if !ok {
		return Summary{}, fmt.Errorf("%w: %q", ErrUnknownQuantity, name)
	}
	out := Summary{Name: name, Count: s.signed.n, Missing: s.missing}
	if s.signed.n == 0 {
		return out, nil
	}
	out.Mean = s.signed.mean
	out.StdDev = math.Sqrt(s.signed.m2 / float64(s.signed.n))
	out.Min, out.Max = s.signed.min, s.signed.max
	out.P50 = float64(s.hist.ValueAtQuantile(50)) / scale
	out.P90 = float64(s.hist.ValueAtQuantile(90)) / scale
	out.P99 = float64(s.hist.ValueAtQuantile(99)) / scale
	return out, nil
}

// Summaries returns the statistics of every quantity in tracking order.
func (t *Tracker) Summaries() []Summary {
	out := make([]Summary, 0, len(t.names))
	for _, n := range t.names {
		s, _ := t.Summary(n)
		out = append(out, s)
	}
	return out
}
