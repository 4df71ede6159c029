package devlog

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/cwbudde/algo-oedometer/measure/consolidation"
)

var (
	ErrFormat         = errors.New("devlog: malformed log")
	ErrMissingColumn  = errors.New("devlog: missing column")
	ErrLengthMismatch = errors.New("devlog: time and strain lengths differ")
	ErrEmpty          = errors.New("devlog: log has no samples")
)

// DefaultTrajectory is written when a Header leaves Trajectory empty.
const DefaultTrajectory = "consolidation"

// Header is the stage metadata of a log.
type Header struct {
	SampleHeight   float64 // mm
	SampleDiameter float64 // mm
	Press          float64 // kPa
	Trajectory     string
}

// Sample returns the specimen geometry.
func (h Header) Sample() consolidation.Sample {
	return consolidation.Sample{Height: h.SampleHeight, Diameter: h.SampleDiameter}
}

// Log is one load stage as recorded by the device.
type Log struct {
	Header Header
	// Start is the wall-clock time of the first sample.
	Start  time.Time
	Time   []float64 // min since Start
	Strain []float64
}

// Series returns the stage as engine input.
func (l Log) Series() consolidation.Series {
	return consolidation.Series{
		Time:   append([]float64(nil), l.Time...),
		Strain: append([]float64(nil), l.Strain...),
	}
}

func (l Log) validate() error {
	if len(l.Time) != len(l.Strain) {
		return fmt.Errorf("%w: %d times, %d strains", ErrLengthMismatch, len(l.Time), len(l.Strain))
	}
	if len(l.Time) == 0 {
		return ErrEmpty
	}
	if !(l.Header.SampleHeight > 0) {
		return fmt.Errorf("%w: sample height %v", ErrFormat, l.Header.SampleHeight)
	}
	for i, t := range l.Time {
		if math.IsNaN(t) || math.IsInf(t, 0) || t < 0 || math.IsNaN(l.Strain[i]) || math.IsInf(l.Strain[i], 0) {
			return fmt.Errorf("%w: sample %d (t=%v, strain=%v)", ErrFormat, i, t, l.Strain[i])
		}
	}
	return nil
}

// minutes converts a duration since Start to minutes.
func minutes(d time.Duration) float64 {
	return d.Minutes()
}

// offset converts minutes to a duration, rounded to the millisecond the
// log stores.
func offset(min float64) time.Duration {
	return time.Duration(math.Round(min*60*1000)) * time.Millisecond
}
