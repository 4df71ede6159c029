package consolidation

import (
	"math"

	"github.com/cwbudde/algo-oedometer/geom"
)

// Curve is a polyline for rendering.
type Curve struct {
	X []float64
	Y []float64
}

func curveThrough(points ...geom.Point) Curve {
	c := Curve{X: make([]float64, len(points)), Y: make([]float64, len(points))}
	for i, p := range points {
		c.X[i], c.Y[i] = p.X, p.Y
	}
	return c
}

// Marker is a labelled point.
type Marker struct {
	Label string
	geom.Point
}

// MethodPlot is the annotated chart of one method.
type MethodPlot struct {
	Data    Curve
	Lines   []Curve
	Markers []Marker
}

// PlotData is the rendering input for both charts. The square-root chart
// uses sqrt(minutes) on X, the logarithm chart log10(minutes).
type PlotData struct {
	Sqrt MethodPlot
	Log  MethodPlot
}

// PlotData assembles the curves, construction lines and markers of the
// current state. It is empty before ChangeBorders.
func (e *Engine) PlotData() PlotData {
	var pd PlotData
	r := e.resampled
	if r == nil {
		return pd
	}

	pd.Sqrt.Data = Curve{
		X: append([]float64(nil), r.TimeSqrt...),
		Y: append([]float64(nil), r.Strain...),
	}
	xMax := r.TimeSqrt[len(r.TimeSqrt)-1]
	if s := e.sqrt; s.Start != nil && s.End != nil {
		pd.Sqrt.Lines = append(pd.Sqrt.Lines, curveThrough(*s.Start, *s.End))
		if fitted, ok := geom.LineThrough(*s.Start, *s.End); ok {
			a := fitted.A / Line90Ratio
			line90 := geom.Line{A: a, B: s.Start.Y - a*s.Start.X}
			end := xMax
			if s.Cv != nil {
				end = math.Min(xMax, 1.2*s.Cv.X)
			}
			pd.Sqrt.Lines = append(pd.Sqrt.Lines, curveThrough(line90.PointAt(0), line90.PointAt(end)))
		}
		pd.Sqrt.Markers = append(pd.Sqrt.Markers,
			Marker{Label: PointSqrtStart.String(), Point: *s.Start},
			Marker{Label: PointSqrtEnd.String(), Point: *s.End},
		)
		if s.Cv != nil {
			pd.Sqrt.Markers = append(pd.Sqrt.Markers, Marker{Label: "t90", Point: *s.Cv})
		}
	}
	if t, ok := e.result.T50Sqrt.Get(); ok {
		pd.Sqrt.Markers = append(pd.Sqrt.Markers, Marker{Label: "t50", Point: geom.Pt(math.Sqrt(t), e.result.Strain50Sqrt.Or(math.NaN()))})
	}
	if t, ok := e.result.T100Sqrt.Get(); ok {
		pd.Sqrt.Markers = append(pd.Sqrt.Markers, Marker{Label: "t100", Point: geom.Pt(math.Sqrt(t), e.result.Strain100Sqrt.Or(math.NaN()))})
	}

	lx, ly := r.logPoints()
	pd.Log.Data = Curve{X: lx, Y: ly}
	l := e.log
	if l.FirstStart != nil && l.FirstEnd != nil {
		pd.Log.Lines = append(pd.Log.Lines, curveThrough(*l.FirstStart, *l.FirstEnd))
	}
	if l.SecondStart != nil && l.SecondEnd != nil {
		pd.Log.Lines = append(pd.Log.Lines, curveThrough(*l.SecondStart, *l.SecondEnd))
	}
	for _, id := range []PointID{PointLogFirstStart, PointLogFirstEnd, PointLogSecondStart, PointLogSecondEnd} {
		if p := e.point(id); p != nil {
			pd.Log.Markers = append(pd.Log.Markers, Marker{Label: id.String(), Point: *p})
		}
	}
	if l.Cv != nil {
		pd.Log.Markers = append(pd.Log.Markers, Marker{Label: "t100", Point: *l.Cv})
	}
	if d0, ok := e.result.D0.Get(); ok && len(lx) > 0 {
		pd.Log.Lines = append(pd.Log.Lines, curveThrough(geom.Pt(lx[0], d0), geom.Pt(lx[len(lx)-1], d0)))
	}
	if t, ok := e.result.T50Log.Get(); ok && l.Cv != nil {
		pd.Log.Markers = append(pd.Log.Markers, Marker{Label: "t50", Point: geom.Pt(math.Log10(t), (l.Cv.Y+e.result.D0.Or(l.Cv.Y))/2)})
	}
	return pd
}
