package consolidation

import (
	"math"
	"strconv"
)

// Value is an optional result quantity. The zero Value is absent.
type Value struct {
	v  float64
	ok bool
}

// Some returns a present Value. Non-finite inputs yield an absent Value.
func Some(v float64) Value {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Value{}
	}
	return Value{v: v, ok: true}
}

// None returns an absent Value.
func None() Value {
	return Value{}
}

// Get returns the quantity and whether it is present.
func (v Value) Get() (float64, bool) {
	return v.v, v.ok
}

// Valid reports whether the quantity is present.
func (v Value) Valid() bool {
	return v.ok
}

// Or returns the quantity, or def when it is absent.
func (v Value) Or(def float64) float64 {
	if !v.ok {
		return def
	}
	return v.v
}

// String formats the quantity with %g, or "-" when absent.
func (v Value) String() string {
	if !v.ok {
		return "-"
	}
	return strconv.FormatFloat(v.v, 'g', 6, 64)
}

// map2 applies f to two present values.
func map2(a, b Value, f func(x, y float64) float64) Value {
	x, okA := a.Get()
	y, okB := b.Get()
	if !okA || !okB {
		return Value{}
	}
	return Some(f(x, y))
}
