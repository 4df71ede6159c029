package consolidation_test

import (
	"fmt"

	"github.com/cwbudde/algo-oedometer/internal/testutil"
	"github.com/cwbudde/algo-oedometer/measure/consolidation"
)

func ExampleEngine_Process() {
	times := testutil.GeometricTimes(0.05, 1440, 80)
	strain := testutil.TerzaghiStrain(times, 0.1, 10, 0.002)

	e, err := consolidation.New(consolidation.WithPressure(100), consolidation.WithLogger(nil))
	if err != nil {
		panic(err)
	}
	res, err := e.Process(consolidation.Series{Time: times, Strain: strain})
	if err != nil {
		panic(err)
	}

	fmt.Println(res.CvSqrt.Valid(), res.CvLog.Valid(), res.KfLog.Valid())
	// Output: true true true
}

func ExampleValue() {
	fmt.Println(consolidation.Some(0.125), consolidation.None())
	// Output: 0.125 -
}
