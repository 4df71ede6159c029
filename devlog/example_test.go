package devlog_test

import (
	"bytes"
	"fmt"
	"time"

	"github.com/cwbudde/algo-oedometer/devlog"
)

func ExampleWriteCSV() {
	l := devlog.Log{
		Header: devlog.Header{SampleHeight: 20, SampleDiameter: 71.4, Press: 100},
		Start:  time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC),
		Time:   []float64{0, 1, 10},
		Strain: []float64{0, -0.01, -0.02},
	}

	var buf bytes.Buffer
	if err := devlog.WriteCSV(&buf, l); err != nil {
		panic(err)
	}
	fmt.Print(buf.String())
	// Output:
	// SampleHeight;SampleDiameter;Press;Trajectory
	// 20;71.4;100;consolidation
	// ID;DateTime;Press;Deformation;StabEnd;Consolidation
	// 1;2024-01-01 08:00:00.000;100;0.00;0;1
	// 2;2024-01-01 08:01:00.000;100;0.20;0;1
	// 3;2024-01-01 08:10:00.000;100;0.40;1;1
}
