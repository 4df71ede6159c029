package conv_test

import (
	"fmt"

	"github.com/cwbudde/algo-oedometer/dsp/conv"
)

func ExampleConvolveMode() {
	out, _ := conv.ConvolveMode([]float64{0, 0, 3, 0, 0}, []float64{0.25, 0.5, 0.25}, conv.ModeSame)
	fmt.Println(out)
	// Output:
	// [0 0.75 1.5 0.75 0]
}
