package window

import "fmt"

func ExampleGenerate() {
	w, _ := Generate(TypeHann, 4)
	fmt.Printf("%.2f %.2f %.2f %.2f\n", w[0], w[1], w[2], w[3])
	// Output:
	// 0.00 0.75 0.75 0.00
}

func ExampleApplyPCM() {
	frame := []int16{100, 100, 100, 100}
	coeffs, _ := Generate(TypeHamming, len(frame))
	out := make([]float64, len(frame))
	_ = ApplyPCM(out, frame, coeffs)
	fmt.Printf("%.2f %.2f %.2f %.2f\n", out[0], out[1], out[2], out[3])
	// Output:
	// 8.00 77.00 77.00 8.00
}

func ExampleParse() {
	t, err := Parse("HANNING")
	fmt.Println(t, err)
	t, err = Parse("kaiser")
	fmt.Println(t, err)
	// Output:
	// hanning <nil>
	// rectangular unknown window type: "kaiser"
}
