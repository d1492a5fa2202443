package buffer_test

import (
	"fmt"

	"github.com/cwbudde/algo-voicefx/dsp/buffer"
)

func ExampleSignal_Mono() {
	s := &buffer.Signal{
		SampleRate: 8000,
		Channels:   [][]float64{{1, 0.5}, {0, 0.5}},
	}

	fmt.Println(s.Mono())
	fmt.Println(s.Frames(), s.Duration())

	// Output:
	// [0.5 0.5]
	// 2 250µs
}
