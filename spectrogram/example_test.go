package spectrogram_test

import (
	"context"
	"fmt"
	"os"

	"github.com/cwbudde/algo-spectrogram/spectrogram"
)

func ExamplePipeline_Run() {
	cfg := spectrogram.DefaultConfig()
	cfg.WindowSizeMs = 4
	cfg.TransformSize = 4
	cfg.FrameIntervalMs = 4

	p, err := spectrogram.New(cfg)
	if err != nil {
		fmt.Println(err)
		return
	}

	// At 1 kHz each millisecond is one sample: two full frames, the last
	// two samples are dropped.
	samples := []int16{1, 1, 1, 1, 0, 0, 0, 0, 5, 5}

	res, err := p.Run(context.Background(), spectrogram.Mono16(1000, samples), spectrogram.NewTextWriter(os.Stdout, 2))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(res.Frames, res.Bins)

	// Output:
	// 12.04 -200.00 -200.00
	// -200.00 -200.00 -200.00
	// 2 3
}
