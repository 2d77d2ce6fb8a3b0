// Command spectrogram renders a mono 16-bit WAV file as a text matrix of dB
// magnitude spectra, one line per analysis frame.
//
// Usage:
//
//	spectrogram [flags] <window_size_ms> <window_kind> <transform_size> <frame_interval_ms> <input_path> <output_path>
//
// Flags may also come from a YAML file (--config) or from SPECTROGRAM_*
// environment variables. Positional arguments always win.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
