package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/youpy/go-wav"
)

// EncodeWAV renders samples as a 16-bit PCM WAV file. Every channel of a
// multi-channel file carries the same sample.
func EncodeWAV(sampleRate, channels int, samples []int16) ([]byte, error) {
	buf := new(bytes.Buffer)

	out := make([]wav.Sample, len(samples))
	for i, v := range samples {
		for c := 0; c < channels && c < len(out[i].Values); c++ {
			out[i].Values[c] = int(v)
		}
	}

	w := wav.NewWriter(buf, uint32(len(samples)), uint16(channels), uint32(sampleRate), 16)
	if err := w.WriteSamples(out); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// WriteWAV writes a mono 16-bit WAV fixture into a temporary directory and
// returns its path.
func WriteWAV(t testing.TB, sampleRate int, samples []int16) string {
	t.Helper()
	return WriteWAVChannels(t, sampleRate, 1, samples)
}

// WriteWAVChannels is WriteWAV for an arbitrary channel count.
func WriteWAVChannels(t testing.TB, sampleRate, channels int, samples []int16) string {
	t.Helper()

	data, err := EncodeWAV(sampleRate, channels, samples)
	if err != nil {
		t.Fatalf("encode wav: %v", err)
	}

	path := filepath.Join(t.TempDir(), "fixture.wav")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write wav: %v", err)
	}

	return path
}
