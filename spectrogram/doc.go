// Package spectrogram turns a mono 16-bit PCM stream into a time-ordered
// sequence of dB magnitude spectra.
//
// A Pipeline converts the configured millisecond durations to sample counts
// with the stream's sample rate, precomputes the window once, and then pulls
// frames from a frame.Source until it reports io.EOF. Each frame is windowed,
// transformed and handed to a Sink in extraction order. With Workers > 1
// the transforms of a batch run concurrently but rows are still emitted in
// frame order, so the output matches a sequential run byte for byte.
//
//	p, err := spectrogram.New(cfg)
//	res, err := p.Run(ctx, stream, spectrogram.NewTextWriter(out, 2))
package spectrogram
