// Package frame extracts fixed-size, possibly overlapping analysis frames
// from an addressable sequence of 16-bit PCM samples.
//
// A [Source] holds an explicit sample cursor. Each successful [Source.Next]
// returns exactly size samples starting at the cursor and then advances it
// by stride, so stride < size yields overlapping frames and stride > size
// skips samples between frames. A final window with fewer than size samples
// remaining is never returned; Next reports io.EOF instead.
//
// Samples are read through the [Reader] interface. [Samples] serves an
// in-memory slice; [PCMReader] re-reads little-endian samples from an
// io.ReaderAt at the cursor position, so a file never has to be loaded
// whole. Both produce identical frames for identical input.
package frame
