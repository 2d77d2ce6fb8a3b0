// Package spectrum turns windowed real frames into one-sided magnitude
// spectra in decibels.
//
// The reference [DFT] evaluates every bin k in [0, N/2] by direct summation,
// which costs O(N·L) per frame for a frame of L samples (O(N²) when the
// frame and transform sizes match). It is the default because its summation
// order defines the numeric output. [FFT] (radix-2, algo-fft) and [RealFFT]
// (mixed radix, gonum) are opt-in backends that agree with the direct form
// to within [FastToleranceDB] on bins above the floor, not bit for bit.
//
// All backends read x[n] from the frame for n < min(L, N) and treat the rest
// as zero, so a frame shorter than the transform is zero-extended and a
// longer one is truncated.
//
// [Goertzel] evaluates a single bin under the same rules and is handy for
// probing one frequency without computing the whole spectrum.
package spectrum
