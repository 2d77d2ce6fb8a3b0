// Package buffer provides pooled scratch memory for frame processing: a
// 16-bit PCM slice and a float64 working slice of matching length.
//
// The spectrogram pipeline draws one Buffer per in-flight frame so parallel
// batches do not allocate per frame.
package buffer
