// Package wav decodes the RIFF/WAVE header fields the spectrogram needs and
// exposes the sample payload as an addressable frame.Reader.
//
// Only uncompressed PCM (format tag 1) is accepted. Chunks between "fmt "
// and "data" (LIST, fact, cue and so on) are skipped. Nothing after the
// data chunk is read.
package wav
