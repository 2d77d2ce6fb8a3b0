package wav

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// FormatPCM is the WAVE format tag for uncompressed linear PCM.
const FormatPCM = 1

const (
	riffHeaderSize  = 12
	chunkHeaderSize = 8
	minFormatSize   = 16
)

// Header holds the fields decoded from the "fmt " chunk plus the location
// and size of the data chunk.
type Header struct {
	AudioFormat   uint16
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16

	// DataSize is the payload length in bytes as declared by the data chunk.
	DataSize uint32
	// DataOffset is the byte offset of the first payload byte.
	DataOffset int64
}

// NumSamples returns the number of whole sample frames in the payload. A
// trailing partial frame is dropped. For mono 16-bit audio this is
// DataSize/2.
func (h Header) NumSamples() int {
	align := h.frameSize()
	if align <= 0 {
		return 0
	}
	return int(h.DataSize) / align
}

// frameSize is the byte size of one sample frame implied by the channel
// count and sample width.
func (h Header) frameSize() int {
	return int(h.Channels) * ((int(h.BitsPerSample) + 7) / 8)
}

// Duration returns the payload length in seconds.
func (h Header) Duration() float64 {
	if h.SampleRate == 0 {
		return 0
	}
	return float64(h.NumSamples()) / float64(h.SampleRate)
}

// ReadHeader decodes the RIFF/WAVE preamble from r and stops at the first
// byte of the data chunk payload.
func ReadHeader(r io.Reader) (Header, error) {
	var h Header

	var riff [riffHeaderSize]byte
	if _, err := io.ReadFull(r, riff[:]); err != nil {
		return h, fmt.Errorf("%w: %w", ErrNotRIFF, err)
	}
	if string(riff[0:4]) != "RIFF" {
		return h, ErrNotRIFF
	}
	if string(riff[8:12]) != "WAVE" {
		return h, ErrNotWAVE
	}

	offset := int64(riffHeaderSize)
	haveFormat := false

	for {
		var chunk [chunkHeaderSize]byte
		if _, err := io.ReadFull(r, chunk[:]); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return h, ErrMissingData
			}
			return h, fmt.Errorf("wav: read chunk header: %w", err)
		}
		offset += chunkHeaderSize

		id := string(chunk[0:4])
		size := binary.LittleEndian.Uint32(chunk[4:8])

		switch id {
		case "fmt ":
			if err := readFormat(r, size, &h); err != nil {
				return h, err
			}
			haveFormat = true

		case "data":
			if !haveFormat {
				return h, ErrMissingFormat
			}
			h.DataSize = size
			h.DataOffset = offset
			return h, nil

		default:
			if err := skip(r, size); err != nil {
				return h, ErrMissingData
			}
		}

		offset += paddedSize(size)
	}
}

func readFormat(r io.Reader, size uint32, h *Header) error {
	if size < minFormatSize {
		return fmt.Errorf("%w: fmt chunk holds %d bytes", ErrMissingFormat, size)
	}

	var buf [minFormatSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return fmt.Errorf("%w: %w", ErrMissingFormat, err)
	}

	h.AudioFormat = binary.LittleEndian.Uint16(buf[0:2])
	h.Channels = binary.LittleEndian.Uint16(buf[2:4])
	h.SampleRate = binary.LittleEndian.Uint32(buf[4:8])
	h.ByteRate = binary.LittleEndian.Uint32(buf[8:12])
	h.BlockAlign = binary.LittleEndian.Uint16(buf[12:14])
	h.BitsPerSample = binary.LittleEndian.Uint16(buf[14:16])

	if h.AudioFormat != FormatPCM {
		return fmt.Errorf("%w: format tag %d", ErrUnsupportedFormat, h.AudioFormat)
	}
	if h.Channels == 0 || h.BitsPerSample == 0 {
		return fmt.Errorf("%w: %d channels of %d bits", ErrUnsupportedFormat, h.Channels, h.BitsPerSample)
	}
	if want := h.frameSize(); int(h.BlockAlign) != want {
		return fmt.Errorf("%w: block align %d, want %d for %d channels of %d bits",
			ErrUnsupportedFormat, h.BlockAlign, want, h.Channels, h.BitsPerSample)
	}

	// Extension bytes (cbSize and friends) are not needed for PCM.
	if err := skip(r, size-minFormatSize); err != nil {
		return fmt.Errorf("%w: %w", ErrMissingFormat, err)
	}

	return nil
}

// skip discards a chunk body including its pad byte.
func skip(r io.Reader, size uint32) error {
	n := paddedSize(size)
	if n == 0 {
		return nil
	}
	_, err := io.CopyN(io.Discard, r, n)
	return err
}

// paddedSize rounds odd chunk sizes up to the RIFF word boundary.
func paddedSize(size uint32) int64 {
	return int64(size) + int64(size&1)
}
