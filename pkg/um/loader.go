package um

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrBadImage is returned by ReadImage for byte streams that cannot be
// a program image.
var ErrBadImage = errors.New("um: malformed program image")

// ReadImage reads a program image from r: a sequence of 32-bit
// big-endian words, most significant byte first. The stream must be a
// whole number of words long.
func ReadImage(r io.Reader) ([]uint32, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("um: read program image: %w", err)
	}
	if len(raw)%4 != 0 {
		return nil, fmt.Errorf("%w: size %d bytes is not a multiple of 4",
			ErrBadImage, len(raw))
	}
	words := make([]uint32, len(raw)/4)
	for i := range words {
		words[i] = binary.BigEndian.Uint32(raw[i*4:])
	}
	return words, nil
}

// WriteImage writes a program image to w in the same format ReadImage
// reads.
func WriteImage(w io.Writer, words []uint32) error {
	buf := make([]byte, 4)
	for _, word := range words {
		binary.BigEndian.PutUint32(buf, word)
		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("um: write program image: %w", err)
		}
	}
	return nil
}
