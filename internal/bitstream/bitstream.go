// Package bitstream provides a reader that consumes a byte stream one bit at a time.
package bitstream

import "io"

// Reader reads bits most significant bit first from an underlying byte reader.
type Reader struct {
	r       io.ByteReader
	current byte
	left    uint // bits of current not consumed yet
}

// New returns a bit reader that pulls bytes from r on demand.
func New(r io.ByteReader) *Reader {
	return &Reader{r: r}
}

// ReadBit returns the next bit as 0 or 1.
// Errors of the underlying byte reader are returned unchanged.
func (r *Reader) ReadBit() (uint, error) {
	if r.left == 0 {
		b, err := r.r.ReadByte()
		if err != nil {
			return 0, err
		}
		r.current = b
		r.left = 8
	}

	r.left--
	return uint(r.current>>r.left) & 1, nil
}

// ReadBits reads n bits and returns them as an integer, first bit read
// being the most significant one.
func (r *Reader) ReadBits(n int) (uint, error) {
	var v uint
	for range n {
		bit, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		v = v<<1 | bit
	}
	return v, nil
}
