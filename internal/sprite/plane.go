package sprite

import (
	"fmt"

	"github.com/FutureFractal/g1utils/internal/bitstream"
)

// maxRunBits limits the length prefix of a run length packet.
const maxRunBits = 16

// planeWriter places 2 bit codes into a column major bitplane buffer.
// Positions run down a 2 pixel wide sub-column, then through the 4
// sub-columns of a tile column from the left, then to the next tile column.
type planeWriter struct {
	buf  []byte
	rows int
	pos  int
	end  int
}

func newPlaneWriter(buf []byte, rows int) *planeWriter {
	return &planeWriter{
		buf:  buf,
		rows: rows,
		end:  len(buf) * 4,
	}
}

func (p *planeWriter) done() bool {
	return p.pos >= p.end
}

func (p *planeWriter) put(code byte) {
	col, rest := p.pos/(p.rows*4), p.pos%(p.rows*4)
	sub, row := rest/p.rows, rest%p.rows
	p.buf[col*p.rows+row] |= code << (6 - 2*sub)
	p.pos++
}

func (p *planeWriter) skip(n int) {
	p.pos = min(p.pos+n, p.end)
}

// readPlane decodes one bitplane into buf. The first bit tells whether the
// plane starts with a run of zero codes or with literal codes, after that the
// two kinds alternate until every position is covered.
func readPlane(br *bitstream.Reader, buf []byte, rows int) error {
	p := newPlaneWriter(buf, rows)

	bit, err := br.ReadBit()
	if err != nil {
		return err
	}

	literal := bit == 1
	for !p.done() {
		if literal {
			err = readLiterals(br, p)
		} else {
			var n int
			n, err = readRunLength(br)
			p.skip(n)
		}
		if err != nil {
			return err
		}
		literal = !literal
	}
	return nil
}

// readLiterals reads 2 bit codes until the 00 terminator or until the plane
// is full.
func readLiterals(br *bitstream.Reader, p *planeWriter) error {
	for !p.done() {
		code, err := br.ReadBits(2)
		if err != nil {
			return err
		}
		if code == 0 {
			return nil
		}
		p.put(byte(code))
	}
	return nil
}

// readRunLength reads a run length packet: a unary prefix of n-1 set bits
// ended by a clear bit, then n bits v. The run length is (1<<n) + v - 1.
func readRunLength(br *bitstream.Reader) (int, error) {
	n := 1
	for {
		bit, err := br.ReadBit()
		if err != nil {
			return 0, err
		}
		if bit == 0 {
			break
		}
		n++
		if n > maxRunBits {
			return 0, fmt.Errorf("%w: run length prefix exceeds %d bits", ErrMalformed, maxRunBits)
		}
	}

	v, err := br.ReadBits(n)
	if err != nil {
		return 0, err
	}
	return (1 << n) + int(v) - 1, nil
}
