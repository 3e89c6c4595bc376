// Package sprite decodes the compressed 2bpp sprite format used for creature
// and trainer pictures.
//
// A compressed sprite is a header byte holding the size in tiles followed by
// a bit stream with two run length encoded bitplanes. The planes are stored
// delta encoded and the second plane can additionally be stored as the XOR of
// both planes.
package sprite

import (
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/FutureFractal/g1utils/internal/bitstream"
)

// CanvasTiles is the width and height in tiles of the fixed canvas that
// sprites are placed on when they are not decoded at their true size.
const CanvasTiles = 7

// ErrMalformed is returned for bit streams that can not be produced by the
// compressor.
var ErrMalformed = errors.New("malformed sprite data")

// PlaneOrder selects the buffer that the first stored bitplane is decoded into.
type PlaneOrder int

const (
	// Plane1First stores the first decoded plane in buffer 1, the low bit of each pixel.
	Plane1First PlaneOrder = iota
	// Plane2First stores the first decoded plane in buffer 2, the high bit of each pixel.
	Plane2First
)

func (o PlaneOrder) String() string {
	if o == Plane2First {
		return "plane2-first"
	}
	return "plane1-first"
}

// Mode is the encoding of the second stored plane.
type Mode int

const (
	// Plain means both planes are delta encoded.
	Plain Mode = iota
	// DeltaOnly means the first plane is delta encoded and the second one
	// holds the XOR of both planes.
	DeltaOnly
	// DeltaXor means both planes are delta encoded and the second one holds
	// the XOR of both planes before delta encoding.
	DeltaXor
)

func (m Mode) String() string {
	switch m {
	case Plain:
		return "plain"
	case DeltaOnly:
		return "delta"
	case DeltaXor:
		return "delta-xor"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Image is a decoded sprite.
type Image struct {
	Width  int // in pixels
	Height int // in pixels

	// TileWidth and TileHeight are the size stored in the sprite header.
	TileWidth  int
	TileHeight int

	Order PlaneOrder
	Mode  Mode

	low  []byte // buffer 1, column major
	high []byte // buffer 2, column major
}

// Decode decodes a compressed sprite from r. With trueSize unset the sprite
// is placed on a 7x7 tile canvas the way the game displays front sprites:
// centered horizontally and aligned to the bottom.
func Decode(r io.ByteReader, trueSize bool) (*Image, error) {
	size, err := r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("reading sprite header: %w", err)
	}

	w, h := tileSize(size)
	img := &Image{
		TileWidth:  w,
		TileHeight: h,
	}

	rows := h * 8
	buf1 := make([]byte, w*rows)
	buf2 := make([]byte, w*rows)

	br := bitstream.New(r)
	order, err := br.ReadBit()
	if err != nil {
		return nil, fmt.Errorf("reading plane order: %w", err)
	}
	img.Order = PlaneOrder(order)

	primary, secondary := buf1, buf2
	if img.Order == Plane2First {
		primary, secondary = buf2, buf1
	}

	if err := readPlane(br, primary, rows); err != nil {
		return nil, fmt.Errorf("reading first plane: %w", err)
	}
	if img.Mode, err = readMode(br); err != nil {
		return nil, fmt.Errorf("reading encoding mode: %w", err)
	}
	if err := readPlane(br, secondary, rows); err != nil {
		return nil, fmt.Errorf("reading second plane: %w", err)
	}

	combine(img.Mode, primary, secondary, w, rows)

	if trueSize {
		img.Width, img.Height = w*8, rows
		img.low, img.high = buf1, buf2
		return img, nil
	}

	img.Width, img.Height = CanvasTiles*8, CanvasTiles*8
	img.low = placeOnCanvas(buf1, w, h)
	img.high = placeOnCanvas(buf2, w, h)
	return img, nil
}

// tileSize returns the sprite size in tiles, a nibble of 0 meaning 16.
func tileSize(b byte) (int, int) {
	w, h := int(b>>4), int(b&0x0F)
	if w == 0 {
		w = 16
	}
	if h == 0 {
		h = 16
	}
	return w, h
}

func readMode(br *bitstream.Reader) (Mode, error) {
	bit, err := br.ReadBit()
	if err != nil || bit == 0 {
		return Plain, err
	}
	bit, err = br.ReadBit()
	if err != nil {
		return Plain, err
	}
	if bit == 0 {
		return DeltaOnly, nil
	}
	return DeltaXor, nil
}

// Rows returns the pixel rows of the image. Each row packs four 2 bit color
// codes per byte, the leftmost pixel in the top bits.
func (img *Image) Rows() iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		for y := range img.Height {
			if !yield(img.Row(y)) {
				return
			}
		}
	}
}

// Row returns pixel row y packed like the rows of Rows.
func (img *Image) Row(y int) []byte {
	cols := img.Width / 8
	row := make([]byte, 0, cols*2)
	for col := range cols {
		i := col*img.Height + y
		b1, b2 := Interleave(img.low[i], img.high[i])
		row = append(row, b1, b2)
	}
	return row
}
