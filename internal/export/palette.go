package export

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/FutureFractal/g1utils/internal/memory"
)

// Palette names accepted by PaletteByName.
const (
	PaletteGray     = "gray"
	PaletteInverted = "inverted"
)

// Gray maps color code 0 to white and color code 3 to black, like the
// monochrome console.
var Gray = color.Palette{
	color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
	color.RGBA{R: 0xAA, G: 0xAA, B: 0xAA, A: 0xFF},
	color.RGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xFF},
	color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xFF},
}

// Inverted maps color code 0 to black and color code 3 to white.
var Inverted = color.Palette{Gray[3], Gray[2], Gray[1], Gray[0]}

// PaletteByName returns the builtin palette with the given name.
func PaletteByName(name string) (color.Palette, error) {
	switch strings.ToLower(name) {
	case PaletteGray, "":
		return Gray, nil
	case PaletteInverted:
		return Inverted, nil
	default:
		return nil, fmt.Errorf("unsupported palette '%s'", name)
	}
}

// RGB555 converts a 15 bit console color to a 24 bit color. The top 3 bits of
// each 5 bit component are copied into the new low bits so that full
// intensity maps to 0xFF.
func RGB555(c uint16) color.RGBA {
	expand := func(v uint16) uint8 {
		v &= 0x1F
		return uint8(v<<3 | v>>2)
	}
	return color.RGBA{
		R: expand(c),
		G: expand(c >> 5),
		B: expand(c >> 10),
		A: 0xFF,
	}
}

// ReadPalette reads a palette of 4 little endian RGB555 colors stored at p.
func ReadPalette(s *memory.Space, p memory.Pointer) (color.Palette, error) {
	table := memory.Table{Pointer: p, ItemSize: 2}

	pal := make(color.Palette, 0, 4)
	for i := range 4 {
		c, err := table.Read16(s, i)
		if err != nil {
			return nil, fmt.Errorf("reading palette color %d: %w", i, err)
		}
		pal = append(pal, RGB555(c))
	}
	return pal, nil
}

// ResolvePalette returns the builtin palette with the given name. A name
// that is a bank:address pointer instead selects the RGB555 palette stored
// at that pointer.
func ResolvePalette(s *memory.Space, name string) (color.Palette, error) {
	pal, err := PaletteByName(name)
	if err == nil {
		return pal, nil
	}
	p, perr := memory.ParsePointer(name)
	if perr != nil {
		return nil, err
	}
	return ReadPalette(s, p)
}
