package export

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"slices"
	"testing"

	"github.com/FutureFractal/g1utils/internal/memory"
	"github.com/retroenv/retrogolib/assert"
)

func TestPaletted(t *testing.T) {
	rows := [][]byte{
		{0x1B, 0xE4}, // codes 0 1 2 3 3 2 1 0
		{0xFF},       // short row
	}

	img := Paletted(8, 3, slices.Values(rows), Gray)
	assert.Equal(t, image.Rect(0, 0, 8, 3), img.Bounds())
	assert.Equal(t, []uint8{0, 1, 2, 3, 3, 2, 1, 0}, img.Pix[0:8])
	assert.Equal(t, []uint8{3, 3, 3, 3, 0, 0, 0, 0}, img.Pix[8:16])
	assert.Equal(t, make([]uint8, 8), img.Pix[16:24])
	assert.Equal(t, Gray[0], img.At(0, 0))
	assert.Equal(t, Gray[3], img.At(3, 0))
}

func TestScale(t *testing.T) {
	src := image.NewPaletted(image.Rect(0, 0, 2, 1), Gray)
	src.SetColorIndex(1, 0, 3)

	scaled, err := Scale(src, 3)
	assert.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 6, 3), scaled.Bounds())

	dst, ok := scaled.(*image.Paletted)
	assert.True(t, ok)
	assert.Equal(t, uint8(0), dst.ColorIndexAt(2, 2))
	assert.Equal(t, uint8(3), dst.ColorIndexAt(3, 0))
	assert.Equal(t, uint8(3), dst.ColorIndexAt(5, 2))

	same, err := Scale(src, 1)
	assert.NoError(t, err)
	assert.Equal(t, image.Image(src), same)

	_, err = Scale(src, 0)
	assert.Error(t, err)
}

func TestWritePNG(t *testing.T) {
	src := Paletted(8, 1, slices.Values([][]byte{{0x1B, 0xE4}}), Inverted)

	var buf bytes.Buffer
	assert.NoError(t, WritePNG(&buf, src))

	decoded, err := png.Decode(&buf)
	assert.NoError(t, err)
	assert.Equal(t, src.Bounds(), decoded.Bounds())

	r, g, b, _ := decoded.At(0, 0).RGBA()
	assert.Equal(t, uint32(0), r|g|b)
	r, _, _, _ = decoded.At(3, 0).RGBA()
	assert.Equal(t, uint32(0xFFFF), r)
}

func TestPaletteByName(t *testing.T) {
	pal, err := PaletteByName("GRAY")
	assert.NoError(t, err)
	assert.Equal(t, Gray, pal)

	pal, err = PaletteByName(PaletteInverted)
	assert.NoError(t, err)
	assert.Equal(t, Gray[3], pal[0])

	_, err = PaletteByName("sepia")
	assert.ErrorContains(t, err, "unsupported palette")
}

func TestRGB555(t *testing.T) {
	assert.Equal(t, color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}, RGB555(0x7FFF))
	assert.Equal(t, color.RGBA{R: 0xFF, G: 0x00, B: 0x00, A: 0xFF}, RGB555(0x001F))
	assert.Equal(t, color.RGBA{R: 0x00, G: 0x84, B: 0x00, A: 0xFF}, RGB555(0x0200))
	assert.Equal(t, color.RGBA{R: 0x00, G: 0x00, B: 0x08, A: 0xFF}, RGB555(0x0400))
}

func TestReadPalette(t *testing.T) {
	wram := make([]byte, 0x100)
	copy(wram[0x10:], []byte{0xFF, 0x7F, 0x1F, 0x00, 0x00, 0x02, 0x00, 0x00})
	s, err := memory.New(memory.WithWRAM(wram))
	assert.NoError(t, err)

	pal, err := ReadPalette(s, memory.Pointer{Bank: memory.NoBank, Address: 0xC010})
	assert.NoError(t, err)
	assert.Len(t, pal, 4)
	assert.Equal(t, color.Color(RGB555(0x7FFF)), pal[0])
	assert.Equal(t, color.Color(RGB555(0x0000)), pal[3])

	_, err = ReadPalette(s, memory.Pointer{Bank: memory.NoBank, Address: 0xC0FE})
	assert.ErrorContains(t, err, "palette color 1")
}

func TestResolvePalette(t *testing.T) {
	wram := make([]byte, 0x100)
	copy(wram[0x20:], []byte{0xFF, 0x7F, 0x00, 0x7C, 0xE0, 0x03, 0x00, 0x00})
	s, err := memory.New(memory.WithWRAM(wram))
	assert.NoError(t, err)

	tests := []struct {
		name        string
		palette     string
		want        color.Palette
		errContains string
	}{
		{name: "builtin", palette: "inverted", want: Inverted},
		{name: "empty name", palette: "", want: Gray},
		{
			name:    "stored palette",
			palette: "$C020",
			want:    color.Palette{RGB555(0x7FFF), RGB555(0x7C00), RGB555(0x03E0), RGB555(0x0000)},
		},
		{name: "unknown name", palette: "sepia", errContains: "unsupported palette 'sepia'"},
		{name: "unreadable pointer", palette: "D000", errContains: "palette color 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pal, err := ResolvePalette(s, tt.palette)
			if tt.errContains != "" {
				assert.ErrorContains(t, err, tt.errContains)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, pal)
		})
	}
}
