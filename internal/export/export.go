// Package export converts decoded 2bpp graphics to images and writes them as PNG.
package export

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"iter"

	"golang.org/x/image/draw"
)

// Paletted builds a paletted image from rows of packed 2 bit color codes,
// four pixels per byte with the leftmost pixel in the top bits. Rows beyond
// height and bytes beyond width are ignored.
func Paletted(width, height int, rows iter.Seq[[]byte], pal color.Palette) *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, width, height), pal)

	y := 0
	for row := range rows {
		if y >= height {
			break
		}
		line := img.Pix[y*img.Stride : y*img.Stride+width]
		for x := range line {
			if x/4 >= len(row) {
				break
			}
			line[x] = (row[x/4] >> (6 - 2*uint(x%4))) & 3
		}
		y++
	}
	return img
}

// Scale enlarges an image by an integer factor using nearest neighbor
// sampling, keeping the palette of paletted images.
func Scale(src image.Image, factor int) (image.Image, error) {
	if factor < 1 {
		return nil, fmt.Errorf("invalid scale factor %d", factor)
	}
	if factor == 1 {
		return src, nil
	}

	b := src.Bounds()
	rect := image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor)

	var dst draw.Image
	if p, ok := src.(*image.Paletted); ok {
		dst = image.NewPaletted(rect, p.Palette)
	} else {
		dst = image.NewRGBA(rect)
	}
	draw.NearestNeighbor.Scale(dst, rect, src, b, draw.Src, nil)
	return dst, nil
}

// WritePNG encodes the image as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(w, img); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return nil
}
