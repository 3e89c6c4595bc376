package sprite

// Interleave merges a byte of the low bitplane with a byte of the high
// bitplane into 8 pixels of 2 bit color codes. The first returned byte holds
// pixels 0 to 3, pixel 0 in the top two bits.
func Interleave(low, high byte) (byte, byte) {
	v := uint16(spread(low)) | uint16(spread(high))<<1
	return byte(v >> 8), byte(v)
}

// spread moves bit k of b to bit 2k of the result.
func spread(b byte) uint16 {
	v := uint16(b)
	v = (v | v<<4) & 0x0F0F
	v = (v | v<<2) & 0x3333
	v = (v | v<<1) & 0x5555
	return v
}

// placeOnCanvas copies a column major plane of w by h tiles onto the fixed
// canvas. The sprite is centered horizontally, rounding to the left, and
// aligned to the bottom. Parts that do not fit are cut off.
func placeOnCanvas(buf []byte, w, h int) []byte {
	const canvasRows = CanvasTiles * 8

	canvas := make([]byte, CanvasTiles*canvasRows)
	left := (CanvasTiles + 1 - w) / 2
	top := (CanvasTiles - h) * 8
	rows := h * 8

	for col := range w {
		dstCol := left + col
		if dstCol < 0 || dstCol >= CanvasTiles {
			continue
		}
		for row := range rows {
			dstRow := top + row
			if dstRow < 0 || dstRow >= canvasRows {
				continue
			}
			canvas[dstCol*canvasRows+dstRow] = buf[col*rows+row]
		}
	}
	return canvas
}
