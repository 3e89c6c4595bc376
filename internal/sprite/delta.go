package sprite

// combine undoes the delta and XOR encoding of both planes in place.
func combine(mode Mode, primary, secondary []byte, cols, rows int) {
	switch mode {
	case Plain:
		deltaDecode(primary, cols, rows)
		deltaDecode(secondary, cols, rows)
	case DeltaOnly:
		deltaDecode(primary, cols, rows)
		xorPlane(secondary, primary)
	case DeltaXor:
		deltaDecode(secondary, cols, rows)
		deltaDecode(primary, cols, rows)
		xorPlane(secondary, primary)
	}
}

// deltaDecode converts a plane from the stored form, where a set bit toggles
// the pixel value, to plain pixel bits. Each pixel row is decoded from the
// left across all tile columns and starts with a clear pixel.
func deltaDecode(buf []byte, cols, rows int) {
	for row := range rows {
		var carry byte
		for col := range cols {
			i := col*rows + row
			v := parityFold(buf[i])
			if carry != 0 {
				v = ^v
			}
			buf[i] = v
			carry = v & 1
		}
	}
}

// parityFold replaces every bit by the parity of itself and all bits above it.
func parityFold(b byte) byte {
	b ^= b >> 1
	b ^= b >> 2
	b ^= b >> 4
	return b
}

func xorPlane(dst, src []byte) {
	for i := range dst {
		dst[i] ^= src[i]
	}
}
