package memory

import (
	"encoding/binary"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

// buildROM makes a synthetic ROM with a valid header and checksums.
// Every byte outside of the header holds the number of its bank.
func buildROM(title string, romSizeCode, ramSizeCode byte, size int) []byte {
	rom := make([]byte, size)
	for i := range rom {
		rom[i] = byte(i >> 14)
	}

	copy(rom[0x0134:0x0144], make([]byte, 16))
	copy(rom[0x0134:0x0144], title)

	rom[0x0143] = 0x00
	rom[0x0144], rom[0x0145] = '0', '1'
	rom[0x0146] = 0x03
	rom[0x0147] = 0x13 // MBC3+RAM+BATTERY
	rom[0x0148] = romSizeCode
	rom[0x0149] = ramSizeCode
	rom[0x014A] = 0x01
	rom[0x014B] = 0x33
	rom[0x014C] = 0x01

	var hsum byte
	for addr := 0x0134; addr <= 0x014C; addr++ {
		hsum = hsum - rom[addr] - 1
	}
	rom[0x014D] = hsum

	var gsum uint16
	for i, b := range rom {
		if i == 0x014E || i == 0x014F {
			continue
		}
		gsum += uint16(b)
	}
	binary.BigEndian.PutUint16(rom[0x014E:0x0150], gsum)

	return rom
}

// newTestSpace returns a 64KB ROM image (4 banks) with 32KB of SRAM
// (4 banks), VRAM, WRAM and the high page loaded. Each RAM region is filled
// with a distinct pattern.
func newTestSpace(t *testing.T) *Space {
	t.Helper()

	rom := buildROM("TEST", 0x01, 0x03, 0x10000)

	sram := make([]byte, 0x8000)
	for i := range sram {
		sram[i] = 0xA0 | byte(i>>13)
	}
	vram := make([]byte, 0x2000)
	for i := range vram {
		vram[i] = byte(i)
	}
	wram := make([]byte, 0x2000)
	for i := range wram {
		wram[i] = byte(i >> 8)
	}
	high := make([]byte, 0x200)
	for i := range high {
		high[i] = byte(i)
	}

	s, err := New(WithROM(rom), WithSRAM(sram), WithVRAM(vram), WithWRAM(wram), WithHigh(high))
	assert.NoError(t, err)
	return s
}
