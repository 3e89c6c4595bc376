package memory

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestRegionOf_Partition(t *testing.T) {
	windows := []struct {
		first, last uint16
		region      Region
	}{
		{0x0000, 0x3FFF, ROM0},
		{0x4000, 0x7FFF, ROMX},
		{0x8000, 0x9FFF, VRAM},
		{0xA000, 0xBFFF, SRAM},
		{0xC000, 0xFDFF, WRAM},
		{0xFE00, 0xFE9F, HRAM},
		{0xFEA0, 0xFEFF, Unusable},
		{0xFF00, 0xFFFF, HRAM},
	}

	for addr := 0; addr <= 0xFFFF; addr++ {
		claims := 0
		var claimed Region
		for _, w := range windows {
			if addr >= int(w.first) && addr <= int(w.last) {
				claims++
				claimed = w.region
			}
		}
		if claims != 1 {
			t.Fatalf("address $%04X claimed by %d windows", addr, claims)
		}
		if got := RegionOf(uint16(addr)); got != claimed {
			t.Fatalf("RegionOf($%04X) = %s, want %s", addr, got, claimed)
		}
	}
}

func TestUnusableWindowAlwaysUnmapped(t *testing.T) {
	s := newTestSpace(t)
	banks := Banks{ROM: 1, SRAM: 0}

	for addr := 0xFEA0; addr <= 0xFEFF; addr++ {
		_, err := s.Read8(banks, uint16(addr))
		assert.True(t, errors.Is(err, ErrUnmapped))

		var addrErr *AddressError
		assert.True(t, errors.As(err, &addrErr))
		assert.Equal(t, uint16(addr), addrErr.Address)
		assert.Equal(t, Unusable, addrErr.Region)
	}
}

func TestRegion_Banked(t *testing.T) {
	assert.False(t, ROM0.Banked())
	assert.True(t, ROMX.Banked())
	assert.False(t, VRAM.Banked())
	assert.True(t, SRAM.Banked())
	assert.False(t, WRAM.Banked())
	assert.False(t, HRAM.Banked())
}

func TestRegionName(t *testing.T) {
	tests := []struct {
		addr uint16
		want string
	}{
		{0x0000, "rom0"},
		{0x4000, "romx"},
		{0x8000, "vram"},
		{0xA000, "sram"},
		{0xC000, "wram"},
		{0xE000, "echoram"},
		{0xFE00, "oam"},
		{0xFEA0, "unmapped"},
		{0xFF00, "io"},
		{0xFF80, "hram"},
		{0xFFFE, "hram"},
		{0xFFFF, "io"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, RegionName(tt.addr))
		})
	}
}

func TestIORegisterName(t *testing.T) {
	name, ok := IORegisterName(0xFF40, false)
	assert.True(t, ok)
	assert.Equal(t, "LCDC", name)

	_, ok = IORegisterName(0xFF4F, false)
	assert.False(t, ok)

	name, ok = IORegisterName(0xFF4F, true)
	assert.True(t, ok)
	assert.Equal(t, "VBK", name)

	_, ok = IORegisterName(0xC040, true)
	assert.False(t, ok)
}
