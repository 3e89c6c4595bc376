package memory

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestParseHeader(t *testing.T) {
	rom := buildROM("POKEMON RED", 0x05, 0x03, 0x100000)

	h, err := ParseHeader(rom)
	assert.NoError(t, err)
	assert.Equal(t, "POKEMON RED", h.Title)
	assert.Equal(t, "", h.Code)
	assert.Equal(t, "MBC3", h.CartType.String())
	assert.Equal(t, ROMSize(0x05), h.ROMSize)
	assert.Equal(t, RAMSize(0x03), h.RAMSize)
	assert.Equal(t, "01", h.Licensee())
	assert.True(t, h.IsSGB())
	assert.False(t, h.IsGBC())
	assert.False(t, h.IsJapan())
	assert.Equal(t, byte(0x01), h.Revision)
	assert.True(t, HeaderChecksumOK(rom))
	assert.True(t, h.VerifyChecksum(rom))

	rom[0x8000] ^= 0xFF
	assert.False(t, h.VerifyChecksum(rom))
	assert.True(t, HeaderChecksumOK(rom))

	rom[0x0134] = 'X'
	assert.False(t, HeaderChecksumOK(rom))
}

func TestParseHeader_GameCode(t *testing.T) {
	rom := buildROM("", 0x00, 0x00, 0x8000)
	copy(rom[0x0134:], "POKEMON_SLVAAXE")
	rom[0x0143] = 0x80

	h, err := ParseHeader(rom)
	assert.NoError(t, err)
	assert.Equal(t, "POKEMON_SLV", h.Title)
	assert.Equal(t, "AAXE", h.Code)
	assert.True(t, h.IsGBC())
	assert.False(t, h.IsGBCOnly())

	// a shortened title without a code
	copy(rom[0x0134:0x0143], make([]byte, 15))
	copy(rom[0x0134:], "TETRIS DX")
	rom[0x0143] = 0xC0
	h, err = ParseHeader(rom)
	assert.NoError(t, err)
	assert.Equal(t, "TETRIS DX", h.Title)
	assert.Equal(t, "", h.Code)
	assert.True(t, h.IsGBCOnly())
}

func TestParseHeader_TooSmall(t *testing.T) {
	_, err := ParseHeader(make([]byte, 0x014F))
	assert.ErrorContains(t, err, "too small")
	assert.False(t, HeaderChecksumOK(make([]byte, 0x0100)))
}

func TestHeader_NewLicensee(t *testing.T) {
	h := &Header{OldLicensee: 0x33, NewLicensee: "01"}
	assert.Equal(t, "01", h.Licensee())

	h = &Header{OldLicensee: 0x0A}
	assert.Equal(t, "0A", h.Licensee())
}

func TestROMBankMask(t *testing.T) {
	tests := []struct {
		size  ROMSize
		mask  uint
		banks int
	}{
		{0x00, 0x01, 2},
		{0x01, 0x03, 4},
		{0x05, 0x3F, 64},
		{0x08, 0x1FF, 512},
		{0x52, 0x7F, 72},
		{0x54, 0x7F, 96},
	}

	for _, tt := range tests {
		mask, ok := ROMBankMask(tt.size)
		assert.True(t, ok)
		assert.Equal(t, tt.mask, mask)
		assert.Equal(t, tt.banks, ROMBanks(tt.size))
	}

	_, ok := ROMBankMask(0x09)
	assert.False(t, ok)
	assert.Equal(t, 0, ROMBanks(0x09))

	_, ok = SRAMBankMask(0x00)
	assert.False(t, ok)
	mask, ok := SRAMBankMask(0x04)
	assert.True(t, ok)
	assert.Equal(t, uint(0xF), mask)
}
