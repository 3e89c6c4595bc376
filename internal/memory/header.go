package memory

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
)

const headerEnd = 0x014F

// CartType is the cartridge type code stored at 0x0147. It names the memory
// bank controller and any extra hardware on the cartridge.
type CartType byte

func (c CartType) String() string {
	switch c {
	case 0x00:
		return "ROM ONLY"
	case 0x01, 0x02, 0x03:
		return "MBC1"
	case 0x05, 0x06:
		return "MBC2"
	case 0x0F, 0x10, 0x11, 0x12, 0x13:
		return "MBC3"
	case 0x19, 0x1A, 0x1B, 0x1C, 0x1D, 0x1E:
		return "MBC5"
	default:
		return "unknown"
	}
}

// Header holds the decoded cartridge header.
type Header struct {
	Title          string // trimmed ASCII
	Code           string // four character game code, empty if absent
	CGBFlag        byte
	NewLicensee    string
	SGBFlag        byte
	CartType       CartType
	ROMSize        ROMSize
	RAMSize        RAMSize
	Destination    byte
	OldLicensee    byte
	Revision       byte
	HeaderChecksum byte
	GlobalChecksum uint16 // stored big endian
}

// ParseHeader decodes the cartridge header of a ROM image.
func ParseHeader(rom []byte) (*Header, error) {
	if len(rom) < headerEnd+1 {
		return nil, errors.New("ROM too small to contain header")
	}

	title, code := decodeTitle(rom[0x0134:0x0144])

	h := &Header{
		Title:          title,
		Code:           code,
		CGBFlag:        rom[0x0143],
		NewLicensee:    string(rom[0x0144:0x0146]),
		SGBFlag:        rom[0x0146],
		CartType:       CartType(rom[0x0147]),
		ROMSize:        ROMSize(rom[0x0148]),
		RAMSize:        RAMSize(rom[0x0149]),
		Destination:    rom[0x014A],
		OldLicensee:    rom[0x014B],
		Revision:       rom[0x014C],
		HeaderChecksum: rom[0x014D],
		GlobalChecksum: binary.BigEndian.Uint16(rom[0x014E:0x0150]),
	}
	return h, nil
}

// decodeTitle splits the title area into the title and the game code.
// Game Boy Color compatible games repurpose the last title byte as the CGB
// flag, newer ones also the four bytes before it as the game code.
func decodeTitle(raw []byte) (string, string) {
	var code string
	if raw[15] >= 0x80 {
		raw = raw[:15]
		if maybeCode := raw[11:15]; isAlphanumeric(maybeCode) {
			code = string(maybeCode)
			raw = raw[:11]
		}
	}

	title, _, _ := strings.Cut(string(raw), "\x00")
	return title, code
}

func isAlphanumeric(b []byte) bool {
	for _, c := range b {
		switch {
		case c >= '0' && c <= '9', c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z':
		default:
			return false
		}
	}
	return true
}

// Licensee returns the licensee code, either the old one byte code or the
// two character new code when the old code is 0x33.
func (h *Header) Licensee() string {
	if h.OldLicensee == 0x33 {
		return h.NewLicensee
	}
	return fmt.Sprintf("%02X", h.OldLicensee)
}

// IsSGB returns whether the ROM uses Super Game Boy features.
func (h *Header) IsSGB() bool {
	return h.SGBFlag == 0x03
}

// IsGBC returns whether the ROM uses Game Boy Color features.
func (h *Header) IsGBC() bool {
	return h.CGBFlag&0xBF == 0x80
}

// IsGBCOnly returns whether the ROM only runs on a Game Boy Color.
func (h *Header) IsGBCOnly() bool {
	return h.CGBFlag == 0xC0
}

// IsJapan returns whether the ROM is a Japanese release.
func (h *Header) IsJapan() bool {
	return h.Destination == 0
}

// VerifyChecksum returns whether the global checksum matches the ROM
// contents. The checksum is the sum of every byte except the two checksum bytes.
func (h *Header) VerifyChecksum(rom []byte) bool {
	var sum uint16
	for i, b := range rom {
		if i == 0x014E || i == 0x014F {
			continue
		}
		sum += uint16(b)
	}
	return sum == h.GlobalChecksum
}

// HeaderChecksumOK returns whether the header checksum at 0x014D is valid.
func HeaderChecksumOK(rom []byte) bool {
	if len(rom) < 0x014E {
		return false
	}
	var sum byte
	for addr := 0x0134; addr <= 0x014C; addr++ {
		sum = sum - rom[addr] - 1
	}
	return sum == rom[0x014D]
}
