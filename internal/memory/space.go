package memory

import (
	"errors"
	"fmt"
)

const (
	wramSize = 0x2000
	highSize = 0x200 // OAM at 0xFE00 and IO/HRAM at 0xFF00
)

// Space is an immutable Game Boy memory image. Each region buffer may be
// absent, reads of absent regions fail with ErrUnmapped.
type Space struct {
	rom  []byte
	vram []byte
	sram []byte
	wram []byte
	high []byte

	header      *Header
	title       string
	gbc         bool
	romMask     uint
	sramMask    uint
	hasSRAMMask bool
}

// Option configures a Space during construction.
type Option func(*Space)

// WithROM sets the cartridge ROM contents.
func WithROM(rom []byte) Option {
	return func(s *Space) { s.rom = rom }
}

// WithVRAM sets the video RAM contents.
func WithVRAM(vram []byte) Option {
	return func(s *Space) { s.vram = vram }
}

// WithSRAM sets the cartridge RAM contents, as stored in a battery save file.
func WithSRAM(sram []byte) Option {
	return func(s *Space) { s.sram = sram }
}

// WithWRAM sets the work RAM contents.
func WithWRAM(wram []byte) Option {
	return func(s *Space) { s.wram = wram }
}

// WithHigh sets the contents of the high page 0xFE00-0xFFFF. Byte 0 maps to
// 0xFE00, byte 0x100 maps to 0xFF00.
func WithHigh(high []byte) Option {
	return func(s *Space) { s.high = high }
}

// WithTitle overrides the title taken from the ROM header.
func WithTitle(title string) Option {
	return func(s *Space) { s.title = title }
}

// WithGBC marks the image as taken from a Game Boy Color.
func WithGBC(gbc bool) Option {
	return func(s *Space) { s.gbc = gbc }
}

// New creates a memory image from the given regions.
// A ROM must contain a valid cartridge header.
func New(opts ...Option) (*Space, error) {
	s := &Space{}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.initialize(); err != nil {
		return nil, err
	}
	return s, nil
}

// Derive creates a memory image that takes every region not set by opts from
// base. This combines for example a ROM image with a battery save.
func Derive(base *Space, opts ...Option) (*Space, error) {
	s := &Space{
		rom:   base.rom,
		vram:  base.vram,
		sram:  base.sram,
		wram:  base.wram,
		high:  base.high,
		title: base.title,
		gbc:   base.gbc,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.initialize(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Space) initialize() error {
	if len(s.wram) > wramSize {
		return fmt.Errorf("WRAM size %d exceeds %d bytes", len(s.wram), wramSize)
	}
	if len(s.high) > highSize {
		return fmt.Errorf("high page size %d exceeds %d bytes", len(s.high), highSize)
	}
	if s.rom == nil {
		return nil
	}

	header, err := ParseHeader(s.rom)
	if err != nil {
		return fmt.Errorf("parsing cartridge header: %w", err)
	}
	mask, ok := ROMBankMask(header.ROMSize)
	if !ok {
		return fmt.Errorf("unsupported ROM size code 0x%02X", byte(header.ROMSize))
	}

	s.header = header
	s.romMask = mask
	s.sramMask, s.hasSRAMMask = SRAMBankMask(header.RAMSize)
	if s.title == "" {
		s.title = header.Title
	}
	return nil
}

// Header returns the cartridge header, or nil if no ROM is loaded.
func (s *Space) Header() *Header {
	return s.header
}

// Title returns the title of the memory image.
func (s *Space) Title() string {
	return s.title
}

// IsGBC returns whether the image was taken from or targets a Game Boy Color.
func (s *Space) IsGBC() bool {
	return s.gbc || (s.header != nil && s.header.IsGBC())
}

// ROMBankMask returns the mask applied to ROM bank numbers.
func (s *Space) ROMBankMask() uint {
	return s.romMask
}

// ROM returns the raw ROM contents. The returned slice must not be modified.
func (s *Space) ROM() []byte {
	return s.rom
}

// HasROM returns whether a ROM is loaded.
func (s *Space) HasROM() bool { return s.rom != nil }

// HasVRAM returns whether video RAM is loaded.
func (s *Space) HasVRAM() bool { return s.vram != nil }

// HasSRAM returns whether cartridge RAM is loaded.
func (s *Space) HasSRAM() bool { return s.sram != nil }

// HasWRAM returns whether work RAM is loaded.
func (s *Space) HasWRAM() bool { return s.wram != nil }

// HasHigh returns whether the high page is loaded.
func (s *Space) HasHigh() bool { return s.high != nil }

// HasAddress returns whether the region containing addr is loaded.
// It does not check banks or buffer bounds.
func (s *Space) HasAddress(addr uint16) bool {
	switch RegionOf(addr) {
	case ROM0, ROMX:
		return s.rom != nil
	case VRAM:
		return s.vram != nil
	case SRAM:
		return s.sram != nil
	case WRAM:
		return s.wram != nil
	case HRAM:
		return s.high != nil
	default:
		return false
	}
}

// resolve maps an address to the backing bytes from addr up to the end of its
// contiguous window. It returns the data and the address following it, which
// can be 0x10000 for the last window.
func (s *Space) resolve(b Banks, addr uint16) ([]byte, uint32, error) {
	region := RegionOf(addr)

	var buf []byte
	var offset int
	var end uint32

	switch region {
	case ROM0:
		buf, offset, end = s.rom, int(addr), 0x4000

	case ROMX:
		if !b.ROM.Valid() {
			return nil, 0, bankRequired(addr, region)
		}
		bank := uint(b.ROM) & s.romMask
		if bank > uint(len(s.rom)>>14) {
			return nil, 0, unmapped(addr, region)
		}
		buf, offset, end = s.rom, int(addr&0x3FFF)|int(bank)<<14, 0x8000

	case VRAM:
		buf, offset, end = s.vram, int(addr&0x1FFF), 0xA000

	case SRAM:
		if !b.SRAM.Valid() {
			return nil, 0, bankRequired(addr, region)
		}
		bank := uint(b.SRAM)
		if s.hasSRAMMask {
			bank &= s.sramMask
		}
		if bank > uint(len(s.sram)>>13) {
			return nil, 0, unmapped(addr, region)
		}
		buf, offset, end = s.sram, int(addr&0x1FFF)|int(bank)<<13, 0xC000

	case WRAM:
		end = 0xE000
		if addr >= 0xE000 {
			end = 0xFE00 // echo RAM
		}
		buf, offset = s.wram, int(addr&0x1FFF)

	case HRAM:
		end = 0x10000
		if addr < 0xFF00 {
			end = 0xFEA0 // OAM
		}
		buf, offset = s.high, int(addr&0x1FF)

	default:
		return nil, 0, unmapped(addr, region)
	}

	if offset >= len(buf) {
		return nil, 0, unmapped(addr, region)
	}

	n := int(end - uint32(addr))
	if rest := len(buf) - offset; rest < n {
		n = rest
		end = uint32(addr) + uint32(n)
	}
	return buf[offset : offset+n], end, nil
}

// Read8 reads a byte.
func (s *Space) Read8(b Banks, addr uint16) (byte, error) {
	data, _, err := s.resolve(b, addr)
	if err != nil {
		return 0, err
	}
	return data[0], nil
}

// Read8Or reads a byte and returns def if the address can not be read.
func (s *Space) Read8Or(b Banks, addr uint16, def byte) byte {
	v, err := s.Read8(b, addr)
	if err != nil {
		return def
	}
	return v
}

// Read16 reads a little endian word. If the word straddles two windows, the
// high byte is resolved separately from addr+1 using the same banks.
func (s *Space) Read16(b Banks, addr uint16) (uint16, error) {
	data, _, err := s.resolve(b, addr)
	if err != nil {
		return 0, err
	}
	if len(data) >= 2 {
		return uint16(data[0]) | uint16(data[1])<<8, nil
	}

	high, err := s.Read8(b, addr+1)
	if err != nil {
		return 0, err
	}
	return uint16(data[0]) | uint16(high)<<8, nil
}

// Read16Or reads a little endian word and returns def if it can not be read.
func (s *Space) Read16Or(b Banks, addr uint16, def uint16) uint16 {
	v, err := s.Read16(b, addr)
	if err != nil {
		return def
	}
	return v
}

// ReadBytes reads length bytes starting at addr, crossing window boundaries
// with the same banks. If an unreadable address is reached and allowPartial
// is set, the bytes read up to it are returned without error.
func (s *Space) ReadBytes(b Banks, addr uint16, length int, allowPartial bool) ([]byte, error) {
	if length < 0 {
		return nil, fmt.Errorf("invalid read length %d", length)
	}
	buf := make([]byte, length)
	n, err := s.CopyBytes(b, addr, buf, allowPartial)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

// CopyBytes fills dst with the bytes starting at addr and returns the number
// of bytes copied. The partial read semantics match ReadBytes.
func (s *Space) CopyBytes(b Banks, addr uint16, dst []byte, allowPartial bool) (int, error) {
	copied := 0
	for copied < len(dst) {
		data, end, err := s.resolve(b, addr)
		if err != nil {
			if allowPartial {
				break
			}
			return copied, err
		}
		copied += copy(dst[copied:], data)
		addr = uint16(end)
	}
	return copied, nil
}

// Cursor returns a cursor reading from addr with the given banks.
// With allowPartial set, the cursor reports io.EOF instead of an address
// error when it reaches unreadable memory.
func (s *Space) Cursor(b Banks, addr uint16, allowPartial bool) *Cursor {
	c := &Cursor{
		space:        s,
		banks:        b,
		allowPartial: allowPartial,
	}
	c.moveTo(addr)
	return c
}

// IsAddressError returns whether err is caused by an unreadable address,
// which callers usually treat as missing or garbage data.
func IsAddressError(err error) bool {
	return errors.Is(err, ErrUnmapped) || errors.Is(err, ErrBankRequired)
}
