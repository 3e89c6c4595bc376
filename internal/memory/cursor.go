package memory

import (
	"errors"
	"fmt"
	"io"
)

// Cursor reads sequentially from a Space. It caches the window it is reading
// from and resolves the following window with the same banks once the cached
// one is exhausted.
type Cursor struct {
	space        *Space
	banks        Banks
	allowPartial bool

	view []byte // backing bytes of the current window
	pos  int    // offset of the next unread byte in view
	end  uint32 // address following the last byte of view
}

var _ io.ByteReader = (*Cursor)(nil)

// moveTo positions the cursor at addr. Resolution errors are not reported
// here but by the next read, which resolves the address again.
func (c *Cursor) moveTo(addr uint16) {
	data, end, err := c.space.resolve(c.banks, addr)
	if err != nil {
		c.view, c.pos, c.end = nil, 0, uint32(addr)
		return
	}
	c.view, c.pos, c.end = data, 0, end
}

// advance resolves the window starting at the current address.
func (c *Cursor) advance() error {
	data, end, err := c.space.resolve(c.banks, c.Address())
	if err != nil {
		if c.allowPartial {
			return io.EOF
		}
		return err
	}
	c.view, c.pos, c.end = data, 0, end
	return nil
}

// Address returns the address of the next byte to read.
func (c *Cursor) Address() uint16 {
	return uint16(c.end - uint32(len(c.view)-c.pos))
}

// Banks returns the bank context of the cursor.
func (c *Cursor) Banks() Banks {
	return c.banks
}

// Pointer returns the current position as a pointer. The bank is the one
// that applies to the current address.
func (c *Cursor) Pointer() Pointer {
	addr := c.Address()
	if RegionOf(addr) == SRAM {
		return Pointer{Bank: c.banks.SRAM, Address: addr}
	}
	return Pointer{Bank: c.banks.ROM, Address: addr}
}

// ReadByte returns the next byte.
func (c *Cursor) ReadByte() (byte, error) {
	if c.pos >= len(c.view) {
		if err := c.advance(); err != nil {
			return 0, err
		}
	}
	b := c.view[c.pos]
	c.pos++
	return b, nil
}

// ReadWord returns the next little endian word. If the end of a partial
// cursor is reached after the first byte, io.ErrUnexpectedEOF is returned.
func (c *Cursor) ReadWord() (uint16, error) {
	if c.pos+2 <= len(c.view) {
		v := uint16(c.view[c.pos]) | uint16(c.view[c.pos+1])<<8
		c.pos += 2
		return v, nil
	}

	low, err := c.ReadByte()
	if err != nil {
		return 0, err
	}
	high, err := c.ReadByte()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, io.ErrUnexpectedEOF
		}
		return 0, err
	}
	return uint16(low) | uint16(high)<<8, nil
}

// ReadBytes returns the next n bytes. A partial cursor returns fewer bytes
// when it reaches unreadable memory and io.EOF if no byte could be read.
// The cursor is moved by n bytes in either case.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("invalid read length %d", n)
	}
	if c.pos+n <= len(c.view) {
		data := make([]byte, n)
		copy(data, c.view[c.pos:])
		c.pos += n
		return data, nil
	}

	addr := c.Address()
	data, err := c.space.ReadBytes(c.banks, addr, n, c.allowPartial)
	if err != nil {
		return nil, err
	}
	c.moveTo(uint16(int(addr) + n))

	if len(data) == 0 && n > 0 {
		return nil, io.EOF
	}
	return data, nil
}

// Skip moves the cursor forward by n bytes.
func (c *Cursor) Skip(n int) {
	if n >= 0 && c.pos+n < len(c.view) {
		c.pos += n
		return
	}
	c.moveTo(uint16(int(c.Address()) + n))
}

// Seek moves the cursor to addr. Banks of b that are not NoBank replace the
// banks of the cursor.
func (c *Cursor) Seek(b Banks, addr uint16) {
	if b.ROM.Valid() {
		c.banks.ROM = b.ROM
	}
	if b.SRAM.Valid() {
		c.banks.SRAM = b.SRAM
	}
	c.moveTo(addr)
}
