// Package memory provides a bank aware view of a Game Boy memory image.
//
// # Address Space
//
// The Game Boy CPU sees a 16-bit address space that is split into fixed
// windows, each mapped to one kind of memory:
//   - 0x0000-0x3FFF: ROM bank 0 (ROM0)
//   - 0x4000-0x7FFF: switchable ROM bank (ROMX)
//   - 0x8000-0x9FFF: video RAM (VRAM)
//   - 0xA000-0xBFFF: switchable cartridge RAM (SRAM)
//   - 0xC000-0xFDFF: work RAM, including its echo at 0xE000 (WRAM)
//   - 0xFE00-0xFE9F: object attribute memory, stored with the high page (HRAM)
//   - 0xFEA0-0xFEFF: unusable, always unmapped
//   - 0xFF00-0xFFFF: IO registers and high RAM (HRAM)
//
// A memory image does not need to contain every region. A ROM file only fills
// ROM0 and ROMX, a battery save only fills SRAM. Reading a region that was not
// loaded fails with ErrUnmapped, reading a switchable region without giving
// its bank fails with ErrBankRequired.
//
// # Pointers
//
// Data inside a cartridge is addressed by a (bank, address) pair, represented
// by Pointer. Reads take a Banks value holding the ROM and SRAM bank to use for
// every switchable region they touch, so a read that runs from ROM0 into ROMX
// or from VRAM into SRAM keeps using the same bank context.
//
// # Cursors
//
// Cursor is a movable read position for sequential decoding. It caches the
// region it is reading from and re-resolves the following region once the
// cached one is exhausted. A cursor opened with allowPartial reports io.EOF
// instead of an address error when it runs into unmapped memory, which lets
// callers treat it as a finite stream that may end early.
//
// A Space is immutable after construction and can be shared by any number of
// cursors. A Cursor must not be used concurrently.
package memory
