package memory

import (
	"fmt"
	"strconv"
	"strings"
)

// Bank is the number of a switchable memory bank.
type Bank int

// NoBank marks a bank as not specified.
const NoBank Bank = -1

// Valid returns whether the bank is specified.
func (b Bank) Valid() bool {
	return b >= 0
}

// Banks is the bank context of a read, used for every switchable region the
// read touches.
type Banks struct {
	ROM  Bank
	SRAM Bank
}

// NoBanks is a bank context that allows reading unbanked regions only.
var NoBanks = Banks{ROM: NoBank, SRAM: NoBank}

// ROMBank returns a bank context with the given ROM bank and no SRAM bank.
func ROMBank(n int) Banks {
	return Banks{ROM: Bank(n), SRAM: NoBank}
}

// SRAMBank returns a bank context with the given SRAM bank and no ROM bank.
func SRAMBank(n int) Banks {
	return Banks{ROM: NoBank, SRAM: Bank(n)}
}

// Pointer is a banked address. The bank applies to ROMX or SRAM, depending on
// the window the address falls in.
type Pointer struct {
	Bank    Bank
	Address uint16
}

// Banks returns the bank context to read the pointer with.
func (p Pointer) Banks() Banks {
	if RegionOf(p.Address) == SRAM {
		return Banks{ROM: NoBank, SRAM: p.Bank}
	}
	return Banks{ROM: p.Bank, SRAM: NoBank}
}

// Add returns the pointer moved by n bytes within the same bank.
func (p Pointer) Add(n int) Pointer {
	return Pointer{Bank: p.Bank, Address: uint16(int(p.Address) + n)}
}

func (p Pointer) String() string {
	if !p.Bank.Valid() {
		return fmt.Sprintf("$%04X", p.Address)
	}
	return fmt.Sprintf("%02X:%04X", int(p.Bank), p.Address)
}

// ParsePointer parses a banked address like 0E:4000 or an unbanked address
// like C000. Both parts are hexadecimal and may carry a $ or 0x prefix.
func ParsePointer(s string) (Pointer, error) {
	p := Pointer{Bank: NoBank}

	bankPart, addrPart, banked := strings.Cut(s, ":")
	if !banked {
		addrPart = bankPart
	} else {
		bank, err := parseHex(bankPart, 16)
		if err != nil {
			return p, fmt.Errorf("invalid bank '%s': %w", bankPart, err)
		}
		p.Bank = Bank(bank)
	}

	addr, err := parseHex(addrPart, 16)
	if err != nil {
		return p, fmt.Errorf("invalid address '%s': %w", addrPart, err)
	}
	p.Address = uint16(addr)
	return p, nil
}

func parseHex(s string, bitSize int) (uint64, error) {
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimPrefix(strings.ToLower(s), "0x")
	return strconv.ParseUint(s, 16, bitSize)
}

// ROMSize is the ROM size code stored in the cartridge header at 0x0148.
type ROMSize byte

// RAMSize is the cartridge RAM size code stored in the cartridge header at 0x0149.
type RAMSize byte

// ROMBankMask returns the mask applied to ROM bank numbers for a ROM size code.
func ROMBankMask(size ROMSize) (uint, bool) {
	switch size {
	case 0x00: // 32KB
		return 0x0001, true
	case 0x01: // 64KB
		return 0x0003, true
	case 0x02: // 128KB
		return 0x0007, true
	case 0x03: // 256KB
		return 0x000F, true
	case 0x04: // 512KB
		return 0x001F, true
	case 0x05: // 1MB
		return 0x003F, true
	case 0x06: // 2MB
		return 0x007F, true
	case 0x07: // 4MB
		return 0x00FF, true
	case 0x08: // 8MB
		return 0x01FF, true
	case 0x52, 0x53, 0x54: // 1.1MB, 1.2MB, 1.5MB
		return 0x007F, true
	default:
		return 0, false
	}
}

// ROMBanks returns the number of 16KB ROM banks for a ROM size code.
func ROMBanks(size ROMSize) int {
	switch size {
	case 0x52:
		return 72
	case 0x53:
		return 80
	case 0x54:
		return 96
	}
	mask, ok := ROMBankMask(size)
	if !ok {
		return 0
	}
	return int(mask) + 1
}

// SRAMBankMask returns the mask applied to SRAM bank numbers for a RAM size
// code. Carts without RAM have no mask.
func SRAMBankMask(size RAMSize) (uint, bool) {
	switch size {
	case 0x02: // 8KB
		return 0x0, true
	case 0x03: // 32KB
		return 0x3, true
	case 0x04: // 128KB
		return 0xF, true
	case 0x05: // 64KB
		return 0x7, true
	default:
		return 0, false
	}
}
