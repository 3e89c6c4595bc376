package memory

// Region is a fixed CPU address window mapped to one kind of memory.
type Region uint8

// Regions of the Game Boy address space.
const (
	ROM0 Region = iota
	ROMX
	VRAM
	SRAM
	WRAM
	HRAM
	Unusable
)

var regionNames = [...]string{
	ROM0:     "rom0",
	ROMX:     "romx",
	VRAM:     "vram",
	SRAM:     "sram",
	WRAM:     "wram",
	HRAM:     "hram",
	Unusable: "unmapped",
}

func (r Region) String() string {
	if int(r) < len(regionNames) {
		return regionNames[r]
	}
	return "unknown"
}

// Banked returns whether reads of the region need a bank number.
func (r Region) Banked() bool {
	return r == ROMX || r == SRAM
}

// RegionOf returns the region that the address belongs to.
func RegionOf(addr uint16) Region {
	switch {
	case addr < 0x4000:
		return ROM0
	case addr < 0x8000:
		return ROMX
	case addr < 0xA000:
		return VRAM
	case addr < 0xC000:
		return SRAM
	case addr < 0xFE00:
		return WRAM
	case addr < 0xFEA0, addr >= 0xFF00:
		return HRAM
	default:
		return Unusable
	}
}

// RegionName returns a finer grained name of the memory area of an address
// than RegionOf, separating echo RAM, OAM, IO registers and high RAM.
func RegionName(addr uint16) string {
	switch {
	case addr < 0xE000:
		return RegionOf(addr).String()
	case addr < 0xFE00:
		return "echoram"
	case addr < 0xFEA0:
		return "oam"
	case addr < 0xFF00:
		return "unmapped"
	case addr < 0xFF80, addr == 0xFFFF:
		return "io"
	default:
		return "hram"
	}
}

var ioRegisterNames = map[uint8]string{
	0x00: "JOYP",
	0x01: "SB",
	0x02: "SC",
	0x04: "DIV",
	0x05: "TIMA",
	0x06: "TMA",
	0x07: "TMC",
	0x0F: "IF",
	0x10: "NR10",
	0x11: "NR11",
	0x12: "NR12",
	0x13: "NR13",
	0x14: "NR14",
	0x16: "NR21",
	0x17: "NR22",
	0x18: "NR23",
	0x19: "NR24",
	0x1A: "NR30",
	0x1B: "NR31",
	0x1C: "NR32",
	0x1D: "NR33",
	0x1E: "NR34",
	0x20: "NR41",
	0x21: "NR42",
	0x22: "NR43",
	0x23: "NR44",
	0x24: "NR50",
	0x25: "NR51",
	0x26: "NR52",
	0x40: "LCDC",
	0x41: "STAT",
	0x42: "SCY",
	0x43: "SCX",
	0x44: "LY",
	0x45: "LYC",
	0x46: "DMA",
	0x47: "BGP",
	0x48: "OBP0",
	0x49: "OBP1",
	0x4A: "WY",
	0x4B: "WX",
	0xFF: "IE",
}

// registers that only exist on the Game Boy Color
var cgbIORegisterNames = map[uint8]string{
	0x4D: "KEY1",
	0x4F: "VBK",
	0x51: "HDMA1",
	0x52: "HDMA2",
	0x53: "HDMA3",
	0x54: "HDMA4",
	0x55: "HDMA5",
	0x56: "RP",
	0x68: "BGPI",
	0x69: "BGPD",
	0x6A: "OBPI",
	0x6B: "OBPD",
	0x6C: "UNKNOWN1",
	0x70: "SVBK",
	0x72: "UNKNOWN2",
	0x73: "UNKNOWN3",
	0x74: "UNKNOWN4",
	0x75: "UNKNOWN5",
	0x76: "UNKNOWN6",
	0x77: "UNKNOWN7",
}

// IORegisterName returns the name of the hardware register at addr,
// or false if the address is not a known register.
func IORegisterName(addr uint16, cgb bool) (string, bool) {
	if addr < 0xFF00 {
		return "", false
	}
	reg := uint8(addr)
	if name, ok := ioRegisterNames[reg]; ok {
		return name, true
	}
	if cgb {
		name, ok := cgbIORegisterNames[reg]
		return name, ok
	}
	return "", false
}
