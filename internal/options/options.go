// Package options contains the program options.
package options

import "github.com/FutureFractal/g1utils/internal/memory"

// Commands selecting what to extract from an image.
const (
	CommandInfo   = "info"
	CommandDump   = "dump"
	CommandSprite = "sprite"
)

// Commands lists all supported commands.
var Commands = []string{CommandInfo, CommandDump, CommandSprite}

// Parameters contains file path options.
type Parameters struct {
	Input   string `flag:"i" usage:"input ROM or battery save file"`
	Save    string `flag:"sav" usage:"battery save file to use as cartridge RAM of the ROM"`
	Symbols string `flag:"sym" usage:"rgbds symbol file used to resolve and name addresses"`
	Output  string `flag:"o" usage:"output file (default: generated from input name)"`
	Batch   string `flag:"batch" usage:"batch process files matching pattern (e.g. *.gb)"`
}

// Flags contains behavior options.
type Flags struct {
	Command string `flag:"cmd" usage:"command: info, dump, sprite" default:"info"`
	Kind    string `flag:"kind" usage:"input kind: rom, sav (default: auto-detect)"`
	Palette string `flag:"palette" usage:"sprite palette: gray, inverted" default:"gray"`
	Format  string `flag:"format" usage:"dump format: hex, db" default:"hex"`
	Debug   bool   `flag:"debug" usage:"enable debug logging"`
	Quiet   bool   `flag:"q" usage:"quiet mode"`
}

// Extract contains options selecting the data to extract.
type Extract struct {
	Pointer  memory.Pointer `flag:"ptr" usage:"bank:address or symbol name of the data to extract"`
	Symbol   string         // symbol name given instead of an address
	SRAMBank memory.Bank    `flag:"sram-bank" usage:"SRAM bank for reads that reach cartridge RAM"`
	Length   int            `flag:"n" usage:"number of bytes to dump" default:"256"`
	Canvas   bool           `flag:"canvas" usage:"place sprites on the 7x7 tile canvas"`
	Scale    int            `flag:"scale" usage:"integer scale factor of exported images" default:"1"`
	Partial  bool           `flag:"partial" usage:"stop at unmapped memory instead of failing"`

	NoOffsets bool `flag:"nooffsets" usage:"do not output addresses in comments of db dumps"`
}

// Banks returns the bank context for reads starting at the pointer.
// The SRAM bank option applies when the pointer itself does not set one.
func (e Extract) Banks() memory.Banks {
	b := e.Pointer.Banks()
	if !b.SRAM.Valid() {
		b.SRAM = e.SRAMBank
	}
	return b
}

// Program options of the extractor.
type Program struct {
	Parameters
	Flags
	Extract
}
