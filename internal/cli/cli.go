// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/FutureFractal/g1utils/internal/detector"
	"github.com/FutureFractal/g1utils/internal/export"
	"github.com/FutureFractal/g1utils/internal/memory"
	"github.com/FutureFractal/g1utils/internal/options"
	"github.com/FutureFractal/g1utils/internal/writer"
)

// maxSRAMBank is the highest bank number a cartridge RAM bank register holds.
const maxSRAMBank = 0xFF

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	var ptr string
	var sramBank int
	readOptionFlags(flags, &opts, &ptr, &sramBank)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Input == "" && opts.Batch == "") {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	if opts.Input == "" && opts.Batch == "" {
		opts.Input = args[0]
	}

	opts.SRAMBank = memory.NoBank
	if sramBank >= 0 {
		opts.SRAMBank = memory.Bank(sramBank)
	}

	if ptr != "" {
		opts.Pointer, err = memory.ParsePointer(ptr)
		if err != nil {
			if opts.Symbols == "" {
				return opts, fmt.Errorf("parsing -ptr: %w", err)
			}
			opts.Pointer = memory.Pointer{Bank: memory.NoBank}
			opts.Symbol = ptr
		}
	}

	if err := normalizeOptions(&opts, ptr != ""); err != nil {
		return opts, err
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: g1utils [options] <ROM or save file>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after input file, please pass the input file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program, hasPointer bool) error {
	opts.Command = strings.ToLower(opts.Command)
	if !slices.Contains(options.Commands, opts.Command) {
		return fmt.Errorf("unsupported command: %s. Valid options: %s",
			opts.Command, strings.Join(options.Commands, ", "))
	}

	if opts.Command != options.CommandInfo && !hasPointer {
		return fmt.Errorf("command %s requires a -ptr argument", opts.Command)
	}
	if opts.Length <= 0 {
		return fmt.Errorf("invalid byte count %d", opts.Length)
	}
	if opts.Scale < 1 {
		return fmt.Errorf("invalid scale factor %d", opts.Scale)
	}

	if opts.SRAMBank > maxSRAMBank {
		return fmt.Errorf("invalid SRAM bank %d, the highest bank is %d", opts.SRAMBank, maxSRAMBank)
	}

	opts.Palette = strings.ToLower(opts.Palette)
	if _, err := export.PaletteByName(opts.Palette); err != nil {
		// a pointer to a palette stored in the image
		if _, perr := memory.ParsePointer(opts.Palette); perr != nil {
			return err
		}
	}

	opts.Format = strings.ToLower(opts.Format)
	if !slices.Contains(writer.Formats, opts.Format) {
		return fmt.Errorf("unsupported dump format: %s. Valid options: %s",
			opts.Format, strings.Join(writer.Formats, ", "))
	}

	opts.Kind = strings.ToLower(opts.Kind)
	if opts.Kind != "" {
		if _, ok := detector.KindFromString(opts.Kind); !ok {
			return fmt.Errorf("unsupported input kind: %s. Valid options: %s",
				opts.Kind, strings.Join(detector.KindNames, ", "))
		}
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program, ptr *string, sramBank *int) {
	flags.StringVar(&opts.Input, "i", "", "name of the input ROM or battery save file")
	flags.StringVar(&opts.Save, "sav", "", "name of a battery save file to load as cartridge RAM of the ROM")
	flags.StringVar(&opts.Symbols, "sym", "", "name of an rgbds .sym file, allows symbol names for -ptr")
	flags.StringVar(&opts.Output, "o", "", "name of the output file, generated from the input name if not given")
	flags.StringVar(&opts.Batch, "batch", "", "process a batch of given path and file mask with automatic output file naming, for example *.gb")
	flags.StringVar(&opts.Command, "cmd", options.CommandInfo, "command to run (info/dump/sprite)")
	flags.StringVar(&opts.Kind, "kind", "", "kind of the input file (rom, sav) - if not auto-detected from file extension")
	flags.StringVar(&opts.Palette, "palette", export.PaletteGray, "palette of exported sprites (gray/inverted) or bank:address of an RGB555 palette in the image")
	flags.StringVar(&opts.Format, "format", writer.FormatHex, "output format of dumps (hex/db)")
	flags.StringVar(ptr, "ptr", "", "bank:address or symbol name of the data to extract, for example 0E:4000")
	flags.IntVar(sramBank, "sram-bank", -1, "SRAM bank used for reads that reach cartridge RAM")
	flags.IntVar(&opts.Length, "n", 256, "number of bytes to dump")
	flags.IntVar(&opts.Scale, "scale", 1, "integer scale factor of exported images")
	flags.BoolVar(&opts.Canvas, "canvas", false, "place sprites on the 7x7 tile canvas used by the game")
	flags.BoolVar(&opts.NoOffsets, "nooffsets", false, "do not output addresses in comments of db dumps")
	flags.BoolVar(&opts.Partial, "partial", false, "stop at unmapped memory instead of failing")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
