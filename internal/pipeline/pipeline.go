// Package pipeline orchestrates the extraction workflow stages.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/FutureFractal/g1utils/internal/detector"
	"github.com/FutureFractal/g1utils/internal/export"
	"github.com/FutureFractal/g1utils/internal/loader"
	"github.com/FutureFractal/g1utils/internal/memory"
	"github.com/FutureFractal/g1utils/internal/options"
	"github.com/FutureFractal/g1utils/internal/sprite"
	"github.com/FutureFractal/g1utils/internal/symbols"
	textwriter "github.com/FutureFractal/g1utils/internal/writer"
	"github.com/retroenv/retrogolib/log"
)

// dumpLineSize is the number of bytes read per dump line.
const dumpLineSize = 16

// Pipeline orchestrates the complete extraction workflow.
type Pipeline struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
}

// New creates a new extraction pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(),
	}
}

// Execute loads the input file and runs the selected command on it.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, writer io.Writer) error {
	kind := p.detector.Detect(opts)

	img, err := p.loader.Load(opts, kind)
	if err != nil {
		return fmt.Errorf("loading image: %w", err)
	}
	defer p.logger.Closer(img, "Closing memory image")

	return p.ExecuteWithSpace(ctx, img.Space, opts, writer)
}

// ExecuteWithSpace runs the selected command on an already loaded memory image.
// This is useful for testing and programmatic usage where the image is already in memory.
func (p *Pipeline) ExecuteWithSpace(ctx context.Context, space *memory.Space, opts options.Program, writer io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	syms, err := p.loadSymbols(opts)
	if err != nil {
		return err
	}
	if opts.Symbol != "" {
		ptr, ok := syms.Resolve(opts.Symbol)
		if !ok {
			return fmt.Errorf("unknown symbol '%s'", opts.Symbol)
		}
		opts.Pointer = ptr
	}

	p.printInfo(opts, space)

	switch opts.Command {
	case options.CommandInfo:
		return p.writeInfo(space, writer)
	case options.CommandDump:
		return p.dump(ctx, space, syms, opts, writer)
	case options.CommandSprite:
		return p.exportSprite(space, opts, writer)
	default:
		return fmt.Errorf("unsupported command '%s'", opts.Command)
	}
}

// loadSymbols loads the symbol file given in the options, if any.
func (p *Pipeline) loadSymbols(opts options.Program) (*symbols.Manager, error) {
	if opts.Symbols == "" {
		return nil, nil
	}

	syms, err := symbols.LoadFile(opts.Symbols)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("Loaded symbols",
		log.String("file", opts.Symbols),
		log.Int("count", syms.Len()))
	return syms, nil
}

// writeInfo writes the cartridge header and the loaded regions.
func (p *Pipeline) writeInfo(space *memory.Space, writer io.Writer) error {
	var lines []string
	add := func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}

	add("title:      %s", space.Title())
	if h := space.Header(); h != nil {
		rom := space.ROM()
		if h.Code != "" {
			add("code:       %s", h.Code)
		}
		add("licensee:   %s", h.Licensee())
		add("cartridge:  %s", h.CartType)
		add("ROM size:   $%02X (%d banks, %d bytes loaded)", byte(h.ROMSize), memory.ROMBanks(h.ROMSize), len(rom))
		add("RAM size:   $%02X", byte(h.RAMSize))
		add("SGB:        %t", h.IsSGB())
		add("GBC:        %t", h.IsGBC())
		add("japan:      %t", h.IsJapan())
		add("revision:   %d", h.Revision)
		add("header sum: $%02X (%s)", h.HeaderChecksum, checksumStatus(memory.HeaderChecksumOK(rom)))
		add("global sum: $%04X (%s)", h.GlobalChecksum, checksumStatus(h.VerifyChecksum(rom)))
	}

	regions := []struct {
		region memory.Region
		loaded bool
	}{
		{memory.ROM0, space.HasROM()},
		{memory.ROMX, space.HasROM()},
		{memory.VRAM, space.HasVRAM()},
		{memory.SRAM, space.HasSRAM()},
		{memory.WRAM, space.HasWRAM()},
		{memory.HRAM, space.HasHigh()},
	}
	for _, r := range regions {
		if r.loaded {
			add("region:     %s", r.region)
		}
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(writer, line); err != nil {
			return fmt.Errorf("writing info: %w", err)
		}
	}
	return nil
}

func checksumStatus(ok bool) string {
	if ok {
		return "ok"
	}
	return "mismatch"
}

// dump writes the requested bytes in the selected dump format. Lines are
// split at known symbols, which are written as labels. With partial reads
// enabled the dump ends early at the first unreadable address.
func (p *Pipeline) dump(ctx context.Context, space *memory.Space, syms *symbols.Manager,
	opts options.Program, writer io.Writer) error {

	w := textwriter.New(writer, textwriter.Options{
		Format:          opts.Format,
		DirectivePrefix: "\t",
		OffsetComments:  !opts.NoOffsets,
	})
	cursor := space.Cursor(opts.Banks(), opts.Pointer.Address, opts.Partial)

	for remaining, first := opts.Length, true; remaining > 0; first = false {
		if err := ctx.Err(); err != nil {
			return err
		}

		ptr := cursor.Pointer()
		name, ok := syms.Get(ptr)
		if !ok && first {
			name, ok = dumpLabel(ptr, space.IsGBC()), true
		}
		if ok {
			if err := w.WriteLabel(name, ptr); err != nil {
				return err
			}
		}

		n := min(remaining, dumpLineSize)
		if next, ok := syms.Next(ptr); ok {
			if dist := int(next.Pointer.Address) - int(ptr.Address); dist > 0 && dist < n {
				n = dist
			}
		}

		data, err := cursor.ReadBytes(n)
		if err != nil {
			if errors.Is(err, io.EOF) {
				p.logger.Warn("Dump reached unmapped memory",
					log.Stringer("pointer", ptr),
					log.String("area", memory.RegionName(ptr.Address)))
				return nil
			}
			return fmt.Errorf("dumping memory: %w", err)
		}

		if err := w.WriteData(ptr, data); err != nil {
			return fmt.Errorf("writing dump: %w", err)
		}

		if len(data) < n {
			end := ptr.Add(len(data))
			p.logger.Warn("Dump reached unmapped memory",
				log.Stringer("pointer", end),
				log.String("area", memory.RegionName(end.Address)))
			return nil
		}
		remaining -= n
	}
	return nil
}

// dumpLabel names the data at ptr the way disassemblies name unlabeled data.
// IO registers get their hardware name.
func dumpLabel(ptr memory.Pointer, cgb bool) string {
	if name, ok := memory.IORegisterName(ptr.Address, cgb); ok {
		return "r" + name
	}
	if !ptr.Bank.Valid() {
		return fmt.Sprintf("Data_%04X", ptr.Address)
	}
	return fmt.Sprintf("Data_%02X_%04X", int(ptr.Bank), ptr.Address)
}

// exportSprite decodes the sprite at the pointer and writes it as PNG.
func (p *Pipeline) exportSprite(space *memory.Space, opts options.Program, writer io.Writer) error {
	pal, err := export.ResolvePalette(space, opts.Palette)
	if err != nil {
		return fmt.Errorf("loading palette '%s': %w", opts.Palette, err)
	}

	cursor := space.Cursor(opts.Banks(), opts.Pointer.Address, opts.Partial)
	spr, err := sprite.Decode(cursor, !opts.Canvas)
	if err != nil {
		return fmt.Errorf("decoding sprite at %s: %w", opts.Pointer, err)
	}

	p.logger.Debug("Decoded sprite",
		log.Int("tile_width", spr.TileWidth),
		log.Int("tile_height", spr.TileHeight),
		log.Stringer("order", spr.Order),
		log.Stringer("mode", spr.Mode),
		log.Stringer("end", cursor.Pointer()))

	img, err := export.Scale(export.Paletted(spr.Width, spr.Height, spr.Rows(), pal), opts.Scale)
	if err != nil {
		return fmt.Errorf("scaling sprite: %w", err)
	}
	if err := export.WritePNG(writer, img); err != nil {
		return fmt.Errorf("writing sprite: %w", err)
	}
	return nil
}

// printInfo prints information about the image being processed.
func (p *Pipeline) printInfo(opts options.Program, space *memory.Space) {
	if opts.Quiet {
		return
	}

	p.logger.Info("Processing memory image",
		log.String("file", opts.Input),
		log.String("title", space.Title()),
		log.String("command", opts.Command),
	)
	if opts.Command != options.CommandInfo {
		fields := []log.Field{
			log.Stringer("pointer", opts.Pointer),
			log.String("area", memory.RegionName(opts.Pointer.Address)),
		}
		if opts.SRAMBank.Valid() {
			fields = append(fields, log.Hex("sram_bank", uint8(opts.SRAMBank)))
		}
		p.logger.Info("Extracting data", fields...)
	}

	if h := space.Header(); h != nil && !memory.HeaderChecksumOK(space.ROM()) {
		p.logger.Warn("Cartridge header checksum mismatch, the ROM might be corrupted")
	}
}
