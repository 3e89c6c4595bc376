// Package loader handles memory image file loading operations.
package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/FutureFractal/g1utils/internal/detector"
	"github.com/FutureFractal/g1utils/internal/memory"
	"github.com/FutureFractal/g1utils/internal/options"
	"github.com/edsrzf/mmap-go"
)

// maxSRAMSize is the largest cartridge RAM of any supported cartridge type.
const maxSRAMSize = 0x20000

// Loader handles loading memory image files from disk.
type Loader struct{}

// New creates a new memory image loader.
func New() *Loader {
	return &Loader{}
}

// Image is a loaded memory image. The region buffers of its space are
// memory mapped from the input files and stay valid until Close is called.
type Image struct {
	Space *memory.Space
	Kind  detector.Kind

	mappings []mmap.MMap
}

// Close unmaps the files backing the image.
func (img *Image) Close() error {
	var errs []error
	for _, m := range img.mappings {
		if err := m.Unmap(); err != nil {
			errs = append(errs, err)
		}
	}
	img.mappings = nil
	return errors.Join(errs...)
}

// Load loads the input file as a memory image of the given kind.
// A ROM image is combined with the battery save file given in the options.
func (l *Loader) Load(opts options.Program, kind detector.Kind) (*Image, error) {
	img := &Image{Kind: kind}

	input, err := img.mapFile(opts.Input)
	if err != nil {
		return nil, err
	}

	switch kind {
	case detector.Save:
		img.Space, err = loadSave(opts.Input, input)
	default:
		img.Space, err = img.loadROM(opts, input)
	}
	if err != nil {
		_ = img.Close()
		return nil, err
	}
	return img, nil
}

func (img *Image) loadROM(opts options.Program, rom []byte) (*memory.Space, error) {
	space, err := memory.New(memory.WithROM(rom))
	if err != nil {
		return nil, fmt.Errorf("loading ROM %s: %w", opts.Input, err)
	}
	if opts.Save == "" {
		return space, nil
	}

	sram, err := img.mapFile(opts.Save)
	if err != nil {
		return nil, err
	}
	if len(sram) > maxSRAMSize {
		return nil, fmt.Errorf("save file %s exceeds %d bytes", opts.Save, maxSRAMSize)
	}

	space, err = memory.Derive(space, memory.WithSRAM(sram))
	if err != nil {
		return nil, fmt.Errorf("combining ROM with save file %s: %w", opts.Save, err)
	}
	return space, nil
}

func loadSave(fileName string, sram []byte) (*memory.Space, error) {
	if len(sram) > maxSRAMSize {
		return nil, fmt.Errorf("save file %s exceeds %d bytes", fileName, maxSRAMSize)
	}

	title := strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName))
	space, err := memory.New(memory.WithSRAM(sram), memory.WithTitle(title))
	if err != nil {
		return nil, fmt.Errorf("loading save file %s: %w", fileName, err)
	}
	return space, nil
}

// mapFile maps a file read only into memory and tracks the mapping for Close.
func (img *Image) mapFile(fileName string) ([]byte, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", fileName, err)
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("reading file info of %s: %w", fileName, err)
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("file %s is empty", fileName)
	}

	m, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mapping file %s: %w", fileName, err)
	}
	img.mappings = append(img.mappings, m)
	return m, nil
}
