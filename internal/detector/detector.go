// Package detector handles input image kind detection.
package detector

import (
	"path/filepath"
	"strings"

	"github.com/FutureFractal/g1utils/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// Kind is the kind of memory image stored in an input file.
type Kind string

const (
	// ROM is a cartridge ROM dump.
	ROM Kind = "rom"
	// Save is a battery save file holding the cartridge RAM.
	Save Kind = "sav"
)

func (k Kind) String() string {
	return string(k)
}

// KindNames lists the names accepted by KindFromString.
var KindNames = []string{"rom", "gb", "gbc", "sav", "srm", "save"}

// KindFromString returns the kind matching the name and whether it is known.
func KindFromString(s string) (Kind, bool) {
	switch strings.ToLower(s) {
	case "rom", "gb", "gbc":
		return ROM, true
	case "sav", "srm", "save":
		return Save, true
	default:
		return "", false
	}
}

// Detector handles image kind detection from file extensions and options.
type Detector struct {
	logger *log.Logger
}

// New creates a new image kind detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the image kind from options or file auto-detection.
// It first checks if a kind is explicitly specified in options, otherwise
// attempts to detect the kind from the input filename extension.
func (d *Detector) Detect(opts options.Program) Kind {
	kind, ok := KindFromString(opts.Kind)
	if !ok {
		if opts.Kind != "" {
			d.logger.Warn("Unknown image kind, detecting it from the file name",
				log.String("kind", opts.Kind))
		}
		kind = d.detectFromFile(opts.Input)
		d.logger.Debug("Auto-detected image kind",
			log.Stringer("kind", kind),
			log.String("file", opts.Input))
	}
	return kind
}

// detectFromFile determines the image kind based on file extension.
func (d *Detector) detectFromFile(filename string) Kind {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".sav", ".srm":
		return Save
	default:
		// .gb, .gbc, .sgb and raw dumps are read as ROM
		return ROM
	}
}
