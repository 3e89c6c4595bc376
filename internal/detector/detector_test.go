package detector

import (
	"testing"

	"github.com/FutureFractal/g1utils/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestDetect(t *testing.T) {
	logger := log.NewTestLogger(t)
	d := New(logger)

	tests := []struct {
		name      string
		kindOpt   string
		inputFile string
		wantKind  Kind
	}{
		{
			name:      "explicit rom kind option",
			kindOpt:   "rom",
			inputFile: "red.sav",
			wantKind:  ROM,
		},
		{
			name:      "explicit save kind option",
			kindOpt:   "sav",
			inputFile: "red.bin",
			wantKind:  Save,
		},
		{
			name:      "detect from .gb extension",
			kindOpt:   "",
			inputFile: "red.gb",
			wantKind:  ROM,
		},
		{
			name:      "detect from .sav extension",
			kindOpt:   "",
			inputFile: "red.sav",
			wantKind:  Save,
		},
		{
			name:      "unknown kind option falls back to extension",
			kindOpt:   "tape",
			inputFile: "yellow.srm",
			wantKind:  Save,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := options.Program{
				Parameters: options.Parameters{Input: tt.inputFile},
				Flags:      options.Flags{Kind: tt.kindOpt},
			}

			got := d.Detect(opts)
			assert.Equal(t, tt.wantKind, got)
		})
	}
}

func TestDetectFromFile(t *testing.T) {
	logger := log.NewTestLogger(t)
	d := New(logger)

	tests := []struct {
		name     string
		filename string
		wantKind Kind
	}{
		{
			name:     ".gb extension",
			filename: "pokered.gb",
			wantKind: ROM,
		},
		{
			name:     ".GBC extension (uppercase)",
			filename: "CRYSTAL.GBC",
			wantKind: ROM,
		},
		{
			name:     ".SAV extension (uppercase)",
			filename: "BLUE.SAV",
			wantKind: Save,
		},
		{
			name:     "no extension",
			filename: "dump",
			wantKind: ROM,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.detectFromFile(tt.filename)
			assert.Equal(t, tt.wantKind, got)
		})
	}
}

func TestKindFromString(t *testing.T) {
	kind, ok := KindFromString("GBC")
	assert.True(t, ok)
	assert.Equal(t, ROM, kind)

	kind, ok = KindFromString("save")
	assert.True(t, ok)
	assert.Equal(t, Save, kind)

	_, ok = KindFromString("")
	assert.False(t, ok)

	for _, name := range KindNames {
		_, ok := KindFromString(name)
		assert.True(t, ok, name)
	}
}
