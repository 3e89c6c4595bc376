package bitstream

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestReadBit_MSBFirst(t *testing.T) {
	r := New(bytes.NewReader([]byte{0xA5, 0x01}))

	want := []uint{1, 0, 1, 0, 0, 1, 0, 1, 0, 0, 0, 0, 0, 0, 0, 1}
	for _, w := range want {
		bit, err := r.ReadBit()
		assert.NoError(t, err)
		assert.Equal(t, w, bit)
	}

	_, err := r.ReadBit()
	assert.True(t, errors.Is(err, io.EOF))
}

func TestReadBits(t *testing.T) {
	tests := []struct {
		name  string
		data  []byte
		sizes []int
		want  []uint
	}{
		{
			name:  "nibbles",
			data:  []byte{0x3C},
			sizes: []int{4, 4},
			want:  []uint{0x3, 0xC},
		},
		{
			name:  "across byte boundary",
			data:  []byte{0x0F, 0xF0},
			sizes: []int{4, 8, 4},
			want:  []uint{0x0, 0xFF, 0x0},
		},
		{
			name:  "zero width",
			data:  []byte{0xFF},
			sizes: []int{0, 1},
			want:  []uint{0, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(bytes.NewReader(tt.data))
			for i, n := range tt.sizes {
				v, err := r.ReadBits(n)
				assert.NoError(t, err)
				assert.Equal(t, tt.want[i], v)
			}
		})
	}
}

func TestReadBits_Truncated(t *testing.T) {
	r := New(bytes.NewReader([]byte{0xFF}))
	_, err := r.ReadBits(9)
	assert.True(t, errors.Is(err, io.EOF))
}
