package util

import (
	"bytes"
	"testing"
)

func TestIntLowHigh(t *testing.T) {
	tests := []struct {
		n, b int
		want []byte
	}{
		{0, 2, []byte{0, 0}},
		{8, 2, []byte{8, 0}},
		{832, 2, []byte{0x40, 0x03}},
		{0x12345678, 4, []byte{0x78, 0x56, 0x34, 0x12}},
	}
	for _, tt := range tests {
		if got := IntLowHigh(tt.n, tt.b); !bytes.Equal(got, tt.want) {
			t.Errorf("IntLowHigh(%d, %d) = % x, want % x", tt.n, tt.b, got, tt.want)
		}
	}
}
