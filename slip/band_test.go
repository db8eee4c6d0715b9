package slip

import (
	"bytes"
	"testing"

	"github.com/AlexStarov/escpos-GoLang-slipfilter/raster"
)

// buildPage assembles a page buffer from literal scanlines.
func buildPage(t *testing.T, lines ...[]byte) *raster.PageBuffer {
	t.Helper()
	if len(lines) == 0 {
		t.Fatal("buildPage needs at least one scanline")
	}
	h := &raster.PageHeader{
		Width:         len(lines[0]) * 8,
		Height:        len(lines),
		BytesPerLine:  len(lines[0]),
		BitsPerPixel:  1,
		HWResolutionX: 180,
		HWResolutionY: 180,
	}
	buf, err := raster.NewPageBuffer(h)
	if err != nil {
		t.Fatalf("NewPageBuffer: %v", err)
	}
	for i, line := range lines {
		if err := buf.WriteScanline(i, line); err != nil {
			t.Fatalf("WriteScanline(%d): %v", i, err)
		}
	}
	return buf
}

func TestTransposeBandTwoLines(t *testing.T) {
	buf := buildPage(t,
		[]byte{0b10000000},
		[]byte{0b01000000},
	)

	out := TransposeBand(buf, 0, 2)
	if len(out) != 8 {
		t.Fatalf("got %d output bytes, want 8", len(out))
	}

	// Leftmost dot of scanline 0 lands on pin 0 (MSB) of column 0; the
	// second dot of scanline 1 lands on pin 1 of column 1.
	want := []byte{0b10000000, 0b01000000, 0, 0, 0, 0, 0, 0}
	if !bytes.Equal(out, want) {
		t.Errorf("transposed band = %08b, want %08b", out, want)
	}
}

func TestTransposeBandFullHeight(t *testing.T) {
	lines := make([][]byte, 8)
	for i := range lines {
		lines[i] = []byte{0x80, 0xFF}
	}
	buf := buildPage(t, lines...)

	out := TransposeBand(buf, 0, 8)
	if out[0] != 0xFF {
		t.Errorf("column 0 bit 0 = %08b, want 11111111", out[0])
	}
	for i := 1; i < 8; i++ {
		if out[i] != 0x00 {
			t.Errorf("column 0 bit %d = %08b, want 0", i, out[i])
		}
	}
	for i := 8; i < 16; i++ {
		if out[i] != 0xFF {
			t.Errorf("column 1 bit %d = %08b, want 11111111", i-8, out[i])
		}
	}
}

func TestTransposeBandPartialLeavesPinsClear(t *testing.T) {
	buf := buildPage(t,
		[]byte{0xFF},
		[]byte{0xFF},
		[]byte{0xFF},
	)

	// Only the first two scanlines belong to the band.
	out := TransposeBand(buf, 0, 2)
	for i, b := range out {
		if b != 0xC0 {
			t.Errorf("output byte %d = %08b, want 11000000", i, b)
		}
	}
}

func TestSanitizeBand(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want []byte
	}{
		{"dle eot", []byte{0x10, 0x04}, []byte{0x30, 0x04}},
		{"dle enq", []byte{0x10, 0x05}, []byte{0x30, 0x05}},
		{"dle dc4", []byte{0x10, 0x14}, []byte{0x30, 0x14}},
		{"esc equals", []byte{0x1B, 0x3D}, []byte{0x3B, 0x3D}},
		{"dle other", []byte{0x10, 0x06}, []byte{0x10, 0x06}},
		{"esc other", []byte{0x1B, 0x40}, []byte{0x1B, 0x40}},
		{"trailing dle", []byte{0x00, 0x10}, []byte{0x00, 0x10}},
		{"mid buffer", []byte{0xAA, 0x10, 0x04, 0xAA}, []byte{0xAA, 0x30, 0x04, 0xAA}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := append([]byte(nil), tt.in...)
			SanitizeBand(data)
			if !bytes.Equal(data, tt.want) {
				t.Errorf("SanitizeBand(% x) = % x, want % x", tt.in, data, tt.want)
			}
		})
	}
}

func TestSanitizeBandKeepsLength(t *testing.T) {
	data := []byte{0x10, 0x04, 0x10, 0x04}
	SanitizeBand(data)
	if want := []byte{0x30, 0x04, 0x30, 0x04}; !bytes.Equal(data, want) {
		t.Errorf("got % x, want % x", data, want)
	}
}
