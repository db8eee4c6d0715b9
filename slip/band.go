package slip

import (
	"github.com/AlexStarov/escpos-GoLang-slipfilter/raster"
)

// TransposeBand packs up to 8 consecutive scanlines starting at start into
// the head-pin byte order: one output byte per dot column, pin 0 (the top
// scanline of the band) in the most significant bit. Scanlines past the
// band leave their pin bits zero, so a partial final band prints clean.
//
// The output is always BytesPerLine*8 bytes, one byte per (column byte,
// bit position) pair, matching what the band raster command expects.
func TransposeBand(buf *raster.PageBuffer, start, lines int) []byte {
	h := buf.Header()
	out := make([]byte, h.BytesPerLine*8)

	if lines > DefaultMaxBandLines {
		lines = DefaultMaxBandLines
	}
	for k := 0; k < lines; k++ {
		row := buf.Line(start + k)
		pin := byte(0x80 >> uint(k))
		for x, b := range row {
			if b == 0x00 {
				continue
			}
			for bit := 0; bit < 8; bit++ {
				if b&(0x80>>uint(bit)) != 0 {
					out[x*8+bit] |= pin
				}
			}
		}
	}
	return out
}

// SanitizeBand rewrites byte pairs in the transposed output that the
// printer would otherwise take for real-time commands: DLE followed by
// EOT, ENQ or DC4 becomes 0x30, and ESC followed by '=' becomes ';'. Only
// the first byte of a matched pair changes; the buffer never moves.
func SanitizeBand(data []byte) {
	for i := 0; i+1 < len(data); i++ {
		switch data[i] {
		case 0x10:
			if data[i+1] == 0x04 || data[i+1] == 0x05 || data[i+1] == 0x14 {
				data[i] = 0x30
			}
		case 0x1B:
			if data[i+1] == 0x3D {
				data[i] = 0x3B
			}
		}
	}
}
