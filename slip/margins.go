package slip

import (
	"github.com/AlexStarov/escpos-GoLang-slipfilter/raster"
)

// Margins is the printable scanline range of a page. A fully blank page is
// one explicit case: Blank is set and Top/End are meaningless.
type Margins struct {
	Blank bool
	Top   int // first scanline with ink
	End   int // one past the last scanline with ink
}

// FindMargins locates the first and last non-blank scanlines of the page.
// A scanline is blank when every byte of it is zero.
func FindMargins(buf *raster.PageBuffer) Margins {
	h := buf.Header()

	top := h.Height
	for y := 0; y < h.Height; y++ {
		if !blankLine(buf.Line(y)) {
			top = y
			break
		}
	}
	if top == h.Height {
		return Margins{Blank: true}
	}

	// The page has ink, so the downward scan is guaranteed to stop.
	end := top + 1
	for y := h.Height - 1; y >= top; y-- {
		if !blankLine(buf.Line(y)) {
			end = y + 1
			break
		}
	}
	return Margins{Top: top, End: end}
}

func blankLine(line []byte) bool {
	for _, b := range line {
		if b != 0x00 {
			return false
		}
	}
	return true
}
