package raster

import "fmt"

// PageBuffer owns one page's bitmap, assembled scanline by scanline and
// then consumed read-only by the transcoder.
type PageBuffer struct {
	header PageHeader
	data   []byte
}

// NewPageBuffer allocates a zero-filled buffer for the page described by h.
func NewPageBuffer(h *PageHeader) (*PageBuffer, error) {
	if h.BitsPerPixel != 1 {
		return nil, fmt.Errorf("raster: unsupported pixel depth %d, want 1", h.BitsPerPixel)
	}
	size := h.Height * h.BytesPerLine
	if size <= 0 {
		return nil, fmt.Errorf("raster: bad page size %dx%d", h.Height, h.BytesPerLine)
	}
	return &PageBuffer{header: *h, data: make([]byte, size)}, nil
}

// Header returns the page header the buffer was allocated for.
func (b *PageBuffer) Header() *PageHeader {
	return &b.header
}

// WriteScanline copies one scanline into row index. The line must be
// exactly BytesPerLine long; anything else means the source is malformed.
func (b *PageBuffer) WriteScanline(index int, line []byte) error {
	if index < 0 || index >= b.header.Height {
		return fmt.Errorf("raster: scanline %d out of range [0,%d)", index, b.header.Height)
	}
	if len(line) != b.header.BytesPerLine {
		return fmt.Errorf("raster: scanline %d is %d bytes, want %d", index, len(line), b.header.BytesPerLine)
	}
	copy(b.data[index*b.header.BytesPerLine:], line)
	return nil
}

// Line returns a read-only view of scanline index.
func (b *PageBuffer) Line(index int) []byte {
	off := index * b.header.BytesPerLine
	return b.data[off : off+b.header.BytesPerLine]
}

// Lines returns a view of count consecutive scanlines starting at index,
// clipped to the page.
func (b *PageBuffer) Lines(index, count int) []byte {
	if index+count > b.header.Height {
		count = b.header.Height - index
	}
	off := index * b.header.BytesPerLine
	return b.data[off : off+count*b.header.BytesPerLine]
}

// Release drops the bitmap so the backing memory can be reclaimed while
// the rest of the job is still running.
func (b *PageBuffer) Release() {
	b.data = nil
}
