package raster

import (
	"fmt"
	"io"
)

// MemoryPage is one fully materialized page for a MemorySource.
type MemoryPage struct {
	Header PageHeader
	Data   []byte // Header.Height * Header.BytesPerLine bytes, row-major
}

// MemorySource serves pre-built pages through the Source contract. It is
// used by the direct-print path and by tests.
type MemorySource struct {
	pages []MemoryPage
	page  int
	line  int
}

// NewMemorySource returns a Source over the given pages.
func NewMemorySource(pages ...MemoryPage) *MemorySource {
	return &MemorySource{pages: pages}
}

func (s *MemorySource) NextPage() (*PageHeader, error) {
	if s.page >= len(s.pages) {
		return nil, io.EOF
	}
	p := s.pages[s.page]
	if len(p.Data) != p.Header.Height*p.Header.BytesPerLine {
		return nil, fmt.Errorf("raster: page %d data is %d bytes, want %d",
			s.page, len(p.Data), p.Header.Height*p.Header.BytesPerLine)
	}
	s.page++
	s.line = 0
	h := p.Header
	return &h, nil
}

func (s *MemorySource) ReadLine(line []byte) (int, error) {
	if s.page == 0 || s.page > len(s.pages) {
		return 0, io.EOF
	}
	p := s.pages[s.page-1]
	if s.line >= p.Header.Height {
		return 0, io.EOF
	}
	off := s.line * p.Header.BytesPerLine
	s.line++
	return copy(line, p.Data[off:off+p.Header.BytesPerLine]), nil
}
