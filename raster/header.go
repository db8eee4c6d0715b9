// Package raster reads the page stream produced by the upstream RIP: a
// sequence of page headers, each followed by its scanlines top to bottom,
// one bit per pixel packed MSB first.
package raster

// PageHeader describes one page of the stream. Immutable once read.
type PageHeader struct {
	Width        int // printable width, dots
	Height       int // scanline count
	BytesPerLine int // packed scanline size, >= ceil(Width/8)
	BitsPerPixel int

	// Physical resolution, dots per inch.
	HWResolutionX int
	HWResolutionY int

	NumCopies int
}

// Source is the contract the transcoder consumes. NextPage returns io.EOF
// when the stream has no more pages. ReadLine fills line with the next
// scanline of the current page; a short read is a fatal source error for
// the caller to report.
type Source interface {
	NextPage() (*PageHeader, error)
	ReadLine(line []byte) (int, error)
}
