package raster

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Stream sync words, one per format version and byte order.
const (
	syncV1 = "RaSt"
	syncV2 = "RaS2"
	syncV3 = "RaS3"
)

// Page header layout: selected field offsets, valid for every version.
const (
	headerSizeV1 = 420  // ends after cupsRowStep
	headerSizeV2 = 1796 // adds the extended block

	offHWResolutionX = 276
	offHWResolutionY = 280
	offNumCopies     = 340
	offWidth         = 372
	offHeight        = 376
	offBitsPerPixel  = 388
	offBytesPerLine  = 392
)

// Reader decodes a raster page stream from r. Version 1 and 3 streams
// carry raw scanlines; version 2 streams carry run-length encoded lines
// with a leading line-repeat count.
type Reader struct {
	r       io.Reader
	order   binary.ByteOrder
	version int

	header    PageHeader
	pixelSize int
	linesLeft int

	// v2 state: the current decoded line and how many more times it repeats.
	lineBuf []byte
	repeat  int
}

// NewReader consumes the stream sync word and prepares to read pages.
func NewReader(r io.Reader) (*Reader, error) {
	var sync [4]byte
	if _, err := io.ReadFull(r, sync[:]); err != nil {
		return nil, fmt.Errorf("raster: reading sync word: %w", err)
	}

	d := &Reader{r: r}
	switch string(sync[:]) {
	case syncV1:
		d.version, d.order = 1, binary.BigEndian
	case reverse(syncV1):
		d.version, d.order = 1, binary.LittleEndian
	case syncV2:
		d.version, d.order = 2, binary.BigEndian
	case reverse(syncV2):
		d.version, d.order = 2, binary.LittleEndian
	case syncV3:
		d.version, d.order = 3, binary.BigEndian
	case reverse(syncV3):
		d.version, d.order = 3, binary.LittleEndian
	default:
		return nil, fmt.Errorf("raster: unrecognized sync word %q", sync[:])
	}
	return d, nil
}

func reverse(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

// NextPage reads the next page header. It returns io.EOF when the stream
// is exhausted. Scanlines of the previous page that were never read are
// skipped.
func (d *Reader) NextPage() (*PageHeader, error) {
	for d.linesLeft > 0 {
		skip := make([]byte, d.header.BytesPerLine)
		if _, err := d.ReadLine(skip); err != nil {
			return nil, err
		}
	}

	size := headerSizeV1
	if d.version >= 2 {
		size = headerSizeV2
	}
	raw := make([]byte, size)
	if _, err := io.ReadFull(d.r, raw); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("raster: reading page header: %w", err)
	}

	u32 := func(off int) int { return int(d.order.Uint32(raw[off : off+4])) }
	d.header = PageHeader{
		Width:         u32(offWidth),
		Height:        u32(offHeight),
		BytesPerLine:  u32(offBytesPerLine),
		BitsPerPixel:  u32(offBitsPerPixel),
		HWResolutionX: u32(offHWResolutionX),
		HWResolutionY: u32(offHWResolutionY),
		NumCopies:     u32(offNumCopies),
	}
	if d.header.BytesPerLine <= 0 || d.header.Height <= 0 {
		return nil, fmt.Errorf("raster: malformed page header (%d bytes/line, %d lines)",
			d.header.BytesPerLine, d.header.Height)
	}

	d.pixelSize = (d.header.BitsPerPixel + 7) / 8
	if d.pixelSize < 1 {
		d.pixelSize = 1
	}
	d.linesLeft = d.header.Height
	d.repeat = 0
	if cap(d.lineBuf) < d.header.BytesPerLine {
		d.lineBuf = make([]byte, d.header.BytesPerLine)
	}
	d.lineBuf = d.lineBuf[:d.header.BytesPerLine]

	h := d.header
	return &h, nil
}

// ReadLine fills line with the next scanline of the current page and
// returns the number of bytes produced. Fewer bytes than requested means
// the stream ended mid-page.
func (d *Reader) ReadLine(line []byte) (int, error) {
	if d.linesLeft <= 0 {
		return 0, io.EOF
	}

	if d.version != 2 {
		n, err := io.ReadFull(d.r, line)
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return n, io.ErrUnexpectedEOF
		}
		if err != nil {
			return n, fmt.Errorf("raster: reading scanline: %w", err)
		}
		d.linesLeft--
		return n, nil
	}

	if d.repeat == 0 {
		var count [1]byte
		if _, err := io.ReadFull(d.r, count[:]); err != nil {
			return 0, fmt.Errorf("raster: reading line-repeat count: %w", err)
		}
		if err := d.decodeLine(); err != nil {
			return 0, err
		}
		d.repeat = int(count[0]) + 1
	}
	d.repeat--
	d.linesLeft--
	return copy(line, d.lineBuf), nil
}

// decodeLine reads one run-length encoded scanline into lineBuf. A code
// byte c <= 127 repeats the next pixel c+1 times; c >= 128 is followed by
// 257-c literal pixels.
func (d *Reader) decodeLine() error {
	pos := 0
	pixel := make([]byte, d.pixelSize)
	for pos < len(d.lineBuf) {
		var code [1]byte
		if _, err := io.ReadFull(d.r, code[:]); err != nil {
			return fmt.Errorf("raster: reading run code: %w", err)
		}
		if code[0] <= 127 {
			if _, err := io.ReadFull(d.r, pixel); err != nil {
				return fmt.Errorf("raster: reading run pixel: %w", err)
			}
			for n := int(code[0]) + 1; n > 0 && pos < len(d.lineBuf); n-- {
				pos += copy(d.lineBuf[pos:], pixel)
			}
		} else {
			n := (257 - int(code[0])) * d.pixelSize
			if pos+n > len(d.lineBuf) {
				n = len(d.lineBuf) - pos
			}
			if _, err := io.ReadFull(d.r, d.lineBuf[pos:pos+n]); err != nil {
				return fmt.Errorf("raster: reading literal run: %w", err)
			}
			pos += n
		}
	}
	return nil
}
