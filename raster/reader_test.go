package raster

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"
)

// rasterHeader builds a raw page header of the given size with the fields
// the reader cares about filled in.
func rasterHeader(size int, order binary.ByteOrder, h PageHeader) []byte {
	raw := make([]byte, size)
	put := func(off, v int) { order.PutUint32(raw[off:], uint32(v)) }
	put(offHWResolutionX, h.HWResolutionX)
	put(offHWResolutionY, h.HWResolutionY)
	put(offNumCopies, h.NumCopies)
	put(offWidth, h.Width)
	put(offHeight, h.Height)
	put(offBitsPerPixel, h.BitsPerPixel)
	put(offBytesPerLine, h.BytesPerLine)
	return raw
}

func TestReaderV1RawLines(t *testing.T) {
	hdr := PageHeader{
		Width: 8, Height: 2, BytesPerLine: 1, BitsPerPixel: 1,
		HWResolutionX: 180, HWResolutionY: 180, NumCopies: 1,
	}
	var stream bytes.Buffer
	stream.WriteString("RaSt")
	stream.Write(rasterHeader(headerSizeV1, binary.BigEndian, hdr))
	stream.Write([]byte{0x01, 0x02})

	d, err := NewReader(&stream)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}

	got, err := d.NextPage()
	if err != nil {
		t.Fatalf("NextPage: %v", err)
	}
	if *got != hdr {
		t.Errorf("header = %+v, want %+v", *got, hdr)
	}

	line := make([]byte, 1)
	for i, want := range []byte{0x01, 0x02} {
		n, err := d.ReadLine(line)
		if err != nil || n != 1 {
			t.Fatalf("ReadLine %d: n=%d err=%v", i, n, err)
		}
		if line[0] != want {
			t.Errorf("scanline %d = %#x, want %#x", i, line[0], want)
		}
	}

	if _, err := d.NextPage(); err != io.EOF {
		t.Errorf("NextPage after last page = %v, want io.EOF", err)
	}
}

func TestReaderV2RunLength(t *testing.T) {
	hdr := PageHeader{
		Width: 16, Height: 4, BytesPerLine: 2, BitsPerPixel: 1,
		HWResolutionX: 180, HWResolutionY: 180, NumCopies: 1,
	}
	var stream bytes.Buffer
	stream.WriteString("2SaR") // little-endian v2 sync
	stream.Write(rasterHeader(headerSizeV2, binary.LittleEndian, hdr))

	// Two identical lines: repeat count 1, pixel 0xAA repeated twice.
	stream.Write([]byte{0x01, 0x01, 0xAA})
	// One line of two literal pixels.
	stream.Write([]byte{0x00, 0xFF, 0x12, 0x34})
	// One line from two single-pixel runs.
	stream.Write([]byte{0x00, 0x00, 0x00, 0x00, 0xFF})

	d, err := NewReader(&stream)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	got, err := d.NextPage()
	if err != nil {
		t.Fatalf("NextPage: %v", err)
	}
	if *got != hdr {
		t.Errorf("header = %+v, want %+v", *got, hdr)
	}

	want := [][]byte{
		{0xAA, 0xAA},
		{0xAA, 0xAA},
		{0x12, 0x34},
		{0x00, 0xFF},
	}
	line := make([]byte, 2)
	for i, w := range want {
		n, err := d.ReadLine(line)
		if err != nil || n != 2 {
			t.Fatalf("ReadLine %d: n=%d err=%v", i, n, err)
		}
		if !bytes.Equal(line, w) {
			t.Errorf("scanline %d = % x, want % x", i, line, w)
		}
	}
	if _, err := d.ReadLine(line); err != io.EOF {
		t.Errorf("ReadLine past last scanline = %v, want io.EOF", err)
	}
}

func TestReaderSkipsUnreadLines(t *testing.T) {
	hdr1 := PageHeader{
		Width: 8, Height: 2, BytesPerLine: 1, BitsPerPixel: 1,
		HWResolutionX: 180, HWResolutionY: 180, NumCopies: 1,
	}
	hdr2 := hdr1
	hdr2.Height = 1

	var stream bytes.Buffer
	stream.WriteString("RaSt")
	stream.Write(rasterHeader(headerSizeV1, binary.BigEndian, hdr1))
	stream.Write([]byte{0xDE, 0xAD})
	stream.Write(rasterHeader(headerSizeV1, binary.BigEndian, hdr2))
	stream.Write([]byte{0x42})

	d, err := NewReader(&stream)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	if _, err := d.NextPage(); err != nil {
		t.Fatalf("NextPage 1: %v", err)
	}
	// Abandon page 1 without reading any scanline.
	got, err := d.NextPage()
	if err != nil {
		t.Fatalf("NextPage 2: %v", err)
	}
	if got.Height != 1 {
		t.Fatalf("page 2 height = %d, want 1", got.Height)
	}

	line := make([]byte, 1)
	if _, err := d.ReadLine(line); err != nil {
		t.Fatalf("ReadLine: %v", err)
	}
	if line[0] != 0x42 {
		t.Errorf("page 2 scanline = %#x, want 0x42", line[0])
	}
}

func TestReaderBadSyncWord(t *testing.T) {
	if _, err := NewReader(bytes.NewReader([]byte("BOGUS..."))); err == nil {
		t.Error("NewReader accepted a bogus sync word")
	}
}

func TestReaderTruncatedPage(t *testing.T) {
	hdr := PageHeader{
		Width: 16, Height: 3, BytesPerLine: 2, BitsPerPixel: 1,
		HWResolutionX: 180, HWResolutionY: 180, NumCopies: 1,
	}
	var stream bytes.Buffer
	stream.WriteString("RaSt")
	stream.Write(rasterHeader(headerSizeV1, binary.BigEndian, hdr))
	stream.Write([]byte{0x11, 0x22, 0x33}) // one and a half scanlines

	d, err := NewReader(&stream)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	if _, err := d.NextPage(); err != nil {
		t.Fatalf("NextPage: %v", err)
	}

	line := make([]byte, 2)
	if _, err := d.ReadLine(line); err != nil {
		t.Fatalf("ReadLine 0: %v", err)
	}
	if _, err := d.ReadLine(line); err != io.ErrUnexpectedEOF {
		t.Errorf("truncated ReadLine = %v, want io.ErrUnexpectedEOF", err)
	}
}

func TestReaderMalformedHeader(t *testing.T) {
	hdr := PageHeader{Width: 8, Height: 0, BytesPerLine: 1, BitsPerPixel: 1}
	var stream bytes.Buffer
	stream.WriteString("RaSt")
	stream.Write(rasterHeader(headerSizeV1, binary.BigEndian, hdr))

	d, err := NewReader(&stream)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	if _, err := d.NextPage(); err == nil {
		t.Error("NextPage accepted a zero-height page")
	}
}
