// Package image converts ordinary images into one-bit raster pages for
// the direct print path. The transcoder itself never looks at image
// content; everything here happens before a page enters it.
package image

import (
	"image"
	"image/color"

	"github.com/makeworld-the-better-one/dither/v2"
	"github.com/nfnt/resize"

	"github.com/AlexStarov/escpos-GoLang-slipfilter/raster"
)

type Converter struct {
	// The maximum line width of the printer, in dots
	MaxWidth int

	// The threshold between white and black dots
	Threshold float64

	// Dither selects Floyd–Steinberg error diffusion instead of the plain
	// threshold. Slip forms are mostly line art, so it defaults off.
	Dither bool
}

// ToPage converts img into a single raster page at the given physical
// resolution, ready to be served through a MemorySource.
func (c *Converter) ToPage(img image.Image, hRes, vRes int) raster.MemoryPage {
	data, width, bytesWidth := c.ToRaster(img)
	height := len(data) / bytesWidth
	return raster.MemoryPage{
		Header: raster.PageHeader{
			Width:         width,
			Height:        height,
			BytesPerLine:  bytesWidth,
			BitsPerPixel:  1,
			HWResolutionX: hRes,
			HWResolutionY: vRes,
			NumCopies:     1,
		},
		Data: data,
	}
}

// ToRaster packs img into one bit per pixel, MSB first, fitting the image
// to MaxWidth when it is wider.
func (c *Converter) ToRaster(img image.Image) (data []byte, imageWidth, bytesWidth int) {
	sz := img.Bounds().Size()
	if c.MaxWidth > 0 && sz.X > c.MaxWidth {
		img = resize.Resize(uint(c.MaxWidth), 0, img, resize.Lanczos3)
		sz = img.Bounds().Size()
	}

	if c.Dither {
		d := dither.NewDitherer([]color.Color{color.Black, color.White})
		d.Matrix = dither.FloydSteinberg
		img = d.Dither(img)
	}

	imageWidth = sz.X
	bytesWidth = imageWidth / 8
	if imageWidth%8 != 0 {
		bytesWidth += 1
	}

	data = make([]byte, bytesWidth*sz.Y)

	for y := 0; y < sz.Y; y++ {
		for x := 0; x < imageWidth; x++ {
			if lightness(img.At(x, y)) <= c.Threshold {
				// position in data is: line_start + x / 8
				// line_start is y * bytesWidth
				// then 8 bits per byte
				data[y*bytesWidth+x/8] |= 0x80 >> uint(x%8)
			}
		}
	}

	return
}

const (
	lumR, lumG, lumB = 55, 182, 18
)

func lightness(c color.Color) float64 {
	r, g, b, _ := c.RGBA()

	return float64(lumR*r+lumG*g+lumB*b) / float64(0xffff*(lumR+lumG+lumB))
}
