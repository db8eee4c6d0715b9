// Package slip turns one-bit raster pages into the byte-exact command
// stream of an ESC/POS impact slip printer: blank-margin elision, 8-pin
// band transposition, control-byte sanitization and distance-accurate
// paper feeding, sequenced as job start → page loop → band loop → job end
// with cooperative cancellation.
package slip

import (
	"errors"
	"io"

	logInternal "github.com/AlexStarov/escpos-GoLang-slipfilter/log"
	"github.com/AlexStarov/escpos-GoLang-slipfilter/printer"
	"github.com/AlexStarov/escpos-GoLang-slipfilter/raster"
)

// Job drives one print job from the raster source to the output sink.
// It is single threaded; one page is resident at a time and is released
// on every exit path. The cancellation token is polled at page, band and
// scanline boundaries only, so commands are never truncated mid-byte.
type Job struct {
	Config *Config
	Source raster.Source
	Out    io.Writer
	Cancel *Token
	Files  *UserFiles // optional preamble/epilogue injection

	feed  FeedAccumulator
	pages int
}

// Run processes the whole job. It returns nil on success, ErrCanceled
// when the token was observed, or a *Error describing the failure. Job
// epilogue commands are attempted even after a failure, matching what the
// printer needs to release a loaded slip, but a failed job keeps its
// original error.
func (j *Job) Run() error {
	if err := j.Config.Validate(); err != nil {
		return err
	}
	j.Config.LogAttrs()

	err := j.startJob()
	for err == nil {
		hdr, nerr := j.Source.NextPage()
		if nerr == io.EOF {
			break
		}
		if nerr != nil {
			err = fail(KindSource, "read page header", nerr)
			break
		}

		j.pages++
		logInternal.Page(j.pages, hdr.NumCopies)
		logInternal.Attr("bytesPerLine", hdr.BytesPerLine)
		logInternal.Attr("bitsPerPixel", hdr.BitsPerPixel)
		logInternal.Attr("height", hdr.Height)
		logInternal.Attr("width", hdr.Width)

		if hdr.BitsPerPixel != 1 {
			err = failf(KindInput, "page header", "unsupported pixel depth %d", hdr.BitsPerPixel)
			break
		}

		err = j.doPage(hdr)
	}

	if err != nil {
		_ = j.endJob() // best effort; the first error stands
		return err
	}
	return j.endJob()
}

// startJob emits the job initialization commands: device reset, sheet
// selection, drawer and buzzer actions and the optional user preamble.
func (j *Job) startJob() error {
	if j.Cancel.Canceled() {
		return ErrCanceled
	}

	setup := [][]byte{
		printer.Initialize(),
		printer.SelectPrintSheet(),
		printer.SelectConfigSheet(),
		printer.DisableNearEndPrint(),
		printer.SelectSlipSide(),
	}
	for _, cmd := range setup {
		if err := j.write(cmd); err != nil {
			return err
		}
	}

	if err := j.openDrawer(); err != nil {
		return err
	}
	if err := j.soundBuzzer(); err != nil {
		return err
	}
	return j.inject("StartJob")
}

func (j *Job) openDrawer() error {
	if j.Config.Drawer == DrawerNotUsed {
		return nil
	}
	return j.write(printer.DrawerKick(byte(j.Config.Drawer - 1)))
}

func (j *Job) soundBuzzer() error {
	switch j.Config.Buzzer {
	case BuzzerInternal:
		return j.write(printer.InternalBuzzer())
	case BuzzerExternal:
		return j.write(printer.ExternalBuzzer())
	}
	return nil
}

// endJob emits the job epilogue. After cancellation it emits nothing.
func (j *Job) endJob() error {
	if j.Cancel.Canceled() {
		return ErrCanceled
	}
	return j.inject("EndJob")
}

// doPage runs one page: position the slip, buffer the raster, transcode
// it, eject. The page buffer is released on every path out.
func (j *Job) doPage(hdr *raster.PageHeader) error {
	if err := j.startPage(); err != nil {
		return err
	}

	buf, err := raster.NewPageBuffer(hdr)
	if err != nil {
		return fail(KindInput, "allocate page", err)
	}
	defer buf.Release()

	if err := j.readPage(buf); err != nil {
		return err
	}
	if err := j.writeRaster(buf); err != nil {
		return err
	}
	return j.endPage()
}

func (j *Job) startPage() error {
	if err := j.write(printer.FeedToPrintPosition()); err != nil {
		return err
	}
	return j.inject("StartPage")
}

func (j *Job) endPage() error {
	if j.Cancel.Canceled() {
		return ErrCanceled
	}
	if err := j.inject("EndPage"); err != nil {
		return err
	}
	return j.write(printer.EjectSlip())
}

// readPage pulls every scanline of the current page into the buffer. A
// read shorter than one scanline means the upstream stream is broken.
func (j *Job) readPage(buf *raster.PageBuffer) error {
	hdr := buf.Header()
	line := make([]byte, hdr.BytesPerLine)
	for i := 0; i < hdr.Height; i++ {
		if j.Cancel.Canceled() {
			return ErrCanceled
		}

		n, err := j.Source.ReadLine(line)
		if err != nil || n < hdr.BytesPerLine {
			logInternal.Debugf("scanline %d: short read %d/%d", i+1, n, hdr.BytesPerLine)
			return failf(KindSource, "read scanline", "line %d: %d of %d bytes (%v)", i, n, hdr.BytesPerLine, err)
		}
		if err := buf.WriteScanline(i, line); err != nil {
			return fail(KindInput, "store scanline", err)
		}
	}
	return nil
}

// writeRaster transcodes one buffered page: margin elision per the paper
// reduction policy, then the band loop over the printable range.
func (j *Job) writeRaster(buf *raster.PageBuffer) error {
	hdr := buf.Header()
	pr := j.Config.PaperReduction
	j.feed.Reset()

	m := FindMargins(buf)
	if m.Blank {
		// Nothing to print. Feed the whole page only when reduction is off.
		if pr == ReductionOff {
			return j.feedLines(hdr, hdr.Height)
		}
		return nil
	}

	if pr != ReductionTop && pr != ReductionBoth {
		if err := j.feedLines(hdr, m.Top); err != nil {
			return err
		}
	}

	line := m.Top
	for ; line+j.Config.MaxBandLines < m.End; line += j.Config.MaxBandLines {
		if j.Cancel.Canceled() {
			return ErrCanceled
		}
		if err := j.writeBand(buf, line, j.Config.MaxBandLines); err != nil {
			return err
		}
	}
	if line < m.End {
		if j.Cancel.Canceled() {
			return ErrCanceled
		}
		if err := j.writeBand(buf, line, m.End-line); err != nil {
			return err
		}
	}

	if pr != ReductionBottom && pr != ReductionBoth {
		if err := j.feedLines(hdr, hdr.Height-m.End); err != nil {
			return err
		}
	}
	return nil
}

// writeBand emits one band: header, transposed and sanitized payload, and
// the feed that advances the paper past the band.
func (j *Job) writeBand(buf *raster.PageBuffer, start, lines int) error {
	hdr := buf.Header()

	if err := j.write(printer.BandHeader(hdr.Width)); err != nil {
		return err
	}

	payload := TransposeBand(buf, start, lines)
	SanitizeBand(payload)
	if err := j.write(payload); err != nil {
		return err
	}

	// The head covers MaxBandLines of paper no matter how many scanlines
	// the final band actually carried.
	return j.feedLines(hdr, j.Config.MaxBandLines)
}

// feedLines advances the paper by the physical distance of the given
// scanline count, carrying sub-unit remainders across the page.
func (j *Job) feedLines(hdr *raster.PageHeader, lines int) error {
	units := j.feed.Units(lines, j.Config.VMotionUnit, hdr.HWResolutionY)
	if units == 0 {
		return nil
	}
	return j.write(printer.Feed(units))
}

// write pushes bytes to the sink, retrying interrupted writes only.
func (j *Job) write(b []byte) error {
	if err := printer.WriteAll(j.Out, b); err != nil {
		return fail(KindSink, "write output", err)
	}
	return nil
}

// IsCanceled reports whether err is the cancellation outcome.
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}
