// ESC/POS transcoding filter for impact slip printers. Reads a one-bit
// raster page stream (stdin or the named file), converts it into the
// printer's band command stream and writes it to stdout, or directly to a
// device when -device is given.
//
// Invocation follows the spooler filter convention:
//
//	slipfilter job-id user title copies options [file]
//
// with the device description path in $PPD. Exit status is 0 on success,
// 1 on failure and 2 when the job was canceled.
package main

import (
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/google/gousb"

	logInternal "github.com/AlexStarov/escpos-GoLang-slipfilter/log"
	"github.com/AlexStarov/escpos-GoLang-slipfilter/ppd"
	"github.com/AlexStarov/escpos-GoLang-slipfilter/printer"
	"github.com/AlexStarov/escpos-GoLang-slipfilter/raster"
	"github.com/AlexStarov/escpos-GoLang-slipfilter/slip"
)

// Exit statuses reported to the invoking spooler. Cancellation is its own
// outcome, distinct from failure.
const (
	exitSuccess  = 0
	exitFailed   = 1
	exitCanceled = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("slipfilter", flag.ContinueOnError)
	device := fs.String("device", "",
		"write to usb:<vid>:<pid>, serial:<port>:<baud>, lpd://host[/queue] or file:<path> instead of stdout")
	spoolDir := fs.String("spool", slip.DefaultSpoolDir,
		"directory searched for user .prn command files")
	if err := fs.Parse(args); err != nil {
		return exitFailed
	}

	argv := fs.Args() // job-id user title copies options [file]
	if len(argv) != 5 && len(argv) != 6 {
		logInternal.Errorf("usage: %s job-id user title copies options [file]", filepath.Base(os.Args[0]))
		return exitFailed
	}

	input := io.ReadCloser(os.Stdin)
	if len(argv) == 6 {
		f, err := os.Open(argv[5])
		if err != nil {
			logInternal.Errorf("opening input: %v", err)
			return exitFailed
		}
		input = f
	}
	defer input.Close()

	// Переводим SIGTERM от планировщика в кооперативную отмену.
	token := slip.NewToken()
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGTERM)
	go func() {
		<-sig
		token.Cancel()
	}()

	printerName := filepath.Base(os.Args[0])
	cfg, err := loadConfig(printerName, argv[4])
	if err != nil {
		logInternal.Errorf("configuration: %v", err)
		return exitFailed
	}

	src, err := raster.NewReader(input)
	if err != nil {
		logInternal.Errorf("raster stream: %v", err)
		return exitFailed
	}

	out, err := openTransport(*device)
	if err != nil {
		logInternal.Errorf("output device: %v", err)
		return exitFailed
	}
	defer out.Close()

	job := &slip.Job{
		Config: cfg,
		Source: src,
		Out:    out,
		Cancel: token,
		Files:  &slip.UserFiles{Dir: *spoolDir, Printer: printerName},
	}

	switch err := job.Run(); {
	case err == nil:
		return exitSuccess
	case slip.IsCanceled(err):
		logInternal.Infof("job canceled")
		return exitCanceled
	default:
		logInternal.Errorf("%v", err)
		return exitFailed
	}
}

// loadConfig builds the printer configuration from the device description
// named by $PPD, with job options overriding the marked defaults.
func loadConfig(printerName, options string) (*slip.Config, error) {
	path := os.Getenv("PPD")
	if path == "" {
		return nil, fmt.Errorf("PPD environment variable not set")
	}
	p, err := ppd.Open(path)
	if err != nil {
		return nil, err
	}
	p.MarkDefaults()
	p.MarkOptions(options)

	hUnit, err := motionUnit(p, "TmxMotionUnitHori")
	if err != nil {
		return nil, err
	}
	vUnit, err := motionUnit(p, "TmxMotionUnitVert")
	if err != nil {
		return nil, err
	}

	choice, ok := p.MarkedChoice("TmxPaperReduction")
	if !ok {
		return nil, fmt.Errorf("no TmxPaperReduction choice marked")
	}
	reduction, err := slip.ParsePaperReduction(choice)
	if err != nil {
		return nil, err
	}

	choice, ok = p.MarkedChoice("TmxBuzzerAndDrawer")
	if !ok {
		return nil, fmt.Errorf("no TmxBuzzerAndDrawer choice marked")
	}
	buzzer, drawer, err := slip.ParseBuzzerAndDrawer(choice)
	if err != nil {
		return nil, err
	}

	cfg := &slip.Config{
		PrinterName:    printerName,
		HMotionUnit:    hUnit,
		VMotionUnit:    vUnit,
		PaperReduction: reduction,
		Buzzer:         buzzer,
		Drawer:         drawer,
		MaxBandLines:   slip.DefaultMaxBandLines,
	}
	return cfg, cfg.Validate()
}

func motionUnit(p *ppd.PPD, keyword string) (int, error) {
	attr, ok := p.Attr(keyword)
	if !ok {
		return 0, fmt.Errorf("attribute %s missing from device description", keyword)
	}
	unit, err := strconv.Atoi(strings.TrimSpace(attr.Value))
	if err != nil {
		return 0, fmt.Errorf("attribute %s: %w", keyword, err)
	}
	return unit, nil
}

// openTransport maps the -device flag onto an output transport; with no
// flag the command stream goes to stdout for the spooler backend.
func openTransport(device string) (printer.Transport, error) {
	if device == "" {
		return printer.NewRawTransport(os.Stdout), nil
	}

	switch {
	case strings.HasPrefix(device, "file:"):
		f, err := os.Create(strings.TrimPrefix(device, "file:"))
		if err != nil {
			return nil, err
		}
		return printer.NewRawTransport(f), nil

	case strings.HasPrefix(device, "usb:"):
		parts := strings.Split(strings.TrimPrefix(device, "usb:"), ":")
		if len(parts) != 2 {
			return nil, fmt.Errorf("usb device must be usb:<vid>:<pid>")
		}
		vid, err := strconv.ParseUint(parts[0], 16, 16)
		if err != nil {
			return nil, fmt.Errorf("bad vendor id %q: %w", parts[0], err)
		}
		pid, err := strconv.ParseUint(parts[1], 16, 16)
		if err != nil {
			return nil, fmt.Errorf("bad product id %q: %w", parts[1], err)
		}
		return printer.NewUSBTransport(gousb.ID(vid), gousb.ID(pid))

	case strings.HasPrefix(device, "serial:"):
		parts := strings.Split(strings.TrimPrefix(device, "serial:"), ":")
		if len(parts) != 2 {
			return nil, fmt.Errorf("serial device must be serial:<port>:<baud>")
		}
		baud, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, fmt.Errorf("bad baud rate %q: %w", parts[1], err)
		}
		return printer.NewSerialTransport(parts[0], baud)

	case strings.HasPrefix(device, "lpd://"):
		rest := strings.TrimPrefix(device, "lpd://")
		host, queue, _ := strings.Cut(rest, "/")
		if !strings.Contains(host, ":") {
			host += ":515"
		}
		conn, err := net.Dial("tcp", host)
		if err != nil {
			return nil, err
		}
		return printer.NewLPDTransport(conn, queue), nil
	}
	return nil, fmt.Errorf("unrecognized device %q", device)
}
