package slip

import (
	logInternal "github.com/AlexStarov/escpos-GoLang-slipfilter/log"
)

// PaperReduction controls whether blank top/bottom margins are physically
// fed or elided.
type PaperReduction int

const (
	ReductionOff PaperReduction = iota
	ReductionTop
	ReductionBottom
	ReductionBoth
)

func (r PaperReduction) String() string {
	switch r {
	case ReductionOff:
		return "Off"
	case ReductionTop:
		return "Top"
	case ReductionBottom:
		return "Bottom"
	case ReductionBoth:
		return "Both"
	}
	return "invalid"
}

// ParsePaperReduction maps the device-description choice to its mode.
func ParsePaperReduction(choice string) (PaperReduction, error) {
	switch choice {
	case "Off":
		return ReductionOff, nil
	case "Top":
		return ReductionTop, nil
	case "Bottom":
		return ReductionBottom, nil
	case "Both":
		return ReductionBoth, nil
	}
	return 0, failf(KindConfig, "paper reduction", "unrecognized choice %q", choice)
}

type Buzzer int

const (
	BuzzerNotUsed Buzzer = iota
	BuzzerInternal
	BuzzerExternal
)

type Drawer int

const (
	DrawerNotUsed Drawer = iota
	Drawer1
	Drawer2
)

// ParseBuzzerAndDrawer maps the combined device-description choice to the
// buzzer and drawer selections. The two share one keyword on the device.
func ParseBuzzerAndDrawer(choice string) (Buzzer, Drawer, error) {
	switch choice {
	case "NotUsed":
		return BuzzerNotUsed, DrawerNotUsed, nil
	case "InternalBuzzer":
		return BuzzerInternal, DrawerNotUsed, nil
	case "ExternalBuzzer":
		return BuzzerExternal, DrawerNotUsed, nil
	case "OpenDrawer1":
		return BuzzerNotUsed, Drawer1, nil
	case "OpenDrawer2":
		return BuzzerNotUsed, Drawer2, nil
	}
	return 0, 0, failf(KindConfig, "buzzer/drawer", "unrecognized choice %q", choice)
}

// Number of print head pins, and so the tallest band one command can carry.
const DefaultMaxBandLines = 8

// DefaultSpoolDir is where user preamble/epilogue command files live.
const DefaultSpoolDir = "/var/lib/tmx-cups"

// Config is the per-destination printer configuration, extracted from the
// device description before any page is processed.
type Config struct {
	PrinterName string

	// Motion units: physical units per resolution step, 1–255 each axis.
	HMotionUnit int
	VMotionUnit int

	PaperReduction PaperReduction
	Buzzer         Buzzer
	Drawer         Drawer

	MaxBandLines int
}

// Validate rejects out-of-range values before any page is processed.
func (c *Config) Validate() error {
	if c.HMotionUnit < 1 || c.HMotionUnit > 255 {
		return failf(KindConfig, "validate", "horizontal motion unit %d out of range [1,255]", c.HMotionUnit)
	}
	if c.VMotionUnit < 1 || c.VMotionUnit > 255 {
		return failf(KindConfig, "validate", "vertical motion unit %d out of range [1,255]", c.VMotionUnit)
	}
	if c.PaperReduction < ReductionOff || c.PaperReduction > ReductionBoth {
		return failf(KindConfig, "validate", "bad paper reduction mode %d", int(c.PaperReduction))
	}
	if c.MaxBandLines < 1 || c.MaxBandLines > DefaultMaxBandLines {
		return failf(KindConfig, "validate", "max band lines %d out of range [1,%d]", c.MaxBandLines, DefaultMaxBandLines)
	}
	return nil
}

// LogAttrs dumps the configuration to the job log.
func (c *Config) LogAttrs() {
	logInternal.Attr("printerName", c.PrinterName)
	logInternal.Attr("hMotionUnit", c.HMotionUnit)
	logInternal.Attr("vMotionUnit", c.VMotionUnit)
	logInternal.Attr("paperReduction", c.PaperReduction)
	logInternal.Attr("buzzerControl", int(c.Buzzer))
	logInternal.Attr("drawerControl", int(c.Drawer))
	logInternal.Attr("maxBandLines", c.MaxBandLines)
}
