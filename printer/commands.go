package printer

import (
	utilInternal "github.com/AlexStarov/escpos-GoLang-slipfilter/util"
)

// Control bytes used by the slip command set.
const (
	ESC = 0x1B
	GS  = 0x1D
	FF  = 0x0C
)

// Single feed command distance limit (ESC J takes one byte).
const MaxFeedUnits = 0xFF

// Initialize selects the peripheral device and resets the printer.
func Initialize() []byte {
	return []byte{ESC, '=', 0x01, ESC, '@'}
}

// SelectPrintSheet chooses the slip as the sheet to print on.
func SelectPrintSheet() []byte {
	return []byte{ESC, 'c', '0', 0x04}
}

// SelectConfigSheet chooses the slip as the sheet the following
// configuration commands apply to.
func SelectConfigSheet() []byte {
	return []byte{ESC, 'c', '1', 0x04}
}

// DisableNearEndPrint turns off printing stop on paper near-end.
func DisableNearEndPrint() []byte {
	return []byte{ESC, 'c', '3', 0x00}
}

// SelectSlipSide selects the side of the slip to print on. GS ( G fn 48.
func SelectSlipSide() []byte {
	return []byte{GS, '(', 'G', 2, 0, 48, 4}
}

// FeedToPrintPosition feeds the slip to its print starting position.
// GS ( G fn 84.
func FeedToPrintPosition() []byte {
	return []byte{GS, '(', 'G', 2, 0, 84, 1}
}

// DrawerKick fires the drawer kick-out connector pin (0 or 1) with a
// 100 ms on, 400 ms off pulse.
func DrawerKick(pin byte) []byte {
	return []byte{ESC, 'p', pin, 50, 200}
}

// InternalBuzzer pulses the internal buzzer through connector pin 1.
func InternalBuzzer() []byte {
	return []byte{ESC, 'p', 1, 50, 200}
}

// ExternalBuzzer sounds the external option buzzer once. ESC ( A.
func ExternalBuzzer() []byte {
	return []byte{ESC, '(', 'A', 5, 0, 97, 100, 1, 50, 200}
}

// BandHeader starts one 8-pin band of widthDots columns. ESC * m=1; the
// transposed band payload follows.
func BandHeader(widthDots int) []byte {
	cmd := []byte{ESC, '*', 1}
	return append(cmd, utilInternal.IntLowHigh(widthDots, 2)...)
}

// Feed moves the paper forward by units motion units, chunking at the
// single-command maximum so the total distance is preserved exactly.
func Feed(units int) []byte {
	var cmd []byte
	for ; units > MaxFeedUnits; units -= MaxFeedUnits {
		cmd = append(cmd, ESC, 'J', MaxFeedUnits)
	}
	if units > 0 {
		cmd = append(cmd, ESC, 'J', byte(units))
	}
	return cmd
}

// EjectSlip prints the buffered data and releases the slip. ESC F + FF.
func EjectSlip() []byte {
	return []byte{ESC, 'F', 0, FF}
}
