package printer

import (
	"fmt"
	"time"

	"go.bug.st/serial"

	logInternal "github.com/AlexStarov/escpos-GoLang-slipfilter/log"
)

// NewSerialTransport открывает последовательный порт принтера
// (COM или /dev/ttyUSB*) и возвращает транспорт поверх него.
func NewSerialTransport(portName string, baudRate int) (Transport, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to list serial ports: %w", err)
	}

	if !contains(ports, portName) {
		logInternal.Errorf("serial port %s not found, available: %v", portName, ports)
		return nil, fmt.Errorf("serial port %s not found", portName)
	}

	mode := &serial.Mode{
		BaudRate: baudRate,
		Parity:   serial.NoParity,
		DataBits: 8,
		StopBits: serial.OneStopBit,
	}

	serialPort, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", portName, err)
	}
	serialPort.SetReadTimeout(100 * time.Millisecond)

	return &RawTransport{conn: serialPort}, nil
}

// Проверяем, есть ли порт в списке
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
