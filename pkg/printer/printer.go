package printer

import (
	"fmt"
	"net"
	"sync"
	"time"

	"go.bug.st/serial"
)

// Printer is the interface for sending raw ESC/POS data to a thermal printer.
type Printer interface {
	// Print sends raw ESC/POS bytes to the printer.
	Print(data []byte) error
	// Close releases the printer connection/handle.
	Close() error
	// IsConnected returns true if the printer connection is active.
	IsConnected() bool
}

// --- Serial printer (opens a serial port, e.g. /dev/ttyUSB0 at 9600 baud) ---

type serialPrinter struct {
	device       string
	baud         int
	writeTimeout time.Duration
	settleDelay  time.Duration

	// The port is a singleton physical resource; one writer at a time or
	// concurrent jobs interleave their byte streams on paper.
	mu sync.Mutex
}

// NewSerialPrinter creates a printer that writes to a serial device at the
// given baud rate. Each job opens the port, writes, waits briefly for the
// transmit buffer to drain, and closes it again. The write is bounded by a
// ~2 second timeout because serial hardware can otherwise hang indefinitely.
func NewSerialPrinter(device string, baud int) Printer {
	if baud <= 0 {
		baud = 9600
	}
	return &serialPrinter{
		device:       device,
		baud:         baud,
		writeTimeout: 2 * time.Second,
		settleDelay:  500 * time.Millisecond,
	}
}

func (p *serialPrinter) Print(data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	port, err := serial.Open(p.device, &serial.Mode{BaudRate: p.baud})
	if err != nil {
		return fmt.Errorf("printer: failed to open serial port %s: %w", p.device, err)
	}

	done := make(chan error, 1)
	go func() {
		_, werr := port.Write(data)
		if werr == nil {
			werr = port.Drain()
		}
		done <- werr
	}()

	select {
	case err = <-done:
		if err != nil {
			port.Close()
			return fmt.Errorf("printer: failed to write to serial port %s: %w", p.device, err)
		}
	case <-time.After(p.writeTimeout):
		// Closing the port unblocks the stuck writer.
		port.Close()
		return fmt.Errorf("printer: write to serial port %s timed out after %s", p.device, p.writeTimeout)
	}

	// Give the printer time to consume the stream before dropping DTR.
	time.Sleep(p.settleDelay)
	if err := port.Close(); err != nil {
		return fmt.Errorf("printer: failed to close serial port %s: %w", p.device, err)
	}
	return nil
}

func (p *serialPrinter) Close() error {
	return nil // Serial printer opens/closes per print job
}

func (p *serialPrinter) IsConnected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	port, err := serial.Open(p.device, &serial.Mode{BaudRate: p.baud})
	if err != nil {
		return false
	}
	port.Close()
	return true
}

// --- Network printer (dials TCP, e.g. 192.168.1.100:9100) ---

type networkPrinter struct {
	address string
	timeout time.Duration
	mu      sync.Mutex
}

// NewNetworkPrinter creates a printer that connects via TCP.
// Address should include port, e.g. "192.168.1.100:9100".
func NewNetworkPrinter(address string) Printer {
	return &networkPrinter{
		address: address,
		timeout: 2 * time.Second,
	}
}

func (p *networkPrinter) Print(data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	conn, err := net.DialTimeout("tcp", p.address, p.timeout)
	if err != nil {
		return fmt.Errorf("printer: failed to connect to %s: %w", p.address, err)
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(p.timeout))

	_, err = conn.Write(data)
	if err != nil {
		return fmt.Errorf("printer: failed to write to %s: %w", p.address, err)
	}
	return nil
}

func (p *networkPrinter) Close() error {
	return nil // Network printer opens/closes per print job
}

func (p *networkPrinter) IsConnected() bool {
	conn, err := net.DialTimeout("tcp", p.address, p.timeout)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// --- Null printer (no-op, used when no printer is configured) ---

type nullPrinter struct{}

// NewNullPrinter creates a no-op printer for environments without hardware.
func NewNullPrinter() Printer {
	return &nullPrinter{}
}

func (p *nullPrinter) Print(data []byte) error {
	return nil
}

func (p *nullPrinter) Close() error {
	return nil
}

func (p *nullPrinter) IsConnected() bool {
	return false
}

// NewPrinterFromConfig creates the appropriate Printer based on type.
//
//	printerType: "serial", "network", or "none"
//	device: serial device path (e.g. "/dev/ttyUSB0")
//	baud: serial baud rate (e.g. 9600)
//	address: TCP address for network printers (e.g. "192.168.1.100:9100")
func NewPrinterFromConfig(printerType, device string, baud int, address string) (Printer, error) {
	switch printerType {
	case "serial":
		if device == "" {
			return nil, fmt.Errorf("printer: device path is required for serial printer type")
		}
		return NewSerialPrinter(device, baud), nil
	case "network":
		if address == "" {
			return nil, fmt.Errorf("printer: address is required for network printer type")
		}
		return NewNetworkPrinter(address), nil
	case "none", "":
		return NewNullPrinter(), nil
	default:
		return nil, fmt.Errorf("printer: unknown printer type %q (use serial, network, or none)", printerType)
	}
}
