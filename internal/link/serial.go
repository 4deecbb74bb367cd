package link

import (
	"context"
	"fmt"

	"github.com/markusressel/bed2go/internal/command"
	"github.com/markusressel/bed2go/internal/ui"
	"go.bug.st/serial"
)

// SerialLink is the command link to the host controller
type SerialLink struct {
	port     string
	baudRate int
}

func NewSerialLink(port string, baudRate int) *SerialLink {
	return &SerialLink{
		port:     port,
		baudRate: baudRate,
	}
}

func (l *SerialLink) Name() string {
	return fmt.Sprintf("serial %s", l.port)
}

// Run opens the serial port and delivers the received lines until ctx is done
func (l *SerialLink) Run(ctx context.Context, lines chan<- Line) error {
	port, err := serial.Open(l.port, &serial.Mode{
		BaudRate: l.baudRate,
	})
	if err != nil {
		return fmt.Errorf("failed to open serial port %s: %w", l.port, err)
	}
	ui.Info("Listening for host commands on %s (%d baud)", l.port, l.baudRate)

	stop := context.AfterFunc(ctx, func() {
		// unblocks the pending read
		_ = port.Close()
	})
	defer func() {
		if stop() {
			_ = port.Close()
		}
	}()

	return NewStreamSource(l.Name(), command.Host, port, port).Run(ctx, lines)
}

// Ports returns the names of all serial ports of the system
func Ports() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to list serial ports: %w", err)
	}
	return ports, nil
}
