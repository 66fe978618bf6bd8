package launch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/leandrodaf/launchboard/sdk/contracts"
)

// device owns the port for the duration of a run. Only the reader goroutine
// reads; any goroutine may write, one command at a time.
type device struct {
	rw     io.ReadWriteCloser
	tracer contracts.Tracer
	spawn  func(fn func(ctx context.Context) error) error

	mu sync.Mutex // serialises writes

	closeOnce sync.Once
	closeErr  error
}

func newDevice(rw io.ReadWriteCloser, tracer contracts.Tracer, spawn func(func(context.Context) error) error) *device {
	return &device{rw: rw, tracer: tracer, spawn: spawn}
}

// readMessage reads exactly one message. A stream ending in the middle of a
// message yields ErrMalformedMessage; any other failure yields ErrDeviceRead.
func (d *device) readMessage() (contracts.Message, error) {
	var buf [contracts.MessageSize]byte
	n, err := io.ReadFull(d.rw, buf[:])
	if err != nil {
		if n > 0 && errors.Is(err, io.ErrUnexpectedEOF) {
			return contracts.ParseMessage(buf[:n])
		}
		return contracts.Message{}, fmt.Errorf("%w: %v", contracts.ErrDeviceRead, err)
	}
	if d.tracer != nil {
		d.tracer.Trace(time.Now(), contracts.DirectionIn, buf[:])
	}
	return contracts.ParseMessage(buf[:])
}

// Write implements contracts.Device.
func (d *device) Write(raw []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	n, err := d.rw.Write(raw)
	if err == nil && n < len(raw) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return fmt.Errorf("%w: %v", contracts.ErrDeviceWrite, err)
	}
	if d.tracer != nil {
		d.tracer.Trace(time.Now(), contracts.DirectionOut, raw)
	}
	return nil
}

// SetColor implements contracts.Device.
func (d *device) SetColor(color, lightID byte) error {
	return SetColor(d, color, lightID)
}

// Spawn implements contracts.Device.
func (d *device) Spawn(fn func(ctx context.Context) error) error {
	return d.spawn(fn)
}

func (d *device) close() error {
	d.closeOnce.Do(func() {
		d.closeErr = d.rw.Close()
	})
	return d.closeErr
}

var _ contracts.Device = (*device)(nil)
