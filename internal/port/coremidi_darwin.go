//go:build darwin

package port

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/leandrodaf/launchboard/sdk/contracts"
	"github.com/youpy/go-coremidi"
)

// ClientName is the CoreMIDI client name announced to the system.
const ClientName = "launchboard"

var errEndpointNotFound = errors.New("CoreMIDI endpoint not found")

// portConnection is the subset of the CoreMIDI connection used to detach the input port.
type portConnection interface {
	Disconnect()
}

// coreMIDIPort bridges a CoreMIDI source/destination pair to a byte stream.
// Packets delivered by CoreMIDI are copied into a pipe consumed by Read.
type coreMIDIPort struct {
	out         coremidi.OutputPort
	destination coremidi.Destination
	conn        portConnection
	pr          *io.PipeReader
	pw          *io.PipeWriter
	mu          sync.Mutex // serialises Send
	closeOnce   sync.Once
}

func openCoreMIDI(name string) (io.ReadWriteCloser, error) {
	client, err := coremidi.NewClient(ClientName)
	if err != nil {
		return nil, fmt.Errorf("%w: create CoreMIDI client: %v", contracts.ErrDeviceUnavailable, err)
	}

	source, err := findSource(name)
	if err != nil {
		return nil, err
	}
	destination, err := findDestination(name)
	if err != nil {
		return nil, err
	}

	out, err := coremidi.NewOutputPort(client, "Output Port")
	if err != nil {
		return nil, fmt.Errorf("%w: create output port: %v", contracts.ErrDeviceUnavailable, err)
	}

	pr, pw := io.Pipe()
	p := &coreMIDIPort{out: out, destination: destination, pr: pr, pw: pw}

	in, err := coremidi.NewInputPort(client, "Input Port", p.handlePacket)
	if err != nil {
		return nil, fmt.Errorf("%w: create input port: %v", contracts.ErrDeviceUnavailable, err)
	}
	conn, err := in.Connect(source)
	if err != nil {
		return nil, fmt.Errorf("%w: connect %q: %v", contracts.ErrDeviceUnavailable, name, err)
	}
	p.conn = conn
	return p, nil
}

func findSource(name string) (coremidi.Source, error) {
	sources, err := coremidi.AllSources()
	if err != nil {
		return coremidi.Source{}, fmt.Errorf("%w: list sources: %v", contracts.ErrDeviceUnavailable, err)
	}
	for _, source := range sources {
		if source.Name() == name {
			return source, nil
		}
	}
	return coremidi.Source{}, fmt.Errorf("%w: %w: source %q", contracts.ErrDeviceUnavailable, errEndpointNotFound, name)
}

func findDestination(name string) (coremidi.Destination, error) {
	destinations, err := coremidi.AllDestinations()
	if err != nil {
		return coremidi.Destination{}, fmt.Errorf("%w: list destinations: %v", contracts.ErrDeviceUnavailable, err)
	}
	for _, destination := range destinations {
		if destination.Name() == name {
			return destination, nil
		}
	}
	return coremidi.Destination{}, fmt.Errorf("%w: %w: destination %q", contracts.ErrDeviceUnavailable, errEndpointNotFound, name)
}

// handlePacket runs on a CoreMIDI thread and blocks until Read consumes the data.
func (p *coreMIDIPort) handlePacket(_ coremidi.Source, packet coremidi.Packet) {
	_, _ = p.pw.Write(packet.Data)
}

func (p *coreMIDIPort) Read(b []byte) (int, error) {
	return p.pr.Read(b)
}

func (p *coreMIDIPort) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	packet := coremidi.NewPacket(b, 0)
	if err := packet.Send(&p.out, &p.destination); err != nil {
		return 0, err
	}
	return len(b), nil
}

func (p *coreMIDIPort) Close() error {
	p.closeOnce.Do(func() {
		if p.conn != nil {
			p.conn.Disconnect()
		}
		_ = p.pw.CloseWithError(io.EOF)
	})
	return nil
}
