package launch

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/leandrodaf/launchboard/internal/logger"
	"github.com/leandrodaf/launchboard/sdk/contracts"
	"github.com/stretchr/testify/require"
)

// fakePort is a scripted device. Reads are served from frames; once frames is
// closed, reads fail with readErr (io.EOF when nil). Every Read call and
// every Write is recorded in ops.
type fakePort struct {
	frames  chan []byte
	readErr error

	mu      sync.Mutex
	ops     []string
	writes  [][]byte
	pending []byte

	closed    chan struct{}
	closeOnce sync.Once
}

func newFakePort(frames ...[]byte) *fakePort {
	p := &fakePort{
		frames: make(chan []byte, len(frames)+64),
		closed: make(chan struct{}),
	}
	for _, f := range frames {
		p.frames <- f
	}
	return p
}

// finish makes every read after the scripted frames fail with err.
func (p *fakePort) finish(err error) *fakePort {
	p.readErr = err
	close(p.frames)
	return p
}

func (p *fakePort) Read(b []byte) (int, error) {
	p.mu.Lock()
	p.ops = append(p.ops, "read")
	pending := p.pending
	p.mu.Unlock()

	if len(pending) == 0 {
		select {
		case f, ok := <-p.frames:
			if !ok {
				if p.readErr != nil {
					return 0, p.readErr
				}
				return 0, io.EOF
			}
			pending = f
		case <-p.closed:
			return 0, os.ErrClosed
		}
	}

	n := copy(b, pending)
	p.mu.Lock()
	p.pending = pending[n:]
	p.mu.Unlock()
	return n, nil
}

func (p *fakePort) Write(b []byte) (int, error) {
	select {
	case <-p.closed:
		return 0, os.ErrClosed
	default:
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.ops = append(p.ops, fmt.Sprintf("write % x", b))
	p.writes = append(p.writes, append([]byte(nil), b...))
	return len(b), nil
}

func (p *fakePort) Close() error {
	p.closeOnce.Do(func() { close(p.closed) })
	return nil
}

func (p *fakePort) isClosed() bool {
	select {
	case <-p.closed:
		return true
	default:
		return false
	}
}

func (p *fakePort) recordedOps() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.ops...)
}

func (p *fakePort) recordedWrites() [][]byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([][]byte(nil), p.writes...)
}

func openerFor(p *fakePort) contracts.Opener {
	return func(string) (io.ReadWriteCloser, error) {
		return p, nil
	}
}

func newTestBoard(t *testing.T, p *fakePort, opts ...contracts.Option) *Board {
	t.Helper()
	base := []contracts.Option{
		contracts.WithLogger(logger.NewNop()),
		contracts.WithOpener(openerFor(p)),
	}
	b, err := NewBoard(append(base, opts...)...)
	require.NoError(t, err)
	return b
}

// runAsync starts b.Run and returns a channel receiving its result.
func runAsync(ctx context.Context, b *Board) <-chan error {
	done := make(chan error, 1)
	go func() { done <- b.Run(ctx) }()
	return done
}

func waitRun(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("board did not stop")
		return nil
	}
}

// recorder collects the messages seen by a handler.
type recorder struct {
	mu   sync.Mutex
	msgs []contracts.Message
}

func (r *recorder) handle(_ context.Context, msg contracts.Message, _ contracts.Device) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
	return nil
}

func (r *recorder) messages() []contracts.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]contracts.Message(nil), r.msgs...)
}
