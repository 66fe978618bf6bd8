// Package launch dispatches the messages of a Launch MIDI control surface to
// declaratively registered handlers.
//
// A Board reads 3-byte messages from the device in a single reader goroutine
// and copies each one onto the unbounded queue of every registered handler.
// Each handler runs in its own goroutine and only sees the messages matching
// its filter, in the order they were read:
//
//	board, err := launch.NewLaunchControlXL()
//	if err != nil {
//		return err
//	}
//	fader, _ := launch.LCXL2.Inputs.Fader(0)
//	_, err = board.Register(func(ctx context.Context, msg contracts.Message, dev contracts.Device) error {
//		return setVolume(msg.Value)
//	}, contracts.NewFilter(contracts.Input(fader)))
//	if err != nil {
//		return err
//	}
//	return board.Run(ctx)
//
// The first failing task (reader, handler or spawned animation) stops the
// whole run; nothing is retried.
package launch

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/leandrodaf/launchboard/sdk/contracts"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

const (
	readerTask  = "reader"
	startupTask = "startup"
)

// State is the lifecycle state of a Board.
type State int

const (
	// StateCreated accepts registrations.
	StateCreated State = iota
	// StateStarting opens the device and switches the declared lights off.
	StateStarting
	// StateRunning runs the reader and every subscriber.
	StateRunning
	// StateStopped is final; a board cannot be run twice.
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "State(" + strconv.Itoa(int(s)) + ")"
	}
}

// Board is the dispatch engine of one control surface.
type Board struct {
	opts contracts.BoardOptions
	log  contracts.Logger

	mu          sync.Mutex
	state       State
	subscribers []*subscriber
	dev         *device
	group       *errgroup.Group
	runCtx      context.Context
	spawned     int
}

// NewBoard creates a board with the specified options.
func NewBoard(opts ...contracts.Option) (*Board, error) {
	options, err := applyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &Board{opts: options, log: options.Logger}, nil
}

// State returns the current lifecycle state.
func (b *Board) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Register adds handler with the given filter. Registration is only possible
// before Run; afterwards it fails with ErrAlreadyStarted.
func (b *Board) Register(handler contracts.Handler, filter contracts.Filter) (Subscription, error) {
	return b.RegisterNamed("", handler, filter)
}

// RegisterNamed is Register with a name used in logs and task errors.
// An empty name is replaced by "handler-<n>".
func (b *Board) RegisterNamed(name string, handler contracts.Handler, filter contracts.Filter) (Subscription, error) {
	if handler == nil {
		return Subscription{}, contracts.ErrNilHandler
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state != StateCreated {
		return Subscription{}, fmt.Errorf("%w: register %q while %s", contracts.ErrAlreadyStarted, name, b.state)
	}
	if name == "" {
		name = "handler-" + strconv.Itoa(len(b.subscribers))
	}

	s := newSubscriber(name, filter, handler)
	b.subscribers = append(b.subscribers, s)

	b.log.Debug("Handler registered",
		b.log.Field().String("subscriber", s.Name),
		b.log.Field().Stringer("id", s.ID),
		b.log.Field().Stringer("filter", s.Filter))
	return s.Subscription, nil
}

// Subscriptions returns the registered handlers in broadcast order.
func (b *Board) Subscriptions() []Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Subscription, len(b.subscribers))
	for i, s := range b.subscribers {
		out[i] = s.Subscription
	}
	return out
}

// Run opens the device, switches every declared light off, then runs the
// reader and all subscribers until one of them fails or ctx is cancelled.
// It returns the first failure, as a *contracts.TaskError, or the context error.
func (b *Board) Run(ctx context.Context) error {
	b.mu.Lock()
	if b.state != StateCreated {
		state := b.state
		b.mu.Unlock()
		return fmt.Errorf("%w: board is %s", contracts.ErrAlreadyStarted, state)
	}
	b.state = StateStarting
	subs := append([]*subscriber(nil), b.subscribers...)
	b.mu.Unlock()

	defer b.stop()

	b.log.Info("Starting board",
		b.log.Field().String("path", b.opts.DevicePath),
		b.log.Field().Int("subscribers", len(subs)),
		b.log.Field().Int("lights", len(b.opts.Lights)))

	rw, err := b.opts.Opener(b.opts.DevicePath)
	if err != nil {
		if !errors.Is(err, contracts.ErrDeviceUnavailable) {
			err = fmt.Errorf("%w: %v", contracts.ErrDeviceUnavailable, err)
		}
		b.log.Error("Failed to open device", b.log.Field().Error("error", err))
		return err
	}
	dev := newDevice(rw, b.opts.Tracer, b.Spawn)

	if err := LightsOff(dev, b.opts.Lights); err != nil {
		err = &contracts.TaskError{Task: startupTask, Err: err}
		b.log.Error("Failed to reset lights", b.log.Field().Error("error", err))
		return multierr.Append(err, dev.close())
	}

	// Handlers and spawned tasks see runCtx. It outlives the group context
	// while the queues drain after a read failure.
	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()
	g, gctx := errgroup.WithContext(runCtx)
	drained := make(chan struct{})

	var handling sync.WaitGroup
	handling.Add(len(subs))
	handled := make(chan struct{})
	go func() {
		handling.Wait()
		close(handled)
	}()

	b.mu.Lock()
	b.dev = dev
	b.group = g
	b.runCtx = runCtx
	b.state = StateRunning
	b.mu.Unlock()

	// Tear down on the first failure or on cancellation: subscribers waiting
	// on their queues return, and closing the port unblocks the reader.
	// After a read failure the teardown waits until every subscriber is done
	// with its backlog, so handlers keep a live context and a writable port.
	teardown := make(chan struct{})
	go func() {
		defer close(teardown)
		<-gctx.Done()
		select {
		case <-drained:
			select {
			case <-handled:
			case <-runCtx.Done():
			}
		default:
		}
		cancelRun()
		for _, s := range subs {
			s.queue.abort()
		}
		_ = dev.close()
	}()

	g.Go(func() error {
		return b.broadcast(gctx, dev, subs, drained)
	})
	for _, s := range subs {
		s := s
		g.Go(func() error {
			defer handling.Done()
			return s.run(runCtx, dev)
		})
	}
	b.log.Info("Board running")

	_ = g.Wait()
	b.mu.Lock()
	cancelRun()
	b.mu.Unlock()
	// Joins tasks spawned between the end of the group and the cancellation.
	err = g.Wait()
	<-teardown

	if closeErr := dev.close(); closeErr != nil {
		err = multierr.Append(err, fmt.Errorf("close device: %w", closeErr))
	}

	var taskErr *contracts.TaskError
	switch {
	case errors.As(err, &taskErr):
		b.log.Error("Board stopped on task failure",
			b.log.Field().String("task", taskErr.Task),
			b.log.Field().Error("error", err))
	case err != nil:
		b.log.Info("Board stopped", b.log.Field().Error("reason", err))
	}
	return err
}

func (b *Board) stop() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.state = StateStopped
	b.group = nil
	b.runCtx = nil
	b.dev = nil
}

// Spawn runs fn alongside the reader and subscribers of the current run. fn
// receives the run context, which is cancelled when the run stops; Run waits
// for fn to return and a non-nil error from fn fails the run. Spawn returns
// ErrNotRunning when no run is in progress.
func (b *Board) Spawn(fn func(ctx context.Context) error) error {
	if fn == nil {
		return contracts.ErrNilHandler
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state != StateRunning || b.runCtx.Err() != nil {
		return contracts.ErrNotRunning
	}
	b.spawned++
	task := "spawn " + strconv.Itoa(b.spawned)
	ctx := b.runCtx
	b.group.Go(func() error {
		if err := fn(ctx); err != nil && ctx.Err() == nil {
			return &contracts.TaskError{Task: task, Err: err}
		}
		return nil
	})
	return nil
}

// SetColor sets a feedback light from outside a handler. It fails with
// ErrNotRunning when no run is in progress.
func (b *Board) SetColor(color, lightID byte) error {
	b.mu.Lock()
	dev := b.dev
	b.mu.Unlock()

	if dev == nil {
		return contracts.ErrNotRunning
	}
	return SetColor(dev, color, lightID)
}
