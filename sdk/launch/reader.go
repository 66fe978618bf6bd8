package launch

import (
	"context"
	"math/bits"

	"github.com/leandrodaf/launchboard/sdk/contracts"
)

// backlogWarning is the queue length from which growing backlogs are reported.
const backlogWarning = 64

// broadcast reads messages from dev until it fails and pushes each one onto
// every subscriber queue in registration order.
//
// When the read fails on its own the queues are drained rather than aborted,
// so messages already read still reach their handlers, and drained is closed
// before the error is returned. When the run was
// cancelled first, the read error is only the consequence of the teardown and
// the context error is returned instead.
func (b *Board) broadcast(ctx context.Context, dev *device, subs []*subscriber, drained chan<- struct{}) error {
	for {
		msg, err := dev.readMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			for _, s := range subs {
				s.queue.drain()
				if n := s.queue.len(); n > 0 {
					b.log.Info("Draining subscriber backlog",
						b.log.Field().String("subscriber", s.Name),
						b.log.Field().Int("backlog", n))
				}
			}
			close(drained)
			return &contracts.TaskError{Task: readerTask, Err: err}
		}

		b.log.Debug("MIDI message received",
			b.log.Field().Stringer("message", msg),
			b.log.Field().Uint8("code", msg.Code),
			b.log.Field().Uint8("input", msg.Input),
			b.log.Field().Uint8("value", msg.Value))

		for _, s := range subs {
			if n := s.queue.push(msg); n >= backlogWarning && bits.OnesCount(uint(n)) == 1 {
				b.log.Warn("Subscriber backlog growing",
					b.log.Field().String("subscriber", s.Name),
					b.log.Field().Int("backlog", n))
			}
		}
	}
}
