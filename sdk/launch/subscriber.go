package launch

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/leandrodaf/launchboard/sdk/contracts"
)

// Subscription identifies a registered handler.
type Subscription struct {
	ID     uuid.UUID
	Name   string
	Filter contracts.Filter
}

// subscriber binds a handler to its filter and inbound queue.
type subscriber struct {
	Subscription
	handler contracts.Handler
	queue   *queue
}

func newSubscriber(name string, filter contracts.Filter, handler contracts.Handler) *subscriber {
	return &subscriber{
		Subscription: Subscription{ID: uuid.New(), Name: name, Filter: filter},
		handler:      handler,
		queue:        newQueue(),
	}
}

func (s *subscriber) task() string {
	return "subscriber " + s.Name
}

// run waits for messages and hands the matching ones to the handler, one at a
// time and in arrival order. It returns nil once the queue is shut and the
// first handler error otherwise.
func (s *subscriber) run(ctx context.Context, dev contracts.Device) error {
	for {
		msg, ok := s.queue.pop()
		if !ok {
			return nil
		}
		if !s.Filter.Matches(msg) {
			continue
		}
		if err := s.call(ctx, msg, dev); err != nil {
			return &contracts.TaskError{
				Task: s.task(),
				Err:  fmt.Errorf("%w: %w", contracts.ErrHandlerFailure, err),
			}
		}
	}
}

func (s *subscriber) call(ctx context.Context, msg contracts.Message, dev contracts.Device) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic handling %s: %v", msg, r)
		}
	}()
	return s.handler(ctx, msg, dev)
}
