package launch

import (
	"sync"

	"github.com/leandrodaf/launchboard/sdk/contracts"
)

type queueState uint8

const (
	queueOpen queueState = iota
	queueDraining
	queueAborted
)

// queue is an unbounded FIFO of messages feeding one subscriber.
// push never blocks; pop blocks until a message is available or the queue is shut.
type queue struct {
	mu    sync.Mutex
	cond  *sync.Cond
	items []contracts.Message
	head  int
	state queueState
}

func newQueue() *queue {
	q := &queue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// push appends msg and returns the backlog length, or 0 when the queue no longer accepts messages.
func (q *queue) push(msg contracts.Message) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.state != queueOpen {
		return 0
	}
	q.items = append(q.items, msg)
	q.cond.Signal()
	return len(q.items) - q.head
}

// pop returns the oldest message. ok is false once the queue was aborted, or
// drained and empty.
func (q *queue) pop() (msg contracts.Message, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.state == queueOpen && q.head == len(q.items) {
		q.cond.Wait()
	}
	if q.state == queueAborted || q.head == len(q.items) {
		return contracts.Message{}, false
	}

	msg = q.items[q.head]
	q.head++
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	} else if q.head > 1024 && q.head*2 >= len(q.items) {
		n := copy(q.items, q.items[q.head:])
		q.items = q.items[:n]
		q.head = 0
	}
	return msg, true
}

// drain stops accepting messages; pop keeps returning the backlog until it is empty.
func (q *queue) drain() {
	q.shut(queueDraining)
}

// abort stops accepting messages and drops the backlog, including the one of a draining queue.
func (q *queue) abort() {
	q.shut(queueAborted)
}

func (q *queue) shut(to queueState) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.state >= to {
		return
	}
	q.state = to
	if to == queueAborted {
		q.items = nil
		q.head = 0
	}
	q.cond.Broadcast()
}

func (q *queue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) - q.head
}
