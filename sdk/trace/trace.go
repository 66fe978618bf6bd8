// Package trace records the raw frames exchanged with a control surface as a
// stream of CBOR events, separate from operational logging. A trace file can be
// replayed with Reader to inspect exactly what the board saw and sent.
package trace

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
	"github.com/leandrodaf/launchboard/sdk/contracts"
)

// Event is one traced frame. CBOR encoding uses integer keys for compactness.
type Event struct {
	Timestamp time.Time           `cbor:"1,keyasint"`
	RunID     string              `cbor:"2,keyasint"`
	Direction contracts.Direction `cbor:"3,keyasint"`
	Frame     []byte              `cbor:"4,keyasint"`
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	encMode, err = cbor.EncOptions{
		Sort:        cbor.SortCanonical,
		IndefLength: cbor.IndefLengthForbidden,
		Time:        cbor.TimeRFC3339Nano,
	}.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create trace CBOR encoder mode: %v", err))
	}

	decMode, err = cbor.DecOptions{
		DupMapKey: cbor.DupMapKeyQuiet,
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create trace CBOR decoder mode: %v", err))
	}
}

// CBORTracer implements contracts.Tracer by appending CBOR events to a writer.
// Encoding failures are logged and otherwise ignored so tracing never stops a run.
type CBORTracer struct {
	runID  string
	logger contracts.Logger

	mu  sync.Mutex
	enc *cbor.Encoder
}

// NewCBORTracer returns a tracer writing to w. Every event carries a fresh run ID.
func NewCBORTracer(w io.Writer, logger contracts.Logger) *CBORTracer {
	return &CBORTracer{
		runID:  uuid.NewString(),
		logger: logger,
		enc:    encMode.NewEncoder(w),
	}
}

// RunID identifies the events written by this tracer.
func (t *CBORTracer) RunID() string {
	return t.runID
}

// Trace implements contracts.Tracer.
func (t *CBORTracer) Trace(at time.Time, dir contracts.Direction, frame []byte) {
	event := Event{
		Timestamp: at,
		RunID:     t.runID,
		Direction: dir,
		Frame:     append([]byte(nil), frame...),
	}

	t.mu.Lock()
	err := t.enc.Encode(event)
	t.mu.Unlock()

	if err != nil && t.logger != nil {
		t.logger.Warn("Failed to write trace event",
			t.logger.Field().Stringer("direction", dir),
			t.logger.Field().Error("error", err))
	}
}

// Reader decodes events written by a CBORTracer.
type Reader struct {
	dec *cbor.Decoder
}

// NewReader returns a Reader consuming r.
func NewReader(r io.Reader) *Reader {
	return &Reader{dec: decMode.NewDecoder(r)}
}

// Next returns the next event, or io.EOF when the stream is exhausted.
func (r *Reader) Next() (Event, error) {
	var event Event
	if err := r.dec.Decode(&event); err != nil {
		if errors.Is(err, io.EOF) {
			return Event{}, io.EOF
		}
		return Event{}, fmt.Errorf("decode trace event: %w", err)
	}
	return event, nil
}

var _ contracts.Tracer = (*CBORTracer)(nil)
