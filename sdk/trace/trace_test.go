package trace

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/leandrodaf/launchboard/internal/logger"
	"github.com/leandrodaf/launchboard/sdk/contracts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracerWritesReadableEvents(t *testing.T) {
	var buf bytes.Buffer
	tracer := NewCBORTracer(&buf, logger.NewNop())

	_, err := uuid.Parse(tracer.RunID())
	require.NoError(t, err)

	in := time.Date(2026, 10, 17, 9, 30, 0, 123456789, time.UTC)
	out := in.Add(time.Millisecond)
	frame := []byte{0x90, 0x29, 0x7f}
	tracer.Trace(in, contracts.DirectionIn, frame)
	frame[2] = 0 // the tracer must not retain the caller's slice
	tracer.Trace(out, contracts.DirectionOut, []byte{0x90, 13, 0})

	r := NewReader(&buf)

	first, err := r.Next()
	require.NoError(t, err)
	assert.True(t, first.Timestamp.Equal(in))
	assert.Equal(t, tracer.RunID(), first.RunID)
	assert.Equal(t, contracts.DirectionIn, first.Direction)
	assert.Equal(t, []byte{0x90, 0x29, 0x7f}, first.Frame)

	second, err := r.Next()
	require.NoError(t, err)
	assert.True(t, second.Timestamp.Equal(out))
	assert.Equal(t, contracts.DirectionOut, second.Direction)
	assert.Equal(t, []byte{0x90, 13, 0}, second.Frame)

	_, err = r.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestReaderRejectsGarbage(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0xff, 0x00}))
	_, err := r.Next()
	require.Error(t, err)
	assert.NotErrorIs(t, err, io.EOF)
}
