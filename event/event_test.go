package event

import (
	"bytes"
	"encoding/json"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lixenwraith/vi-saber/core"
	"github.com/lixenwraith/vi-saber/parameter"
)

func TestFanoutAndRecorder(t *testing.T) {
	var a, b Recorder
	calls := 0
	sink := Fanout{&a, Discard, SinkFunc(func(Feedback) { calls++ }), &b}

	sink.Notify(Feedback{Kind: KindMiss, Block: 3})
	sink.Notify(Feedback{Kind: KindSliceSuccess, Block: 4})

	assert.Equal(t, []Kind{KindMiss, KindSliceSuccess}, a.Kinds())
	if diff := cmp.Diff(a.Events, b.Events); diff != "" {
		t.Fatalf("recorders diverged (-a +b):\n%s", diff)
	}
	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, a.Count(KindMiss))

	a.Reset()
	assert.Empty(t, a.Events)
}

func TestLogSink_Levels(t *testing.T) {
	var buf bytes.Buffer
	sink := NewLogSink(zerolog.New(&buf).Level(zerolog.DebugLevel))

	sink.Notify(Feedback{Kind: KindSliceFail, Block: 7, Reason: core.ReasonTooSlow, Position: r3.Vec{Z: 1}})
	sink.Notify(Feedback{Kind: KindGeometryFallback, Block: 8})

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var first, second map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &first))
	require.NoError(t, json.Unmarshal(lines[1], &second))

	assert.Equal(t, "debug", first["level"])
	assert.Equal(t, "too_slow", first["reason"])
	assert.Equal(t, "feedback", first["component"])
	assert.Equal(t, float64(7), first["block"])
	assert.Equal(t, "warn", second["level"])
	assert.Equal(t, "geometry_fallback", second["kind"])
}

func TestQueue_FIFOAndOverflow(t *testing.T) {
	q := NewQueue()
	assert.Nil(t, q.Consume())

	for i := 0; i < 3; i++ {
		q.Notify(Feedback{Block: core.BlockID(i)})
	}
	assert.Equal(t, 3, q.Len())
	got := q.Consume()
	require.Len(t, got, 3)
	assert.Equal(t, core.BlockID(0), got[0].Block)
	assert.Equal(t, 0, q.Len())

	total := parameter.FeedbackQueueSize + 10
	for i := 0; i < total; i++ {
		q.Notify(Feedback{Block: core.BlockID(i)})
	}
	got = q.Consume()
	require.Len(t, got, parameter.FeedbackQueueSize)
	assert.Equal(t, core.BlockID(10), got[0].Block, "oldest overwritten")
}

func TestQueue_ConcurrentProducers(t *testing.T) {
	q := NewQueue()
	var wg sync.WaitGroup
	for p := 0; p < 4; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				q.Notify(Feedback{Kind: KindSliceSuccess})
			}
		}()
	}
	wg.Wait()
	assert.Len(t, q.Consume(), 80)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "slice_success", KindSliceSuccess.String())
	assert.Equal(t, "kind(99)", Kind(99).String())
}
