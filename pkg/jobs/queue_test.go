package jobs

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	mu   sync.Mutex
	seen []string
}

func (h *recordingHandler) handle(ctx context.Context, job Job) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.seen = append(h.seen, job.ID)
	return nil
}

func (h *recordingHandler) ids() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.seen...)
}

func TestQueueProcessesJobs(t *testing.T) {
	h := &recordingHandler{}
	q := NewQueue("test", h.handle, QueueConfig{Workers: 2})
	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job{ID: "j1", Type: "noop"}))
	require.NoError(t, q.Enqueue(Job{ID: "j2", Type: "noop"}))

	q.Stop()
	assert.ElementsMatch(t, []string{"j1", "j2"}, h.ids())
}

func TestQueueStopDrainsBufferedJobs(t *testing.T) {
	h := &recordingHandler{}
	q := NewQueue("test", h.handle, QueueConfig{Workers: 1, BufferSize: 16})
	q.Start(context.Background())

	for _, id := range []string{"a", "b", "c", "d", "e"} {
		require.NoError(t, q.Enqueue(Job{ID: id, Type: "noop"}))
	}

	// Stop must not return until everything queued has been handled.
	q.Stop()
	assert.Len(t, h.ids(), 5)
}

func TestQueueRejectsAfterStop(t *testing.T) {
	q := NewQueue("test", (&recordingHandler{}).handle, QueueConfig{Workers: 1})
	q.Start(context.Background())
	q.Stop()

	assert.Error(t, q.Enqueue(Job{ID: "late", Type: "noop"}))
}

func TestQueueRejectsBeforeStart(t *testing.T) {
	q := NewQueue("test", (&recordingHandler{}).handle, QueueConfig{Workers: 1})

	assert.Error(t, q.Enqueue(Job{ID: "early", Type: "noop"}))
}
