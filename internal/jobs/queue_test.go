package jobs

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelQueueDeliversToWorkers(t *testing.T) {
	queue := NewChannelQueue(16)

	var mu sync.Mutex
	seen := make(map[uint]int)
	done := make(chan struct{})

	worker := NewWorker(queue, 4, func(job DispatchJob) {
		mu.Lock()
		seen[job.ActivityID]++
		if len(seen) == 8 {
			close(done)
		}
		mu.Unlock()
	})
	worker.Start()
	defer worker.Stop()

	for i := uint(1); i <= 8; i++ {
		require.NoError(t, queue.Enqueue(DispatchJob{ActivityID: i, NotificationID: i}))
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("jobs not consumed in time")
	}

	mu.Lock()
	defer mu.Unlock()
	for i := uint(1); i <= 8; i++ {
		assert.Equal(t, 1, seen[i])
	}
}

func TestChannelQueueRejectsWhenFull(t *testing.T) {
	queue := NewChannelQueue(2)

	require.NoError(t, queue.Enqueue(DispatchJob{ActivityID: 1}))
	require.NoError(t, queue.Enqueue(DispatchJob{ActivityID: 2}))

	err := queue.Enqueue(DispatchJob{ActivityID: 3})
	assert.Error(t, err, "a full buffer must fail fast instead of blocking the request path")
}

func TestWorkerStopWaitsForInFlightJob(t *testing.T) {
	queue := NewChannelQueue(4)

	started := make(chan struct{})
	var finished bool
	var mu sync.Mutex

	worker := NewWorker(queue, 1, func(DispatchJob) {
		close(started)
		time.Sleep(50 * time.Millisecond)
		mu.Lock()
		finished = true
		mu.Unlock()
	})
	worker.Start()

	require.NoError(t, queue.Enqueue(DispatchJob{ActivityID: 1}))
	<-started
	worker.Stop()

	mu.Lock()
	defer mu.Unlock()
	assert.True(t, finished, "Stop must wait for the in-flight job")
}

func TestWorkerStartIsIdempotent(t *testing.T) {
	queue := NewChannelQueue(4)
	worker := NewWorker(queue, 2, func(DispatchJob) {})

	worker.Start()
	worker.Start() // second call is a no-op
	worker.Stop()
	worker.Stop() // stopping twice is safe
}
