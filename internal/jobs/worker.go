package jobs

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Worker runs a pool of goroutines consuming dispatch jobs from a
// queue. The handler is injected from main so this package stays
// unaware of the dispatcher's internals.
type Worker struct {
	queue   Queue
	handle  func(DispatchJob)
	workers int

	mu        sync.Mutex
	stop      chan struct{}
	wg        sync.WaitGroup
	isRunning bool
}

// NewWorker creates a worker pool of the given size.
func NewWorker(queue Queue, workers int, handle func(DispatchJob)) *Worker {
	if workers < 1 {
		workers = 1
	}
	return &Worker{queue: queue, handle: handle, workers: workers}
}

// Start launches the consumer goroutines.
func (w *Worker) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.isRunning {
		log.Warn().Msg("dispatch workers already running")
		return
	}
	w.isRunning = true
	w.stop = make(chan struct{})

	for i := 0; i < w.workers; i++ {
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			w.queue.Consume(w.stop, w.handle)
		}()
	}
	log.Info().Int("workers", w.workers).Msg("dispatch workers started")
}

// Stop signals the pool and waits for in-flight jobs to finish.
func (w *Worker) Stop() {
	w.mu.Lock()
	if !w.isRunning {
		w.mu.Unlock()
		return
	}
	w.isRunning = false
	close(w.stop)
	w.mu.Unlock()

	w.wg.Wait()
	log.Info().Msg("dispatch workers stopped")
}
