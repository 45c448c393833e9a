package job

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrBusy is returned when a request is posted while another is in flight.
	ErrBusy = errors.New("job: worker host is busy")

	// ErrClosed is returned when posting to a closed worker host.
	ErrClosed = errors.New("job: worker host is closed")
)

// message pairs a request with the channel its result is delivered on
type message struct {
	req   RenderRequest
	reply chan RenderResult
}

// WorkerHost owns a single background goroutine that runs one render at a
// time. It has no queue: posting while busy fails with ErrBusy.
type WorkerHost struct {
	render RenderFunc
	inbox  chan message

	mu     sync.Mutex
	busy   bool
	closed bool

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// NewWorkerHost starts a worker host that renders with render
func NewWorkerHost(render RenderFunc) *WorkerHost {
	ctx, cancel := context.WithCancel(context.Background())
	h := &WorkerHost{
		render: render,
		inbox:  make(chan message, 1),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go h.run()
	return h
}

// Post submits a request. The returned channel receives exactly one result.
func (h *WorkerHost) Post(req RenderRequest) (<-chan RenderResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, ErrClosed
	}
	if h.busy {
		return nil, ErrBusy
	}
	h.busy = true

	// The inbox is empty whenever busy is false, so this never blocks
	reply := make(chan RenderResult, 1)
	h.inbox <- message{req: req, reply: reply}
	return reply, nil
}

// Busy reports whether a render is in flight
func (h *WorkerHost) Busy() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.busy
}

// Close cancels any in-flight render and waits for the worker to exit. The
// in-flight request still receives a result carrying the cancellation error.
func (h *WorkerHost) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	close(h.inbox)
	h.mu.Unlock()

	h.cancel()
	<-h.done
	return nil
}

// run is the worker loop
func (h *WorkerHost) run() {
	defer close(h.done)

	for msg := range h.inbox {
		result := Run(h.ctx, h.render, msg.req)

		// Clear busy before replying so the receiver can post again immediately
		h.mu.Lock()
		h.busy = false
		h.mu.Unlock()

		msg.reply <- result
	}
}
