package job

import "context"

// Dispatcher submits a request and eventually calls onResult exactly once
type Dispatcher interface {
	Dispatch(req RenderRequest, onResult func(RenderResult)) error
}

// InlineDispatcher renders on the caller's goroutine; onResult has been
// called by the time Dispatch returns
type InlineDispatcher struct {
	Render RenderFunc
}

// NewInlineDispatcher creates a dispatcher that renders synchronously
func NewInlineDispatcher(render RenderFunc) *InlineDispatcher {
	return &InlineDispatcher{Render: render}
}

// Dispatch implements Dispatcher
func (d *InlineDispatcher) Dispatch(req RenderRequest, onResult func(RenderResult)) error {
	onResult(Run(context.Background(), d.Render, req))
	return nil
}

// WorkerDispatcher posts requests to a WorkerHost and delivers the reply from
// a separate goroutine
type WorkerDispatcher struct {
	Host *WorkerHost
}

// NewWorkerDispatcher creates a dispatcher backed by host
func NewWorkerDispatcher(host *WorkerHost) *WorkerDispatcher {
	return &WorkerDispatcher{Host: host}
}

// Dispatch implements Dispatcher. It returns ErrBusy or ErrClosed without
// calling onResult when the host rejects the request.
func (d *WorkerDispatcher) Dispatch(req RenderRequest, onResult func(RenderResult)) error {
	reply, err := d.Host.Post(req)
	if err != nil {
		return err
	}
	go func() {
		onResult(<-reply)
	}()
	return nil
}
