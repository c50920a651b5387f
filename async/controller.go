// Package async provides Controller, the single-use completion and
// cancellation signal shared by a running interaction and its listeners.
//
// A Controller resolves at most once to a Result with status success,
// fail or cancel. The first of Success, Fail or Cancel wins; later calls
// are ignored. Listeners registered before resolution are called exactly
// once, in registration order, synchronously on the goroutine that
// resolved the controller. Listeners registered after resolution are never
// called; callers that need the outcome afterwards read Result.
package async

import (
	"context"
	"sync"
)

// Status is the terminal state of a Controller.
type Status uint8

const (
	// StatusSuccess means the interaction completed normally.
	StatusSuccess Status = iota + 1
	// StatusFail means the interaction was aborted because of an error.
	StatusFail
	// StatusCancel means the user (or the host) cancelled the interaction.
	StatusCancel
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusFail:
		return "fail"
	case StatusCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// Result is the terminal result of a Controller.
type Result struct {
	Status  Status
	Message string
}

// Listener receives the terminal Result.
type Listener func(Result)

// Controller is a set-once completion token. The zero value is not usable;
// create one with NewController.
//
// Controller is safe for concurrent use.
type Controller struct {
	mu        sync.Mutex
	result    *Result
	done      chan struct{}
	cancelled []Listener
	completed []Listener
}

// NewController creates an unresolved controller.
func NewController() *Controller {
	return &Controller{done: make(chan struct{})}
}

// WithContext resolves the controller with StatusCancel when ctx ends
// before the controller resolves on its own. The returned stop function
// releases the watcher; it is safe to call more than once.
func (c *Controller) WithContext(ctx context.Context) (stop func()) {
	c.mu.Lock()
	done := c.done
	c.mu.Unlock()

	quit := make(chan struct{})
	var once sync.Once
	go func() {
		select {
		case <-ctx.Done():
			c.Cancel(ctx.Err().Error())
		case <-done:
		case <-quit:
		}
	}()
	return func() { once.Do(func() { close(quit) }) }
}

// Success resolves the controller with StatusSuccess.
// It reports whether this call resolved the controller.
func (c *Controller) Success(message string) bool {
	return c.resolve(StatusSuccess, message)
}

// Fail resolves the controller with StatusFail.
// It reports whether this call resolved the controller.
func (c *Controller) Fail(message string) bool {
	return c.resolve(StatusFail, message)
}

// Cancel resolves the controller with StatusCancel.
// It reports whether this call resolved the controller.
func (c *Controller) Cancel(message string) bool {
	return c.resolve(StatusCancel, message)
}

func (c *Controller) resolve(status Status, message string) bool {
	c.mu.Lock()
	if c.result != nil {
		c.mu.Unlock()
		return false
	}
	r := Result{Status: status, Message: message}
	c.result = &r
	var listeners []Listener
	if status == StatusSuccess {
		listeners = c.completed
	} else {
		listeners = c.cancelled
	}
	close(c.done)
	c.mu.Unlock()

	// Listeners run outside the lock so they may query the controller.
	for _, fn := range listeners {
		fn(r)
	}
	return true
}

// Result returns the terminal result. ok is false while unresolved.
func (c *Controller) Result() (r Result, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.result == nil {
		return Result{}, false
	}
	return *c.result, true
}

// Done returns a channel that is closed when the controller resolves.
func (c *Controller) Done() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}

// OnCancelled registers a listener for fail and cancel resolutions.
// Registering after resolution is a no-op.
func (c *Controller) OnCancelled(fn Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.result != nil || fn == nil {
		return
	}
	c.cancelled = append(c.cancelled, fn)
}

// OnCompleted registers a listener for the success resolution.
// Registering after resolution is a no-op.
func (c *Controller) OnCompleted(fn Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.result != nil || fn == nil {
		return
	}
	c.completed = append(c.completed, fn)
}

// Listeners reports how many cancel and complete listeners are registered.
func (c *Controller) Listeners() (cancelled, completed int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cancelled), len(c.completed)
}

// Reset clears a terminal result so the controller can be reused. It must
// only be called when nothing is waiting on Done. Listeners registered
// before Reset are dropped, and a WithContext watcher started before Reset
// stays bound to the old Done channel; call WithContext again if needed.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.result == nil {
		return
	}
	c.result = nil
	c.done = make(chan struct{})
	c.cancelled = nil
	c.completed = nil
}

// Dispose drops every registered listener. It does not resolve the
// controller, so disposing after success has no other effect.
func (c *Controller) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelled = nil
	c.completed = nil
}
