package async

import (
	"context"
	"testing"
	"time"
)

func TestControllerCancelIdempotent(t *testing.T) {
	c := NewController()
	var got []Result
	c.OnCancelled(func(r Result) { got = append(got, r) })

	if !c.Cancel("first") {
		t.Fatal("first Cancel() = false, want true")
	}
	if c.Cancel("second") {
		t.Error("second Cancel() = true, want false")
	}
	if len(got) != 1 {
		t.Fatalf("listener called %d times, want 1", len(got))
	}
	want := Result{Status: StatusCancel, Message: "first"}
	if got[0] != want {
		t.Errorf("notification = %+v, want %+v", got[0], want)
	}
	if r, _ := c.Result(); r != want {
		t.Errorf("Result() = %+v, want %+v", r, want)
	}
}

func TestControllerFirstResolutionWins(t *testing.T) {
	tests := []struct {
		name    string
		resolve func(c *Controller)
		want    Status
	}{
		{"success then cancel", func(c *Controller) { c.Success(""); c.Cancel("") }, StatusSuccess},
		{"fail then success", func(c *Controller) { c.Fail("boom"); c.Success("") }, StatusFail},
		{"cancel then fail", func(c *Controller) { c.Cancel(""); c.Fail("") }, StatusCancel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController()
			tt.resolve(c)
			r, ok := c.Result()
			if !ok {
				t.Fatal("Result() ok = false after resolution")
			}
			if r.Status != tt.want {
				t.Errorf("Status = %v, want %v", r.Status, tt.want)
			}
		})
	}
}

func TestControllerListenerRouting(t *testing.T) {
	c := NewController()
	var cancelled, completed int
	c.OnCancelled(func(Result) { cancelled++ })
	c.OnCompleted(func(Result) { completed++ })
	c.Fail("kernel")
	if cancelled != 1 || completed != 0 {
		t.Errorf("after Fail: cancelled=%d completed=%d, want 1 0", cancelled, completed)
	}

	c = NewController()
	cancelled, completed = 0, 0
	c.OnCancelled(func(Result) { cancelled++ })
	c.OnCompleted(func(Result) { completed++ })
	c.Success("")
	if cancelled != 0 || completed != 1 {
		t.Errorf("after Success: cancelled=%d completed=%d, want 0 1", cancelled, completed)
	}
}

func TestControllerListenerOrder(t *testing.T) {
	c := NewController()
	var order []int
	for i := 0; i < 5; i++ {
		c.OnCompleted(func(Result) { order = append(order, i) })
	}
	c.Success("")
	for i, v := range order {
		if v != i {
			t.Fatalf("order = %v, want ascending registration order", order)
		}
	}
	if len(order) != 5 {
		t.Errorf("called %d listeners, want 5", len(order))
	}
}

func TestControllerLateSubscriberNeverCalled(t *testing.T) {
	c := NewController()
	c.Cancel("done")
	called := false
	c.OnCancelled(func(Result) { called = true })
	c.OnCompleted(func(Result) { called = true })
	c.Cancel("again")
	if called {
		t.Error("listener registered after resolution was invoked")
	}
}

func TestControllerDoneClosed(t *testing.T) {
	c := NewController()
	select {
	case <-c.Done():
		t.Fatal("Done() closed before resolution")
	default:
	}
	c.Success("")
	select {
	case <-c.Done():
	default:
		t.Fatal("Done() not closed after resolution")
	}
}

func TestControllerDisposeDoesNotResolve(t *testing.T) {
	c := NewController()
	called := false
	c.OnCancelled(func(Result) { called = true })
	c.Dispose()
	if _, ok := c.Result(); ok {
		t.Error("Dispose() resolved the controller")
	}
	c.Cancel("")
	if called {
		t.Error("listener survived Dispose()")
	}

	c = NewController()
	c.Success("ok")
	c.Dispose()
	if r, _ := c.Result(); r.Status != StatusSuccess {
		t.Errorf("Status after Dispose = %v, want success", r.Status)
	}
}

func TestControllerReset(t *testing.T) {
	c := NewController()
	c.Cancel("")
	c.Reset()
	if _, ok := c.Result(); ok {
		t.Fatal("Result() ok = true after Reset")
	}
	if !c.Success("") {
		t.Error("Success() after Reset = false, want true")
	}
}

func TestControllerResetDropsListeners(t *testing.T) {
	c := NewController()
	var cancelled, completed int
	c.OnCancelled(func(Result) { cancelled++ })
	c.OnCompleted(func(Result) { completed++ })
	c.Cancel("")
	c.Reset()
	c.Cancel("")
	c.Reset()
	c.Success("")
	if cancelled != 1 {
		t.Errorf("cancel listener calls = %d, want 1", cancelled)
	}
	if completed != 0 {
		t.Errorf("complete listener calls = %d, want 0", completed)
	}

	if n, m := c.Listeners(); n != 0 || m != 0 {
		t.Errorf("Listeners() = %d, %d after Reset, want 0, 0", n, m)
	}

	var after int
	c.Reset()
	c.OnCompleted(func(Result) { after++ })
	c.Success("")
	if after != 1 {
		t.Errorf("listener added after Reset called %d times, want 1", after)
	}
}

func TestControllerWithContext(t *testing.T) {
	c := NewController()
	ctx, cancel := context.WithCancel(context.Background())
	stop := c.WithContext(ctx)
	defer stop()
	cancel()

	select {
	case <-c.Done():
	case <-time.After(time.Second):
		t.Fatal("controller not cancelled by context")
	}
	if r, _ := c.Result(); r.Status != StatusCancel {
		t.Errorf("Status = %v, want cancel", r.Status)
	}
}

func TestStatusString(t *testing.T) {
	tests := []struct {
		s    Status
		want string
	}{
		{StatusSuccess, "success"},
		{StatusFail, "fail"},
		{StatusCancel, "cancel"},
		{Status(0), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}
