package audit

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

type recordingSink struct {
	count atomic.Int64
}

func (s *recordingSink) Emit(context.Context, Event) {
	s.count.Add(1)
}

type blockingSink struct {
	gate chan struct{}
}

func (s *blockingSink) Emit(ctx context.Context, _ Event) {
	<-s.gate
}

func testEvent() Event {
	return Event{
		Timestamp: time.Now(),
		EventType: "login_success",
		Success:   true,
	}
}

func TestNewDispatcherDisabledReturnsNil(t *testing.T) {
	if d := NewDispatcher(Config{Enabled: false}, &recordingSink{}); d != nil {
		t.Fatal("disabled config must not start a dispatcher")
	}
}

func TestNilDispatcherIsSafe(t *testing.T) {
	var d *Dispatcher

	d.Emit(context.Background(), testEvent())
	d.Close()
	if got := d.Dropped(); got != 0 {
		t.Fatalf("nil Dropped = %d, want 0", got)
	}
}

func TestCloseFlushesBufferedEvents(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(Config{Enabled: true, BufferSize: 16}, sink)

	for i := 0; i < 10; i++ {
		d.Emit(context.Background(), testEvent())
	}
	d.Close()

	if got := sink.count.Load(); got != 10 {
		t.Fatalf("sink saw %d events after Close, want 10", got)
	}
}

func TestEmitAfterCloseIsIgnored(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(Config{Enabled: true, BufferSize: 4}, sink)
	d.Close()

	d.Emit(context.Background(), testEvent())

	if got := sink.count.Load(); got != 0 {
		t.Fatalf("sink saw %d events after Close, want 0", got)
	}
}

func TestDropIfFullCountsDrops(t *testing.T) {
	sink := &blockingSink{gate: make(chan struct{})}
	d := NewDispatcher(Config{Enabled: true, BufferSize: 1, DropIfFull: true}, sink)

	for i := 0; i < 3; i++ {
		d.Emit(context.Background(), testEvent())
	}

	if d.Dropped() == 0 {
		t.Fatal("expected drops with a stalled sink and a full buffer")
	}

	close(sink.gate)
	d.Close()
}

func TestBlockingEmitHonorsContextCancel(t *testing.T) {
	sink := &blockingSink{gate: make(chan struct{})}
	d := NewDispatcher(Config{Enabled: true, BufferSize: 1, DropIfFull: false}, sink)

	// Fill the buffer so the next Emit has to wait.
	d.Emit(context.Background(), testEvent())
	d.Emit(context.Background(), testEvent())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		d.Emit(ctx, testEvent())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Emit did not return on a cancelled context")
	}

	close(sink.gate)
	d.Close()
}
