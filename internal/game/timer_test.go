package game

import (
	"sync"
	"testing"
	"time"
)

func TestManualTimerTicksAndExpires(t *testing.T) {
	timer := NewManualTimer()
	var ticks []int
	expired := 0
	timer.Start(3, func(r int) { ticks = append(ticks, r) }, func() { expired++ })

	timer.Advance(2)
	if expired != 0 || len(ticks) != 2 || ticks[1] != 1 {
		t.Fatalf("unexpected state after 2s: ticks=%v expired=%d", ticks, expired)
	}
	timer.Advance(5)
	if expired != 1 {
		t.Fatalf("expected exactly one expiry, got %d", expired)
	}
	if timer.Running() != 0 {
		t.Fatalf("expected no running countdowns")
	}
}

func TestManualTimerStopIsIdempotent(t *testing.T) {
	timer := NewManualTimer()
	expired := false
	h := timer.Start(1, nil, func() { expired = true })
	timer.Stop(h)
	timer.Stop(h)
	timer.Stop(Handle(999))
	timer.Expire()
	if expired {
		t.Fatalf("stopped countdown must not expire")
	}
}

func TestClockTimerExpires(t *testing.T) {
	timer := NewClockTimerWithInterval(time.Millisecond)
	var mu sync.Mutex
	var ticks []int
	done := make(chan struct{})

	timer.Start(3, func(r int) {
		mu.Lock()
		ticks = append(ticks, r)
		mu.Unlock()
	}, func() { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("countdown never expired")
	}
	mu.Lock()
	defer mu.Unlock()
	if len(ticks) != 3 || ticks[2] != 0 {
		t.Fatalf("expected ticks 2,1,0 got %v", ticks)
	}
	if timer.Running() != 0 {
		t.Fatalf("expired countdown still tracked")
	}
}

func TestClockTimerStopCancels(t *testing.T) {
	timer := NewClockTimerWithInterval(10 * time.Millisecond)
	fired := make(chan struct{}, 1)
	h := timer.Start(2, nil, func() { fired <- struct{}{} })
	timer.Stop(h)
	timer.Stop(h)

	select {
	case <-fired:
		t.Fatalf("stopped countdown expired")
	case <-time.After(100 * time.Millisecond):
	}
}
