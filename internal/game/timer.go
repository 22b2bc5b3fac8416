package game

import (
	"sync"
	"time"
)

// Handle identifies one running countdown. The zero Handle is never issued.
type Handle uint64

// Timer runs per-question countdowns. onTick receives the seconds left after
// each one-second step; onExpire fires once the count reaches zero.
// Stop cancels pending ticks and is a no-op for unknown or finished handles.
type Timer interface {
	Start(seconds int, onTick func(remaining int), onExpire func()) Handle
	Stop(h Handle)
}

// ClockTimer drives countdowns from a wall-clock ticker.
type ClockTimer struct {
	interval time.Duration

	mu      sync.Mutex
	next    Handle
	running map[Handle]chan struct{}
}

func NewClockTimer() *ClockTimer {
	return NewClockTimerWithInterval(time.Second)
}

// NewClockTimerWithInterval shortens the step, mostly for tests.
func NewClockTimerWithInterval(interval time.Duration) *ClockTimer {
	return &ClockTimer{
		interval: interval,
		running:  make(map[Handle]chan struct{}),
	}
}

func (t *ClockTimer) Start(seconds int, onTick func(int), onExpire func()) Handle {
	t.mu.Lock()
	t.next++
	h := t.next
	stop := make(chan struct{})
	t.running[h] = stop
	t.mu.Unlock()

	go t.run(h, seconds, stop, onTick, onExpire)
	return h
}

func (t *ClockTimer) run(h Handle, remaining int, stop <-chan struct{}, onTick func(int), onExpire func()) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for remaining > 0 {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}
		remaining--
		if onTick != nil {
			onTick(remaining)
		}
	}

	t.mu.Lock()
	_, live := t.running[h]
	delete(t.running, h)
	t.mu.Unlock()

	if live && onExpire != nil {
		onExpire()
	}
}

func (t *ClockTimer) Stop(h Handle) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if stop, ok := t.running[h]; ok {
		close(stop)
		delete(t.running, h)
	}
}

// Running reports how many countdowns are still pending.
func (t *ClockTimer) Running() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.running)
}

// ManualTimer advances only when told to. Useful for tests and for
// surfaces that own their own clock.
type ManualTimer struct {
	mu     sync.Mutex
	next   Handle
	active map[Handle]*manualCountdown
}

type manualCountdown struct {
	remaining int
	onTick    func(int)
	onExpire  func()
}

func NewManualTimer() *ManualTimer {
	return &ManualTimer{active: make(map[Handle]*manualCountdown)}
}

func (m *ManualTimer) Start(seconds int, onTick func(int), onExpire func()) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	m.active[m.next] = &manualCountdown{remaining: seconds, onTick: onTick, onExpire: onExpire}
	return m.next
}

func (m *ManualTimer) Stop(h Handle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.active, h)
}

// Running reports how many countdowns have neither expired nor been stopped.
func (m *ManualTimer) Running() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.active)
}

// Advance steps every running countdown by the given number of seconds.
// Callbacks run on the caller's goroutine without the timer lock held.
func (m *ManualTimer) Advance(seconds int) {
	for i := 0; i < seconds; i++ {
		m.mu.Lock()
		handles := make([]Handle, 0, len(m.active))
		for h := range m.active {
			handles = append(handles, h)
		}
		m.mu.Unlock()

		for _, h := range handles {
			m.step(h)
		}
	}
}

// Expire runs every running countdown down to zero.
func (m *ManualTimer) Expire() {
	for m.Running() > 0 {
		m.Advance(1)
	}
}

func (m *ManualTimer) step(h Handle) {
	m.mu.Lock()
	cd, ok := m.active[h]
	if !ok {
		m.mu.Unlock()
		return
	}
	if cd.remaining > 0 {
		cd.remaining--
	}
	remaining := cd.remaining
	if remaining == 0 {
		delete(m.active, h)
	}
	m.mu.Unlock()

	if cd.onTick != nil {
		cd.onTick(remaining)
	}
	if remaining == 0 && cd.onExpire != nil {
		cd.onExpire()
	}
}
