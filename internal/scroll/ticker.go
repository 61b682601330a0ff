package scroll

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Ticker is the background half of playback. Its goroutine only counts
// elapsed ticks; the interaction thread drains them with Drain and applies
// them through the Engine.
type Ticker struct {
	mu      sync.Mutex
	running bool
	stopped bool

	delay   atomic.Int64
	pending atomic.Int64
	loops   atomic.Int64
	wake    chan struct{}

	sleep func(time.Duration)
}

func NewTicker(delay time.Duration) *Ticker {
	t := &Ticker{
		wake:  make(chan struct{}, 1),
		sleep: time.Sleep,
	}
	t.SetDelay(delay)
	return t
}

// SetDelay takes effect on the next sleep of a running loop.
func (t *Ticker) SetDelay(d time.Duration) {
	if d < minDelay {
		d = minDelay
	}
	t.delay.Store(int64(d))
}

func (t *Ticker) Delay() time.Duration {
	return time.Duration(t.delay.Load())
}

// Start launches the loop. Starting while a loop is alive is a no-op apart
// from cancelling a stop that loop has not observed yet.
func (t *Ticker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = false
	if t.running {
		return
	}
	t.running = true
	t.loops.Add(1)
	go t.loop()
}

// Stop asks the loop to exit at the top of its next iteration.
func (t *Ticker) Stop() {
	t.mu.Lock()
	t.stopped = true
	t.mu.Unlock()
}

func (t *Ticker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// Drain returns the ticks counted since the previous call.
func (t *Ticker) Drain() int {
	return int(t.pending.Swap(0))
}

// Wake is signalled (coalesced) whenever a tick is counted.
func (t *Ticker) Wake() <-chan struct{} {
	return t.wake
}

// loopsStarted reports how many goroutines were ever launched.
func (t *Ticker) loopsStarted() int64 {
	return t.loops.Load()
}

func (t *Ticker) loop() {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("scroll: ticker loop panicked", "panic", r)
			t.mu.Lock()
			t.running = false
			t.mu.Unlock()
		}
	}()
	for {
		if t.exitIfStopped() {
			return
		}
		t.sleep(t.Delay())
		if t.exitIfStopped() {
			return
		}
		t.pending.Add(1)
		select {
		case t.wake <- struct{}{}:
		default:
		}
	}
}

func (t *Ticker) exitIfStopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.stopped {
		return false
	}
	t.running = false
	slog.Debug("scroll: ticker loop exited")
	return true
}
