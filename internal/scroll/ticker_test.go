package scroll

import (
	"testing"
	"time"
)

func gatedTicker() (*Ticker, chan struct{}) {
	gate := make(chan struct{})
	tk := NewTicker(Delay(DefaultSpeedLevel))
	tk.sleep = func(time.Duration) { <-gate }
	return tk, gate
}

// release unparks a loop blocked in sleep, if there is one.
func release(gate chan struct{}) {
	select {
	case gate <- struct{}{}:
	case <-time.After(50 * time.Millisecond):
	}
}

func waitStopped(t *testing.T, tk *Ticker) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for tk.Running() {
		if time.Now().After(deadline) {
			t.Fatalf("ticker loop did not exit")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestTickerCountsTicks(t *testing.T) {
	tk, gate := gatedTicker()
	tk.Start()
	gate <- struct{}{}
	select {
	case <-tk.Wake():
	case <-time.After(2 * time.Second):
		t.Fatalf("no tick signalled")
	}
	gate <- struct{}{}
	select {
	case <-tk.Wake():
	case <-time.After(2 * time.Second):
		t.Fatalf("second tick not signalled")
	}
	tk.Stop()
	release(gate)
	waitStopped(t, tk)
	if n := tk.Drain(); n != 2 {
		t.Fatalf("expected 2 ticks, got %d", n)
	}
	if n := tk.Drain(); n != 0 {
		t.Fatalf("drain must reset the counter, got %d", n)
	}
}

func TestTickerStartWhileRunningIsNoop(t *testing.T) {
	tk, gate := gatedTicker()
	tk.Start()
	tk.Start()
	tk.Start()
	if got := tk.loopsStarted(); got != 1 {
		t.Fatalf("expected one loop, got %d", got)
	}
	tk.Stop()
	release(gate)
	waitStopped(t, tk)
	if n := tk.Drain(); n != 0 {
		t.Fatalf("tick counted after stop: %d", n)
	}
}

func TestTickerStopThenStartKeepsOneLoop(t *testing.T) {
	tk, gate := gatedTicker()
	tk.Start()
	tk.Stop()
	tk.Start()
	gate <- struct{}{}
	select {
	case <-tk.Wake():
	case <-time.After(2 * time.Second):
		t.Fatalf("revived loop did not tick")
	}
	if got := tk.loopsStarted(); got != 1 {
		t.Fatalf("expected the loop to be revived, got %d launches", got)
	}
	tk.Stop()
	release(gate)
	waitStopped(t, tk)

	tk.Start()
	if got := tk.loopsStarted(); got != 2 {
		t.Fatalf("expected a fresh loop after exit, got %d launches", got)
	}
	tk.Stop()
	release(gate)
	waitStopped(t, tk)
}

func TestTickerPanicEndsLoop(t *testing.T) {
	tk := NewTicker(minDelay)
	tk.sleep = func(time.Duration) { panic("boom") }
	tk.Start()
	waitStopped(t, tk)
	if n := tk.Drain(); n != 0 {
		t.Fatalf("unexpected ticks: %d", n)
	}
}

func TestTickerDelayFloor(t *testing.T) {
	tk := NewTicker(time.Millisecond)
	if tk.Delay() != minDelay {
		t.Fatalf("expected floor %v, got %v", minDelay, tk.Delay())
	}
	tk.SetDelay(Delay(1))
	if tk.Delay() != 75*time.Millisecond {
		t.Fatalf("unexpected delay: %v", tk.Delay())
	}
}
