package animation

import (
	"testing"
	"time"
)

func withManualClock(t *testing.T) *ManualClock {
	t.Helper()
	clock := NewManualClock(time.Unix(0, 0))
	prev := SetClock(clock)
	t.Cleanup(func() { SetClock(prev) })
	return clock
}

func TestDriverZeroDurationCompletesSynchronously(t *testing.T) {
	var ticks []float64
	var done, completed bool
	d := &Driver{
		Duration: 0,
		OnTick:   func(p float64) { ticks = append(ticks, p) },
		OnDone: func(c bool) {
			done = true
			completed = c
		},
	}
	d.Start()

	if !done || !completed {
		t.Fatal("zero-duration driver should complete during Start")
	}
	if len(ticks) != 1 || ticks[0] != 1 {
		t.Errorf("ticks = %v, want [1]", ticks)
	}
	if d.IsRunning() {
		t.Error("driver should not be running after completion")
	}
}

func TestDriverProgressMonotonicAndBounded(t *testing.T) {
	clock := withManualClock(t)

	var ticks []float64
	d := &Driver{
		Duration: 100 * time.Millisecond,
		Curve:    SineEaseInOut,
		OnTick:   func(p float64) { ticks = append(ticks, p) },
	}
	d.Start()

	for i := 0; i < 20; i++ {
		clock.Advance(10 * time.Millisecond)
		StepTickers()
	}

	if len(ticks) == 0 {
		t.Fatal("no ticks delivered")
	}
	prev := 0.0
	for i, p := range ticks {
		if p < 0 || p > 1 {
			t.Errorf("tick %d out of bounds: %f", i, p)
		}
		if p < prev {
			t.Errorf("tick %d decreased: %f < %f", i, p, prev)
		}
		prev = p
	}
	if last := ticks[len(ticks)-1]; last != 1 {
		t.Errorf("final progress = %f, want exactly 1", last)
	}
	if d.IsRunning() {
		t.Error("driver should stop at progress 1")
	}
}

func TestDriverCompletesOnce(t *testing.T) {
	clock := withManualClock(t)

	doneCount := 0
	d := &Driver{
		Duration: 50 * time.Millisecond,
		OnDone:   func(bool) { doneCount++ },
	}
	d.Start()

	for i := 0; i < 10; i++ {
		clock.Advance(20 * time.Millisecond)
		StepTickers()
	}
	if doneCount != 1 {
		t.Errorf("OnDone fired %d times, want 1", doneCount)
	}
}

func TestDriverCancel(t *testing.T) {
	clock := withManualClock(t)

	var done, completed bool
	d := &Driver{
		Duration: 100 * time.Millisecond,
		OnDone: func(c bool) {
			done = true
			completed = c
		},
	}
	d.Start()

	clock.Advance(30 * time.Millisecond)
	StepTickers()
	d.Cancel()

	if !done {
		t.Fatal("cancelled driver must still deliver OnDone")
	}
	if completed {
		t.Error("cancelled driver must report completed=false")
	}
	if d.Progress() >= 1 {
		t.Errorf("cancelled mid-flight but progress = %f", d.Progress())
	}

	// A second cancel is a no-op.
	done = false
	d.Cancel()
	if done {
		t.Error("second Cancel delivered a second OnDone")
	}
}

func TestTickerElapsed(t *testing.T) {
	clock := withManualClock(t)

	ticker := NewTicker(func(time.Duration) {})
	ticker.Start()
	defer ticker.Stop()

	clock.Advance(42 * time.Millisecond)
	if got := ticker.Elapsed(); got != 42*time.Millisecond {
		t.Errorf("Elapsed = %v, want 42ms", got)
	}
	if !HasActiveTickers() {
		t.Error("expected an active ticker")
	}
}
