package animation

import "time"

// Driver runs a single eased 0-to-1 progress pass over a fixed duration.
//
// Each frame the driver computes the elapsed fraction of its duration,
// clamps it to [0, 1], applies the curve and reports the eased value via
// OnTick. When the fraction reaches 1 the driver stops and invokes OnDone
// with completed=true. Cancelling a running driver stops it at its current
// progress and invokes OnDone with completed=false.
//
// Reported progress is monotonically non-decreasing even if the curve
// overshoots or the clock misbehaves; the final OnTick before a completed
// OnDone always reports exactly 1.
type Driver struct {
	// Duration is the length of the run. A non-positive duration
	// completes synchronously on Start.
	Duration time.Duration

	// Curve transforms the linear elapsed fraction. Nil means linear.
	Curve Curve

	// OnTick receives the eased progress in [0, 1] once per frame.
	OnTick func(progress float64)

	// OnDone receives true when the run reached progress 1, false when
	// it was cancelled. Invoked exactly once per Start.
	OnDone func(completed bool)

	ticker  *Ticker
	last    float64
	running bool
}

// Start begins the run. A driver already running restarts from zero.
// A non-positive duration ticks once at progress 1 and completes before
// Start returns.
func (d *Driver) Start() {
	d.stopTicker()
	d.last = 0
	d.running = true

	if d.Duration <= 0 {
		d.emit(1)
		d.finish(true)
		return
	}

	d.ticker = NewTicker(func(elapsed time.Duration) {
		d.tick(elapsed)
	})
	d.ticker.Start()
}

// Cancel stops a running driver at its current progress and delivers
// OnDone(false). No-op if the driver is not running.
func (d *Driver) Cancel() {
	if !d.running {
		return
	}
	d.stopTicker()
	d.finish(false)
}

// IsRunning returns true while a run is in flight.
func (d *Driver) IsRunning() bool {
	return d.running
}

// Progress returns the last eased progress reported via OnTick.
func (d *Driver) Progress() float64 {
	return d.last
}

func (d *Driver) tick(elapsed time.Duration) {
	fraction := float64(elapsed) / float64(d.Duration)
	if fraction >= 1 {
		d.emit(1)
		d.stopTicker()
		d.finish(true)
		return
	}
	eased := fraction
	if d.Curve != nil {
		eased = d.Curve(fraction)
	}
	d.emit(eased)
}

func (d *Driver) emit(progress float64) {
	progress = clampUnit(progress)
	if progress < d.last {
		progress = d.last
	}
	d.last = progress
	if d.OnTick != nil {
		d.OnTick(progress)
	}
}

func (d *Driver) finish(completed bool) {
	if !d.running {
		return
	}
	d.running = false
	if d.OnDone != nil {
		d.OnDone(completed)
	}
}

func (d *Driver) stopTicker() {
	if d.ticker != nil {
		d.ticker.Stop()
		d.ticker = nil
	}
}
