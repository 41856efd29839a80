package pageview

import (
	stderrors "errors"

	"github.com/go-drift/pageview/pkg/animation"
	"github.com/go-drift/pageview/pkg/errors"
	"github.com/go-drift/pageview/pkg/geometry"
	"github.com/go-drift/pageview/pkg/layouter"
)

// navState is the navigation controller's state machine.
//
//	Idle ──► AnimatingToTarget ──► Idle
//	Idle ──► UserDriven ──► SettlingToRest ──► Idle
//
// A navigation request arriving in AnimatingToTarget or SettlingToRest
// cancels the running transition and starts fresh from the current
// interpolated offset.
type navState int

const (
	stateIdle navState = iota
	stateAnimating
	stateUserDriven
	stateSettling
)

func (s navState) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateAnimating:
		return "animating"
	case stateUserDriven:
		return "user-driven"
	case stateSettling:
		return "settling"
	default:
		return "unknown"
	}
}

type requestKind int

const (
	reqNavigate requestKind = iota
	reqEdit
	reqSetLayouter
	reqReload
	reqReloadPages
)

// request is one queued engine operation. The engine processes requests
// strictly in arrival order with at most one in flight; the only
// exception is navigation supersession, which cancels a queued or
// running navigation when a newer one arrives. Edit batches are never
// dropped.
type request struct {
	kind       requestKind
	target     int
	animated   bool
	completion Completion
	batch      EditBatch
	countDelta int
	lay        layouter.Layouter
	focus      int
	indexes    []int
}

// enqueue appends a request and pumps the queue. A navigation request
// first supersedes any queued navigation and cancels a running one.
func (c *Controller) enqueue(req *request) {
	if req.kind == reqNavigate {
		kept := c.queue[:0]
		for _, queued := range c.queue {
			if queued.kind == reqNavigate {
				queued.completion.call(StatusCancelled)
				continue
			}
			kept = append(kept, queued)
		}
		c.queue = kept

		if c.active != nil && c.active.kind == reqNavigate {
			c.cancelActive()
		}
		if c.state == stateSettling {
			c.cancelSettle()
		}
	}
	c.queue = append(c.queue, req)
	c.pump()
}

// pump starts queued requests while the engine is quiescent. Reentrant
// calls (from completions or delegate callbacks) fold into the running
// loop.
func (c *Controller) pump() {
	if c.pumping {
		return
	}
	c.pumping = true
	defer func() { c.pumping = false }()

	for c.active == nil && c.state == stateIdle && len(c.queue) > 0 {
		req := c.queue[0]
		c.queue = c.queue[1:]
		c.run(req)
	}
}

func (c *Controller) run(req *request) {
	switch req.kind {
	case reqNavigate:
		c.runNavigate(req)
	case reqEdit:
		c.runEdit(req)
	case reqSetLayouter:
		c.runSetLayouter(req)
	case reqReload:
		c.runReload()
	case reqReloadPages:
		c.runReloadPages(req)
	}
}

// finishActive tears down the in-flight request and resumes the queue.
func (c *Controller) finishActive(status Status) {
	req := c.active
	c.active = nil
	c.driver = nil
	c.transition = nil
	c.transitionProgress = 0
	c.state = stateIdle
	c.reg.unpinAll()
	if req != nil {
		req.completion.call(status)
	}
	c.pump()
}

// cancelActive cancels the running animated request. A superseded
// navigation receives StatusCancelled and its remaining frames are
// simply dropped. An interrupted edit has already renumbered the
// sequence, so its driver's interruption path still runs the deferred
// evictions and the completion reports StatusCompleted: edit batches
// are never dropped.
func (c *Controller) cancelActive() {
	req := c.active
	if c.driver != nil {
		driver := c.driver
		c.driver = nil
		if req != nil && req.kind == reqNavigate {
			driver.OnDone = nil
		}
		driver.Cancel()
	}
	c.active = nil
	c.transition = nil
	c.transitionProgress = 0
	c.state = stateIdle
	c.reg.unpinAll()
	if req != nil {
		status := StatusCancelled
		if req.kind == reqEdit {
			status = StatusCompleted
		}
		req.completion.call(status)
	}
}

// runNavigate executes a navigation request. Non-animated navigation is
// one synchronous step: the offset jumps, exactly one layout pass runs,
// and the completion fires before the call returns.
func (c *Controller) runNavigate(req *request) {
	if req.target < 0 || req.target >= c.pageCount {
		req.completion.call(StatusCancelled)
		return
	}

	start := c.viewport.Offset
	end := c.restingOffsetFor(req.target)

	if !req.animated || c.opts.AnimationDuration <= 0 {
		c.viewport.Offset = end
		c.layoutPass(true)
		req.completion.call(StatusCompleted)
		return
	}

	c.active = req
	c.state = stateAnimating
	c.viewport.RestingPage = NoPage
	if rest := restingPage(c.lay, c.pageCount, c.viewport); rest != NoPage {
		c.reg.pin(rest)
	}
	c.reg.pin(req.target)

	c.driver = &animation.Driver{
		Duration: c.opts.AnimationDuration,
		Curve:    c.opts.Easing,
		OnTick: func(progress float64) {
			c.viewport.Offset = geometry.Lerp(start, end, progress)
			if c.opts.LayoutOnRestOnly {
				// Geometry is recomputed once, at completion; only the
				// continuous offset moves during the animation.
				if c.delegate != nil {
					c.delegate.DidNavigateToOffset(c.viewport.Offset)
				}
				return
			}
			c.layoutPass(false)
		},
		OnDone: func(completed bool) {
			if !completed {
				return
			}
			c.viewport.Offset = end
			c.reg.unpinAll()
			c.layoutPass(true)
			c.finishActive(StatusCompleted)
		},
	}
	c.driver.Start()
}

// runEdit applies a validated edit batch: renumber the registry, clamp
// the offset, run one coalesced layout pass for the survivors, and only
// then evict the removed slots so observers see a consistent frame
// before losing a page.
func (c *Controller) runEdit(req *request) {
	diff, err := diffBatch(req.batch, c.pageCount)
	if err != nil {
		// Validated at enqueue time; failing here means the count
		// changed underneath the queue. Roll the planned delta back so
		// later batches validate against the surviving count.
		c.plannedCount -= req.countDelta
		var e *errors.Error
		if stderrors.As(err, &e) {
			c.errs.HandleError(e)
		}
		req.completion.call(StatusCancelled)
		return
	}

	var startFrames map[int]geometry.Rect
	if req.animated {
		startFrames = c.captureFrames(diff.mapping)
	}

	removed := c.reg.reindex(diff.mapping)
	c.pageCount = diff.postCount
	c.viewport.Offset = c.clampOffset(c.viewport.Offset)
	if c.viewport.RestingPage != NoPage {
		if mapped, ok := diff.mapping[c.viewport.RestingPage]; ok {
			c.viewport.RestingPage = mapped
		}
	}

	// Move destinations stay pinned through the edit's layout passes so
	// windowing cannot evict a handle the move must preserve.
	for _, index := range diff.moved {
		c.reg.pin(index)
	}

	if !req.animated || c.opts.AnimationDuration <= 0 {
		c.layoutPass(true)
		c.reg.evictRemoved(removed)
		c.reg.unpinAll()
		req.completion.call(StatusCompleted)
		return
	}

	c.active = req
	c.state = stateAnimating
	c.transition = startFrames
	c.transitionProgress = 0

	c.driver = &animation.Driver{
		Duration: c.opts.AnimationDuration,
		Curve:    c.opts.Easing,
		OnTick: func(progress float64) {
			c.transitionProgress = progress
			c.layoutPass(false)
		},
		OnDone: func(completed bool) {
			if !completed {
				c.reg.evictRemoved(removed)
				return
			}
			c.transition = nil
			c.layoutPass(true)
			c.reg.evictRemoved(removed)
			c.finishActive(StatusCompleted)
		},
	}
	c.driver.Start()
}

// runSetLayouter swaps the geometry strategy, optionally refocusing the
// viewport, interpolating every loaded page from its old frame to its
// new one when animated.
func (c *Controller) runSetLayouter(req *request) {
	startFrames := c.captureFrames(nil)
	startOffset := c.viewport.Offset

	c.lay = req.lay

	endOffset := c.viewport.Offset
	if req.focus != NoPage && req.focus >= 0 && req.focus < c.pageCount {
		endOffset = c.restingOffsetFor(req.focus)
	}
	endOffset = c.clampOffset(endOffset)

	if !req.animated || c.opts.AnimationDuration <= 0 {
		c.viewport.Offset = endOffset
		c.layoutPass(true)
		req.completion.call(StatusCompleted)
		return
	}

	c.active = req
	c.state = stateAnimating
	c.transition = startFrames
	c.transitionProgress = 0

	c.driver = &animation.Driver{
		Duration: c.opts.AnimationDuration,
		Curve:    c.opts.Easing,
		OnTick: func(progress float64) {
			c.transitionProgress = progress
			c.viewport.Offset = geometry.Lerp(startOffset, endOffset, progress)
			c.layoutPass(false)
		},
		OnDone: func(completed bool) {
			if !completed {
				return
			}
			c.viewport.Offset = endOffset
			c.transition = nil
			c.layoutPass(true)
			c.finishActive(StatusCompleted)
		},
	}
	c.driver.Start()
}

// runReload discards all loaded pages, re-reads the count from the data
// source and lays out from scratch. Reload replaces the sequence rather
// than editing it, so no show/hide diff is emitted for the teardown.
func (c *Controller) runReload() {
	for _, index := range c.reg.loadedIndexes() {
		c.reg.forceEvict(index, c.reg.slotAt(index))
	}
	c.vis.reset()

	c.pageCount = c.source.NumberOfPages()
	c.plannedCount = c.pageCount
	for _, queued := range c.queue {
		if queued.kind == reqEdit {
			c.plannedCount += queued.countDelta
		}
	}
	c.viewport.RestingPage = NoPage
	c.viewport.Offset = c.clampOffset(c.viewport.Offset)
	c.layoutPass(true)
}

// runReloadPages re-materializes the given pages in place, interpolating
// surviving frames when animated.
func (c *Controller) runReloadPages(req *request) {
	var startFrames map[int]geometry.Rect
	if req.animated {
		startFrames = c.captureFrames(nil)
	}

	for _, index := range req.indexes {
		if s := c.reg.slotAt(index); s != nil && s.state == Materialized {
			c.reg.forceEvict(index, s)
		}
	}

	if !req.animated || c.opts.AnimationDuration <= 0 {
		c.layoutPass(true)
		req.completion.call(StatusCompleted)
		return
	}

	c.active = req
	c.state = stateAnimating
	c.transition = startFrames
	c.transitionProgress = 0

	c.driver = &animation.Driver{
		Duration: c.opts.AnimationDuration,
		Curve:    c.opts.Easing,
		OnTick: func(progress float64) {
			c.transitionProgress = progress
			c.layoutPass(false)
		},
		OnDone: func(completed bool) {
			if !completed {
				return
			}
			c.transition = nil
			c.layoutPass(true)
			c.finishActive(StatusCompleted)
		},
	}
	c.driver.Start()
}

// BeginInteractiveScroll hands viewport control to external input, e.g.
// a drag gesture. A running animated transition is cancelled; its
// completion receives StatusCancelled.
func (c *Controller) BeginInteractiveScroll() {
	if c.state == stateAnimating && c.active != nil {
		c.cancelActive()
	}
	if c.state == stateSettling {
		c.cancelSettle()
	}
	c.state = stateUserDriven
	c.viewport.RestingPage = NoPage
}

// SetInteractiveOffset moves the externally-controlled viewport and runs
// a layout pass. Implicitly begins an interactive scroll if none is
// active.
func (c *Controller) SetInteractiveOffset(offset float64) {
	if c.state != stateUserDriven {
		c.BeginInteractiveScroll()
	}
	c.viewport.Offset = c.clampOffset(offset)
	c.layoutPass(false)
}

// EndInteractiveScroll releases external viewport control and settles.
// With continuous navigation enabled (or paging disabled) any offset is
// a valid rest point and the viewport rests where it is; otherwise it
// snaps to the nearest page boundary, so crossing several pages takes
// several swipes.
func (c *Controller) EndInteractiveScroll() {
	if c.state != stateUserDriven {
		return
	}

	if c.opts.ContinuousNavigationEnabled || !c.opts.PagingEnabled {
		c.state = stateIdle
		c.layoutPass(true)
		c.pump()
		return
	}

	target := restingPage(c.lay, c.pageCount, c.viewport)
	if target == NoPage {
		c.state = stateIdle
		c.layoutPass(true)
		c.pump()
		return
	}

	start := c.viewport.Offset
	end := c.restingOffsetFor(target)
	if start == end {
		c.state = stateIdle
		c.layoutPass(true)
		c.pump()
		return
	}

	c.state = stateSettling
	c.settle = &animation.Driver{
		Duration: c.opts.AnimationDuration,
		Curve:    c.opts.Easing,
		OnTick: func(progress float64) {
			c.viewport.Offset = geometry.Lerp(start, end, progress)
			c.layoutPass(false)
		},
		OnDone: func(completed bool) {
			if !completed {
				return
			}
			c.settle = nil
			c.viewport.Offset = end
			c.state = stateIdle
			c.layoutPass(true)
			c.pump()
		},
	}
	c.settle.Start()
}

func (c *Controller) cancelSettle() {
	if c.settle != nil {
		settle := c.settle
		c.settle = nil
		settle.OnDone = nil
		settle.Cancel()
	}
	c.state = stateIdle
}
