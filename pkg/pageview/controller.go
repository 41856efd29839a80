package pageview

import (
	stderrors "errors"
	"fmt"
	"math"

	"github.com/go-drift/pageview/pkg/animation"
	"github.com/go-drift/pageview/pkg/errors"
	"github.com/go-drift/pageview/pkg/geometry"
	"github.com/go-drift/pageview/pkg/layouter"
)

// Controller is the page lifecycle and navigation engine. It decides
// which pages are materialized, where they sit, how edits renumber the
// sequence, how animated navigation progresses frame by frame, and which
// visibility events each layout pass produces.
//
// All methods must be called from the same goroutine that pumps
// [animation.StepTickers]. The controller holds no locks; between frames
// its state is quiescent.
type Controller struct {
	opts     Options
	source   DataSource
	delegate Delegate
	lay      layouter.Layouter
	reg      *registry
	vis      *visibilityTracker
	errs     errors.Handler

	pageCount int
	viewport  layouter.ViewportState

	state   navState
	active  *request
	queue   []*request
	driver  *animation.Driver
	settle  *animation.Driver
	pumping bool

	// plannedCount is the page count after every queued edit applies;
	// edit batches validate against it synchronously at call time.
	plannedCount int

	// transition holds per-slot start frames while an animated frame
	// change (navigation re-layout, layouter swap, animated edit) is in
	// flight, keyed by post-change index.
	transition         map[int]geometry.Rect
	transitionProgress float64
}

// New creates a controller over the given data source and layouter.
// The viewport starts at offset zero with the given size; call
// ReloadData before the first layout-affecting operation if the data
// source is populated after construction.
func New(source DataSource, lay layouter.Layouter, size geometry.Size, opts Options) *Controller {
	if source == nil {
		panic("pageview: nil data source")
	}
	if lay == nil {
		panic("pageview: nil layouter")
	}
	c := &Controller{
		opts:   opts.withDefaults(),
		source: source,
		lay:    lay,
		reg:    newRegistry(source),
		vis:    newVisibilityTracker(),
		errs:   &errors.LogHandler{},
		state:  stateIdle,
		viewport: layouter.ViewportState{
			Size:        size,
			RestingPage: NoPage,
		},
	}
	c.pageCount = source.NumberOfPages()
	c.plannedCount = c.pageCount
	return c
}

// SetDelegate installs the lifecycle observer. The controller keeps only
// this reference and never extends the delegate's lifetime; pass nil to
// detach.
func (c *Controller) SetDelegate(d Delegate) {
	c.delegate = d
	c.reg.delegate = d
}

// SetErrorHandler replaces the handler for locally-recovered errors such
// as content materialization failures.
func (c *Controller) SetErrorHandler(h errors.Handler) {
	if h != nil {
		c.errs = h
	}
}

// Layouter returns the active geometry strategy.
func (c *Controller) Layouter() layouter.Layouter {
	return c.lay
}

// NumberOfPages returns the current page count.
func (c *Controller) NumberOfPages() int {
	return c.pageCount
}

// CurrentPage returns the resting page index, or NoPage while the
// viewport is between pages.
func (c *Controller) CurrentPage() int {
	return c.viewport.RestingPage
}

// Offset returns the continuous viewport offset along the scroll axis.
func (c *Controller) Offset() float64 {
	return c.viewport.Offset
}

// SetViewportSize updates the viewport dimensions and re-lays out
// immediately. The offset is re-anchored so the resting page stays put.
func (c *Controller) SetViewportSize(size geometry.Size) {
	if size == c.viewport.Size {
		return
	}
	anchor := c.viewport.RestingPage
	c.viewport.Size = size
	if anchor != NoPage {
		c.viewport.Offset = c.restingOffsetFor(anchor)
	}
	c.layoutPass(true)
}

// LoadedPages returns the indexes of all materialized pages, ascending.
func (c *Controller) LoadedPages() []int {
	return c.reg.loadedIndexes()
}

// VisiblePages returns the indexes of all visible pages, ascending.
func (c *Controller) VisiblePages() []int {
	return c.vis.visibleIndexes()
}

// VisibleFraction returns the fraction of the page's frame that is
// inside the viewport and not covered by pages drawn on top, in
// [0.0, 1.0]. Unloaded pages report 0.
func (c *Controller) VisibleFraction(index int) float64 {
	return c.reg.visibleFraction(index, c.viewport.Bounds(c.lay.NavigationType()))
}

// ContentForPage returns the materialized content for index, or nil if
// the page is not loaded. The handle is borrowed; the registry keeps
// ownership.
func (c *Controller) ContentForPage(index int) Content {
	return c.reg.contentFor(index)
}

// PageForContent returns the index owning the given content handle, or
// NoPage if it is not part of the container.
func (c *Controller) PageForContent(content Content) int {
	return c.reg.indexOf(content)
}

// ReloadData discards every materialized page, re-reads the page count
// from the data source and runs a fresh layout pass.
func (c *Controller) ReloadData() {
	c.enqueue(&request{kind: reqReload})
}

// ReloadPages re-materializes the pages at the given indexes. Animated
// reloads interpolate surviving frames under the configured easing.
func (c *Controller) ReloadPages(indexes []int, animated bool, completion Completion) {
	c.enqueue(&request{kind: reqReloadPages, indexes: indexes, animated: animated, completion: completion})
}

// InsertPages inserts pages at the given post-edit indexes. The data
// source must already reflect the new count. The batch is validated
// synchronously; an invalid batch is rejected in full.
func (c *Controller) InsertPages(indexes []int, animated bool, completion Completion) error {
	batch := make(EditBatch, 0, len(indexes))
	for _, index := range indexes {
		batch = append(batch, Insert(index))
	}
	return c.ApplyEdits(batch, animated, completion)
}

// DeletePages removes the pages at the given pre-edit indexes.
func (c *Controller) DeletePages(indexes []int, animated bool, completion Completion) error {
	batch := make(EditBatch, 0, len(indexes))
	for _, index := range indexes {
		batch = append(batch, Delete(index))
	}
	return c.ApplyEdits(batch, animated, completion)
}

// MovePage relocates one page, preserving its content handle.
func (c *Controller) MovePage(from, to int, animated bool, completion Completion) error {
	return c.ApplyEdits(EditBatch{Move(from, to)}, animated, completion)
}

// ApplyEdits validates and queues an edit batch. Validation runs against
// the page count the batch will see when it applies, so the error is
// surfaced synchronously even when the batch waits behind an in-flight
// request. Edit batches are never superseded.
func (c *Controller) ApplyEdits(batch EditBatch, animated bool, completion Completion) error {
	diff, err := diffBatch(batch, c.plannedCount)
	if err != nil {
		return err
	}
	delta := diff.postCount - c.plannedCount
	c.plannedCount = diff.postCount
	c.enqueue(&request{kind: reqEdit, batch: batch, countDelta: delta, animated: animated, completion: completion})
	return nil
}

// SetLayouter swaps the geometry strategy. When animated, every
// materialized page interpolates from its old frame to its new one under
// the configured easing.
func (c *Controller) SetLayouter(lay layouter.Layouter, animated bool, completion Completion) {
	if lay == nil {
		panic("pageview: nil layouter")
	}
	c.enqueue(&request{kind: reqSetLayouter, lay: lay, focus: NoPage, animated: animated, completion: completion})
}

// SetLayouterAndFocus swaps the geometry strategy and moves the viewport
// to rest on the given page as part of the same transition.
func (c *Controller) SetLayouterAndFocus(lay layouter.Layouter, index int, animated bool, completion Completion) {
	if lay == nil {
		panic("pageview: nil layouter")
	}
	c.enqueue(&request{kind: reqSetLayouter, lay: lay, focus: index, animated: animated, completion: completion})
}

// NavigateToPage moves the viewport to rest on the page at index. A
// navigation arriving while another is animating cancels it: the
// superseded request's completion receives StatusCancelled and the new
// animation starts from the current interpolated offset. With
// animated=false the transition is one synchronous step and the
// completion fires before the call returns.
func (c *Controller) NavigateToPage(index int, animated bool, completion Completion) {
	c.enqueue(&request{kind: reqNavigate, target: index, animated: animated, completion: completion})
}

// restingOffsetFor returns the viewport offset at which the page at
// index rests, clamped to the scrollable range.
func (c *Controller) restingOffsetFor(index int) float64 {
	nav := c.lay.NavigationType()
	viewExtent := c.viewport.Size.Width
	if nav == layouter.NavigationVertical {
		viewExtent = c.viewport.Size.Height
	}
	step := viewExtent + c.lay.InterPageSpacing()

	trial := c.viewport
	trial.Offset = float64(index) * step
	frame := c.lay.FrameForPage(index, trial)
	offset := frame.Left
	if nav == layouter.NavigationVertical {
		offset = frame.Top
	}
	return c.clampOffset(offset)
}

func (c *Controller) clampOffset(offset float64) float64 {
	nav := c.lay.NavigationType()
	extent := c.lay.ContentExtent(c.pageCount, c.viewport)
	contentExtent := extent.Width
	viewExtent := c.viewport.Size.Width
	if nav == layouter.NavigationVertical {
		contentExtent = extent.Height
		viewExtent = c.viewport.Size.Height
	}
	max := contentExtent - viewExtent
	if max < 0 {
		max = 0
	}
	if offset > max {
		offset = max
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}

// targetFrame returns the layouter frame for index at the current
// viewport, validated against layouter totality. A non-finite frame is a
// programming error in the layouter and fails fast.
func (c *Controller) targetFrame(index int) geometry.Rect {
	frame := c.lay.FrameForPage(index, c.viewport)
	if !finiteRect(frame) {
		panic(fmt.Sprintf("pageview: layouter produced non-finite frame %+v for page %d", frame, index))
	}
	return frame
}

// layoutPass runs one full layout cycle: materialize the loadable
// window, position and stack every loaded page, evict pages that left
// the window, then derive visibility events. When atRest is true the
// resting page is recomputed and DidNavigateToPage fires if it changed.
//
// Events fire in the contract order: DidHidePage, DidShowPage,
// DidNavigateToOffset, then DidNavigateToPage.
func (c *Controller) layoutPass(atRest bool) {
	nav := c.lay.NavigationType()
	window := c.loadableWindow()

	// Update the resting page before eviction so a page the viewport
	// just left no longer counts as resting.
	restChanged := false
	if atRest {
		rest := restingPage(c.lay, c.pageCount, c.viewport)
		if rest != c.viewport.RestingPage {
			c.viewport.RestingPage = rest
			restChanged = true
		}
	}

	// Materialize pages entering the window, lay out everything loaded.
	for index := 0; index < c.pageCount; index++ {
		if !window.inside(index) {
			continue
		}
		if _, err := c.reg.materialize(index); err != nil {
			var e *errors.Error
			if stderrors.As(err, &e) {
				c.errs.HandleError(e)
			}
			// Slot proceeds empty; retried next pass.
			continue
		}
		c.applyGeometry(index)
	}

	// Evict pages that left the window, unless pinned or resting. A slot
	// that survives still gets its geometry refreshed so visibility is
	// derived from its real frame.
	for _, index := range c.reg.loadedIndexes() {
		if index < c.pageCount && window.inside(index) {
			continue
		}
		c.reg.evict(index, c.viewport.RestingPage)
		if index < c.pageCount && c.reg.contentFor(index) != nil {
			c.applyGeometry(index)
		}
	}

	viewportBounds := c.viewport.Bounds(nav)
	c.vis.diff(c.reg, viewportBounds, c.delegate)

	if c.delegate != nil {
		c.delegate.DidNavigateToOffset(c.viewport.Offset)
		if restChanged && c.viewport.RestingPage != NoPage {
			c.delegate.DidNavigateToPage(c.viewport.RestingPage)
		}
	}
}

// applyGeometry computes and applies the frame and z-order for one
// loaded page, honoring self-sizing and any in-flight frame transition.
func (c *Controller) applyGeometry(index int) {
	s := c.reg.slotAt(index)
	if s == nil || s.state != Materialized {
		return
	}

	frame := c.targetFrame(index)

	// Self-sizing layouters re-query once after materialization.
	if ss, ok := c.lay.(layouter.SelfSizing); ok && !s.sizeQueried {
		if sp, ok := s.content.(SizeProvider); ok {
			frame = ss.PreferredFrameForPage(index, sp.PreferredSize(), c.viewport)
			s.sizeQueried = true
		}
	}

	if c.transition != nil {
		if from, ok := c.transition[index]; ok {
			frame = geometry.LerpRect(from, frame, c.transitionProgress)
		}
	}

	z := c.lay.ZPosition(index, c.viewport)
	s.frame = frame
	s.zOrder = z
	s.content.ApplyFrame(frame)
	s.content.SetZOrder(z)
}

// loadableWindow is the index range kept materialized: every page whose
// frame intersects the viewport extended by the lookahead on both sides.
type loadWindow struct {
	bounds geometry.Rect
	c      *Controller
}

func (c *Controller) loadableWindow() loadWindow {
	nav := c.lay.NavigationType()
	bounds := c.viewport.Bounds(nav)
	lookahead := float64(c.opts.LookaheadPages)
	if nav == layouter.NavigationVertical {
		reach := lookahead * (c.viewport.Size.Height + c.lay.InterPageSpacing())
		bounds.Top -= reach
		bounds.Bottom += reach
	} else {
		reach := lookahead * (c.viewport.Size.Width + c.lay.InterPageSpacing())
		bounds.Left -= reach
		bounds.Right += reach
	}
	return loadWindow{bounds: bounds, c: c}
}

func (w loadWindow) inside(index int) bool {
	return w.c.lay.FrameForPage(index, w.c.viewport).Overlaps(w.bounds)
}

// captureFrames records the current frames of all loaded pages, keyed
// through the given mapping (nil for identity), as the start state of an
// animated frame transition.
func (c *Controller) captureFrames(mapping reindexMapping) map[int]geometry.Rect {
	frames := make(map[int]geometry.Rect)
	for _, index := range c.reg.loadedIndexes() {
		target := index
		if mapping != nil {
			mapped, ok := mapping[index]
			if ok {
				if mapped == NoPage {
					continue
				}
				target = mapped
			}
		}
		frames[target] = c.reg.slotAt(index).frame
	}
	return frames
}

func finiteRect(r geometry.Rect) bool {
	return finite(r.Left) && finite(r.Top) && finite(r.Right) && finite(r.Bottom)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
