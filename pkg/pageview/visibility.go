package pageview

import (
	"math"
	"slices"

	"github.com/go-drift/pageview/pkg/geometry"
	"github.com/go-drift/pageview/pkg/layouter"
)

// visibilityTracker derives show/hide transitions from layout state. On
// each layout pass it diffs the previously visible set against the
// current one and reports the symmetric difference: a page crosses into
// or out of visibility exactly when its visible fraction crosses zero.
type visibilityTracker struct {
	visible map[int]bool
}

func newVisibilityTracker() *visibilityTracker {
	return &visibilityTracker{visible: make(map[int]bool)}
}

// visibleFraction returns the fraction of the slot's frame area that
// lies within the viewport and is not covered by materialized pages
// drawn on top. Coverage is decided by z-order alone; a page at equal z
// never covers another.
func (r *registry) visibleFraction(index int, viewport geometry.Rect) float64 {
	s := r.slots[index]
	if s == nil || s.state != Materialized {
		return 0
	}
	frameArea := s.frame.Area()
	if frameArea == 0 {
		return 0
	}

	clip := s.frame.Intersect(viewport)
	if clip.IsEmpty() {
		return 0
	}

	var covers []geometry.Rect
	for other, o := range r.slots {
		if other == index || o.state != Materialized {
			continue
		}
		if o.zOrder <= s.zOrder {
			continue
		}
		overlap := clip.Intersect(o.frame)
		if !overlap.IsEmpty() {
			covers = append(covers, overlap)
		}
	}

	exposed := clip.Area() - geometry.UnionArea(covers)
	if exposed < 0 {
		exposed = 0
	}
	return exposed / frameArea
}

// diff recomputes the visible set and emits DidHidePage for every page
// that left it followed by DidShowPage for every page that entered it,
// each group in ascending index order. Hides precede shows so a page is
// never reported visible in two slots at once during a move.
func (t *visibilityTracker) diff(r *registry, viewport geometry.Rect, delegate Delegate) {
	current := make(map[int]bool, len(r.slots))
	for index := range r.slots {
		if r.visibleFraction(index, viewport) > 0 {
			current[index] = true
		}
	}

	var hidden, shown []int
	for index := range t.visible {
		if !current[index] {
			hidden = append(hidden, index)
		}
	}
	for index := range current {
		if !t.visible[index] {
			shown = append(shown, index)
		}
	}
	slices.Sort(hidden)
	slices.Sort(shown)

	t.visible = current

	if delegate == nil {
		return
	}
	for _, index := range hidden {
		delegate.DidHidePage(index)
	}
	for _, index := range shown {
		delegate.DidShowPage(index)
	}
}

// visibleIndexes returns the currently visible set in ascending order.
func (t *visibilityTracker) visibleIndexes() []int {
	indexes := make([]int, 0, len(t.visible))
	for index := range t.visible {
		indexes = append(indexes, index)
	}
	slices.Sort(indexes)
	return indexes
}

// reset forgets the visible set without emitting events. Used on reload,
// where the whole sequence is replaced rather than edited.
func (t *visibilityTracker) reset() {
	t.visible = make(map[int]bool)
}

// restingPage returns the index whose frame center sits closest to the
// viewport center along the scroll axis, ties broken by lowest index.
// Returns NoPage when the container is empty.
func restingPage(lay layouter.Layouter, pageCount int, vp layouter.ViewportState) int {
	if pageCount == 0 {
		return NoPage
	}
	viewCenter := vp.Bounds(lay.NavigationType()).Center()
	best := NoPage
	bestDistance := math.Inf(1)
	for index := 0; index < pageCount; index++ {
		center := lay.FrameForPage(index, vp).Center()
		var distance float64
		if lay.NavigationType() == layouter.NavigationVertical {
			distance = math.Abs(center.Y - viewCenter.Y)
		} else {
			distance = math.Abs(center.X - viewCenter.X)
		}
		if distance < bestDistance {
			bestDistance = distance
			best = index
		}
	}
	return best
}
