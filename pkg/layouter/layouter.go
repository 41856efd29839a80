// Package layouter defines the pluggable geometry strategy the pageview
// engine positions pages with, and ships the stock layouter family:
// plain side-by-side paging, sliding stacks and parallax scrolling.
//
// A layouter is a pure function from page index and viewport state to a
// frame. It must be safe to call for any index in [0, numberOfPages),
// including pages that are not materialized yet, and must not read any
// state beyond its arguments.
package layouter

import "github.com/go-drift/pageview/pkg/geometry"

// NoPage marks the absence of a page index, e.g. the resting page while
// the viewport sits between two pages.
const NoPage = -1

// NavigationType is the axis pages are laid out and navigated along.
type NavigationType int

const (
	// NavigationHorizontal lays pages out left to right.
	NavigationHorizontal NavigationType = iota
	// NavigationVertical lays pages out top to bottom.
	NavigationVertical
)

// ViewportState is the visible window the layouter computes frames
// against: the continuous offset along the scroll axis, the viewport
// size, and the page the viewport currently rests on (NoPage while the
// viewport is between pages).
type ViewportState struct {
	Offset      float64
	Size        geometry.Size
	RestingPage int
}

// Bounds returns the viewport rectangle in content coordinates.
func (vp ViewportState) Bounds(nav NavigationType) geometry.Rect {
	if nav == NavigationVertical {
		return geometry.RectFromLTWH(0, vp.Offset, vp.Size.Width, vp.Size.Height)
	}
	return geometry.RectFromLTWH(vp.Offset, 0, vp.Size.Width, vp.Size.Height)
}

// Layouter computes page geometry. Implementations must be pure and
// deterministic; a failing layouter is a programming error, not a
// recoverable condition.
type Layouter interface {
	// FrameForPage returns the frame for the page at index in content
	// coordinates. Must not depend on the page being materialized.
	FrameForPage(index int, vp ViewportState) geometry.Rect

	// ContentExtent returns the total scrollable content size for the
	// given page count.
	ContentExtent(pageCount int, vp ViewportState) geometry.Size

	// InterPageSpacing returns the gap between adjacent pages along the
	// scroll axis.
	InterPageSpacing() float64

	// NavigationType returns the scroll axis.
	NavigationType() NavigationType

	// ZPosition returns the stacking order for the page at index; higher
	// values draw on top. Overlap tie-breaking during transitions is a
	// layouter policy, not an engine rule.
	ZPosition(index int, vp ViewportState) int
}

// SelfSizing is an optional layouter capability for content-measured
// pages. When the layouter implements it and a page's content provides a
// preferred size, the engine re-queries the frame once after the page
// materializes and runs a single re-layout pass.
type SelfSizing interface {
	PreferredFrameForPage(index int, preferred geometry.Size, vp ViewportState) geometry.Rect
}

// step returns the distance between adjacent page origins.
func step(vp ViewportState, nav NavigationType, spacing float64) float64 {
	if nav == NavigationVertical {
		return vp.Size.Height + spacing
	}
	return vp.Size.Width + spacing
}
