package layouter

import "github.com/go-drift/pageview/pkg/geometry"

// DefaultParallaxFactor is the fraction of the scroll delta pages lag by.
const DefaultParallaxFactor = 0.5

// Parallax moves pages at a reduced rate while they transition through
// the viewport, producing a depth effect. A page at its resting offset
// sits exactly at its plain-layout frame; while the viewport moves
// toward or away from it, the page trails the scroll by Factor times the
// remaining distance, capped at one page step.
type Parallax struct {
	// Navigation is the scroll axis. Defaults to horizontal (zero value).
	Navigation NavigationType
	// Spacing is the gap between adjacent pages.
	Spacing float64
	// Factor is the parallax strength in [0, 1). Zero means
	// DefaultParallaxFactor.
	Factor float64
}

func (p Parallax) factor() float64 {
	if p.Factor <= 0 {
		return DefaultParallaxFactor
	}
	return p.Factor
}

func (p Parallax) FrameForPage(index int, vp ViewportState) geometry.Rect {
	pageStep := step(vp, p.Navigation, p.Spacing)
	origin := float64(index) * pageStep

	// Lag trailing pages by a fraction of their distance to the viewport.
	delta := vp.Offset - origin
	if delta > pageStep {
		delta = pageStep
	} else if delta < -pageStep {
		delta = -pageStep
	}
	origin += delta * p.factor()

	if p.Navigation == NavigationVertical {
		return geometry.RectFromLTWH(0, origin, vp.Size.Width, vp.Size.Height)
	}
	return geometry.RectFromLTWH(origin, 0, vp.Size.Width, vp.Size.Height)
}

func (p Parallax) ContentExtent(pageCount int, vp ViewportState) geometry.Size {
	return Plain{Navigation: p.Navigation, Spacing: p.Spacing}.ContentExtent(pageCount, vp)
}

func (p Parallax) InterPageSpacing() float64 {
	return p.Spacing
}

func (p Parallax) NavigationType() NavigationType {
	return p.Navigation
}

func (p Parallax) ZPosition(index int, vp ViewportState) int {
	return index
}
