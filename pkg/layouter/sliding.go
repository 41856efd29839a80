package layouter

import "github.com/go-drift/pageview/pkg/geometry"

// Sliding pins pages the viewport has scrolled past to the leading edge,
// so each incoming page slides over the resting one instead of pushing
// it away. Later pages stack on top of earlier ones.
type Sliding struct {
	// Navigation is the scroll axis. Defaults to horizontal (zero value).
	Navigation NavigationType
	// Spacing is the gap between adjacent pages.
	Spacing float64
}

func (s Sliding) FrameForPage(index int, vp ViewportState) geometry.Rect {
	origin := float64(index) * step(vp, s.Navigation, s.Spacing)
	// Pages behind the viewport stick to the leading edge.
	if origin < vp.Offset {
		origin = vp.Offset
	}
	if s.Navigation == NavigationVertical {
		return geometry.RectFromLTWH(0, origin, vp.Size.Width, vp.Size.Height)
	}
	return geometry.RectFromLTWH(origin, 0, vp.Size.Width, vp.Size.Height)
}

func (s Sliding) ContentExtent(pageCount int, vp ViewportState) geometry.Size {
	return Plain{Navigation: s.Navigation, Spacing: s.Spacing}.ContentExtent(pageCount, vp)
}

func (s Sliding) InterPageSpacing() float64 {
	return s.Spacing
}

func (s Sliding) NavigationType() NavigationType {
	return s.Navigation
}

func (s Sliding) ZPosition(index int, vp ViewportState) int {
	return index
}
