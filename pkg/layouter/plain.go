package layouter

import "github.com/go-drift/pageview/pkg/geometry"

// Plain lays pages out side by side along the navigation axis, each the
// size of the viewport, separated by Spacing. This is the classic paged
// scroll view layout.
type Plain struct {
	// Navigation is the scroll axis. Defaults to horizontal (zero value).
	Navigation NavigationType
	// Spacing is the gap between adjacent pages.
	Spacing float64
}

func (p Plain) FrameForPage(index int, vp ViewportState) geometry.Rect {
	origin := float64(index) * step(vp, p.Navigation, p.Spacing)
	if p.Navigation == NavigationVertical {
		return geometry.RectFromLTWH(0, origin, vp.Size.Width, vp.Size.Height)
	}
	return geometry.RectFromLTWH(origin, 0, vp.Size.Width, vp.Size.Height)
}

func (p Plain) ContentExtent(pageCount int, vp ViewportState) geometry.Size {
	if pageCount == 0 {
		return geometry.Size{}
	}
	extent := float64(pageCount)*step(vp, p.Navigation, p.Spacing) - p.Spacing
	if p.Navigation == NavigationVertical {
		return geometry.Size{Width: vp.Size.Width, Height: extent}
	}
	return geometry.Size{Width: extent, Height: vp.Size.Height}
}

func (p Plain) InterPageSpacing() float64 {
	return p.Spacing
}

func (p Plain) NavigationType() NavigationType {
	return p.Navigation
}

func (p Plain) ZPosition(index int, vp ViewportState) int {
	return index
}
