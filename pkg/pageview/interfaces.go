// Package pageview implements a paginated content container engine: a
// virtualized collection of heavyweight pages laid out along a scroll
// axis by a pluggable layouter, with animated navigation between them,
// visibility tracking and materialize/evict lifecycle management.
//
// The engine is single-threaded and cooperative. All operations, layout
// passes and content materialization happen on the caller's goroutine;
// animated transitions advance only when the host pumps
// [animation.StepTickers] from its frame loop.
package pageview

import (
	"github.com/go-drift/pageview/pkg/geometry"
	"github.com/go-drift/pageview/pkg/layouter"
)

// NoPage marks the absence of a page index.
const NoPage = layouter.NoPage

// Content is the capability interface every presentable page content
// type implements. The engine owns the content handle; collaborators
// receive only borrowed references for the duration of a callback.
type Content interface {
	// ApplyFrame positions the content at the given frame in content
	// coordinates.
	ApplyFrame(frame geometry.Rect)

	// SetZOrder sets the stacking position; higher values draw on top.
	SetZOrder(z int)

	// Attach is called once when the content enters the container,
	// before its first frame is applied.
	Attach()

	// Detach is called once when the content leaves the container.
	// The engine drops its handle afterwards.
	Detach()
}

// SizeProvider is an optional Content capability for self-sizing pages.
// When the active layouter supports self-sizing, the engine queries the
// preferred size once after materialization and re-lays the page out.
type SizeProvider interface {
	PreferredSize() geometry.Size
}

// DataSource supplies pages to the controller.
type DataSource interface {
	// NumberOfPages returns the total page count.
	NumberOfPages() int

	// ContentForPage returns the content for the page at index, or nil
	// if no content is available. An unavailable page stays
	// unmaterialized and is retried on a later layout pass.
	ContentForPage(index int) Content
}

// Delegate receives lifecycle notifications. All methods are optional;
// embed NopDelegate and override the ones of interest. Per layout pass
// the controller fires, in order: DidHidePage for every page leaving the
// visible set, DidShowPage for every page entering it (each group in
// ascending index order), then DidNavigateToOffset, then
// DidNavigateToPage when a rest state is entered.
type Delegate interface {
	// WillMaterializePage fires before the content for index is
	// requested from the data source. A page whose source returned nil
	// is retried on a later pass and every attempt announces itself, so
	// this may fire more than once per index without an intervening
	// DidEvictPage.
	WillMaterializePage(index int)

	// DidEvictPage fires once after the content for index is detached.
	DidEvictPage(index int)

	// DidShowPage fires when any part of the page becomes visible:
	// inside the viewport bounds and not fully covered by pages drawn
	// on top.
	DidShowPage(index int)

	// DidHidePage fires when the page's frame leaves the viewport
	// bounds entirely or becomes fully overlapped.
	DidHidePage(index int)

	// DidNavigateToOffset fires on every viewport offset change.
	DidNavigateToOffset(offset float64)

	// DidNavigateToPage fires when the viewport comes to rest on a page.
	DidNavigateToPage(index int)
}

// NopDelegate is an embeddable no-op Delegate implementation.
type NopDelegate struct{}

func (NopDelegate) WillMaterializePage(int)     {}
func (NopDelegate) DidEvictPage(int)            {}
func (NopDelegate) DidShowPage(int)             {}
func (NopDelegate) DidHidePage(int)             {}
func (NopDelegate) DidNavigateToOffset(float64) {}
func (NopDelegate) DidNavigateToPage(int)       {}

// Status is the terminal result delivered to a request's completion.
type Status int

const (
	// StatusCompleted means the request ran to completion.
	StatusCompleted Status = iota
	// StatusCancelled means the request was superseded before it
	// finished. Superseded requests always receive a terminal status;
	// completions are never silently dropped.
	StatusCancelled
)

func (s Status) String() string {
	switch s {
	case StatusCompleted:
		return "completed"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Completion receives a request's terminal status. May be nil.
type Completion func(Status)

func (c Completion) call(status Status) {
	if c != nil {
		c(status)
	}
}
