// Command pagedemo drives the pageview engine headlessly: it builds a
// small paginated container over fake content, runs an animated
// navigation under a manual frame clock and prints every lifecycle
// event. Options are read from pageview.yaml in the working directory
// when present.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/go-drift/pageview/pkg/animation"
	"github.com/go-drift/pageview/pkg/geometry"
	"github.com/go-drift/pageview/pkg/layouter"
	"github.com/go-drift/pageview/pkg/pageview"
)

type card struct {
	name string
}

func (c *card) ApplyFrame(frame geometry.Rect) {
	fmt.Printf("  frame  %-8s -> (%.0f, %.0f, %.0f, %.0f)\n",
		c.name, frame.Left, frame.Top, frame.Width(), frame.Height())
}

func (c *card) SetZOrder(z int) {}

func (c *card) Attach() { fmt.Printf("  attach %s\n", c.name) }

func (c *card) Detach() { fmt.Printf("  detach %s\n", c.name) }

type cardSource struct {
	count int
}

func (s *cardSource) NumberOfPages() int { return s.count }

func (s *cardSource) ContentForPage(index int) pageview.Content {
	return &card{name: fmt.Sprintf("card-%d", index)}
}

type printDelegate struct {
	pageview.NopDelegate
}

func (printDelegate) DidShowPage(index int) { fmt.Printf("  show   page %d\n", index) }

func (printDelegate) DidHidePage(index int) { fmt.Printf("  hide   page %d\n", index) }

func (printDelegate) DidNavigateToPage(index int) { fmt.Printf("  rest   page %d\n", index) }

func main() {
	pages := flag.Int("pages", 5, "number of pages")
	target := flag.Int("target", 3, "page to navigate to")
	configPath := flag.String("config", "pageview.yaml", "options file")
	flag.Parse()

	opts, err := pageview.LoadOptions(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pagedemo: %v\n", err)
		os.Exit(1)
	}

	clock := animation.NewManualClock(time.Now())
	prev := animation.SetClock(clock)
	defer animation.SetClock(prev)

	controller := pageview.New(
		&cardSource{count: *pages},
		layouter.Plain{Spacing: 10},
		geometry.Size{Width: 320, Height: 480},
		opts,
	)
	controller.SetDelegate(printDelegate{})

	fmt.Println("initial layout:")
	controller.ReloadData()

	fmt.Printf("navigate to page %d (animated):\n", *target)
	done := false
	controller.NavigateToPage(*target, true, func(status pageview.Status) {
		fmt.Printf("  navigation %s\n", status)
		done = true
	})

	// Pump 60fps frames until the navigation settles.
	for !done {
		clock.Advance(time.Second / 60)
		animation.StepTickers()
	}

	fmt.Printf("resting page: %d, loaded: %v, visible: %v\n",
		controller.CurrentPage(), controller.LoadedPages(), controller.VisiblePages())
}
