package pageview

import (
	"fmt"
	"testing"
	"time"

	"github.com/go-drift/pageview/pkg/animation"
	"github.com/go-drift/pageview/pkg/geometry"
	"github.com/go-drift/pageview/pkg/layouter"
)

// fakeContent records every render-surface call made against it.
type fakeContent struct {
	index       int
	frames      []geometry.Rect
	z           int
	attached    bool
	attachCount int
	detachCount int
}

func (f *fakeContent) ApplyFrame(frame geometry.Rect) { f.frames = append(f.frames, frame) }
func (f *fakeContent) SetZOrder(z int)                { f.z = z }

func (f *fakeContent) Attach() {
	f.attached = true
	f.attachCount++
}

func (f *fakeContent) Detach() {
	f.attached = false
	f.detachCount++
}

func (f *fakeContent) lastFrame() geometry.Rect {
	if len(f.frames) == 0 {
		return geometry.Rect{}
	}
	return f.frames[len(f.frames)-1]
}

// fakeSource hands out fakeContent and remembers every handle created.
type fakeSource struct {
	count       int
	unavailable map[int]bool
	created     []*fakeContent
}

func (s *fakeSource) NumberOfPages() int { return s.count }

func (s *fakeSource) ContentForPage(index int) Content {
	if s.unavailable[index] {
		return nil
	}
	content := &fakeContent{index: index}
	s.created = append(s.created, content)
	return content
}

// recordingDelegate captures the notification sequence as strings like
// "show:2", "hide:0", "offset:330", "rest:3", "materialize:1", "evict:0".
type recordingDelegate struct {
	events []string
}

func (d *recordingDelegate) WillMaterializePage(index int) {
	d.events = append(d.events, fmt.Sprintf("materialize:%d", index))
}

func (d *recordingDelegate) DidEvictPage(index int) {
	d.events = append(d.events, fmt.Sprintf("evict:%d", index))
}

func (d *recordingDelegate) DidShowPage(index int) {
	d.events = append(d.events, fmt.Sprintf("show:%d", index))
}

func (d *recordingDelegate) DidHidePage(index int) {
	d.events = append(d.events, fmt.Sprintf("hide:%d", index))
}

func (d *recordingDelegate) DidNavigateToOffset(offset float64) {
	d.events = append(d.events, fmt.Sprintf("offset:%.0f", offset))
}

func (d *recordingDelegate) DidNavigateToPage(index int) {
	d.events = append(d.events, fmt.Sprintf("rest:%d", index))
}

func (d *recordingDelegate) reset() {
	d.events = nil
}

func (d *recordingDelegate) count(prefix string) int {
	n := 0
	for _, event := range d.events {
		if len(event) >= len(prefix) && event[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

func (d *recordingDelegate) has(event string) bool {
	for _, e := range d.events {
		if e == event {
			return true
		}
	}
	return false
}

// harness wires a controller over a fake source under a manual clock.
type harness struct {
	controller *Controller
	source     *fakeSource
	delegate   *recordingDelegate
	clock      *animation.ManualClock
}

func newHarness(t *testing.T, pages int, opts Options) *harness {
	t.Helper()

	clock := animation.NewManualClock(time.Unix(0, 0))
	prev := animation.SetClock(clock)
	t.Cleanup(func() { animation.SetClock(prev) })

	source := &fakeSource{count: pages, unavailable: make(map[int]bool)}
	delegate := &recordingDelegate{}

	controller := New(source, layouter.Plain{Spacing: 10}, geometry.Size{Width: 320, Height: 480}, opts)
	controller.SetDelegate(delegate)
	controller.ReloadData()

	return &harness{
		controller: controller,
		source:     source,
		delegate:   delegate,
		clock:      clock,
	}
}

// step advances one 60fps frame.
func (h *harness) step() {
	h.clock.Advance(time.Second / 60)
	animation.StepTickers()
}

// settle pumps frames until every animation has finished.
func (h *harness) settle(t *testing.T) {
	t.Helper()
	for i := 0; i < 1000; i++ {
		if !animation.HasActiveTickers() {
			return
		}
		h.step()
	}
	t.Fatal("animation did not settle within 1000 frames")
}
