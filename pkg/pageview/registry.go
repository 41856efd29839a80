package pageview

import (
	"slices"

	"github.com/go-drift/pageview/pkg/errors"
	"github.com/go-drift/pageview/pkg/geometry"
)

// MaterializationState tracks a slot's content lifecycle.
type MaterializationState int

const (
	// Unmaterialized means the slot holds no content handle.
	Unmaterialized MaterializationState = iota
	// Materializing means the data source is being queried for content.
	Materializing
	// Materialized means the slot owns an attached content handle.
	Materialized
	// Evicting means the content handle is being detached.
	Evicting
)

func (s MaterializationState) String() string {
	switch s {
	case Unmaterialized:
		return "unmaterialized"
	case Materializing:
		return "materializing"
	case Materialized:
		return "materialized"
	case Evicting:
		return "evicting"
	default:
		return "unknown"
	}
}

// slot is one logical page position: its content handle (nil until
// materialized), the last frame computed for it, and its lifecycle state.
type slot struct {
	content Content
	frame   geometry.Rect
	zOrder  int
	state   MaterializationState

	// pinned slots refuse eviction while part of an in-flight transition.
	pinned bool

	// sizeQueried is set after a self-sizing re-layout so the engine
	// re-queries the preferred size at most once per materialization.
	sizeQueried bool
}

// reindexMapping maps pre-edit indices to post-edit indices. A value of
// NoPage marks the page as removed.
type reindexMapping map[int]int

// registry owns the index-to-slot mapping and every content handle in
// the container. Slots transition Unmaterialized to Materialized only
// through Materialize, and back only through Evict.
type registry struct {
	slots    map[int]*slot
	source   DataSource
	delegate Delegate
}

func newRegistry(source DataSource) *registry {
	return &registry{
		slots:  make(map[int]*slot),
		source: source,
	}
}

func (r *registry) slotAt(index int) *slot {
	return r.slots[index]
}

// loadedIndexes returns the indexes of all materialized slots in
// ascending order.
func (r *registry) loadedIndexes() []int {
	indexes := make([]int, 0, len(r.slots))
	for index, s := range r.slots {
		if s.state == Materialized {
			indexes = append(indexes, index)
		}
	}
	slices.Sort(indexes)
	return indexes
}

// contentFor returns the materialized content for index, or nil.
func (r *registry) contentFor(index int) Content {
	if s := r.slots[index]; s != nil && s.state == Materialized {
		return s.content
	}
	return nil
}

// indexOf returns the index owning the given content handle, or NoPage.
func (r *registry) indexOf(content Content) int {
	for index, s := range r.slots {
		if s.state == Materialized && s.content == content {
			return index
		}
	}
	return NoPage
}

// Materialize creates the slot's content handle via the data source.
// Idempotent: an already materialized slot returns its existing handle.
// Emits one WillMaterializePage per materialization attempt. A data
// source returning nil leaves the slot Unmaterialized and the call fails
// with KindContentUnavailable; the next Materialize retries and
// announces itself again.
func (r *registry) materialize(index int) (Content, error) {
	s := r.slots[index]
	if s == nil {
		s = &slot{}
		r.slots[index] = s
	}
	if s.state == Materialized {
		return s.content, nil
	}

	s.state = Materializing
	if r.delegate != nil {
		r.delegate.WillMaterializePage(index)
	}
	content := r.source.ContentForPage(index)
	if content == nil {
		s.state = Unmaterialized
		return nil, errors.Errorf("registry.Materialize", errors.KindContentUnavailable,
			"no content for page %d", index)
	}

	s.content = content
	s.state = Materialized
	s.sizeQueried = false
	content.Attach()
	return content, nil
}

// Evict releases the slot's content handle and emits exactly one
// DidEvictPage. Idempotent: evicting an unmaterialized slot is a no-op.
// Eviction is refused (deferred to a later pass) while the slot is
// pinned by an in-flight transition or is the resting page.
func (r *registry) evict(index int, restingPage int) {
	s := r.slots[index]
	if s == nil || s.state != Materialized {
		return
	}
	if s.pinned || index == restingPage {
		return
	}
	r.forceEvict(index, s)
}

func (r *registry) forceEvict(index int, s *slot) {
	s.state = Evicting
	s.content.Detach()
	s.content = nil
	s.state = Unmaterialized
	delete(r.slots, index)
	if r.delegate != nil {
		r.delegate.DidEvictPage(index)
	}
}

// reindex renumbers slots per the mapping, atomically. Slots mapped to
// NoPage are returned still materialized; the caller evicts them only
// after the surviving slots have received a consistent layout pass.
// Content handles are preserved across renumbering.
func (r *registry) reindex(mapping reindexMapping) map[int]*slot {
	renumbered := make(map[int]*slot, len(r.slots))
	removed := make(map[int]*slot)
	for oldIndex, s := range r.slots {
		newIndex, ok := mapping[oldIndex]
		if !ok {
			newIndex = oldIndex
		}
		if newIndex == NoPage {
			removed[oldIndex] = s
			continue
		}
		renumbered[newIndex] = s
	}
	r.slots = renumbered
	return removed
}

// evictRemoved detaches slots previously separated by reindex. Removed
// slots bypass pinning: they no longer exist in the sequence.
func (r *registry) evictRemoved(removed map[int]*slot) {
	indexes := make([]int, 0, len(removed))
	for index := range removed {
		indexes = append(indexes, index)
	}
	slices.Sort(indexes)
	for _, index := range indexes {
		s := removed[index]
		if s.state != Materialized {
			continue
		}
		s.state = Evicting
		s.content.Detach()
		s.content = nil
		s.state = Unmaterialized
		if r.delegate != nil {
			r.delegate.DidEvictPage(index)
		}
	}
}

// pin marks the slot at index as part of an in-flight transition.
func (r *registry) pin(index int) {
	if s := r.slots[index]; s != nil {
		s.pinned = true
	}
}

// unpinAll clears transition pins.
func (r *registry) unpinAll() {
	for _, s := range r.slots {
		s.pinned = false
	}
}
