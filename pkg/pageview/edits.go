package pageview

import (
	"slices"

	"github.com/go-drift/pageview/pkg/errors"
)

// EditKind discriminates edit operations.
type EditKind int

const (
	// EditInsert inserts a new page. Index is the position in the
	// post-edit sequence.
	EditInsert EditKind = iota
	// EditDelete removes the page at Index in the pre-edit sequence.
	EditDelete
	// EditMove relocates the page at Index (pre-edit) to To (post-edit),
	// preserving its content handle. Modeled as a delete and an insert
	// applied at the same logical instant.
	EditMove
)

func (k EditKind) String() string {
	switch k {
	case EditInsert:
		return "insert"
	case EditDelete:
		return "delete"
	case EditMove:
		return "move"
	default:
		return "unknown"
	}
}

// Edit is one operation in an EditBatch.
type Edit struct {
	Kind  EditKind
	Index int
	// To is the destination index for EditMove.
	To int
}

// Insert returns an insert edit for the given post-edit index.
func Insert(index int) Edit { return Edit{Kind: EditInsert, Index: index} }

// Delete returns a delete edit for the given pre-edit index.
func Delete(index int) Edit { return Edit{Kind: EditDelete, Index: index} }

// Move returns a move edit from a pre-edit index to a post-edit index.
func Move(from, to int) Edit { return Edit{Kind: EditMove, Index: from, To: to} }

// EditBatch is an ordered set of edits applied as one atomic step.
// Deletions and move origins reference pre-edit indices; insertions and
// move destinations reference post-edit indices. No intermediate state
// is observable mid-batch.
type EditBatch []Edit

// batchDiff is the outcome of diffing an EditBatch against a page count:
// the index renumbering for surviving pages, the post-edit count, and
// the post-edit indexes receiving moved pages, which the engine pins
// through the edit's layout passes.
type batchDiff struct {
	mapping   reindexMapping
	postCount int
	moved     []int
}

// diffBatch validates the batch against the pre-edit page count and
// computes the renumbering. Any out-of-range index, duplicate target, or
// move with from == to rejects the whole batch with KindInvalidEditBatch.
func diffBatch(batch EditBatch, preCount int) (batchDiff, error) {
	const op = "edits.Apply"

	// deleted holds pre-edit indices removed; occupied holds post-edit
	// indices claimed by inserts and move destinations.
	deleted := make(map[int]bool)
	occupied := make(map[int]bool)
	moves := make(map[int]int)
	inserts := 0

	for _, edit := range batch {
		switch edit.Kind {
		case EditInsert:
			inserts++
		case EditDelete:
			if edit.Index < 0 || edit.Index >= preCount {
				return batchDiff{}, errors.Errorf(op, errors.KindInvalidEditBatch,
					"delete index %d out of range [0, %d)", edit.Index, preCount)
			}
			if deleted[edit.Index] {
				return batchDiff{}, errors.Errorf(op, errors.KindInvalidEditBatch,
					"duplicate delete of index %d", edit.Index)
			}
			deleted[edit.Index] = true
		case EditMove:
			if edit.Index < 0 || edit.Index >= preCount {
				return batchDiff{}, errors.Errorf(op, errors.KindInvalidEditBatch,
					"move origin %d out of range [0, %d)", edit.Index, preCount)
			}
			if edit.Index == edit.To {
				return batchDiff{}, errors.Errorf(op, errors.KindInvalidEditBatch,
					"move from %d to itself", edit.Index)
			}
			if _, ok := moves[edit.Index]; ok {
				return batchDiff{}, errors.Errorf(op, errors.KindInvalidEditBatch,
					"duplicate move origin %d", edit.Index)
			}
			moves[edit.Index] = edit.To
		default:
			return batchDiff{}, errors.Errorf(op, errors.KindInvalidEditBatch,
				"unknown edit kind %d", edit.Kind)
		}
	}

	postCount := preCount - len(deleted) + inserts

	for _, edit := range batch {
		var target int
		switch edit.Kind {
		case EditInsert:
			target = edit.Index
		case EditMove:
			target = edit.To
		default:
			continue
		}
		if target < 0 || target >= postCount {
			return batchDiff{}, errors.Errorf(op, errors.KindInvalidEditBatch,
				"%s target %d out of range [0, %d)", edit.Kind, target, postCount)
		}
		if occupied[target] {
			return batchDiff{}, errors.Errorf(op, errors.KindInvalidEditBatch,
				"conflicting edits target index %d", target)
		}
		occupied[target] = true
	}
	for origin := range moves {
		if deleted[origin] {
			return batchDiff{}, errors.Errorf(op, errors.KindInvalidEditBatch,
				"index %d both deleted and moved", origin)
		}
	}

	// Surviving non-moved pages keep their relative order and fill the
	// post-edit positions not claimed by inserts or move destinations.
	var free []int
	for index := 0; index < postCount; index++ {
		if !occupied[index] {
			free = append(free, index)
		}
	}

	mapping := make(reindexMapping, preCount)
	next := 0
	for index := 0; index < preCount; index++ {
		if deleted[index] {
			mapping[index] = NoPage
			continue
		}
		if to, ok := moves[index]; ok {
			mapping[index] = to
			continue
		}
		mapping[index] = free[next]
		next++
	}

	moved := make([]int, 0, len(moves))
	for _, to := range moves {
		moved = append(moved, to)
	}
	slices.Sort(moved)

	return batchDiff{mapping: mapping, postCount: postCount, moved: moved}, nil
}
