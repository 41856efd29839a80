package pageview

import (
	"testing"

	"github.com/go-drift/pageview/pkg/errors"
)

func TestDiffBatchDelete(t *testing.T) {
	diff, err := diffBatch(EditBatch{Delete(1)}, 5)
	if err != nil {
		t.Fatal(err)
	}
	if diff.postCount != 4 {
		t.Errorf("postCount = %d, want 4", diff.postCount)
	}
	want := reindexMapping{0: 0, 1: NoPage, 2: 1, 3: 2, 4: 3}
	for from, to := range want {
		if diff.mapping[from] != to {
			t.Errorf("mapping[%d] = %d, want %d", from, diff.mapping[from], to)
		}
	}
}

func TestDiffBatchInsert(t *testing.T) {
	diff, err := diffBatch(EditBatch{Insert(1)}, 3)
	if err != nil {
		t.Fatal(err)
	}
	if diff.postCount != 4 {
		t.Errorf("postCount = %d, want 4", diff.postCount)
	}
	// Pages at and after the insertion point shift up.
	want := reindexMapping{0: 0, 1: 2, 2: 3}
	for from, to := range want {
		if diff.mapping[from] != to {
			t.Errorf("mapping[%d] = %d, want %d", from, diff.mapping[from], to)
		}
	}
}

func TestDiffBatchMove(t *testing.T) {
	diff, err := diffBatch(EditBatch{Move(0, 2)}, 3)
	if err != nil {
		t.Fatal(err)
	}
	if diff.postCount != 3 {
		t.Errorf("postCount = %d, want 3", diff.postCount)
	}
	want := reindexMapping{0: 2, 1: 0, 2: 1}
	for from, to := range want {
		if diff.mapping[from] != to {
			t.Errorf("mapping[%d] = %d, want %d", from, diff.mapping[from], to)
		}
	}
	if len(diff.moved) != 1 || diff.moved[0] != 2 {
		t.Errorf("moved = %v, want [2]", diff.moved)
	}
}

func TestDiffBatchMixed(t *testing.T) {
	// Delete page 0 and insert a new page at the end of a 3-page set.
	diff, err := diffBatch(EditBatch{Delete(0), Insert(2)}, 3)
	if err != nil {
		t.Fatal(err)
	}
	if diff.postCount != 3 {
		t.Errorf("postCount = %d, want 3", diff.postCount)
	}
	want := reindexMapping{0: NoPage, 1: 0, 2: 1}
	for from, to := range want {
		if diff.mapping[from] != to {
			t.Errorf("mapping[%d] = %d, want %d", from, diff.mapping[from], to)
		}
	}
}

func TestDiffBatchCountInvariant(t *testing.T) {
	tests := []struct {
		name  string
		batch EditBatch
		pre   int
		want  int
	}{
		{"two inserts", EditBatch{Insert(0), Insert(1)}, 3, 5},
		{"two deletes", EditBatch{Delete(0), Delete(2)}, 5, 3},
		{"move only", EditBatch{Move(1, 3)}, 5, 5},
		{"insert and delete", EditBatch{Insert(0), Delete(4)}, 5, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diff, err := diffBatch(tt.batch, tt.pre)
			if err != nil {
				t.Fatal(err)
			}
			if diff.postCount != tt.want {
				t.Errorf("postCount = %d, want %d", diff.postCount, tt.want)
			}
		})
	}
}

func TestDiffBatchRejectsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		batch EditBatch
		pre   int
	}{
		{"delete out of range", EditBatch{Delete(5)}, 5},
		{"delete negative", EditBatch{Delete(-1)}, 5},
		{"move origin out of range", EditBatch{Move(5, 0)}, 5},
		{"move to itself", EditBatch{Move(2, 2)}, 5},
		{"insert out of range", EditBatch{Insert(6)}, 5},
		{"duplicate delete", EditBatch{Delete(1), Delete(1)}, 5},
		{"duplicate insert target", EditBatch{Insert(0), Insert(0)}, 5},
		{"delete and move same index", EditBatch{Delete(1), Move(1, 0)}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := diffBatch(tt.batch, tt.pre)
			if err == nil {
				t.Fatal("expected InvalidEditBatch error")
			}
			if !errors.IsKind(err, errors.KindInvalidEditBatch) {
				t.Errorf("wrong error kind: %v", err)
			}
		})
	}
}
