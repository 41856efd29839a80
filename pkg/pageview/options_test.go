package pageview

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeOptionsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pageview.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadOptionsMissingFileYieldsDefaults(t *testing.T) {
	opts, err := LoadOptions(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if !opts.PagingEnabled {
		t.Error("PagingEnabled should default to true")
	}
	if opts.ContinuousNavigationEnabled {
		t.Error("ContinuousNavigationEnabled should default to false")
	}
	if opts.LayoutOnRestOnly {
		t.Error("LayoutOnRestOnly should default to false")
	}
	if opts.AnimationDuration != DefaultAnimationDuration {
		t.Errorf("AnimationDuration = %v, want %v", opts.AnimationDuration, DefaultAnimationDuration)
	}
	if opts.LookaheadPages != 1 {
		t.Errorf("LookaheadPages = %d, want 1", opts.LookaheadPages)
	}
}

func TestLoadOptionsOverrides(t *testing.T) {
	path := writeOptionsFile(t, `
pagingEnabled: false
continuousNavigation: true
layoutOnRestOnly: true
easing: quadEaseOut
animationDuration: 400ms
lookaheadPages: 2
`)
	opts, err := LoadOptions(path)
	if err != nil {
		t.Fatal(err)
	}
	if opts.PagingEnabled {
		t.Error("PagingEnabled override lost")
	}
	if !opts.ContinuousNavigationEnabled {
		t.Error("ContinuousNavigationEnabled override lost")
	}
	if !opts.LayoutOnRestOnly {
		t.Error("LayoutOnRestOnly override lost")
	}
	if opts.AnimationDuration != 400*time.Millisecond {
		t.Errorf("AnimationDuration = %v, want 400ms", opts.AnimationDuration)
	}
	if opts.LookaheadPages != 2 {
		t.Errorf("LookaheadPages = %d, want 2", opts.LookaheadPages)
	}
	if opts.Easing == nil {
		t.Fatal("Easing not set")
	}
	// quadEaseOut: f(0.5) = 0.75.
	if got := opts.Easing(0.5); got != 0.75 {
		t.Errorf("Easing(0.5) = %f, want 0.75", got)
	}
}

func TestLoadOptionsPartialFileKeepsDefaults(t *testing.T) {
	path := writeOptionsFile(t, "easing: linear\n")
	opts, err := LoadOptions(path)
	if err != nil {
		t.Fatal(err)
	}
	if !opts.PagingEnabled {
		t.Error("unset PagingEnabled should keep its default")
	}
	if opts.AnimationDuration != DefaultAnimationDuration {
		t.Errorf("AnimationDuration = %v, want default", opts.AnimationDuration)
	}
	if got := opts.Easing(0.25); got != 0.25 {
		t.Errorf("linear Easing(0.25) = %f", got)
	}
}

func TestLoadOptionsRejectsUnknownEasing(t *testing.T) {
	path := writeOptionsFile(t, "easing: bouncy\n")
	if _, err := LoadOptions(path); err == nil {
		t.Error("unknown easing should be rejected")
	}
}

func TestLoadOptionsRejectsBadDuration(t *testing.T) {
	path := writeOptionsFile(t, "animationDuration: fast\n")
	if _, err := LoadOptions(path); err == nil {
		t.Error("unparsable duration should be rejected")
	}
}

func TestWithDefaults(t *testing.T) {
	opts := Options{}.withDefaults()
	if opts.Easing == nil {
		t.Error("zero Easing should default to sine ease-in-out")
	}
	if opts.AnimationDuration != DefaultAnimationDuration {
		t.Errorf("AnimationDuration = %v, want default", opts.AnimationDuration)
	}
	if opts.LookaheadPages != 1 {
		t.Errorf("LookaheadPages = %d, want 1", opts.LookaheadPages)
	}
	// withDefaults does not force paging on; DefaultOptions owns that.
	if opts.PagingEnabled {
		t.Error("withDefaults must not override an explicit false")
	}
}
