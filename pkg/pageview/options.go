package pageview

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/pageview/pkg/animation"
)

// DefaultAnimationDuration is the navigation transition length used when
// no duration is configured.
const DefaultAnimationDuration = 250 * time.Millisecond

// Options configures a Controller.
type Options struct {
	// PagingEnabled snaps interactive scrolling to page boundaries.
	PagingEnabled bool

	// ContinuousNavigationEnabled lets interactive scrolling rest at any
	// offset and cross multiple pages in one gesture. When disabled the
	// viewport settles on a page boundary, so crossing several pages
	// takes several swipes.
	ContinuousNavigationEnabled bool

	// LayoutOnRestOnly suppresses per-tick re-layout during animated
	// navigation: only the continuous offset is interpolated, and page
	// geometry is recomputed once when the animation completes.
	LayoutOnRestOnly bool

	// Easing drives animated navigation. Nil means sine ease-in-out.
	Easing animation.Curve

	// AnimationDuration is the animated navigation length. Zero means
	// DefaultAnimationDuration; to disable animation pass animated=false
	// to the navigation call instead.
	AnimationDuration time.Duration

	// LookaheadPages is how many pages beyond the viewport stay
	// materialized on each side. Zero means 1.
	LookaheadPages int
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		PagingEnabled:     true,
		Easing:            animation.SineEaseInOut,
		AnimationDuration: DefaultAnimationDuration,
		LookaheadPages:    1,
	}
}

func (o Options) withDefaults() Options {
	if o.Easing == nil {
		o.Easing = animation.SineEaseInOut
	}
	if o.AnimationDuration <= 0 {
		o.AnimationDuration = DefaultAnimationDuration
	}
	if o.LookaheadPages <= 0 {
		o.LookaheadPages = 1
	}
	return o
}

// optionsFile is the on-disk representation of Options.
type optionsFile struct {
	PagingEnabled        *bool  `yaml:"pagingEnabled,omitempty"`
	ContinuousNavigation *bool  `yaml:"continuousNavigation,omitempty"`
	LayoutOnRestOnly     *bool  `yaml:"layoutOnRestOnly,omitempty"`
	Easing               string `yaml:"easing,omitempty"`
	AnimationDuration    string `yaml:"animationDuration,omitempty"`
	LookaheadPages       int    `yaml:"lookaheadPages,omitempty"`
}

// namedCurves maps configuration names to easing curves.
var namedCurves = map[string]animation.Curve{
	"linear":        animation.Linear,
	"sineEaseIn":    animation.SineEaseIn,
	"sineEaseOut":   animation.SineEaseOut,
	"sineEaseInOut": animation.SineEaseInOut,
	"quadEaseIn":    animation.QuadEaseIn,
	"quadEaseOut":   animation.QuadEaseOut,
	"quadEaseInOut": animation.QuadEaseInOut,
	"ease":          animation.Ease,
	"easeIn":        animation.EaseIn,
	"easeOut":       animation.EaseOut,
	"easeInOut":     animation.EaseInOut,
}

// LoadOptions reads options from a YAML file, applying defaults for any
// field left unset. A missing file yields the defaults.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return opts, nil
		}
		return opts, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var file optionsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return opts, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if file.PagingEnabled != nil {
		opts.PagingEnabled = *file.PagingEnabled
	}
	if file.ContinuousNavigation != nil {
		opts.ContinuousNavigationEnabled = *file.ContinuousNavigation
	}
	if file.LayoutOnRestOnly != nil {
		opts.LayoutOnRestOnly = *file.LayoutOnRestOnly
	}
	if file.Easing != "" {
		curve, ok := namedCurves[file.Easing]
		if !ok {
			return opts, fmt.Errorf("unknown easing %q", file.Easing)
		}
		opts.Easing = curve
	}
	if file.AnimationDuration != "" {
		d, err := time.ParseDuration(file.AnimationDuration)
		if err != nil {
			return opts, fmt.Errorf("invalid animationDuration: %w", err)
		}
		opts.AnimationDuration = d
	}
	if file.LookaheadPages > 0 {
		opts.LookaheadPages = file.LookaheadPages
	}

	return opts, nil
}
