// Package geometry provides the value types the pageview engine lays
// pages out with: offsets, sizes and rectangles in logical pixel
// coordinates, plus the interpolation helpers animated transitions use.
package geometry

import (
	"math"
	"slices"
)

// epsilon is the tolerance for floating-point comparisons.
const epsilon = 0.0001

// Offset represents a 2D point or vector in pixel coordinates.
type Offset struct {
	X float64
	Y float64
}

// Size represents width and height dimensions in pixels.
type Size struct {
	Width  float64
	Height float64
}

// IsEmpty returns true if either dimension is zero or negative.
func (s Size) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Rect represents a rectangle using left, top, right, bottom coordinates.
type Rect struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// RectFromLTWH constructs a Rect from left, top, width, height values.
func RectFromLTWH(left, top, width, height float64) Rect {
	return Rect{
		Left:   left,
		Top:    top,
		Right:  left + width,
		Bottom: top + height,
	}
}

// RectFromOriginSize constructs a Rect from an origin offset and a size.
func RectFromOriginSize(origin Offset, size Size) Rect {
	return RectFromLTWH(origin.X, origin.Y, size.Width, size.Height)
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.Right - r.Left
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.Bottom - r.Top
}

// Size returns the size of the rectangle.
func (r Rect) Size() Size {
	return Size{Width: r.Width(), Height: r.Height()}
}

// Origin returns the top-left corner of the rectangle.
func (r Rect) Origin() Offset {
	return Offset{X: r.Left, Y: r.Top}
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Offset {
	return Offset{
		X: (r.Left + r.Right) * 0.5,
		Y: (r.Top + r.Bottom) * 0.5,
	}
}

// Area returns the area of the rectangle, or 0 if it is empty.
func (r Rect) Area() float64 {
	if r.IsEmpty() {
		return 0
	}
	return r.Width() * r.Height()
}

// IsEmpty returns true if the rectangle encloses no area.
func (r Rect) IsEmpty() bool {
	return r.Right-r.Left <= 0 || r.Bottom-r.Top <= 0
}

// Translate returns the rectangle shifted by dx, dy.
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{
		Left:   r.Left + dx,
		Top:    r.Top + dy,
		Right:  r.Right + dx,
		Bottom: r.Bottom + dy,
	}
}

// Intersect returns the intersection of two rectangles.
// Returns an empty rect if they don't overlap.
func (r Rect) Intersect(other Rect) Rect {
	left := math.Max(r.Left, other.Left)
	top := math.Max(r.Top, other.Top)
	right := math.Min(r.Right, other.Right)
	bottom := math.Min(r.Bottom, other.Bottom)
	if left >= right || top >= bottom {
		return Rect{}
	}
	return Rect{Left: left, Top: top, Right: right, Bottom: bottom}
}

// Overlaps returns true if the two rectangles share any area.
func (r Rect) Overlaps(other Rect) bool {
	return !r.Intersect(other).IsEmpty()
}

// Contains returns true if the point lies within the rectangle.
func (r Rect) Contains(p Offset) bool {
	return p.X >= r.Left && p.X < r.Right && p.Y >= r.Top && p.Y < r.Bottom
}

// Equal returns true if the rectangles match within floating-point tolerance.
func (r Rect) Equal(other Rect) bool {
	return floatEqual(r.Left, other.Left) &&
		floatEqual(r.Top, other.Top) &&
		floatEqual(r.Right, other.Right) &&
		floatEqual(r.Bottom, other.Bottom)
}

// Lerp linearly interpolates between two float64 values.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpOffset linearly interpolates between two Offset values.
func LerpOffset(a, b Offset, t float64) Offset {
	return Offset{
		X: Lerp(a.X, b.X, t),
		Y: Lerp(a.Y, b.Y, t),
	}
}

// LerpRect linearly interpolates between two Rect values.
func LerpRect(a, b Rect, t float64) Rect {
	return Rect{
		Left:   Lerp(a.Left, b.Left, t),
		Top:    Lerp(a.Top, b.Top, t),
		Right:  Lerp(a.Right, b.Right, t),
		Bottom: Lerp(a.Bottom, b.Bottom, t),
	}
}

// UnionArea returns the total area covered by the given rectangles,
// counting overlapping regions once. Empty rectangles contribute nothing.
func UnionArea(rects []Rect) float64 {
	xs := make([]float64, 0, len(rects)*2)
	for _, r := range rects {
		if r.IsEmpty() {
			continue
		}
		xs = append(xs, r.Left, r.Right)
	}
	if len(xs) == 0 {
		return 0
	}
	xs = sortedUnique(xs)

	// Sweep vertical strips; within each strip, merge y intervals.
	total := 0.0
	for i := 0; i+1 < len(xs); i++ {
		stripLeft, stripRight := xs[i], xs[i+1]
		var intervals [][2]float64
		for _, r := range rects {
			if r.IsEmpty() || r.Left >= stripRight || r.Right <= stripLeft {
				continue
			}
			intervals = append(intervals, [2]float64{r.Top, r.Bottom})
		}
		total += mergedLength(intervals) * (stripRight - stripLeft)
	}
	return total
}

func sortedUnique(values []float64) []float64 {
	slices.Sort(values)
	out := values[:1]
	for _, v := range values[1:] {
		if !floatEqual(v, out[len(out)-1]) {
			out = append(out, v)
		}
	}
	return out
}

func mergedLength(intervals [][2]float64) float64 {
	if len(intervals) == 0 {
		return 0
	}
	slices.SortFunc(intervals, func(a, b [2]float64) int {
		switch {
		case a[0] < b[0]:
			return -1
		case a[0] > b[0]:
			return 1
		default:
			return 0
		}
	})
	length := 0.0
	curStart, curEnd := intervals[0][0], intervals[0][1]
	for _, iv := range intervals[1:] {
		if iv[0] > curEnd {
			length += curEnd - curStart
			curStart, curEnd = iv[0], iv[1]
			continue
		}
		if iv[1] > curEnd {
			curEnd = iv[1]
		}
	}
	length += curEnd - curStart
	return length
}

// floatEqual returns true if two float64 values are approximately equal.
func floatEqual(a, b float64) bool {
	return math.Abs(a-b) <= epsilon
}
