// Package common holds the small, dependency-free types and helpers shared
// by every other package: screen/window geometry, build metadata, logging
// setup and a handful of generic utilities.
package common

import (
	"fmt"
	"math"
)

// Point is an absolute root-window coordinate pair.
type Point struct {
	X int
	Y int
}

// Rect is an (x, y, w, h) screen or window rectangle. Width and height are
// always non-negative; callers that need to shrink a Rect past zero get a
// zero-dimension Rect back rather than a negative one.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Pieces destructures a Rect into its four components.
func (r Rect) Pieces() (x, y, w, h int) {
	return r.X, r.Y, r.Width, r.Height
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Contains reports whether other lies entirely within r.
func (r Rect) Contains(other Rect) bool {
	if other.X < r.X || other.Y < r.Y {
		return false
	}
	if other.X+other.Width > r.X+r.Width {
		return false
	}
	if other.Y+other.Height > r.Y+r.Height {
		return false
	}
	return true
}

// ContainsPoint reports whether p lies inside r.
func (r Rect) ContainsPoint(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// ScaleW returns a copy of r with its width multiplied by factor.
func (r Rect) ScaleW(factor float64) Rect {
	r.Width = int(math.Floor(float64(r.Width) * factor))
	return r
}

// ScaleH returns a copy of r with its height multiplied by factor.
func (r Rect) ScaleH(factor float64) Rect {
	r.Height = int(math.Floor(float64(r.Height) * factor))
	return r
}

// CenteredIn centers r inside outer. It fails if r does not fit inside
// outer in both dimensions.
func (r Rect) CenteredIn(outer Rect) (Rect, error) {
	if r.Width > outer.Width || r.Height > outer.Height {
		return Rect{}, fmt.Errorf("common: rect %+v does not fit inside %+v", r, outer)
	}
	return Rect{
		X:      outer.X + (outer.Width-r.Width)/2,
		Y:      outer.Y + (outer.Height-r.Height)/2,
		Width:  r.Width,
		Height: r.Height,
	}, nil
}

// SplitAtWidth divides r into two columns, the first exactly newWidth wide.
func (r Rect) SplitAtWidth(newWidth int) (Rect, Rect, error) {
	if newWidth < 0 || newWidth > r.Width {
		return Rect{}, Rect{}, fmt.Errorf("common: split width %d out of range [0,%d)", newWidth, r.Width)
	}
	left := Rect{X: r.X, Y: r.Y, Width: newWidth, Height: r.Height}
	right := Rect{X: r.X + newWidth, Y: r.Y, Width: r.Width - newWidth, Height: r.Height}
	return left, right, nil
}

// SplitAtHeight divides r into two rows, the first exactly newHeight tall.
func (r Rect) SplitAtHeight(newHeight int) (Rect, Rect, error) {
	if newHeight < 0 || newHeight > r.Height {
		return Rect{}, Rect{}, fmt.Errorf("common: split height %d out of range [0,%d)", newHeight, r.Height)
	}
	top := Rect{X: r.X, Y: r.Y, Width: r.Width, Height: newHeight}
	bottom := Rect{X: r.X, Y: r.Y + newHeight, Width: r.Width, Height: r.Height - newHeight}
	return top, bottom, nil
}

// SplitAtWidthPerc splits at a fraction of the total width, rounding toward
// the left column.
func (r Rect) SplitAtWidthPerc(ratio float64) (Rect, Rect, error) {
	return r.SplitAtWidth(int(float64(r.Width) * ratio))
}

// SplitAtHeightPerc splits at a fraction of the total height, rounding
// toward the top row.
func (r Rect) SplitAtHeightPerc(ratio float64) (Rect, Rect, error) {
	return r.SplitAtHeight(int(float64(r.Height) * ratio))
}

// SplitAtMidWidth splits r into two equal-ish columns.
func (r Rect) SplitAtMidWidth() (Rect, Rect, error) {
	return r.SplitAtWidth(r.Width / 2)
}

// SplitAtMidHeight splits r into two equal-ish rows.
func (r Rect) SplitAtMidHeight() (Rect, Rect, error) {
	return r.SplitAtHeight(r.Height / 2)
}

// AsRows partitions r into n rows of equal height, with the final row
// absorbing any integer-division remainder. n must be >= 1.
func (r Rect) AsRows(n int) []Rect {
	if n <= 0 {
		return nil
	}
	rows := make([]Rect, n)
	h := r.Height / n
	y := r.Y
	for i := 0; i < n; i++ {
		rh := h
		if i == n-1 {
			rh = r.Height - h*(n-1)
		}
		rows[i] = Rect{X: r.X, Y: y, Width: r.Width, Height: rh}
		y += rh
	}
	return rows
}

// AsColumns partitions r into n columns of equal width, with the final
// column absorbing any integer-division remainder. n must be >= 1.
func (r Rect) AsColumns(n int) []Rect {
	if n <= 0 {
		return nil
	}
	cols := make([]Rect, n)
	w := r.Width / n
	x := r.X
	for i := 0; i < n; i++ {
		cw := w
		if i == n-1 {
			cw = r.Width - w*(n-1)
		}
		cols[i] = Rect{X: x, Y: r.Y, Width: cw, Height: r.Height}
		x += cw
	}
	return cols
}

// ShrunkBy insets r on all four sides by px, clamping to zero width/height
// rather than going negative. A zero-dimension rect shrinks to itself.
func (r Rect) ShrunkBy(px int) Rect {
	if r.Width == 0 || r.Height == 0 {
		return r
	}
	w := r.Width - 2*px
	h := r.Height - 2*px
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Rect{X: r.X + px, Y: r.Y + px, Width: w, Height: h}
}

// IsInsideRect reports whether p lies within r.
func IsInsideRect(p Point, r Rect) bool {
	return r.ContainsPoint(p)
}
