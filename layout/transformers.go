package layout

import (
	"fmt"

	"github.com/leukipp/tylewm/common"
	"github.com/leukipp/tylewm/stack"
)

// Transformer is a Layout that wraps another Layout, optionally reshaping
// its input Rect before delegating and its output Placements afterward.
// Grounded on original_source/src/core/layout/transformers.rs and
// src/builtin/layout/transformers.rs.
type Transformer interface {
	Layout
	// TransformRect reshapes the screen rectangle before it reaches the
	// wrapped layout.
	TransformRect(r common.Rect) common.Rect
	// TransformPlacements reshapes the wrapped layout's output before it
	// is returned to the caller.
	TransformPlacements(original common.Rect, transformed common.Rect, placements []Placement) []Placement
	// Wrapped returns the layout this transformer decorates.
	Wrapped() Layout
}

// baseTransformer implements the Layout/Transformer boilerplate so
// concrete transformers (Gaps, ReserveTop, ReflectHorizontal,
// ReflectVertical) only need to provide TransformRect/TransformPlacements
// and a constructor.
type baseTransformer struct {
	name    string
	wrapped Layout
	self    Transformer // set by the concrete constructor for UnwrapTransformer handling
}

func (t *baseTransformer) Name() string {
	return fmt.Sprintf("%s[%s]", t.name, t.wrapped.Name())
}

func (t *baseTransformer) Wrapped() Layout {
	return t.wrapped
}

func (t *baseTransformer) Layout(clients *stack.Stack[common.Xid], r common.Rect) (Layout, []Placement) {
	transformedRect := t.self.TransformRect(r)
	replacement, placements := t.wrapped.Layout(clients, transformedRect)
	if replacement != nil {
		t.wrapped = replacement
	}
	return nil, t.self.TransformPlacements(r, transformedRect, placements)
}

func (t *baseTransformer) LayoutEmpty(r common.Rect) (Layout, []Placement) {
	transformedRect := t.self.TransformRect(r)
	replacement, placements := t.wrapped.LayoutEmpty(transformedRect)
	if replacement != nil {
		t.wrapped = replacement
	}
	return nil, t.self.TransformPlacements(r, transformedRect, placements)
}

func (t *baseTransformer) LayoutWorkspace(tag string, clients *stack.Stack[common.Xid], r common.Rect) (Layout, []Placement) {
	return layoutWorkspace(t.self, clients, r)
}

func (t *baseTransformer) HandleMessage(m Message) Layout {
	if _, ok := m.(UnwrapTransformer); ok {
		return t.wrapped
	}
	if replacement := t.wrapped.HandleMessage(m); replacement != nil {
		t.wrapped = replacement
	}
	return nil
}

// Gaps shrinks the screen rectangle by OuterPx on every side before
// delegating, then shrinks every placement it gets back by InnerPx.
type Gaps struct {
	*baseTransformer
	OuterPx int
	InnerPx int
}

// NewGaps wraps wrapped with the given outer screen margin and inner gap
// between tiled clients.
func NewGaps(outerPx, innerPx int, wrapped Layout) *Gaps {
	g := &Gaps{OuterPx: outerPx, InnerPx: innerPx}
	g.baseTransformer = &baseTransformer{name: "gaps", wrapped: wrapped, self: g}
	return g
}

func (g *Gaps) TransformRect(r common.Rect) common.Rect {
	return r.ShrunkBy(g.OuterPx)
}

func (g *Gaps) TransformPlacements(_ common.Rect, _ common.Rect, placements []Placement) []Placement {
	out := make([]Placement, len(placements))
	for i, p := range placements {
		out[i] = Placement{Id: p.Id, Rect: p.Rect.ShrunkBy(g.InnerPx)}
	}
	return out
}

// ReserveTop moves the screen rectangle's top edge down by Px pixels
// before delegating, shrinking the usable height (e.g. to reserve room for
// an externally-rendered status bar).
type ReserveTop struct {
	*baseTransformer
	Px int
}

// NewReserveTop wraps wrapped, reserving px pixels at the top of the screen.
func NewReserveTop(px int, wrapped Layout) *ReserveTop {
	rt := &ReserveTop{Px: px}
	rt.baseTransformer = &baseTransformer{name: "reserve-top", wrapped: wrapped, self: rt}
	return rt
}

func (rt *ReserveTop) TransformRect(r common.Rect) common.Rect {
	h := r.Height - rt.Px
	if h < 0 {
		h = 0
	}
	return common.Rect{X: r.X, Y: r.Y + rt.Px, Width: r.Width, Height: h}
}

func (rt *ReserveTop) TransformPlacements(_ common.Rect, _ common.Rect, placements []Placement) []Placement {
	return placements
}

// ReflectHorizontal mirrors every returned placement's x-coordinate about
// the screen's vertical midline.
type ReflectHorizontal struct {
	*baseTransformer
}

// NewReflectHorizontal wraps wrapped with a horizontal mirror.
func NewReflectHorizontal(wrapped Layout) *ReflectHorizontal {
	rh := &ReflectHorizontal{}
	rh.baseTransformer = &baseTransformer{name: "reflect-x", wrapped: wrapped, self: rh}
	return rh
}

func (rh *ReflectHorizontal) TransformRect(r common.Rect) common.Rect {
	return r
}

func (rh *ReflectHorizontal) TransformPlacements(original common.Rect, _ common.Rect, placements []Placement) []Placement {
	out := make([]Placement, len(placements))
	for i, p := range placements {
		mirroredX := original.X + (original.X + original.Width) - (p.Rect.X + p.Rect.Width)
		out[i] = Placement{Id: p.Id, Rect: common.Rect{X: mirroredX, Y: p.Rect.Y, Width: p.Rect.Width, Height: p.Rect.Height}}
	}
	return out
}

// ReflectVertical mirrors every returned placement's y-coordinate about
// the screen's horizontal midline.
type ReflectVertical struct {
	*baseTransformer
}

// NewReflectVertical wraps wrapped with a vertical mirror.
func NewReflectVertical(wrapped Layout) *ReflectVertical {
	rv := &ReflectVertical{}
	rv.baseTransformer = &baseTransformer{name: "reflect-y", wrapped: wrapped, self: rv}
	return rv
}

func (rv *ReflectVertical) TransformRect(r common.Rect) common.Rect {
	return r
}

func (rv *ReflectVertical) TransformPlacements(original common.Rect, _ common.Rect, placements []Placement) []Placement {
	out := make([]Placement, len(placements))
	for i, p := range placements {
		mirroredY := original.Y + (original.Y + original.Height) - (p.Rect.Y + p.Rect.Height)
		out[i] = Placement{Id: p.Id, Rect: common.Rect{X: p.Rect.X, Y: mirroredY, Width: p.Rect.Width, Height: p.Rect.Height}}
	}
	return out
}
