// Package layout implements the pluggable tiling algorithms: the Layout
// trait-equivalent interface, the LayoutStack that holds and cycles
// through them, the Message type layouts use to accept parameter changes,
// and the built-in layouts and transformers.
//
// Grounded on original_source/src/core/layout/mod.rs for the Layout trait
// contract (layout/layout_empty/layout_workspace default wiring,
// handle_message, transformer chain).
package layout

import (
	"github.com/leukipp/tylewm/common"
	"github.com/leukipp/tylewm/stack"
)

// Placement is a single (client, rectangle) assignment returned by a
// layout. Later entries in a layout's returned slice stack above earlier
// ones.
type Placement struct {
	Id   common.Xid
	Rect common.Rect
}

// Message is a type-erased value layouts may choose to react to. Built-in
// messages are the concrete types below; a layout that doesn't recognize a
// message's dynamic type simply ignores it.
type Message interface{}

// Built-in message types.
type (
	// IncMain adjusts the number of main-area clients by N (may be
	// negative), clamped to >= 0 by the receiving layout.
	IncMain int
	// ExpandMain grows the main-area ratio by the layout's configured step.
	ExpandMain struct{}
	// ShrinkMain shrinks the main-area ratio by the layout's configured step.
	ShrinkMain struct{}
	// Rotate asks a layout to cycle its internal ordering by one step.
	Rotate struct{}
	// Hide tells a transformer-wrapped or stateful layout that its
	// workspace just left visibility; most layouts ignore it.
	Hide struct{}
	// UnwrapTransformer is the sentinel a LayoutTransformer recognizes to
	// replace itself with its wrapped Layout.
	UnwrapTransformer struct{}
)

// Layout is a stateful, polymorphic arrangement algorithm. Implementations
// are held as interface values inside a LayoutStack (or standalone); a
// method that wants to replace the current layout (e.g. in response to a
// Message, or because it tracks internal generation state) returns a
// non-nil replacement, which the caller installs in its place.
type Layout interface {
	// Name is the short display symbol shown by status surfaces.
	Name() string

	// Layout arranges a non-empty client stack within r. Embedding Base
	// supplies LayoutEmpty, and the layoutWorkspace helper supplies the body
	// of LayoutWorkspace.
	Layout(clients *stack.Stack[common.Xid], r common.Rect) (Layout, []Placement)

	// LayoutEmpty arranges an empty workspace (no clients). The default
	// returns no placements.
	LayoutEmpty(r common.Rect) (Layout, []Placement)

	// LayoutWorkspace is the entry point the refresh engine calls: it
	// delegates to Layout or LayoutEmpty depending on whether clients is
	// nil.
	LayoutWorkspace(tag string, clients *stack.Stack[common.Xid], r common.Rect) (Layout, []Placement)

	// HandleMessage lets a layout react to (or replace itself in response
	// to) a typed message. Unrecognized messages are ignored (nil).
	HandleMessage(m Message) Layout
}

// Base provides the default LayoutEmpty so concrete layouts need not
// implement it; each still defines LayoutWorkspace by calling the
// layoutWorkspace helper. Embed it by value.
type Base struct{}

// LayoutEmpty is the default: no clients, no placements, no replacement.
func (Base) LayoutEmpty(common.Rect) (Layout, []Placement) {
	return nil, nil
}

// LayoutWorkspace dispatches to self.Layout or self.LayoutEmpty depending
// on whether clients is nil. self must be the concrete Layout embedding
// Base, so LayoutWorkspace is implemented per concrete type via the
// layoutWorkspace helper rather than on Base directly (Go has no CRTP).
func layoutWorkspace(self Layout, clients *stack.Stack[common.Xid], r common.Rect) (Layout, []Placement) {
	if clients == nil {
		return self.LayoutEmpty(r)
	}
	return self.Layout(clients, r)
}
