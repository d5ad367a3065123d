// Package hooks implements the five composable extension points the core
// calls into: Startup, Event, Manage, Layout and Refresh. Each is a
// function type (not an interface with a single method, since Go closures
// already give a "trait with a Then combinator" shape without boxing)
// generic over the state and connection types the caller plugs in.
//
// Grounded on original_source/src/core/hooks.rs for the five families and
// the "then" composition contract.
package hooks

import "github.com/leukipp/tylewm/common"

// StartupHook runs once after grabs are established, before the first
// event is read.
type StartupHook[S, C any] func(state *S, conn C) error

// Then composes h followed by next, both unconditionally.
func (h StartupHook[S, C]) Then(next StartupHook[S, C]) StartupHook[S, C] {
	return func(state *S, conn C) error {
		if err := h(state, conn); err != nil {
			return err
		}
		return next(state, conn)
	}
}

// EventHook runs before the default handler for each event. Returning
// false skips the default handler.
type EventHook[S, C, E any] func(state *S, conn C, event E) (bool, error)

// Then composes h followed by next; next only runs if h returns true.
func (h EventHook[S, C, E]) Then(next EventHook[S, C, E]) EventHook[S, C, E] {
	return func(state *S, conn C, event E) (bool, error) {
		cont, err := h(state, conn, event)
		if err != nil || !cont {
			return cont, err
		}
		return next(state, conn, event)
	}
}

// ManageHook runs during MapRequest handling, after the client has been
// inserted into StackSet but before refresh. It must not itself trigger a
// refresh.
type ManageHook[S, C any] func(state *S, conn C, client common.Xid) error

// Then composes h followed by next, both unconditionally.
func (h ManageHook[S, C]) Then(next ManageHook[S, C]) ManageHook[S, C] {
	return func(state *S, conn C, client common.Xid) error {
		if err := h(state, conn, client); err != nil {
			return err
		}
		return next(state, conn, client)
	}
}

// LayoutHook wraps every layout invocation: TransformInitial reshapes the
// screen rectangle before layout, TransformPositions reshapes the result.
type LayoutHook struct {
	TransformInitial   func(r common.Rect) common.Rect
	TransformPositions func(r common.Rect, positions []Position) []Position
}

// Position mirrors layout.Placement without importing the layout package,
// keeping hooks free of a dependency cycle back to the engine it wraps.
type Position struct {
	Id   common.Xid
	Rect common.Rect
}

// Then composes h followed by next: the initial-rect transform chains
// outer-then-inner, the position transform chains inner-result-then-outer.
func (h LayoutHook) Then(next LayoutHook) LayoutHook {
	return LayoutHook{
		TransformInitial: func(r common.Rect) common.Rect {
			if h.TransformInitial != nil {
				r = h.TransformInitial(r)
			}
			if next.TransformInitial != nil {
				r = next.TransformInitial(r)
			}
			return r
		},
		TransformPositions: func(r common.Rect, positions []Position) []Position {
			if next.TransformPositions != nil {
				positions = next.TransformPositions(r, positions)
			}
			if h.TransformPositions != nil {
				positions = h.TransformPositions(r, positions)
			}
			return positions
		},
	}
}

// RefreshHook shares StartupHook's signature: it runs at the end of every
// refresh cycle.
type RefreshHook[S, C any] = StartupHook[S, C]
