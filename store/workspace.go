// Package store implements the pure state model: Workspace, Screen and the
// StackSet that roots all non-floating window-manager state, plus the
// Snapshot/Diff pair the refresh engine uses to compute what changed across
// a mutation.
//
// Grounded on original_source/src/core/workspace.rs and
// original_source/src/pure/mod.rs for the operation contracts.
package store

import (
	"github.com/leukipp/tylewm/common"
	"github.com/leukipp/tylewm/layout"
	"github.com/leukipp/tylewm/stack"
)

// Workspace holds one tag's layout stack and client stack. Stack is nil when
// the workspace has no clients.
type Workspace struct {
	Id      uint64
	Tag     string
	Layouts *layout.LayoutStack
	Stack   *stack.Stack[common.Xid]
}

// NewWorkspace builds an empty workspace with the given id, tag and layouts.
func NewWorkspace(id uint64, tag string, layouts *layout.LayoutStack) Workspace {
	return Workspace{Id: id, Tag: tag, Layouts: layouts}
}

// Clients returns the workspace's clients in focus-relative display order,
// or nil if empty.
func (w Workspace) Clients() []common.Xid {
	if w.Stack == nil {
		return nil
	}
	return w.Stack.Flatten()
}

// Contains reports whether id is on this workspace.
func (w Workspace) Contains(id common.Xid) bool {
	if w.Stack == nil {
		return false
	}
	return w.Stack.Contains(id, eqXid)
}

// Clone returns a Workspace with an independently-mutable Stack and
// LayoutStack; the Layouts values themselves are not deep-copied.
func (w Workspace) Clone() Workspace {
	clone := w
	if w.Stack != nil {
		clone.Stack = w.Stack.Clone()
	}
	if w.Layouts != nil {
		clone.Layouts = w.Layouts.Clone()
	}
	return clone
}

func eqXid(a, b common.Xid) bool { return a == b }
