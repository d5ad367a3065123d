package layout

import (
	"github.com/leukipp/tylewm/common"
	"github.com/leukipp/tylewm/stack"
)

// LayoutStack holds a focus-bearing list of Layouts and is itself a Layout,
// delegating every call to its focused element. NextLayout/PreviousLayout
// cycle which element is focused.
type LayoutStack struct {
	s *stack.Stack[Layout]
}

// NewLayoutStack builds a LayoutStack focused on the first of layouts.
// layouts must be non-empty.
func NewLayoutStack(layouts ...Layout) *LayoutStack {
	s := stack.Differentiate(layouts)
	if s == nil {
		panic("layout: NewLayoutStack requires at least one layout")
	}
	return &LayoutStack{s: s}
}

// Name returns the focused layout's display symbol.
func (ls *LayoutStack) Name() string {
	return ls.s.Focus.Name()
}

// Names lists every layout's display symbol in stack order, focused one
// included, without changing focus. Supplemented from
// original_source/src/core/layout/mod.rs's layout listing so status
// surfaces can show the full layout set, not just the active one.
func (ls *LayoutStack) Names() []string {
	out := make([]string, 0, ls.s.Len())
	for _, l := range ls.s.Flatten() {
		out = append(out, l.Name())
	}
	return out
}

// Layout arranges clients using the focused layout, installing any
// replacement it returns back into the stack.
func (ls *LayoutStack) Layout(clients *stack.Stack[common.Xid], r common.Rect) (Layout, []Placement) {
	replacement, placements := ls.s.Focus.Layout(clients, r)
	if replacement != nil {
		ls.s.InsertAt(stack.Replace, replacement, samePointer)
	}
	return nil, placements
}

// LayoutEmpty mirrors Layout for an empty workspace.
func (ls *LayoutStack) LayoutEmpty(r common.Rect) (Layout, []Placement) {
	replacement, placements := ls.s.Focus.LayoutEmpty(r)
	if replacement != nil {
		ls.s.InsertAt(stack.Replace, replacement, samePointer)
	}
	return nil, placements
}

// LayoutWorkspace dispatches to Layout or LayoutEmpty.
func (ls *LayoutStack) LayoutWorkspace(tag string, clients *stack.Stack[common.Xid], r common.Rect) (Layout, []Placement) {
	if clients == nil {
		return ls.LayoutEmpty(r)
	}
	return ls.Layout(clients, r)
}

// HandleMessage sends m only to the focused layout (see BroadcastMessage
// for sending to every layout in the stack).
func (ls *LayoutStack) HandleMessage(m Message) Layout {
	replacement := ls.s.Focus.HandleMessage(m)
	if replacement != nil {
		ls.s.InsertAt(stack.Replace, replacement, samePointer)
	}
	return nil
}

// BroadcastMessage sends m to every layout held in the stack, installing
// any replacements each one returns.
func (ls *LayoutStack) BroadcastMessage(m Message) {
	flat := ls.s.Flatten()
	focusIdx := len(ls.s.Up)
	for i, l := range flat {
		if replacement := l.HandleMessage(m); replacement != nil {
			flat[i] = replacement
		}
	}
	ls.s.Up = append([]Layout(nil), flat[:focusIdx]...)
	ls.s.Focus = flat[focusIdx]
	ls.s.Down = append([]Layout(nil), flat[focusIdx+1:]...)
}

// NextLayout moves focus to the next layout in the stack, wrapping.
func (ls *LayoutStack) NextLayout() {
	ls.s.FocusDown()
}

// PreviousLayout moves focus to the previous layout in the stack, wrapping.
func (ls *LayoutStack) PreviousLayout() {
	ls.s.FocusUp()
}

// Clone returns a LayoutStack with an independently-mutable Stack (the
// Layout values themselves are shared, since they are referenced, not
// copied, by StackSet.Screen.Workspace.Layouts across snapshots).
func (ls *LayoutStack) Clone() *LayoutStack {
	return &LayoutStack{s: ls.s.Clone()}
}

func samePointer(a, b Layout) bool {
	return false // layouts are never considered duplicates for InsertAt purposes
}
