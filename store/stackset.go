package store

import (
	"fmt"
	"sort"

	"github.com/leukipp/tylewm/common"
	"github.com/leukipp/tylewm/layout"
	"github.com/leukipp/tylewm/stack"
)

// StackSet is the root of all non-floating window-manager state. It is
// mutated only through its own methods; each one re-establishes the
// invariants documented on NewStackSet before returning.
type StackSet struct {
	Screens       *stack.Stack[Screen]
	Hidden        []Workspace
	Floating      map[common.Xid]common.Rect
	PreviousTag   *string
	InvisibleTags map[string]struct{}
}

// NewStackSet builds a StackSet from tags (in workspace-id order) and
// detected screen rectangles, assigning the first len(screenRects) tags to
// screens and the rest to Hidden. newLayouts is called once per workspace so
// each gets an independently-mutable LayoutStack.
//
// Fails if there are no tags, no screens, or fewer workspaces than screens
// (invariant: workspace count >= screen count >= 1).
func NewStackSet(tags []string, screenRects []common.Rect, newLayouts func() *layout.LayoutStack, invisibleTags []string) (*StackSet, error) {
	if len(screenRects) == 0 {
		return nil, fmt.Errorf("store: at least one screen is required")
	}
	if len(tags) < len(screenRects) {
		return nil, fmt.Errorf("store: %d tags is fewer than %d screens", len(tags), len(screenRects))
	}

	workspaces := make([]Workspace, len(tags))
	for i, tag := range tags {
		workspaces[i] = NewWorkspace(uint64(i+1), tag, newLayouts())
	}

	screens := make([]Screen, len(screenRects))
	for i, r := range screenRects {
		screens[i] = Screen{Index: i, Rect: r, Workspace: workspaces[i]}
	}

	invisible := make(map[string]struct{}, len(invisibleTags))
	for _, t := range invisibleTags {
		invisible[t] = struct{}{}
	}

	return &StackSet{
		Screens:       stack.Differentiate(screens),
		Hidden:        append([]Workspace(nil), workspaces[len(screenRects):]...),
		Floating:      make(map[common.Xid]common.Rect),
		InvisibleTags: invisible,
	}, nil
}

// SetScreenRects rebuilds the screen list from freshly-detected output
// rectangles, preserving tag order: the lowest-id workspaces (visible or
// hidden) fill the new screens in order, any excess screens' workspaces fall
// back to Hidden, and newWorkspace is called to pad the pool with fresh
// workspaces if the output count grew past the number of known workspaces.
func (ss *StackSet) SetScreenRects(rects []common.Rect, newWorkspace func(nextId uint64) Workspace) error {
	if len(rects) == 0 {
		return fmt.Errorf("store: at least one screen is required")
	}

	workspaces := append([]Workspace(nil), ss.IterWorkspaces()...)
	sort.Slice(workspaces, func(i, j int) bool { return workspaces[i].Id < workspaces[j].Id })

	for len(workspaces) < len(rects) {
		nextId := uint64(len(workspaces) + 1)
		workspaces = append(workspaces, newWorkspace(nextId))
	}

	screens := make([]Screen, len(rects))
	for i, r := range rects {
		screens[i] = Screen{Index: i, Rect: r, Workspace: workspaces[i]}
	}

	ss.Screens = stack.Differentiate(screens)
	ss.Hidden = append([]Workspace(nil), workspaces[len(rects):]...)
	return nil
}

// --- focus family ---

// FocusScreen focuses the screen with the given physical output index.
// No-op if no screen has that index.
func (ss *StackSet) FocusScreen(index int) {
	flat := ss.Screens.Flatten()
	for i, sc := range flat {
		if sc.Index == index {
			ss.setScreensFocus(i, flat)
			return
		}
	}
}

// FocusTag is the central focus operation: a no-op if tag is already
// current; if tag is visible on another screen, that screen is brought into
// focus; if tag is hidden, it is swapped with the currently focused
// workspace (which becomes hidden in its place); unknown tags are a no-op.
func (ss *StackSet) FocusTag(tag string) {
	if ss.CurrentTag() == tag {
		return
	}
	flat := ss.Screens.Flatten()
	for i, sc := range flat {
		if sc.Workspace.Tag == tag {
			ss.setScreensFocus(i, flat)
			return
		}
	}
	for i, w := range ss.Hidden {
		if w.Tag == tag {
			old := ss.Screens.Focus.Workspace
			ss.Screens.Focus.Workspace = w
			ss.Hidden[i] = old
			return
		}
	}
}

// FocusClient focuses the screen and workspace holding id, and moves that
// workspace's stack focus onto it. No-op if id is not managed anywhere.
func (ss *StackSet) FocusClient(id common.Xid) {
	tag, found := ss.findTagForClient(id)
	if !found {
		return
	}
	ss.FocusTag(tag)
	ws := ss.Screens.Focus.Workspace
	if ws.Tag != tag || ws.Stack == nil {
		return
	}
	ss.Screens.Focus.Workspace.Stack = focusOnClient(ws.Stack, id)
}

// FocusUp shifts focus to the previous client in the current workspace's
// stack, wrapping at the ends. No-op on an empty workspace.
func (ss *StackSet) FocusUp() {
	if s := ss.CurrentStack(); s != nil {
		s.FocusUp()
	}
}

// FocusDown is the mirror of FocusUp.
func (ss *StackSet) FocusDown() {
	if s := ss.CurrentStack(); s != nil {
		s.FocusDown()
	}
}

func (ss *StackSet) setScreensFocus(flatIdx int, flat []Screen) {
	ss.Screens = &stack.Stack[Screen]{
		Up:    append([]Screen(nil), flat[:flatIdx]...),
		Focus: flat[flatIdx],
		Down:  append([]Screen(nil), flat[flatIdx+1:]...),
	}
}

func focusOnClient(s *stack.Stack[common.Xid], id common.Xid) *stack.Stack[common.Xid] {
	flat := s.Flatten()
	for i, e := range flat {
		if e == id {
			return &stack.Stack[common.Xid]{
				Up:    append([]common.Xid(nil), flat[:i]...),
				Focus: id,
				Down:  append([]common.Xid(nil), flat[i+1:]...),
			}
		}
	}
	return s
}

// --- membership family ---

// Insert adds id to the current workspace, focused, immediately after the
// previous focus. No-op if id is already managed anywhere.
func (ss *StackSet) Insert(id common.Xid) {
	if ss.ContainsClient(id) {
		return
	}
	ws := ss.Screens.Focus.Workspace
	ss.Screens.Focus.Workspace.Stack = insertDefault(ws.Stack, id)
}

// InsertAt adds id to the current workspace at the given position. No-op if
// id is already managed anywhere.
func (ss *StackSet) InsertAt(pos stack.Position, id common.Xid) {
	if ss.ContainsClient(id) {
		return
	}
	if ss.Screens.Focus.Workspace.Stack == nil {
		ss.Screens.Focus.Workspace.Stack = stack.Singleton(id)
		return
	}
	ss.Screens.Focus.Workspace.Stack.InsertAt(pos, id, eqXid)
}

// RemoveClient drops id from whichever workspace holds it and from
// Floating. No-op if id is not managed anywhere.
func (ss *StackSet) RemoveClient(id common.Xid) {
	tag, found := ss.findTagForClient(id)
	if !found {
		return
	}
	ss.mutateWorkspaceByTag(tag, func(w Workspace) Workspace {
		if w.Stack != nil {
			w.Stack = stack.Filter(w.Stack, func(e common.Xid) bool { return e != id })
		}
		return w
	})
	delete(ss.Floating, id)
}

// MoveClientToTag relocates id from its current workspace to tag, keeping
// its Floating entry (if any). No-op if id is unmanaged, already on tag, or
// tag is unknown.
func (ss *StackSet) MoveClientToTag(id common.Xid, tag string) {
	srcTag, found := ss.findTagForClient(id)
	if !found || srcTag == tag || !ss.tagExists(tag) {
		return
	}
	ss.mutateWorkspaceByTag(srcTag, func(w Workspace) Workspace {
		if w.Stack != nil {
			w.Stack = stack.Filter(w.Stack, func(e common.Xid) bool { return e != id })
		}
		return w
	})
	ss.mutateWorkspaceByTag(tag, func(w Workspace) Workspace {
		w.Stack = insertDefault(w.Stack, id)
		return w
	})
}

// MoveClientToCurrentTag relocates id onto the currently focused workspace.
func (ss *StackSet) MoveClientToCurrentTag(id common.Xid) {
	ss.MoveClientToTag(id, ss.CurrentTag())
}

// Sink removes id's Floating override, if any, returning it to layout control.
func (ss *StackSet) Sink(id common.Xid) {
	delete(ss.Floating, id)
}

// Float marks id as floating with the given rectangle, stored as given in
// root-window coordinates; it is not normalized to a screen and is not
// remapped when the workspace moves to another screen.
// No-op if id is not managed anywhere (invariant 4: floating clients are
// always present on some workspace).
func (ss *StackSet) Float(id common.Xid, r common.Rect) {
	if !ss.ContainsClient(id) {
		return
	}
	ss.Floating[id] = r
}

func insertDefault(s *stack.Stack[common.Xid], id common.Xid) *stack.Stack[common.Xid] {
	if s == nil {
		return stack.Singleton(id)
	}
	up := append(append([]common.Xid(nil), s.Up...), s.Focus)
	return &stack.Stack[common.Xid]{Up: up, Focus: id, Down: append([]common.Xid(nil), s.Down...)}
}

// --- iteration family ---

// IterScreens returns every screen, focused one included, in display order.
func (ss *StackSet) IterScreens() []Screen {
	return ss.Screens.Flatten()
}

// IterWorkspaces returns every workspace, visible and hidden.
func (ss *StackSet) IterWorkspaces() []Workspace {
	screens := ss.IterScreens()
	out := make([]Workspace, 0, len(screens)+len(ss.Hidden))
	for _, sc := range screens {
		out = append(out, sc.Workspace)
	}
	return append(out, ss.Hidden...)
}

// IterClients returns every managed client across every workspace.
func (ss *StackSet) IterClients() []common.Xid {
	var out []common.Xid
	for _, w := range ss.IterWorkspaces() {
		out = append(out, w.Clients()...)
	}
	return out
}

// Clients returns the current workspace's clients with the focused client
// first, wrapping around the rest in display order.
func (ss *StackSet) Clients() []common.Xid {
	s := ss.CurrentStack()
	if s == nil {
		return nil
	}
	flat := s.Flatten()
	idx := len(s.Up)
	out := append([]common.Xid(nil), flat[idx:]...)
	return append(out, flat[:idx]...)
}

// OrderedWorkspaces returns every non-invisible workspace ordered by id.
func (ss *StackSet) OrderedWorkspaces() []Workspace {
	var out []Workspace
	for _, w := range ss.IterWorkspaces() {
		if _, invisible := ss.InvisibleTags[w.Tag]; invisible {
			continue
		}
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Id < out[j].Id })
	return out
}

// OrderedTags returns the tags of OrderedWorkspaces, in the same order.
func (ss *StackSet) OrderedTags() []string {
	ws := ss.OrderedWorkspaces()
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = w.Tag
	}
	return out
}

// TagForClient returns the tag of the workspace holding id.
func (ss *StackSet) TagForClient(id common.Xid) (string, bool) {
	return ss.findTagForClient(id)
}

// TagForWorkspaceId returns the tag of the workspace with the given id.
func (ss *StackSet) TagForWorkspaceId(id uint64) (string, bool) {
	for _, w := range ss.IterWorkspaces() {
		if w.Id == id {
			return w.Tag, true
		}
	}
	return "", false
}

// CurrentClient returns the focused client of the current workspace, if any.
func (ss *StackSet) CurrentClient() (common.Xid, bool) {
	s := ss.CurrentStack()
	if s == nil {
		var zero common.Xid
		return zero, false
	}
	return s.Focus, true
}

// CurrentWorkspace returns the focused screen's workspace.
func (ss *StackSet) CurrentWorkspace() Workspace {
	return ss.Screens.Focus.Workspace
}

// CurrentStack returns the current workspace's client stack, or nil.
func (ss *StackSet) CurrentStack() *stack.Stack[common.Xid] {
	return ss.Screens.Focus.Workspace.Stack
}

// CurrentTag returns the current workspace's tag.
func (ss *StackSet) CurrentTag() string {
	return ss.CurrentWorkspace().Tag
}

// ContainsClient reports whether id is managed on any workspace.
func (ss *StackSet) ContainsClient(id common.Xid) bool {
	_, found := ss.findTagForClient(id)
	return found
}

func (ss *StackSet) findTagForClient(id common.Xid) (string, bool) {
	for _, w := range ss.IterWorkspaces() {
		if w.Contains(id) {
			return w.Tag, true
		}
	}
	return "", false
}

func (ss *StackSet) tagExists(tag string) bool {
	for _, w := range ss.IterWorkspaces() {
		if w.Tag == tag {
			return true
		}
	}
	return false
}

// mutateWorkspaceByTag applies fn to the workspace with the given tag,
// wherever it currently lives (a screen or Hidden), and writes the result
// back in place. Reports whether a workspace with that tag was found.
func (ss *StackSet) mutateWorkspaceByTag(tag string, fn func(Workspace) Workspace) bool {
	for i := range ss.Screens.Up {
		if ss.Screens.Up[i].Workspace.Tag == tag {
			ss.Screens.Up[i].Workspace = fn(ss.Screens.Up[i].Workspace)
			return true
		}
	}
	if ss.Screens.Focus.Workspace.Tag == tag {
		ss.Screens.Focus.Workspace = fn(ss.Screens.Focus.Workspace)
		return true
	}
	for i := range ss.Screens.Down {
		if ss.Screens.Down[i].Workspace.Tag == tag {
			ss.Screens.Down[i].Workspace = fn(ss.Screens.Down[i].Workspace)
			return true
		}
	}
	for i := range ss.Hidden {
		if ss.Hidden[i].Tag == tag {
			ss.Hidden[i] = fn(ss.Hidden[i])
			return true
		}
	}
	return false
}
