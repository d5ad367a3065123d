package store

import "github.com/leukipp/tylewm/common"

// ScreenSnapshot records one screen's identity and client stack order at
// the moment a Snapshot was taken.
type ScreenSnapshot struct {
	ScreenIndex int
	Tag         string
	Clients     []common.Xid
}

// HiddenSnapshot records a hidden workspace's clients.
type HiddenSnapshot struct {
	Tag     string
	Clients []common.Xid
}

// Position is a (client, rectangle) placement as emitted by the layout
// engine for a single visible client.
type Position struct {
	Id   common.Xid
	Rect common.Rect
}

// Snapshot captures everything the refresh engine needs to diff against a
// later point in time: which client is focused, every visible screen's
// client ordering, every hidden workspace's clients, the positions the
// layout engine emitted, and clients explicitly killed during the mutation
// that produced it.
type Snapshot struct {
	FocusedClient *common.Xid
	FocusedScreen ScreenSnapshot
	OtherScreens  []ScreenSnapshot
	Hidden        []HiddenSnapshot
	Positions     []Position
	Killed        []common.Xid
}

// NewSnapshot captures ss's current shape. positions should be the layout
// engine's output for every currently-visible workspace; killed lists
// clients the caller explicitly destroyed as part of the mutation this
// snapshot follows.
func NewSnapshot(ss *StackSet, positions []Position, killed []common.Xid) *Snapshot {
	snap := &Snapshot{Positions: positions, Killed: append([]common.Xid(nil), killed...)}

	if c, ok := ss.CurrentClient(); ok {
		id := c
		snap.FocusedClient = &id
	}

	fs := ss.Screens.Focus
	snap.FocusedScreen = ScreenSnapshot{ScreenIndex: fs.Index, Tag: fs.Workspace.Tag, Clients: fs.Workspace.Clients()}
	others := append(append([]Screen(nil), ss.Screens.Up...), ss.Screens.Down...)
	for _, sc := range others {
		snap.OtherScreens = append(snap.OtherScreens, ScreenSnapshot{ScreenIndex: sc.Index, Tag: sc.Workspace.Tag, Clients: sc.Workspace.Clients()})
	}

	for _, w := range ss.Hidden {
		snap.Hidden = append(snap.Hidden, HiddenSnapshot{Tag: w.Tag, Clients: w.Clients()})
	}

	return snap
}

func (s *Snapshot) visibleScreens() []ScreenSnapshot {
	return append([]ScreenSnapshot{s.FocusedScreen}, s.OtherScreens...)
}

func (s *Snapshot) visibleClients() []common.Xid {
	var out []common.Xid
	for _, sc := range s.visibleScreens() {
		out = append(out, sc.Clients...)
	}
	return out
}

func (s *Snapshot) allClients() []common.Xid {
	out := s.visibleClients()
	for _, h := range s.Hidden {
		out = append(out, h.Clients...)
	}
	return out
}

func (s *Snapshot) visibleTags() []string {
	var out []string
	for _, sc := range s.visibleScreens() {
		out = append(out, sc.Tag)
	}
	return out
}

func (s *Snapshot) positionOf(id common.Xid) (common.Rect, bool) {
	for _, p := range s.Positions {
		if p.Id == id {
			return p.Rect, true
		}
	}
	return common.Rect{}, false
}

// Diff holds the before/after snapshots spanning a single mutation and
// exposes the derived change sets the refresh engine acts on.
type Diff struct {
	Before *Snapshot
	After  *Snapshot
}

// NewDiff pairs before and after into a Diff.
func NewDiff(before, after *Snapshot) *Diff {
	return &Diff{Before: before, After: after}
}

// NewClients are present in After but not in Before.
func (d *Diff) NewClients() []common.Xid {
	return setDiff(d.After.allClients(), d.Before.allClients())
}

// WithdrawnClients are present in Before but not in After.
func (d *Diff) WithdrawnClients() []common.Xid {
	return setDiff(d.Before.allClients(), d.After.allClients())
}

// HiddenClients were visible in Before but are not visible in After
// (includes WithdrawnClients).
func (d *Diff) HiddenClients() []common.Xid {
	return setDiff(d.Before.visibleClients(), d.After.visibleClients())
}

// VisibleClients is the currently-visible client set.
func (d *Diff) VisibleClients() []common.Xid {
	return d.After.visibleClients()
}

// NewlyFocusedScreen reports the new focused screen index if it changed
// from Before to After.
func (d *Diff) NewlyFocusedScreen() (int, bool) {
	if d.Before.FocusedScreen.ScreenIndex == d.After.FocusedScreen.ScreenIndex {
		return 0, false
	}
	return d.After.FocusedScreen.ScreenIndex, true
}

// FocusedClientChanged reports whether the focused client differs between
// Before and After.
func (d *Diff) FocusedClientChanged() bool {
	b, a := d.Before.FocusedClient, d.After.FocusedClient
	if (b == nil) != (a == nil) {
		return true
	}
	return b != nil && a != nil && *b != *a
}

// ClientChangedPosition reports whether id's emitted rectangle differs
// between Before and After (including appearing/disappearing).
func (d *Diff) ClientChangedPosition(id common.Xid) bool {
	before, beforeOk := d.Before.positionOf(id)
	after, afterOk := d.After.positionOf(id)
	if beforeOk != afterOk {
		return true
	}
	return beforeOk && afterOk && before != after
}

// PreviousVisibleTags lists the tags visible in Before.
func (d *Diff) PreviousVisibleTags() []string {
	return d.Before.visibleTags()
}

// CurrentVisibleTags lists the tags visible in After.
func (d *Diff) CurrentVisibleTags() []string {
	return d.After.visibleTags()
}

// IsEmpty reports whether the diff reflects no observable change at all.
func (d *Diff) IsEmpty() bool {
	if len(d.NewClients()) != 0 || len(d.WithdrawnClients()) != 0 || len(d.HiddenClients()) != 0 {
		return false
	}
	if _, changed := d.NewlyFocusedScreen(); changed {
		return false
	}
	if d.FocusedClientChanged() {
		return false
	}
	for _, id := range d.VisibleClients() {
		if d.ClientChangedPosition(id) {
			return false
		}
	}
	return true
}

func setDiff(a, b []common.Xid) []common.Xid {
	inB := make(map[common.Xid]struct{}, len(b))
	for _, id := range b {
		inB[id] = struct{}{}
	}
	var out []common.Xid
	for _, id := range a {
		if _, ok := inB[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}
