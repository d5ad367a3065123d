package core

import (
	"github.com/leukipp/tylewm/common"
	"github.com/leukipp/tylewm/hooks"
	"github.com/leukipp/tylewm/layout"
	"github.com/leukipp/tylewm/store"
	"github.com/leukipp/tylewm/xconn"

	log "github.com/sirupsen/logrus"
)

// ModifyAndRefresh is the only path by which a StackSet mutation reaches the
// X server: it snapshots the state, runs f, then diffs against the new
// state and issues exactly the requests needed to make the server match it.
func ModifyAndRefresh(state *State, conn xconn.XConn, f func(*store.StackSet)) error {
	before := snapshotBefore(state)
	f(state.ClientSet)
	return runRefresh(state, conn, before)
}

func snapshotBefore(state *State) *store.Snapshot {
	return store.NewSnapshot(state.ClientSet, state.lastPositions, nil)
}

func runRefresh(state *State, conn xconn.XConn, before *store.Snapshot) error {
	positions := computePositions(state.ClientSet, state.Config)
	state.lastPositions = positions

	killed := state.killedThisCycle
	state.killedThisCycle = nil

	after := store.NewSnapshot(state.ClientSet, positions, killed)
	diff := store.NewDiff(before, after)
	state.Diff = diff

	for _, id := range diff.NewClients() {
		if err := initClientProperties(conn, state.Config, id); err != nil {
			return err
		}
	}

	hideWorkspacesLeavingVisibility(state.ClientSet, diff)

	for _, p := range positions {
		if !diff.ClientChangedPosition(p.Id) {
			continue
		}
		if err := conn.SetClientConfig(p.Id, []xconn.ClientConfig{xconn.Position(p.Rect), xconn.StackAbove{}}); err != nil {
			return err
		}
	}

	if diff.FocusedClientChanged() {
		if before.FocusedClient != nil {
			if err := conn.SetClientAttributes(*before.FocusedClient, []xconn.ClientAttr{xconn.BorderColor(state.Config.BorderNormal)}); err != nil {
				return err
			}
		}
		if after.FocusedClient != nil {
			if err := conn.SetClientAttributes(*after.FocusedClient, []xconn.ClientAttr{xconn.BorderColor(state.Config.BorderFocused)}); err != nil {
				return err
			}
		}
	}

	for _, id := range diff.VisibleClients() {
		if state.IsMapped(id) {
			continue
		}
		if err := conn.Map(id); err != nil {
			return err
		}
		if err := conn.SetWmState(id, xconn.Normal); err != nil {
			return err
		}
		state.Mapped[id] = struct{}{}
	}

	if err := focusAfterRefresh(conn, state.Root, after.FocusedClient); err != nil {
		return err
	}

	for _, id := range diff.HiddenClients() {
		if !state.IsMapped(id) {
			continue
		}
		state.PendingUnmap[id]++
		if err := conn.Unmap(id); err != nil {
			return err
		}
		if err := conn.SetWmState(id, xconn.Iconic); err != nil {
			return err
		}
		delete(state.Mapped, id)
	}

	for _, id := range diff.WithdrawnClients() {
		if err := conn.SetWmState(id, xconn.Withdrawn); err != nil {
			return err
		}
	}

	if err := state.Config.RefreshHook(state, conn); err != nil {
		return err
	}

	return conn.Flush()
}

func initClientProperties(conn xconn.XConn, cfg *Config, id common.Xid) error {
	if err := conn.SetClientConfig(id, []xconn.ClientConfig{xconn.BorderPx(cfg.BorderWidth)}); err != nil {
		return err
	}
	attrs := []xconn.ClientAttr{xconn.ClientEventMask{}, xconn.BorderColor(cfg.BorderNormal)}
	if err := conn.SetClientAttributes(id, attrs); err != nil {
		return err
	}
	return conn.SetWmState(id, xconn.Iconic)
}

func hideWorkspacesLeavingVisibility(ss *store.StackSet, diff *store.Diff) {
	wasVisible := make(map[string]struct{})
	for _, t := range diff.PreviousVisibleTags() {
		wasVisible[t] = struct{}{}
	}
	stillVisible := make(map[string]struct{})
	for _, t := range diff.CurrentVisibleTags() {
		stillVisible[t] = struct{}{}
	}
	for _, w := range ss.IterWorkspaces() {
		if _, was := wasVisible[w.Tag]; !was {
			continue
		}
		if _, still := stillVisible[w.Tag]; still {
			continue
		}
		if w.Layouts != nil {
			w.Layouts.BroadcastMessage(layout.Hide{})
		}
	}
}

func focusAfterRefresh(conn xconn.XConn, root common.Xid, focused *common.Xid) error {
	if focused == nil {
		return conn.Focus(root)
	}
	id := *focused
	hints, err := clientWmHints(conn, id)
	if err != nil {
		return err
	}
	if hints != nil && !hints.AcceptsInput {
		return sendTakeFocus(conn, id)
	}
	return conn.Focus(id)
}

func clientWmHints(conn xconn.XConn, id common.Xid) (*xconn.WmHints, error) {
	p, ok, err := conn.GetProp(id, "WM_HINTS")
	if err != nil || !ok || p.Kind != xconn.PropWmHints {
		return nil, err
	}
	return p.WmHints, nil
}

func sendTakeFocus(conn xconn.XConn, id common.Xid) error {
	atom, err := conn.AtomId("WM_TAKE_FOCUS")
	if err != nil {
		return err
	}
	return conn.SendClientMessage(xconn.ClientMessageEvent{
		Id:    id,
		Dtype: "WM_PROTOCOLS",
		Data:  [5]uint32{uint32(atom), 0, 0, 0, 0},
	})
}

// computePositions runs the layout engine over every visible workspace,
// applying the configured LayoutHook transforms and overriding floating
// clients with their stored rectangle clamped to the current screen.
func computePositions(ss *store.StackSet, cfg *Config) []store.Position {
	var out []store.Position
	for _, sc := range ss.IterScreens() {
		ws := sc.Workspace
		rect := sc.Rect
		if cfg.LayoutHook.TransformInitial != nil {
			rect = cfg.LayoutHook.TransformInitial(rect)
		}

		_, placements := ws.Layouts.LayoutWorkspace(ws.Tag, ws.Stack, rect)
		positions := make([]hooks.Position, len(placements))
		for i, p := range placements {
			positions[i] = hooks.Position{Id: p.Id, Rect: p.Rect}
		}
		if cfg.LayoutHook.TransformPositions != nil {
			positions = cfg.LayoutHook.TransformPositions(rect, positions)
		}

		for _, p := range positions {
			r := p.Rect
			if fr, floating := ss.Floating[p.Id]; floating {
				r = clampToScreen(fr, sc.Rect)
			}
			out = append(out, store.Position{Id: p.Id, Rect: r})
		}
	}
	return out
}

// clampToScreen keeps a floating rectangle's size but repositions it, and
// shrinks it if necessary, so it always lies within screen.
func clampToScreen(r, screen common.Rect) common.Rect {
	if screen.Contains(r) {
		return r
	}
	w, h := r.Width, r.Height
	if w > screen.Width {
		w = screen.Width
	}
	if h > screen.Height {
		h = screen.Height
	}
	fitted := common.Rect{X: r.X, Y: r.Y, Width: w, Height: h}
	centered, err := fitted.CenteredIn(screen)
	if err != nil {
		log.WithFields(log.Fields{"rect": r, "screen": screen}).Warn("core: floating rect does not fit screen, using full screen")
		return screen
	}
	return centered
}
