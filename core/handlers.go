package core

import (
	"fmt"

	"github.com/leukipp/tylewm/bindings"
	"github.com/leukipp/tylewm/common"
	"github.com/leukipp/tylewm/query"
	"github.com/leukipp/tylewm/store"
	"github.com/leukipp/tylewm/xconn"
)

var autoFloatWindowTypes = map[string]struct{}{
	"_NET_WM_WINDOW_TYPE_DIALOG":  {},
	"_NET_WM_WINDOW_TYPE_UTILITY": {},
	"_NET_WM_WINDOW_TYPE_SPLASH":  {},
	"_NET_WM_WINDOW_TYPE_TOOLBAR": {},
}

// dispatch routes a single event to its handler. It is the only place that
// knows the full XEvent table.
func dispatch(state *State, conn xconn.XConn, ev xconn.XEvent) error {
	switch e := ev.(type) {
	case xconn.MapRequestEvent:
		return handleMapRequest(state, conn, e.Id)
	case xconn.UnmapNotifyEvent:
		return handleUnmapNotify(state, conn, e.Id)
	case xconn.DestroyEvent:
		return handleDestroy(state, conn, e.Id)
	case xconn.ConfigureRequestEvent:
		return handleConfigureRequest(state, conn, e)
	case xconn.ConfigureNotifyEvent:
		if e.IsRoot {
			return rebuildScreens(state, conn)
		}
		return nil
	case xconn.KeyPressEvent:
		return handleKeyPress(state, e.Code)
	case xconn.MouseEvent:
		return handleMouseEvent(state, e)
	case xconn.EnterEvent:
		return handleEnter(state, conn, e)
	case xconn.LeaveEvent:
		return handleLeave(state, conn, e)
	case xconn.FocusInEvent:
		return handleFocusIn(state, conn, e.Id)
	case xconn.PropertyNotifyEvent:
		return nil
	case xconn.ClientMessageEvent:
		return handleClientMessage(state, conn, e)
	case xconn.ScreenChangeEvent, xconn.RandrNotifyEvent:
		return rebuildScreens(state, conn)
	case xconn.MappingNotifyEvent:
		return conn.Grab(keyCodesOf(state.Config.KeyBindings), mouseStatesOf(state.Config.MouseBindings))
	default:
		return fmt.Errorf("core: unhandled event type %T", ev)
	}
}

func handleMapRequest(state *State, conn xconn.XConn, id common.Xid) error {
	if state.ClientSet.ContainsClient(id) {
		return nil
	}
	attrs, err := conn.GetWindowAttributes(id)
	if err != nil {
		return err
	}
	if attrs.OverrideRedirect {
		return nil
	}

	cache := query.NewPropCache(conn, id)
	cachedConn := cache.Conn()

	_, isTransient, err := cache.Get("WM_TRANSIENT_FOR")
	if err != nil {
		return err
	}
	class := classOf(cachedConn, id)
	wtype := windowTypeOf(cachedConn, id)
	_, isAutoFloatType := autoFloatWindowTypes[wtype]
	shouldFloat := isTransient || state.Config.IsFloatingClass(class) || isAutoFloatType

	before := snapshotBefore(state)
	screenRect := currentScreenRect(state.ClientSet)

	state.ClientSet.Insert(id)
	if shouldFloat {
		state.ClientSet.Float(id, defaultFloatRect(screenRect))
	}

	if err := state.Config.ManageHook(state, cachedConn, id); err != nil {
		return err
	}

	return runRefresh(state, conn, before)
}

func currentScreenRect(ss *store.StackSet) common.Rect {
	return ss.Screens.Focus.Rect
}

func defaultFloatRect(screen common.Rect) common.Rect {
	shrunk := screen.ScaleW(0.6).ScaleH(0.6)
	centered, err := shrunk.CenteredIn(screen)
	if err != nil {
		return screen
	}
	return centered
}

func classOf(conn xconn.XConn, id common.Xid) string {
	p, ok, err := conn.GetProp(id, "WM_CLASS")
	if err != nil || !ok || len(p.Strings) < 2 {
		return ""
	}
	return p.Strings[1]
}

func windowTypeOf(conn xconn.XConn, id common.Xid) string {
	p, ok, err := conn.GetProp(id, "_NET_WM_WINDOW_TYPE")
	if err != nil || !ok || len(p.Strings) == 0 {
		return ""
	}
	return p.Strings[0]
}

func handleUnmapNotify(state *State, conn xconn.XConn, id common.Xid) error {
	count := state.PendingUnmap[id]
	switch {
	case count == 0:
		return unmanage(state, conn, id)
	case count == 1:
		delete(state.PendingUnmap, id)
	default:
		state.PendingUnmap[id] = count - 1
	}
	return nil
}

func handleDestroy(state *State, conn xconn.XConn, id common.Xid) error {
	delete(state.Mapped, id)
	delete(state.PendingUnmap, id)
	if !state.ClientSet.ContainsClient(id) {
		return nil
	}
	return unmanage(state, conn, id)
}

func unmanage(state *State, conn xconn.XConn, id common.Xid) error {
	delete(state.Mapped, id)
	delete(state.PendingUnmap, id)
	return ModifyAndRefresh(state, conn, func(ss *store.StackSet) {
		ss.RemoveClient(id)
	})
}

func handleConfigureRequest(state *State, conn xconn.XConn, ev xconn.ConfigureRequestEvent) error {
	if state.ClientSet.ContainsClient(ev.Id) {
		return nil
	}
	if !ev.HasRect {
		return nil
	}
	return conn.SetClientConfig(ev.Id, []xconn.ClientConfig{xconn.Position(ev.Rect)})
}

func rebuildScreens(state *State, conn xconn.XConn) error {
	rects, err := conn.ScreenDetails()
	if err != nil {
		return err
	}
	return ModifyAndRefresh(state, conn, func(ss *store.StackSet) {
		_ = ss.SetScreenRects(rects, func(nextId uint64) store.Workspace {
			tag := fmt.Sprintf("screen-%d", nextId)
			return store.NewWorkspace(nextId, tag, state.Config.NewLayouts())
		})
	})
}

func handleKeyPress(state *State, code bindings.KeyCode) error {
	stripped := code.StrippingNumLock()
	handler, ok := state.Config.KeyBindings[stripped]
	if !ok {
		return nil
	}
	return handler(state)
}

func handleMouseEvent(state *State, ev xconn.MouseEvent) error {
	handler, ok := state.Config.MouseBindings[ev.State]
	if !ok {
		return nil
	}
	return handler(state, &ev)
}

func handleEnter(state *State, conn xconn.XConn, ev xconn.EnterEvent) error {
	if state.Config.FocusFollowsMouse {
		if err := ModifyAndRefresh(state, conn, func(ss *store.StackSet) {
			ss.FocusClient(ev.Id)
		}); err != nil {
			return err
		}
	}
	return focusScreenAtPoint(state, conn, ev.Point)
}

func handleLeave(state *State, conn xconn.XConn, ev xconn.LeaveEvent) error {
	return focusScreenAtPoint(state, conn, ev.Point)
}

func focusScreenAtPoint(state *State, conn xconn.XConn, p common.Point) error {
	for _, sc := range state.ClientSet.IterScreens() {
		if sc.Rect.ContainsPoint(p) {
			return ModifyAndRefresh(state, conn, func(ss *store.StackSet) {
				ss.FocusScreen(sc.Index)
			})
		}
	}
	return nil
}

func handleFocusIn(state *State, conn xconn.XConn, id common.Xid) error {
	hints, err := clientWmHints(conn, id)
	if err != nil {
		return err
	}
	if hints != nil && !hints.AcceptsInput {
		return sendTakeFocus(conn, id)
	}
	if err := conn.Focus(id); err != nil {
		return err
	}
	return conn.SetProp(state.Root, "_NET_ACTIVE_WINDOW", xconn.Prop{Kind: xconn.PropWindows, Windows: []common.Xid{id}})
}

func handleClientMessage(state *State, conn xconn.XConn, ev xconn.ClientMessageEvent) error {
	switch ev.Dtype {
	case "_NET_ACTIVE_WINDOW":
		return ModifyAndRefresh(state, conn, func(ss *store.StackSet) {
			ss.FocusClient(ev.Id)
		})
	case "_NET_CURRENT_DESKTOP":
		tag, ok := state.ClientSet.TagForWorkspaceId(uint64(ev.Data[0]) + 1)
		if !ok {
			return nil
		}
		return ModifyAndRefresh(state, conn, func(ss *store.StackSet) {
			ss.FocusTag(tag)
		})
	case "_NET_WM_DESKTOP":
		tag, ok := state.ClientSet.TagForWorkspaceId(uint64(ev.Data[0]) + 1)
		if !ok {
			return nil
		}
		return ModifyAndRefresh(state, conn, func(ss *store.StackSet) {
			ss.MoveClientToTag(ev.Id, tag)
		})
	default:
		return nil
	}
}

func keyCodesOf(kb KeyBindings) []bindings.KeyCode {
	out := make([]bindings.KeyCode, 0, len(kb))
	for k := range kb {
		out = append(out, k)
	}
	return out
}

func mouseStatesOf(mb MouseBindings) []bindings.MouseState {
	out := make([]bindings.MouseState, 0, len(mb))
	for s := range mb {
		out = append(out, s)
	}
	return out
}
