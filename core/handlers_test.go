package core

import (
	"testing"

	"github.com/leukipp/tylewm/bindings"
	"github.com/leukipp/tylewm/common"
	"github.com/leukipp/tylewm/store"
	"github.com/leukipp/tylewm/xconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleMapRequestFloatsConfiguredClass(t *testing.T) {
	state, conn := newTestState(t, []string{"1"}, []common.Rect{{Width: 800, Height: 600}})
	state.Config.FloatingClasses = []string{"Pavucontrol"}
	conn.SetProperty(2, "WM_CLASS", xconn.Prop{Kind: xconn.PropStrings, Strings: []string{"pavucontrol", "Pavucontrol"}})

	require.NoError(t, handleMapRequest(state, conn, 2))

	_, floating := state.ClientSet.Floating[2]
	assert.True(t, floating)
	assert.True(t, state.ClientSet.ContainsClient(2))
}

func TestHandleMapRequestFloatsTransientWindow(t *testing.T) {
	state, conn := newTestState(t, []string{"1"}, []common.Rect{{Width: 800, Height: 600}})
	conn.SetProperty(2, "WM_TRANSIENT_FOR", xconn.Prop{Kind: xconn.PropWindows, Windows: []common.Xid{1}})

	require.NoError(t, handleMapRequest(state, conn, 2))

	_, floating := state.ClientSet.Floating[2]
	assert.True(t, floating)
}

func TestHandleMapRequestSkipsOverrideRedirect(t *testing.T) {
	state, conn := newTestState(t, []string{"1"}, []common.Rect{{Width: 800, Height: 600}})
	conn.Attrs[2] = xconn.WindowAttributes{OverrideRedirect: true}

	require.NoError(t, handleMapRequest(state, conn, 2))
	assert.False(t, state.ClientSet.ContainsClient(2))
}

func TestHandleMapRequestIgnoresAlreadyManagedClient(t *testing.T) {
	state, conn := newTestState(t, []string{"1"}, []common.Rect{{Width: 800, Height: 600}})
	require.NoError(t, ModifyAndRefresh(state, conn, func(ss *store.StackSet) { ss.Insert(2) }))
	calls := len(conn.Calls)

	require.NoError(t, handleMapRequest(state, conn, 2))
	assert.Equal(t, calls, len(conn.Calls))
}

func TestHandleUnmapNotifyCountsPendingUnmapDown(t *testing.T) {
	state, conn := newTestState(t, []string{"1"}, []common.Rect{{Width: 800, Height: 600}})
	require.NoError(t, ModifyAndRefresh(state, conn, func(ss *store.StackSet) { ss.Insert(2) }))
	state.PendingUnmap[2] = 2

	require.NoError(t, handleUnmapNotify(state, conn, 2))
	assert.Equal(t, uint32(1), state.PendingUnmap[2])

	require.NoError(t, handleUnmapNotify(state, conn, 2))
	_, stillPending := state.PendingUnmap[2]
	assert.False(t, stillPending)
	assert.True(t, state.ClientSet.ContainsClient(2))
}

func TestHandleUnmapNotifyWithNoPendingCountUnmanages(t *testing.T) {
	state, conn := newTestState(t, []string{"1"}, []common.Rect{{Width: 800, Height: 600}})
	require.NoError(t, ModifyAndRefresh(state, conn, func(ss *store.StackSet) { ss.Insert(2) }))

	require.NoError(t, handleUnmapNotify(state, conn, 2))
	assert.False(t, state.ClientSet.ContainsClient(2))
}

func TestHandleDestroyUnmanagesManagedClient(t *testing.T) {
	state, conn := newTestState(t, []string{"1"}, []common.Rect{{Width: 800, Height: 600}})
	require.NoError(t, ModifyAndRefresh(state, conn, func(ss *store.StackSet) { ss.Insert(2) }))

	require.NoError(t, handleDestroy(state, conn, 2))
	assert.False(t, state.ClientSet.ContainsClient(2))
	_, mapped := state.Mapped[2]
	assert.False(t, mapped)
}

func TestHandleConfigureRequestIgnoresManagedClient(t *testing.T) {
	state, conn := newTestState(t, []string{"1"}, []common.Rect{{Width: 800, Height: 600}})
	require.NoError(t, ModifyAndRefresh(state, conn, func(ss *store.StackSet) { ss.Insert(2) }))
	before := len(conn.Calls)

	err := handleConfigureRequest(state, conn, xconn.ConfigureRequestEvent{Id: 2, HasRect: true, Rect: common.Rect{Width: 1}})
	require.NoError(t, err)
	assert.Equal(t, before, len(conn.Calls))
}

func TestHandleConfigureRequestHonorsUnmanagedClient(t *testing.T) {
	state, conn := newTestState(t, []string{"1"}, []common.Rect{{Width: 800, Height: 600}})

	err := handleConfigureRequest(state, conn, xconn.ConfigureRequestEvent{Id: 9, HasRect: true, Rect: common.Rect{Width: 42}})
	require.NoError(t, err)
	assert.Contains(t, conn.CallNames(), "SetClientConfig")
}

func TestRebuildScreensPadsWithFreshWorkspace(t *testing.T) {
	state, conn := newTestState(t, []string{"1"}, []common.Rect{{Width: 800, Height: 600}})
	conn.Screens = []common.Rect{{Width: 800, Height: 600}, {X: 800, Width: 1024, Height: 768}}

	require.NoError(t, rebuildScreens(state, conn))
	assert.Len(t, state.ClientSet.IterScreens(), 2)
}

func TestHandleKeyPressStripsNumLockBeforeLookup(t *testing.T) {
	state, _ := newTestState(t, []string{"1"}, []common.Rect{{Width: 800, Height: 600}})
	ran := false
	state.Config.KeyBindings[bindings.KeyCode{Mask: 1, Code: 5}] = func(s *State) error {
		ran = true
		return nil
	}

	require.NoError(t, handleKeyPress(state, bindings.KeyCode{Mask: bindings.NumLockMask | 1, Code: 5}))
	assert.True(t, ran)
}

func TestHandleKeyPressNoBindingIsNoOp(t *testing.T) {
	state, _ := newTestState(t, []string{"1"}, []common.Rect{{Width: 800, Height: 600}})
	require.NoError(t, handleKeyPress(state, bindings.KeyCode{Mask: 0, Code: 99}))
}

func TestHandleClientMessageCurrentDesktopFocusesTag(t *testing.T) {
	state, conn := newTestState(t, []string{"1", "2"}, []common.Rect{{Width: 800, Height: 600}})

	err := handleClientMessage(state, conn, xconn.ClientMessageEvent{Dtype: "_NET_CURRENT_DESKTOP", Data: [5]uint32{1, 0, 0, 0, 0}})
	require.NoError(t, err)
	assert.Equal(t, "2", state.ClientSet.CurrentTag())
}

func TestHandleClientMessageWmDesktopMovesClient(t *testing.T) {
	state, conn := newTestState(t, []string{"1", "2"}, []common.Rect{{Width: 800, Height: 600}})
	require.NoError(t, ModifyAndRefresh(state, conn, func(ss *store.StackSet) { ss.Insert(5) }))

	err := handleClientMessage(state, conn, xconn.ClientMessageEvent{Id: 5, Dtype: "_NET_WM_DESKTOP", Data: [5]uint32{1, 0, 0, 0, 0}})
	require.NoError(t, err)
	tag, ok := state.ClientSet.TagForClient(5)
	require.True(t, ok)
	assert.Equal(t, "2", tag)
}

func TestHandleClientMessageUnknownDtypeIsNoOp(t *testing.T) {
	state, conn := newTestState(t, []string{"1"}, []common.Rect{{Width: 800, Height: 600}})
	require.NoError(t, handleClientMessage(state, conn, xconn.ClientMessageEvent{Dtype: "_NET_WM_STATE_FULLSCREEN"}))
}
