package core

import (
	"testing"

	"github.com/leukipp/tylewm/common"
	"github.com/leukipp/tylewm/xconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWindowManagerBuildsStackSetFromScreenDetails(t *testing.T) {
	conn := xconn.NewMock(common.Xid(1), []common.Rect{{Width: 800, Height: 600}, {X: 800, Width: 800, Height: 600}})
	cfg := NewConfig([]string{"1", "2", "3"}, monocleLayouts)

	wm, err := NewWindowManager(conn, cfg)
	require.NoError(t, err)
	assert.Len(t, wm.State.ClientSet.IterScreens(), 2)
	assert.Equal(t, common.Xid(1), wm.State.Root)
}

func TestWindowManagerRunProcessesEventsUntilConnectionCloses(t *testing.T) {
	conn := xconn.NewMock(common.Xid(1), []common.Rect{{Width: 800, Height: 600}})
	cfg := NewConfig([]string{"1"}, monocleLayouts)
	wm, err := NewWindowManager(conn, cfg)
	require.NoError(t, err)

	conn.Push(xconn.MapRequestEvent{Id: 5})
	close(conn.Events)

	err = wm.Run()
	require.Error(t, err)
	assert.True(t, wm.State.ClientSet.ContainsClient(5))
}

func TestWindowManagerRunStopsCleanlyOnErrExit(t *testing.T) {
	conn := xconn.NewMock(common.Xid(1), []common.Rect{{Width: 800, Height: 600}})
	cfg := NewConfig([]string{"1"}, monocleLayouts)
	cfg.ComposeOrSetEventHook(func(s *State, c xconn.XConn, e xconn.XEvent) (bool, error) {
		return false, ErrExit
	})
	wm, err := NewWindowManager(conn, cfg)
	require.NoError(t, err)

	conn.Push(xconn.MappingNotifyEvent{})

	require.NoError(t, wm.Run())
}
