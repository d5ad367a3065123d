package store

import (
	"testing"

	"github.com/leukipp/tylewm/common"
	"github.com/leukipp/tylewm/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freshLayouts() *layout.LayoutStack {
	return layout.NewLayoutStack(layout.Monocle{}, layout.Grid{})
}

func newTestStackSet(t *testing.T) *StackSet {
	t.Helper()
	ss, err := NewStackSet(
		[]string{"1", "2", "3"},
		[]common.Rect{{X: 0, Y: 0, Width: 1000, Height: 800}},
		freshLayouts,
		nil,
	)
	require.NoError(t, err)
	return ss
}

func TestNewStackSetRequiresScreens(t *testing.T) {
	_, err := NewStackSet([]string{"1"}, nil, freshLayouts, nil)
	assert.Error(t, err)
}

func TestNewStackSetRequiresEnoughTags(t *testing.T) {
	_, err := NewStackSet([]string{"1"}, []common.Rect{{}, {}}, freshLayouts, nil)
	assert.Error(t, err)
}

func TestInsertThenCurrentClient(t *testing.T) {
	ss := newTestStackSet(t)
	ss.Insert(10)
	c, ok := ss.CurrentClient()
	require.True(t, ok)
	assert.Equal(t, common.Xid(10), c)
}

func TestEveryTagUniqueAcrossScreensAndHidden(t *testing.T) {
	ss := newTestStackSet(t)
	seen := map[string]int{}
	for _, w := range ss.IterWorkspaces() {
		seen[w.Tag]++
	}
	for tag, count := range seen {
		assert.Equal(t, 1, count, "tag %q appears %d times", tag, count)
	}
}

func TestEveryClientInAtMostOneWorkspace(t *testing.T) {
	ss := newTestStackSet(t)
	ss.Insert(10)
	ss.Insert(11)
	ss.FocusTag("2")
	ss.Insert(12)

	seen := map[common.Xid]int{}
	for _, w := range ss.IterWorkspaces() {
		for _, c := range w.Clients() {
			seen[c]++
		}
	}
	for id, count := range seen {
		assert.Equal(t, 1, count, "client %v appears on %d workspaces", id, count)
	}
}

func TestFocusClientThenCurrentClient(t *testing.T) {
	ss := newTestStackSet(t)
	ss.Insert(10)
	ss.Insert(11)
	ss.FocusTag("2")
	ss.Insert(20)

	ss.FocusClient(10)
	c, ok := ss.CurrentClient()
	require.True(t, ok)
	assert.Equal(t, common.Xid(10), c)
	assert.Equal(t, "1", ss.CurrentTag())
}

func TestFocusClientUnknownIsNoOp(t *testing.T) {
	ss := newTestStackSet(t)
	ss.Insert(10)
	before := ss.CurrentTag()
	ss.FocusClient(999)
	assert.Equal(t, before, ss.CurrentTag())
}

func TestFocusTagKnownTag(t *testing.T) {
	ss := newTestStackSet(t)
	ss.FocusTag("2")
	assert.Equal(t, "2", ss.CurrentTag())
}

func TestFocusTagUnknownIsNoOp(t *testing.T) {
	ss := newTestStackSet(t)
	ss.FocusTag("nope")
	assert.Equal(t, "1", ss.CurrentTag())
}

func TestFocusTagSwapsHiddenWithFocused(t *testing.T) {
	ss := newTestStackSet(t)
	ss.Insert(10) // tag "1"
	ss.FocusTag("2")
	ss.Insert(20) // tag "2"

	ss.FocusTag("1")
	assert.Equal(t, "1", ss.CurrentTag())
	assert.Contains(t, ss.CurrentWorkspace().Clients(), common.Xid(10))

	tag, found := ss.TagForClient(20)
	require.True(t, found)
	assert.Equal(t, "2", tag)
}

func TestRemoveClientDropsFloatingEntry(t *testing.T) {
	ss := newTestStackSet(t)
	ss.Insert(10)
	ss.Float(10, common.Rect{X: 1, Y: 1, Width: 2, Height: 2})
	require.Contains(t, ss.Floating, common.Xid(10))

	ss.RemoveClient(10)
	assert.NotContains(t, ss.Floating, common.Xid(10))
	assert.False(t, ss.ContainsClient(10))
}

func TestRemoveFocusedClientMovesFocusToNext(t *testing.T) {
	ss := newTestStackSet(t)
	ss.Insert(10)
	ss.Insert(11)
	ss.Insert(12) // focus: 12, up: [10, 11]

	ss.FocusClient(11)
	ss.RemoveClient(11)

	c, ok := ss.CurrentClient()
	require.True(t, ok)
	assert.Equal(t, common.Xid(12), c)
}

func TestMoveClientToTagUnknownTagIsNoOp(t *testing.T) {
	ss := newTestStackSet(t)
	ss.Insert(10)
	ss.MoveClientToTag(10, "nope")
	tag, _ := ss.TagForClient(10)
	assert.Equal(t, "1", tag)
}

func TestMoveClientToTagRelocates(t *testing.T) {
	ss := newTestStackSet(t)
	ss.Insert(10)
	ss.MoveClientToTag(10, "2")

	tag, found := ss.TagForClient(10)
	require.True(t, found)
	assert.Equal(t, "2", tag)
}

func TestFloatRequiresManagedClient(t *testing.T) {
	ss := newTestStackSet(t)
	ss.Float(999, common.Rect{Width: 1, Height: 1})
	assert.NotContains(t, ss.Floating, common.Xid(999))
}

func TestOrderedWorkspacesHidesInvisibleTags(t *testing.T) {
	ss, err := NewStackSet(
		[]string{"1", "2", "scratch"},
		[]common.Rect{{Width: 100, Height: 100}},
		freshLayouts,
		[]string{"scratch"},
	)
	require.NoError(t, err)

	tags := ss.OrderedTags()
	assert.Equal(t, []string{"1", "2"}, tags)
}
