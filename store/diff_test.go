package store

import (
	"testing"

	"github.com/leukipp/tylewm/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffOfSnapshotWithItselfIsEmpty(t *testing.T) {
	ss := newTestStackSet(t)
	ss.Insert(10)
	snap := NewSnapshot(ss, []Position{{Id: 10, Rect: common.Rect{Width: 1000, Height: 800}}}, nil)

	diff := NewDiff(snap, snap)
	assert.True(t, diff.IsEmpty())
}

func TestDiffNewClientsAfterInsert(t *testing.T) {
	ss := newTestStackSet(t)
	before := NewSnapshot(ss, nil, nil)

	ss.Insert(10)
	after := NewSnapshot(ss, []Position{{Id: 10, Rect: common.Rect{Width: 1000, Height: 800}}}, nil)

	diff := NewDiff(before, after)
	assert.Contains(t, diff.NewClients(), common.Xid(10))
	assert.Empty(t, diff.WithdrawnClients())
}

func TestDiffWithdrawnAndHiddenClientsAfterRemove(t *testing.T) {
	ss := newTestStackSet(t)
	ss.Insert(10)
	before := NewSnapshot(ss, []Position{{Id: 10, Rect: common.Rect{Width: 1000, Height: 800}}}, nil)

	ss.RemoveClient(10)
	after := NewSnapshot(ss, nil, nil)

	diff := NewDiff(before, after)
	assert.Contains(t, diff.WithdrawnClients(), common.Xid(10))
	assert.Contains(t, diff.HiddenClients(), common.Xid(10))
}

func TestDiffFocusedClientChanged(t *testing.T) {
	ss := newTestStackSet(t)
	ss.Insert(10)
	before := NewSnapshot(ss, nil, nil)

	ss.Insert(11)
	after := NewSnapshot(ss, nil, nil)

	diff := NewDiff(before, after)
	assert.True(t, diff.FocusedClientChanged())
	require.NotNil(t, after.FocusedClient)
	assert.Equal(t, common.Xid(11), *after.FocusedClient)
}
