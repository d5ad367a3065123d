package hooks

import (
	"errors"
	"testing"

	"github.com/leukipp/tylewm/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeState struct{ order []string }
type fakeConn struct{}

func TestStartupHookThenRunsBothInOrder(t *testing.T) {
	var h StartupHook[fakeState, fakeConn] = func(s *fakeState, c fakeConn) error {
		s.order = append(s.order, "a")
		return nil
	}
	h = h.Then(func(s *fakeState, c fakeConn) error {
		s.order = append(s.order, "b")
		return nil
	})
	s := &fakeState{}
	require.NoError(t, h(s, fakeConn{}))
	assert.Equal(t, []string{"a", "b"}, s.order)
}

func TestStartupHookThenStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	var h StartupHook[fakeState, fakeConn] = func(s *fakeState, c fakeConn) error { return boom }
	ran := false
	h = h.Then(func(s *fakeState, c fakeConn) error {
		ran = true
		return nil
	})
	assert.ErrorIs(t, h(&fakeState{}, fakeConn{}), boom)
	assert.False(t, ran)
}

func TestEventHookThenSkipsOnFalse(t *testing.T) {
	var h EventHook[fakeState, fakeConn, int] = func(s *fakeState, c fakeConn, e int) (bool, error) {
		return false, nil
	}
	ran := false
	h = h.Then(func(s *fakeState, c fakeConn, e int) (bool, error) {
		ran = true
		return true, nil
	})
	cont, err := h(&fakeState{}, fakeConn{}, 1)
	require.NoError(t, err)
	assert.False(t, cont)
	assert.False(t, ran)
}

func TestEventHookThenRunsNextOnTrue(t *testing.T) {
	var h EventHook[fakeState, fakeConn, int] = func(s *fakeState, c fakeConn, e int) (bool, error) {
		return true, nil
	}
	ran := false
	h = h.Then(func(s *fakeState, c fakeConn, e int) (bool, error) {
		ran = true
		return true, nil
	})
	cont, err := h(&fakeState{}, fakeConn{}, 1)
	require.NoError(t, err)
	assert.True(t, cont)
	assert.True(t, ran)
}

func TestManageHookThenRunsBoth(t *testing.T) {
	var h ManageHook[fakeState, fakeConn] = func(s *fakeState, c fakeConn, id common.Xid) error {
		s.order = append(s.order, "first")
		return nil
	}
	h = h.Then(func(s *fakeState, c fakeConn, id common.Xid) error {
		s.order = append(s.order, "second")
		return nil
	})
	s := &fakeState{}
	require.NoError(t, h(s, fakeConn{}, common.Xid(1)))
	assert.Equal(t, []string{"first", "second"}, s.order)
}

func TestLayoutHookThenComposesInitialOuterThenInner(t *testing.T) {
	outer := LayoutHook{TransformInitial: func(r common.Rect) common.Rect {
		r.Width += 1
		return r
	}}
	inner := LayoutHook{TransformInitial: func(r common.Rect) common.Rect {
		r.Width *= 2
		return r
	}}
	composed := outer.Then(inner)
	got := composed.TransformInitial(common.Rect{Width: 10})
	assert.Equal(t, 22, got.Width)
}

func TestLayoutHookThenComposesPositionsInnerResultThenOuter(t *testing.T) {
	outer := LayoutHook{TransformPositions: func(r common.Rect, p []Position) []Position {
		return append(p, Position{Id: 2})
	}}
	inner := LayoutHook{TransformPositions: func(r common.Rect, p []Position) []Position {
		return append(p, Position{Id: 1})
	}}
	composed := outer.Then(inner)
	got := composed.TransformPositions(common.Rect{}, nil)
	require.Len(t, got, 2)
	assert.Equal(t, common.Xid(1), got[0].Id)
	assert.Equal(t, common.Xid(2), got[1].Id)
}

func TestLayoutHookThenToleratesNilFuncs(t *testing.T) {
	var zero LayoutHook
	composed := zero.Then(zero)
	assert.Equal(t, common.Rect{Width: 5}, composed.TransformInitial(common.Rect{Width: 5}))
	assert.Nil(t, composed.TransformPositions(common.Rect{}, nil))
}
