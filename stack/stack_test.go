package stack

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func eqInt(a, b int) bool { return a == b }

func TestDifferentiateFlattenRoundTrip(t *testing.T) {
	v := []int{1, 2, 3, 4}
	s := Differentiate(v)
	require.NotNil(t, s)
	assert.Equal(t, v, s.Flatten())
	assert.Equal(t, 1, s.Focus)
}

func TestDifferentiateEmpty(t *testing.T) {
	assert.Nil(t, Differentiate[int](nil))
}

func multiset(v []int) map[int]int {
	m := map[int]int{}
	for _, x := range v {
		m[x]++
	}
	return m
}

func TestRotateUpThenDownIsIdentity(t *testing.T) {
	s := Differentiate([]int{1, 2, 3, 4, 5})
	before := *s
	s.RotateUp()
	s.RotateDown()
	assert.Equal(t, before, *s)
}

func TestRotateDownThenUpIsIdentity(t *testing.T) {
	s := Differentiate([]int{1, 2, 3, 4, 5})
	before := *s
	s.RotateDown()
	s.RotateUp()
	assert.Equal(t, before, *s)
}

func TestFilterDropsFocusMovesToNext(t *testing.T) {
	s := Differentiate([]int{1, 2, 3, 4})
	s.FocusDown()
	s.FocusDown() // focus = 3
	require.Equal(t, 3, s.Focus)

	out := Filter(s, func(x int) bool { return x != 3 })
	require.NotNil(t, out)
	assert.Equal(t, 4, out.Focus)
}

func TestFilterDropsFocusFallsBackToPrevious(t *testing.T) {
	s := Differentiate([]int{1, 2, 3})
	s.FocusDown()
	s.FocusDown() // focus = 3, nothing after it

	out := Filter(s, func(x int) bool { return x != 3 })
	require.NotNil(t, out)
	assert.Equal(t, 2, out.Focus)
}

func TestFilterNoSurvivors(t *testing.T) {
	s := Differentiate([]int{1, 2, 3})
	assert.Nil(t, Filter(s, func(int) bool { return false }))
}

// genStack builds an arbitrary non-empty Stack[int] with distinct elements.
func genStack(t *rapid.T) *Stack[int] {
	n := rapid.IntRange(1, 12).Draw(t, "n")
	focusIdx := rapid.IntRange(0, n-1).Draw(t, "focusIdx")
	vals := make([]int, n)
	for i := range vals {
		vals[i] = i
	}
	return &Stack[int]{
		Up:    append([]int(nil), vals[:focusIdx]...),
		Focus: vals[focusIdx],
		Down:  append([]int(nil), vals[focusIdx+1:]...),
	}
}

func TestStackOperationsPreserveMultiset(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := genStack(rt)
		before := multiset(s.Flatten())
		beforeLen := s.Len()

		op := rapid.SampledFrom([]string{"focusUp", "focusDown", "rotateUp", "rotateDown", "swapUp", "swapDown"}).Draw(rt, "op")
		switch op {
		case "focusUp":
			s.FocusUp()
		case "focusDown":
			s.FocusDown()
		case "rotateUp":
			s.RotateUp()
		case "rotateDown":
			s.RotateDown()
		case "swapUp":
			s.SwapUp()
		case "swapDown":
			s.SwapDown()
		}

		assert.Equal(rt, beforeLen, s.Len(), "operation %s changed length", op)
		after := multiset(s.Flatten())
		assert.Equal(rt, before, after, "operation %s changed multiset", op)
	})
}

func TestDifferentiateFlattenRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 20).Draw(rt, "n")
		v := make([]int, n)
		for i := range v {
			v[i] = i
		}
		s := Differentiate(v)
		require.NotNil(rt, s)
		got := s.Flatten()
		sort.Ints(got)
		sorted := append([]int(nil), v...)
		sort.Ints(sorted)
		assert.Equal(rt, sorted, got)
		assert.Equal(rt, v[0], s.Focus)
	})
}

func TestInsertAtIsNoOpIfPresent(t *testing.T) {
	s := Differentiate([]int{1, 2, 3})
	s.InsertAt(Head, 2, eqInt)
	assert.Equal(t, []int{1, 2, 3}, s.Flatten())
}

func TestInsertAtHeadAndTail(t *testing.T) {
	s := Differentiate([]int{2, 3})
	s.InsertAt(Head, 1, eqInt)
	assert.Equal(t, 1, s.Focus)
	assert.Equal(t, []int{1, 2, 3}, s.Flatten())

	s2 := Differentiate([]int{1, 2})
	s2.InsertAt(Tail, 3, eqInt)
	assert.Equal(t, 3, s2.Focus)
	assert.Equal(t, []int{1, 2, 3}, s2.Flatten())
}
