package query

import (
	"testing"

	"github.com/leukipp/tylewm/common"
	"github.com/leukipp/tylewm/xconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock() *xconn.Mock {
	return xconn.NewMock(common.Xid(1), []common.Rect{{Width: 1920, Height: 1080}})
}

func TestTitlePrefersNetWmName(t *testing.T) {
	m := newMock()
	m.SetProperty(2, "_NET_WM_NAME", xconn.Prop{Kind: xconn.PropStrings, Strings: []string{"Terminal"}})
	m.SetProperty(2, "WM_NAME", xconn.Prop{Kind: xconn.PropStrings, Strings: []string{"xterm"}})
	ok, err := Title("Terminal")(2, m)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestTitleFallsBackToWmName(t *testing.T) {
	m := newMock()
	m.SetProperty(2, "WM_NAME", xconn.Prop{Kind: xconn.PropStrings, Strings: []string{"xterm"}})
	ok, err := Title("xterm")(2, m)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAppNameAndClassNameReadDistinctFields(t *testing.T) {
	m := newMock()
	m.SetProperty(2, "WM_CLASS", xconn.Prop{Kind: xconn.PropStrings, Strings: []string{"urxvt", "URxvt"}})

	ok, err := AppName("urxvt")(2, m)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = ClassName("URxvt")(2, m)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = ClassName("urxvt")(2, m)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAndRequiresEveryQuery(t *testing.T) {
	m := newMock()
	m.SetProperty(2, "WM_CLASS", xconn.Prop{Kind: xconn.PropStrings, Strings: []string{"a", "Dialog"}})
	q := And(ClassName("Dialog"), AppName("a"))
	ok, err := q(2, m)
	require.NoError(t, err)
	assert.True(t, ok)

	q2 := And(ClassName("Dialog"), AppName("nope"))
	ok, err = q2(2, m)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOrShortCircuitsOnFirstMatch(t *testing.T) {
	m := newMock()
	m.SetProperty(2, "WM_CLASS", xconn.Prop{Kind: xconn.PropStrings, Strings: []string{"a", "Dialog"}})
	q := Or(ClassName("Dialog"), AppName("anything"))
	ok, err := q(2, m)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNotNegates(t *testing.T) {
	m := newMock()
	m.SetProperty(2, "WM_CLASS", xconn.Prop{Kind: xconn.PropStrings, Strings: []string{"a", "Dialog"}})
	ok, err := Not(ClassName("Dialog"))(2, m)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAllAndAnyWrapSlices(t *testing.T) {
	m := newMock()
	m.SetProperty(2, "WM_CLASS", xconn.Prop{Kind: xconn.PropStrings, Strings: []string{"a", "Dialog"}})
	ok, err := All([]Query{ClassName("Dialog"), AppName("a")})(2, m)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Any([]Query{ClassName("nope"), AppName("a")})(2, m)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPropCacheServesRepeatGetsWithoutRefetch(t *testing.T) {
	m := newMock()
	m.SetProperty(2, "WM_CLASS", xconn.Prop{Kind: xconn.PropStrings, Strings: []string{"a", "Dialog"}})

	cache := NewPropCache(m, 2)
	_, _, err := cache.Get("WM_CLASS")
	require.NoError(t, err)
	_, _, err = cache.Get("WM_CLASS")
	require.NoError(t, err)

	calls := 0
	for _, c := range m.CallNames() {
		if c == "GetProp" {
			calls++
		}
	}
	assert.Equal(t, 1, calls)
}

func TestPropCacheConnTransparentlyServesCachedClient(t *testing.T) {
	m := newMock()
	m.SetProperty(2, "WM_CLASS", xconn.Prop{Kind: xconn.PropStrings, Strings: []string{"a", "Dialog"}})
	cache := NewPropCache(m, 2)

	ok, err := ClassName("Dialog")(2, cache.Conn())
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = AppName("a")(2, cache.Conn())
	require.NoError(t, err)
	assert.True(t, ok)

	calls := 0
	for _, c := range m.CallNames() {
		if c == "GetProp" {
			calls++
		}
	}
	assert.Equal(t, 1, calls)
}

func TestPropCacheConnPassesThroughForOtherClients(t *testing.T) {
	m := newMock()
	m.SetProperty(3, "WM_CLASS", xconn.Prop{Kind: xconn.PropStrings, Strings: []string{"b", "Other"}})
	cache := NewPropCache(m, 2)

	ok, err := ClassName("Other")(3, cache.Conn())
	require.NoError(t, err)
	assert.True(t, ok)
}
