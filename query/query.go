// Package query implements the predicate type manage hooks and scratchpad
// matching use to decide whether a client matches some criterion, plus the
// small per-call property cache that lets combinators avoid refetching the
// same X property once per leaf predicate.
//
// Grounded on original_source/src/x/query.rs's Query trait and its
// Title/AppName/ClassName/StringProperty/AndQuery/OrQuery/NotQuery/
// AnyQuery/AllQuery family, re-expressed as closures over xconn.XConn
// rather than boxed trait objects, the idiomatic Go equivalent of a
// dynamic predicate.
package query

import (
	"strings"

	"github.com/leukipp/tylewm/common"
	"github.com/leukipp/tylewm/xconn"
)

// Query decides whether id matches some criterion, consulting conn as
// needed.
type Query func(id common.Xid, conn xconn.XConn) (bool, error)

// Title matches a client whose _NET_WM_NAME equals s exactly; WM_NAME is
// compared instead only when _NET_WM_NAME is absent.
func Title(s string) Query {
	return func(id common.Xid, conn xconn.XConn) (bool, error) {
		p, ok, err := conn.GetProp(id, "_NET_WM_NAME")
		if err != nil {
			return false, err
		}
		if !ok {
			p, ok, err = conn.GetProp(id, "WM_NAME")
			if err != nil {
				return false, err
			}
		}
		return ok && len(p.Strings) > 0 && p.Strings[0] == s, nil
	}
}

// AppName matches a client whose WM_CLASS instance name equals s.
func AppName(s string) Query {
	return classField(s, 0)
}

// ClassName matches a client whose WM_CLASS class name equals s.
func ClassName(s string) Query {
	return classField(s, 1)
}

func classField(s string, idx int) Query {
	return func(id common.Xid, conn xconn.XConn) (bool, error) {
		p, ok, err := conn.GetProp(id, "WM_CLASS")
		if err != nil {
			return false, err
		}
		return ok && len(p.Strings) > idx && p.Strings[idx] == s, nil
	}
}

// StringProperty matches a client whose string property name equals s
// (joining multi-value string properties with a comma for comparison).
func StringProperty(name, s string) Query {
	return func(id common.Xid, conn xconn.XConn) (bool, error) {
		p, ok, err := conn.GetProp(id, name)
		if err != nil {
			return false, err
		}
		return ok && strings.Join(p.Strings, ",") == s, nil
	}
}

// And matches iff every query matches.
func And(qs ...Query) Query {
	return func(id common.Xid, conn xconn.XConn) (bool, error) {
		for _, q := range qs {
			ok, err := q(id, conn)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	}
}

// Or matches iff at least one query matches.
func Or(qs ...Query) Query {
	return func(id common.Xid, conn xconn.XConn) (bool, error) {
		for _, q := range qs {
			ok, err := q(id, conn)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	}
}

// Not negates q.
func Not(q Query) Query {
	return func(id common.Xid, conn xconn.XConn) (bool, error) {
		ok, err := q(id, conn)
		return !ok, err
	}
}

// All is an alias for And taking a slice, for callers building the query
// list dynamically.
func All(qs []Query) Query { return And(qs...) }

// Any is an alias for Or taking a slice.
func Any(qs []Query) Query { return Or(qs...) }

// PropCache memoizes GetProp results for a single client across the
// lifetime of one manage-hook evaluation, so And/All combinators querying
// WM_CLASS/WM_NAME/_NET_WM_WINDOW_TYPE back to back issue one X request per
// property instead of one per leaf predicate.
type PropCache struct {
	conn  xconn.XConn
	id    common.Xid
	cache map[string]cachedProp
}

type cachedProp struct {
	prop  xconn.Prop
	found bool
}

// NewPropCache wraps conn for client id.
func NewPropCache(conn xconn.XConn, id common.Xid) *PropCache {
	return &PropCache{conn: conn, id: id, cache: make(map[string]cachedProp)}
}

// Get fetches name, from the cache if already requested this call.
func (c *PropCache) Get(name string) (xconn.Prop, bool, error) {
	if v, ok := c.cache[name]; ok {
		return v.prop, v.found, nil
	}
	p, ok, err := c.conn.GetProp(c.id, name)
	if err != nil {
		return xconn.Prop{}, false, err
	}
	c.cache[name] = cachedProp{prop: p, found: ok}
	return p, ok, nil
}

// Conn exposes a xconn.XConn view backed by this cache's Get, for use as
// the conn argument to an ordinary Query so cached lookups are transparent
// to query authors.
func (c *PropCache) Conn() xconn.XConn {
	return &cachedConn{XConn: c.conn, cache: c}
}

type cachedConn struct {
	xconn.XConn
	cache *PropCache
}

func (cc *cachedConn) GetProp(id common.Xid, name string) (xconn.Prop, bool, error) {
	if id != cc.cache.id {
		return cc.XConn.GetProp(id, name)
	}
	return cc.cache.Get(name)
}
