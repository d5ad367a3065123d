package xconn

import (
	"fmt"

	"github.com/leukipp/tylewm/bindings"
	"github.com/leukipp/tylewm/common"
)

// Call records one method invocation against Mock, for tests that assert
// on the sequence of X requests a scenario produced.
type Call struct {
	Name string
	Args []interface{}
}

// Mock is an in-memory, single-threaded XConn recording every call it
// receives. Tests drive it by pushing synthetic events onto Events and
// asserting against Calls afterward.
type Mock struct {
	RootId  common.Xid
	Screens []common.Rect
	Props   map[common.Xid]map[string]Prop
	Attrs   map[common.Xid]WindowAttributes
	WmStates map[common.Xid]WmState
	Mapped  map[common.Xid]bool

	Events chan XEvent
	Calls  []Call

	atoms     map[string]common.Xid
	nextAtom  common.Xid
}

// NewMock builds a Mock with the given root id and screen rectangles.
func NewMock(root common.Xid, screens []common.Rect) *Mock {
	return &Mock{
		RootId:   root,
		Screens:  append([]common.Rect(nil), screens...),
		Props:    make(map[common.Xid]map[string]Prop),
		Attrs:    make(map[common.Xid]WindowAttributes),
		WmStates: make(map[common.Xid]WmState),
		Mapped:   make(map[common.Xid]bool),
		Events:   make(chan XEvent, 64),
		atoms:    make(map[string]common.Xid),
		nextAtom: 1000,
	}
}

// Push queues a synthetic event for the next NextEvent call.
func (m *Mock) Push(e XEvent) { m.Events <- e }

func (m *Mock) record(name string, args ...interface{}) {
	m.Calls = append(m.Calls, Call{Name: name, Args: args})
}

// CallNames returns the recorded call names in order, for terse assertions.
func (m *Mock) CallNames() []string {
	out := make([]string, len(m.Calls))
	for i, c := range m.Calls {
		out[i] = c.Name
	}
	return out
}

func (m *Mock) Root() common.Xid { return m.RootId }

func (m *Mock) ScreenDetails() ([]common.Rect, error) {
	m.record("ScreenDetails")
	return m.Screens, nil
}

func (m *Mock) CursorPosition() (common.Point, error) {
	m.record("CursorPosition")
	return common.Point{}, nil
}

func (m *Mock) AtomId(name string) (common.Xid, error) {
	if id, ok := m.atoms[name]; ok {
		return id, nil
	}
	id := m.nextAtom
	m.nextAtom++
	m.atoms[name] = id
	return id, nil
}

func (m *Mock) AtomName(id common.Xid) (string, bool) {
	for name, i := range m.atoms {
		if i == id {
			return name, true
		}
	}
	return "", false
}

func (m *Mock) NextEvent() (XEvent, error) {
	e, ok := <-m.Events
	if !ok {
		return nil, fmt.Errorf("xconn: mock connection closed")
	}
	return e, nil
}

func (m *Mock) Flush() error {
	m.record("Flush")
	return nil
}

func (m *Mock) Grab(keys []bindings.KeyCode, mouse []bindings.MouseState) error {
	m.record("Grab", keys, mouse)
	return nil
}

func (m *Mock) Map(id common.Xid) error {
	m.record("Map", id)
	m.Mapped[id] = true
	return nil
}

func (m *Mock) Unmap(id common.Xid) error {
	m.record("Unmap", id)
	delete(m.Mapped, id)
	return nil
}

func (m *Mock) Kill(id common.Xid) error {
	m.record("Kill", id)
	return nil
}

func (m *Mock) Focus(id common.Xid) error {
	m.record("Focus", id)
	return nil
}

func (m *Mock) WarpPointer(id common.Xid, x, y int) error {
	m.record("WarpPointer", id, x, y)
	return nil
}

func (m *Mock) ClientGeometry(id common.Xid) (common.Rect, error) {
	m.record("ClientGeometry", id)
	return common.Rect{}, nil
}

func (m *Mock) ExistingClients() ([]common.Xid, error) {
	m.record("ExistingClients")
	return nil, nil
}

func (m *Mock) GetProp(id common.Xid, name string) (Prop, bool, error) {
	m.record("GetProp", id, name)
	p, ok := m.Props[id][name]
	return p, ok, nil
}

// SetProperty is a test-setup helper (not part of XConn) for seeding a
// client's properties before feeding events.
func (m *Mock) SetProperty(id common.Xid, name string, p Prop) {
	if m.Props[id] == nil {
		m.Props[id] = make(map[string]Prop)
	}
	m.Props[id][name] = p
}

func (m *Mock) SetProp(id common.Xid, name string, p Prop) error {
	m.record("SetProp", id, name, p)
	m.SetProperty(id, name, p)
	return nil
}

func (m *Mock) DeleteProp(id common.Xid, name string) error {
	m.record("DeleteProp", id, name)
	delete(m.Props[id], name)
	return nil
}

func (m *Mock) ListProps(id common.Xid) ([]string, error) {
	m.record("ListProps", id)
	out := make([]string, 0, len(m.Props[id]))
	for k := range m.Props[id] {
		out = append(out, k)
	}
	return out, nil
}

func (m *Mock) GetWindowAttributes(id common.Xid) (WindowAttributes, error) {
	m.record("GetWindowAttributes", id)
	return m.Attrs[id], nil
}

func (m *Mock) SetWmState(id common.Xid, state WmState) error {
	m.record("SetWmState", id, state)
	m.WmStates[id] = state
	return nil
}

func (m *Mock) SetClientAttributes(id common.Xid, attrs []ClientAttr) error {
	m.record("SetClientAttributes", id, attrs)
	return nil
}

func (m *Mock) SetClientConfig(id common.Xid, cfgs []ClientConfig) error {
	m.record("SetClientConfig", id, cfgs)
	return nil
}

func (m *Mock) SendClientMessage(msg ClientMessageEvent) error {
	m.record("SendClientMessage", msg)
	return nil
}

var _ XConn = (*Mock)(nil)
