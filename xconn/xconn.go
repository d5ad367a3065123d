package xconn

import (
	"github.com/leukipp/tylewm/bindings"
	"github.com/leukipp/tylewm/common"
)

// XConn is everything the core needs from an X connection: connection and
// metadata, event plumbing, client lifecycle, and property/attribute
// access. All methods are callable from the single event thread; NextEvent
// and Flush are the only ones that block.
type XConn interface {
	// Connection and metadata.
	Root() common.Xid
	ScreenDetails() ([]common.Rect, error)
	CursorPosition() (common.Point, error)
	AtomId(name string) (common.Xid, error)
	AtomName(id common.Xid) (string, bool)

	// Event plumbing.
	NextEvent() (XEvent, error)
	Flush() error
	Grab(keys []bindings.KeyCode, mouse []bindings.MouseState) error

	// Client lifecycle.
	Map(id common.Xid) error
	Unmap(id common.Xid) error
	Kill(id common.Xid) error
	Focus(id common.Xid) error
	WarpPointer(id common.Xid, x, y int) error
	ClientGeometry(id common.Xid) (common.Rect, error)
	ExistingClients() ([]common.Xid, error)

	// Properties and attributes.
	GetProp(id common.Xid, name string) (Prop, bool, error)
	SetProp(id common.Xid, name string, p Prop) error
	DeleteProp(id common.Xid, name string) error
	ListProps(id common.Xid) ([]string, error)
	GetWindowAttributes(id common.Xid) (WindowAttributes, error)
	SetWmState(id common.Xid, state WmState) error
	SetClientAttributes(id common.Xid, attrs []ClientAttr) error
	SetClientConfig(id common.Xid, cfgs []ClientConfig) error
	SendClientMessage(msg ClientMessageEvent) error
}
