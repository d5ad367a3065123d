package xconn

import (
	"github.com/leukipp/tylewm/bindings"
	"github.com/leukipp/tylewm/common"
)

// XEvent is the tagged union of every event kind the core's handlers
// dispatch on (see the type switch in core/handlers.go). Concrete types below are
// the only valid dynamic types NextEvent may return.
type XEvent interface{ isXEvent() }

type MapRequestEvent struct{ Id common.Xid }

func (MapRequestEvent) isXEvent() {}

type UnmapNotifyEvent struct{ Id common.Xid }

func (UnmapNotifyEvent) isXEvent() {}

type DestroyEvent struct{ Id common.Xid }

func (DestroyEvent) isXEvent() {}

// ConfigureRequestEvent carries the geometry an unmanaged window asked for.
type ConfigureRequestEvent struct {
	Id      common.Xid
	Rect    common.Rect
	HasRect bool
}

func (ConfigureRequestEvent) isXEvent() {}

// ConfigureNotifyEvent signals a root or client geometry change; IsRoot
// distinguishes a screen-set change from an ordinary client resize.
type ConfigureNotifyEvent struct {
	Id     common.Xid
	IsRoot bool
}

func (ConfigureNotifyEvent) isXEvent() {}

type KeyPressEvent struct{ Code bindings.KeyCode }

func (KeyPressEvent) isXEvent() {}

// MouseEvent carries the button/modifier state plus the client and root
// position a pointer event fired over.
type MouseEvent struct {
	State bindings.MouseState
	Id    common.Xid
	Point common.Point
}

func (MouseEvent) isXEvent() {}

type EnterEvent struct {
	Id    common.Xid
	Point common.Point
}

func (EnterEvent) isXEvent() {}

type LeaveEvent struct {
	Id    common.Xid
	Point common.Point
}

func (LeaveEvent) isXEvent() {}

type FocusInEvent struct{ Id common.Xid }

func (FocusInEvent) isXEvent() {}

type PropertyNotifyEvent struct {
	Id   common.Xid
	Atom string
}

func (PropertyNotifyEvent) isXEvent() {}

// ClientMessageEvent carries an unparsed ClientMessage; Dtype is the
// message-type atom's name and Data its raw 32-bit payload words.
type ClientMessageEvent struct {
	Id    common.Xid
	Dtype string
	Data  [5]uint32
}

func (ClientMessageEvent) isXEvent() {}

type ScreenChangeEvent struct{}

func (ScreenChangeEvent) isXEvent() {}

type RandrNotifyEvent struct{}

func (RandrNotifyEvent) isXEvent() {}

type MappingNotifyEvent struct{}

func (MappingNotifyEvent) isXEvent() {}
