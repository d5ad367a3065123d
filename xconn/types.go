// Package xconn defines the XConn contract the core drives the X server
// through, the property/event/attribute types that contract trades in, a
// real implementation backed by jezek/xgb and jezek/xgbutil, and a
// recording mock used by tests.
package xconn

import "github.com/leukipp/tylewm/common"

// WmState is the ICCCM WM_STATE value a client is set to.
type WmState int

const (
	Withdrawn WmState = 0
	Normal    WmState = 1
	Iconic    WmState = 3
)

// PropKind discriminates which field of Prop is populated.
type PropKind int

const (
	PropAtoms PropKind = iota
	PropCardinals
	PropWindows
	PropStrings
	PropWmHints
	PropWmNormalHints
	PropBytes
)

// WmHints mirrors the fields of ICCCM WM_HINTS the core consumes.
type WmHints struct {
	Flags        uint32
	AcceptsInput bool
	InitialState WmState
	IconPixmap   common.Xid
	IconWindow   common.Xid
}

// WmNormalHints mirrors the size-constraint fields of ICCCM WM_NORMAL_HINTS.
type WmNormalHints struct {
	Flags uint32
	Min   common.Rect
	Max   common.Rect
	Base  common.Rect
}

// Prop is a tagged union over the X property types the core reads or
// writes. Only the field matching Kind is meaningful.
type Prop struct {
	Kind          PropKind
	Atoms         []common.Xid
	Cardinals     []uint32
	Windows       []common.Xid
	Strings       []string
	WmHints       *WmHints
	WmNormalHints *WmNormalHints
	Bytes         []byte
}

// WindowAttributes is the subset of XGetWindowAttributes the core needs.
type WindowAttributes struct {
	OverrideRedirect bool
	MapState         uint8
	WindowClass      uint16
}

// ClientAttr is one of the attribute-setting requests SetClientAttributes
// translates into transport-level masks.
type ClientAttr interface{ isClientAttr() }

type BorderColor uint32          // RGBA
func (BorderColor) isClientAttr() {}

// ClientEventMask asks the transport to select EnterWindow, LeaveWindow,
// PropertyChange and StructureNotify on the client.
type ClientEventMask struct{}

func (ClientEventMask) isClientAttr() {}

// RootEventMask asks the transport to select PropertyChange,
// SubstructureRedirect, SubstructureNotify and ButtonMotion on the root.
type RootEventMask struct{}

func (RootEventMask) isClientAttr() {}

// ClientConfig is one of the configure-request fields SetClientConfig
// applies to a window.
type ClientConfig interface{ isClientConfig() }

type BorderPx uint32

func (BorderPx) isClientConfig() {}

type Position common.Rect

func (Position) isClientConfig() {}

// StackAbove asks the transport to raise the client above its siblings.
type StackAbove struct{}

func (StackAbove) isClientConfig() {}
