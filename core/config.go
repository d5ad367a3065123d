// Package core wires the pure state model, the layout engine and an XConn
// together: Config fixes the operational parameters, State is what the
// event loop actually drives, and the refresh engine (ModifyAndRefresh)
// is the only path by which a StackSet mutation reaches the X server.
//
// The refresh engine and event handler table are grounded on
// original_source/src/core/manage.rs and original_source/src/core/handle.rs.
package core

import (
	"github.com/leukipp/tylewm/bindings"
	"github.com/leukipp/tylewm/common"
	"github.com/leukipp/tylewm/hooks"
	"github.com/leukipp/tylewm/layout"
	"github.com/leukipp/tylewm/xconn"

	log "github.com/sirupsen/logrus"
)

type (
	KeyBindings   = bindings.KeyBindings[State]
	MouseBindings = bindings.MouseBindings[State, xconn.MouseEvent]

	StartupHook = hooks.StartupHook[State, xconn.XConn]
	EventHook   = hooks.EventHook[State, xconn.XConn, xconn.XEvent]
	ManageHook  = hooks.ManageHook[State, xconn.XConn]
	RefreshHook = hooks.RefreshHook[State, xconn.XConn]
	LayoutHook  = hooks.LayoutHook
)

// Config fixes every operational parameter before the manager runs. The
// zero value is not usable; build one with NewConfig.
type Config struct {
	Tags          []string
	InvisibleTags []string
	NewLayouts    func() *layout.LayoutStack

	BorderNormal  uint32
	BorderFocused uint32
	BorderWidth   uint32

	FocusFollowsMouse bool
	FloatingClasses   []string

	KeyBindings   KeyBindings
	MouseBindings MouseBindings

	StartupHook StartupHook
	EventHook   EventHook
	ManageHook  ManageHook
	LayoutHook  LayoutHook
	RefreshHook RefreshHook
}

// NewConfig builds a Config with no-op hooks and empty bindings, ready for
// the caller to fill in tags, layouts and bindings.
func NewConfig(tags []string, newLayouts func() *layout.LayoutStack) *Config {
	return &Config{
		Tags:          tags,
		NewLayouts:    newLayouts,
		BorderNormal:  0x444444ff,
		BorderFocused: 0x88aaffff,
		BorderWidth:   2,
		KeyBindings:   KeyBindings{},
		MouseBindings: MouseBindings{},
		StartupHook:   func(*State, xconn.XConn) error { return nil },
		EventHook:     func(*State, xconn.XConn, xconn.XEvent) (bool, error) { return true, nil },
		ManageHook:    func(*State, xconn.XConn, common.Xid) error { return nil },
		RefreshHook:   func(*State, xconn.XConn) error { return nil },
	}
}

// ComposeOrSetStartupHook appends h to the existing startup hook stack.
func (c *Config) ComposeOrSetStartupHook(h StartupHook) {
	if c.StartupHook == nil {
		c.StartupHook = h
		return
	}
	c.StartupHook = c.StartupHook.Then(h)
}

// ComposeOrSetEventHook appends h to the existing event hook stack.
func (c *Config) ComposeOrSetEventHook(h EventHook) {
	if c.EventHook == nil {
		c.EventHook = h
		return
	}
	c.EventHook = c.EventHook.Then(h)
}

// ComposeOrSetManageHook appends h to the existing manage hook stack.
func (c *Config) ComposeOrSetManageHook(h ManageHook) {
	if c.ManageHook == nil {
		c.ManageHook = h
		return
	}
	c.ManageHook = c.ManageHook.Then(h)
}

// ComposeOrSetLayoutHook appends h to the existing layout hook stack.
func (c *Config) ComposeOrSetLayoutHook(h LayoutHook) {
	c.LayoutHook = c.LayoutHook.Then(h)
}

// ComposeOrSetRefreshHook appends h to the existing refresh hook stack.
func (c *Config) ComposeOrSetRefreshHook(h RefreshHook) {
	if c.RefreshHook == nil {
		c.RefreshHook = h
		return
	}
	c.RefreshHook = c.RefreshHook.Then(h)
}

// IsFloatingClass reports whether class is configured to always float.
func (c *Config) IsFloatingClass(class string) bool {
	return common.IsInList(class, c.FloatingClasses)
}

func (c *Config) logFields() log.Fields {
	return log.Fields{"tags": c.Tags, "borderWidth": c.BorderWidth}
}
