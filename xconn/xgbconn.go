package xconn

import (
	"fmt"
	"sync"

	"github.com/jezek/xgb/randr"
	"github.com/jezek/xgb/xproto"

	"github.com/jezek/xgbutil"
	"github.com/jezek/xgbutil/ewmh"
	"github.com/jezek/xgbutil/icccm"
	"github.com/jezek/xgbutil/xevent"
	"github.com/jezek/xgbutil/xprop"
	"github.com/jezek/xgbutil/xwindow"

	"github.com/leukipp/tylewm/bindings"
	"github.com/leukipp/tylewm/common"

	log "github.com/sirupsen/logrus"
)

// XGBConn is the production XConn, backed by jezek/xgb and jezek/xgbutil:
// xgbutil for the connection and property helpers, raw xgb/randr for
// screen detection, xevent for the event pump.
type XGBConn struct {
	x    *xgbutil.XUtil
	root common.Xid

	atomNames sync.Map // common.Xid -> string, populated lazily by AtomName

	events chan XEvent
}

// Dial connects to the X server named by display (an empty string defers
// to xgbutil's own default resolution), selects the
// root event mask the core requires, and starts the RandR screen-change
// monitor.
func Dial(display string) (*XGBConn, error) {
	x, err := xgbutil.NewConnDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("xconn: connect to X server: %w", err)
	}

	if err := randr.Init(x.Conn()); err != nil {
		log.WithFields(log.Fields{"error": err}).Warn("RandR extension unavailable, screen hot-plug disabled")
	} else if err := randr.SelectInputChecked(x.Conn(), x.RootWin(),
		randr.NotifyMaskScreenChange|randr.NotifyMaskOutputChange).Check(); err != nil {
		log.WithFields(log.Fields{"error": err}).Warn("RandR SelectInput failed")
	}

	c := &XGBConn{
		x:      x,
		root:   common.Xid(x.RootWin()),
		events: make(chan XEvent, 256),
	}
	c.attachRootEvents()
	return c, nil
}

func (c *XGBConn) attachRootEvents() {
	root := xwindow.New(c.x, c.x.RootWin())
	if err := root.Listen(
		xproto.EventMaskSubstructureRedirect | xproto.EventMaskSubstructureNotify |
			xproto.EventMaskPropertyChange | xproto.EventMaskButtonMotion,
	); err != nil {
		log.WithFields(log.Fields{"error": err}).Fatal("Failed to select root event mask")
	}

	xevent.MapRequestFun(func(_ *xgbutil.XUtil, e xevent.MapRequestEvent) {
		c.events <- MapRequestEvent{Id: common.Xid(e.Window)}
	}).Connect(c.x, c.x.RootWin())

	xevent.UnmapNotifyFun(func(_ *xgbutil.XUtil, e xevent.UnmapNotifyEvent) {
		c.events <- UnmapNotifyEvent{Id: common.Xid(e.Window)}
	}).Connect(c.x, c.x.RootWin())

	xevent.DestroyNotifyFun(func(_ *xgbutil.XUtil, e xevent.DestroyNotifyEvent) {
		c.events <- DestroyEvent{Id: common.Xid(e.Window)}
	}).Connect(c.x, c.x.RootWin())

	xevent.ConfigureRequestFun(func(_ *xgbutil.XUtil, e xevent.ConfigureRequestEvent) {
		c.events <- ConfigureRequestEvent{
			Id: common.Xid(e.Window),
			Rect: common.Rect{
				X: int(e.X), Y: int(e.Y), Width: int(e.Width), Height: int(e.Height),
			},
			HasRect: true,
		}
	}).Connect(c.x, c.x.RootWin())

	xevent.ConfigureNotifyFun(func(_ *xgbutil.XUtil, e xevent.ConfigureNotifyEvent) {
		c.events <- ConfigureNotifyEvent{Id: common.Xid(e.Window), IsRoot: e.Window == c.x.RootWin()}
	}).Connect(c.x, c.x.RootWin())

	xevent.PropertyNotifyFun(func(_ *xgbutil.XUtil, e xevent.PropertyNotifyEvent) {
		name, _ := xprop.AtomName(c.x, e.Atom)
		c.events <- PropertyNotifyEvent{Id: common.Xid(e.Window), Atom: name}
	}).Connect(c.x, c.x.RootWin())

	xevent.ClientMessageFun(func(_ *xgbutil.XUtil, e xevent.ClientMessageEvent) {
		name, _ := xprop.AtomName(c.x, e.Type)
		var data [5]uint32
		copy(data[:], e.Data.Data32)
		c.events <- ClientMessageEvent{Id: common.Xid(e.Window), Dtype: name, Data: data}
	}).Connect(c.x, c.x.RootWin())

	xevent.MappingNotifyFun(func(_ *xgbutil.XUtil, _ xevent.MappingNotifyEvent) {
		c.events <- MappingNotifyEvent{}
	}).Connect(c.x, c.x.RootWin())

	go c.pumpRandr()
	go xevent.Main(c.x)
}

// pumpRandr forwards RandR screen/output-change events into the unified
// event channel as ScreenChangeEvent, treated by core exactly like a root
// ConfigureNotify.
func (c *XGBConn) pumpRandr() {
	for {
		reply, err := c.x.Conn().WaitForEvent()
		if err != nil || reply == nil {
			return
		}
		switch reply.(type) {
		case randr.ScreenChangeNotifyEvent, randr.NotifyEvent:
			c.events <- ScreenChangeEvent{}
		}
	}
}

func (c *XGBConn) Root() common.Xid { return c.root }

func (c *XGBConn) ScreenDetails() ([]common.Rect, error) {
	resources, err := randr.GetScreenResources(c.x.Conn(), c.x.RootWin()).Reply()
	if err != nil {
		return nil, fmt.Errorf("xconn: get screen resources: %w", err)
	}

	var rects []common.Rect
	for _, output := range resources.Outputs {
		oinfo, err := randr.GetOutputInfo(c.x.Conn(), output, 0).Reply()
		if err != nil || oinfo.Connection != randr.ConnectionConnected || oinfo.Crtc == 0 {
			continue
		}
		cinfo, err := randr.GetCrtcInfo(c.x.Conn(), oinfo.Crtc, 0).Reply()
		if err != nil {
			continue
		}
		rects = append(rects, common.Rect{
			X: int(cinfo.X), Y: int(cinfo.Y), Width: int(cinfo.Width), Height: int(cinfo.Height),
		})
	}
	if len(rects) == 0 {
		return nil, fmt.Errorf("xconn: no connected outputs")
	}
	return rects, nil
}

func (c *XGBConn) CursorPosition() (common.Point, error) {
	qp, err := xproto.QueryPointer(c.x.Conn(), c.x.RootWin()).Reply()
	if err != nil {
		return common.Point{}, fmt.Errorf("xconn: query pointer: %w", err)
	}
	return common.Point{X: int(qp.RootX), Y: int(qp.RootY)}, nil
}

func (c *XGBConn) AtomId(name string) (common.Xid, error) {
	atom, err := xprop.Atm(c.x, name)
	if err != nil {
		return 0, fmt.Errorf("xconn: intern atom %q: %w", name, err)
	}
	c.atomNames.Store(common.Xid(atom), name)
	return common.Xid(atom), nil
}

func (c *XGBConn) AtomName(id common.Xid) (string, bool) {
	if v, ok := c.atomNames.Load(id); ok {
		return v.(string), true
	}
	name, err := xprop.AtomName(c.x, xproto.Atom(id))
	if err != nil {
		return "", false
	}
	c.atomNames.Store(id, name)
	return name, true
}

func (c *XGBConn) NextEvent() (XEvent, error) {
	e, ok := <-c.events
	if !ok {
		return nil, fmt.Errorf("xconn: connection closed")
	}
	return e, nil
}

func (c *XGBConn) Flush() error {
	c.x.Conn().Sync()
	return nil
}

func (c *XGBConn) Grab(keys []bindings.KeyCode, mouse []bindings.MouseState) error {
	xproto.UngrabKey(c.x.Conn(), xproto.GrabAny, c.x.RootWin(), xproto.ModMaskAny)
	for _, k := range keys {
		if err := xproto.GrabKeyChecked(
			c.x.Conn(), true, c.x.RootWin(), k.Mask, xproto.Keycode(k.Code),
			xproto.GrabModeAsync, xproto.GrabModeAsync,
		).Check(); err != nil {
			log.WithFields(log.Fields{"code": k.Code, "mask": k.Mask, "error": err}).Warn("Failed to grab key")
		}
	}
	// Mouse states are not grabbed: the mouse argument is unused, and this
	// connection makes no button grabs.
	_ = mouse
	return nil
}

func (c *XGBConn) Map(id common.Xid) error {
	return xproto.MapWindowChecked(c.x.Conn(), xproto.Window(id)).Check()
}

func (c *XGBConn) Unmap(id common.Xid) error {
	return xproto.UnmapWindowChecked(c.x.Conn(), xproto.Window(id)).Check()
}

func (c *XGBConn) Kill(id common.Xid) error {
	return xproto.DestroyWindowChecked(c.x.Conn(), xproto.Window(id)).Check()
}

func (c *XGBConn) Focus(id common.Xid) error {
	return xproto.SetInputFocusChecked(
		c.x.Conn(), xproto.InputFocusPointerRoot, xproto.Window(id), xproto.TimeCurrentTime,
	).Check()
}

func (c *XGBConn) WarpPointer(id common.Xid, x, y int) error {
	return xproto.WarpPointerChecked(
		c.x.Conn(), 0, xproto.Window(id), 0, 0, 0, 0, int16(x), int16(y),
	).Check()
}

func (c *XGBConn) ClientGeometry(id common.Xid) (common.Rect, error) {
	geom, err := xwindow.New(c.x, xproto.Window(id)).Geometry()
	if err != nil {
		return common.Rect{}, fmt.Errorf("xconn: get geometry: %w", err)
	}
	return common.Rect{X: geom.X(), Y: geom.Y(), Width: geom.Width(), Height: geom.Height()}, nil
}

func (c *XGBConn) ExistingClients() ([]common.Xid, error) {
	tree, err := xproto.QueryTree(c.x.Conn(), c.x.RootWin()).Reply()
	if err != nil {
		return nil, fmt.Errorf("xconn: query tree: %w", err)
	}
	out := make([]common.Xid, len(tree.Children))
	for i, w := range tree.Children {
		out[i] = common.Xid(w)
	}
	return out, nil
}

func (c *XGBConn) GetProp(id common.Xid, name string) (Prop, bool, error) {
	switch name {
	case "WM_HINTS":
		h, err := icccm.WmHintsGet(c.x, xproto.Window(id))
		if err != nil {
			return Prop{}, false, nil
		}
		return Prop{Kind: PropWmHints, WmHints: &WmHints{
			Flags:        h.Flags,
			AcceptsInput: h.Input == 1,
			InitialState: WmState(h.InitialState),
		}}, true, nil
	case "WM_NORMAL_HINTS":
		h, err := icccm.WmNormalHintsGet(c.x, xproto.Window(id))
		if err != nil {
			return Prop{}, false, nil
		}
		return Prop{Kind: PropWmNormalHints, WmNormalHints: &WmNormalHints{
			Flags: h.Flags,
			Min:   common.Rect{Width: int(h.MinWidth), Height: int(h.MinHeight)},
			Max:   common.Rect{Width: int(h.MaxWidth), Height: int(h.MaxHeight)},
			Base:  common.Rect{Width: int(h.BaseWidth), Height: int(h.BaseHeight)},
		}}, true, nil
	case "WM_CLASS":
		cls, err := icccm.WmClassGet(c.x, xproto.Window(id))
		if err != nil {
			return Prop{}, false, nil
		}
		return Prop{Kind: PropStrings, Strings: []string{cls.Instance, cls.Class}}, true, nil
	case "_NET_WM_NAME":
		n, err := ewmh.WmNameGet(c.x, xproto.Window(id))
		if err != nil {
			return Prop{}, false, nil
		}
		return Prop{Kind: PropStrings, Strings: []string{n}}, true, nil
	case "WM_NAME":
		n, err := icccm.WmNameGet(c.x, xproto.Window(id))
		if err != nil {
			return Prop{}, false, nil
		}
		return Prop{Kind: PropStrings, Strings: []string{n}}, true, nil
	case "WM_TRANSIENT_FOR":
		w, err := icccm.WmTransientForGet(c.x, xproto.Window(id))
		if err != nil {
			return Prop{}, false, nil
		}
		return Prop{Kind: PropWindows, Windows: []common.Xid{common.Xid(w)}}, true, nil
	case "_NET_WM_WINDOW_TYPE":
		types, err := ewmh.WmWindowTypeGet(c.x, xproto.Window(id))
		if err != nil {
			return Prop{}, false, nil
		}
		return Prop{Kind: PropStrings, Strings: types}, true, nil
	default:
		reply, err := xprop.GetProperty(c.x, xproto.Window(id), name)
		if err != nil {
			return Prop{}, false, nil
		}
		return Prop{Kind: PropBytes, Bytes: reply.Value}, true, nil
	}
}

func (c *XGBConn) SetProp(id common.Xid, name string, p Prop) error {
	switch p.Kind {
	case PropStrings:
		return xprop.ChangeProp(c.x, xproto.Window(id), 8, name, "STRING", []byte(joinNul(p.Strings)))
	case PropCardinals:
		return ewmh.CardinalsSet(c.x, xproto.Window(id), name, toInts(p.Cardinals))
	default:
		return xprop.ChangeProp(c.x, xproto.Window(id), 8, name, "STRING", p.Bytes)
	}
}

func (c *XGBConn) DeleteProp(id common.Xid, name string) error {
	atom, err := xprop.Atm(c.x, name)
	if err != nil {
		return fmt.Errorf("xconn: intern atom %q: %w", name, err)
	}
	return xproto.DeletePropertyChecked(c.x.Conn(), xproto.Window(id), atom).Check()
}

func (c *XGBConn) ListProps(id common.Xid) ([]string, error) {
	reply, err := xproto.ListProperties(c.x.Conn(), xproto.Window(id)).Reply()
	if err != nil {
		return nil, fmt.Errorf("xconn: list properties: %w", err)
	}
	out := make([]string, 0, len(reply.Atoms))
	for _, a := range reply.Atoms {
		if name, err := xprop.AtomName(c.x, a); err == nil {
			out = append(out, name)
		}
	}
	return out, nil
}

func (c *XGBConn) GetWindowAttributes(id common.Xid) (WindowAttributes, error) {
	attr, err := xproto.GetWindowAttributes(c.x.Conn(), xproto.Window(id)).Reply()
	if err != nil {
		return WindowAttributes{}, fmt.Errorf("xconn: get window attributes: %w", err)
	}
	return WindowAttributes{
		OverrideRedirect: attr.OverrideRedirect,
		MapState:         uint8(attr.MapState),
		WindowClass:      uint16(attr.Class),
	}, nil
}

func (c *XGBConn) SetWmState(id common.Xid, state WmState) error {
	return icccm.WmStateSet(c.x, xproto.Window(id), &icccm.WmState{State: uint(state)})
}

func (c *XGBConn) SetClientAttributes(id common.Xid, attrs []ClientAttr) error {
	for _, a := range attrs {
		switch v := a.(type) {
		case BorderColor:
			if err := xproto.ChangeWindowAttributesChecked(
				c.x.Conn(), xproto.Window(id), xproto.CwBorderPixel, []uint32{uint32(v)},
			).Check(); err != nil {
				return fmt.Errorf("xconn: set border color: %w", err)
			}
		case ClientEventMask:
			mask := xproto.EventMaskEnterWindow | xproto.EventMaskLeaveWindow |
				xproto.EventMaskPropertyChange | xproto.EventMaskStructureNotify
			if err := xwindow.New(c.x, xproto.Window(id)).Listen(mask); err != nil {
				return fmt.Errorf("xconn: set client event mask: %w", err)
			}
		case RootEventMask:
			mask := xproto.EventMaskPropertyChange | xproto.EventMaskSubstructureRedirect |
				xproto.EventMaskSubstructureNotify | xproto.EventMaskButtonMotion
			if err := xwindow.New(c.x, c.x.RootWin()).Listen(mask); err != nil {
				return fmt.Errorf("xconn: set root event mask: %w", err)
			}
		}
	}
	return nil
}

func (c *XGBConn) SetClientConfig(id common.Xid, cfgs []ClientConfig) error {
	var values []uint32
	var mask uint16
	var stackMode *uint32
	for _, cfg := range cfgs {
		switch v := cfg.(type) {
		case BorderPx:
			mask |= xproto.ConfigWindowBorderWidth
			values = append(values, uint32(v))
		case Position:
			mask |= xproto.ConfigWindowX | xproto.ConfigWindowY | xproto.ConfigWindowWidth | xproto.ConfigWindowHeight
			values = append(values, uint32(v.X), uint32(v.Y), uint32(v.Width), uint32(v.Height))
		case StackAbove:
			above := uint32(xproto.StackModeAbove)
			stackMode = &above
		}
	}
	if stackMode != nil {
		mask |= xproto.ConfigWindowStackMode
		values = append(values, *stackMode)
	}
	if mask == 0 {
		return nil
	}
	return xproto.ConfigureWindowChecked(c.x.Conn(), xproto.Window(id), mask, values).Check()
}

func (c *XGBConn) SendClientMessage(msg ClientMessageEvent) error {
	data := make([]int, len(msg.Data))
	for i, d := range msg.Data {
		data[i] = int(d)
	}
	return ewmh.ClientEvent(c.x, xproto.Window(msg.Id), msg.Dtype, data...)
}

func joinNul(ss []string) string {
	out := ""
	for i, s := range ss {
		if i > 0 {
			out += "\x00"
		}
		out += s
	}
	return out
}

func toInts(cs []uint32) []int {
	out := make([]int, len(cs))
	for i, c := range cs {
		out[i] = int(c)
	}
	return out
}

