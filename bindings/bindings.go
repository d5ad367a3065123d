// Package bindings maps keyboard and pointer input to handlers. It has no
// dependency on core or xconn: KeyBindings/MouseBindings are generic over
// the state and mouse-event types the caller plugs in, the same way the
// original core is generic over its XConn implementation.
package bindings

// KeyCode identifies a physical key plus the modifier mask held when it was
// pressed. Mask bit values are supplied by the X transport.
type KeyCode struct {
	Mask uint16
	Code uint8
}

// IgnoringModifier clears the given bit(s) from the mask, producing a
// KeyCode equal regardless of whether that modifier was held.
func (k KeyCode) IgnoringModifier(m uint16) KeyCode {
	return KeyCode{Mask: k.Mask &^ m, Code: k.Code}
}

// NumLockMask is the modifier bit X11 assigns to NumLock on most layouts
// (Mod2). It is always stripped before a KeyCode is looked up in a
// KeyBindings map.
const NumLockMask uint16 = 1 << 4

// StrippingNumLock returns k with NumLockMask cleared.
func (k KeyCode) StrippingNumLock() KeyCode {
	return k.IgnoringModifier(NumLockMask)
}

// ModifierKey is one modifier held during a mouse action.
type ModifierKey int

const (
	Shift ModifierKey = iota
	Control
	Alt
	Meta
)

// MouseButton identifies which pointer button or wheel direction a
// MouseState refers to.
type MouseButton int

const (
	Left MouseButton = iota
	Middle
	Right
	ScrollUp
	ScrollDown
)

// MouseState is a button plus the modifiers held when it fired.
type MouseState struct {
	Button    MouseButton
	Modifiers []ModifierKey
}

// Equal reports whether s and other name the same button and modifier set,
// order-independent.
func (s MouseState) Equal(other MouseState) bool {
	if s.Button != other.Button || len(s.Modifiers) != len(other.Modifiers) {
		return false
	}
	for _, m := range s.Modifiers {
		found := false
		for _, n := range other.Modifiers {
			if m == n {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// KeyBindings maps a stripped KeyCode to a handler over S (typically
// *core.State). Handlers run on the single event-loop thread.
type KeyBindings[S any] map[KeyCode]func(*S) error

// MouseBindings maps a MouseState to a handler over S and the mouse event E
// that triggered it (typically *core.State and *xconn.MouseEvent).
type MouseBindings[S, E any] map[MouseState]func(*S, *E) error
