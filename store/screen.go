package store

import "github.com/leukipp/tylewm/common"

// Screen binds a Workspace to a physical output rectangle. Index is the
// output index assigned by the X server (RandR CRTC order).
type Screen struct {
	Index     int
	Rect      common.Rect
	Workspace Workspace
}

// Clone returns a Screen with an independently-mutable Workspace.
func (s Screen) Clone() Screen {
	s.Workspace = s.Workspace.Clone()
	return s
}
