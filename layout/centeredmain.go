package layout

import (
	"github.com/leukipp/tylewm/common"
	"github.com/leukipp/tylewm/stack"
)

// CenteredMain centers the focused (main) client in a column or row, with
// the remaining clients split evenly on either side of it.
type CenteredMain struct {
	Base
	Vertical bool // true: main is a centered row, stacks above/below; false: main is a centered column, stacks left/right
	Ratio    float64
	Step     float64
}

// NewCenteredMainVertical builds a CenteredMain with a centered row and
// clients split above/below it.
func NewCenteredMainVertical(ratio, step float64) *CenteredMain {
	return &CenteredMain{Vertical: true, Ratio: ratio, Step: step}
}

// NewCenteredMainHorizontal builds a CenteredMain with a centered column
// and clients split left/right of it.
func NewCenteredMainHorizontal(ratio, step float64) *CenteredMain {
	return &CenteredMain{Vertical: false, Ratio: ratio, Step: step}
}

func (c *CenteredMain) Name() string {
	if c.Vertical {
		return "cmain-v"
	}
	return "cmain-h"
}

func (c *CenteredMain) LayoutWorkspace(tag string, clients *stack.Stack[common.Xid], r common.Rect) (Layout, []Placement) {
	return layoutWorkspace(c, clients, r)
}

func (c *CenteredMain) Layout(clients *stack.Stack[common.Xid], r common.Rect) (Layout, []Placement) {
	ids := clients.Flatten()
	n := len(ids)
	if n == 0 {
		return nil, nil
	}
	if n == 1 {
		return nil, []Placement{{Id: ids[0], Rect: r}}
	}

	focusIdx := 0
	for i, id := range ids {
		if id == clients.Focus {
			focusIdx = i
			break
		}
	}
	before := append([]common.Xid(nil), ids[:focusIdx]...)
	main := ids[focusIdx]
	after := append([]common.Xid(nil), ids[focusIdx+1:]...)

	// Split before/after as evenly as possible between the two sides.
	side1, side2 := splitEvenly(append(before, after...))

	if c.Vertical {
		mainHeight := int(float64(r.Height) * c.Ratio)
		sideHeight := (r.Height - mainHeight) / 2

		top, rest, err := r.SplitAtHeight(sideHeight)
		if err != nil {
			return nil, []Placement{{Id: main, Rect: r}}
		}
		mainRect, bottom, err := rest.SplitAtHeight(mainHeight)
		if err != nil {
			mainRect, bottom = rest, common.Rect{}
		}
		placements := sidePlacements(side1, top, true)
		placements = append(placements, Placement{Id: main, Rect: mainRect})
		placements = append(placements, sidePlacements(side2, bottom, true)...)
		return nil, placements
	}

	mainWidth := int(float64(r.Width) * c.Ratio)
	sideWidth := (r.Width - mainWidth) / 2

	left, rest, err := r.SplitAtWidth(sideWidth)
	if err != nil {
		return nil, []Placement{{Id: main, Rect: r}}
	}
	mainRect, right, err := rest.SplitAtWidth(mainWidth)
	if err != nil {
		mainRect, right = rest, common.Rect{}
	}
	placements := sidePlacements(side1, left, false)
	placements = append(placements, Placement{Id: main, Rect: mainRect})
	placements = append(placements, sidePlacements(side2, right, false)...)
	return nil, placements
}

// sidePlacements lays ids out within r: as columns when asColumns is true
// (vertical centered-main splits its sides into columns), else as rows.
func sidePlacements(ids []common.Xid, r common.Rect, asColumns bool) []Placement {
	if len(ids) == 0 {
		return nil
	}
	if asColumns {
		return zipRects(ids, r.AsColumns(len(ids)))
	}
	return zipRects(ids, r.AsRows(len(ids)))
}

func splitEvenly(ids []common.Xid) (a, b []common.Xid) {
	half := (len(ids) + 1) / 2
	return ids[:half], ids[half:]
}

func (c *CenteredMain) HandleMessage(msg Message) Layout {
	switch msg.(type) {
	case ExpandMain:
		c.Ratio = common.ClampFloat(c.Ratio+c.Step, 0, 1)
	case ShrinkMain:
		c.Ratio = common.ClampFloat(c.Ratio-c.Step, 0, 1)
	}
	return nil
}
