package layout

import (
	"math"

	"github.com/leukipp/tylewm/common"
	"github.com/leukipp/tylewm/stack"
)

// Monocle gives the focused client the entire screen; every other client
// receives no placement and is therefore hidden.
type Monocle struct {
	Base
}

func (Monocle) Name() string { return "monocle" }

func (m Monocle) LayoutWorkspace(tag string, clients *stack.Stack[common.Xid], r common.Rect) (Layout, []Placement) {
	return layoutWorkspace(m, clients, r)
}

func (Monocle) Layout(clients *stack.Stack[common.Xid], r common.Rect) (Layout, []Placement) {
	return nil, []Placement{{Id: clients.Focus, Rect: r}}
}

func (Monocle) HandleMessage(Message) Layout { return nil }

// Grid arranges all clients in ceil(sqrt(n)) columns, filling rows
// left-to-right, top-to-bottom.
type Grid struct {
	Base
}

func (Grid) Name() string { return "grid" }

func (g Grid) LayoutWorkspace(tag string, clients *stack.Stack[common.Xid], r common.Rect) (Layout, []Placement) {
	return layoutWorkspace(g, clients, r)
}

func (Grid) Layout(clients *stack.Stack[common.Xid], r common.Rect) (Layout, []Placement) {
	ids := clients.Flatten()
	n := len(ids)
	if n == 0 {
		return nil, nil
	}
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	rows := int(math.Ceil(float64(n) / float64(cols)))

	rowRects := r.AsRows(rows)
	placements := make([]Placement, 0, n)
	idx := 0
	for row := 0; row < rows && idx < n; row++ {
		remaining := n - idx
		colsInRow := common.MinInt(cols, remaining)
		colRects := rowRects[row].AsColumns(colsInRow)
		for c := 0; c < colsInRow; c++ {
			placements = append(placements, Placement{Id: ids[idx], Rect: colRects[c]})
			idx++
		}
	}
	return nil, placements
}

func (Grid) HandleMessage(Message) Layout { return nil }
