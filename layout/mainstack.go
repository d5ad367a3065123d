package layout

import (
	"github.com/leukipp/tylewm/common"
	"github.com/leukipp/tylewm/stack"
)

// axis picks which dimension MainAndStack splits the screen along.
type axis int

const (
	axisSide axis = iota
	axisBottom
)

// MainAndStack holds up to N clients in a main area (a column for Side, a
// row for Bottom) and the rest in a secondary stack filling the remaining
// space, split along a single main-ratio (no sub-proportions within either
// group).
type MainAndStack struct {
	Base
	Axis     axis
	N        int
	Ratio    float64
	Step     float64
	Mirrored bool
}

// MainAndStackSide builds a side-by-side MainAndStack: main clients in a
// column (left, or right if mirrored), stack clients filling the other
// column.
func MainAndStackSide(n int, ratio, step float64, mirrored bool) *MainAndStack {
	return &MainAndStack{Axis: axisSide, N: n, Ratio: ratio, Step: step, Mirrored: mirrored}
}

// MainAndStackBottom builds a MainAndStack with main clients in a top row
// instead of a left column.
func MainAndStackBottom(n int, ratio, step float64, mirrored bool) *MainAndStack {
	return &MainAndStack{Axis: axisBottom, N: n, Ratio: ratio, Step: step, Mirrored: mirrored}
}

func (m *MainAndStack) Name() string {
	switch m.Axis {
	case axisBottom:
		return "bstack"
	default:
		return "tstack"
	}
}

func (m *MainAndStack) LayoutWorkspace(tag string, clients *stack.Stack[common.Xid], r common.Rect) (Layout, []Placement) {
	return layoutWorkspace(m, clients, r)
}

func (m *MainAndStack) Layout(clients *stack.Stack[common.Xid], r common.Rect) (Layout, []Placement) {
	ids := clients.Flatten()
	n := len(ids)
	if n == 0 {
		return nil, nil
	}

	mainCount := common.MinInt(m.N, n)
	if mainCount <= 0 || mainCount >= n {
		// Everything fits in main, or main is disabled: use the whole
		// screen as a single column/row of rows.
		rows := r.AsRows(n)
		return nil, zipRects(ids, rows)
	}

	mainIds := ids[:mainCount]
	stackIds := ids[mainCount:]

	mainRect, stackRect := m.split(r)
	mainPlacements := zipRects(mainIds, mainRect.AsRows(len(mainIds)))
	stackPlacements := zipRects(stackIds, stackRect.AsRows(len(stackIds)))

	return nil, append(mainPlacements, stackPlacements...)
}

// split divides r into (main, stack) sub-rects according to Axis/Ratio/Mirrored.
func (m *MainAndStack) split(r common.Rect) (common.Rect, common.Rect) {
	switch m.Axis {
	case axisBottom:
		top, bottom, err := r.SplitAtHeightPerc(m.Ratio)
		if err != nil {
			return r, common.Rect{}
		}
		if m.Mirrored {
			return bottom, top
		}
		return top, bottom
	default:
		left, right, err := r.SplitAtWidthPerc(m.Ratio)
		if err != nil {
			return r, common.Rect{}
		}
		if m.Mirrored {
			return right, left
		}
		return left, right
	}
}

func (m *MainAndStack) HandleMessage(msg Message) Layout {
	switch v := msg.(type) {
	case IncMain:
		m.N = common.MaxInt(0, m.N+int(v))
	case ExpandMain:
		m.Ratio = common.ClampFloat(m.Ratio+m.Step, 0, 1)
	case ShrinkMain:
		m.Ratio = common.ClampFloat(m.Ratio-m.Step, 0, 1)
	}
	return nil
}

// zipRects pairs each id with the rectangle at the same index. Later
// entries render above earlier ones; ids are already in focus-relative
// display order from Stack.Flatten, so the existing order is preserved
// verbatim.
func zipRects(ids []common.Xid, rects []common.Rect) []Placement {
	n := common.MinInt(len(ids), len(rects))
	out := make([]Placement, n)
	for i := 0; i < n; i++ {
		out[i] = Placement{Id: ids[i], Rect: rects[i]}
	}
	return out
}
