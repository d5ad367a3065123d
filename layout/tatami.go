package layout

import (
	"github.com/leukipp/tylewm/common"
	"github.com/leukipp/tylewm/stack"
)

// Tatami arranges 1-6 clients using the six fixed patterns named after the
// tatami-mat floor layouts conventional in some tiling window managers.
// Clients beyond the sixth receive no placement and are hidden.
type Tatami struct {
	Base
}

func (Tatami) Name() string { return "tatami" }

func (t Tatami) LayoutWorkspace(tag string, clients *stack.Stack[common.Xid], r common.Rect) (Layout, []Placement) {
	return layoutWorkspace(t, clients, r)
}

func (Tatami) Layout(clients *stack.Stack[common.Xid], r common.Rect) (Layout, []Placement) {
	ids := clients.Flatten()
	n := len(ids)
	if n == 0 {
		return nil, nil
	}
	if n > 6 {
		ids = ids[:6]
		n = 6
	}

	switch n {
	case 1:
		return nil, zipRects(ids, []common.Rect{r})
	case 2:
		left, right, _ := r.SplitAtMidWidth()
		return nil, zipRects(ids, []common.Rect{left, right})
	case 3:
		left, right, _ := r.SplitAtWidthPerc(0.5)
		top, bottom, _ := right.SplitAtMidHeight()
		return nil, zipRects(ids, []common.Rect{left, top, bottom})
	case 4:
		left, right, _ := r.SplitAtMidWidth()
		lt, lb, _ := left.SplitAtMidHeight()
		rt, rb, _ := right.SplitAtMidHeight()
		return nil, zipRects(ids, []common.Rect{lt, lb, rt, rb})
	case 5:
		left, right, _ := r.SplitAtWidthPerc(0.4)
		lt, lb, _ := left.SplitAtMidHeight()
		rTop, rRest, _ := right.SplitAtHeightPerc(1.0 / 3.0)
		rMid, rBot, _ := rRest.SplitAtMidHeight()
		return nil, zipRects(ids, []common.Rect{lt, lb, rTop, rMid, rBot})
	default: // 6
		left, right, _ := r.SplitAtMidWidth()
		lTop, lRest, _ := left.SplitAtHeightPerc(1.0 / 3.0)
		lMid, lBot, _ := lRest.SplitAtMidHeight()
		rTop, rRest, _ := right.SplitAtHeightPerc(1.0 / 3.0)
		rMid, rBot, _ := rRest.SplitAtMidHeight()
		return nil, zipRects(ids, []common.Rect{lTop, lMid, lBot, rTop, rMid, rBot})
	}
}

func (Tatami) HandleMessage(Message) Layout { return nil }
