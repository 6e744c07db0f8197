// Package tie splices tie arcs into a laid out staff.
package tie

import (
	"math"

	"github.com/jsphweid/staffpad/layout"
	"github.com/jsphweid/staffpad/model"
)

// InsertTies returns nodes with a tie node right after every note that opens
// a tie and has a partner further right. The arc spans the widths of the
// nodes in between: adjacent notes get a tight arc, distant ones a flatter
// one. A rest, or a note that does not close the tie, ends the search and
// the tie stays undrawn.
func InsertTies(nodes []layout.Node) []layout.Node {
	res := make([]layout.Node, 0, len(nodes))
	for i, n := range nodes {
		res = append(res, n)
		if start, ok := n.(*layout.NoteNode); ok && start.Tie.Open() {
			if t := bridge(start, nodes[i+1:]); t != nil {
				res = append(res, t)
			}
		}
	}
	return res
}

func bridge(start *layout.NoteNode, rest []layout.Node) *layout.TieNode {
	var acc float64
	for _, n := range rest {
		switch n := n.(type) {
		case *layout.NoteNode:
			if !n.Tie.Closing() {
				return nil
			}
			return arcs(start, n, acc)
		case *layout.RestNode:
			return nil
		default:
			acc += layout.Width(n)
		}
	}
	return nil
}

func arcs(from, to *layout.NoteNode, acc float64) *layout.TieNode {
	src, _ := layout.Source(from)
	dst, _ := layout.Source(to)
	t := &layout.TieNode{
		Box:  layout.Box{X: layout.Position(from), Source: -1, Caret: -1},
		From: src,
		To:   dst,
	}
	dir := 1.0
	if !from.StemUp {
		dir = -1
	}
	for _, h := range from.Heads {
		for _, o := range to.Heads {
			if h.Pitch != o.Pitch {
				continue
			}
			space := h.Bounds.Height()
			p0 := model.Point{X: h.Bounds.X1, Y: h.Center.Y + dir*space*0.3}
			p3 := model.Point{X: o.Bounds.X0, Y: o.Center.Y + dir*space*0.3}
			lift := dir * math.Max(0.4*space, math.Min(1.2*space, 0.25*acc))
			reach := (p3.X - p0.X) / 4
			a := layout.Arc{
				P0: p0,
				P1: model.Point{X: p0.X + reach, Y: p0.Y + lift},
				P2: model.Point{X: p3.X - reach, Y: p3.Y + lift},
				P3: p3,
			}
			t.Arcs = append(t.Arcs, a)
			for _, p := range []model.Point{a.P0, a.P1, a.P2, a.P3} {
				t.Bounds = t.Bounds.Union(model.R(p.X, p.Y, p.X, p.Y))
			}
		}
	}
	if len(t.Arcs) == 0 {
		return nil
	}
	return t
}
