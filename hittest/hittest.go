// Package hittest maps laid out nodes back to carets and elements.
package hittest

import (
	"math"

	"github.com/jsphweid/staffpad/layout"
	"github.com/jsphweid/staffpad/model"
	"golang.org/x/exp/slices"
)

type CaretRect struct {
	Caret int        `json:"caret"`
	Box   model.Rect `json:"box"`
}

type ElementBox struct {
	Index int        `json:"index"`
	Box   model.Rect `json:"box"`
}

// CaretRects lists every caret anchored in nodes, ordered by position. Odd
// carets cover their element, even ones the gap in front of the next element.
func CaretRects(nodes []layout.Node) []CaretRect {
	var res []CaretRect
	for _, n := range nodes {
		c, ok := layout.Anchor(n)
		if !ok {
			continue
		}
		res = append(res, CaretRect{Caret: c, Box: layout.Bounds(n)})
	}
	slices.SortStableFunc(res, func(a, b CaretRect) bool { return a.Caret < b.Caret })
	return res
}

// ElementBoxes lists the bounding box of every element, keyed by its index in
// the sequence.
func ElementBoxes(nodes []layout.Node) []ElementBox {
	var res []ElementBox
	for _, n := range nodes {
		switch n.(type) {
		case *layout.NoteNode, *layout.RestNode, *layout.BarNode:
		default:
			continue
		}
		if i, ok := layout.Source(n); ok {
			res = append(res, ElementBox{Index: i, Box: layout.Bounds(n)})
		}
	}
	return res
}

// CaretAt returns the caret under p. A point between two caret rectangles
// goes to the nearer one; a point above or below every rectangle, or a
// layout without carets, has none.
func CaretAt(nodes []layout.Node, p model.Point) (int, bool) {
	rects := CaretRects(nodes)
	if len(rects) == 0 {
		return 0, false
	}
	var extent model.Rect
	for _, r := range rects {
		extent = extent.Union(r.Box)
	}
	if p.Y < extent.Y0 || p.Y > extent.Y1 {
		return 0, false
	}

	best, dist := -1, math.Inf(1)
	for _, r := range rects {
		var d float64
		switch {
		case p.X < r.Box.X0:
			d = r.Box.X0 - p.X
		case p.X > r.Box.X1:
			d = p.X - r.Box.X1
		}
		if d < dist {
			best, dist = r.Caret, d
		}
	}
	return best, true
}
