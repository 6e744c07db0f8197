// Package layout turns a staff's sequence into positioned drawing nodes.
//
// The output starts with the staff itself, then alternates gaps with the
// clef and every element. Gaps carry the even caret positions, element nodes
// the odd ones. Beam nodes follow the last note of their group and, like the
// staff, do not advance the horizontal cursor.
package layout

import (
	"github.com/jsphweid/staffpad/beam"
	"github.com/jsphweid/staffpad/model"
)

type Options struct {
	// GapUnit is the width of every gap; zero means one staff space.
	GapUnit float64
	// Hint, when set, is the caret of a live insertion preview. The gap at
	// that position is suppressed and carries no caret.
	Hint *int
}

// Layout computes the drawing nodes for seq. It does not keep any state
// between calls.
func Layout(seq model.Sequence, staff Staff, opts Options) []Node {
	m := newMetrics(staff)
	gapUnit := opts.GapUnit
	if gapUnit <= 0 {
		gapUnit = m.space
	}

	groups := make([]int, len(seq))
	for i := range groups {
		groups[i] = -1
	}
	var runs []beam.Run
	for _, r := range beam.Runs(seq) {
		if r.Len() < 2 {
			continue
		}
		for i := r.Start; i < r.End; i++ {
			groups[i] = len(runs)
		}
		runs = append(runs, r)
	}
	ups := make([]bool, len(runs))
	for g, r := range runs {
		var steps []int
		for _, e := range seq[r.Start:r.End] {
			steps = append(steps, relSteps(e.Pitches, m.clef)...)
		}
		ups[g] = StemUp(steps)
	}

	staffNode := &StaffNode{Box: Box{X: staff.Origin.X, Source: -1, Caret: -1}}
	nodes := []Node{staffNode}
	x := staff.Origin.X
	gap := func(pos int) {
		g := &GapNode{Box: Box{
			X:      x,
			Width:  gapUnit,
			Bounds: m.column(x, x+gapUnit),
			Source: -1,
			Caret:  pos,
		}}
		if opts.Hint != nil && *opts.Hint == pos {
			g.Suppressed = true
			g.Caret = -1
		}
		nodes = append(nodes, g)
		x += gapUnit
	}

	gap(-1)
	clef := m.placeClef(x)
	nodes = append(nodes, clef)
	x += clef.Width
	gap(0)

	var members []*NoteNode
	for i, e := range seq {
		var n Node
		switch e.Kind {
		case model.NoteKind:
			if len(e.Pitches) == 0 {
				n = m.placeRest(i, e, x)
				break
			}
			g := groups[i]
			var note *NoteNode
			if g >= 0 {
				note = m.placeNote(i, e, x, ups[g], true)
				members = append(members, note)
			} else {
				note = m.placeNote(i, e, x, StemUp(relSteps(e.Pitches, m.clef)), false)
			}
			n = note
		case model.RestKind:
			n = m.placeRest(i, e, x)
		case model.BarKind:
			n = m.placeBar(i, e, x)
		default:
			continue
		}
		nodes = append(nodes, n)
		x += Width(n)
		if g := groups[i]; g >= 0 && runs[g].End-1 == i {
			nodes = append(nodes, m.placeBeam(members))
			members = nil
		}
		gap(2 * (i + 1))
	}

	for l := 0; l < 5; l++ {
		y := m.top + float64(l)*m.space
		staffNode.Lines = append(staffNode.Lines, Line{staff.Origin.X, y, x, y})
	}
	staffNode.Bounds = model.R(staff.Origin.X, m.top, x, m.bottom())
	return nodes
}
