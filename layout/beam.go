package layout

import (
	"math"

	"github.com/jsphweid/staffpad/model"
)

// beamer fits one straight beam line over a group of stems and draws the
// strokes of every beam level.
type beamer struct {
	m       metrics
	notes   []*NoteNode
	up      bool
	x0      float64
	slope   float64
	shift   float64
	y0      float64
	strokes []BeamStroke
}

func (b *beamer) stemX(i int) float64 { return b.notes[i].Stem.X0 }

func (b *beamer) lineAt(x float64) float64 {
	return b.y0 + b.slope*(x-b.x0) + b.shift
}

// placeBeam joins the stems of notes, which must all have stems and share a
// direction. The slope follows the first and last stem tips, limited to
// three staff spaces over the whole group.
func (m metrics) placeBeam(notes []*NoteNode) *BeamNode {
	b := &beamer{m: m, notes: notes, up: notes[0].StemUp}
	first, last := notes[0], notes[len(notes)-1]
	b.x0 = first.Stem.X0
	b.y0 = first.Stem.Y1
	rise := last.Stem.Y1 - b.y0
	rise = math.Max(-m.maxRise, math.Min(m.maxRise, rise))
	if dx := last.Stem.X0 - b.x0; dx > 0 {
		b.slope = rise / dx
	}

	for _, n := range notes {
		line := b.y0 + b.slope*(n.Stem.X0-b.x0)
		if b.up {
			b.shift = math.Min(b.shift, n.outer()-m.minStem-line)
		} else {
			b.shift = math.Max(b.shift, n.outer()+m.minStem-line)
		}
	}
	for _, n := range notes {
		n.Stem.Y1 = b.lineAt(n.Stem.X0)
		n.Bounds = n.Bounds.Union(n.Stem.Bounds(m.thin))
	}

	b.stroke(1, b.stemX(0), b.stemX(len(notes)-1))
	b.levels(0, len(notes)-1, 1, 1)

	res := &BeamNode{
		Box:       Box{X: b.x0, Source: -1, Caret: -1},
		StemUp:    b.up,
		Thickness: m.beamThick,
		Strokes:   b.strokes,
	}
	for _, n := range notes {
		res.Members = append(res.Members, n.Source)
	}
	for _, s := range b.strokes {
		r := model.R(s.X0, s.Y0, s.X1, s.Y1)
		r.Y0 -= m.beamThick
		r.Y1 += m.beamThick
		res.Bounds = res.Bounds.Union(r)
	}
	return res
}

func (b *beamer) stroke(level int, x0, x1 float64) {
	offset := float64(level-1) * (b.m.beamThick + b.m.beamGap)
	if !b.up {
		offset = -offset
	}
	b.strokes = append(b.strokes, BeamStroke{
		Line:  Line{x0, b.lineAt(x0) + offset, x1, b.lineAt(x1) + offset},
		Level: level,
	})
}

// levels draws level+1 beams over the maximal sub-runs of [from, to] whose
// notes are short enough, then recurses into each of them. A sub-run of one
// note becomes a stub: pointing right at the head of its parent run, left
// elsewhere, and in the parent's direction when the parent is a stub itself.
func (b *beamer) levels(from, to, level int, dir float64) {
	threshold := model.Eighth << uint(level)
	if threshold > model.ThirtySecond || threshold == 0 {
		return
	}
	for _, r := range b.subRuns(from, to, threshold) {
		x0, x1 := b.stemX(r[0]), b.stemX(r[1])
		d := 0.0
		if r[0] == r[1] {
			d = dir
			if from < to {
				d = -1
				if r[0] == from {
					d = 1
				}
			}
			if d > 0 {
				x1 = x0 + b.m.stub
			} else {
				x0 = x1 - b.m.stub
			}
		}
		b.stroke(level+1, x0, x1)
		b.levels(r[0], r[1], level+1, d)
	}
}

// subRuns returns inclusive index ranges of consecutive notes in [from, to]
// whose duration is at least threshold.
func (b *beamer) subRuns(from, to int, threshold model.Duration) [][2]int {
	var res [][2]int
	start := -1
	for i := from; i <= to; i++ {
		if b.notes[i].Duration >= threshold {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			res = append(res, [2]int{start, i - 1})
			start = -1
		}
	}
	if start >= 0 {
		res = append(res, [2]int{start, to})
	}
	return res
}
