package layout

import (
	"math"

	"github.com/jsphweid/staffpad/chord"
	"github.com/jsphweid/staffpad/model"
	"github.com/jsphweid/staffpad/pitch"
)

// StemUp picks the stem direction for a set of treble-relative steps: the
// extreme farther from the middle line (B4) wins, so notes mostly below the
// staff centre get an upward stem. Ties fall back to the rounded mean.
func StemUp(steps []int) bool {
	if len(steps) == 0 {
		return true
	}
	lo, hi, sum := steps[0], steps[0], 0
	for _, s := range steps {
		if s < lo {
			lo = s
		}
		if s > hi {
			hi = s
		}
		sum += s
	}
	dLo := math.Abs(float64(lo - pitch.Middle))
	dHi := math.Abs(float64(hi - pitch.Middle))
	if dLo != dHi {
		return dLo > dHi
	}
	mean := float64(sum) / float64(len(steps))
	return math.Round(mean) < pitch.Middle
}

// SplitChord decides for each step of an ascending chord whether its head
// sits on the flipped side of the stem. Walking away from the stem's base, a
// step adjacent to a normally placed predecessor is flipped; the next one
// reverts.
func SplitChord(steps []int, up bool) []bool {
	flipped := make([]bool, len(steps))
	first := true
	prev, prevFlipped := 0, false
	visit := func(i int) {
		s := steps[i]
		if !first && abs(s-prev) <= 1 && !prevFlipped {
			flipped[i] = true
		}
		first = false
		prev, prevFlipped = s, flipped[i]
	}
	if up {
		for i := 0; i < len(steps); i++ {
			visit(i)
		}
	} else {
		for i := len(steps) - 1; i >= 0; i-- {
			visit(i)
		}
	}
	return flipped
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func relSteps(pitches []model.PitchAcc, clef model.Clef) []int {
	res := make([]int, len(pitches))
	for i, p := range pitches {
		res[i] = pitch.Step(p.Pitch, clef)
	}
	return res
}

// placeNote lays out one note or chord with its left edge at x.
func (m metrics) placeNote(index int, e model.Element, x float64, up, beamed bool) *NoteNode {
	pitches := chord.Sorted(e.Pitches)
	steps := relSteps(pitches, m.clef)
	flipped := SplitChord(steps, up)
	hasFlip := false
	for _, f := range flipped {
		hasFlip = hasFlip || f
	}

	var accs []model.PitchAcc
	for i := len(pitches) - 1; i >= 0; i-- {
		if pitches[i].Accidental != model.NoAccidental {
			accs = append(accs, pitches[i])
		}
	}

	headsX := x + float64(len(accs))*(m.accW+m.accGap) + m.ledgerExt
	columnW := m.headW
	if hasFlip {
		columnW *= 2
	}
	stemX := headsX + m.headW
	if !up && !hasFlip {
		stemX = headsX
	}

	n := &NoteNode{
		Box:      Box{X: x, Source: index, Caret: 2*index + 1},
		Duration: e.Duration,
		StemUp:   up,
		Beamed:   beamed,
		Tie:      e.Tie,
	}
	bounds := m.column(x, x)
	bounds.Y0, bounds.Y1 = m.middle(), m.middle()

	for i, p := range pitches {
		side := -1.0
		if up == flipped[i] {
			side = 1
		}
		c := model.Point{X: stemX + side*m.headW/2, Y: m.yRel(steps[i])}
		h := Head{
			Pitch:   p,
			Center:  c,
			Bounds:  model.R(c.X-m.headW/2, c.Y-m.headH/2, c.X+m.headW/2, c.Y+m.headH/2),
			Flipped: flipped[i],
			Hollow:  e.Duration <= model.Half,
		}
		n.Heads = append(n.Heads, h)
		bounds = bounds.Union(h.Bounds)
	}

	for i, p := range accs {
		c := model.Point{
			X: x + float64(i)*(m.accW+m.accGap) + m.accW/2,
			Y: m.yRel(pitch.Step(p.Pitch, m.clef)),
		}
		n.Accidentals = append(n.Accidentals, Accidental{Accidental: p.Accidental, Center: c})
		bounds = bounds.Union(model.R(c.X-m.accW/2, c.Y-m.space, c.X+m.accW/2, c.Y+m.space))
	}

	lo, hi := steps[0], steps[len(steps)-1]
	lx0, lx1 := headsX-m.ledgerExt, headsX+columnW+m.ledgerExt
	for s := 0; s >= lo; s -= 2 {
		n.Ledgers = append(n.Ledgers, Line{lx0, m.yRel(s), lx1, m.yRel(s)})
	}
	for s := 12; s <= hi; s += 2 {
		n.Ledgers = append(n.Ledgers, Line{lx0, m.yRel(s), lx1, m.yRel(s)})
	}
	for _, l := range n.Ledgers {
		bounds = bounds.Union(l.Bounds(m.thin))
	}

	right := headsX + columnW
	if e.Duration > model.Whole {
		var stem Line
		if up {
			tip := math.Min(m.yRel(hi)-m.stemLen, m.middle())
			stem = Line{stemX, m.yRel(lo), stemX, tip}
		} else {
			tip := math.Max(m.yRel(lo)+m.stemLen, m.middle())
			stem = Line{stemX, m.yRel(hi), stemX, tip}
		}
		n.Stem = &stem
		bounds = bounds.Union(stem.Bounds(m.thin))
		if !beamed {
			n.Flags = e.Duration.Flags()
		}
		if n.Flags > 0 {
			right = math.Max(right, stemX+m.flagW)
		}
	}

	n.Width = right + m.ledgerExt - x
	bounds = bounds.Union(model.R(x, bounds.Y0, x+n.Width, bounds.Y1))
	n.Bounds = bounds
	return n
}

// outer is the y of the head the stem grows away from.
func (n *NoteNode) outer() float64 {
	y := n.Heads[0].Center.Y
	for _, h := range n.Heads[1:] {
		if n.StemUp && h.Center.Y < y || !n.StemUp && h.Center.Y > y {
			y = h.Center.Y
		}
	}
	return y
}

func (m metrics) placeRest(index int, e model.Element, x float64) *RestNode {
	c := model.Point{X: x + m.restW/2, Y: m.middle()}
	h := 1.5 * m.space
	if e.Duration <= model.Half {
		h = 0.5 * m.space
	}
	return &RestNode{
		Box: Box{
			X:      x,
			Width:  m.restW,
			Bounds: model.R(x, c.Y-h, x+m.restW, c.Y+h),
			Source: index,
			Caret:  2*index + 1,
		},
		Duration: e.Duration,
		Center:   c,
	}
}

func (m metrics) placeClef(x float64) *ClefNode {
	line := 4
	switch m.clef {
	case model.Bass:
		line = -4
	case model.Alto, model.Tenor:
		line = 0
	}
	return &ClefNode{
		Box: Box{
			X:      x,
			Width:  m.clefW,
			Bounds: m.column(x, x+m.clefW),
			Source: -1,
			Caret:  -1,
		},
		Clef:   m.clef,
		Anchor: model.Point{X: x + m.clefW/2, Y: m.y(line)},
	}
}
