package layout

import (
	"testing"

	"github.com/jsphweid/staffpad/edit"
	"github.com/jsphweid/staffpad/model"
	"github.com/stretchr/testify/assert"
)

var treble = Staff{Clef: model.Treble, Space: 10}

func note(d model.Duration, steps ...int) model.Element {
	var ps []model.PitchAcc
	for _, s := range steps {
		ps = append(ps, model.PitchAcc{Pitch: s})
	}
	return model.NewNote(d, ps...)
}

func beamed(durations ...model.Duration) model.Sequence {
	var seq model.Sequence
	for i, d := range durations {
		e := note(d, 4)
		switch i {
		case 0:
			e.Beam = model.Begin
		case len(durations) - 1:
			e.Beam = model.End
		default:
			e.Beam = model.Continue
		}
		seq = append(seq, e)
	}
	return seq
}

func ofKind[T Node](nodes []Node) []T {
	var res []T
	for _, n := range nodes {
		if t, ok := n.(T); ok {
			res = append(res, t)
		}
	}
	return res
}

func TestStemUp(t *testing.T) {
	assert := assert.New(t)
	assert.True(StemUp([]int{-2, 0}))
	assert.False(StemUp([]int{10, 13}))
	assert.True(StemUp([]int{4}))
	assert.False(StemUp([]int{6}))
	assert.False(StemUp([]int{2, 10}))
	assert.True(StemUp([]int{0, 11}))
}

func TestSplitChord(t *testing.T) {
	assert := assert.New(t)
	assert.Equal([]bool{false, true}, SplitChord([]int{0, 1}, true))
	assert.Equal([]bool{true, false}, SplitChord([]int{0, 1}, false))
	assert.Equal([]bool{false, true, false}, SplitChord([]int{0, 1, 2}, true))
	assert.Equal([]bool{false, false}, SplitChord([]int{0, 2}, true))
}

func TestLayoutCaretAnchors(t *testing.T) {
	assert := assert.New(t)
	seq := model.Sequence{note(model.Quarter, 4), model.NewRest(model.Quarter), model.NewBar(model.SingleBar)}
	nodes := Layout(seq, treble, Options{})

	assert.Equal(StaffKind, nodes[0].Kind())
	var anchors []int
	for _, n := range nodes {
		if c, ok := Anchor(n); ok {
			anchors = append(anchors, c)
		}
	}
	assert.Equal([]int{0, 1, 2, 3, 4, 5, 6}, anchors)

	var sources []int
	for _, n := range nodes {
		if s, ok := Source(n); ok {
			sources = append(sources, s)
		}
	}
	assert.Equal([]int{0, 1, 2}, sources)
}

func TestLayoutHorizontalFlow(t *testing.T) {
	assert := assert.New(t)
	seq := model.Sequence{note(model.Quarter, 4), note(model.Half, 8)}
	nodes := Layout(seq, Staff{Clef: model.Treble, Origin: model.Point{X: 5, Y: 20}, Space: 10}, Options{})

	x := 5.0
	for _, n := range nodes[1:] {
		if n.Kind() == BeamKind {
			continue
		}
		assert.InDelta(x, Position(n), 1e-9)
		x += Width(n)
	}
	staff := nodes[0].(*StaffNode)
	assert.Len(staff.Lines, 5)
	assert.InDelta(x, staff.Lines[0].X1, 1e-9)
	assert.InDelta(20, staff.Lines[0].Y0, 1e-9)
	assert.InDelta(60, staff.Lines[4].Y0, 1e-9)
}

func TestLayoutStemDirection(t *testing.T) {
	assert := assert.New(t)
	nodes := Layout(model.Sequence{note(model.Quarter, -2, 0), note(model.Quarter, 10, 13)}, treble, Options{})
	notes := ofKind[*NoteNode](nodes)
	assert.Len(notes, 2)

	assert.True(notes[0].StemUp)
	assert.Less(notes[0].Stem.Y1, notes[0].Stem.Y0)
	assert.InDelta(notes[0].Heads[0].Bounds.X1, notes[0].Stem.X0, 1e-9)

	assert.False(notes[1].StemUp)
	assert.Greater(notes[1].Stem.Y1, notes[1].Stem.Y0)
	assert.InDelta(notes[1].Heads[0].Bounds.X0, notes[1].Stem.X0, 1e-9)
}

func TestLayoutStemReachesMiddleLine(t *testing.T) {
	assert := assert.New(t)
	n := ofKind[*NoteNode](Layout(model.Sequence{note(model.Quarter, -6)}, treble, Options{}))[0]
	assert.True(n.StemUp)
	assert.InDelta(20, n.Stem.Y1, 1e-9)
}

func TestLayoutLedgers(t *testing.T) {
	assert := assert.New(t)
	seq := model.Sequence{note(model.Quarter, -2), note(model.Quarter, 6), note(model.Quarter, 12), note(model.Quarter, 0, 14)}
	notes := ofKind[*NoteNode](Layout(seq, treble, Options{}))

	ys := func(n *NoteNode) []float64 {
		var res []float64
		for _, l := range n.Ledgers {
			res = append(res, l.Y0)
		}
		return res
	}
	assert.Equal([]float64{50, 60}, ys(notes[0]))
	assert.Empty(notes[1].Ledgers)
	assert.Equal([]float64{-10}, ys(notes[2]))
	assert.Equal([]float64{50, -10, -20}, ys(notes[3]))
}

func TestLayoutChordHeads(t *testing.T) {
	assert := assert.New(t)
	seq := model.Sequence{note(model.Quarter, 2), note(model.Quarter, 1, 2)}
	notes := ofKind[*NoteNode](Layout(seq, treble, Options{}))

	single, cluster := notes[0], notes[1]
	assert.Len(cluster.Heads, 2)
	assert.False(cluster.Heads[0].Flipped)
	assert.True(cluster.Heads[1].Flipped)
	assert.Less(cluster.Heads[0].Center.X, cluster.Heads[1].Center.X)
	assert.Greater(cluster.Width, single.Width)
}

func TestLayoutAccidentals(t *testing.T) {
	assert := assert.New(t)
	e := model.NewNote(model.Quarter,
		model.PitchAcc{Pitch: 0, Accidental: model.Sharp},
		model.PitchAcc{Pitch: 4, Accidental: model.Flat},
	)
	n := ofKind[*NoteNode](Layout(model.Sequence{e}, treble, Options{}))[0]
	plain := ofKind[*NoteNode](Layout(model.Sequence{note(model.Quarter, 0, 4)}, treble, Options{}))[0]

	assert.Len(n.Accidentals, 2)
	assert.Equal(model.Flat, n.Accidentals[0].Accidental)
	assert.Equal(model.Sharp, n.Accidentals[1].Accidental)
	for _, a := range n.Accidentals {
		assert.Less(a.Center.X, n.Heads[0].Bounds.X0)
	}
	assert.Greater(n.Width, plain.Width)
}

func TestLayoutHeadsAndFlags(t *testing.T) {
	assert := assert.New(t)
	seq := model.Sequence{note(model.Whole, 4), note(model.Half, 4), note(model.Eighth, 4), note(model.ThirtySecond, 4)}
	notes := ofKind[*NoteNode](Layout(seq, treble, Options{}))

	assert.Nil(notes[0].Stem)
	assert.True(notes[0].Heads[0].Hollow)
	assert.True(notes[1].Heads[0].Hollow)
	assert.NotNil(notes[1].Stem)
	assert.Equal(0, notes[1].Flags)
	assert.Equal(1, notes[2].Flags)
	assert.Equal(3, notes[3].Flags)
	assert.False(notes[3].Heads[0].Hollow)
}

func TestLayoutBarlines(t *testing.T) {
	assert := assert.New(t)
	seq := model.Sequence{
		model.NewBar(model.SingleBar),
		model.NewBar(model.DoubleBar),
		model.NewBar(model.FinalBar),
		model.NewBar(model.RepeatBar),
	}
	bars := ofKind[*BarNode](Layout(seq, treble, Options{}))
	assert.Len(bars, 4)

	assert.Len(bars[0].Strokes, 1)
	assert.InDelta(1.5, bars[0].Width, 1e-9)

	assert.Len(bars[1].Strokes, 2)
	assert.False(bars[1].Strokes[1].Thick)

	assert.Len(bars[2].Strokes, 2)
	assert.False(bars[2].Strokes[0].Thick)
	assert.True(bars[2].Strokes[1].Thick)
	assert.InDelta(10.5, bars[2].Width, 1e-9)

	assert.Len(bars[3].Dots, 2)
	assert.Less(bars[3].Dots[0].X, bars[3].Strokes[0].X0)
	for _, s := range bars[3].Strokes {
		assert.InDelta(0, s.Y0, 1e-9)
		assert.InDelta(40, s.Y1, 1e-9)
	}
}

func TestLayoutBeamGroup(t *testing.T) {
	assert := assert.New(t)
	seq := beamed(model.Eighth, model.Eighth, model.Eighth)
	seq[1].Pitches = []model.PitchAcc{{Pitch: 2}}
	nodes := Layout(seq, treble, Options{})

	beams := ofKind[*BeamNode](nodes)
	assert.Len(beams, 1)
	b := beams[0]
	assert.Equal([]int{0, 1, 2}, b.Members)
	assert.Equal(BeamKind, nodes[len(nodes)-2].Kind())

	notes := ofKind[*NoteNode](nodes)
	main := b.Strokes[0]
	assert.Equal(1, main.Level)
	assert.InDelta(notes[0].Stem.X0, main.X0, 1e-9)
	assert.InDelta(notes[2].Stem.X0, main.X1, 1e-9)
	slope := (main.Y1 - main.Y0) / (main.X1 - main.X0)
	for _, n := range notes {
		assert.True(n.Beamed)
		assert.Equal(0, n.Flags)
		assert.Equal(b.StemUp, n.StemUp)
		assert.InDelta(main.Y0+slope*(n.Stem.X0-main.X0), n.Stem.Y1, 1e-9)
		assert.GreaterOrEqual(n.outer()-n.Stem.Y1, 25-1e-9)
	}
}

func TestLayoutBeamRiseIsLimited(t *testing.T) {
	assert := assert.New(t)
	seq := beamed(model.Eighth, model.Eighth)
	seq[0].Pitches = []model.PitchAcc{{Pitch: -4}}
	seq[1].Pitches = []model.PitchAcc{{Pitch: 5}}
	b := ofKind[*BeamNode](Layout(seq, treble, Options{}))[0]
	assert.LessOrEqual(b.Strokes[0].Y0-b.Strokes[0].Y1, 30+1e-9)
}

func TestLayoutSecondaryBeams(t *testing.T) {
	assert := assert.New(t)
	notes := func(nodes []Node) []*NoteNode { return ofKind[*NoteNode](nodes) }
	strokes := func(b *BeamNode, level int) []BeamStroke {
		var res []BeamStroke
		for _, s := range b.Strokes {
			if s.Level == level {
				res = append(res, s)
			}
		}
		return res
	}

	nodes := Layout(beamed(model.Eighth, model.Sixteenth, model.Sixteenth), treble, Options{})
	ns := notes(nodes)
	b := ofKind[*BeamNode](nodes)[0]
	second := strokes(b, 2)
	assert.Len(second, 1)
	assert.InDelta(ns[1].Stem.X0, second[0].X0, 1e-9)
	assert.InDelta(ns[2].Stem.X0, second[0].X1, 1e-9)
	assert.InDelta(b.Strokes[0].Y0+7.5, second[0].Y0, 1e-9)

	nodes = Layout(beamed(model.Sixteenth, model.Eighth, model.Eighth), treble, Options{})
	ns = notes(nodes)
	second = strokes(ofKind[*BeamNode](nodes)[0], 2)
	assert.Len(second, 1)
	assert.InDelta(ns[0].Stem.X0, second[0].X0, 1e-9)
	assert.InDelta(ns[0].Stem.X0+10, second[0].X1, 1e-9)

	nodes = Layout(beamed(model.Eighth, model.Eighth, model.Sixteenth), treble, Options{})
	ns = notes(nodes)
	second = strokes(ofKind[*BeamNode](nodes)[0], 2)
	assert.Len(second, 1)
	assert.InDelta(ns[2].Stem.X0-10, second[0].X0, 1e-9)
	assert.InDelta(ns[2].Stem.X0, second[0].X1, 1e-9)

	nodes = Layout(beamed(model.ThirtySecond, model.ThirtySecond), treble, Options{})
	b = ofKind[*BeamNode](nodes)[0]
	assert.Len(strokes(b, 2), 1)
	assert.Len(strokes(b, 3), 1)
}

func TestLayoutSingleBeamedNoteKeepsFlag(t *testing.T) {
	assert := assert.New(t)
	e := note(model.Eighth, 4)
	e.Beam = model.Begin
	nodes := Layout(model.Sequence{e}, treble, Options{})
	assert.Empty(ofKind[*BeamNode](nodes))
	n := ofKind[*NoteNode](nodes)[0]
	assert.False(n.Beamed)
	assert.Equal(1, n.Flags)
}

func TestLayoutHint(t *testing.T) {
	assert := assert.New(t)
	hint := 2
	seq := model.Sequence{note(model.Quarter, 4), note(model.Quarter, 4)}
	nodes := Layout(seq, treble, Options{Hint: &hint})

	var suppressed []*GapNode
	for _, g := range ofKind[*GapNode](nodes) {
		if g.Suppressed {
			suppressed = append(suppressed, g)
		}
	}
	assert.Len(suppressed, 1)
	_, ok := Anchor(suppressed[0])
	assert.False(ok)

	for _, n := range nodes {
		c, ok := Anchor(n)
		if ok {
			assert.NotEqual(hint, c)
		}
	}
	assert.InDelta(TotalWidth(Layout(seq, treble, Options{})), TotalWidth(nodes), 1e-9)
}

func TestLayoutGapUnit(t *testing.T) {
	assert := assert.New(t)
	for _, g := range ofKind[*GapNode](Layout(model.Sequence{note(model.Quarter, 4)}, treble, Options{GapUnit: 4})) {
		assert.InDelta(4, g.Width, 1e-9)
	}
}

func TestLayoutWidthSurvivesInsertAndBackspace(t *testing.T) {
	assert := assert.New(t)
	seq := model.Sequence{note(model.Quarter, 4), model.NewBar(model.SingleBar), note(model.Half, 7)}
	before := TotalWidth(Layout(seq, treble, Options{}))

	res := edit.Apply(2, seq, note(model.Eighth, 2, 3), edit.NoBeam)
	assert.Greater(TotalWidth(Layout(res.Sequence, treble, Options{})), before)

	after, pos := edit.Backspace(res.Caret(2), res.Sequence)
	assert.Equal(2, pos)
	assert.InDelta(before, TotalWidth(Layout(after, treble, Options{})), 1e-9)
}

func TestLayoutBassClef(t *testing.T) {
	assert := assert.New(t)
	bass := Staff{Clef: model.Bass, Space: 10}
	n := ofKind[*NoteNode](Layout(model.Sequence{note(model.Quarter, -6)}, bass, Options{}))[0]
	assert.InDelta(20, n.Heads[0].Center.Y, 1e-9)
	clef := ofKind[*ClefNode](Layout(nil, bass, Options{}))[0]
	assert.InDelta(10, clef.Anchor.Y, 1e-9)
}
