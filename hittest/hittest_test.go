package hittest

import (
	"testing"

	"github.com/jsphweid/staffpad/layout"
	"github.com/jsphweid/staffpad/model"
	"github.com/stretchr/testify/assert"
)

var treble = layout.Staff{Clef: model.Treble, Space: 10}

func sample() model.Sequence {
	return model.Sequence{
		model.NewNote(model.Quarter, model.PitchAcc{Pitch: 4}),
		model.NewRest(model.Half),
		model.NewBar(model.FinalBar),
	}
}

func TestCaretRects(t *testing.T) {
	assert := assert.New(t)
	rects := CaretRects(layout.Layout(sample(), treble, layout.Options{}))

	assert.Len(rects, 7)
	for i, r := range rects {
		assert.Equal(i, r.Caret)
		assert.Greater(r.Box.Width(), 0.0)
		if i > 0 {
			assert.GreaterOrEqual(r.Box.X0, rects[i-1].Box.X0)
		}
	}
}

func TestCaretRectsSkipSuppressedGap(t *testing.T) {
	assert := assert.New(t)
	hint := 4
	rects := CaretRects(layout.Layout(sample(), treble, layout.Options{Hint: &hint}))
	assert.Len(rects, 6)
	for _, r := range rects {
		assert.NotEqual(4, r.Caret)
	}
}

func TestElementBoxes(t *testing.T) {
	assert := assert.New(t)
	seq := model.Sequence{
		model.NewNote(model.Eighth, model.PitchAcc{Pitch: 4}),
		model.NewNote(model.Eighth, model.PitchAcc{Pitch: 4}),
	}
	seq[0].Beam, seq[1].Beam = model.Begin, model.End
	boxes := ElementBoxes(layout.Layout(seq, treble, layout.Options{}))

	assert.Len(boxes, 2)
	assert.Equal(0, boxes[0].Index)
	assert.Equal(1, boxes[1].Index)
	assert.Less(boxes[0].Box.X1, boxes[1].Box.X0)
}

func TestCaretAt(t *testing.T) {
	assert := assert.New(t)
	nodes := layout.Layout(sample(), treble, layout.Options{})
	rects := CaretRects(nodes)

	for _, r := range rects {
		c, ok := CaretAt(nodes, model.Point{X: (r.Box.X0 + r.Box.X1) / 2, Y: 20})
		assert.True(ok)
		assert.Equal(r.Caret, c)
	}

	c, ok := CaretAt(nodes, model.Point{X: -50, Y: 20})
	assert.True(ok)
	assert.Equal(0, c)

	c, ok = CaretAt(nodes, model.Point{X: 1000, Y: 20})
	assert.True(ok)
	assert.Equal(6, c)

	_, ok = CaretAt(nodes, model.Point{X: 20, Y: 500})
	assert.False(ok)

	_, ok = CaretAt(nil, model.Point{})
	assert.False(ok)
}
