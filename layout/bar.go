package layout

import "github.com/jsphweid/staffpad/model"

// placeBar draws the strokes of a barline left to right: Single is one thin
// stroke, Double two thin ones, Final thin then thick, Repeat adds two dots
// in front of a final bar.
func (m metrics) placeBar(index int, e model.Element, x float64) *BarNode {
	n := &BarNode{
		Box: Box{X: x, Source: index, Caret: 2*index + 1},
		Bar: e.Bar,
	}
	var thick []bool
	switch e.Bar {
	case model.DoubleBar:
		thick = []bool{false, false}
	case model.FinalBar:
		thick = []bool{false, true}
	case model.RepeatBar:
		thick = []bool{false, true}
	default:
		thick = []bool{false}
	}

	cx := x
	if e.Bar == model.RepeatBar {
		n.Dots = []model.Point{
			{X: cx + m.dotR, Y: m.yRel(7)},
			{X: cx + m.dotR, Y: m.yRel(5)},
		}
		cx += 2*m.dotR + m.barGap
	}
	for i, t := range thick {
		if i > 0 {
			cx += m.barGap
		}
		w := m.thin
		if t {
			w = m.thick
		}
		n.Strokes = append(n.Strokes, Stroke{
			Line:  Line{cx + w/2, m.top, cx + w/2, m.bottom()},
			Thick: t,
		})
		cx += w
	}
	n.Width = cx - x
	n.Bounds = model.R(x, m.top, cx, m.bottom())
	return n
}
