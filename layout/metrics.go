package layout

import (
	"github.com/jsphweid/staffpad/model"
	"github.com/jsphweid/staffpad/pitch"
)

// Staff describes where and how a staff is drawn.
type Staff struct {
	Clef model.Clef
	Key  int
	// Origin is the left end of the top staff line.
	Origin model.Point
	// Space is the distance between two staff lines.
	Space float64
}

const defaultSpace = 10

// metrics are the engraving sizes, all relative to the staff space.
type metrics struct {
	clef  model.Clef
	top   float64
	space float64

	headW, headH       float64
	stemLen, minStem   float64
	ledgerExt          float64
	accW, accGap       float64
	flagW              float64
	clefW, restW       float64
	thin, thick        float64
	barGap, dotR       float64
	beamThick, beamGap float64
	stub, maxRise      float64
}

func newMetrics(staff Staff) metrics {
	s := staff.Space
	if s <= 0 {
		s = defaultSpace
	}
	return metrics{
		clef:      staff.Clef,
		top:       staff.Origin.Y,
		space:     s,
		headW:     1.3 * s,
		headH:     s,
		stemLen:   3.5 * s,
		minStem:   2.5 * s,
		ledgerExt: 0.4 * s,
		accW:      0.9 * s,
		accGap:    0.2 * s,
		flagW:     0.9 * s,
		clefW:     2.6 * s,
		restW:     1.4 * s,
		thin:      0.15 * s,
		thick:     0.5 * s,
		barGap:    0.4 * s,
		dotR:      0.2 * s,
		beamThick: 0.5 * s,
		beamGap:   0.25 * s,
		stub:      s,
		maxRise:   3 * s,
	}
}

// y is the vertical centre of an absolute diatonic step.
func (m metrics) y(step int) float64 {
	return pitch.Y(step, m.clef, m.top, m.space)
}

// yRel is the vertical centre of a treble-relative step.
func (m metrics) yRel(rel int) float64 {
	return m.top + 2*m.space - float64(rel-pitch.Middle)*m.space/2
}

func (m metrics) middle() float64 { return m.top + 2*m.space }
func (m metrics) bottom() float64 { return m.top + 4*m.space }

// column is the vertical extent used for caret rectangles.
func (m metrics) column(x0, x1 float64) model.Rect {
	return model.R(x0, m.top-m.space, x1, m.bottom()+m.space)
}
