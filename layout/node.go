package layout

import (
	"fmt"

	"github.com/jsphweid/staffpad/model"
)

type Kind uint8

const (
	StaffKind Kind = iota
	ClefKind
	GapKind
	NoteKind
	RestKind
	BarKind
	BeamKind
	TieKind
)

var kindNames = []string{"staff", "clef", "gap", "note", "rest", "bar", "beam", "tie"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Box is carried by every node. X and Width describe the horizontal slot the
// node advances the cursor by; Bounds covers everything it draws.
type Box struct {
	X      float64    `json:"x"`
	Width  float64    `json:"width"`
	Bounds model.Rect `json:"bounds"`
	// Source is the index of the element the node was built from, or -1.
	Source int `json:"source"`
	// Caret is the caret position anchored at this node, or -1.
	Caret int `json:"caret"`
}

func (b *Box) box() *Box { return b }

// Node is one of *StaffNode, *ClefNode, *GapNode, *NoteNode, *RestNode,
// *BarNode, *BeamNode or *TieNode.
type Node interface {
	Kind() Kind
	box() *Box
}

func Width(n Node) float64 { return n.box().Width }
func Bounds(n Node) model.Rect { return n.box().Bounds }
func Position(n Node) float64 { return n.box().X }

func Source(n Node) (int, bool) {
	s := n.box().Source
	return s, s >= 0
}

func Anchor(n Node) (int, bool) {
	c := n.box().Caret
	return c, c >= 0
}

type Line struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

func (l Line) Bounds(thickness float64) model.Rect {
	r := model.R(l.X0, l.Y0, l.X1, l.Y1)
	if l.X0 == l.X1 {
		r.X0 -= thickness / 2
		r.X1 += thickness / 2
	}
	if l.Y0 == l.Y1 {
		r.Y0 -= thickness / 2
		r.Y1 += thickness / 2
	}
	return r
}

type StaffNode struct {
	Box
	Lines []Line `json:"lines"`
}

type ClefNode struct {
	Box
	Clef model.Clef `json:"clef"`
	// Anchor is the point on the line the clef names.
	Anchor model.Point `json:"anchor"`
}

type GapNode struct {
	Box
	// Suppressed gaps are the live insertion point; they carry no caret.
	Suppressed bool `json:"suppressed,omitempty"`
}

type Head struct {
	Pitch   model.PitchAcc `json:"pitch"`
	Center  model.Point    `json:"center"`
	Bounds  model.Rect     `json:"bounds"`
	Flipped bool           `json:"flipped,omitempty"`
	Hollow  bool           `json:"hollow,omitempty"`
}

type Accidental struct {
	Accidental model.Accidental `json:"accidental"`
	Center     model.Point      `json:"center"`
}

type NoteNode struct {
	Box
	Duration    model.Duration `json:"duration"`
	StemUp      bool           `json:"stemUp"`
	Heads       []Head         `json:"heads"`
	Stem        *Line          `json:"stem,omitempty"`
	Flags       int            `json:"flags,omitempty"`
	Ledgers     []Line         `json:"ledgers,omitempty"`
	Accidentals []Accidental   `json:"accidentals,omitempty"`
	Beamed      bool           `json:"beamed,omitempty"`
	Tie         model.TieFlag  `json:"tie,omitempty"`
}

type RestNode struct {
	Box
	Duration model.Duration `json:"duration"`
	Center   model.Point    `json:"center"`
}

type Stroke struct {
	Line
	Thick bool `json:"thick,omitempty"`
}

type BarNode struct {
	Box
	Bar     model.BarType `json:"bar"`
	Strokes []Stroke      `json:"strokes"`
	Dots    []model.Point `json:"dots,omitempty"`
}

type BeamStroke struct {
	Line
	Level int `json:"level"`
}

type BeamNode struct {
	Box
	StemUp    bool         `json:"stemUp"`
	Thickness float64      `json:"thickness"`
	Strokes   []BeamStroke `json:"strokes"`
	// Members are the element indices joined by the beam.
	Members []int `json:"members"`
}

// Arc is a cubic Bézier curve.
type Arc struct {
	P0 model.Point `json:"p0"`
	P1 model.Point `json:"p1"`
	P2 model.Point `json:"p2"`
	P3 model.Point `json:"p3"`
}

type TieNode struct {
	Box
	From int   `json:"from"`
	To   int   `json:"to"`
	Arcs []Arc `json:"arcs"`
}

func (*StaffNode) Kind() Kind { return StaffKind }
func (*ClefNode) Kind() Kind { return ClefKind }
func (*GapNode) Kind() Kind { return GapKind }
func (*NoteNode) Kind() Kind { return NoteKind }
func (*RestNode) Kind() Kind { return RestKind }
func (*BarNode) Kind() Kind { return BarKind }
func (*BeamNode) Kind() Kind { return BeamKind }
func (*TieNode) Kind() Kind { return TieKind }

type Tagged struct {
	Kind Kind `json:"kind"`
	Node Node `json:"node"`
}

// Tag wraps each node with its kind for encoding.
func Tag(nodes []Node) []Tagged {
	res := make([]Tagged, 0, len(nodes))
	for _, n := range nodes {
		res = append(res, Tagged{Kind: n.Kind(), Node: n})
	}
	return res
}

// TotalWidth sums the advance of every node.
func TotalWidth(nodes []Node) float64 {
	var total float64
	for _, n := range nodes {
		total += Width(n)
	}
	return total
}
