// Package edit is the single entry point for changing a staff's sequence.
// Every operation takes the sequence by value and returns a new one.
package edit

import (
	"github.com/jsphweid/staffpad/beam"
	"github.com/jsphweid/staffpad/caret"
	"github.com/jsphweid/staffpad/chord"
	"github.com/jsphweid/staffpad/model"
	"golang.org/x/exp/slices"
)

type BeamMode uint8

const (
	NoBeam BeamMode = iota
	Beam
)

type TieMode uint8

const (
	NoTie TieMode = iota
	Tie
)

type Result struct {
	Sequence model.Sequence
	// Index is the position of the inserted or overwritten element.
	Index int
	// Advance is added to the caret that was passed in.
	Advance int
}

// Caret returns the caret position after the edit made at pos.
func (r Result) Caret(pos int) int { return pos + r.Advance }

// Apply inserts el at an even caret or overwrites the element under an odd
// one. Overwriting a note with a note of the same duration merges the two
// chords instead of replacing. A merged chord keeps its beam in Beam mode and
// leaves its run in NoBeam mode. Beam flags of the neighbours are kept
// consistent; inserting anything that cannot be beamed renormalizes the
// whole sequence. An insert between two tied notes cuts the tie unless el
// continues it.
func Apply(pos int, seq model.Sequence, el model.Element, mode BeamMode) Result {
	target := caret.Decode(pos, len(seq))
	res := seq.Copy()
	el = el.Copy()
	if el.IsNote() {
		el.Pitches = chord.Merge(nil, el.Pitches)
	}

	k := target.Index
	left, right := k-1, k
	advance := 2
	if target.Mode == caret.Overwrite {
		right = k + 1
		advance = 0
	}

	merged := false
	if target.Mode == caret.Overwrite {
		old := res[k]
		if old.IsNote() && el.IsNote() && old.Duration == el.Duration {
			// the chord keeps its place in the tie chain
			old.Pitches = chord.Merge(old.Pitches, el.Pitches)
			el = old
			merged = true
		} else {
			detachTie(res, k)
		}
	}
	if !merged || (mode == NoBeam && el.Beam != model.None) {
		applyBeam(res, left, right, &el, mode)
	}
	if target.Mode == caret.Insert && !continuesTie(res, k, el) {
		cutTie(res, left, right)
	}

	if target.Mode == caret.Overwrite {
		res[k] = el
	} else {
		res = slices.Insert(res, k, el)
	}

	if !el.BeamCandidate() {
		res = beam.Normalize(res)
	}
	return Result{Sequence: res, Index: k, Advance: advance}
}

func applyBeam(seq model.Sequence, left, right int, el *model.Element, mode BeamMode) {
	var l, r *model.Element
	if left >= 0 && left < len(seq) {
		l = &seq[left]
	}
	if right >= 0 && right < len(seq) {
		r = &seq[right]
	}
	beamed := func(e *model.Element) bool {
		return e != nil && e.IsNote() && e.Beam != model.None
	}

	if el.BeamCandidate() && mode != NoBeam {
		if beamed(l) && beamed(r) {
			el.Beam = model.Continue
			if r.Beam == model.Begin {
				r.Beam = model.Continue
			}
			if l.Beam == model.End {
				l.Beam = model.Continue
			}
			return
		}
		el.Beam = model.Begin
		if beamed(l) && l.Beam.Open() {
			el.Beam = model.Continue
		}
		if r != nil && r.Beam == model.Begin {
			r.Beam = model.Continue
		}
		return
	}

	el.Beam = model.None
	if r != nil {
		switch r.Beam {
		case model.Continue:
			r.Beam = model.Begin
		case model.End:
			r.Beam = model.None
		}
	}
	if l != nil {
		switch l.Beam {
		case model.Begin:
			l.Beam = model.None
		case model.Continue:
			l.Beam = model.End
		}
	}
}

// continuesTie reports whether el, inserted at index, is the middle link of
// the tie that runs across that position.
func continuesTie(seq model.Sequence, index int, el model.Element) bool {
	return el.Tie == model.Continue && index > 0 && chord.Equal(seq[index-1].Pitches, el.Pitches)
}

// cutTie ends the tie chain at left and restarts it at right, so that no tie
// spans the element put between them.
func cutTie(seq model.Sequence, left, right int) {
	if left < 0 || right >= len(seq) || !seq[left].Tie.Open() || !seq[right].Tie.Closing() {
		return
	}
	switch seq[left].Tie {
	case model.Begin:
		seq[left].Tie = model.None
	case model.Continue:
		seq[left].Tie = model.End
	}
	switch seq[right].Tie {
	case model.End:
		seq[right].Tie = model.None
	case model.Continue:
		seq[right].Tie = model.Begin
	}
}

// detachTie unlinks the tie chain around index so that no neighbour points
// at a note that is about to disappear.
func detachTie(seq model.Sequence, index int) {
	e := seq[index]
	if e.Tie == model.Begin || e.Tie == model.Continue {
		if index+1 < len(seq) {
			switch seq[index+1].Tie {
			case model.End:
				seq[index+1].Tie = model.None
			case model.Continue:
				seq[index+1].Tie = model.Begin
			}
		}
	}
	if e.Tie == model.End || e.Tie == model.Continue {
		if index > 0 {
			switch seq[index-1].Tie {
			case model.Begin:
				seq[index-1].Tie = model.None
			case model.Continue:
				seq[index-1].Tie = model.End
			}
		}
	}
	seq[index].Tie = model.None
}

// Compose turns the active input pitches into a candidate note for pos. With
// tie mode on and the caret right behind a note with the same pitches, the
// two are tied: the predecessor opens (or continues) the tie and the
// candidate closes it.
func Compose(pos int, seq model.Sequence, pitches []model.PitchAcc, d model.Duration, mode TieMode) (model.Sequence, model.Element) {
	target := caret.Decode(pos, len(seq))
	res := seq.Copy()
	el := model.NewNote(d, chord.Merge(nil, pitches)...)
	if mode == NoTie || target.Mode != caret.Insert || target.Index == 0 {
		return res, el
	}

	prev := &res[target.Index-1]
	if !prev.IsNote() || !chord.Equal(prev.Pitches, el.Pitches) {
		return res, el
	}
	el.Tie = model.End
	switch prev.Tie {
	case model.None:
		prev.Tie = model.Begin
	case model.End:
		prev.Tie = model.Continue
	default:
		if target.Index < len(res) && res[target.Index].Tie.Closing() {
			el.Tie = model.Continue
		}
	}
	return res, el
}

// Backspace removes the element under an odd caret, or the one in front of an
// even caret, and returns the caret just behind the previous element. Beam
// and tie flags of the neighbours are repaired. On an empty sequence or at
// position 0 nothing happens.
func Backspace(pos int, seq model.Sequence) (model.Sequence, int) {
	if len(seq) == 0 {
		return seq, 0
	}
	target := caret.Decode(pos, len(seq))
	j := target.Index
	if target.Mode == caret.Insert {
		if j == 0 {
			return seq, pos
		}
		j--
	}

	res := seq.Copy()
	switch res[j].Beam {
	case model.Begin:
		if j+1 < len(res) {
			switch res[j+1].Beam {
			case model.Continue:
				res[j+1].Beam = model.Begin
			case model.End:
				res[j+1].Beam = model.None
			}
		}
	case model.End:
		if j > 0 {
			switch res[j-1].Beam {
			case model.Continue:
				res[j-1].Beam = model.End
			case model.Begin:
				res[j-1].Beam = model.None
			}
		}
	}
	if res[j].Tie != model.Continue {
		detachTie(res, j)
	}
	res = slices.Delete(res, j, j+1)
	return res, caret.Before(j)
}
