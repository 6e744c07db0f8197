// Package beam derives consistent beam flags for runs of short notes.
package beam

import "github.com/jsphweid/staffpad/model"

// Run is a half-open range [Start, End) of sequence indices.
type Run struct {
	Start, End int
}

func (r Run) Len() int { return r.End - r.Start }

func participates(e model.Element) bool {
	return e.BeamCandidate() && e.Beam != model.None
}

// Runs returns the maximal runs of contiguous notes that want a beam. A note
// flagged Begin always opens a new run and a note flagged End closes the
// current one. Runs of any length are returned, including single notes.
func Runs(seq model.Sequence) []Run {
	var res []Run
	start := -1
	flush := func(end int) {
		if start >= 0 {
			res = append(res, Run{start, end})
		}
		start = -1
	}
	for i, e := range seq {
		if !participates(e) {
			flush(i)
			continue
		}
		if e.Beam == model.Begin {
			flush(i)
		}
		if start < 0 {
			start = i
		}
		if e.Beam == model.End {
			flush(i + 1)
		}
	}
	flush(len(seq))
	return res
}

// Normalize returns a copy of seq in which every run of two or more notes is
// flagged Begin, Continue..., End and every other element carries no beam.
func Normalize(seq model.Sequence) model.Sequence {
	res := seq.Copy()
	runs := Runs(res)
	for i := range res {
		res[i].Beam = model.None
	}
	for _, r := range runs {
		if r.Len() < 2 {
			continue
		}
		res[r.Start].Beam = model.Begin
		for i := r.Start + 1; i < r.End-1; i++ {
			res[i].Beam = model.Continue
		}
		res[r.End-1].Beam = model.End
	}
	return res
}

// Valid reports whether every beamed run in seq is well formed.
func Valid(seq model.Sequence) bool {
	for i, e := range seq {
		if e.Beam == model.None {
			continue
		}
		if !e.BeamCandidate() {
			return false
		}
		var prev, next model.Flag
		if i > 0 {
			prev = seq[i-1].Beam
		}
		if i+1 < len(seq) {
			next = seq[i+1].Beam
		}
		switch e.Beam {
		case model.Begin:
			if !next.Closing() {
				return false
			}
		case model.Continue:
			if !prev.Open() || !next.Closing() {
				return false
			}
		case model.End:
			if !prev.Open() {
				return false
			}
		}
	}
	return true
}
