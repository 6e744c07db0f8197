package chord

import (
	"fmt"

	"github.com/jsphweid/staffpad/model"
	"golang.org/x/exp/slices"
)

func less(a, b model.PitchAcc) bool {
	if a.Pitch != b.Pitch {
		return a.Pitch < b.Pitch
	}
	return a.Accidental.Rank() < b.Accidental.Rank()
}

// Sort orders pitches ascending in place; on the same step flats come before
// unmarked notes, which come before sharps.
func Sort(pitches []model.PitchAcc) {
	slices.SortStableFunc(pitches, less)
}

// Sorted returns a sorted copy.
func Sorted(pitches []model.PitchAcc) []model.PitchAcc {
	res := slices.Clone(pitches)
	Sort(res)
	return res
}

// Merge unions two pitch sets, dropping exact duplicates, and sorts the result.
func Merge(a, b []model.PitchAcc) []model.PitchAcc {
	res := make([]model.PitchAcc, 0, len(a)+len(b))
	for _, p := range append(slices.Clone(a), b...) {
		if !slices.Contains(res, p) {
			res = append(res, p)
		}
	}
	Sort(res)
	return res
}

// Equal reports whether both chords hold the same pitches and accidentals.
func Equal(a, b []model.PitchAcc) bool {
	return CreateChordKey(a) == CreateChordKey(b)
}

// CreateChordKey renders a stable key such as "0-2b-4".
func CreateChordKey(pitches []model.PitchAcc) string {
	sorted := Merge(nil, pitches)
	var res string
	for i, p := range sorted {
		res += fmt.Sprintf("%v", p.Pitch)
		switch p.Accidental {
		case model.DoubleFlat:
			res += "bb"
		case model.Flat:
			res += "b"
		case model.Natural:
			res += "n"
		case model.Sharp:
			res += "s"
		case model.DoubleSharp:
			res += "x"
		}
		if i < len(sorted)-1 {
			res += "-"
		}
	}
	return res
}

// Lowest and Highest return the extreme steps of a non-empty chord.
func Lowest(pitches []model.PitchAcc) int {
	lo := pitches[0].Pitch
	for _, p := range pitches[1:] {
		if p.Pitch < lo {
			lo = p.Pitch
		}
	}
	return lo
}

func Highest(pitches []model.PitchAcc) int {
	hi := pitches[0].Pitch
	for _, p := range pitches[1:] {
		if p.Pitch > hi {
			hi = p.Pitch
		}
	}
	return hi
}
