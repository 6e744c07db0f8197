// Package pitch maps diatonic steps to staff geometry, names and MIDI keys.
package pitch

import (
	"fmt"
	"math"
	"strings"

	"github.com/jsphweid/staffpad/model"
)

// Middle is the treble-relative step of the middle staff line (B4).
const Middle = 6

var names = []string{"C", "D", "E", "F", "G", "A", "B"}
var scale = []int{0, 2, 4, 5, 7, 9, 11}

func mod7(step int) int {
	return ((step % 7) + 7) % 7
}

func octave(step int) int {
	o := step / 7
	if step < 0 && step%7 != 0 {
		o--
	}
	return 4 + o
}

// Step converts an absolute diatonic step into a staff-relative one, where the
// middle line of any clef reads as B4 of a treble staff.
func Step(step int, clef model.Clef) int {
	return step - clef.Center() + Middle
}

// Y returns the vertical centre of a head on the given step. top is the y of
// the top staff line and space the distance between two lines.
func Y(step int, clef model.Clef, top, space float64) float64 {
	return top + 2*space - float64(Step(step, clef)-Middle)*space/2
}

// StepAt is the inverse of Y, rounded to the nearest step.
func StepAt(y float64, clef model.Clef, top, space float64) int {
	rel := (top + 2*space - y) / (space / 2)
	return int(math.Round(rel)) + clef.Center()
}

// RootName is the letter name of the step.
func RootName(step int) string {
	return names[mod7(step)]
}

var accidentalSuffix = map[model.Accidental]string{
	model.DoubleFlat:  "bb",
	model.Flat:        "b",
	model.Natural:     "n",
	model.Sharp:       "#",
	model.DoubleSharp: "x",
}

// Name is the scientific name of the pitch, e.g. "C#4" or "Bb3".
func Name(p model.PitchAcc) string {
	return fmt.Sprintf("%s%s%d", RootName(p.Pitch), accidentalSuffix[p.Accidental], octave(p.Pitch))
}

// Parse reads a name produced by Name.
func Parse(s string) (model.PitchAcc, error) {
	var res model.PitchAcc
	if len(s) < 2 {
		return res, fmt.Errorf("pitch %q too short", s)
	}
	letter := strings.IndexByte("CDEFGAB", strings.ToUpper(s[:1])[0])
	if letter < 0 {
		return res, fmt.Errorf("pitch %q has no note letter", s)
	}
	rest := s[1:]
	for acc, suffix := range accidentalSuffix {
		if strings.HasPrefix(rest, suffix) && len(suffix) > len(accidentalSuffix[res.Accidental]) {
			res.Accidental = acc
		}
	}
	rest = rest[len(accidentalSuffix[res.Accidental]):]
	var oct int
	if _, err := fmt.Sscanf(rest, "%d", &oct); err != nil {
		return res, fmt.Errorf("pitch %q has no octave: %w", s, err)
	}
	res.Pitch = (oct-4)*7 + letter
	return res, nil
}

// MIDIKey returns the MIDI key number; middle C is 60.
func MIDIKey(p model.PitchAcc) uint8 {
	key := 60 + (octave(p.Pitch)-4)*12 + scale[mod7(p.Pitch)] + p.Accidental.Alteration()
	if key < 0 {
		return 0
	}
	if key > 127 {
		return 127
	}
	return uint8(key)
}

// FromMIDIKey spells a MIDI key, using sharps for the black keys.
func FromMIDIKey(key uint8) model.PitchAcc {
	oct := int(key)/12 - 5
	semi := int(key) % 12
	for i := len(scale) - 1; i >= 0; i-- {
		if scale[i] <= semi {
			p := model.PitchAcc{Pitch: oct*7 + i}
			if scale[i] < semi {
				p.Accidental = model.Sharp
			}
			return p
		}
	}
	return model.PitchAcc{Pitch: oct * 7}
}
