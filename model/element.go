package model

import (
	"fmt"
	"strings"
)

// Duration is the denominator of a note value: 1 is a whole note, 32 a
// thirty-second.
type Duration uint8

const (
	Whole        Duration = 1
	Half         Duration = 2
	Quarter      Duration = 4
	Eighth       Duration = 8
	Sixteenth    Duration = 16
	ThirtySecond Duration = 32
)

var Durations = []Duration{Whole, Half, Quarter, Eighth, Sixteenth, ThirtySecond}

func (d Duration) Valid() bool {
	for _, v := range Durations {
		if d == v {
			return true
		}
	}
	return false
}

// Beamable reports whether notes of this value are drawn with flags or beams.
func (d Duration) Beamable() bool { return d >= Eighth }

// Flags is the number of flags (or beam levels) the value needs.
func (d Duration) Flags() int {
	n := 0
	for v := d; v > Quarter; v >>= 1 {
		n++
	}
	return n
}

// Ticks converts the value to MIDI ticks given the quarter-note resolution.
func (d Duration) Ticks(perQuarter uint32) uint32 {
	return perQuarter * 4 / uint32(d)
}

type Accidental uint8

const (
	NoAccidental Accidental = iota
	DoubleFlat
	Flat
	Natural
	Sharp
	DoubleSharp
)

var accidentalNames = []string{"", "doubleflat", "flat", "natural", "sharp", "doublesharp"}

// Rank orders accidentals on the same diatonic step: flats first, then
// unmarked and natural, then sharps.
func (a Accidental) Rank() int {
	switch a {
	case DoubleFlat:
		return -2
	case Flat:
		return -1
	case Sharp:
		return 1
	case DoubleSharp:
		return 2
	}
	return 0
}

// Alteration is the semitone offset the accidental applies.
func (a Accidental) Alteration() int { return a.Rank() }

func (a Accidental) String() string {
	if int(a) < len(accidentalNames) {
		return accidentalNames[a]
	}
	return fmt.Sprintf("accidental(%d)", a)
}

func (a Accidental) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *Accidental) UnmarshalText(b []byte) error {
	i, err := lookup(accidentalNames, string(b))
	*a = Accidental(i)
	return err
}

// PitchAcc is a diatonic step counted from middle C (0) plus an optional
// accidental.
type PitchAcc struct {
	Pitch      int        `json:"pitch" yaml:"pitch"`
	Accidental Accidental `json:"accidental,omitempty" yaml:"accidental,omitempty"`
}

// Flag marks a note's role in a beam run or a tie chain.
type Flag uint8

const (
	None Flag = iota
	Begin
	Continue
	End
)

type BeamFlag = Flag
type TieFlag = Flag

var flagNames = []string{"", "begin", "continue", "end"}

// Open reports whether the flag links to a following note.
func (f Flag) Open() bool { return f == Begin || f == Continue }

// Closing reports whether the flag links to a preceding note.
func (f Flag) Closing() bool { return f == Continue || f == End }

func (f Flag) String() string {
	if int(f) < len(flagNames) {
		return flagNames[f]
	}
	return fmt.Sprintf("flag(%d)", f)
}

func (f Flag) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

func (f *Flag) UnmarshalText(b []byte) error {
	i, err := lookup(flagNames, string(b))
	*f = Flag(i)
	return err
}

type BarType uint8

const (
	SingleBar BarType = iota
	DoubleBar
	FinalBar
	RepeatBar
)

var barNames = []string{"single", "double", "final", "repeat"}

func (b BarType) Valid() bool { return int(b) < len(barNames) }

func (b BarType) String() string {
	if int(b) < len(barNames) {
		return barNames[b]
	}
	return fmt.Sprintf("bar(%d)", b)
}

func (b BarType) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

func (b *BarType) UnmarshalText(t []byte) error {
	i, err := lookup(barNames, string(t))
	*b = BarType(i)
	return err
}

type Kind uint8

const (
	NoteKind Kind = iota
	RestKind
	BarKind
)

var kindNames = []string{"note", "rest", "bar"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *Kind) UnmarshalText(b []byte) error {
	i, err := lookup(kindNames, string(b))
	*k = Kind(i)
	return err
}

// Element is one entry of a staff: a note (or chord), a rest or a barline.
// Only the fields relevant to Kind are meaningful.
type Element struct {
	Kind     Kind       `json:"kind" yaml:"kind"`
	Duration Duration   `json:"duration,omitempty" yaml:"duration,omitempty"`
	Pitches  []PitchAcc `json:"pitches,omitempty" yaml:"pitches,omitempty,flow"`
	Beam     BeamFlag   `json:"beam,omitempty" yaml:"beam,omitempty"`
	Tie      TieFlag    `json:"tie,omitempty" yaml:"tie,omitempty"`
	Bar      BarType    `json:"bar,omitempty" yaml:"bar,omitempty"`
}

func NewNote(d Duration, pitches ...PitchAcc) Element {
	return Element{Kind: NoteKind, Duration: d, Pitches: append([]PitchAcc(nil), pitches...)}
}

func NewRest(d Duration) Element {
	return Element{Kind: RestKind, Duration: d}
}

func NewBar(b BarType) Element {
	return Element{Kind: BarKind, Bar: b}
}

func (e Element) IsNote() bool { return e.Kind == NoteKind }

// BeamCandidate reports whether the element may take part in a beam run.
func (e Element) BeamCandidate() bool {
	return e.Kind == NoteKind && e.Duration.Beamable() && len(e.Pitches) > 0
}

func (e Element) Copy() Element {
	e.Pitches = append([]PitchAcc(nil), e.Pitches...)
	return e
}

// Sequence is the ordered content of one staff.
type Sequence []Element

func (s Sequence) Copy() Sequence {
	if s == nil {
		return nil
	}
	res := make(Sequence, len(s))
	for i, e := range s {
		res[i] = e.Copy()
	}
	return res
}

func lookup(names []string, s string) (int, error) {
	s = strings.ToLower(s)
	for i, n := range names {
		if n == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown value %q", s)
}
