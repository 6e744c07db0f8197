// Package caret implements the doubled caret addressing of a staff.
//
// For a sequence of n elements the caret ranges over 0..2n. An even position
// 2k is the insertion point before element k (k == n appends), an odd
// position 2k+1 targets element k for overwriting.
package caret

import "fmt"

type Mode uint8

const (
	Insert Mode = iota
	Overwrite
)

func (m Mode) String() string {
	if m == Overwrite {
		return "overwrite"
	}
	return "insert"
}

type Target struct {
	Mode  Mode
	Index int
}

// Decode splits a caret position. It panics when pos is outside [0, 2n]:
// callers clamp on navigation, so a bad position is a bug.
func Decode(pos, n int) Target {
	if pos < 0 || pos > 2*n {
		panic(fmt.Sprintf("caret %d out of range [0, %d]", pos, 2*n))
	}
	if pos%2 == 1 {
		return Target{Mode: Overwrite, Index: pos / 2}
	}
	return Target{Mode: Insert, Index: pos / 2}
}

func (t Target) Encode() int {
	if t.Mode == Overwrite {
		return 2*t.Index + 1
	}
	return 2 * t.Index
}

func (t Target) String() string {
	return fmt.Sprintf("%v@%d", t.Mode, t.Index)
}

// Clamp limits pos to the valid range for n elements.
func Clamp(pos, n int) int {
	if pos < 0 {
		return 0
	}
	if pos > 2*n {
		return 2 * n
	}
	return pos
}

// Move shifts pos by delta, stopping at the boundaries.
func Move(pos, delta, n int) int {
	return Clamp(pos+delta, n)
}

// After is the insertion point directly behind element index.
func After(index int) int {
	return 2 * (index + 1)
}

// Before is the insertion point directly in front of element index.
func Before(index int) int {
	return 2 * index
}

// On is the overwrite position of element index.
func On(index int) int {
	return 2*index + 1
}
