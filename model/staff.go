package model

import "fmt"

type Clef uint8

const (
	Treble Clef = iota
	Bass
	Alto
	Tenor
)

var clefNames = []string{"treble", "bass", "alto", "tenor"}

func (c Clef) Valid() bool { return int(c) < len(clefNames) }

// Center is the diatonic step sitting on the middle staff line.
func (c Clef) Center() int {
	switch c {
	case Bass:
		return -6
	case Alto:
		return 0
	case Tenor:
		return -2
	}
	return 6
}

func (c Clef) String() string {
	if int(c) < len(clefNames) {
		return clefNames[c]
	}
	return fmt.Sprintf("clef(%d)", c)
}

func (c Clef) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Clef) UnmarshalText(b []byte) error {
	i, err := lookup(clefNames, string(b))
	*c = Clef(i)
	return err
}

type Staff struct {
	ID       string   `json:"id" yaml:"id"`
	Name     string   `json:"name,omitempty" yaml:"name,omitempty"`
	Clef     Clef     `json:"clef" yaml:"clef"`
	Key      int      `json:"key,omitempty" yaml:"key,omitempty"` // sharps, negative for flats
	Elements Sequence `json:"elements" yaml:"elements"`
}

func (s Staff) Copy() Staff {
	s.Elements = s.Elements.Copy()
	return s
}

type Score struct {
	ID     string  `json:"id" yaml:"id"`
	Title  string  `json:"title,omitempty" yaml:"title,omitempty"`
	Staffs []Staff `json:"staffs" yaml:"staffs"`
}

func (s Score) Copy() Score {
	staffs := make([]Staff, len(s.Staffs))
	for i, st := range s.Staffs {
		staffs[i] = st.Copy()
	}
	s.Staffs = staffs
	return s
}

// StaffIndex returns the position of the staff with the given id, or -1.
func (s Score) StaffIndex(id string) int {
	for i, st := range s.Staffs {
		if st.ID == id {
			return i
		}
	}
	return -1
}
