// Package lily prints scores as LilyPond source.
package lily

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig"
	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/jsphweid/staffpad/beam"
	"github.com/jsphweid/staffpad/chord"
	"github.com/jsphweid/staffpad/model"
)

const source = `\version "2.24.0"
\header {
  title = {{ .Title | default "Untitled" | quote }}
  tagline = ##f
}
\score {
  <<
{{- range .Staffs }}
    \new Staff {{ with .Name }}\with { instrumentName = {{ quote . }} } {{ end }}{
      \clef {{ .Clef }}
      \key {{ .Key }} \major
      {{ join " " .Music }}
    }
{{- end }}
  >>
  \layout { }
}
`

var tmpl = template.Must(template.New("score").Funcs(sprig.TxtFuncMap()).Parse(source))

type staffData struct {
	Name  string
	Clef  string
	Key   string
	Music []string
}

type scoreData struct {
	Title  string
	Staffs []staffData
}

var (
	noteNames   = []string{"c", "d", "e", "f", "g", "a", "b"}
	sharpKeys   = []string{"c", "g", "d", "a", "e", "b", "fis", "cis"}
	flatKeys    = []string{"c", "f", "bes", "es", "as", "des", "ges", "ces"}
	accSuffixes = map[model.Accidental]string{
		model.DoubleFlat:  "eses",
		model.Flat:        "es",
		model.Natural:     "!",
		model.Sharp:       "is",
		model.DoubleSharp: "isis",
	}
	barTypes = map[model.BarType]string{
		model.SingleBar: "|",
		model.DoubleBar: "||",
		model.FinalBar:  "|.",
		model.RepeatBar: ":|.",
	}
)

// Pitch spells p in absolute octave mode, middle C being c'.
func Pitch(p model.PitchAcc) string {
	octave := p.Pitch / 7
	name := p.Pitch % 7
	if name < 0 {
		name += 7
		octave--
	}
	s := noteNames[name]
	suffix := accSuffixes[p.Accidental]
	if suffix != "!" {
		s += suffix
	}
	if octave < 0 {
		s += strings.Repeat(",", -octave-1)
	} else {
		s += strings.Repeat("'", octave+1)
	}
	if suffix == "!" {
		s += suffix
	}
	return s
}

func key(k int) string {
	switch {
	case k > 0 && k < len(sharpKeys):
		return sharpKeys[k]
	case k < 0 && -k < len(flatKeys):
		return flatKeys[-k]
	}
	return "c"
}

// Element prints one element; beam and tie marks follow the note.
func Element(e model.Element) string {
	switch e.Kind {
	case model.RestKind:
		return fmt.Sprintf("r%d", e.Duration)
	case model.BarKind:
		return fmt.Sprintf(`\bar "%s"`, barTypes[e.Bar])
	}
	var s string
	pitches := chord.Sorted(e.Pitches)
	if len(pitches) == 1 {
		s = Pitch(pitches[0])
	} else {
		names := make([]string, len(pitches))
		for i, p := range pitches {
			names[i] = Pitch(p)
		}
		s = "<" + strings.Join(names, " ") + ">"
	}
	s += fmt.Sprintf("%d", e.Duration)
	if e.Tie.Open() {
		s += "~"
	}
	switch e.Beam {
	case model.Begin:
		s += "["
	case model.End:
		s += "]"
	}
	return s
}

func Write(w io.Writer, score model.Score) error {
	data := scoreData{Title: score.Title}
	for _, st := range score.Staffs {
		sd := staffData{Name: st.Name, Clef: st.Clef.String(), Key: key(st.Key)}
		for _, e := range beam.Normalize(st.Elements) {
			sd.Music = append(sd.Music, Element(e))
		}
		data.Staffs = append(data.Staffs, sd)
	}
	if err := tmpl.Execute(w, data); err != nil {
		return fault.Wrap(err, fmsg.With("rendering lilypond template"))
	}
	return nil
}

func Export(score model.Score) (string, error) {
	var buf bytes.Buffer
	if err := Write(&buf, score); err != nil {
		return "", err
	}
	return buf.String(), nil
}
