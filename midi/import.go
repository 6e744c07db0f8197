package midi

import (
	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	"github.com/jsphweid/staffpad/beam"
	"github.com/jsphweid/staffpad/caret"
	"github.com/jsphweid/staffpad/chord"
	"github.com/jsphweid/staffpad/edit"
	"github.com/jsphweid/staffpad/model"
	"github.com/jsphweid/staffpad/pitch"
	"golang.org/x/exp/slices"
	"gitlab.com/gomidi/midi/v2/smf"
)

type ImportOptions struct {
	// Track selects one track; a negative value merges all of them.
	Track int
	// Grid is the shortest note value onsets are snapped to.
	Grid model.Duration
	// BeatsPerBar counts quarter notes per measure.
	BeatsPerBar int
}

var DefaultImportOptions = ImportOptions{Track: -1, Grid: model.Sixteenth, BeatsPerBar: 4}

type span struct {
	start, end int64
	key        uint8
}

// spans pairs note starts with their ends, in ticks.
func spans(s *smf.SMF, track int) []span {
	var res []span
	for i, events := range s.Tracks {
		if track >= 0 && i != track {
			continue
		}
		var abs int64
		pressed := map[[2]uint8]int64{}
		for _, event := range events {
			abs += int64(event.Delta)
			var channel, key, velocity uint8
			on := event.Message.GetNoteOn(&channel, &key, &velocity)
			switch {
			case on && velocity > 0:
				pressed[[2]uint8{channel, key}] = abs
			case on, event.Message.GetNoteOff(&channel, &key, &velocity):
				id := [2]uint8{channel, key}
				if start, ok := pressed[id]; ok {
					res = append(res, span{start, abs, key})
					delete(pressed, id)
				}
			}
		}
	}
	slices.SortStableFunc(res, func(a, b span) bool {
		if a.start != b.start {
			return a.start < b.start
		}
		return a.key < b.key
	})
	return res
}

// segment is a chord or, with no pitches, a rest, measured in grid units.
type segment struct {
	at, length int
	pitches    []model.PitchAcc
}

// Import reads notes from s into a sequence. Onsets are snapped to the grid,
// simultaneous onsets become chords, silences become rests and a barline is
// put after every full measure. Notes that cross a barline or need more than
// one note value are split and tied. Runs of short notes are beamed per beat.
func Import(s *smf.SMF, opts ImportOptions) (model.Sequence, error) {
	mt, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, fault.Wrap(fault.New("unsupported time format"),
			ftag.With(ftag.InvalidArgument), fmsg.WithDesc("SMPTE time format", "Only files with metric ticks can be imported."))
	}
	if !opts.Grid.Valid() || opts.Grid < model.Quarter {
		opts.Grid = DefaultImportOptions.Grid
	}
	if opts.BeatsPerBar <= 0 {
		opts.BeatsPerBar = DefaultImportOptions.BeatsPerBar
	}
	if opts.Track >= len(s.Tracks) {
		return nil, fault.Wrap(fault.New("no such track"),
			ftag.With(ftag.InvalidArgument), fmsg.WithDesc("track out of range", "The file does not have that many tracks."))
	}

	unit := float64(opts.Grid.Ticks(uint32(mt.Resolution())))
	snap := func(t int64) int { return int(float64(t)/unit + 0.5) }
	perBeat := int(opts.Grid) / 4

	segs := chords(spans(s, opts.Track), snap)
	b := builder{
		perBar:  perBeat * opts.BeatsPerBar,
		perBeat: perBeat,
		grid:    int(opts.Grid),
	}
	for _, sg := range segs {
		b.add(sg)
	}
	return b.finish(), nil
}

func chords(sp []span, snap func(int64) int) []segment {
	var res []segment
	for i := 0; i < len(sp); {
		at := snap(sp[i].start)
		end := at
		var pitches []model.PitchAcc
		j := i
		for ; j < len(sp) && snap(sp[j].start) == at; j++ {
			pitches = append(pitches, pitch.FromMIDIKey(sp[j].key))
			e := snap(sp[j].end)
			if end == at || e < end {
				end = e
			}
		}
		if j < len(sp) {
			if next := snap(sp[j].start); next < end {
				end = next
			}
		}
		if end <= at {
			end = at + 1
		}
		if n := len(res); n > 0 {
			prev := res[n-1]
			if gap := at - (prev.at + prev.length); gap > 0 {
				res = append(res, segment{at: prev.at + prev.length, length: gap})
			} else if gap < 0 {
				res[n-1].length = at - prev.at
			}
		} else if at > 0 {
			res = append(res, segment{at: 0, length: at})
		}
		res = append(res, segment{at: at, length: end - at, pitches: chord.Merge(nil, pitches)})
		i = j
	}
	return res
}

type builder struct {
	perBar, perBeat, grid int
	seq                   model.Sequence
	// beats holds the indices of the first element of every beat.
	beats []int
}

// values splits n grid units into note values, longest first.
func (b *builder) values(n int) []model.Duration {
	var res []model.Duration
	for n > 0 {
		u := 1
		for u*2 <= n && u*2 <= b.grid {
			u *= 2
		}
		res = append(res, model.Duration(b.grid/u))
		n -= u
	}
	return res
}

func (b *builder) insert(el model.Element) {
	mode := edit.NoBeam
	if el.BeamCandidate() {
		mode = edit.Beam
	}
	res := edit.Apply(caret.After(len(b.seq)-1), b.seq, el, mode)
	b.seq = res.Sequence
}

func (b *builder) add(sg segment) {
	var pieces []model.Element
	at, left := sg.at, sg.length
	for left > 0 {
		if at > 0 && at%b.perBar == 0 {
			pieces = append(pieces, model.Element{Kind: model.BarKind})
		}
		chunk := b.perBar - at%b.perBar
		if chunk > left {
			chunk = left
		}
		for _, d := range b.values(chunk) {
			if sg.pitches == nil {
				pieces = append(pieces, model.NewRest(d))
			} else {
				pieces = append(pieces, model.NewNote(d, sg.pitches...))
			}
		}
		at += chunk
		left -= chunk
	}

	var notes []int
	for i, p := range pieces {
		if p.IsNote() {
			notes = append(notes, i)
		}
	}
	for k, i := range notes {
		switch {
		case len(notes) == 1:
		case k == 0:
			pieces[i].Tie = model.Begin
		case k == len(notes)-1:
			pieces[i].Tie = model.End
		default:
			pieces[i].Tie = model.Continue
		}
	}

	t := sg.at
	for _, p := range pieces {
		if p.Kind == model.BarKind {
			b.insert(p)
			continue
		}
		if t%b.perBeat == 0 {
			b.beats = append(b.beats, len(b.seq))
		}
		b.insert(p)
		t += b.grid / int(p.Duration)
	}
}

// finish splits beams at beat starts and closes the piece with a final bar.
func (b *builder) finish() model.Sequence {
	seq := b.seq
	for _, i := range b.beats {
		if i == 0 || i >= len(seq) || seq[i].Beam == model.None {
			continue
		}
		if seq[i].Beam == model.Continue {
			seq[i].Beam = model.Begin
		} else if seq[i].Beam == model.End {
			seq[i].Beam = model.None
		}
		switch seq[i-1].Beam {
		case model.Continue:
			seq[i-1].Beam = model.End
		case model.Begin:
			seq[i-1].Beam = model.None
		}
	}
	seq = beam.Normalize(seq)
	if len(seq) > 0 {
		seq = append(seq, model.NewBar(model.FinalBar))
	}
	return seq
}
