// Package sample renders part of a staff as a MIDI file for audition.
package sample

import (
	"github.com/jsphweid/staffpad/chord"
	"github.com/jsphweid/staffpad/constants"
	"github.com/jsphweid/staffpad/model"
	"github.com/jsphweid/staffpad/pitch"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const velocity = 90

type writer struct {
	track    smf.Track
	now      uint32
	last     uint32
	sounding []uint8
}

func (w *writer) emit(msg []byte) {
	w.track.Add(w.now-w.last, msg)
	w.last = w.now
}

func (w *writer) release() {
	for _, k := range w.sounding {
		w.emit(midi.NoteOff(0, k))
	}
	w.sounding = nil
}

// Create plays seq at bpm on channel 0. Notes tied to their predecessor with
// the same pitches keep sounding instead of being struck again; bars are
// silent and take no time.
func Create(seq model.Sequence, bpm float64) *smf.SMF {
	tpq := uint32(constants.TicksPerQuarter)
	w := &writer{}
	w.emit(smf.MetaMeter(4, 4))
	w.emit(smf.MetaTempo(bpm))

	var prev []model.PitchAcc
	for _, e := range seq {
		switch e.Kind {
		case model.NoteKind:
			held := e.Tie.Closing() && len(w.sounding) > 0 && chord.Equal(prev, e.Pitches)
			if !held {
				w.release()
				for _, p := range chord.Sorted(e.Pitches) {
					k := pitch.MIDIKey(p)
					w.emit(midi.NoteOn(0, k, velocity))
					w.sounding = append(w.sounding, k)
				}
			}
			prev = e.Pitches
			w.now += e.Duration.Ticks(tpq)
			if !e.Tie.Open() {
				w.release()
			}
		case model.RestKind:
			w.release()
			w.now += e.Duration.Ticks(tpq)
		}
	}
	w.release()
	w.track.Close(w.now - w.last)

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(tpq)
	s.Add(w.track)
	return s
}
