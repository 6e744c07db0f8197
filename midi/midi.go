package midi

import (
	"bytes"
	"fmt"
	"os"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	"gitlab.com/gomidi/midi/v2/smf"
)

func ReadMidiFile(filepath string) (s *smf.SMF, e error) {
	var blank smf.SMF

	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r := recover(); r != nil {
			s = &blank
			e = fault.Wrap(fault.New(fmt.Sprint(r)), ftag.With(ftag.InvalidArgument), fmsg.With("parser panicked on "+filepath))
		}
	}()

	dat, err := os.ReadFile(filepath)
	if err != nil {
		return &blank, fault.Wrap(err, fmsg.With("reading midi file"))
	}

	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return &blank, fault.Wrap(err, ftag.With(ftag.InvalidArgument), fmsg.WithDesc("parsing midi file", filepath+" is not a standard MIDI file"))
	}

	return res, nil
}
