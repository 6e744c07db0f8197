package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"sync"

	"github.com/jsphweid/staffpad/model"
	"github.com/jsphweid/staffpad/pitch"
	"github.com/jsphweid/staffpad/session"
	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver
)

var (
	recordPort     int
	recordDuration int
	recordStaff    string
)

func init() {
	recordCmd.Flags().IntVar(&recordPort, "port", 0, "MIDI input port number")
	recordCmd.Flags().IntVar(&recordDuration, "duration", int(model.Quarter), "note value of every entered chord")
	recordCmd.Flags().StringVar(&recordStaff, "staff", "", "staff id, defaults to the last staff")
	rootCmd.AddCommand(recordCmd)
}

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Enters chords from a MIDI keyboard",
	Long: `Listens to a MIDI input port. Every time all keys are released, the
chord that was held is inserted at the end of the staff.`,
	Run: func(cmd *cobra.Command, args []string) {
		record()
	},
}

// chordInput collects the keys of one chord until every key is up.
type chordInput struct {
	mu   sync.Mutex
	down map[uint8]bool
	held map[uint8]bool
}

func newChordInput() *chordInput {
	return &chordInput{down: map[uint8]bool{}, held: map[uint8]bool{}}
}

func (c *chordInput) press(key uint8) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.down[key] = true
	c.held[key] = true
}

// release returns the finished chord once the last key goes up.
func (c *chordInput) release(key uint8) ([]model.PitchAcc, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.down, key)
	if len(c.down) > 0 || len(c.held) == 0 {
		return nil, false
	}
	var res []model.PitchAcc
	for k := range c.held {
		res = append(res, pitch.FromMIDIKey(k))
	}
	c.held = map[uint8]bool{}
	return res, true
}

func record() {
	score, p := mustOpenScore()
	s := session.New(score, p)
	id := recordStaff
	if id == "" {
		if len(score.Staffs) == 0 {
			st, err := s.AddStaff("", model.Treble, 0)
			cobra.CheckErr(err)
			id = st.ID
		} else {
			id = score.Staffs[len(score.Staffs)-1].ID
		}
	}
	_, err := s.Staff(id)
	cobra.CheckErr(err)

	defer midi.CloseDriver()
	in, err := midi.InPort(recordPort)
	if err != nil {
		fmt.Printf("Can't find MIDI input port %d\n", recordPort)
		return
	}

	input := newChordInput()
	d := model.Duration(recordDuration)
	stop, err := midi.ListenTo(in, func(msg midi.Message, timestampms int32) {
		var ch, key, vel uint8
		switch {
		case msg.GetNoteStart(&ch, &key, &vel):
			input.press(key)
		case msg.GetNoteEnd(&ch, &key):
			pitches, ok := input.release(key)
			if !ok {
				return
			}
			res, err := s.Insert(id, pitches, d)
			if err != nil {
				fmt.Printf("ERROR: %s\n", err)
				return
			}
			fmt.Printf("%d elements, caret %d\n", len(res.Staff.Elements), res.Caret)
		}
	})
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		return
	}

	fmt.Printf("Recording into staff %s, press Ctrl+C to stop\n", id)
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	<-sig
	stop()
	cobra.CheckErr(s.Flush())
}
