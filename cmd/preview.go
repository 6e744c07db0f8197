package cmd

import (
	"fmt"

	"github.com/jsphweid/staffpad/constants"
	"github.com/jsphweid/staffpad/sample"
	"github.com/jsphweid/staffpad/util"
	"github.com/spf13/cobra"
)

var (
	previewStaff int
	previewFrom  int
	previewTo    int
	previewBPM   float64
	previewOut   string
)

func init() {
	previewCmd.Flags().IntVar(&previewStaff, "staff", 0, "staff number, starting at 0")
	previewCmd.Flags().IntVar(&previewFrom, "from", 0, "first element")
	previewCmd.Flags().IntVar(&previewTo, "to", -1, "element after the last one, -1 for the end")
	previewCmd.Flags().Float64Var(&previewBPM, "bpm", constants.PreviewBPM, "tempo in quarter notes per minute")
	previewCmd.Flags().StringVar(&previewOut, "out", "preview.mid", "output MIDI file")
	rootCmd.AddCommand(previewCmd)
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Writes a staff as a MIDI file",
	Long:  `Writes a range of a staff's elements as a standard MIDI file for playback.`,
	Run: func(cmd *cobra.Command, args []string) {
		preview()
	},
}

func preview() {
	score, _ := mustOpenScore()
	if previewStaff < 0 || previewStaff >= len(score.Staffs) {
		panic(fmt.Sprintf("Score has %d staffs, there is no staff %d", len(score.Staffs), previewStaff))
	}
	seq := score.Staffs[previewStaff].Elements
	to := len(seq)
	if previewTo >= 0 {
		to = util.Min(previewTo, len(seq))
	}
	from := util.Max(0, util.Min(previewFrom, to))

	s := sample.Create(seq[from:to], previewBPM)
	cobra.CheckErr(s.WriteFile(previewOut))
	fmt.Printf("Wrote %d elements to %s\n", to-from, previewOut)
}
