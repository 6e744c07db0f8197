package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/jsphweid/staffpad/chord"
	"github.com/jsphweid/staffpad/midi"
	"github.com/jsphweid/staffpad/model"
	"github.com/jsphweid/staffpad/util"
	"github.com/spf13/cobra"
)

var (
	importTrack int
	importGrid  int
	importMax   int
)

func init() {
	importCmd.Flags().IntVar(&importTrack, "track", midi.DefaultImportOptions.Track, "track to import, -1 merges all tracks")
	importCmd.Flags().IntVar(&importGrid, "grid", int(midi.DefaultImportOptions.Grid), "shortest note value, 4 to 32")
	importCmd.Flags().IntVar(&importMax, "max", 0, "maximum number of files, 0 for all")
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Imports MIDI files as staffs",
	Long:  `Walks path for MIDI files and appends each one to the score as a new staff.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runImport(args[0])
	},
}

// clefFor picks the bass clef for material that mostly sits below middle C.
func clefFor(seq model.Sequence) model.Clef {
	var sum int
	for _, e := range seq {
		if e.IsNote() && len(e.Pitches) > 0 {
			sum += chord.Lowest(e.Pitches) + chord.Highest(e.Pitches)
		}
	}
	if sum < 0 {
		return model.Bass
	}
	return model.Treble
}

func staffName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func runImport(path string) {
	score, p := mustOpenScore()
	paths, err := util.GatherAllMidiPaths(path, importMax)
	cobra.CheckErr(err)

	opts := midi.DefaultImportOptions
	opts.Track = importTrack
	opts.Grid = model.Duration(importGrid)

	imported := 0
	for _, path := range paths {
		s, err := midi.ReadMidiFile(path)
		if err != nil {
			fmt.Printf("Skipping %s: %v\n", path, err)
			continue
		}
		seq, err := midi.Import(s, opts)
		if err != nil {
			fmt.Printf("Skipping %s: %v\n", path, err)
			continue
		}
		score.Staffs = append(score.Staffs, model.Staff{
			ID:       uuid.NewString(),
			Name:     staffName(path),
			Clef:     clefFor(seq),
			Elements: seq,
		})
		imported++
	}

	if score.ID == "" {
		score.ID = uuid.NewString()
	}
	cobra.CheckErr(p.Save(score))
	fmt.Printf("Imported %d of %d files\n", imported, len(paths))
}
