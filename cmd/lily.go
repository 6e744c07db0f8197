package cmd

import (
	"fmt"
	"os"

	"github.com/jsphweid/staffpad/lily"
	"github.com/spf13/cobra"
)

var lilyOut string

func init() {
	lilyCmd.Flags().StringVar(&lilyOut, "out", "", "output file, stdout when empty")
	rootCmd.AddCommand(lilyCmd)
}

var lilyCmd = &cobra.Command{
	Use:   "lily",
	Short: "Exports the score as LilyPond",
	Long:  `Exports the score as a LilyPond source file with one staff per staff.`,
	Run: func(cmd *cobra.Command, args []string) {
		exportLily()
	},
}

func exportLily() {
	score, _ := mustOpenScore()
	if lilyOut == "" {
		cobra.CheckErr(lily.Write(os.Stdout, score))
		return
	}

	f, err := os.Create(lilyOut)
	if err != nil {
		panic("Could not create " + lilyOut + ": " + err.Error())
	}
	defer f.Close()
	cobra.CheckErr(lily.Write(f, score))
	fmt.Printf("Wrote %d staffs to %s\n", len(score.Staffs), lilyOut)
}
