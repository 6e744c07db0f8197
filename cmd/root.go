package cmd

import (
	"github.com/jsphweid/staffpad/constants"
	"github.com/spf13/cobra"
)

var scorePath string

var rootCmd = &cobra.Command{
	Use:   "staffpad",
	Short: "Edits and engraves staff notation",
	Long: `staffpad keeps a score of staffs, edits them through a caret and
lays them out as drawing nodes for a renderer.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&scorePath, "score", constants.GetScorePath(), "score file")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
