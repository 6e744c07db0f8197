package cmd

import (
	"fmt"
	"strings"

	"github.com/jsphweid/staffpad/caret"
	"github.com/jsphweid/staffpad/chord"
	"github.com/jsphweid/staffpad/model"
	"github.com/jsphweid/staffpad/pitch"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Lists the elements of every staff",
	Long:  `Lists the elements of every staff with their overwrite caret positions.`,
	Run: func(cmd *cobra.Command, args []string) {
		inspect()
	},
}

func describe(e model.Element) string {
	switch e.Kind {
	case model.RestKind:
		return fmt.Sprintf("rest 1/%d", e.Duration)
	case model.BarKind:
		return fmt.Sprintf("bar %s", e.Bar)
	}
	var names []string
	for _, p := range chord.Sorted(e.Pitches) {
		names = append(names, pitch.Name(p))
	}
	res := fmt.Sprintf("note 1/%d %s", e.Duration, strings.Join(names, " "))
	if e.Beam != model.None {
		res += " beam:" + e.Beam.String()
	}
	if e.Tie != model.None {
		res += " tie:" + e.Tie.String()
	}
	return res
}

func inspect() {
	score, _ := mustOpenScore()
	fmt.Printf("score %s %q\n", score.ID, score.Title)
	for _, st := range score.Staffs {
		fmt.Printf("staff %s %q clef:%s key:%d\n", st.ID, st.Name, st.Clef, st.Key)
		for i, e := range st.Elements {
			fmt.Printf("  %4d  %s\n", caret.On(i), describe(e))
		}
	}
}
