package cmd

import (
	"encoding/json"
	"os"

	"github.com/jsphweid/staffpad/hittest"
	"github.com/jsphweid/staffpad/layout"
	"github.com/jsphweid/staffpad/session"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render [staff-id...]",
	Short: "Prints layout nodes as JSON",
	Long:  `Prints the layout nodes, caret rectangles and element boxes of every staff, or of the given ones.`,
	Run: func(cmd *cobra.Command, args []string) {
		render(args)
	},
}

type renderedStaff struct {
	ID string `json:"id"`
	LayoutResponse
}

func render(ids []string) {
	score, _ := mustOpenScore()
	s := session.New(score, nil)
	if len(ids) == 0 {
		for _, st := range score.Staffs {
			ids = append(ids, st.ID)
		}
	}

	var res []renderedStaff
	for _, id := range ids {
		nodes, err := s.Layout(id, nil)
		cobra.CheckErr(err)
		res = append(res, renderedStaff{ID: id, LayoutResponse: LayoutResponse{
			Nodes:    layout.Tag(nodes),
			Carets:   hittest.CaretRects(nodes),
			Elements: hittest.ElementBoxes(nodes),
		}})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	cobra.CheckErr(enc.Encode(res))
}
