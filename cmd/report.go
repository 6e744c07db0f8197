package cmd

import (
	"fmt"

	"github.com/jsphweid/staffpad/beam"
	"github.com/jsphweid/staffpad/model"
	"github.com/jsphweid/staffpad/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Creates a report",
	Long:  `Counts elements, note values, beam groups and tie chains per staff.`,
	Run: func(cmd *cobra.Command, args []string) {
		report()
	},
}

type staffReport struct {
	kinds      map[model.Kind]int
	durations  map[model.Duration]int
	beamGroups int
	tieChains  int
	beamsValid bool
}

func analyzeStaff(seq model.Sequence) staffReport {
	r := staffReport{
		kinds:      map[model.Kind]int{},
		durations:  map[model.Duration]int{},
		beamsValid: beam.Valid(seq),
	}
	for _, e := range seq {
		r.kinds[e.Kind]++
		if e.Kind != model.BarKind {
			r.durations[e.Duration]++
		}
		if e.Tie == model.Begin {
			r.tieChains++
		}
	}
	for _, run := range beam.Runs(seq) {
		if run.Len() > 1 {
			r.beamGroups++
		}
	}
	return r
}

func report() {
	score, _ := mustOpenScore()
	var totals []int
	for _, st := range score.Staffs {
		r := analyzeStaff(st.Elements)
		fmt.Printf("staff %s (%s)\n", st.ID, st.Name)
		for _, k := range util.GetKeys(r.kinds) {
			fmt.Printf("  %ss: %v\n", k, r.kinds[k])
		}
		for _, d := range util.GetKeys(r.durations) {
			fmt.Printf("  1/%d values: %v\n", d, r.durations[d])
		}
		fmt.Printf("  beam groups: %v\n", r.beamGroups)
		fmt.Printf("  tie chains: %v\n", r.tieChains)
		fmt.Printf("  beams consistent: %v\n", r.beamsValid)
		totals = append(totals, len(st.Elements))
	}
	fmt.Printf("elements in score: %v\n", util.Sum(totals))
}
