package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/brequin/brequin/tracker/allocation"
	"github.com/brequin/brequin/tracker/course"
	"github.com/brequin/brequin/tracker/progress"
	"github.com/spf13/cobra"
)

type progressReport struct {
	Major      string                 `json:"major"`
	Allocation *allocation.Allocation `json:"allocation"`
	Summary    progress.Summary       `json:"summary"`
}

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Allocate a user's completed courses to a major and report progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		userId, _ := cmd.Flags().GetString("user")
		majorCode, _ := cmd.Flags().GetString("major")
		asJson, _ := cmd.Flags().GetBool("json")

		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()

		m, err := loadMajor(cmd.Context(), store, userId, majorCode)
		if err != nil {
			return err
		}
		completed, err := store.ListCompletedCourses(cmd.Context(), userId)
		if err != nil {
			return err
		}

		index, err := newCatalogCache(store).Index(cmd.Context(), course.NormalizeAll(completed))
		if err != nil {
			return err
		}
		a, summary := m.Summarize(completed, index)

		if asJson {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(progressReport{Major: m.Code, Allocation: a, Summary: summary})
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "%s\t%s\t%.0f%%\n", m.Code, m.Name, summary.OverallPercent)
		for i, p := range summary.Pillars {
			fmt.Fprintf(w, "%d\t%s\t%d/%d\t%.0f%%\n", p.Index, p.Description, p.Completed, p.Required, p.Percent)
			for _, id := range a.Pillars[i].Matched {
				fmt.Fprintf(w, "\t  %s\tprimary\n", id)
			}
			for _, id := range a.Pillars[i].Secondary {
				fmt.Fprintf(w, "\t  %s\tsecondary\n", id)
			}
		}
		if len(a.Overflow) > 0 {
			fmt.Fprintln(w, "overflow")
			for _, id := range a.Overflow {
				fmt.Fprintf(w, "\t  %s\n", id)
			}
		}
		for _, d := range summary.Distributives {
			fmt.Fprintf(w, "%s\t%d/%d\n", d.Tag, d.Completed, d.Required)
		}
		for _, line := range summary.Remaining {
			fmt.Fprintln(w, line)
		}
		return w.Flush()
	},
}

func init() {
	progressCmd.Flags().String("user", "", "user id")
	progressCmd.Flags().String("major", "", "major code")
	progressCmd.Flags().Bool("json", false, "print the allocation and summary as JSON")
	progressCmd.MarkFlagRequired("user")
	progressCmd.MarkFlagRequired("major")
	rootCmd.AddCommand(progressCmd)
}
