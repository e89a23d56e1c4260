package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/brequin/brequin/tracker/db"
	"github.com/brequin/brequin/tracker/major"
	"github.com/brequin/brequin/tracker/programs"
	"github.com/brequin/brequin/tracker/util"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var programsCmd = &cobra.Command{
	Use:   "programs",
	Short: "Manage majors and their requirement strings",
}

var programsLoadCmd = &cobra.Command{
	Use:   "load",
	Short: "Parse every major in the program data file and store it",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := homedir.Expand(viper.GetString("programs.file"))
		if err != nil {
			return err
		}
		loaded, err := programs.Load(path)
		if err != nil {
			return err
		}

		majors := make([]db.Major, 0, len(loaded))
		for _, program := range loaded {
			m := major.New(program.Code, program.Name, program.Department, program.Requirements)
			logSkipped(m)
			if len(m.Pillars) == 0 {
				util.Log.WithField("major", program.Code).Warn("No requirement pillars parsed")
			}
			majors = append(majors, db.Major{
				Code:         program.Code,
				Name:         program.Name,
				Department:   program.Department,
				Requirements: program.Requirements,
			})
		}

		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.InsertMajors(cmd.Context(), majors); err != nil {
			return fmt.Errorf("store majors: %w", err)
		}
		util.Log.Infof("Stored %d majors", len(majors))
		return nil
	},
}

var programsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored majors",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()

		majors, err := store.ListMajors(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "CODE\tDEPARTMENT\tNAME")
		for _, m := range majors {
			fmt.Fprintf(w, "%s\t%s\t%s\n", m.Code, m.Department, m.Name)
		}
		return w.Flush()
	},
}

func logSkipped(m *major.Major) {
	for _, skipped := range m.Skipped {
		util.Log.WithField("major", m.Code).WithField("segment", skipped.Segment).Warn("Skipped requirement segment: ", skipped.Err)
	}
}

// loadMajor parses a stored major and restores the user's selected sequence.
func loadMajor(ctx context.Context, store db.Store, userId, code string) (*major.Major, error) {
	majors, err := store.ListMajors(ctx)
	if err != nil {
		return nil, err
	}

	for _, stored := range majors {
		if !strings.EqualFold(stored.Code, code) {
			continue
		}

		m := major.New(stored.Code, stored.Name, stored.Department, stored.Requirements)
		logSkipped(m)

		sequenceIndex, err := store.SelectedSequence(ctx, userId, stored.Code)
		switch {
		case err == nil:
			m.RestoreSequence(sequenceIndex)
		case !isNotFound(err):
			return nil, err
		}
		return m, nil
	}
	return nil, fmt.Errorf("%v: %w", code, programs.ErrUnknownMajor)
}

func init() {
	programsLoadCmd.Flags().String("file", "", "program data JSON file (default from config programs.file)")
	viper.BindPFlag("programs.file", programsLoadCmd.Flags().Lookup("file"))

	programsCmd.AddCommand(programsLoadCmd)
	programsCmd.AddCommand(programsListCmd)
	rootCmd.AddCommand(programsCmd)
}
