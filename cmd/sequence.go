package cmd

import (
	"github.com/brequin/brequin/tracker/db"
	"github.com/brequin/brequin/tracker/util"
	"github.com/spf13/cobra"
)

var sequenceCmd = &cobra.Command{
	Use:   "sequence",
	Short: "Choose the culminating sequence of a major",
}

var sequenceSelectCmd = &cobra.Command{
	Use:   "select",
	Short: "Select the active culminating sequence and save it",
	RunE: func(cmd *cobra.Command, args []string) error {
		userId, _ := cmd.Flags().GetString("user")
		majorCode, _ := cmd.Flags().GetString("major")
		sequenceIndex, _ := cmd.Flags().GetInt("index")

		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()

		m, err := loadMajor(cmd.Context(), store, userId, majorCode)
		if err != nil {
			return err
		}
		m.OnSequenceSelected = func(majorCode string, sequenceIndex int) error {
			return store.SaveSelectedSequence(cmd.Context(), db.SelectedSequence{
				UserId:        userId,
				MajorCode:     majorCode,
				SequenceIndex: sequenceIndex,
			})
		}

		if err := m.SelectSequence(sequenceIndex); err != nil {
			return err
		}
		util.Log.WithField("major", m.Code).Infof("Selected culminating sequence %d", sequenceIndex)
		return nil
	},
}

func init() {
	sequenceSelectCmd.Flags().String("user", "", "user id")
	sequenceSelectCmd.Flags().String("major", "", "major code")
	sequenceSelectCmd.Flags().Int("index", 0, "sequence index")
	for _, name := range []string{"user", "major", "index"} {
		sequenceSelectCmd.MarkFlagRequired(name)
	}

	sequenceCmd.AddCommand(sequenceSelectCmd)
	rootCmd.AddCommand(sequenceCmd)
}
