package cmd

import (
	"errors"
	"fmt"

	"github.com/brequin/brequin/tracker/course"
	"github.com/brequin/brequin/tracker/db"
	"github.com/brequin/brequin/tracker/util"
	"github.com/spf13/cobra"
)

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "Manage a user's completed courses",
}

var coursesSetCmd = &cobra.Command{
	Use:   "set COURSE...",
	Short: "Replace a user's completed courses, in the order taken",
	RunE: func(cmd *cobra.Command, args []string) error {
		userId, _ := cmd.Flags().GetString("user")

		courseIds := make([]string, 0, len(args))
		for _, arg := range args {
			id := course.Normalize(arg)
			if _, ok := course.Split(id); !ok {
				util.Log.WithField("course", arg).Warn("Course id is not DEPT### shaped and will match nothing")
			}
			courseIds = append(courseIds, string(id))
		}

		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.ReplaceCompletedCourses(cmd.Context(), userId, courseIds); err != nil {
			return fmt.Errorf("store completed courses: %w", err)
		}
		util.Log.Infof("Stored %d completed courses for %v", len(courseIds), userId)
		return nil
	},
}

var coursesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a user's completed courses",
	RunE: func(cmd *cobra.Command, args []string) error {
		userId, _ := cmd.Flags().GetString("user")

		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()

		courseIds, err := store.ListCompletedCourses(cmd.Context(), userId)
		if err != nil {
			return err
		}
		for _, courseId := range courseIds {
			fmt.Println(courseId)
		}
		return nil
	},
}

func isNotFound(err error) bool {
	return errors.Is(err, db.ErrNotFound)
}

func init() {
	for _, c := range []*cobra.Command{coursesSetCmd, coursesListCmd} {
		c.Flags().String("user", "", "user id")
		c.MarkFlagRequired("user")
		coursesCmd.AddCommand(c)
	}
	rootCmd.AddCommand(coursesCmd)
}
