package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/brequin/brequin/tracker/scrape"
	"github.com/brequin/brequin/tracker/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Scrape and browse the course catalog",
}

var catalogScrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape catalog pages into the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		baseUrl := viper.GetString("scrape.base_url")
		if baseUrl == "" {
			return fmt.Errorf("scrape.base_url is not configured")
		}

		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()

		departments, _ := cmd.Flags().GetStringSlice("dept")
		if len(departments) == 0 {
			majors, err := store.ListMajors(cmd.Context())
			if err != nil {
				return err
			}
			seen := make(map[string]bool)
			for _, m := range majors {
				if !seen[m.Department] {
					seen[m.Department] = true
					departments = append(departments, m.Department)
				}
			}
			sort.Strings(departments)
		}
		for i := range departments {
			departments[i] = strings.ToUpper(departments[i])
		}
		if len(departments) == 0 {
			return fmt.Errorf("no departments to scrape: pass --dept or load programs first")
		}

		scraper := scrape.New(baseUrl, viper.GetInt("scrape.retries"), viper.GetInt("scrape.concurrency"))
		coursesDetails, scrapeErr := scraper.ScrapeDepartments(cmd.Context(), departments)

		if err := store.InsertCoursesDetails(cmd.Context(), coursesDetails); err != nil {
			return fmt.Errorf("store course details: %w", err)
		}
		util.Log.Infof("Stored %d courses from %d departments", len(coursesDetails), len(departments))
		return scrapeErr
	},
}

var catalogCoursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "List the catalog courses each pillar of a major accepts",
	RunE: func(cmd *cobra.Command, args []string) error {
		majorCode, _ := cmd.Flags().GetString("major")
		userId, _ := cmd.Flags().GetString("user")

		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()

		m, err := loadMajor(cmd.Context(), store, userId, majorCode)
		if err != nil {
			return err
		}

		cache := newCatalogCache(store)
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, p := range m.Pillars {
			courses, err := cache.CoursesForPillar(cmd.Context(), p)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%d\t%s\t%d courses\n", p.Common().Index, p.Common().Description, len(courses))
			for _, c := range courses {
				fmt.Fprintf(w, "\t%s\t%s\n", c.ID, c.Name)
			}
		}
		return w.Flush()
	},
}

func init() {
	catalogScrapeCmd.Flags().StringSlice("dept", nil, "departments to scrape (default: every stored major's department)")
	catalogScrapeCmd.Flags().String("base-url", "", "catalog page URL (default from config scrape.base_url)")
	viper.BindPFlag("scrape.base_url", catalogScrapeCmd.Flags().Lookup("base-url"))

	catalogCoursesCmd.Flags().String("major", "", "major code")
	catalogCoursesCmd.Flags().String("user", "", "user whose selected sequence applies")
	catalogCoursesCmd.MarkFlagRequired("major")

	catalogCmd.AddCommand(catalogScrapeCmd)
	catalogCmd.AddCommand(catalogCoursesCmd)
	rootCmd.AddCommand(catalogCmd)
}
