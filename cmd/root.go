package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/brequin/brequin/tracker/catalog"
	"github.com/brequin/brequin/tracker/db"
	"github.com/brequin/brequin/tracker/util"
	"github.com/joho/godotenv"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "tracker",
	Short: "Track progress through a major's requirements.",
	Long: `tracker parses each major's requirement string into pillars, allocates a
student's completed courses to them and reports what is still needed.`,
	SilenceUsage: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		levelString, _ := cmd.Flags().GetString("loglevel")
		return util.SetLogLevel(levelString)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.tracker.yaml)")
	rootCmd.PersistentFlags().StringP("loglevel", "l", "info", "Set log level. Available: debug, info, warn, error, fatal")
	rootCmd.PersistentFlags().String("dbpath", "", "SQLite database file, used when no database URL is configured")
	viper.BindPFlag("database.path", rootCmd.PersistentFlags().Lookup("dbpath"))
}

// initConfig reads in .env, the config file and ENV variables if set.
func initConfig() {
	// .env is optional
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigName(".tracker")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	viper.BindEnv("database.url", "DATABASE_CONNECTION_STRING")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			util.Log.Warn("Unable to read config file: ", err)
		}
	}

	viper.SetDefault("database.path", "tracker.sqlite")
	viper.SetDefault("programs.file", "programs.json")
	viper.SetDefault("catalog.cache_size", 256)
	viper.SetDefault("catalog.cache_ttl", 30*time.Minute)
	viper.SetDefault("scrape.base_url", "")
	viper.SetDefault("scrape.retries", 3)
	viper.SetDefault("scrape.concurrency", 4)
}

// openStore connects to Postgres when a database URL is configured and falls
// back to the local SQLite file otherwise.
func openStore(ctx context.Context) (db.Store, error) {
	if connectionString := viper.GetString("database.url"); connectionString != "" {
		database, err := db.Connect(ctx, connectionString)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(ctx); err != nil {
			database.Close()
			return nil, err
		}
		util.Log.Debug("Using postgres store")
		return database, nil
	}

	path, err := homedir.Expand(viper.GetString("database.path"))
	if err != nil {
		return nil, err
	}
	util.Log.WithField("path", path).Debug("Using sqlite store")
	return db.OpenLite(path)
}

func newCatalogCache(store db.Store) *catalog.Cache {
	return catalog.NewCache(store, viper.GetInt("catalog.cache_size"), viper.GetDuration("catalog.cache_ttl"))
}
