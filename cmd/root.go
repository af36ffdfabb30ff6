package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile     string
	projectFile string
	serverURL   string
	offline     bool
)

var rootCmd = &cobra.Command{
	Use:   "cabplan",
	Short: "Design cabinets, build cut lists, nest parts onto stock sheets",
	Long: `cabplan edits a cabinet project kept in a local JSON file and synced
to a planning service through a server-side editing session:
  - add and edit cabinet designs (carcass, shelves, doors)
  - expand designs into a merged cut list
  - nest panels onto stock sheets via the planning service
  - undo/redo over full-document snapshots

Edits apply locally first; sync failures keep your work and warn.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/cabplan/config.toml)")
	rootCmd.PersistentFlags().StringVar(&projectFile, "project", "", "project file (default cabplan.json)")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "planning service base URL")
	rootCmd.PersistentFlags().BoolVar(&offline, "offline", false, "skip syncing to the planning service")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		configDir := filepath.Join(home, ".config", "cabplan")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("toml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("api.base_url", "http://localhost:8445")
	viper.SetDefault("api.timeout_ms", 30000)
	viper.SetDefault("history.limit", 50)
	viper.SetDefault("toast.duration_ms", 4000)
	viper.SetDefault("sync.rollback_on_failure", false)
	viper.SetDefault("project.file", "cabplan.json")
	viper.SetDefault("serve.addr", "localhost:8445")
	viper.SetDefault("serve.db", "cabplan.sqlite3")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
