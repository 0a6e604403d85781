package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "attrfs",
	Short: "An in-memory filesystem with pluggable attribute views",
	Long: `attrfs hosts an in-memory filesystem whose files expose multiple named
metadata views (basic, owner, posix, dos). It is mainly a workbench for the
attribute-view framework: create files with initial attributes, then inspect
every view of them.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(newInspectCommand())
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("attrfs version %s (commit: %s, built: %s)\n", version, commit, date)
	},
}
