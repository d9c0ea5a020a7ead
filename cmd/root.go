package cmd

import (
	"fmt"
	"os"

	"github.com/kfdigitals/battedball/cmd/query"
	"github.com/kfdigitals/battedball/cmd/serve"
	"github.com/kfdigitals/battedball/cmd/validate"
	"github.com/spf13/cobra"
)

const (
	Version = "1.0.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:     "battedball",
		Short:   "read-only HTTP API over batted-ball data",
		Version: Version,
		Long: fmt.Sprintf(`battedball (v%s)

A small read-only HTTP API over a table of baseball batted-ball events,
supporting field based filtering and summary statistics.`, Version),
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of battedball",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("battedball v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(serve.ServeCmd)
	RootCmd.AddCommand(query.QueryCommands)
	RootCmd.AddCommand(validate.ValidateCmd)
	RootCmd.AddCommand(versionCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
