package validate

import (
	"errors"
	"fmt"

	cmdUtil "github.com/kfdigitals/battedball/cmd/util"
	"github.com/kfdigitals/battedball/lib/dataset"
	"github.com/kfdigitals/battedball/lib/query"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	ValidateCmd = &cobra.Command{
		Use:   "validate [file]",
		Short: "Check that a data file can be served",
		Long: `Read a data file strictly and print its summary statistics. Without an
argument the configured candidate files are resolved the same way the server does.
Exits with a non-zero status if the file is missing, unreadable or lacks a
required column.`,
		Args:    cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error { return cmdUtil.BindCommandFlags(cmd) },
		RunE:    run,
	}
)

func init() {
	cobra.OnInitialize(cmdUtil.InitConfig)

	key := "data-files"
	ValidateCmd.Flags().String(key, "", cmdUtil.WrapString("Comma-separated list of candidate data files, used when no file argument is given"))

	key = "sheet"
	ValidateCmd.Flags().String(key, "", cmdUtil.WrapString("Name of the worksheet to read (defaults to the first sheet)"))
}

func run(_ *cobra.Command, args []string) error {
	var path string
	if len(args) == 1 {
		path = args[0]
	} else {
		paths := cmdUtil.SplitList(viper.GetString("data-files"))
		if len(paths) == 0 {
			paths = dataset.DefaultPaths()
		}
		resolved, err := dataset.Resolve(paths)
		if err != nil {
			return err
		}
		path = resolved
	}

	table, err := dataset.ReadFile(path, viper.GetString("sheet"))
	if err != nil {
		var schemaErr *dataset.SchemaError
		if errors.As(err, &schemaErr) {
			return fmt.Errorf("%s is not a valid batted-ball file: %w", path, err)
		}
		return err
	}

	fmt.Printf("%s: %d batted balls\n", path, table.Len())

	summary, err := query.NewQueryService(table).Summarize()
	if err != nil {
		// an empty but well-formed file
		return err
	}

	mean := func(v *float64) string {
		if v == nil {
			return "n/a"
		}
		return fmt.Sprintf("%.2f", *v)
	}
	fmt.Printf("  avg exit speed:   %s\n", mean(summary.AvgExitSpeed))
	fmt.Printf("  avg launch angle: %s\n", mean(summary.AvgLaunchAngle))
	fmt.Printf("  unique batters:   %d\n", summary.UniqueBatters)
	fmt.Printf("  unique pitchers:  %d\n", summary.UniquePitchers)
	return nil
}
