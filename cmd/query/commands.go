package query

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/kfdigitals/battedball/lib/dataset"
	libquery "github.com/kfdigitals/battedball/lib/query"
	"github.com/kfdigitals/battedball/rpc/serializer"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	healthCmd = &cobra.Command{
		Use:   "health",
		Short: "Checks whether the server is up and has data loaded",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			health, err := apiClient.Health()
			if err != nil {
				return err
			}
			if viper.GetBool("json") {
				return printJSON(health)
			}
			fmt.Printf("status: %s\ndata loaded: %t\n", health.Status, health.DataLoaded)
			return nil
		},
	}
	dataCmd = &cobra.Command{
		Use:   "data",
		Short: "Lists the batted balls matching the given filters",
		Long: `Lists the batted balls matching the given filters. Name filters are
case-insensitive substring matches, numeric bounds are inclusive.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filters, err := filtersFromFlags(cmd)
			if err != nil {
				return err
			}
			rows, err := apiClient.ListRows(filters)
			if err != nil {
				return err
			}
			if viper.GetBool("json") {
				return printJSON(rows)
			}
			return printRows(rows)
		},
	}
	summaryCmd = &cobra.Command{
		Use:   "summary",
		Short: "Prints the summary statistics of the dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := apiClient.Summarize()
			if err != nil {
				return err
			}
			if viper.GetBool("json") {
				return printJSON(summary)
			}
			printSummary(summary)
			return nil
		},
	}
)

func init() {
	dataCmd.Flags().String(libquery.ParamBatter, "", "Batter name contains")
	dataCmd.Flags().String(libquery.ParamPitcher, "", "Pitcher name contains")
	dataCmd.Flags().String(libquery.ParamMinExitSpeed, "", "Minimum exit speed")
	dataCmd.Flags().String(libquery.ParamMaxExitSpeed, "", "Maximum exit speed")
	dataCmd.Flags().String(libquery.ParamMinLaunchAngle, "", "Minimum launch angle")
	dataCmd.Flags().String(libquery.ParamMaxLaunchAngle, "", "Maximum launch angle")
}

// filtersFromFlags parses the filter flags the same way the server parses query parameters,
// but rejects malformed numbers instead of ignoring them
func filtersFromFlags(cmd *cobra.Command) (libquery.Filters, error) {
	params := make(map[string][]string)
	for _, name := range libquery.Params {
		if value, _ := cmd.Flags().GetString(name); value != "" {
			params[name] = []string{value}
		}
	}
	return libquery.ParseFilters(params)
}

func printJSON(v any) error {
	body, err := serializer.NewJSONSerializer().Serialize(v)
	if err != nil {
		return err
	}
	fmt.Println(string(body))
	return nil
}

func printRows(rows []dataset.Row) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	header := make([]string, len(dataset.Columns))
	for i, col := range dataset.Columns {
		header[i] = string(col)
	}
	fmt.Fprintln(w, strings.Join(header, "\t"))

	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row.Values(), "\t"))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\n%d batted balls\n", len(rows))
	return nil
}

func printSummary(s libquery.Summary) {
	mean := func(v *float64) string {
		if v == nil {
			return "n/a"
		}
		return fmt.Sprintf("%.2f", *v)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "avg exit speed:\t%s\n", mean(s.AvgExitSpeed))
	fmt.Fprintf(w, "avg launch angle:\t%s\n", mean(s.AvgLaunchAngle))
	fmt.Fprintf(w, "total batted balls:\t%d\n", s.TotalBattedBalls)
	fmt.Fprintf(w, "unique batters:\t%d\n", s.UniqueBatters)
	fmt.Fprintf(w, "unique pitchers:\t%d\n", s.UniquePitchers)
	_ = w.Flush()
}
