package query

import (
	"github.com/kfdigitals/battedball/cmd/util"
	"github.com/kfdigitals/battedball/rpc/client"
	"github.com/kfdigitals/battedball/rpc/common"
	"github.com/kfdigitals/battedball/rpc/serializer"
	"github.com/kfdigitals/battedball/rpc/transport/http"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	apiClient client.IAPIClient

	// QueryCommands represents the query command group
	QueryCommands = &cobra.Command{
		Use:               "query",
		Short:             "Query a running battedball server",
		PersistentPreRunE: setupClient,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitConfig)

	// Add client flags to the query command
	util.SetupClientFlags(QueryCommands)
	QueryCommands.PersistentFlags().Bool("json", false, util.WrapString("Print the raw JSON response"))

	// Add subcommands
	QueryCommands.AddCommand(healthCmd)
	QueryCommands.AddCommand(dataCmd)
	QueryCommands.AddCommand(summaryCmd)
}

// setupClient initializes the API client
func setupClient(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	common.InitLoggers(viper.GetString("log-level"))

	var err error
	apiClient, err = client.NewAPIClient(
		*util.GetClientConfig(),
		http.NewHttpClientTransport(),
		serializer.NewJSONSerializer(),
	)
	return err
}
