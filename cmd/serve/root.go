package serve

import (
	"github.com/VictoriaMetrics/metrics"
	cmdUtil "github.com/kfdigitals/battedball/cmd/util"
	"github.com/kfdigitals/battedball/lib/dataset"
	"github.com/kfdigitals/battedball/lib/query"
	"github.com/kfdigitals/battedball/rpc/common"
	"github.com/kfdigitals/battedball/rpc/serializer"
	"github.com/kfdigitals/battedball/rpc/server"
	"github.com/kfdigitals/battedball/rpc/transport/http"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"strings"
)

var (
	serveCmdConfig = &common.ServerConfig{}
	ServeCmd       = &cobra.Command{
		Use:     "serve",
		Short:   "Start the battedball API server",
		Long:    `Load the batted-ball dataset and start the HTTP API with the specified configuration. The configuration can be set via command line flags or environment variables. The format of the environment variables is BATTEDBALL_<flag> (e.g. BATTEDBALL_DATA_FILES=data.xlsx)`,
		PreRunE: processConfig,
		RunE:    run,
	}
)

func init() {
	// initialize viper
	cobra.OnInitialize(cmdUtil.InitConfig)

	// add flags
	key := "data-files"
	ServeCmd.PersistentFlags().String(key, strings.Join(dataset.DefaultPaths(), ","), cmdUtil.WrapString("Comma-separated list of candidate data files (.xlsx, .xlsm or .csv). The first existing file is loaded, if none can be read the server starts with an empty table"))

	key = "sheet"
	ServeCmd.PersistentFlags().String(key, "", cmdUtil.WrapString("Name of the worksheet to read (defaults to the first sheet)"))

	key = "endpoint"
	ServeCmd.PersistentFlags().String(key, common.DefaultEndpoint, cmdUtil.WrapString("The address on which the API will listen (e.g. localhost:5000)"))

	key = "timeout"
	ServeCmd.PersistentFlags().Int64(key, common.DefaultTimeoutSecond, cmdUtil.WrapString("Read and write timeout of the HTTP server in seconds"))

	key = "cors-origins"
	ServeCmd.PersistentFlags().String(key, strings.Join(common.DefaultCORSOrigins, ","), cmdUtil.WrapString("Comma-separated list of browser origins allowed to call the /api routes. Empty disables CORS"))

	key = "strict-params"
	ServeCmd.PersistentFlags().Bool(key, false, cmdUtil.WrapString("Reject malformed numeric filters with 400 instead of ignoring them"))

	key = "metrics"
	ServeCmd.PersistentFlags().Bool(key, true, cmdUtil.WrapString("Serve Prometheus metrics on /metrics"))

	key = "log-level"
	ServeCmd.PersistentFlags().String(key, "info", cmdUtil.WrapString("LogLevel is the level at which logs will be output (debug, info, warn, error)"))
}

// processConfig reads the configuration from the command line flags and environment variables and converts them to the server configuration
func processConfig(cmd *cobra.Command, _ []string) error {
	// bind the flags to viper
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// read the configuration from the command line flags and environment variables
	serveCmdConfig.DataFiles = cmdUtil.SplitList(viper.GetString("data-files"))
	serveCmdConfig.Sheet = viper.GetString("sheet")
	serveCmdConfig.Endpoint = viper.GetString("endpoint")
	serveCmdConfig.TimeoutSecond = viper.GetInt64("timeout")
	serveCmdConfig.CORSOrigins = cmdUtil.SplitList(viper.GetString("cors-origins"))
	serveCmdConfig.StrictParams = viper.GetBool("strict-params")
	serveCmdConfig.MetricsEnabled = viper.GetBool("metrics")
	serveCmdConfig.LogLevel = strings.ToLower(viper.GetString("log-level"))

	// validate
	if _, err := common.ParseLogLevel(serveCmdConfig.LogLevel); err != nil {
		return err
	}
	if len(serveCmdConfig.DataFiles) == 0 {
		serveCmdConfig.DataFiles = dataset.DefaultPaths()
	}

	return nil
}

// run loads the dataset and starts the API server
func run(_ *cobra.Command, _ []string) error {
	common.InitLoggers(serveCmdConfig.LogLevel)

	// the table is loaded once and never reloaded
	table := dataset.Load(dataset.LoaderConfig{
		Paths: serveCmdConfig.DataFiles,
		Sheet: serveCmdConfig.Sheet,
	})
	service := query.NewQueryService(table)

	set := metrics.NewSet()
	server.RegisterMetrics(set, service)

	serv := server.NewAPIServer(
		*serveCmdConfig,
		service,
		http.NewHttpServerTransport(set),
		serializer.NewJSONSerializer(),
	)

	return serv.Serve()
}
