package main

import (
	"context"

	"github.com/loykin/restcli/internal/constants"
	"github.com/loykin/restcli/internal/render"
	"github.com/loykin/restcli/internal/request"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type cliOptions struct {
	data   string
	output string
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	setDefaults(v)
	opts := &cliOptions{}

	cmd := &cobra.Command{
		Use:       "restcli <get|post> <endpoint>",
		Short:     "Simple command-line REST client",
		Long:      "Send a GET or POST to the configured base URL and print or save the JSON response.",
		Args:      cobra.MatchAll(cobra.ExactArgs(2), validMethodArg),
		ValidArgs: []string{"get", "post"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run(cmd, v, opts, args)
		},
		SilenceErrors: true,
	}

	cmd.Flags().StringVarP(&opts.data, "data", "d", "", "Data to send with the request (JSON)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output to .json or .csv file (default: dump to stdout)")
	cmd.Flags().String("config", v.GetString("config"), "path to a config yaml")
	cmd.Flags().String("base-url", v.GetString("base_url"), "base URL endpoint fragments are appended to")
	cmd.Flags().String("log-level", v.GetString("logging.level"), "log level: error, warn, info, debug")

	_ = v.BindPFlag("config", cmd.Flags().Lookup("config"))
	_ = v.BindPFlag("base_url", cmd.Flags().Lookup("base-url"))
	_ = v.BindPFlag("logging.level", cmd.Flags().Lookup("log-level"))
	return cmd
}

// validMethodArg rejects methods other than get/post before RunE.
func validMethodArg(_ *cobra.Command, args []string) error {
	_, err := request.ParseMethod(args[0])
	return err
}

func run(cmd *cobra.Command, v *viper.Viper, opts *cliOptions, args []string) error {
	settings, err := loadSettings(v)
	if err != nil {
		return err
	}
	logger, err := settings.Logging.SetupLogging(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	method, err := request.ParseMethod(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	d := request.NewDispatcher(settings.Client.Httpc().New()).WithLogger(logger)
	resp, err := d.Dispatch(ctx, method, settings.BaseURL, args[1], opts.data)
	if err != nil {
		return err
	}
	return render.NewRenderer(cmd.OutOrStdout()).WithLogger(logger).Render(resp, opts.output)
}

func main() {
	if err := loadDotEnv(constants.DotEnvFile); err != nil {
		exitHandler.LogFatalError(err, "failed to load .env")
	}
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		exitHandler.LogFatalError(err, "command execution failed")
	}
}
