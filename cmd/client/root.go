package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-student-registry/internal/adapter"
	"github.com/MKhiriev/go-student-registry/internal/config"
	"github.com/MKhiriev/go-student-registry/internal/logger"
	"github.com/MKhiriev/go-student-registry/models"
)

// clientState is shared by all subcommands of one invocation.
type clientState struct {
	address string
	token   string
	timeout time.Duration
	retries int
	verbose bool

	server adapter.ServerAdapter
}

// NewRootCmd creates the root command of the registry client.
func NewRootCmd() *cobra.Command {
	state := &clientState{}

	cmd := &cobra.Command{
		Use:          "registry-client",
		Short:        "Command-line client for the student registry",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return state.connect(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&state.address, "address", "", "server address (env REGISTRY_ADDRESS)")
	flags.StringVar(&state.token, "token", "", "session token (env REGISTRY_TOKEN)")
	flags.DurationVar(&state.timeout, "timeout", 0, "request timeout, e.g. 10s (env REGISTRY_REQUEST_TIMEOUT)")
	flags.IntVar(&state.retries, "retries", 0, "retries for unavailable server (env REGISTRY_RETRIES)")
	flags.BoolVarP(&state.verbose, "verbose", "v", false, "log requests to stderr")

	cmd.AddCommand(
		newRegisterCmd(state),
		newLoginCmd(state),
		newLogoutCmd(state),
		newStudentsCmd(state),
		newVersionCmd(state),
	)

	return cmd
}

// connect builds the server adapter from env values overridden by flags.
func (s *clientState) connect(cmd *cobra.Command) error {
	cfg, err := config.GetClientAdapterConfig()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("address") {
		cfg.HTTPAddress = s.address
	}
	if flags.Changed("token") {
		cfg.Token = s.token
	}
	if flags.Changed("retries") {
		cfg.Retries = s.retries
	}
	if flags.Changed("timeout") {
		cfg.RequestTimeout = s.timeout
	}

	log := logger.Nop()
	if s.verbose {
		log = logger.NewLoggerTo("registry-client", cmd.ErrOrStderr())
	}

	s.server, err = adapter.NewHTTPServerAdapter(cfg, log)
	return err
}

func newVersionCmd(state *clientState) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show client build and server version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
			fmt.Fprintf(cmd.OutOrStdout(), "Client version: %s\n", info)

			serverVersion, err := state.server.Version(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Server version: %s\n", serverVersion)
			return nil
		},
	}
}
