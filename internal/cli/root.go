// Package cli wires the directoryctl commands onto the client core.
package cli

import (
	"fmt"
	"io"

	"provider-directory/config"
	"provider-directory/internal/action"
	"provider-directory/internal/gateway"
	"provider-directory/internal/view"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// app holds what every command needs. It is filled by the root command's
// PersistentPreRunE so that flags are already parsed.
type app struct {
	cfg     *config.ClientConfig
	log     *logrus.Logger
	tokens  *gateway.FileTokenStore
	gateway *gateway.Gateway
	actions *action.Set
	out     io.Writer
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.LoadClientConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	headless, _ := cmd.Flags().GetBool("headless")

	log := logrus.New()
	log.SetOutput(cmd.ErrOrStderr())
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log.SetLevel(logrus.WarnLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	a.cfg = cfg
	a.log = log
	a.out = cmd.OutOrStdout()
	a.tokens = gateway.NewFileTokenStore(cfg.TokenFile)
	a.gateway = gateway.New(gateway.Config{
		APIBaseURL:       cfg.APIBaseURL,
		ResourcesBaseURL: cfg.ResourcesBaseURL,
		Timeout:          cfg.Timeout,
		Headless:         cfg.Headless || headless,
	}, a.tokens, log)
	a.actions = action.NewSet(a.gateway, log)
	return nil
}

func (a *app) println(parts ...string) {
	for _, p := range parts {
		fmt.Fprintln(a.out, p)
	}
}

// run wraps a command body so that a panic renders the error page instead
// of a stack trace.
func (a *app) run(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic: %v", r)
				if a.log != nil {
					a.log.Errorf("Recovered from panic in %s: %v", cmd.CommandPath(), r)
				}
				fmt.Fprintln(cmd.ErrOrStderr(), view.ErrorPage(err))
			}
		}()
		return fn(cmd, args)
	}
}

// NewRootCommand builds the directoryctl command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "directoryctl",
		Short:         "Manage the healthcare service provider directory",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	rootCmd.PersistentFlags().Bool("verbose", false, "Log every request at debug level")
	rootCmd.PersistentFlags().Bool("headless", false, "Never attach the stored session token")

	rootCmd.AddCommand(providersCmd(a))
	rootCmd.AddCommand(branchesCmd(a))
	rootCmd.AddCommand(specialtiesCmd(a))
	rootCmd.AddCommand(insurancesCmd(a))
	rootCmd.AddCommand(proceduresCmd(a))
	rootCmd.AddCommand(loginCmd(a))
	rootCmd.AddCommand(logoutCmd(a))
	rootCmd.AddCommand(tokenCmd(a))

	return rootCmd
}

// Execute runs the command tree against os.Args and returns the exit code.
func Execute() int {
	if err := NewRootCommand().Execute(); err != nil {
		return 1
	}
	return 0
}
