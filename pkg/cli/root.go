package cli

import (
	"github.com/platinummonkey/flowsearch/pkg/observability"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is the build version reported by serve and health checks
var Version = "dev"

type rootOptions struct {
	logLevel  string
	logFormat string
}

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "flowsearch",
		Short:         "Flowsearch - attribute search over dataflow graphs",
		Long:          "Search the components of a dataflow graph by case-insensitive substring over their attributes.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
	}

	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "Log format (json or text)")

	root.AddCommand(newServeCommand(opts))
	root.AddCommand(newSearchCommand(opts))
	root.AddCommand(newKindsCommand())

	return root
}

// logger builds the command logger, writing to the command's error stream
func (o *rootOptions) logger(cmd *cobra.Command, defaultLevel, defaultFormat string) (*logrus.Logger, error) {
	level, format := defaultLevel, defaultFormat
	if o.logLevel != "" {
		level = o.logLevel
	}
	if o.logFormat != "" {
		format = o.logFormat
	}
	return observability.NewLogger(level, format, cmd.ErrOrStderr())
}
