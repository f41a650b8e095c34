package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/operator-framework/colorsat/pkg/version"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var debug bool
	logger := logrus.New()

	cmd := &cobra.Command{
		Use:   "colorsat",
		Short: "Enumerate the proper colorings of a graph",
		Long: `colorsat finds every proper coloring of an undirected graph with a
fixed palette, one at a time and never the same one twice.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.SetOutput(cmd.ErrOrStderr())
			if debug {
				logger.SetLevel(logrus.DebugLevel)
			}
			logger.Debugf("log level %s", logger.Level)
		},
	}
	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "use debug log level")

	cmd.AddCommand(
		newEnumerateCmd(logger),
		newExportCmd(logger),
		&cobra.Command{
			Use:   "version",
			Short: "Print the colorsat version",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprint(cmd.OutOrStdout(), version.String())
			},
		},
	)
	return cmd
}
