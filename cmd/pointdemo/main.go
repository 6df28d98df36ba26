// Command pointdemo runs the sample script used in the terminal demo.
package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/najoast/pointdemo/config"
)

func main() {
	if err := newRootCmd(config.NewLoader).ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// rootOptions holds flags shared by all commands
type rootOptions struct {
	configFile string
	logLevel   string
	verbose    bool

	// newLoader creates the configuration loader used by every command
	newLoader func() *config.Loader
}

func newRootCmd(newLoader func() *config.Loader) *cobra.Command {
	opts := &rootOptions{newLoader: newLoader}
	var watch bool

	rootCmd := &cobra.Command{
		Use:   "pointdemo",
		Short: "Print a point's distance from the origin and a summed sequence",
		Long: `pointdemo is the sample script shown in the terminal demo.

It prints the distance of a point from the origin, the sum of a sequence
of numbers and whether that sum is above a threshold. Inputs default to
the point (3, 4), the numbers 1 to 5 and the threshold 10, and can be
changed with a YAML or JSON config file or POINTDEMO_* variables.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if watch {
				return watchScript(cmd, opts)
			}
			return runScript(cmd, opts)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "config file (default: search for pointdemo.yaml)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.Flags().BoolVarP(&watch, "watch", "w", false, "rerun the script whenever the config file changes")

	rootCmd.AddCommand(newConfigCmd(opts))

	return rootCmd
}
