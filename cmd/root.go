// Package cmd implements the colkit command line.
package cmd

import (
	"context"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/colkit/internal/config"
	"github.com/oakwood-commons/colkit/pkg/logger"
	"github.com/oakwood-commons/colkit/pkg/settings"
)

type configKey struct{}

// NewRootCmd builds the command tree. Each call returns independent
// commands and flag state.
func NewRootCmd() *cobra.Command {
	run := settings.NewCliParams()
	var debug bool

	root := &cobra.Command{
		Use:   settings.CliBinaryName,
		Short: "Build and preview table column descriptors",
		Long: `colkit turns compact column specs (title, field, scope and ordered extra
properties) into column descriptors for a table component, and previews
how records render through them.`,
		Example:           "\n  colkit build columns.yaml\n  colkit preview columns.yaml rows.json --where '_.age > 30'\n  colkit truncate 'a long value' --len 6",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			run.MinLogLevel = settings.LogLevel(debug)
			lgr := logger.Get(run.MinLogLevel)
			lgr = logger.WithValues(lgr, logger.RootCommandKey, settings.CliBinaryName, logger.SubCommandKey, cmd.Name())

			cfg, err := config.Load(run.ConfigFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if !cmd.Flags().Changed("no-color") {
				run.NoColor = cfg.Output.NoColor
			}
			if !cmd.Flags().Changed("width") {
				run.Width = cfg.Output.Width
			}
			lgr.V(1).Info("configuration loaded", "config_file", run.ConfigFile)

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = logger.WithLogger(ctx, lgr)
			ctx = settings.IntoContext(ctx, run)
			ctx = context.WithValue(ctx, configKey{}, cfg)
			cmd.SetContext(ctx)
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&run.ConfigFile, "config-file", "", "path to a YAML or TOML config file (default $XDG_CONFIG_HOME/colkit/config.yaml)")
	flags.BoolVar(&debug, "debug", false, "log at debug level to stderr")
	flags.BoolVar(&run.NoColor, "no-color", false, "disable color output")
	flags.IntVar(&run.Width, "width", 0, "output width in columns (0 = terminal width)")

	root.Version = versionString()
	root.SetVersionTemplate("{{.Version}}\n")

	root.AddCommand(
		newBuildCmd(),
		newPreviewCmd(),
		newTruncateCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command with os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

// configFrom returns the configuration loaded by the root pre-run.
func configFrom(ctx context.Context) config.Config {
	if cfg, ok := ctx.Value(configKey{}).(config.Config); ok {
		return cfg
	}
	cfg, _ := config.Default()
	return cfg
}

func versionString() string {
	v := settings.VersionInformation
	return fmt.Sprintf("%s %s (commit %s, built %s, %s)", settings.CliBinaryName, v.BuildVersion, v.Commit, v.BuildTime, runtime.Version())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print colkit version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), versionString())
			return err
		},
	}
}
