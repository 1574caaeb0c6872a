package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oakwood-commons/colkit/internal/config"
	"github.com/oakwood-commons/colkit/pkg/settings"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage colkit configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	var output string
	get := &cobra.Command{
		Use:   "get",
		Short: "Show merged configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := config.Marshal(configFrom(cmd.Context()), output)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	get.Flags().StringVarP(&output, "output", "o", settings.OutputYAML, "output format: yaml|json|toml")

	cmd.AddCommand(get)
	return cmd
}
