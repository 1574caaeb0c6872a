package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/colkit/internal/schema"
	"github.com/oakwood-commons/colkit/pkg/column"
	"github.com/oakwood-commons/colkit/pkg/logger"
	"github.com/oakwood-commons/colkit/pkg/settings"
)

func newBuildCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "build <spec>",
		Short: "Build column descriptors and print them",
		Long: `Build reads a column-spec document (YAML or JSON) and prints the
resulting descriptors. Hooks are shown as "<func:source>", where source is
the strategy or extra property that installed them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lgr := logger.FromContext(cmd.Context())
			doc, err := schema.ParseFile(args[0])
			if err != nil {
				return err
			}
			cols := doc.Build()
			lgr.V(1).Info("built descriptors", logger.SpecFileKey, args[0], "columns", len(cols))
			return writeDescriptors(cmd.OutOrStdout(), cols, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", settings.OutputYAML, "output format: yaml|json|toml")
	return cmd
}

func writeDescriptors(w io.Writer, cols []*column.Descriptor, format string) error {
	views := make([]column.Props, len(cols))
	for i, c := range cols {
		views[i] = c.Props()
	}

	var (
		out []byte
		err error
	)
	switch format {
	case settings.OutputYAML:
		out, err = yaml.Marshal(views)
	case settings.OutputJSON:
		out, err = json.MarshalIndent(views, "", "  ")
		out = append(out, '\n')
	case settings.OutputTOML:
		// TOML needs a table at the top level; key order is not kept
		plain := make([]any, len(views))
		for i, v := range views {
			plain[i] = plainValue(v)
		}
		out, err = toml.Marshal(map[string]any{"columns": plain})
	default:
		return fmt.Errorf("unsupported output format %q (want yaml, json or toml)", format)
	}
	if err != nil {
		return fmt.Errorf("encode descriptors: %w", err)
	}
	_, err = w.Write(out)
	return err
}

// plainValue turns Props into maps, recursively, for encoders without
// custom marshaler support.
func plainValue(v any) any {
	switch x := v.(type) {
	case column.Props:
		m := make(map[string]any, len(x))
		for _, p := range x {
			m[p.Name] = plainValue(p.Value)
		}
		return m
	case map[string]any:
		m := make(map[string]any, len(x))
		for k, val := range x {
			m[k] = plainValue(val)
		}
		return m
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = plainValue(val)
		}
		return out
	}
	return v
}
