package cmd

import (
	"fmt"
	"io"
	"maps"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/oakwood-commons/colkit/internal/cel"
	"github.com/oakwood-commons/colkit/internal/config"
	"github.com/oakwood-commons/colkit/internal/limiter"
	"github.com/oakwood-commons/colkit/internal/render"
	"github.com/oakwood-commons/colkit/internal/schema"
	"github.com/oakwood-commons/colkit/internal/ui"
	"github.com/oakwood-commons/colkit/pkg/column"
	"github.com/oakwood-commons/colkit/pkg/loader"
	"github.com/oakwood-commons/colkit/pkg/logger"
	"github.com/oakwood-commons/colkit/pkg/settings"
)

type previewOptions struct {
	where       string
	output      string
	interactive bool
	keyMode     string
	limits      limiter.Config
}

func newPreviewCmd() *cobra.Command {
	var opts previewOptions
	cmd := &cobra.Command{
		Use:   "preview <spec> <records>",
		Short: "Render records through column descriptors",
		Long: `Preview builds the descriptors of a column-spec document and renders the
records file (JSON, NDJSON, YAML or TOML; "-" reads stdin) through them,
calling every column hook the way a table component would.`,
		Example: "  colkit preview columns.yaml rows.json\n  colkit preview columns.yaml rows.yaml --where '_.active' --limit 20 -o markdown\n  cat rows.ndjson | colkit preview columns.yaml - -i",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.applyConfig(cmd, configFrom(cmd.Context()))
			return runPreview(cmd, args[0], args[1], opts)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.where, "where", "", "CEL expression over each record ('_'); only matching records are shown")
	flags.StringVarP(&opts.output, "output", "o", settings.OutputText, "output format: text|markdown|html")
	flags.BoolVarP(&opts.interactive, "interactive", "i", false, "browse the rendered table in a TUI")
	flags.StringVar(&opts.keyMode, "key-mode", string(ui.DefaultKeyMode), "interactive keybindings: vim|emacs|function")
	flags.IntVar(&opts.limits.Limit, "limit", 0, "show at most N records")
	flags.IntVar(&opts.limits.Offset, "offset", 0, "skip the first N records")
	flags.IntVar(&opts.limits.Tail, "tail", 0, "show the last N records (mutually exclusive with --limit; ignores --offset)")
	return cmd
}

// applyConfig fills options the user did not set on the command line.
func (o *previewOptions) applyConfig(cmd *cobra.Command, cfg config.Config) {
	changed := cmd.Flags().Changed
	if !changed("where") {
		o.where = cfg.Preview.Where
	}
	if !changed("output") {
		o.output = cfg.Output.Format
	}
	if !changed("interactive") {
		o.interactive = cfg.Preview.Interactive
	}
	if !changed("key-mode") && cfg.Preview.KeyMode != "" {
		o.keyMode = cfg.Preview.KeyMode
	}
	if !changed("limit") {
		o.limits.Limit = cfg.Preview.Limit
	}
	if !changed("offset") {
		o.limits.Offset = cfg.Preview.Offset
	}
	if !changed("tail") {
		o.limits.Tail = cfg.Preview.Tail
	}
}

func runPreview(cmd *cobra.Command, specPath, recordsPath string, opts previewOptions) error {
	ctx := cmd.Context()
	lgr := logger.WithValues(logger.FromContext(ctx), logger.SpecFileKey, specPath)
	run := settings.FromContextOrDefault(ctx)
	cfg := configFrom(ctx)

	if !ui.IsValidKeyMode(opts.keyMode) {
		return fmt.Errorf("--key-mode must be vim, emacs or function, got %q", opts.keyMode)
	}
	if err := opts.limits.Validate(); err != nil {
		return fmt.Errorf("record limiting: %w", err)
	}

	doc, err := schema.ParseFile(specPath)
	if err != nil {
		return err
	}

	records, err := readRecords(cmd.InOrStdin(), recordsPath)
	if err != nil {
		return fmt.Errorf("load records: %w", err)
	}
	total := len(records)

	if opts.where != "" {
		eval, err := cel.NewEvaluator()
		if err != nil {
			return err
		}
		filter, err := eval.Compile(opts.where)
		if err != nil {
			return fmt.Errorf("--where: %w", err)
		}
		lgr.V(1).Info("filtering records", "where", filter.String(), "fields", filter.Fields())
		if records, err = filter.Apply(records); err != nil {
			return fmt.Errorf("--where: %w", err)
		}
	}
	records = limiter.Apply(opts.limits, records)
	lgr.V(1).Info("records selected", "total", humanize.Comma(int64(total)), "shown", humanize.Comma(int64(len(records))))

	slots := maps.Clone(cfg.Preview.Slots)
	if slots == nil {
		slots = map[string]string{}
	}
	maps.Copy(slots, doc.Slots)

	table, err := render.Build(doc.Build(), records, slots)
	if err != nil {
		lgr.Error(err, "render failed")
		return err
	}

	if opts.interactive {
		progOpts, cleanup := programOptions(cmd.InOrStdin(), cmd.OutOrStdout())
		defer cleanup()
		return ui.RunPreview(doc.Name, table, run.NoColor, ui.KeyMode(opts.keyMode), progOpts...)
	}

	out, err := render.Render(table, render.Options{Format: opts.output, NoColor: run.NoColor, Width: run.Width})
	if err != nil {
		return err
	}
	_, err = io.WriteString(cmd.OutOrStdout(), out)
	return err
}

func readRecords(stdin io.Reader, path string) ([]column.Record, error) {
	if path != "-" {
		return loader.LoadRecordsFile(path)
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, err
	}
	return loader.LoadRecords(string(data))
}
