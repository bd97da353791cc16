package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/njchilds90/gopoly"
	"github.com/njchilds90/gopoly/internal/batch"
	"github.com/njchilds90/gopoly/internal/style"
)

type fileOptions struct {
	output string
	watch  bool
	latex  bool
}

func newFileCmd(a *app) *cobra.Command {
	var opts fileOptions

	cmd := &cobra.Command{
		Use:   "file <path>",
		Short: "Canonicalize every line of a file",
		Long: `Canonicalize every non-blank line of <path> and append the results to
the output file, which defaults to <path> with its extension replaced by the
configured batch.output_ext (".out").

Processing stops at the first invalid line and nothing is written. With
--watch the file is reprocessed each time it changes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := args[0]
			if opts.output == "" {
				opts.output = batch.OutputPath(in, a.cfg.Batch.OutputExt)
			}
			p := a.pipeline(opts.latex)
			bopts := batch.Options{Output: opts.output, LockTimeout: a.cfg.Batch.LockTimeout.Duration}

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			process := func() error { return processFile(ctx, cmd.OutOrStdout(), in, p, bopts) }
			if err := process(); err != nil {
				if !opts.watch {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "%s %v\n", style.Error.Render("✗"), err)
			}
			if !opts.watch {
				return nil
			}
			return batch.Watch(ctx, in, a.cfg.Batch.WatchDebounce.Duration, process)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file (default <path> with the output extension)")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Reprocess the file whenever it changes")
	cmd.Flags().BoolVar(&opts.latex, "latex", false, "Render exponents as LaTeX (x^{2})")
	return cmd
}

func processFile(ctx context.Context, out io.Writer, in string, p *gopoly.Pipeline, opts batch.Options) error {
	path, n, err := batch.ProcessFile(ctx, in, p, opts)
	if err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}
	fmt.Fprintf(out, "%s wrote %d equations to %s\n", style.Success.Render("✓"), n, path)
	return nil
}
