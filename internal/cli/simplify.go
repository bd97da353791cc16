package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/njchilds90/gopoly"
	"github.com/njchilds90/gopoly/internal/logger"
	"github.com/njchilds90/gopoly/internal/style"
)

type simplifyOptions struct {
	latex   bool
	postfix bool
	json    bool
}

func newSimplifyCmd(a *app) *cobra.Command {
	var opts simplifyOptions

	cmd := &cobra.Command{
		Use:   "simplify [equation...]",
		Short: "Canonicalize equations given as arguments or on stdin",
		Long: `Canonicalize each argument. With no arguments, every non-blank line of
stdin is read as one equation.

A failing equation is reported on stderr and the rest are still processed;
the command exits non-zero if any failed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			equations := args
			if len(equations) == 0 {
				var err error
				if equations, err = readLines(cmd.InOrStdin()); err != nil {
					return err
				}
				if len(equations) == 0 {
					fmt.Fprintln(cmd.ErrOrStderr(), style.Warning.Render("no equations given on stdin"))
					return nil
				}
			}
			return runSimplify(cmd.OutOrStdout(), cmd.ErrOrStderr(), a.pipeline(opts.latex), equations, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.latex, "latex", false, "Render exponents as LaTeX (x^{2})")
	cmd.Flags().BoolVar(&opts.postfix, "postfix", false, "Also print the sanitized and postfix forms")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Print one JSON object per equation")
	return cmd
}

// simplifyRecord is the --json output for one equation.
type simplifyRecord struct {
	Input   string          `json:"input"`
	Output  string          `json:"output,omitempty"`
	Postfix string          `json:"postfix,omitempty"`
	Terms   json.RawMessage `json:"terms,omitempty"`
	Error   string          `json:"error,omitempty"`
}

func runSimplify(stdout, stderr io.Writer, p *gopoly.Pipeline, equations []string, opts simplifyOptions) error {
	log := logger.L().WithComponent("simplify")
	enc := json.NewEncoder(stdout)
	failed := 0

	for _, eq := range equations {
		res, err := p.Run(eq)
		if err != nil {
			failed++
			log.Debug("equation failed", logger.Fields(logger.FieldInput, eq, logger.FieldError, err))
			if opts.json {
				if err := enc.Encode(simplifyRecord{Input: eq, Error: err.Error()}); err != nil {
					return err
				}
				continue
			}
			fmt.Fprintf(stderr, "%s %s: %v\n", style.Error.Render("✗"), eq, err)
			continue
		}

		switch {
		case opts.json:
			terms, err := gopoly.ToJSON(res.Terms)
			if err != nil {
				return err
			}
			rec := simplifyRecord{Input: eq, Output: res.Output, Terms: json.RawMessage(terms)}
			if opts.postfix {
				rec.Postfix = res.Postfix
			}
			if err := enc.Encode(rec); err != nil {
				return err
			}
		case opts.postfix:
			fmt.Fprintf(stdout, "%s %s\n", style.Dim.Render("sanitized:"), style.Info.Render(res.Sanitized))
			fmt.Fprintf(stdout, "%s %s\n", style.Dim.Render("postfix:  "), style.Info.Render(res.Postfix))
			fmt.Fprintf(stdout, "%s %s\n", style.Dim.Render("result:   "), style.Success.Render(res.Output))
		default:
			fmt.Fprintln(stdout, style.Success.Render(res.Output))
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d equations failed", failed, len(equations))
	}
	return nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	return lines, nil
}
