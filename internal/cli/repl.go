package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/njchilds90/gopoly"
	"github.com/njchilds90/gopoly/internal/style"
)

func newReplCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Canonicalize equations interactively",
		Long: `Read equations one per line and print each canonical form. Errors are
printed and the loop continues. Type "exit" or send EOF to stop.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := cmd.InOrStdin()
			f, ok := in.(*os.File)
			interactive := ok && style.IsTerminal(f)
			return runRepl(in, cmd.OutOrStdout(), a.pipeline(false), interactive)
		},
	}
}

// runRepl prompts only when interactive, so piped sessions produce clean
// output.
func runRepl(in io.Reader, out io.Writer, p *gopoly.Pipeline, interactive bool) error {
	prompt := func() {
		if interactive {
			fmt.Fprint(out, style.Dim.Render("polyform> "))
		}
	}
	if interactive {
		fmt.Fprintln(out, style.Bold.Render("Enter an equation, or \"exit\" to quit."))
	}

	sc := bufio.NewScanner(in)
	prompt()
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch line {
		case "":
		case "exit", "quit":
			return nil
		default:
			if res, err := p.Canonicalize(line); err != nil {
				fmt.Fprintln(out, style.Error.Render("error: "+err.Error()))
			} else {
				fmt.Fprintln(out, style.Success.Render(res))
			}
		}
		prompt()
	}
	if interactive {
		fmt.Fprintln(out)
	}
	return sc.Err()
}
