// Package cli implements the polyform command line.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/njchilds90/gopoly"
	"github.com/njchilds90/gopoly/internal/config"
	"github.com/njchilds90/gopoly/internal/logger"
	"github.com/njchilds90/gopoly/internal/style"
)

// Version is set at build time with -ldflags "-X .../internal/cli.Version=...".
var Version = "dev"

// app holds state shared by every subcommand once the root has run.
type app struct {
	configPath string
	logLevel   string
	color      string

	cfg *config.Config
	log *logger.Logger
}

// NewRootCmd builds the polyform command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "polyform",
		Short: "Canonicalize polynomial equations",
		Long: `Polyform rewrites polynomial equations into the canonical form
"<signed terms> = 0": like terms are combined, zero terms dropped and the
rest ordered by descending degree.

  polyform simplify "x^2 + 3.5xy + y = y^2 - xy + y"
  x^2 - y^2 + 4.5xy = 0`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "TOML config file (default $"+config.EnvPath+")")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Override log level (trace, debug, info, warn, error, disabled)")
	root.PersistentFlags().StringVar(&a.color, "color", "", "Color output: auto, always, never")

	root.AddCommand(
		newSimplifyCmd(a),
		newReplCmd(a),
		newFileCmd(a),
		newServeCmd(a),
		newVersionCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.color != "" {
		cfg.Render.Color = a.color
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	logOut := cmd.ErrOrStderr()
	if cfg.Log.Output == "stdout" {
		logOut = cmd.OutOrStdout()
	}
	a.log = logger.NewWithWriter(cfg.Log, logOut)
	logger.SetGlobal(a.log)
	style.Setup(cfg.Render.Color)
	return nil
}

// pipeline builds a pipeline from the render settings. latex overrides the
// configured default when set.
func (a *app) pipeline(latex bool) *gopoly.Pipeline {
	return gopoly.NewPipeline(
		gopoly.WithSorter(gopoly.DegreeSorter{Preferred: a.cfg.PreferredVar()}),
		gopoly.WithFormatter(gopoly.EquationFormatter{LaTeX: latex || a.cfg.Render.LaTeX}),
	)
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), style.Error.Render("Error:"), err)
		return 1
	}
	return 0
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the polyform version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "polyform %s\n", Version)
		},
	}
}
