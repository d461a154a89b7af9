package terminal

import (
	"context"
	"io"
	"os"

	"github.com/de-tools/malaria-atlas/pkg/runtime/app"
	"github.com/de-tools/malaria-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/malaria-atlas/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

// BootstrapFunc builds the application from the config file at path.
type BootstrapFunc func(ctx context.Context, path string) (*app.App, error)

// CLI represents the command-line interface
type CLI struct {
	bootstrap    BootstrapFunc
	configPath   string
	app          *app.App
	deps         *commands.Deps
	reporter     *export.Reporter
	newsReporter *export.NewsReporter
	output       io.Writer
	rootCmd      *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Bootstrap BootstrapFunc
	Output    io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Bootstrap == nil {
		opts.Bootstrap = app.Bootstrap
	}

	cli := &CLI{
		bootstrap:    opts.Bootstrap,
		deps:         &commands.Deps{},
		reporter:     export.NewReporter(opts.Output),
		newsReporter: export.NewNewsReporter(opts.Output),
		output:       opts.Output,
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.ExecuteContext(context.Background())
}

// ExecuteContext runs the CLI and releases the application afterwards, also when the
// command failed.
func (cli *CLI) ExecuteContext(ctx context.Context) error {
	err := cli.rootCmd.ExecuteContext(ctx)
	if stopErr := cli.stop(); err == nil {
		err = stopErr
	}
	return err
}

// SetArgs overrides the command line arguments.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "malaria",
		Short:             "Malaria surveillance dashboard tool",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: cli.start,
	}
	cmd.SetOut(cli.output)
	cmd.PersistentFlags().StringVarP(&cli.configPath, "config", "c", "", "Path to the config.yaml file")

	cmd.AddCommand(commands.NewKPICmd(cli.deps, cli.reporter))
	cmd.AddCommand(commands.NewReportCmd(cli.deps))
	cmd.AddCommand(commands.NewExportCmd(cli.deps))
	cmd.AddCommand(commands.NewNewsCmd(cli.deps, cli.newsReporter))
	cmd.AddCommand(commands.NewAskCmd(cli.deps))

	return cmd
}

func (cli *CLI) start(cmd *cobra.Command, _ []string) error {
	a, err := cli.bootstrap(cmd.Context(), cli.configPath)
	if err != nil {
		return err
	}
	cli.app = a
	*cli.deps = commands.Deps{
		Explorer: a.Explorer,
		Reports:  a.Reports,
		News:     a.News,
		Advisor:  a.Advisor,
	}
	return nil
}

func (cli *CLI) stop() error {
	if cli.app == nil {
		return nil
	}
	err := cli.app.Close()
	cli.app = nil
	return err
}
