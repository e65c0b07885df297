package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/launchkit/launchkit/internal/config"
	"github.com/launchkit/launchkit/internal/history"
	"github.com/launchkit/launchkit/internal/history/factory"
	"github.com/launchkit/launchkit/internal/logger"
	"github.com/launchkit/launchkit/internal/stack"
	"github.com/launchkit/launchkit/internal/supervisor"
	"github.com/launchkit/launchkit/internal/ui"
)

func main() {
	root := buildRoot()
	if err := root.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app bundles the wired subsystems a command needs. It is built once per
// invocation, after flags are parsed.
type app struct {
	cfg     *config.Config
	sup     *supervisor.Supervisor
	catalog *stack.Catalog
}

func newApp(configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logger.Setup(cfg.LogLevel)

	catalog := stack.NewCatalog()
	if cfg.UserStacks != "" {
		if err := catalog.LoadUserStacks(cfg.UserStacks); err != nil {
			return nil, err
		}
	}

	sup := supervisor.New(cfg.SupervisorConfig())
	sup.SetLogConfig(cfg.Log)
	rep := ui.Reporter{}
	sup.SetReporter(rep)
	sup.SetPrompter(rep)
	if cfg.HistoryDSN != "" {
		sink, err := factory.NewSinkFromDSN(cfg.HistoryDSN)
		if err != nil {
			return nil, fmt.Errorf("history sink: %w", err)
		}
		sup.SetSinks([]history.Sink{sink})
	}
	return &app{cfg: cfg, sup: sup, catalog: catalog}, nil
}

// close flushes what must outlive the command.
func (a *app) close() {
	history.CloseAll(a.sup.Sinks())
}

func buildRoot() *cobra.Command {
	globalFlags := &GlobalFlags{}
	serverFlags := &ServerFlags{}
	restartFlags := &ServerFlags{}
	initFlags := &InitFlags{}
	serveFlags := &ServeFlags{}
	stacksFlags := &StacksFlags{}

	root := createRootCommand(globalFlags)
	root.AddCommand(
		createServerCommand(globalFlags, serverFlags, restartFlags),
		createInitCommand(globalFlags, initFlags),
		createServeCommand(globalFlags, serveFlags),
		createStacksCommand(globalFlags, stacksFlags),
	)
	return root
}

func createRootCommand(flags *GlobalFlags) *cobra.Command {
	root := &cobra.Command{
		Use:   "launchkit",
		Short: "Project scaffolding and dev-server supervision",
		Long: `Launchkit scaffolds new projects and supervises their development
servers: it launches the right command for the stack, waits until the
server answers HTTP, and guarantees the child is cleaned up on exit.

Examples:
  launchkit                         # interactive menu
  launchkit init --name=myapp --stack="Flask (Python)"
  launchkit server start            # start dev server in this folder
  launchkit server status
  launchkit serve                   # control API + metrics daemon`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(flags.ConfigPath)
			if err != nil {
				return err
			}
			defer a.close()
			return runMenu(a)
		},
	}
	root.PersistentFlags().StringVar(&flags.ConfigPath, "config", "", "path to TOML config file (optional)")
	return root
}
