package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/launchkit/launchkit/internal/metrics"
	"github.com/launchkit/launchkit/internal/process"
	"github.com/launchkit/launchkit/internal/project"
	"github.com/launchkit/launchkit/internal/scaffold"
	"github.com/launchkit/launchkit/internal/server"
	"github.com/launchkit/launchkit/internal/stack"
	"github.com/launchkit/launchkit/internal/supervisor"
	"github.com/launchkit/launchkit/internal/ui"
)

// command binds handlers to a lazily built app, keeping cobra wiring
// separate from the logic.
type command struct {
	global *GlobalFlags
}

func (c command) app() (*app, error) {
	return newApp(c.global.ConfigPath)
}

func createServerCommand(global *GlobalFlags, startFlags, restartFlags *ServerFlags) *cobra.Command {
	c := command{global: global}

	serverCmd := &cobra.Command{
		Use:   "server",
		Short: "Manage the development server of a project",
	}

	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start the development server and wait for readiness",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.ServerStart(*startFlags)
		},
	}
	addServerFlags(startCmd, startFlags)

	stopCmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the supervised development server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.ServerStop()
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show development server status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.ServerStatus()
		},
	}

	restartCmd := &cobra.Command{
		Use:   "restart",
		Short: "Restart the development server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.ServerRestart(*restartFlags)
		},
	}
	addServerFlags(restartCmd, restartFlags)

	logsCmd := &cobra.Command{
		Use:   "logs",
		Short: "Show recent development server output",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.ServerLogs()
		},
	}

	serverCmd.AddCommand(startCmd, stopCmd, statusCmd, restartCmd, logsCmd)
	return serverCmd
}

func addServerFlags(cmd *cobra.Command, flags *ServerFlags) {
	cmd.Flags().StringVar(&flags.Folder, "folder", ".", "project folder")
	cmd.Flags().StringVar(&flags.Stack, "stack", "", "stack name override")
	cmd.Flags().StringVar(&flags.Command, "command", "", "manual dev command override")
	cmd.Flags().BoolVar(&flags.Foreground, "foreground", false, "run attached to the terminal, unsupervised")
	cmd.Flags().BoolVar(&flags.NoBrowser, "no-browser", false, "never offer to open the browser")
}

// resolveSpec turns the flags plus project metadata into a launchable
// spec. --command wins over --stack wins over launchkit.json.
func (c command) resolveSpec(a *app, f ServerFlags) (process.Spec, string, string, error) {
	folder, err := filepath.Abs(f.Folder)
	if err != nil {
		return process.Spec{}, "", "", err
	}

	projectName := filepath.Base(folder)
	stackName := f.Stack
	if meta, err := project.Load(folder); err == nil {
		projectName = meta.ProjectName
		if stackName == "" {
			stackName = meta.ProjectStack
		}
	} else if !errors.Is(err, project.ErrNoProject) {
		return process.Spec{}, "", "", err
	}

	if f.Command != "" {
		spec, err := stack.ManualSpec(f.Command, folder)
		return spec, projectName, "custom", err
	}
	if stackName == "" {
		return process.Spec{}, "", "", fmt.Errorf("%s is not a launchkit project; pass --stack or --command", folder)
	}
	spec, err := a.catalog.Resolve(stackName, folder)
	if err != nil {
		return process.Spec{}, "", "", err
	}
	return spec, projectName, stackName, nil
}

func (c command) ServerStart(f ServerFlags) error {
	a, err := c.app()
	if err != nil {
		return err
	}
	defer a.close()

	spec, projectName, stackName, err := c.resolveSpec(a, f)
	if err != nil {
		return err
	}
	if f.Foreground {
		return a.sup.RunForeground(spec)
	}
	if f.NoBrowser {
		a.sup.SetPrompter(nil)
	}

	a.sup.InstallSignalHandler(nil)
	mp, err := a.sup.Launch(spec, projectName, stackName)
	if err != nil {
		return err
	}
	if err := awaitReadiness(a, mp); err != nil {
		return err
	}
	ui.Field("URL", spec.URL)
	a.sup.Reporter().Info("Press Ctrl+C to stop the development server.")

	// Block until the child exits on its own or a signal triggers cleanup.
	mp.Proc.WaitExit(-1)
	a.sup.CleanupAll()
	return nil
}

// awaitReadiness blocks until the readiness monitor settles, bounded by
// the full polling budget plus slack.
func awaitReadiness(a *app, mp *supervisor.ManagedProcess) error {
	r := a.cfg.Readiness
	budget := time.Duration(r.Attempts)*(r.Interval+r.Timeout) + 10*time.Second
	if !mp.WaitMonitor(budget) {
		return fmt.Errorf("readiness monitoring did not settle within %s", budget)
	}
	if mp.State() == supervisor.StateFailed {
		_, msg := mp.Failure()
		return fmt.Errorf("development server failed to start: %s", msg)
	}
	return nil
}

func (c command) ServerStop() error {
	a, err := c.app()
	if err != nil {
		return err
	}
	defer a.close()
	if _, err := a.sup.Stop(); err != nil {
		if errors.Is(err, supervisor.ErrNotRunning) {
			a.sup.Reporter().Warn("No development server is running.")
			return nil
		}
		return err
	}
	return nil
}

func (c command) ServerStatus() error {
	a, err := c.app()
	if err != nil {
		return err
	}
	defer a.close()
	info, err := a.sup.Status()
	if err != nil {
		if errors.Is(err, supervisor.ErrNotRunning) {
			a.sup.Reporter().Warn("No development server is running.")
			return nil
		}
		return err
	}
	printStatus(info)
	return nil
}

func printStatus(info *supervisor.StatusInfo) {
	ui.Header("Development Server")
	ui.Field("Project", info.Project)
	ui.Field("Stack", info.Stack)
	ui.Field("State", info.State)
	ui.Field("PID", fmt.Sprintf("%d", info.PID))
	if info.URL != "" {
		ui.Field("URL", info.URL)
	}
	ui.Field("Uptime", info.Uptime.Round(time.Second).String())
	if info.CPUPercent > 0 {
		ui.Field("CPU", fmt.Sprintf("%.1f%%", info.CPUPercent))
	}
	if info.MemoryRSS > 0 {
		ui.Field("Memory", fmt.Sprintf("%.1f MB", float64(info.MemoryRSS)/(1024*1024)))
	}
}

func (c command) ServerRestart(f ServerFlags) error {
	a, err := c.app()
	if err != nil {
		return err
	}
	defer a.close()

	spec, projectName, stackName, err := c.resolveSpec(a, f)
	if err != nil {
		return err
	}
	if f.NoBrowser {
		a.sup.SetPrompter(nil)
	}
	a.sup.InstallSignalHandler(nil)
	mp, err := a.sup.Restart(spec, projectName, stackName)
	if err != nil {
		return err
	}
	if err := awaitReadiness(a, mp); err != nil {
		return err
	}
	mp.Proc.WaitExit(-1)
	a.sup.CleanupAll()
	return nil
}

func (c command) ServerLogs() error {
	a, err := c.app()
	if err != nil {
		return err
	}
	defer a.close()
	logs, err := a.sup.Logs()
	if err != nil {
		if errors.Is(err, supervisor.ErrNotRunning) {
			a.sup.Reporter().Warn("No development server is running.")
			return nil
		}
		return err
	}
	if logs.FilePath != "" {
		ui.Field("Log file", logs.FilePath)
	}
	fmt.Print(logs.Tail)
	return nil
}

func createInitCommand(global *GlobalFlags, flags *InitFlags) *cobra.Command {
	c := command{global: global}
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a new project",
		Long: `Create a new project folder with stack boilerplate, optional add-ons
and launchkit metadata. Flags left empty are asked interactively.

Examples:
  launchkit init --name=myapi --stack="Flask (Python)"
  launchkit init     # fully interactive`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.app()
			if err != nil {
				return err
			}
			defer a.close()
			return c.Init(a, *flags)
		},
	}
	cmd.Flags().StringVar(&flags.Name, "name", "", "project name")
	cmd.Flags().StringVar(&flags.Type, "type", "", "project type (Frontend only, Backend only, Fullstack, Other / Custom)")
	cmd.Flags().StringVar(&flags.Stack, "stack", "", "stack name")
	cmd.Flags().StringVar(&flags.Folder, "folder", "", "destination folder (default ./<name>)")
	cmd.Flags().StringSliceVar(&flags.Addons, "addon", nil, "add-ons to apply")
	cmd.Flags().BoolVar(&flags.NoGit, "no-git", false, "skip git init")
	return cmd
}

func (c command) Init(a *app, f InitFlags) error {
	name := f.Name
	if name == "" {
		var err error
		name, err = ui.Input("Project name", "my-app", "my-app")
		if err != nil {
			return err
		}
	}

	stackName := f.Stack
	if stackName == "" {
		projectType := f.Type
		if projectType == "" {
			var err error
			projectType, err = ui.Select("What are you building?", []string{
				stack.TypeFrontend, stack.TypeBackend, stack.TypeFullstack, stack.TypeCustom,
			})
			if err != nil {
				return err
			}
		}
		var err error
		stackName, err = ui.Select("Pick a stack", a.catalog.Names(projectType))
		if err != nil {
			return err
		}
	}
	info, ok := a.catalog.Get(stackName)
	if !ok {
		return fmt.Errorf("unknown stack %q", stackName)
	}

	addons := f.Addons
	if len(addons) == 0 && f.Name == "" {
		// Interactive session: offer add-ons too.
		var err error
		addons, err = ui.MultiSelect("Add-ons", scaffold.Addons)
		if err != nil {
			return err
		}
	}

	folder := f.Folder
	if folder == "" {
		folder = name
	}
	folder, err := filepath.Abs(folder)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return err
	}

	if err := scaffold.Run(stackName, name, folder); err != nil {
		return err
	}
	if err := scaffold.ApplyAddons(addons, info.Language, name, folder); err != nil {
		return err
	}
	meta := project.New(name, info.ProjectType, stackName, addons)
	if err := meta.Save(folder); err != nil {
		return err
	}
	if !f.NoGit {
		gitInit(folder)
	}

	ui.Header("Project created")
	ui.Field("Name", name)
	ui.Field("Stack", stackName)
	ui.Field("Folder", folder)
	if info.DevCommand != "" {
		ui.Field("Dev command", info.DevCommand)
	}
	return nil
}

// gitInit is best effort; a missing git binary is not an error.
func gitInit(folder string) {
	git, err := exec.LookPath("git")
	if err != nil {
		return
	}
	cmd := exec.Command(git, "init")
	cmd.Dir = folder
	_ = cmd.Run()
}

func createServeCommand(global *GlobalFlags, flags *ServeFlags) *cobra.Command {
	c := command{global: global}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the control API, optionally supervising a dev server",
		Long: `Start the local HTTP control API and, when configured, the Prometheus
metrics endpoint. With --folder or --stack a development server is
launched and supervised for the lifetime of the daemon.

Examples:
  launchkit serve
  launchkit serve --folder=./myapp --listen=127.0.0.1:7070`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Serve(*flags)
		},
	}
	cmd.Flags().StringVar(&flags.Listen, "listen", "", "control API listen address")
	cmd.Flags().StringVar(&flags.BasePath, "base-path", "", "control API base path")
	cmd.Flags().StringVar(&flags.MetricsListen, "metrics-listen", "", "Prometheus listen address")
	cmd.Flags().StringVar(&flags.Folder, "folder", "", "project folder to supervise")
	cmd.Flags().StringVar(&flags.Stack, "stack", "", "stack name override")
	return cmd
}

func (c command) Serve(f ServeFlags) error {
	a, err := c.app()
	if err != nil {
		return err
	}
	defer a.close()

	listen := f.Listen
	if listen == "" {
		listen = a.cfg.Server.Listen
	}
	basePath := f.BasePath
	if basePath == "" {
		basePath = a.cfg.Server.BasePath
	}

	a.sup.SetPrompter(nil) // daemon mode never opens browsers
	a.sup.InstallSignalHandler(nil)

	if f.Folder != "" || f.Stack != "" {
		spec, projectName, stackName, err := c.resolveSpec(a, ServerFlags{Folder: orDot(f.Folder), Stack: f.Stack})
		if err != nil {
			return err
		}
		if _, err := a.sup.Launch(spec, projectName, stackName); err != nil {
			return err
		}
	}

	if _, err := server.NewServer(listen, basePath, a.sup); err != nil {
		return err
	}
	a.sup.Reporter().Info(fmt.Sprintf("Control API listening on http://%s%s", listen, basePath))

	if a.cfg.Metrics.Enabled || f.MetricsListen != "" {
		metricsListen := f.MetricsListen
		if metricsListen == "" {
			metricsListen = a.cfg.Metrics.Listen
		}
		if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
			return err
		}
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		go func() {
			srv := &http.Server{Addr: metricsListen, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
			_ = srv.ListenAndServe()
		}()
		a.sup.Reporter().Info(fmt.Sprintf("Metrics on http://%s/metrics", metricsListen))
	}

	select {} // the signal handler owns shutdown
}

func orDot(folder string) string {
	if folder == "" {
		return "."
	}
	return folder
}

func createStacksCommand(global *GlobalFlags, flags *StacksFlags) *cobra.Command {
	c := command{global: global}
	cmd := &cobra.Command{
		Use:   "stacks",
		Short: "List the known stacks",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.app()
			if err != nil {
				return err
			}
			defer a.close()
			return c.Stacks(a, *flags)
		},
	}
	cmd.Flags().StringVar(&flags.Type, "type", "", "filter by project type")
	return cmd
}

func (c command) Stacks(a *app, f StacksFlags) error {
	names := a.catalog.Names(f.Type)
	if len(names) == 0 {
		return fmt.Errorf("no stacks for type %q", f.Type)
	}
	for _, name := range names {
		info, _ := a.catalog.Get(name)
		line := name
		if info.DevCommand != "" {
			line += "  (" + info.DevCommand
			if info.DevPort > 0 {
				line += fmt.Sprintf(", port %d", info.DevPort)
			}
			line += ")"
		}
		fmt.Println("  " + strings.TrimSpace(line))
	}
	return nil
}
