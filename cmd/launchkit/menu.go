package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/launchkit/launchkit/internal/project"
	"github.com/launchkit/launchkit/internal/stack"
	"github.com/launchkit/launchkit/internal/supervisor"
	"github.com/launchkit/launchkit/internal/ui"
)

// Menu entries.
const (
	menuStart   = "Start dev server"
	menuStatus  = "Server status"
	menuLogs    = "View server logs"
	menuRestart = "Restart dev server"
	menuStop    = "Stop dev server"
	menuInit    = "Create a new project"
	menuExit    = "Exit"
)

// runMenu is the interactive session entered when launchkit runs with no
// subcommand. The dev server it launches lives only as long as the menu;
// leaving the menu (or Ctrl+C) shuts it down.
func runMenu(a *app) error {
	folder, err := os.Getwd()
	if err != nil {
		return err
	}
	a.sup.InstallSignalHandler(nil)

	meta, err := project.Load(folder)
	if err != nil && !errors.Is(err, project.ErrNoProject) {
		return err
	}

	ui.Header("launchkit")
	if meta != nil {
		ui.Field("Project", meta.ProjectName)
		ui.Field("Stack", meta.ProjectStack)
	}
	ui.Divider()

	for {
		choice, err := ui.Select("What would you like to do?", menuOptions(a, meta))
		if err != nil {
			if errors.Is(err, ui.ErrCancelled) {
				break
			}
			return err
		}

		switch choice {
		case menuStart:
			err = menuLaunch(a, meta, folder, false)
		case menuRestart:
			err = menuLaunch(a, meta, folder, true)
		case menuStatus:
			err = menuStatusAction(a)
		case menuLogs:
			err = menuLogsAction(a)
		case menuStop:
			if _, err = a.sup.Stop(); errors.Is(err, supervisor.ErrNotRunning) {
				a.sup.Reporter().Warn("No development server is running.")
				err = nil
			}
		case menuInit:
			err = command{global: &GlobalFlags{}}.Init(a, InitFlags{})
		case menuExit:
			a.sup.CleanupAll()
			return nil
		}
		if err != nil {
			a.sup.Reporter().Warn(err.Error())
		}
		fmt.Println()
	}

	a.sup.CleanupAll()
	return nil
}

func menuOptions(a *app, meta *project.Data) []string {
	running := false
	if _, err := a.sup.Status(); err == nil {
		running = true
	}
	var opts []string
	if meta != nil || running {
		if running {
			opts = append(opts, menuStatus, menuLogs, menuRestart, menuStop)
		} else {
			opts = append(opts, menuStart)
		}
	} else {
		opts = append(opts, menuStart)
	}
	opts = append(opts, menuInit, menuExit)
	return opts
}

// menuLaunch resolves the spec for the current folder, asking for a stack
// when there is no project metadata, then launches (or restarts) and
// waits for readiness.
func menuLaunch(a *app, meta *project.Data, folder string, restart bool) error {
	stackName := ""
	if meta != nil {
		stackName = meta.ProjectStack
	}
	if stackName == "" {
		projectType, err := ui.Select("What kind of project is this?", []string{
			stack.TypeFrontend, stack.TypeBackend, stack.TypeFullstack, stack.TypeCustom,
		})
		if err != nil {
			return err
		}
		stackName, err = ui.Select("Pick a stack", a.catalog.Names(projectType))
		if err != nil {
			return err
		}
	}

	spec, err := a.catalog.Resolve(stackName, folder)
	if err != nil {
		if errors.Is(err, stack.ErrNotConfigured) {
			cmdLine, ierr := ui.Input("Dev command", "npm run dev", "")
			if ierr != nil {
				return ierr
			}
			spec, err = stack.ManualSpec(cmdLine, folder)
		}
		if err != nil {
			return err
		}
	}

	projectName := filepath.Base(folder)
	if meta != nil {
		projectName = meta.ProjectName
	}

	var mp *supervisor.ManagedProcess
	if restart {
		mp, err = a.sup.Restart(spec, projectName, stackName)
	} else {
		mp, err = a.sup.Launch(spec, projectName, stackName)
	}
	if err != nil {
		return err
	}
	return awaitReadiness(a, mp)
}

func menuStatusAction(a *app) error {
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

func menuLogsAction(a *app) error {
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
