package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/careerpilot/careerpilot/pkg/session"
	"github.com/careerpilot/careerpilot/pkg/ui"
	"github.com/careerpilot/careerpilot/pkg/workflow"
)

func runTUI(ctx context.Context, c *cli) error {
	seed, seeded, err := c.prefilledProfile()
	if err != nil {
		return err
	}

	var ctrl *workflow.Controller
	d, err := setup(ctx, c.cfg, c.log, session.WithPrefiller(func(name string) {
		if ctrl != nil {
			ctrl.PrefillName(name)
		}
	}))
	if err != nil {
		return err
	}
	defer d.Close()

	ctrl = workflow.New(workflow.Deps{
		Generator: d.gen,
		Reports:   d.reports,
		Auth:      d.sessions,
		Session:   d.session,
		Logger:    c.log.Named("workflow"),
	}, workflow.WithLoadingTick(c.cfg.LoadingTick))
	defer ctrl.Close()
	if seeded {
		ctrl.LoadProfile(seed)
	}

	model := ui.New(ctx, ctrl, c.log.Named("ui"))
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	// Resolve the session off the render loop so the loader is shown.
	go d.session.Start(ctx)

	_, err = program.Run()
	return err
}
