package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aussiebroadwan/flock/internal/flock/app"
	"github.com/aussiebroadwan/flock/internal/flock/domain"
	"github.com/aussiebroadwan/flock/internal/flock/service"
	"github.com/aussiebroadwan/flock/pkg/obs"
)

type ServeCmd struct {
	app.Config `embed:""`
}

func (c *ServeCmd) Run(ctx context.Context) error {
	logger := app.NewLogger(c.LogConfig)

	application, err := app.New(c.Config, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return application.Run(ctx)
}

type MigrateCmd struct {
	app.LogConfig   `embed:""`
	app.StoreConfig `embed:""`
}

func (c *MigrateCmd) Run() error {
	logger := app.NewLogger(c.LogConfig)

	db, err := app.OpenStore(c.StoreConfig, logger)
	if err != nil {
		return err
	}
	return db.Close()
}

type SweepCmd struct {
	app.LogConfig   `embed:""`
	app.StoreConfig `embed:""`
}

func (c *SweepCmd) Run(ctx context.Context) error {
	logger := app.NewLogger(c.LogConfig)

	db, err := app.OpenStore(c.StoreConfig, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	hk := &service.HousekeepingService{
		Deps:   service.Deps{Store: db, Metrics: obs.New()},
		Logger: logger,
	}
	rep, err := hk.Sweep(ctx)
	if err != nil {
		return err
	}
	return json.NewEncoder(os.Stdout).Encode(rep)
}

type SetPlanCmd struct {
	app.LogConfig   `embed:""`
	app.StoreConfig `embed:""`

	OrgID        string `arg:"" name:"org-id" help:"Organization id."`
	Plan         string `help:"Plan name." required:"" enum:"trial,standard,pro"`
	People       int    `help:"People limit, 0 for unlimited." required:""`
	Groups       int    `help:"Groups limit, 0 for unlimited." required:""`
	ServicePlans int    `help:"Service plans limit, 0 for unlimited." required:""`
}

func (c *SetPlanCmd) Run(ctx context.Context) error {
	logger := app.NewLogger(c.LogConfig)

	db, err := app.OpenStore(c.StoreConfig, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	orgs := &service.OrgService{Deps: service.Deps{Store: db}}
	return orgs.SetPlan(ctx, c.OrgID, domain.Plan(c.Plan), domain.PlanLimits{
		People:       c.People,
		Groups:       c.Groups,
		ServicePlans: c.ServicePlans,
	})
}
