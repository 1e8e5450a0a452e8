package main

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/aussiebroadwan/flock/internal/flock/app"
)

var cli struct {
	Version kong.VersionFlag `help:"Print the version and exit."`

	Serve   ServeCmd   `cmd:"" default:"withargs" help:"Run the HTTP server."`
	Migrate MigrateCmd `cmd:"" help:"Apply database migrations and exit."`
	Sweep   SweepCmd   `cmd:"" help:"Delete expired sessions, invites and tokens once."`
	SetPlan SetPlanCmd `cmd:"" name:"set-plan" help:"Change an organization's plan and limits."`
}

func main() {
	ctx := context.Background()
	cmd := kong.Parse(&cli,
		kong.Name("flock"),
		kong.Description("Church management server."),
		kong.Vars{"version": app.BuildVersion},
		kong.BindTo(ctx, (*context.Context)(nil)),
	)
	cmd.FatalIfErrorf(cmd.Run())
}
