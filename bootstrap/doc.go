// Package bootstrap runs the service lifecycle: validate config, initialise
// logging, start components, run hooks, block until a signal, then stop
// everything within a grace period.
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.RegisterComponent(storageComponent)
//	app.OnConfigure(func(ctx context.Context, a *bootstrap.App[*Config]) error { ... })
//	err = app.Run(ctx)
package bootstrap
