// Package bootstrap runs an endpoints host through one lifecycle: validate
// config, start components, run OnStart hooks, report readiness, run
// OnReady hooks, then either serve until a shutdown signal (Run) or execute
// a finite task (RunTask). Shutdown stops components in reverse order and
// then runs OnStop hooks.
//
//	app, err := bootstrap.NewApp(&cfg, bootstrap.WithLogger(log))
//	if err != nil {
//	    return err
//	}
//	app.AddHealthChecker(checker)
//	_ = app.RegisterComponent(srv)
//	return app.Run(ctx)
package bootstrap
