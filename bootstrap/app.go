package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/kbukum/endpoints/logger"
	"github.com/kbukum/endpoints/observability"
	"github.com/kbukum/endpoints/version"
)

const defaultGracefulTimeout = 15 * time.Second

var shutdownSignals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}

// App drives a host through start, work and shutdown. C is the config type.
type App[C Config] struct {
	Name    string
	Version string
	Cfg     C
	Logger  *logger.Logger
	Summary *Summary

	components      []Component
	started         []Component
	checkers        []observability.HealthChecker
	gracefulTimeout time.Duration

	onStart []Hook
	onReady []Hook
	onStop  []Hook
}

// NewApp applies defaults to cfg, validates it and creates the App. An
// empty BaseConfig.Version is filled from the build info.
func NewApp[C Config](cfg C, opts ...Option) (*App[C], error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	base := cfg.Base()
	ver := base.Version
	if ver == "" {
		ver = version.Get().String()
	}

	s := newSettings(opts)
	return &App[C]{
		Name:            base.Name,
		Version:         ver,
		Cfg:             cfg,
		Logger:          s.log,
		Summary:         NewSummary(base.Name, ver),
		gracefulTimeout: s.grace,
	}, nil
}

// RegisterComponent adds a component. Names must be unique.
func (a *App[C]) RegisterComponent(c Component) error {
	if slices.ContainsFunc(a.components, func(e Component) bool { return e.Name() == c.Name() }) {
		return fmt.Errorf("component %q already registered", c.Name())
	}
	a.components = append(a.components, c)
	return nil
}

// AddHealthChecker includes checkers in the ready check. Components that
// implement observability.HealthChecker are included without this.
func (a *App[C]) AddHealthChecker(checkers ...observability.HealthChecker) {
	a.checkers = append(a.checkers, checkers...)
}

// ReadyCheck lists every checker that is not up. Degraded counts as not
// ready.
func (a *App[C]) ReadyCheck(ctx context.Context) error {
	checkers := slices.Clone(a.checkers)
	for _, c := range a.components {
		if hc, ok := c.(observability.HealthChecker); ok {
			checkers = append(checkers, hc)
		}
	}

	var unhealthy []string
	for _, hc := range checkers {
		h := hc.CheckHealth(ctx)
		if h.Status == observability.HealthStatusUp {
			continue
		}
		entry := h.Name + "=" + string(h.Status)
		if h.Message != "" {
			entry += "(" + h.Message + ")"
		}
		unhealthy = append(unhealthy, entry)
	}
	if len(unhealthy) > 0 {
		return fmt.Errorf("not ready: %s", strings.Join(unhealthy, ", "))
	}
	return nil
}

// Run starts the app and blocks until SIGINT, SIGTERM or the end of ctx,
// then shuts down.
func (a *App[C]) Run(ctx context.Context) error {
	return a.RunTask(ctx, func(ctx context.Context) error {
		a.Logger.Info("Application ready, waiting for shutdown signal")
		<-ctx.Done()
		return nil
	})
}

// RunTask starts the app, runs task and shuts down once it returns. A
// shutdown signal cancels the task's context. The task error wins over
// shutdown errors.
func (a *App[C]) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	if err := a.startup(ctx); err != nil {
		return err
	}

	taskCtx, stopSignals := signal.NotifyContext(ctx, shutdownSignals...)
	taskErr := task(taskCtx)
	if taskCtx.Err() != nil && ctx.Err() == nil {
		a.Logger.Info("Shutdown signal received")
	}
	stopSignals()

	if err := a.stop(); err != nil && taskErr == nil {
		return err
	}
	return taskErr
}

func (a *App[C]) startup(ctx context.Context) error {
	begin := time.Now()
	a.Logger.Info("Starting application", logger.Fields("name", a.Name, "version", a.Version))

	if err := a.startComponents(ctx); err != nil {
		return fmt.Errorf("startup: %w", err)
	}
	if err := runHooks(ctx, a.onStart); err != nil {
		a.rollback()
		return fmt.Errorf("onStart: %w", err)
	}
	if err := a.ReadyCheck(ctx); err != nil {
		a.Logger.Warn("Ready check reported issues", logger.Fields(logger.FieldError, err.Error()))
	}
	if err := runHooks(ctx, a.onReady); err != nil {
		a.rollback()
		return fmt.Errorf("onReady: %w", err)
	}

	a.Summary.SetStartupDuration(time.Since(begin))
	a.Summary.Display(a.Logger)
	return nil
}

// startComponents starts components in registration order and rolls back
// the started ones when one fails.
func (a *App[C]) startComponents(ctx context.Context) error {
	for _, c := range a.components {
		if err := c.Start(ctx); err != nil {
			a.Summary.TrackComponent(c.Name(), "failed", false)
			a.rollback()
			return fmt.Errorf("component %s: %w", c.Name(), err)
		}
		a.started = append(a.started, c)
		a.Summary.TrackComponent(c.Name(), "started", true)
	}
	return nil
}

func (a *App[C]) rollback() {
	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()
	_ = a.stopComponents(ctx)
}

// stop stops components, then runs OnStop hooks, within gracefulTimeout.
func (a *App[C]) stop() error {
	a.Logger.Info("Shutting down application", logger.Fields("timeout", a.gracefulTimeout.String()))
	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	var errs []error
	if err := a.stopComponents(ctx); err != nil {
		a.Logger.Error("Component shutdown failed", logger.ErrorFields("stop", err))
		errs = append(errs, err)
	}
	if err := runHooks(ctx, a.onStop); err != nil {
		a.Logger.Error("OnStop hook failed", logger.ErrorFields("stop", err))
		errs = append(errs, err)
	}
	a.Logger.Info("Application shutdown complete")
	return errors.Join(errs...)
}

func (a *App[C]) stopComponents(ctx context.Context) error {
	var errs []error
	for _, c := range slices.Backward(a.started) {
		if err := c.Stop(ctx); err != nil {
			errs = append(errs, fmt.Errorf("component %s: %w", c.Name(), err))
		}
	}
	a.started = nil
	return errors.Join(errs...)
}
