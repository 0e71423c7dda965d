package bootstrap

import "context"

// Component is a long-lived part of the application started before the
// app is ready and stopped, in reverse order, on shutdown.
type Component interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}
