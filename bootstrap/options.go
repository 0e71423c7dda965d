package bootstrap

import (
	"time"

	"github.com/kbukum/endpoints/logger"
)

// Option adjusts NewApp. It is not generic, so one set of options serves
// every config type.
type Option func(*settings)

type settings struct {
	log   *logger.Logger
	grace time.Duration
}

func newSettings(opts []Option) settings {
	s := settings{grace: defaultGracefulTimeout}
	for _, opt := range opts {
		opt(&s)
	}
	if s.log == nil {
		s.log = logger.GetGlobalLogger()
	}
	return s
}

// WithLogger replaces the global logger as the app logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *settings) { s.log = l }
}

// WithGracefulTimeout bounds shutdown. Non-positive values are ignored.
func WithGracefulTimeout(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.grace = d
		}
	}
}
