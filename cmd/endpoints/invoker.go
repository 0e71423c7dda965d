package main

import (
	"fmt"

	"github.com/kbukum/endpoints/config"
	"github.com/kbukum/endpoints/llm"
	"github.com/kbukum/endpoints/logger"
	"github.com/kbukum/endpoints/observability"
	"github.com/kbukum/endpoints/provider"
	"github.com/kbukum/endpoints/server"
)

// built is the invoker the host serves, plus what the summary and health
// endpoint report about it.
type built struct {
	invoker   server.Invoker
	backend   string
	transport string
	checker   observability.HealthChecker
}

// buildInvoker creates the model client when cfg.Model is set and the
// dispatcher otherwise, wrapped in the provider middleware.
func buildInvoker(cfg *AppConfig, log *logger.Logger, metrics *observability.Metrics, loaderOpts ...config.LoaderOption) (built, error) {
	llmLog := log.WithComponent("llm")

	var b built
	if cfg.Model != "" {
		env, err := config.ResolveInference(cfg.Provider, loaderOpts...)
		if err != nil {
			return built{}, fmt.Errorf("resolve %s credentials: %w", cfg.Provider, err)
		}
		client, err := llm.NewModelClient(cfg.Model, llm.Credentials{Endpoint: env.Endpoint, Key: env.Key},
			llm.WithLogger(llmLog),
			llm.WithTimeout(cfg.Endpoints.Timeout),
		)
		if err != nil {
			return built{}, err
		}
		b = built{
			invoker:   client,
			backend:   client.Model(),
			transport: llm.TransportSDK.String(),
			checker:   observability.AvailabilityChecker{Target: client},
		}
	} else {
		d, err := llm.New(cfg.Endpoints, llm.WithLogger(llmLog))
		if err != nil {
			return built{}, err
		}
		b = built{
			invoker:   d,
			backend:   d.Backend(),
			transport: d.Transport().String(),
			checker: observability.AvailabilityChecker{
				Target: d,
				Degraded: func() (bool, string) {
					return d.Fallback(), fmt.Sprintf("backend %q not recognized, serving fallback response", d.Selected())
				},
			},
		}
	}

	mws := []provider.Middleware[string, llm.Result]{
		provider.WithLogging[string, llm.Result](log.WithComponent("provider")),
	}
	if metrics != nil {
		mws = append(mws, provider.WithMetrics[string, llm.Result](metrics))
	}
	if cfg.Tracing.Enabled {
		mws = append(mws, provider.WithTracing[string, llm.Result](cfg.Name))
	}
	b.invoker = provider.Chain(mws...)(b.invoker)
	return b, nil
}
