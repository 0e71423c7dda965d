// Command endpoints answers queries through one configured text-generation
// backend: a single query, a JSONL evaluation batch, or an HTTP server.
//
//	endpoints --query "What is the capital of France?"
//	endpoints --queries eval.jsonl > answers.jsonl
//	endpoints --serve
//	endpoints --model Phi-4 --provider azure-openai --query "..."
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/kbukum/endpoints/bootstrap"
	"github.com/kbukum/endpoints/config"
	"github.com/kbukum/endpoints/logger"
	"github.com/kbukum/endpoints/observability"
	"github.com/kbukum/endpoints/server"
	"github.com/kbukum/endpoints/version"
)

const serviceName = "endpoints"

var errNoMode = errors.New("one of --query, --queries or --serve is required")

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		os.Exit(1)
	}
}

// newFlagSets returns the full command line and the subset whose names are
// config keys. Only the subset is bound over config.yml and the environment.
func newFlagSets() (all, keys *pflag.FlagSet) {
	keys = pflag.NewFlagSet("config keys", pflag.ContinueOnError)
	keys.String("endpoints.backend", "", "backend identifier, e.g. completion-only or gpt2")
	keys.Int("server.port", 0, "listen port for --serve")
	keys.String("model", "", "managed-inference model; selects the model client instead of the dispatcher")
	keys.String("provider", "", "credential prefix for --model, e.g. azure-openai reads AZURE_OPENAI_INFERENCE_ENDPOINT")

	all = pflag.NewFlagSet(serviceName, pflag.ContinueOnError)
	all.String("config", "", "path to config.yml")
	all.String("env-file", "", "path to a .env file")
	all.String("query", "", "answer one query and print the result as JSON")
	all.String("queries", "", "answer every {\"query\": ...} line of a JSONL file (- for stdin)")
	all.Bool("serve", false, "serve POST "+server.InvokePath)
	all.Bool("version", false, "print the version and exit")
	all.AddFlagSet(keys)
	return all, keys
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	fs, keys := newFlagSets()
	if err := fs.Parse(args); err != nil {
		return err
	}
	if v, _ := fs.GetBool("version"); v {
		_, err := fmt.Fprintln(stdout, version.Get().String())
		return err
	}

	loaderOpts := []config.LoaderOption{config.WithFlags(keys)}
	if path, _ := fs.GetString("config"); path != "" {
		loaderOpts = append(loaderOpts, config.WithConfigFile(path))
	}
	if path, _ := fs.GetString("env-file"); path != "" {
		loaderOpts = append(loaderOpts, config.WithEnvFile(path))
	}

	var cfg AppConfig
	if err := config.LoadConfig(serviceName, &cfg, loaderOpts...); err != nil {
		return err
	}
	cfg.ApplyDefaults()
	log := logger.New(&cfg.Logging, cfg.Name)
	logger.SetGlobalLogger(log)

	app, err := bootstrap.NewApp(&cfg, bootstrap.WithLogger(log))
	if err != nil {
		return err
	}

	tel, err := observability.Start(ctx, observability.Resource{
		Service:     cfg.Name,
		Version:     app.Version,
		Environment: cfg.Environment,
	}, cfg.Tracing, cfg.Metrics)
	if err != nil {
		return err
	}
	app.OnStop(tel.Shutdown)

	b, err := buildInvoker(&cfg, log, tel.Metrics, loaderOpts...)
	if err != nil {
		return err
	}
	app.AddHealthChecker(b.checker)
	app.Summary.AddDetail("backend", b.backend)
	app.Summary.AddDetail("transport", b.transport)

	query, _ := fs.GetString("query")
	queries, _ := fs.GetString("queries")
	serve, _ := fs.GetBool("serve")

	switch {
	case serve:
		srv := server.New(cfg.Server, log)
		srv.ApplyMiddleware(tel.Metrics)
		srv.RegisterRoutes(cfg.Name, b.invoker, b.checker)
		if err := app.RegisterComponent(srv); err != nil {
			return err
		}
		app.Summary.AddDetail("addr", cfg.Server.Addr())
		return app.Run(ctx)

	case queries != "":
		return app.RunTask(ctx, func(ctx context.Context) error {
			in, closeIn, err := openInput(queries, stdin)
			if err != nil {
				return err
			}
			defer closeIn()

			stats, err := runBatch(ctx, b.invoker, in, stdout)
			log.Info("batch complete", logger.Fields("total", stats.Total, "failed", stats.Failed))
			return err
		})

	case fs.Changed("query"):
		return app.RunTask(ctx, func(ctx context.Context) error {
			res, err := b.invoker.Execute(ctx, query)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(stdout)
			enc.SetEscapeHTML(false)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		})

	default:
		return errNoMode
	}
}

func openInput(path string, stdin io.Reader) (io.Reader, func(), error) {
	if path == "-" {
		return stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open queries: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
