package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/juniorwebdev83/auto-qa/config"
	"github.com/juniorwebdev83/auto-qa/elevateai"
	"github.com/juniorwebdev83/auto-qa/lifecycle"
	"github.com/juniorwebdev83/auto-qa/logger"
	"github.com/juniorwebdev83/auto-qa/observability"
	"github.com/juniorwebdev83/auto-qa/qa"
	"github.com/juniorwebdev83/auto-qa/rubric"
	"github.com/juniorwebdev83/auto-qa/server"
	"github.com/juniorwebdev83/auto-qa/version"
)

func main() {
	configFile := flag.String("config", "", "path to config.yml")
	envFile := flag.String("env", "", "path to .env file")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.GetFullVersion())
		return
	}

	var opts []config.LoaderOption
	if *configFile != "" {
		opts = append(opts, config.WithConfigFile(*configFile))
	}
	if *envFile != "" {
		opts = append(opts, config.WithEnvFile(*envFile))
	}

	cfg, err := config.Load(opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Logging)
	log := logger.GetGlobalLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal("service failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	if cfg.Observability.Enabled {
		tp, err := observability.InitTracer(ctx, cfg.Observability, cfg.Name)
		if err != nil {
			return fmt.Errorf("initializing tracer: %w", err)
		}
		defer shutdownProvider(tp.Shutdown, log, "tracer")

		mp, err := observability.InitMeter(ctx, cfg.Observability, cfg.Name)
		if err != nil {
			return fmt.Errorf("initializing meter: %w", err)
		}
		defer shutdownProvider(mp.Shutdown, log, "meter")
	}

	// With telemetry disabled the global no-op meter makes these instruments
	// free.
	metrics, err := observability.NewMetrics(observability.Meter(cfg.Name))
	if err != nil {
		return fmt.Errorf("creating metrics: %w", err)
	}

	client, err := elevateai.New(cfg.ElevateAI, log)
	if err != nil {
		return fmt.Errorf("creating ElevateAI client: %w", err)
	}

	orchestrator, err := lifecycle.New(client, cfg.Lifecycle,
		lifecycle.WithLogger(log),
		lifecycle.WithObserver(lifecycle.NewLogObserver(log)),
		lifecycle.WithObserver(observability.NewMetricsObserver(metrics)),
	)
	if err != nil {
		return fmt.Errorf("creating orchestrator: %w", err)
	}

	svc := qa.NewService(orchestrator, rubric.Default(), metrics, log)

	srv := server.New(cfg.Server, log)
	srv.ApplyMiddleware()
	server.NewHandler(cfg.Name, svc, log).Register(srv.GinEngine())

	if err := srv.Start(ctx); err != nil {
		return err
	}

	log.Info("service ready", map[string]interface{}{
		"addr":    srv.Addr(),
		"version": version.GetShortVersion(),
	})

	<-ctx.Done()
	return srv.Stop(context.Background())
}

func shutdownProvider(shutdown func(context.Context) error, log *logger.Logger, name string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		log.Warn(name+" shutdown failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
