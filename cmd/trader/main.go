package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"news-trader/internal/engine"
	"news-trader/internal/eod"
	"news-trader/internal/logger"
	"news-trader/internal/status"
	"news-trader/internal/store"
	"news-trader/internal/trace"
)

func must(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to the yaml config file")
	paper := flag.Bool("paper", false, "force PAPER mode regardless of config")
	model := flag.String("model", "", "override the configured LLM model")
	sourceList := flag.String("sources", "", "comma-separated news sources, overrides config")
	flag.Parse()

	must(initializeSystem())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := store.LoadConfig(*configPath)
	must(err)
	applyFlagOverrides(cfg, *paper, *model, *sourceList)

	compressOldLogs(ctx)

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)

	gw := initializeGateway(ctx, cfg)
	predictor := initializePredictor(ctx, cfg)
	sources, err := initializeSources(ctx, cfg)
	must(err)
	history := initializeHistory(ctx, cfg)
	sup := newSupervisor(gw, history, cfg)
	eng := initializeEngine(cfg, sources, predictor, gw, sup, history)

	var statusSrv *status.Server
	if cfg.Status.Enabled {
		statusSrv = status.NewServer(cfg, history, sup)
		statusSrv.Start(ctx)
	}

	eng.WarmUp(ctx)

	tick := time.NewTicker(time.Duration(cfg.PollSeconds) * time.Second)
	defer tick.Stop()
	eodTick := time.NewTicker(60 * time.Second)
	defer eodTick.Stop()

	logger.Info(ctx, "Trader started", "mode", cfg.Mode, "poll_seconds", cfg.PollSeconds, "sources", cfg.News.Sources)

	for {
		select {
		case <-tick.C:
			if _, err := eng.Cycle(ctx); err != nil && ctx.Err() == nil {
				logger.ErrorWithErr(ctx, "Cycle failed", err)
			}
		case <-eodTick.C:
			if ok, _ := eod.ShouldRunNow(); ok {
				if p, err := eod.SummarizeToday(); err == nil && p != "" {
					logger.Info(ctx, "EOD CSV written", "path", p)
				}
			}
		case <-sigc:
			logger.Info(ctx, "Trading loop terminated by user")
			shutdown(ctx, cancel, sup, statusSrv)
			return
		case <-ctx.Done():
			return
		}
	}
}

// shutdown drains in-flight order supervision and writes the final summary.
func shutdown(ctx context.Context, cancel context.CancelFunc, sup *engine.Supervisor, statusSrv *status.Server) {
	cancel()

	logger.Info(ctx, "Waiting for order supervision to drain")
	sup.Wait()

	if p, err := eod.SummarizeToday(); err == nil && p != "" {
		logger.Info(ctx, "EOD CSV written", "path", p)
	}
	if statusSrv != nil {
		_ = statusSrv.Shutdown(context.Background())
	}
	_ = trace.Shutdown(context.Background())
}

// applyFlagOverrides lets command-line flags win over the yaml config.
func applyFlagOverrides(cfg *store.Config, paper bool, model, sourceList string) {
	if paper {
		cfg.Mode = "PAPER"
	}
	if model != "" {
		cfg.LLM.Model = model
	}
	if sourceList != "" {
		cfg.News.Sources = strings.Split(sourceList, ",")
	}
}
