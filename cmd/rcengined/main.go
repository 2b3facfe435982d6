// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Command rcengined runs a standalone demo host for the RC engine: an
// in-memory store, the engine's genesis initialization, and (only when
// requested) the read-only query surface and export sink. It exists so
// the engine can be exercised end-to-end without embedding it in a real
// chain; a real host wires package engine directly against its own
// hostview.Store implementation instead of memstore.
package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/luxfi/rcengine/clockutil"
	"github.com/luxfi/rcengine/config"
	"github.com/luxfi/rcengine/constants"
	"github.com/luxfi/rcengine/engine"
	"github.com/luxfi/rcengine/export"
	"github.com/luxfi/rcengine/internal/rclog"
	"github.com/luxfi/rcengine/memstore"
	"github.com/luxfi/rcengine/query"
	"github.com/luxfi/rcengine/rcmetrics"
	"github.com/luxfi/rcengine/resource"
)

// blockTickInterval is the demo host's simulated block time, matching
// the source chain's STEEM_BLOCK_INTERVAL of 3 seconds — there is no
// real block producer here, so PostApplyBlock is driven off clock instead.
const blockTickInterval = 3 * time.Second

const clientIdentifier = "rcengined"

var app = &cli.App{
	Name:    clientIdentifier,
	Usage:   "Resource Credits engine demo host",
	Version: "0.1.0",
}

func init() {
	app.Action = run
	app.Flags = cliFlags()
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func cliFlags() []cli.Flag {
	fs := pflag.NewFlagSet(clientIdentifier, pflag.ContinueOnError)
	config.RegisterFlags(fs)

	flags := make([]cli.Flag, 0, 5)
	fs.VisitAll(func(f *pflag.Flag) {
		flags = append(flags, &cli.StringFlag{Name: f.Name, Usage: f.Usage, Value: f.DefValue})
	})
	return flags
}

func run(ctx *cli.Context) error {
	v := viper.New()
	for _, name := range []string{config.FlagGenesisPath, config.FlagQueryListen, config.FlagExportListen, config.FlagLogLevel, config.FlagSkipRejectNotEnoughRC} {
		v.Set(name, ctx.String(name))
	}
	cfg := config.Load(v)

	setupLogging(cfg.LogLevel)

	if cfg.GenesisPath == "" {
		return fmt.Errorf("rcengined: --%s is required", config.FlagGenesisPath)
	}
	seedData, err := os.ReadFile(cfg.GenesisPath)
	if err != nil {
		return fmt.Errorf("rcengined: reading genesis seed: %w", err)
	}
	params, err := config.ParseGenesisSeed(seedData)
	if err != nil {
		return err
	}

	clock := clockutil.NewMockableClock()

	store := memstore.NewStore()
	e := engine.New(constants.RegenTimeConstant, cfg.SkipFlags)
	if err := e.OnFirstBlock(store, params, nil, clock.Now()); err != nil {
		return fmt.Errorf("rcengined: genesis initialization: %w", err)
	}

	metrics := rcmetrics.NewMetrics("rcengine")
	reg := prometheus.NewRegistry()
	metrics.Register(reg)
	e.SetMetrics(metrics)

	go runBlockTicker(e, store, clock)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	if cfg.QueryListen != "" {
		handler, err := query.NewHandlerWithMetrics(store, metrics)
		if err != nil {
			return fmt.Errorf("rcengined: starting query surface: %w", err)
		}
		mux.Handle("/rpc", handler)
		rclog.Info("query surface enabled", "addr", cfg.QueryListen)
	}

	if cfg.ExportListen != "" {
		broadcaster := export.NewBroadcaster()
		mux.Handle("/export", broadcaster)
		rclog.Info("export sink enabled", "addr", cfg.ExportListen)
	}

	listen := cfg.QueryListen
	if listen == "" {
		listen = cfg.ExportListen
	}
	if listen == "" {
		rclog.Info("no listeners configured; genesis initialized and idle")
		select {}
	}

	rclog.Info("rcengined listening", "addr", listen)
	return http.ListenAndServe(listen, mux)
}

// runBlockTicker drives PostApplyBlock off clock's wall-clock time,
// standing in for the real per-block hook a host chain would call from
// its own block-finalize path. No transactions land in this demo host,
// so every tick's per-kind usage is zero. The demo never sets global
// properties, so total vesting shares stay zero and every tick takes
// PostApplyBlock's bootstrap early return: pools stay at their genesis
// levels and rcmetrics.Metrics.PoolLevel is not updated.
func runBlockTicker(e *engine.Engine, store *memstore.Store, clock *clockutil.MockableClock) {
	ticker := time.NewTicker(blockTickInterval)
	defer ticker.Stop()

	last := clock.Now()
	kinds := resource.Registered()
	for range ticker.C {
		now := clock.Now()
		dt := int64(now - last)
		last = now

		dtByKind := make(map[resource.Kind]int64, len(kinds))
		for _, k := range kinds {
			dtByKind[k] = dt
		}
		if err := e.PostApplyBlock(store, engine.BlockUsage{DtByKind: dtByKind}, now); err != nil {
			rclog.Error("rcengined: post-apply-block tick failed", "err", err)
		}
	}
}

// setupLogging wires a plain text handler to stderr (through
// go-colorable's writer) when it is a TTY, and to a lumberjack-rotated
// file otherwise; the handler itself emits no color codes. The TTY
// check follows the teacher's go-isatty/go-colorable gating (see cmd/evm-node/main.go's
// log.SetDefault(log.NewLogger(...)) call site) built on the real
// luxfi/log constructors rather than its own compat package's stubs.
func setupLogging(level string) {
	lvl, err := rclog.ParseLevel(level)
	if err != nil {
		lvl = rclog.LevelInfo
	}

	if isatty.IsTerminal(os.Stderr.Fd()) {
		rclog.SetDefault(rclog.New(rclog.NewHandler(colorable.NewColorableStderr(), lvl)))
		return
	}

	rotating := &lumberjack.Logger{
		Filename:   "rcengined.log",
		MaxSize:    100,
		MaxBackups: 5,
		MaxAge:     28,
	}
	rclog.SetDefault(rclog.New(rclog.NewHandler(rotating, lvl)))
}
