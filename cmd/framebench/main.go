package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/dustin/go-humanize"
	"github.com/facebookincubator/go-belt"
	"github.com/facebookincubator/go-belt/pkg/runtime"
	"github.com/facebookincubator/go-belt/tool/logger/implementation/logrus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"
	"github.com/xaionaro-go/framebench"
	"github.com/xaionaro-go/framebench/config"
	"github.com/xaionaro-go/framebench/logger"
	"github.com/xaionaro-go/framebench/metrics"
	"github.com/xaionaro-go/framebench/source/simulated"
	"github.com/xaionaro-go/framebench/throughput"
	"github.com/xaionaro-go/framebench/types"
	"github.com/xaionaro-go/observability"
)

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "syntax: %s [options]\n", os.Args[0])
		pflag.PrintDefaults()
	}

	loggerLevel := logger.LevelWarning
	pflag.Var(&loggerLevel, "log-level", "Log level")
	netPprofAddr := pflag.String("net-pprof-listen-addr", "", "an address to listen for incoming net/pprof connections")
	metricsAddr := pflag.String("metrics-listen-addr", "", "an address to serve Prometheus metrics at /metrics")
	cfgPath := pflag.String("config", "", "path to a YAML config; the defaults are used if empty")
	writeCfgPath := pflag.String("write-default-config", "", "write the default config to this path and exit")
	start := pflag.Int64("start", 0, "the first frame of the range")
	end := pflag.Int64("end", 0, "the last frame of the range")
	total := pflag.Int64("total", 0, "the amount of frames to benchmark from the start; the start is moved back if the range would pass the last frame of the clip")
	concurrency := pflag.Uint("concurrency", 0, "the maximal amount of requests in flight; 0 means the amount of usable CPUs")
	unsequenced := pflag.Bool("unsequenced", false, "consume frames in the order they are decoded")
	noPrefetch := pflag.Bool("no-prefetch", false, "keep only one request in flight")
	runs := pflag.Uint("runs", 1, "how many times to repeat the benchmark")
	abortAfter := pflag.Duration("abort-after", 0, "abort each run after this time; 0 disables")
	pflag.Parse()
	if len(pflag.Args()) != 0 {
		pflag.Usage()
		os.Exit(1)
	}

	ctx := withLogger(context.Background(), loggerLevel)
	ctx, cancelFn := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancelFn()
	defer belt.Flush(ctx)

	if *writeCfgPath != "" {
		if err := config.WriteConfigToPath(ctx, *writeCfgPath, config.Default()); err != nil {
			logger.Fatalf(ctx, "unable to write the config: %v", err)
		}
		return
	}

	cfg := config.Default()
	if *cfgPath != "" {
		if err := config.ReadConfigFromPath(*cfgPath, &cfg); err != nil {
			logger.Fatalf(ctx, "unable to read the config: %v", err)
		}
	}

	flags := pflag.CommandLine
	if flags.Changed("start") {
		cfg.TimeRange = nil
		cfg.Range = cfg.Range.WithStart(frameIndex(ctx, *start))
	}
	if flags.Changed("end") {
		cfg.TimeRange = nil
		cfg.Range = cfg.Range.WithEnd(frameIndex(ctx, *end))
	}
	if flags.Changed("total") {
		last := cfg.Range.End
		if n := cfg.SimulatedSource.FrameCount; n > 0 {
			last = frameIndex(ctx, n.Int64()-1)
		}
		r, err := cfg.Range.WithTotal(types.FrameCount(*total), last)
		if err != nil {
			logger.Fatalf(ctx, "unable to set the total: %v", err)
		}
		cfg.TimeRange = nil
		cfg.Range = r
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency = *concurrency
	}
	if flags.Changed("unsequenced") {
		cfg.Unsequenced = *unsequenced
	}
	if flags.Changed("no-prefetch") {
		cfg.Prefetch = !*noPrefetch
	}
	logger.Debugf(ctx, "effective config: %s", spew.Sdump(cfg))

	if *netPprofAddr != "" {
		observability.Go(ctx, func(context.Context) { logger.Error(ctx, http.ListenAndServe(*netPprofAddr, nil)) })
	}

	var extraOpts framebench.Options
	if *metricsAddr != "" {
		reg := prometheus.NewRegistry()
		m, err := metrics.NewPrometheus(reg)
		if err != nil {
			logger.Fatalf(ctx, "unable to initialize the metrics: %v", err)
		}
		extraOpts = append(extraOpts, framebench.OptionMetrics{MetricsRecorder: m})
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		observability.Go(ctx, func(context.Context) { logger.Error(ctx, http.ListenAndServe(*metricsAddr, mux)) })
	}

	src := simulated.New(ctx, cfg.SimulatedSource, nil)
	defer src.Close(ctx)

	params, err := cfg.Params(ctx)
	if err != nil {
		logger.Fatalf(ctx, "unable to build the run parameters: %v", err)
	}

	extraOpts = append(extraOpts, framebench.OptionOnProgress(printProgress))
	opts, err := cfg.ControllerOptions(src, extraOpts...)
	if err != nil {
		logger.Fatalf(ctx, "unable to build the controller options: %v", err)
	}
	ctrl := framebench.New(src, opts...)

	for i := uint(0); i < *runs && ctx.Err() == nil; i++ {
		result, err := benchmark(ctx, ctrl, params, *abortAfter)
		if err != nil {
			logger.Fatalf(ctx, "run #%d failed: %v", i, err)
		}
		printResult(result)
	}
}

func frameIndex(ctx context.Context, v int64) types.FrameIndex {
	f, err := types.NewFrameIndex(v)
	if err != nil {
		logger.Fatalf(ctx, "invalid frame index: %v", err)
	}
	return f
}

func withLogger(ctx context.Context, loggerLevel logger.Level) context.Context {
	runtime.DefaultCallerPCFilter = observability.CallerPCFilter(runtime.DefaultCallerPCFilter)
	l := logrus.Default().WithLevel(loggerLevel)
	ctx = logger.CtxWithLogger(ctx, l)
	logger.SetDefault(func() logger.Logger {
		return l
	})
	return ctx
}

// benchmark executes a single run; the run is aborted if ctx is cancelled
// or abortAfter elapses.
func benchmark(
	ctx context.Context,
	ctrl *framebench.Controller,
	params framebench.Params,
	abortAfter time.Duration,
) (*framebench.Result, error) {
	if err := ctrl.Start(ctx, params); err != nil {
		return nil, fmt.Errorf("unable to start: %w", err)
	}

	var timeout <-chan time.Time
	if abortAfter > 0 {
		t := time.NewTimer(abortAfter)
		defer t.Stop()
		timeout = t.C
	}

	waitCtx, waitCancel := context.WithCancel(context.WithoutCancel(ctx))
	defer waitCancel()
	observability.Go(ctx, func(context.Context) {
		select {
		case <-ctx.Done():
			logger.Infof(ctx, "interrupted, aborting")
		case <-timeout:
			logger.Infof(ctx, "the time is up, aborting")
		case <-waitCtx.Done():
			return
		}
		ctrl.Abort(ctx)
	})

	result, err := ctrl.Wait(waitCtx)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, errors.New("internal error: no result")
	}
	return result, nil
}

func printProgress(_ context.Context, s throughput.Snapshot) {
	fmt.Fprintf(os.Stderr, "\r%s, ETA %s    ", s, throughput.FormatDuration(s.ETA, "%M:%S"))
	if !s.Running {
		fmt.Fprintln(os.Stderr)
	}
}

func printResult(r *framebench.Result) {
	fmt.Printf(
		"run %s %s: %s frames (%s failed) in %s, %s fps (smoothed %s fps) with %s\n",
		r.RunID, r.State,
		humanize.Comma(r.Stats.FramesCompleted.Int64()),
		humanize.Comma(r.FramesFailed.Int64()),
		throughput.FormatDuration(r.Stats.Elapsed, "%M:%S.%Z"),
		humanize.FormatFloat("#,###.####", r.Stats.FPS),
		humanize.FormatFloat("#,###.##", r.Stats.SmoothedFPS),
		r.Params,
	)
	if err := r.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "decode errors: %v\n", err)
	}
}
