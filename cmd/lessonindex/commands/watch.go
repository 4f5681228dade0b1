package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"git.home.luguber.info/inful/lessonindex/internal/generator"
	"git.home.luguber.info/inful/lessonindex/internal/metrics"
	"git.home.luguber.info/inful/lessonindex/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Root        string `name:"root" short:"r" help:"Content root directory (overrides content.root)"`
	MetricsAddr string `name:"metrics-addr" help:"Serve Prometheus metrics on this address (overrides watch.metrics_addr)"`
}

func (w *WatchCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root, w.Root)
	if err != nil {
		return err
	}
	if w.MetricsAddr != "" {
		cfg.Watch.MetricsAddr = w.MetricsAddr
	}

	sc := openSideChannels(cfg)
	defer sc.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	opts := append(sc.options(),
		generator.WithRecorder(metrics.NewPrometheusRecorder(reg)),
		generator.WithSkipUnchanged(true),
	)
	gen := generator.New(cfg, opts...)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return watch.New(cfg, gen, watch.WithMetrics(cfg.Watch.MetricsAddr, metrics.HTTPHandler(reg))).Run(ctx)
}
