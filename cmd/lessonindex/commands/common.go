// Package commands implements the lessonindex command tree.
package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/lessonindex/internal/config"
	"git.home.luguber.info/inful/lessonindex/internal/generator"
	"git.home.luguber.info/inful/lessonindex/internal/history"
	"git.home.luguber.info/inful/lessonindex/internal/logfields"
	"git.home.luguber.info/inful/lessonindex/internal/notify"
	"git.home.luguber.info/inful/lessonindex/internal/retry"
)

// Global carries state shared by all subcommands.
type Global struct {
	Logger *slog.Logger
	Out    io.Writer // Command output; stdout when nil
}

func (g *Global) out() io.Writer {
	if g == nil || g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

func (g *Global) logger() *slog.Logger {
	if g == nil || g.Logger == nil {
		return slog.Default()
	}
	return g.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path (missing file means built-in defaults)" default:"lessonindex.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Generate GenerateCmd `cmd:"" default:"withargs" help:"Scan the content root and write the manifest"`
	Watch    WatchCmd    `cmd:"" help:"Regenerate the manifest whenever lesson files change"`
	Check    CheckCmd    `cmd:"" help:"Check markdown lessons for broken links and invalid frontmatter"`
	History  HistoryCmd  `cmd:"" help:"Show recent generation runs"`
	Init     InitCmd     `cmd:"" help:"Write an example configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// loadConfig reads the configuration named by the global flag and applies a
// --root override.
func loadConfig(root *CLI, contentRoot string) (*config.Config, error) {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return nil, err
	}
	if contentRoot != "" {
		cfg.Content.Root = contentRoot
	}
	return cfg, nil
}

// sideChannels holds the optional run history and notification sinks.
// Either may be nil when disabled or unavailable.
type sideChannels struct {
	history   *history.Store
	publisher *notify.Publisher
}

// openSideChannels connects the configured sinks. Failures only disable the
// sink: a manifest run never depends on them.
func openSideChannels(cfg *config.Config) *sideChannels {
	sc := &sideChannels{}
	if cfg.History.Path != "" {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			slog.Warn("Run history disabled", logfields.Path(cfg.History.Path), logfields.Error(err))
		} else {
			sc.history = store
		}
	}
	if cfg.Notify.NATSURL != "" {
		policy := retry.NewPolicy(retry.BackoffExponential, 0, 0, cfg.Notify.MaxRetries)
		pub, err := notify.Connect(cfg.Notify.NATSURL, cfg.Notify.Subject, policy)
		if err != nil {
			slog.Warn("Notifications disabled", logfields.Addr(cfg.Notify.NATSURL), logfields.Error(err))
		} else {
			sc.publisher = pub
		}
	}
	return sc
}

// options returns the generator options for the sinks that are connected.
func (sc *sideChannels) options() []generator.Option {
	var opts []generator.Option
	if sc.history != nil {
		opts = append(opts, generator.WithHistory(sc.history))
	}
	if sc.publisher != nil {
		opts = append(opts, generator.WithPublisher(sc.publisher))
	}
	return opts
}

func (sc *sideChannels) Close() {
	if sc.history != nil {
		if err := sc.history.Close(); err != nil {
			slog.Warn("Failed to close run history", logfields.Error(err))
		}
	}
	sc.publisher.Close()
}
