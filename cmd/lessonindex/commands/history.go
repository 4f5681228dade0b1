package commands

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	ferrors "git.home.luguber.info/inful/lessonindex/internal/foundation/errors"
	"git.home.luguber.info/inful/lessonindex/internal/history"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	Limit int `short:"n" default:"20" help:"Number of runs to show"`
}

func (h *HistoryCmd) Run(global *Global, root *CLI) error {
	cfg, err := loadConfig(root, "")
	if err != nil {
		return err
	}
	if cfg.History.Path == "" {
		return ferrors.ConfigError("run history is disabled (set history.path)").Build()
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryHistory, "failed to open run history").
			WithPath(cfg.History.Path).Build()
	}
	defer func() { _ = store.Close() }()

	runs, err := store.List(context.Background(), h.Limit)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryHistory, "failed to list runs").Build()
	}

	tw := tabwriter.NewWriter(global.out(), 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "STARTED\tOUTCOME\tSECTIONS\tITEMS\tWARNINGS\tCHANGED\tDURATION\tRUN")
	for _, r := range runs {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%t\t%s\t%s\n",
			r.StartedAt.UTC().Format(time.RFC3339),
			r.Outcome,
			r.Sections,
			r.Items,
			len(r.Warnings),
			r.Changed,
			r.Duration.Round(time.Millisecond),
			r.RunID)
	}
	return tw.Flush()
}
