package commands

import (
	"context"

	"git.home.luguber.info/inful/lessonindex/internal/content"
	ferrors "git.home.luguber.info/inful/lessonindex/internal/foundation/errors"
	"git.home.luguber.info/inful/lessonindex/internal/lint"
	"git.home.luguber.info/inful/lessonindex/internal/logfields"
)

// CheckCmd implements the 'check' command.
type CheckCmd struct {
	Root   string `name:"root" short:"r" help:"Content root directory (overrides content.root)"`
	Strict bool   `help:"Treat warnings as failures"`
	Format string `short:"f" default:"text" help:"Output format (text or json)" enum:"text,json"`
}

func (c *CheckCmd) Run(global *Global, root *CLI) error {
	cfg, err := loadConfig(root, c.Root)
	if err != nil {
		return err
	}

	opts := []content.Option{content.WithExcluded(cfg.Content.Output)}
	rules, err := content.LoadIgnore(cfg.Content.Root, cfg.Content.IgnoreFile)
	if err != nil {
		global.logger().Warn("Ignore file unreadable; checking all files", logfields.Error(err))
	} else {
		opts = append(opts, content.WithIgnore(rules))
	}

	result, err := lint.NewChecker(cfg.Content.Root, opts...).Check(context.Background())
	if err != nil {
		return err
	}
	if err := lint.Write(global.out(), result, c.Format); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryInternal, "failed to write check results").Build()
	}

	if result.Failed(c.Strict) {
		return ferrors.ValidationError("lesson check failed").
			WithContext("errors", result.ErrorCount()).
			WithContext("warnings", result.WarningCount()).
			WithContext("strict", c.Strict).
			Build()
	}
	return nil
}
