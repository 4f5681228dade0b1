package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/lessonindex/internal/generator"
)

// GenerateCmd implements the 'generate' command.
type GenerateCmd struct {
	Root string `name:"root" short:"r" help:"Content root directory (overrides content.root)"`
}

func (g *GenerateCmd) Run(global *Global, root *CLI) error {
	cfg, err := loadConfig(root, g.Root)
	if err != nil {
		return err
	}

	sc := openSideChannels(cfg)
	defer sc.Close()

	report, err := generator.New(cfg, sc.options()...).Generate(context.Background())
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(global.out(), "%s: %d sections, %d items, %d warnings\n",
		report.OutputPath, report.Sections, report.Items, len(report.Warnings))
	return nil
}
