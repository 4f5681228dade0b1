package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/lessonindex/cmd/lessonindex/commands"
	ferrors "git.home.luguber.info/inful/lessonindex/internal/foundation/errors"
	"git.home.luguber.info/inful/lessonindex/internal/version"
)

func main() {
	cli := &commands.CLI{}
	global := &commands.Global{}

	ctx := kong.Parse(cli,
		kong.Name("lessonindex"),
		kong.Description("Generate the JSON content manifest for a lesson module"),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	err := ctx.Run(global, cli)
	ferrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
}
