package main

import (
	"github.com/alecthomas/kong"

	"github.com/mkaszubowski/mkaszubowski.github.io/cmd/blogbuilder/commands"
)

var version = "dev"

func main() {
	cli := &commands.CLI{}
	ctx := kong.Parse(cli,
		kong.Name("blogbuilder"),
		kong.Description("Static site builder for a personal blog."),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)

	err := ctx.Run(&commands.Global{}, cli)
	ctx.FatalIfErrorf(err)
}
