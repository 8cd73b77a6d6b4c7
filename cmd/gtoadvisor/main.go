package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Config  string           `short:"c" default:"gtoadvisor.hcl" help:"Path to HCL configuration file"`

	Deal   DealCmd   `cmd:"" help:"Deal a provably fair deck and print its proof"`
	Verify VerifyCmd `cmd:"" help:"Re-verify a fairness proof bundle"`
	Odds   OddsCmd   `cmd:"" help:"Estimate equity for a hand against a range"`
	Train  TrainCmd  `cmd:"" help:"Run CFR self-play training"`
	Advise AdviseCmd `cmd:"" help:"Advise on a live decision from a trained checkpoint"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("gtoadvisor"),
		kong.Description("Provably fair dealing with CFR-trained poker advice"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli)
	ctx.FatalIfErrorf(err)
}
