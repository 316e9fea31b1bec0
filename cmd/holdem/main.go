package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Config   string           `short:"c" default:"holdem.hcl" type:"path" help:"HCL config file"`
	LogLevel string           `help:"Log level (debug|info|warn|error), overrides config"`
	NoColor  bool             `help:"Disable colour output"`

	New      NewCmd      `cmd:"" help:"Deal a new hand and store it"`
	Act      ActCmd      `cmd:"" help:"Apply an action to a stored hand"`
	Show     ShowCmd     `cmd:"" help:"Show a stored hand"`
	List     ListCmd     `cmd:"" help:"List stored hands"`
	Delete   DeleteCmd   `cmd:"" help:"Delete a stored hand"`
	Eval     EvalCmd     `cmd:"" help:"Evaluate the best hand in 5 to 7 cards"`
	Simulate SimulateCmd `cmd:"" help:"Play random hands and check chip conservation"`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("holdem"),
		kong.Description("Single-hand No-Limit Texas Hold'em engine"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)

	kctx.FatalIfErrorf(run(&cli, kctx, os.Stdout, os.Stderr))
}

type runner interface {
	Run(binds ...any) error
}

// run executes the selected command. The app is closed before returning so
// that a failing command still releases the store.
func run(cli *CLI, r runner, out, errOut io.Writer) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := newApp(ctx, cli.Config, cli.LogLevel, cli.NoColor, out, errOut)
	if err != nil {
		return err
	}
	defer app.Close()

	return r.Run(app)
}
