// Command stockboard manages a five-column inventory board from the terminal
// and serves it over HTTP.
package main

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/google/subcommands"
)

var exitFunc = os.Exit

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cli(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	exitFunc(code)
}

// cli parses the global flags and runs the selected subcommand.
func cli(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("stockboard", flag.ContinueOnError)
	fs.SetOutput(stderr)
	verbose := fs.Bool("v", false, "log at debug level")
	if err := fs.Parse(args); err != nil {
		return int(subcommands.ExitUsageError)
	}

	commander := subcommands.NewCommander(fs, "stockboard")
	commander.Output = stdout
	commander.Error = stderr
	register(commander)

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	a := &app{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		logger: slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})),
	}
	return int(commander.Execute(ctx, a))
}

func register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.CommandsCommand(), "")

	c.Register(&serveCmd{}, "server")

	c.Register(&showCmd{}, "board")
	c.Register(&searchCmd{}, "board")
	c.Register(&totalsCmd{}, "board")

	c.Register(&addCmd{}, "items")
	c.Register(&editCmd{}, "items")
	c.Register(&deleteCmd{}, "items")
	c.Register(&moveCmd{}, "items")
	c.Register(&menuCmd{}, "items")
	c.Register(&renameCmd{}, "board")

	c.Register(&registerCmd{}, "accounts")
	c.Register(&loginCmd{}, "accounts")
}
