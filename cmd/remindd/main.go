// Command remindd watches the task list without a terminal UI and raises
// reminders as tasks come due.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/td0m/taskmaster/internal/app"
	"github.com/td0m/taskmaster/internal/config"
	"github.com/td0m/taskmaster/pkg/remind"
)

var (
	configPath = flag.String("config", "", "Path to a config file (yaml, json, toml or env)")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage of %s:\n", os.Args[0])
		flag.PrintDefaults()
		fmt.Fprintln(flag.CommandLine.Output(), config.Usage())
	}
	flag.Parse()

	cfg, err := config.Read(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "read config:", err)
		os.Exit(1)
	}

	c, err := app.New(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "start:", err)
		os.Exit(1)
	}
	defer c.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c.Log.Info().
		Dur("interval", cfg.ScanInterval).
		Str("permission", c.Permission.State().String()).
		Msg("watching reminders")

	err = c.Scanner.Run(ctx, cfg.ScanInterval, func(r remind.Report) {
		for _, t := range r.Fired {
			c.Log.Info().Str("task_id", string(t.ID)).Str("text", t.Text).Msg("reminder fired")
		}
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		c.Log.Error().Err(err).Msg("scanner stopped")
		os.Exit(1)
	}
	c.Log.Info().Msg("shutting down")
}
