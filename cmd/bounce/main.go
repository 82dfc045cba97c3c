package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/zeusync/bounce/internal/config"
	"github.com/zeusync/bounce/internal/core/observability/log"
	"github.com/zeusync/bounce/internal/injector"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML or JSON config file")
	dump := flag.Bool("dump-config", false, "print the effective config as YAML and exit")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.LoadFile(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error loading config:", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	if *dump {
		out, err := cfg.ToYAML()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error encoding config:", err)
			os.Exit(1)
		}
		_, _ = os.Stdout.Write(out)
		return
	}

	app, err := injector.InitializeApp(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error building app:", err)
		os.Exit(1)
	}
	defer func() { _ = app.Logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = app.Run(ctx); err != nil {
		app.Logger.Error("simulation failed", log.Error(err))
		stop()
		_ = app.Logger.Sync()
		os.Exit(1)
	}
}
