package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/me/taskplan/internal/config"
	"github.com/me/taskplan/internal/logging"
	"github.com/me/taskplan/internal/scheduler"
	"github.com/me/taskplan/internal/server"
	"github.com/me/taskplan/internal/taskfile"
)

func main() {
	cfg := config.DefaultServerConfig()

	// The config file is applied before flags so flags win.
	configFile := configPathFromArgs(os.Args[1:])
	if configFile != "" {
		var err error
		cfg, err = config.LoadFile(configFile, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "load config: %v\n", err)
			os.Exit(1)
		}
	}

	flag.String("config", configFile, "Path to YAML server config file")
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "Listen address")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	flag.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json)")
	flag.StringVar(&cfg.Timezone, "timezone", cfg.Timezone, "IANA timezone deadlines are read in (default: local)")
	flag.StringVar(&cfg.TasksFile, "tasks", cfg.TasksFile, "YAML task file to load at startup")
	flag.Float64Var(&cfg.RatePerSec, "rate", cfg.RatePerSec, "Max mutating requests per second (0 = unlimited)")
	flag.IntVar(&cfg.RateBurst, "rate-burst", cfg.RateBurst, "Burst size for --rate")
	debug := flag.Bool("debug", false, "Shorthand for --log-level=debug")

	flag.Parse()

	if *debug {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)

	loc, _ := cfg.Location() // checked by Validate
	sched := scheduler.New(scheduler.WithLocation(loc), scheduler.WithLogger(logger))

	if cfg.TasksFile != "" {
		f, err := taskfile.Load(cfg.TasksFile)
		if err == nil {
			err = f.Apply(sched)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "load tasks: %v\n", err)
			os.Exit(1)
		}
		logger.Info("tasks loaded", "path", cfg.TasksFile, "count", sched.Len())
	}

	srv := server.New(cfg, scheduler.NewShared(sched), logger)

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: srv.Handler(),
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server starting", "addr", cfg.Addr, "timezone", loc.String())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(os.Stderr, "shutdown error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

// configPathFromArgs finds -config before flag.Parse runs, so the file
// can seed the flag defaults.
func configPathFromArgs(args []string) string {
	for i, a := range args {
		if !strings.HasPrefix(a, "-") {
			continue
		}
		a = strings.TrimLeft(a, "-")
		if a == "config" && i+1 < len(args) {
			return args[i+1]
		}
		if v, ok := strings.CutPrefix(a, "config="); ok {
			return v
		}
	}
	return ""
}
