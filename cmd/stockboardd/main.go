package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"stockboard/internal/config"
	"stockboard/internal/daemon"
	"stockboard/internal/ipc"
	"stockboard/internal/logging"
	"stockboard/internal/preflight"
)

func main() {
	configPath := flag.String("config", "", "configuration file path")
	socketOverride := flag.String("socket", "", "unix socket path for the IPC listener")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, _, _, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *socketOverride != "" {
		cfg.Paths.Socket = *socketOverride
	}
	if err := cfg.EnsureDirectories(); err != nil {
		log.Fatalf("prepare directories: %v", err)
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	if failed := preflight.Failed(preflight.RunAll(ctx, cfg)); len(failed) > 0 {
		for _, result := range failed {
			logger.Error("preflight check failed",
				logging.String("check", result.Name),
				logging.String("detail", result.Detail))
		}
		os.Exit(1)
	}

	d, err := daemon.New(cfg, logger)
	if err != nil {
		logger.Error("create daemon", logging.Error(err))
		os.Exit(1)
	}
	defer d.Close()

	socketPath := buildSocketPath(cfg)
	ipcServer, err := ipc.NewServer(ctx, socketPath, d, logger)
	if err != nil {
		logger.Error("start IPC server", logging.Error(err))
		os.Exit(1)
	}
	defer ipcServer.Close()
	ipcServer.Serve()

	if err := d.Start(ctx); err != nil {
		logger.Error("daemon start", logging.Error(err))
		os.Exit(1)
	}

	select {
	case <-ctx.Done():
	case <-d.Done():
	}
	logger.Info("stockboardd shutting down")
}
