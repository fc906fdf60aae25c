package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"cmedimport/internal/config"
	"cmedimport/internal/storage"
	"cmedimport/internal/watcher"
)

func main() {
	cfg, err := config.Load()
	must(err)

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("cmed-watcher watching %s every %ds\n", cfg.InboxDir, cfg.WatcherIntervalSec)
	must(watcher.NewService(db, cfg).Run(ctx))
}

func must(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
