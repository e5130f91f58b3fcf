// Command server runs the breeding genetics HTTP API.
//
// Configuration is read from CONFIG_PATH (default ./config.yaml) and the
// environment. The custom gene catalog is enabled when DATABASE_DSN is set.
//
// Exit codes: 0 = clean shutdown, 1 = error.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Printf("server: %v", err)
		stop()
		os.Exit(1)
	}
}
