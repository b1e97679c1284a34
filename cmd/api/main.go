// Package main provides the main entry point for the Crave API server
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/craveapp/crave/internal/infrastructure/container"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		fx.NopLogger, // Use our own logger instead of Fx's

		container.Module,

		fx.Invoke(func() {
			fmt.Println(`
 ██████╗██████╗  █████╗ ██╗   ██╗███████╗
██╔════╝██╔══██╗██╔══██╗██║   ██║██╔════╝
██║     ██████╔╝███████║██║   ██║█████╗
██║     ██╔══██╗██╔══██║╚██╗ ██╔╝██╔══╝
╚██████╗██║  ██║██║  ██║ ╚████╔╝ ███████╗
 ╚═════╝╚═╝  ╚═╝╚═╝  ╚═╝  ╚═══╝  ╚══════╝
        recipes that fit your constraints
			`)
		}),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	<-ctx.Done()

	fmt.Println("\nShutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := app.Stop(shutdownCtx); err != nil {
		log.Fatalf("Failed to stop application gracefully: %v", err)
	}

	fmt.Println("Application stopped successfully")
}
