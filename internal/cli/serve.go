package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rileyhilliard/stordash/internal/logger"
	"github.com/rileyhilliard/stordash/internal/provider"
	"github.com/rileyhilliard/stordash/internal/server"
	"github.com/rileyhilliard/stordash/internal/ui"
)

// serveCommand runs the demo device API until interrupted.
func serveCommand(listenFlag string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	listen := cfg.Server.Listen
	if listenFlag != "" {
		listen = listenFlag
	}

	srv, err := server.New(server.Options{
		Listen:   listen,
		Provider: provider.NewCatalog(nil),
		Logger:   logger.NewEnvLogger("[server]"),
	})
	if err != nil {
		return err
	}
	if err := srv.Start(); err != nil {
		return err
	}

	fmt.Printf("%s Serving the device catalog on http://%s\n", ui.SymbolSuccess, srv.Address())
	fmt.Println(ui.MutedStyle().Render("Point the dashboard at it with provider.mode: remote. Ctrl+C to stop."))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	fmt.Println()
	return srv.Close()
}
