// api.go implements "entlog api", the HTTP JSON API.
//
// Unlike serve, api needs an existing catalog and uses the shared one opened
// by the root command. It runs until interrupted.

package core

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jpl-au/entlog/cmd"
	"github.com/jpl-au/entlog/extension"
	"github.com/jpl-au/entlog/internal/api"
	"github.com/jpl-au/entlog/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newAPICmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "api",
		Short: "Start the HTTP API server",
		Long: `Serve the catalog over HTTP with JSON request and response bodies.

  entlog api                   # listen on server.addr (default :8000)
  entlog api --addr 127.0.0.1:9000

Set server.token (or ENTLOG_API_TOKEN) to require "Authorization: Bearer <token>".
See "entlog guide api" for routes.`,
		Args: cobra.NoArgs,
		RunE: e.runAPI,
	}
	c.Flags().String(extension.FlagAddr, "", "Listen address (overrides server.addr)")
	return c
}

func (e *Extension) runAPI(c *cobra.Command, _ []string) error {
	cfg := e.svc.Config()
	addr, _ := c.Flags().GetString(extension.FlagAddr)
	if addr == "" {
		addr = cfg.Addr()
	}
	if tok := os.Getenv("ENTLOG_API_TOKEN"); tok != "" {
		cfg.Server.Token = tok
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if cfg.Token() == "" {
		logger.Warn("no server.token configured, API is unauthenticated")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := api.NewServer(e.svc, logger).Run(ctx, addr)
	log.Event("core:api", "serve").Author(cmd.Author()).Detail("addr", addr).Write(err)
	return err
}
