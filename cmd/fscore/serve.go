package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/komsit37/fscore/pkg/fscore/config"
	"github.com/komsit37/fscore/pkg/fscore/web"
)

func newServeCmd(conf func() *config.Config) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the score form and API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := conf()
			if addr == "" {
				addr = cfg.Server.Addr
			}
			resolver, err := buildResolver(cfg, "")
			if err != nil {
				return err
			}

			if cfg.Log.Level != "debug" {
				gin.SetMode(gin.ReleaseMode)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := web.NewServer(resolver, web.Options{
				Addr:           addr,
				AllowedOrigins: cfg.Server.AllowedOrigins,
				DefaultQuery:   cfg.Server.DefaultQuery,
				DefaultLang:    cfg.Output.Lang,
			})
			return srv.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from server.addr)")
	return cmd
}
