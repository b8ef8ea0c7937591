package main

import (
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/SridarDhandapani/onvif-gateway/gateway"
	"github.com/SridarDhandapani/onvif-gateway/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP gateway",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if !cfg.Log.Debug {
			gin.SetMode(gin.ReleaseMode)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		srv := gateway.New(cfg.ONVIFSettings(), logger.WithComponent("gateway"))
		return srv.Run(ctx, cfg.Server.Listen, cfg.ShutdownTimeout())
	},
}
