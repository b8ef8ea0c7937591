package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/SridarDhandapani/onvif-gateway/config"
	"github.com/SridarDhandapani/onvif-gateway/logger"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "onvif-gateway",
	Short: "HTTP gateway to ONVIF cameras",
	Long: `Serve typed JSON endpoints in front of ONVIF devices, or query a
device directly from the command line.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML)")
	rootCmd.AddCommand(serveCmd, discoverCmd, deviceInfoCmd)
}

// loadConfig reads the configuration and sets up the process logger
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return cfg, err
	}
	if err := logger.Init(cfg.Log); err != nil {
		return cfg, fmt.Errorf("invalid log settings: %w", err)
	}
	return cfg, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
