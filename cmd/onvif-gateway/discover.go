package main

import (
	"fmt"
	"net"
	"time"

	"github.com/spf13/cobra"

	onvif "github.com/SridarDhandapani/onvif-gateway"
	"github.com/SridarDhandapani/onvif-gateway/logger"
)

var (
	discoverTimeout   time.Duration
	discoverInterface string
	discoverTTL       int
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Find ONVIF devices on the local network with WS-Discovery",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadConfig(); err != nil {
			return err
		}
		log := logger.WithComponent("discovery")

		opts := onvif.DiscoveryOptions{
			Timeout: discoverTimeout,
			TTL:     discoverTTL,
			Logger:  &log,
		}
		if discoverInterface != "" {
			ifi, err := net.InterfaceByName(discoverInterface)
			if err != nil {
				return fmt.Errorf("unknown interface %q: %w", discoverInterface, err)
			}
			opts.Interface = ifi
		}

		devices, err := onvif.Discover(cmd.Context(), opts)
		if err != nil {
			return err
		}
		log.Info().Int("count", len(devices)).Msg("Discovery finished")
		return printJSON(cmd.OutOrStdout(), devices)
	},
}

func init() {
	discoverCmd.Flags().DurationVar(&discoverTimeout, "timeout", onvif.DefaultDiscoveryTimeout, "how long to wait for answers")
	discoverCmd.Flags().StringVar(&discoverInterface, "interface", "", "network interface to probe on")
	discoverCmd.Flags().IntVar(&discoverTTL, "ttl", onvif.DefaultMulticastTTL, "multicast hop limit")
}
