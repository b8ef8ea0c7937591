package main

import (
	"github.com/spf13/cobra"

	onvif "github.com/SridarDhandapani/onvif-gateway"
	"github.com/SridarDhandapani/onvif-gateway/logger"
)

var (
	devHost     string
	devPort     int
	devUser     string
	devPassword string
	devRedirect string
)

var deviceInfoCmd = &cobra.Command{
	Use:   "device-info",
	Short: "Print the identity of one device as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		target := onvif.NewTarget(devHost, devPort)
		if devUser != "" {
			target = target.WithCredentials(devUser, devPassword)
		}
		if devRedirect != "" {
			target = target.WithRedirect(devRedirect)
		}

		log := logger.WithComponent("onvif")
		settings := cfg.ONVIFSettings()
		settings.Logger = &log

		client, err := onvif.NewDeviceClient(cmd.Context(), target, settings)
		if err != nil {
			return err
		}
		info, err := client.GetDeviceInformation(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), info)
	},
}

func init() {
	deviceInfoCmd.Flags().StringVar(&devHost, "host", "", "device host, or a http(s):// tunnel URL")
	deviceInfoCmd.Flags().IntVar(&devPort, "port", 80, "device port in direct mode")
	deviceInfoCmd.Flags().StringVar(&devUser, "user", "", "device user")
	deviceInfoCmd.Flags().StringVar(&devPassword, "password", "", "device password")
	deviceInfoCmd.Flags().StringVar(&devRedirect, "redirect-url", "", "security gateway lookup URL")
	_ = deviceInfoCmd.MarkFlagRequired("host")
}
