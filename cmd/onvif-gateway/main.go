// Command onvif-gateway runs the ONVIF HTTP gateway.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
