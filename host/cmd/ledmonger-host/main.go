package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ledmonger/host/monitor"
	"ledmonger/host/serial"
)

func main() {
	root := &cobra.Command{
		Use:   "ledmonger-host",
		Short: "Host-side tooling for the ledmonger LED fixture",
	}
	root.AddCommand(newMonitorCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newMonitorCmd() *cobra.Command {
	var (
		configFile    string
		device        string
		baud          int
		showHeartbeat bool
	)

	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Decode and print the fixture's telemetry stream",
		Long: `Attaches to the fixture's USB CDC port and prints one line per ` +
			`telemetry report: potentiometer bin changes, accepted encoder steps, ` +
			`and (optionally) heartbeats.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := monitor.DefaultConfig()
			if configFile != "" {
				loaded, err := monitor.LoadConfig(configFile)
				if err != nil {
					return err
				}
				cfg = loaded
			}

			// Flags override the config file.
			if cmd.Flags().Changed("device") {
				cfg.Device = device
			}
			if cmd.Flags().Changed("baud") {
				cfg.Baud = baud
			}
			if cmd.Flags().Changed("show-heartbeat") {
				cfg.ShowHeartbeat = showHeartbeat
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			portCfg := serial.DefaultConfig(cfg.Device)
			portCfg.Baud = cfg.Baud
			port, err := serial.Open(portCfg)
			if err != nil {
				return err
			}
			defer port.Close()

			fmt.Printf("Monitoring %s at %d baud\n", cfg.Device, cfg.Baud)
			return monitor.New(port, os.Stdout, cfg).Run()
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "YAML config file")
	cmd.Flags().StringVar(&device, "device", "/dev/ttyACM0", "serial device path")
	cmd.Flags().IntVar(&baud, "baud", 115200, "baud rate (ignored for USB CDC)")
	cmd.Flags().BoolVar(&showHeartbeat, "show-heartbeat", false, "also print heartbeat reports")

	return cmd
}
