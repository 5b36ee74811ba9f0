package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/wcagdemo/internal/catalog"
	"github.com/muurk/wcagdemo/internal/discovery"
	"github.com/muurk/wcagdemo/internal/logging"
	"github.com/muurk/wcagdemo/internal/server"
)

// Server command flags
var (
	serveHost      string
	servePort      int
	serveAdvertise bool
	serveInstance  string
	scanTimeout    int
)

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(discoverCmd)

	serveCmd.Flags().StringVar(&serveHost, "host", "", "Listen host (default from config, 127.0.0.1)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Listen port (default from config, 8470)")
	serveCmd.Flags().BoolVar(&serveAdvertise, "advertise", false, "Advertise the server over mDNS")
	serveCmd.Flags().StringVar(&serveInstance, "instance", "", "mDNS instance name (default from config)")

	discoverCmd.Flags().IntVar(&scanTimeout, "timeout", 5, "Scan timeout in seconds")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog and remote trap sessions over HTTP",
	Long: `Start an HTTP server exposing the case catalog as JSON and focus trap
sessions over a websocket at /ws/trap. Prometheus metrics are served at
/metrics.

When the catalog comes from a cases file, edits to the file are picked up
without a restart. Stop the server with Ctrl+C.`,
	Example: `  # Local only, default port
  wcagdemo serve

  # On the LAN, discoverable with 'wcagdemo discover'
  wcagdemo serve --host 0.0.0.0 --advertise

  # Custom catalog with debug logging
  wcagdemo serve --cases ./cases.yaml --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cat, cfg, err := loadCommandCatalog()
	if err != nil {
		return err
	}

	host, port := cfg.Server.Host, cfg.Server.Port
	if cmd.Flags().Changed("host") {
		host = serveHost
	}
	if cmd.Flags().Changed("port") {
		port = servePort
	}
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid port %d", port)
	}
	instance := cfg.Server.Instance
	if serveInstance != "" {
		instance = serveInstance
	}

	srv := server.New(cat, server.Config{
		Addr:      net.JoinHostPort(host, strconv.Itoa(port)),
		Advertise: serveAdvertise || cfg.Server.Advertise,
		Instance:  instance,
	}, logging.Named("server"))

	path := casesPath
	if path == "" {
		path = cfg.Preferences.CasesFile
	}
	if path != "" {
		w, err := catalog.Watch(path, func(c *catalog.Catalog, err error) {
			if err != nil {
				logging.Warn("keeping the previous catalog", zap.Error(err))
				return
			}
			srv.SetCatalog(c)
		}, logging.Named("catalog"))
		if err != nil {
			logging.Warn("cases file will not be reloaded", zap.String("path", path), zap.Error(err))
		} else {
			defer w.Close()
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "Serving %d cases on http://%s (Ctrl+C to stop)\n",
		cat.Len(), net.JoinHostPort(host, strconv.Itoa(port)))
	return srv.Run(ctx)
}

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Find wcagdemo servers on the local network",
	Long: `Browse for wcagdemo servers started with --advertise, using mDNS/DNS-SD.`,
	Example: `  # Browse for 5 seconds (default)
  wcagdemo discover

  # Longer scan for busy networks
  wcagdemo discover --timeout 15`,
	Args: cobra.NoArgs,
	RunE: runDiscover,
}

func runDiscover(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Scanning for wcagdemo servers (timeout: %ds)...\n\n", scanTimeout)

	scanner := discovery.NewScanner()
	scanner.Timeout = time.Duration(scanTimeout) * time.Second

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	servers, err := scanner.Scan(ctx)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(servers) == 0 {
		fmt.Fprintln(out, "No servers found.")
		fmt.Fprintln(out, "\nTroubleshooting:")
		fmt.Fprintln(out, "  - Start a server with 'wcagdemo serve --host 0.0.0.0 --advertise'")
		fmt.Fprintln(out, "  - Check that multicast traffic is allowed on this network")
		fmt.Fprintln(out, "  - Try increasing --timeout")
		return nil
	}

	fmt.Fprintf(out, "Found %d server(s):\n\n", len(servers))
	for i, s := range servers {
		fmt.Fprintf(out, "%d. %s\n", i+1, s.Instance)
		fmt.Fprintf(out, "   URL:     %s\n", s.BaseURL())
		fmt.Fprintf(out, "   Host:    %s\n", s.Host)
		if s.Version != "" {
			fmt.Fprintf(out, "   Version: %s\n", s.Version)
		}
		if s.Cases >= 0 {
			fmt.Fprintf(out, "   Cases:   %d\n", s.Cases)
		}
		fmt.Fprintln(out)
	}
	return nil
}

