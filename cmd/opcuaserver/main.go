package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/cuemby/opcua-core/pkg/events"
	"github.com/cuemby/opcua-core/pkg/externalns"
	"github.com/cuemby/opcua-core/pkg/health"
	"github.com/cuemby/opcua-core/pkg/job"
	"github.com/cuemby/opcua-core/pkg/log"
	"github.com/cuemby/opcua-core/pkg/metrics"
	"github.com/cuemby/opcua-core/pkg/network"
	"github.com/cuemby/opcua-core/pkg/security"
	"github.com/cuemby/opcua-core/pkg/server"
	"github.com/cuemby/opcua-core/pkg/service"
	"github.com/cuemby/opcua-core/pkg/store"
)

var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "opcuaserver",
	Short: "Demo host for the embeddable OPC UA server core",
	Long: `opcuaserver is a minimal demo binary around the opcua-core module: it
wires a node store, job scheduler, service layer and a plain TCP network
layer into a runnable process. It carries no binary protocol codec of its
own, since that sits outside the core's scope.`,
	Version: Version,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("opcuaserver version %s\nCommit: %s\nBuilt: %s\n", Version, Commit, BuildTime))
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
	serveCmd.Flags().String("config", "", "Path to a YAML config file (optional; built-in defaults are used otherwise)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("opcuaserver version %s\nCommit: %s\nBuilt: %s\n", Version, Commit, BuildTime)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the server until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := loadFileConfig(configPath)
		if err != nil {
			return err
		}

		log.Init(cfg.logConfig())
		logger := log.WithComponent("opcuaserver")

		// Session establishment itself rides on the wire codec this demo
		// doesn't implement (see dispatch.go); building the authenticator
		// here shows where an embedder's own codec would call it.
		_ = security.NewAuthenticator(cfg.securityConfig())

		st := store.NewBootstrapped()
		external := externalns.NewRegistry()
		svc := service.New(st, external)

		scheduler := job.NewRepeatedJobScheduler()
		srv := server.New(cfg.serverConfig(), st, scheduler)
		srv.Dispatch = newDispatcher(svc, logger)

		broker := events.NewBroker()
		broker.Start()
		defer broker.Stop()

		srv.OnFatal = func(err error) {
			broker.Publish(events.Event{Type: events.TypeWorkerPanic, Message: err.Error()})
		}

		checker := health.NewChecker(st)
		if err := health.Schedule(scheduler, checker, 5*time.Second, srv.ReportFatal); err != nil {
			return fmt.Errorf("schedule invariant check: %w", err)
		}

		collector := metrics.NewCollector(st)
		collector.SetPool(srv)
		collector.Start(15 * time.Second)
		defer collector.Stop()

		layer := network.NewTCPNetworkLayer(cfg.ListenAddr, cfg.DiscoveryURL)
		srv.RegisterLayer(layer)

		if err := srv.Start(); err != nil {
			return fmt.Errorf("start server: %w", err)
		}
		broker.Publish(events.Event{Type: events.TypeServerStarted, Message: srv.ApplicationDescription().ApplicationURI})
		logger.Info().Str("addr", cfg.ListenAddr).Str("discovery_url", cfg.DiscoveryURL).Msg("server listening")

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh

		logger.Info().Msg("shutting down")
		srv.Stop()
		broker.Publish(events.Event{Type: events.TypeServerStopped})
		return nil
	},
}
