package servecmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
	"k8s.io/utils/clock"

	"github.com/openshift-online/heartbeat/cmd/heartbeat/environments"
	"github.com/openshift-online/heartbeat/cmd/heartbeat/server"
	"github.com/openshift-online/heartbeat/pkg/heartbeat"
	"github.com/openshift-online/heartbeat/pkg/liveness"
	"github.com/openshift-online/heartbeat/pkg/registry"
)

func NewServerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the heartbeat monitor",
		Long:  "Start the heartbeat monitor: listen for heartbeats and send an email when a server goes down or comes back.",
		Run:   runServer,
	}
	err := environments.Environment().AddFlags(cmd.PersistentFlags())
	if err != nil {
		klog.Fatalf("Unable to add environment flags to serve command: %s", err.Error())
	}

	return cmd
}

func runServer(cmd *cobra.Command, args []string) {
	env := environments.Environment()
	err := env.Initialize()
	if err != nil {
		klog.Fatalf("Unable to initialize environment: %s", err.Error())
	}
	defer env.Teardown()

	reg, err := registry.Load(env.Config.Roster.Servers)
	if err != nil {
		klog.Fatalf("Unable to load server roster: %s", err.Error())
	}
	klog.Infof("Monitoring %d servers", reg.Len())

	clk := clock.RealClock{}
	store := liveness.NewStore(reg, clk.Now())
	listener := heartbeat.NewListener(env.Config.Heartbeat.Address(), store, clk)
	sweeper := liveness.NewSweeper(store, env.Clients.Notifier, clk, env.Config.Liveness.Threshold, env.Config.Liveness.SweepInterval)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	servers := []server.Server{server.NewHeartbeatServer(listener)}
	if env.Config.HealthCheck.Enabled {
		servers = append(servers, server.NewHealthCheckServer(ctx, env.Config.HealthCheck.BindPort, listener.Ready, store, clk))
	}
	if env.Config.Metrics.Enabled {
		servers = append(servers, server.NewMetricsServer(ctx, env.Config.Metrics.BindPort))
	}

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		defer cancel()
		<-stopCh
		// Received SIGTERM or SIGINT signal, shutting down servers gracefully.
		for _, s := range servers {
			if err := s.Stop(); err != nil {
				klog.Errorf("Failed to stop server, %v", err)
			}
		}
	}()

	// Run the servers
	for _, s := range servers {
		go s.Start(ctx)
	}
	go sweeper.Start(ctx)

	<-ctx.Done()
}
