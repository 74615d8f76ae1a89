package main

import (
	"flag"
	"log"
	"os"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/openshift-online/heartbeat/cmd/heartbeat/servecmd"
)

func main() {
	// check if the glog flag is already registered to avoid duplicate flag define error
	if flag.CommandLine.Lookup("alsologtostderr") != nil {
		flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	}

	// add klog flags
	klog.InitFlags(nil)

	// Initialize root command
	rootCmd := &cobra.Command{
		Use:  "heartbeat",
		Long: "heartbeat monitors a fleet of servers through UDP heartbeats and emails when one goes silent",
	}

	// Add klog flags to root command
	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	// All subcommands under root
	serveCmd := servecmd.NewServerCommand()

	// Add subcommand(s)
	rootCmd.AddCommand(serveCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("error running command: %v", err)
	}
}
