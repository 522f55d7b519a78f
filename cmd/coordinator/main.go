// Command coordinator runs the verifying front end: it routes keyword
// operations to storage nodes via consistent hashing, independently
// verifies every proof it receives, and answers client Add/Query/Delete/
// Update calls.
package main

import (
	"fmt"
	"net"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/kazmiller0/distributed-storage-system/ads"
	"github.com/kazmiller0/distributed-storage-system/coordinator"
	"github.com/kazmiller0/distributed-storage-system/utils/binutils"
)

func main() {
	var adsMode string
	var storagersPath string

	cmd := &cobra.Command{
		Use:   "coordinator <port>",
		Short: "Run the coordinator that routes, verifies and aggregates storage-node responses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], ads.Kind(adsMode), storagersPath)
		},
	}
	cmd.Flags().StringVar(&adsMode, "ads-mode", string(ads.KindAccumulator), `verifier to apply to incoming proofs: "accumulator" or "mpt"`)
	cmd.Flags().StringVar(&storagersPath, "storagers", "", "path to a toml file listing storage-node addresses")
	cmd.MarkFlagRequired("storagers")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(port string, mode ads.Kind, storagersPath string) error {
	if mode != ads.KindAccumulator && mode != ads.KindMPT {
		return fmt.Errorf("ads-mode must be %q or %q, got %q", ads.KindAccumulator, ads.KindMPT, mode)
	}

	conf, err := coordinator.LoadStoragerConfig(storagersPath)
	if err != nil {
		return err
	}

	logger := binutils.NewLogger(&binutils.LoggerConfig{Environment: "production"})

	coord, err := coordinator.New(mode, conf.Storagers, conf.VirtualNodes, logger)
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return fmt.Errorf("bind port %s: %w", port, err)
	}

	service := &coordinator.Service{Coordinator: coord}
	listener := coordinator.NewListener(service, logger)

	logger.Info("coordinator listening", "port", port, "ads-mode", string(mode), "storagers", len(conf.Storagers))
	go listener.Serve(ln)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	<-sig

	logger.Info("coordinator shutting down")
	listener.Shutdown()
	return nil
}
