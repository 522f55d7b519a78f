// Command storagenode runs a single storage node: it listens on a TCP
// port and answers Add/Query/Delete RPCs against one ADS kind, keeping
// one instance of that kind per keyword it has seen.
package main

import (
	"fmt"
	"net"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/kazmiller0/distributed-storage-system/ads"
	"github.com/kazmiller0/distributed-storage-system/storage"
	"github.com/kazmiller0/distributed-storage-system/storage/kv"
	"github.com/kazmiller0/distributed-storage-system/storage/kv/leveldbkv"
	"github.com/kazmiller0/distributed-storage-system/utils/binutils"
)

var dbPath string

func main() {
	cmd := &cobra.Command{
		Use:   "storagenode <port> <ads-kind>",
		Short: "Run a storage node backed by an accumulator or MPT index",
		Long: `Run a storage node backed by an accumulator or MPT index.

ads-kind must be one of "accumulator" or "mpt". The node listens on the
given TCP port and holds one ADS instance per keyword it has seen.`,
		Args: cobra.ExactArgs(2),
		RunE: runStorageNode,
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "leveldb directory persisting every keyword's fid list across restarts (in-memory only if omitted)")
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runStorageNode(cmd *cobra.Command, args []string) error {
	port := args[0]
	kind := ads.Kind(args[1])
	if kind != ads.KindAccumulator && kind != ads.KindMPT {
		return fmt.Errorf("ads-kind must be %q or %q, got %q", ads.KindAccumulator, ads.KindMPT, kind)
	}

	logger := binutils.NewLogger(&binutils.LoggerConfig{Environment: "production"})

	ln, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return fmt.Errorf("bind port %s: %w", port, err)
	}

	var store kv.DB
	var node *storage.Node
	if dbPath != "" {
		store = leveldbkv.OpenDB(dbPath)
		node = storage.NewNodeWithStore(kind, store)
		logger.Info("storage node persisting to disk", "db", dbPath)
	} else {
		node = storage.NewNode(kind)
	}
	service := &storage.Service{Node: node}
	listener := storage.NewListener(service, logger)

	logger.Info("storage node listening", "port", port, "ads-kind", string(kind))
	go listener.Serve(ln)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	<-sig

	logger.Info("storage node shutting down")
	listener.Shutdown()
	if store != nil {
		if err := store.Close(); err != nil {
			logger.Error("closing db failed", "error", err)
		}
	}
	return nil
}
