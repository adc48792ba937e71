package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/fiestadao/fiesta-gov/dao"
	"github.com/fiestadao/fiesta-gov/indexer"
	"github.com/fiestadao/fiesta-gov/types"
)

var homeDir string

var clCmd = &cobra.Command{
	Use:   "fiesta",
	Short: "Fiesta DAO governance client",
	Long: `Stake, propose and vote on the Fiesta DAO governance contract,
and serve the proposal archive over HTTP.`,
	SilenceUsage: true,
}

func init() {
	clCmd.PersistentFlags().StringVarP(&homeDir, types.FlagHome, "d", "", "home directory (default $HOME/.fiesta)")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the proposal indexer",
	Args:  cobra.NoArgs,
	Run:   serveRun,
}

func serveRun(cmd *cobra.Command, args []string) {
	cfg, logger, err := loadConfig()
	if err != nil {
		log.Fatalf("Reading config: %v", err)
	}
	archive, err := indexer.OpenArchive(cfg.ArchiveDBPath())
	if err != nil {
		log.Fatalf("open archive err %s", err.Error())
	}
	defer archive.Close()

	journal := logger.With("module", "journal")
	n, err := newNode(context.Background(), dao.WithSubmitHook(func(sub dao.Submission) {
		archive.RecordTx(journal, sub)
	}))
	if err != nil {
		log.Fatalf("new node err %s", err.Error())
	}
	defer n.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	if n.cfg.Indexer.Enabled {
		ix := indexer.NewIndexer(n.logger, archive, n.session, n.cfg.Indexer.PollInterval)
		startIndexer(ctx, ix, &wg)
	}

	var balances indexer.BalanceReader
	if n.client != nil {
		balances = n.client
	}
	svc := indexer.NewService(n.logger, n.cfg.API.ListenAddress, n.network, n.session, archive, balances)
	go func() {
		if err := svc.Start(); err != nil {
			log.Fatalf("api server err %s", err.Error())
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	n.logger.Info("shutting down")
	cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := svc.Stop(); err != nil {
			n.logger.Error("stop api fail", "err", err)
		}
		// the archive is closed on return, so the indexer must be out of it
		wg.Wait()
	}()
	timer := time.NewTimer(time.Second * 10)
	defer timer.Stop()
	select {
	case <-timer.C:
		os.Exit(1)
	case <-done:
	}
}

// startIndexer runs ix until ctx is done; wg is released once it has returned.
func startIndexer(ctx context.Context, ix *indexer.Indexer, wg *sync.WaitGroup) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		ix.Start(ctx)
	}()
}
