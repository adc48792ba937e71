package indexer

import (
	"context"
	"time"

	cmtlog "github.com/cometbft/cometbft/libs/log"

	"github.com/fiestadao/fiesta-gov/dao"
	"github.com/fiestadao/fiesta-gov/metrics"
	"github.com/fiestadao/fiesta-gov/monitoring"
)

// Scanner hands out a fresh scan over every proposal id.
type Scanner interface {
	ScanProposals(ctx context.Context) (*dao.ProposalScan, error)
}

// Indexer copies every proposal into the archive on a fixed interval. The
// archive is a history for the API; live reconciliation never reads it.
type Indexer struct {
	logger   cmtlog.Logger
	archive  *Archive
	scanner  Scanner
	interval time.Duration
	now      func() time.Time
}

func NewIndexer(logger cmtlog.Logger, archive *Archive, scanner Scanner, interval time.Duration) *Indexer {
	return &Indexer{
		logger:   logger.With("module", "indexer"),
		archive:  archive,
		scanner:  scanner,
		interval: interval,
		now:      time.Now,
	}
}

// Sync runs one full pass over the proposal ids.
func (ix *Indexer) Sync(ctx context.Context) error {
	scan, err := ix.scanner.ScanProposals(ctx)
	if err != nil {
		metrics.IndexerSyncs.WithLabelValues("fail").Inc()
		return err
	}
	now := ix.now()
	var failed uint64
	for scan.Next(ctx) {
		if err := scan.Err(); err != nil {
			ix.logger.Error("get proposal fail", "id", scan.ID(), "err", err)
			failed++
			continue
		}
		p := scan.Proposal()
		if p.ID == nil {
			failed++
			continue
		}
		rec := newProposalRecord(p, now)
		if err := ix.archive.saveProposal(&rec); err != nil {
			ix.logger.Error("save proposal fail", "id", rec.Id, "err", err)
			failed++
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	st := SyncState{
		Total:    scan.Total(),
		Failed:   failed,
		LastSync: now.Unix(),
	}
	if err := ix.archive.saveSyncState(st); err != nil {
		metrics.IndexerSyncs.WithLabelValues("fail").Inc()
		return err
	}
	metrics.IndexerSyncs.WithLabelValues("ok").Inc()
	ix.logger.Info("indexer synced", "total", st.Total, "failed", failed)
	return nil
}

// Start syncs immediately and then on every tick until ctx is done.
func (ix *Indexer) Start(ctx context.Context) {
	ticker := time.NewTicker(ix.interval)
	defer ticker.Stop()
	for {
		if err := ix.Sync(ctx); err != nil && ctx.Err() == nil {
			ix.logger.Error("indexer sync fail", "err", err)
			monitoring.Error(err, map[string]string{"module": "indexer"})
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
