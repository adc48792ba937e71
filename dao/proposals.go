package dao

import (
	"context"
	"fmt"

	"github.com/fiestadao/fiesta-gov/metrics"
	"github.com/fiestadao/fiesta-gov/types"
)

// ScanProposals reads the current proposal count and returns a scan over it.
func (s *Session) ScanProposals(ctx context.Context) (*ProposalScan, error) {
	gov, err := s.ready()
	if err != nil {
		return nil, err
	}
	total, err := gov.TotalProposals(ctx)
	if err != nil {
		return nil, fmt.Errorf("get total proposals: %w", err)
	}
	return NewProposalScan(gov, total), nil
}

// ActiveProposals re-reads every proposal and returns those still open for
// voting, in ascending id order. Proposals that fail to load are skipped.
func (s *Session) ActiveProposals(ctx context.Context) ([]types.Proposal, error) {
	if _, err := s.ready(); err != nil {
		s.setError(err.Error())
		return nil, err
	}
	s.begin()
	defer s.end()

	scan, err := s.ScanProposals(ctx)
	if err != nil {
		s.logger.Error("get total proposals fail", "err", err)
		s.setError("failed to fetch proposals")
		return nil, err
	}
	now := s.now()
	active := make([]types.Proposal, 0)
	for scan.Next(ctx) {
		if err := scan.Err(); err != nil {
			s.logger.Error("get proposal fail", "id", scan.ID(), "err", err)
			continue
		}
		p := scan.Proposal()
		if p.IsActive(now) {
			active = append(active, p)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mtx.Lock()
	s.active = active
	s.mtx.Unlock()
	metrics.ActiveProposals.Set(float64(len(active)))
	s.logger.Debug("active proposals", "total", scan.Total(), "active", len(active))
	return copyProposals(active), nil
}

// copyProposals never returns nil, so an empty list encodes as [].
func copyProposals(ps []types.Proposal) []types.Proposal {
	out := make([]types.Proposal, len(ps))
	copy(out, ps)
	return out
}
