package dao

import (
	"context"

	"github.com/fiestadao/fiesta-gov/metrics"
	"github.com/fiestadao/fiesta-gov/types"
)

type ProposalReader interface {
	Proposal(ctx context.Context, id uint64) (types.Proposal, error)
}

// ProposalScan walks proposal ids 1..Total, reading one proposal per Next.
// A failed read does not end the scan; Err reports it for the current id.
//
//	scan := dao.NewProposalScan(gov, total)
//	for scan.Next(ctx) {
//		if scan.Err() != nil {
//			continue
//		}
//		use(scan.Proposal())
//	}
type ProposalScan struct {
	reader ProposalReader
	total  uint64
	next   uint64

	id       uint64
	proposal types.Proposal
	err      error
}

func NewProposalScan(reader ProposalReader, total uint64) *ProposalScan {
	return &ProposalScan{
		reader: reader,
		total:  total,
		next:   1,
	}
}

// Next reads the next proposal. It returns false once every id has been
// visited or ctx is done.
func (sc *ProposalScan) Next(ctx context.Context) bool {
	if sc.next == 0 || sc.next > sc.total || ctx.Err() != nil {
		return false
	}
	sc.id = sc.next
	sc.next++
	sc.proposal, sc.err = sc.reader.Proposal(ctx, sc.id)
	metrics.ProposalReads.Inc()
	if sc.err != nil {
		sc.proposal = types.Proposal{}
		metrics.ProposalReadFailures.Inc()
	}
	return true
}

func (sc *ProposalScan) ID() uint64 {
	return sc.id
}

func (sc *ProposalScan) Proposal() types.Proposal {
	return sc.proposal
}

func (sc *ProposalScan) Err() error {
	return sc.err
}

func (sc *ProposalScan) Total() uint64 {
	return sc.total
}

// Reset rewinds the scan to id 1. The total is not re-read.
func (sc *ProposalScan) Reset() {
	sc.next = 1
	sc.id = 0
	sc.proposal = types.Proposal{}
	sc.err = nil
}
