package types

import (
	"math/big"
	"time"
)

// Proposal is a snapshot of one getProposal(id) result. It is never mutated
// after decoding; callers re-fetch to observe changes.
type Proposal struct {
	ID           *big.Int `json:"id"`
	ProjectID    *big.Int `json:"projectId"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	VotesFor     *big.Int `json:"votesFor"`
	VotesAgainst *big.Int `json:"votesAgainst"`
	EndTime      *big.Int `json:"endTime"`
	Executed     bool     `json:"executed"`
	Passed       bool     `json:"passed"`
}

// IsActive reports whether the proposal is not executed and its voting window
// closes after now.
func (p *Proposal) IsActive(now time.Time) bool {
	if p.Executed || p.EndTime == nil {
		return false
	}
	return p.EndTime.Cmp(big.NewInt(now.Unix())) > 0
}

// Status derives the display status at now.
func (p *Proposal) Status(now time.Time) ProposalStatus {
	switch {
	case p.Executed && p.Passed:
		return ProposalStatusPassed
	case p.Executed:
		return ProposalStatusRejected
	case p.IsActive(now):
		return ProposalStatusActive
	default:
		return ProposalStatusEnded
	}
}

type ProposalStatus uint64

const (
	ProposalStatusActive   ProposalStatus = 1
	ProposalStatusEnded    ProposalStatus = 2
	ProposalStatusPassed   ProposalStatus = 3
	ProposalStatusRejected ProposalStatus = 4
)

func (s ProposalStatus) String() string {
	switch s {
	case ProposalStatusActive:
		return "active"
	case ProposalStatusEnded:
		return "ended"
	case ProposalStatusPassed:
		return "passed"
	case ProposalStatusRejected:
		return "rejected"
	}
	return "unknown"
}
