package types

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProposalIsActive(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	future := big.NewInt(now.Unix() + 60)
	past := big.NewInt(now.Unix() - 60)

	assert.True(t, (&Proposal{EndTime: future}).IsActive(now))
	assert.False(t, (&Proposal{EndTime: past}).IsActive(now))
	assert.False(t, (&Proposal{EndTime: big.NewInt(now.Unix())}).IsActive(now))
	assert.False(t, (&Proposal{EndTime: future, Executed: true}).IsActive(now))
	assert.False(t, (&Proposal{}).IsActive(now))
}

func TestProposalStatus(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	future := big.NewInt(now.Unix() + 60)
	past := big.NewInt(now.Unix() - 60)

	assert.Equal(t, ProposalStatusActive, (&Proposal{EndTime: future}).Status(now))
	assert.Equal(t, ProposalStatusEnded, (&Proposal{EndTime: past}).Status(now))
	assert.Equal(t, ProposalStatusPassed, (&Proposal{EndTime: past, Executed: true, Passed: true}).Status(now))
	assert.Equal(t, ProposalStatusRejected, (&Proposal{EndTime: past, Executed: true}).Status(now))
	assert.Equal(t, "passed", ProposalStatusPassed.String())
}
