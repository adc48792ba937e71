package dao

import (
	"context"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/fiestadao/fiesta-gov/contract"
	"github.com/fiestadao/fiesta-gov/metrics"
	"github.com/fiestadao/fiesta-gov/monitoring"
	"github.com/fiestadao/fiesta-gov/types"
)

// Stake sends amount wei to the contract. After submission it waits the
// settle delay and refreshes the voting power; it does not wait for the
// transaction to be mined.
func (s *Session) Stake(ctx context.Context, amount *big.Int) (common.Hash, error) {
	gov, err := s.ready()
	if err != nil {
		return common.Hash{}, err
	}
	if amount == nil || amount.Sign() <= 0 {
		return common.Hash{}, s.reject(types.TxKindStake, contract.MethodStakeTokens, contract.ErrNonPositiveValue)
	}
	call, err := gov.StakeCall(amount)
	if err != nil {
		return common.Hash{}, s.reject(types.TxKindStake, contract.MethodStakeTokens, err)
	}
	hash, err := s.submit(ctx, types.TxKindStake, call, Submission{Value: amount})
	if err != nil {
		return common.Hash{}, err
	}

	if err := s.sleep(ctx, s.settleDelay); err != nil {
		return hash, nil
	}
	if _, err := s.RefreshVotingPower(ctx); err != nil {
		s.logger.Error("refresh voting power after stake fail", "hash", hash.Hex(), "err", err)
	}
	return hash, nil
}

// Unstake is not offered by the governance contract client yet.
func (s *Session) Unstake(ctx context.Context) error {
	if _, err := s.ready(); err != nil {
		return err
	}
	return ErrUnstakeNotImplemented
}

func (s *Session) CreateProposal(ctx context.Context, projectID *big.Int, title, description string) (common.Hash, error) {
	gov, err := s.ready()
	if err != nil {
		return common.Hash{}, err
	}
	switch {
	case projectID == nil || projectID.Sign() < 0:
		err = ErrInvalidProjectID
	case strings.TrimSpace(title) == "":
		err = ErrEmptyTitle
	case strings.TrimSpace(description) == "":
		err = ErrEmptyDescription
	}
	if err != nil {
		return common.Hash{}, s.reject(types.TxKindCreateProposal, contract.MethodCreateProposal, err)
	}
	call, err := gov.CreateProposalCall(projectID, title, description)
	if err != nil {
		return common.Hash{}, s.reject(types.TxKindCreateProposal, contract.MethodCreateProposal, err)
	}
	return s.submit(ctx, types.TxKindCreateProposal, call, Submission{
		ProjectID: projectID,
		Title:     title,
	})
}

func (s *Session) Vote(ctx context.Context, proposalID *big.Int, support bool) (common.Hash, error) {
	gov, err := s.ready()
	if err != nil {
		return common.Hash{}, err
	}
	if proposalID == nil || proposalID.Sign() <= 0 {
		return common.Hash{}, s.reject(types.TxKindVote, contract.MethodVoteOnProposal, ErrInvalidProposalID)
	}
	call, err := gov.VoteCall(proposalID, support)
	if err != nil {
		return common.Hash{}, s.reject(types.TxKindVote, contract.MethodVoteOnProposal, err)
	}
	return s.submit(ctx, types.TxKindVote, call, Submission{
		ProposalID: proposalID,
		Support:    support,
	})
}

func (s *Session) submit(ctx context.Context, op string, call contract.Call, sub Submission) (common.Hash, error) {
	if s.sender == nil {
		return common.Hash{}, s.reject(op, call.Method, ErrNoWallet)
	}
	s.txMtx.Lock()
	defer s.txMtx.Unlock()
	s.begin()
	defer s.end()

	hash, err := s.sender.Send(ctx, call)
	if err != nil {
		return common.Hash{}, s.reject(op, call.Method, err)
	}
	metrics.TxSubmitted.WithLabelValues(call.Method).Inc()
	s.logger.Info("transaction sent", "op", op, "hash", hash.Hex())

	sub.Method = call.Method
	sub.Hash = hash
	sub.From = s.sender.From()
	if sub.Value == nil {
		sub.Value = call.Value
	}
	sub.At = s.now()
	for _, hook := range s.hooks {
		hook(sub)
	}
	return hash, nil
}

func (s *Session) reject(op, method string, err error) *TxError {
	txErr := newTxError(op, err)
	s.setError(txErr.Reason)
	s.logger.Error("transaction fail", "op", op, "err", err)
	metrics.TxFailed.WithLabelValues(method).Inc()
	monitoring.Error(txErr, map[string]string{"op": op, "method": method})
	return txErr
}
