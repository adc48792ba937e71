package dao

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Power is an account's stake measured against the proposal threshold.
type Power struct {
	Address  common.Address `json:"address"`
	Staked   *big.Int       `json:"staked"`
	MinStake *big.Int       `json:"minStake"`
}

// CanPropose reports whether the stake meets the threshold. A stake exactly
// equal to the minimum qualifies.
func (p Power) CanPropose() bool {
	if p.Staked == nil || p.MinStake == nil {
		return false
	}
	return p.Staked.Cmp(p.MinStake) >= 0
}

func (p Power) CanVote() bool {
	return p.Staked != nil && p.Staked.Sign() > 0
}

func (p Power) clone() Power {
	c := Power{Address: p.Address}
	if p.Staked != nil {
		c.Staked = new(big.Int).Set(p.Staked)
	}
	if p.MinStake != nil {
		c.MinStake = new(big.Int).Set(p.MinStake)
	}
	return c
}

// PowerOf reads the stake of account and the current proposal threshold.
func (s *Session) PowerOf(ctx context.Context, account common.Address) (Power, error) {
	gov, err := s.ready()
	if err != nil {
		return Power{}, err
	}
	staked, err := gov.StakedTokens(ctx, account)
	if err != nil {
		return Power{}, fmt.Errorf("get staked tokens: %w", err)
	}
	minStake, err := gov.MinStakeToCreateProposal(ctx)
	if err != nil {
		return Power{}, fmt.Errorf("get min stake: %w", err)
	}
	return Power{
		Address:  account,
		Staked:   staked,
		MinStake: minStake,
	}, nil
}

// RefreshVotingPower re-reads the connected account's power and stores it in
// the session state.
func (s *Session) RefreshVotingPower(ctx context.Context) (Power, error) {
	if _, err := s.ready(); err != nil {
		s.setError(err.Error())
		return Power{}, err
	}
	account, ok := s.accountAddress()
	if !ok {
		return Power{}, ErrNoAccount
	}
	s.begin()
	defer s.end()

	power, err := s.PowerOf(ctx, account)
	if err != nil {
		s.logger.Error("get voting power fail", "account", account, "err", err)
		s.setError("failed to fetch voting power")
		return Power{}, err
	}
	s.mtx.Lock()
	s.power = power.clone()
	s.mtx.Unlock()
	return power, nil
}
