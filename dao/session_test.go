package dao

import (
	"context"
	"math/big"
	"testing"

	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiestadao/fiesta-gov/contract"
)

func TestOpenNotInitialized(t *testing.T) {
	tests := []struct {
		name    string
		address string
		caller  *countingCaller
		cause   error
	}{
		{"no chain", "0x1111111111111111111111111111111111111111", nil, contract.ErrNoActiveChain},
		{"missing address", "", &countingCaller{}, contract.ErrMissingContractAddress},
		{"bad address", "0x1234", &countingCaller{}, contract.ErrInvalidContractAddress},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &fakeSender{from: testAccount}
			var s *Session
			if tt.caller == nil {
				s = Open(cmtlog.NewNopLogger(), tt.address, nil, WithSender(sender))
			} else {
				s = Open(cmtlog.NewNopLogger(), tt.address, tt.caller, WithSender(sender))
			}
			require.ErrorIs(t, s.Err(), ErrNotInitialized)
			require.ErrorIs(t, s.Err(), tt.cause)

			ctx := context.Background()
			_, err := s.ActiveProposals(ctx)
			assert.ErrorIs(t, err, tt.cause)
			_, err = s.ScanProposals(ctx)
			assert.ErrorIs(t, err, ErrNotInitialized)
			_, err = s.RefreshVotingPower(ctx)
			assert.ErrorIs(t, err, ErrNotInitialized)
			_, err = s.PowerOf(ctx, testAccount)
			assert.ErrorIs(t, err, ErrNotInitialized)
			_, err = s.Stake(ctx, big.NewInt(1))
			assert.ErrorIs(t, err, ErrNotInitialized)
			_, err = s.CreateProposal(ctx, big.NewInt(1), "t", "d")
			assert.ErrorIs(t, err, ErrNotInitialized)
			_, err = s.Vote(ctx, big.NewInt(1), true)
			assert.ErrorIs(t, err, ErrNotInitialized)
			assert.ErrorIs(t, s.Unstake(ctx), ErrNotInitialized)

			assert.Empty(t, sender.calls)
			if tt.caller != nil {
				assert.Zero(t, tt.caller.calls)
			}
			state := s.State()
			assert.False(t, state.Connected)
			assert.Contains(t, state.ContractError, tt.cause.Error())
		})
	}
}

func TestOpenValidAddressIsLazy(t *testing.T) {
	caller := &countingCaller{}
	s := Open(cmtlog.NewNopLogger(), "0x1111111111111111111111111111111111111111", caller)
	require.NoError(t, s.Err())
	assert.Equal(t, testAddress, s.Contract())
	assert.True(t, s.State().Connected)
	assert.Zero(t, caller.calls)
}

func TestUnavailable(t *testing.T) {
	s := Unavailable(cmtlog.NewNopLogger(), contract.ErrWrongNetwork)
	_, err := s.ActiveProposals(context.Background())
	assert.ErrorIs(t, err, contract.ErrWrongNetwork)
	assert.ErrorIs(t, err, ErrNotInitialized)
}
