package contract

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAddress = "0x5FbDB2315678afecb367f032d93F642f64180aa3"

// fakeChain answers eth_call by decoding the selector and packing the
// matching output, the way a deployed contract would.
type fakeChain struct {
	abi       abi.ABI
	total     *big.Int
	proposals map[uint64]rawProposal
	failing   map[uint64]bool
	staked    map[common.Address]*big.Int
	minStake  *big.Int
	calls     []string
}

func newFakeChain(t *testing.T) *fakeChain {
	parsed, err := abi.JSON(strings.NewReader(GovernanceABI))
	require.NoError(t, err)
	return &fakeChain{
		abi:       parsed,
		total:     big.NewInt(0),
		proposals: map[uint64]rawProposal{},
		failing:   map[uint64]bool{},
		staked:    map[common.Address]*big.Int{},
		minStake:  big.NewInt(10),
	}
}

func (f *fakeChain) CodeAt(ctx context.Context, contract common.Address, blockNumber *big.Int) ([]byte, error) {
	return []byte{0x60}, nil
}

func (f *fakeChain) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	method, err := f.abi.MethodById(msg.Data[:4])
	if err != nil {
		return nil, err
	}
	args, err := method.Inputs.Unpack(msg.Data[4:])
	if err != nil {
		return nil, err
	}
	f.calls = append(f.calls, method.Name)
	switch method.Name {
	case MethodGetTotalProposals:
		return method.Outputs.Pack(f.total)
	case MethodGetProposal:
		id := args[0].(*big.Int).Uint64()
		if f.failing[id] {
			return nil, errors.New("execution reverted")
		}
		p, ok := f.proposals[id]
		if !ok {
			return nil, fmt.Errorf("proposal %d not found", id)
		}
		return method.Outputs.Pack(p)
	case MethodStakedTokens:
		addr := args[0].(common.Address)
		v, ok := f.staked[addr]
		if !ok {
			v = new(big.Int)
		}
		return method.Outputs.Pack(v)
	case MethodMinStake:
		return method.Outputs.Pack(f.minStake)
	}
	return nil, fmt.Errorf("unexpected call %s", method.Name)
}

func TestValidateAddress(t *testing.T) {
	assert.NoError(t, ValidateAddress(testAddress))
	assert.ErrorIs(t, ValidateAddress(""), ErrMissingContractAddress)
	for _, bad := range []string{
		"5FbDB2315678afecb367f032d93F642f64180aa3",
		"0x5FbDB2315678afecb367f032d93F642f64180aa",
		"0x5FbDB2315678afecb367f032d93F642f64180aa3a",
		"0xZZbDB2315678afecb367f032d93F642f64180aa3",
	} {
		assert.ErrorIs(t, ValidateAddress(bad), ErrInvalidContractAddress, bad)
	}
}

func TestNewRejectsMalformedAddressWithoutCalls(t *testing.T) {
	chain := newFakeChain(t)
	c, err := New("0x1234", chain)
	assert.Nil(t, c)
	assert.ErrorIs(t, err, ErrInvalidContractAddress)
	assert.Empty(t, chain.calls)
}

func TestReadProposal(t *testing.T) {
	chain := newFakeChain(t)
	chain.total = big.NewInt(1)
	chain.proposals[1] = rawProposal{
		Id:           big.NewInt(1),
		ProjectId:    big.NewInt(7),
		Title:        "Comparsa",
		Description:  "Costumes for the parade",
		VotesFor:     big.NewInt(300),
		VotesAgainst: big.NewInt(20),
		EndTime:      big.NewInt(1_900_000_000),
		Executed:     false,
		Passed:       true,
	}
	c, err := New(testAddress, chain)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(testAddress), c.Address())

	ctx := context.Background()
	total, err := c.TotalProposals(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)

	p, err := c.Proposal(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID.Int64())
	assert.Equal(t, int64(7), p.ProjectID.Int64())
	assert.Equal(t, "Comparsa", p.Title)
	assert.Equal(t, "Costumes for the parade", p.Description)
	assert.Equal(t, int64(300), p.VotesFor.Int64())
	assert.Equal(t, int64(20), p.VotesAgainst.Int64())
	assert.Equal(t, int64(1_900_000_000), p.EndTime.Int64())
	assert.False(t, p.Executed)
	assert.True(t, p.Passed)

	chain.failing[1] = true
	_, err = c.Proposal(ctx, 1)
	assert.Error(t, err)
}

func TestTotalProposalsOverflow(t *testing.T) {
	chain := newFakeChain(t)
	chain.total = new(big.Int).Lsh(big.NewInt(1), 70)
	c, err := New(testAddress, chain)
	require.NoError(t, err)
	_, err = c.TotalProposals(context.Background())
	assert.ErrorIs(t, err, ErrCounterOverflow)
}

func TestReadStake(t *testing.T) {
	chain := newFakeChain(t)
	voter := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	chain.staked[voter] = big.NewInt(5)
	c, err := New(testAddress, chain)
	require.NoError(t, err)

	ctx := context.Background()
	staked, err := c.StakedTokens(ctx, voter)
	require.NoError(t, err)
	assert.Equal(t, int64(5), staked.Int64())

	minStake, err := c.MinStakeToCreateProposal(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(10), minStake.Int64())
}

func TestPrepareCalls(t *testing.T) {
	chain := newFakeChain(t)
	c, err := New(testAddress, chain)
	require.NoError(t, err)

	stake, err := c.StakeCall(big.NewInt(1000))
	require.NoError(t, err)
	assert.Equal(t, MethodStakeTokens, stake.Method)
	assert.Equal(t, c.Address(), stake.To)
	assert.Equal(t, int64(1000), stake.Value.Int64())
	assert.Equal(t, c.ABI().Methods[MethodStakeTokens].ID, stake.Data)

	_, err = c.StakeCall(big.NewInt(0))
	assert.ErrorIs(t, err, ErrNonPositiveValue)
	_, err = c.StakeCall(nil)
	assert.ErrorIs(t, err, ErrNonPositiveValue)

	create, err := c.CreateProposalCall(big.NewInt(3), "Stage", "Main park stage")
	require.NoError(t, err)
	assert.Equal(t, 0, create.Value.Sign())
	parsed := c.ABI()
	method, err := parsed.MethodById(create.Data[:4])
	require.NoError(t, err)
	assert.Equal(t, MethodCreateProposal, method.Name)
	args, err := method.Inputs.Unpack(create.Data[4:])
	require.NoError(t, err)
	assert.Equal(t, int64(3), args[0].(*big.Int).Int64())
	assert.Equal(t, "Stage", args[1])
	assert.Equal(t, "Main park stage", args[2])

	vote, err := c.VoteCall(big.NewInt(9), true)
	require.NoError(t, err)
	method, err = parsed.MethodById(vote.Data[:4])
	require.NoError(t, err)
	assert.Equal(t, MethodVoteOnProposal, method.Name)
	args, err = method.Inputs.Unpack(vote.Data[4:])
	require.NoError(t, err)
	assert.Equal(t, int64(9), args[0].(*big.Int).Int64())
	assert.Equal(t, true, args[1])
}
