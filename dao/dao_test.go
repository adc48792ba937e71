package dao

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"time"

	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"

	"github.com/fiestadao/fiesta-gov/contract"
	"github.com/fiestadao/fiesta-gov/types"
)

var (
	testNow     = time.Unix(1_700_000_000, 0)
	testAccount = common.HexToAddress("0x00000000000000000000000000000000000000aa")
	testAddress = common.HexToAddress("0x1111111111111111111111111111111111111111")
)

type fakeGov struct {
	mtx sync.Mutex

	total     uint64
	totalErr  error
	proposals map[uint64]types.Proposal
	failing   map[uint64]error
	staked    map[common.Address]*big.Int
	minStake  *big.Int

	reads       []uint64
	stakedReads int
}

func newFakeGov() *fakeGov {
	return &fakeGov{
		proposals: map[uint64]types.Proposal{},
		failing:   map[uint64]error{},
		staked:    map[common.Address]*big.Int{},
		minStake:  big.NewInt(100),
	}
}

func (g *fakeGov) add(p types.Proposal) {
	g.proposals[p.ID.Uint64()] = p
	if p.ID.Uint64() > g.total {
		g.total = p.ID.Uint64()
	}
}

func (g *fakeGov) Address() common.Address {
	return testAddress
}

func (g *fakeGov) TotalProposals(ctx context.Context) (uint64, error) {
	return g.total, g.totalErr
}

func (g *fakeGov) Proposal(ctx context.Context, id uint64) (types.Proposal, error) {
	g.mtx.Lock()
	defer g.mtx.Unlock()
	g.reads = append(g.reads, id)
	if err, ok := g.failing[id]; ok {
		return types.Proposal{}, err
	}
	p, ok := g.proposals[id]
	if !ok {
		return types.Proposal{}, errors.New("execution reverted")
	}
	return p, nil
}

func (g *fakeGov) StakedTokens(ctx context.Context, account common.Address) (*big.Int, error) {
	g.mtx.Lock()
	defer g.mtx.Unlock()
	g.stakedReads++
	if v, ok := g.staked[account]; ok {
		return new(big.Int).Set(v), nil
	}
	return new(big.Int), nil
}

func (g *fakeGov) MinStakeToCreateProposal(ctx context.Context) (*big.Int, error) {
	return new(big.Int).Set(g.minStake), nil
}

func (g *fakeGov) StakeCall(amount *big.Int) (contract.Call, error) {
	return contract.Call{Method: contract.MethodStakeTokens, To: testAddress, Value: amount}, nil
}

func (g *fakeGov) CreateProposalCall(projectID *big.Int, title, description string) (contract.Call, error) {
	return contract.Call{Method: contract.MethodCreateProposal, To: testAddress, Value: new(big.Int)}, nil
}

func (g *fakeGov) VoteCall(proposalID *big.Int, support bool) (contract.Call, error) {
	return contract.Call{Method: contract.MethodVoteOnProposal, To: testAddress, Value: new(big.Int)}, nil
}

type fakeSender struct {
	from  common.Address
	err   error
	calls []contract.Call
}

func (s *fakeSender) From() common.Address {
	return s.from
}

func (s *fakeSender) Send(ctx context.Context, call contract.Call) (common.Hash, error) {
	s.calls = append(s.calls, call)
	if s.err != nil {
		return common.Hash{}, s.err
	}
	return common.BigToHash(big.NewInt(int64(len(s.calls)))), nil
}

// countingCaller fails the test run if the session ever reaches the chain.
type countingCaller struct {
	calls int
}

func (c *countingCaller) CodeAt(ctx context.Context, addr common.Address, blockNumber *big.Int) ([]byte, error) {
	c.calls++
	return nil, nil
}

func (c *countingCaller) CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	c.calls++
	return nil, nil
}

func proposal(id int64, endTime int64, executed bool) types.Proposal {
	return types.Proposal{
		ID:           big.NewInt(id),
		ProjectID:    big.NewInt(id * 10),
		Title:        "proposal",
		Description:  "description",
		VotesFor:     new(big.Int),
		VotesAgainst: new(big.Int),
		EndTime:      big.NewInt(endTime),
		Executed:     executed,
	}
}

func newTestSession(gov Governance, opts ...Option) *Session {
	opts = append([]Option{
		WithClock(func() time.Time { return testNow }),
		WithSleep(func(context.Context, time.Duration) error { return nil }),
	}, opts...)
	return NewSession(cmtlog.NewNopLogger(), gov, opts...)
}
