package dao

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"

	"github.com/fiestadao/fiesta-gov/contract"
	"github.com/fiestadao/fiesta-gov/types"
)

// Governance is the contract surface the session drives.
type Governance interface {
	ProposalReader
	Address() common.Address
	TotalProposals(ctx context.Context) (uint64, error)
	StakedTokens(ctx context.Context, account common.Address) (*big.Int, error)
	MinStakeToCreateProposal(ctx context.Context) (*big.Int, error)
	StakeCall(amount *big.Int) (contract.Call, error)
	CreateProposalCall(projectID *big.Int, title, description string) (contract.Call, error)
	VoteCall(proposalID *big.Int, support bool) (contract.Call, error)
}

var _ Governance = &contract.Contract{}

// DefaultMinStakeToPropose is shown until the contract constant has been read.
var DefaultMinStakeToPropose = new(big.Int).Mul(big.NewInt(10), new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))

// Submission describes a transaction handed to the wallet.
type Submission struct {
	Method     string
	Hash       common.Hash
	From       common.Address
	Value      *big.Int
	ProposalID *big.Int
	ProjectID  *big.Int
	Support    bool
	Title      string
	At         time.Time
}

type Option func(*Session)

func WithSender(sender contract.Sender) Option {
	return func(s *Session) {
		s.sender = sender
	}
}

// WithAccount sets the address whose voting power is tracked. It defaults to
// the sender's address.
func WithAccount(account common.Address) Option {
	return func(s *Session) {
		s.account = &account
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

func WithStakeSettleDelay(d time.Duration) Option {
	return func(s *Session) {
		s.settleDelay = d
	}
}

func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(s *Session) {
		s.sleep = sleep
	}
}

func WithSubmitHook(hook func(Submission)) Option {
	return func(s *Session) {
		s.hooks = append(s.hooks, hook)
	}
}

// Session holds the contract handle together with the state a dashboard
// renders. Network reads run unlocked; state updates take mtx and
// transactions are serialised through txMtx.
type Session struct {
	logger cmtlog.Logger

	gov     Governance
	initErr error
	sender  contract.Sender
	account *common.Address

	now         func() time.Time
	sleep       func(ctx context.Context, d time.Duration) error
	settleDelay time.Duration
	hooks       []func(Submission)

	txMtx sync.Mutex

	mtx     sync.RWMutex
	power   Power
	active  []types.Proposal
	loading int
	lastErr string
}

// Snapshot is a copy of the session state.
type Snapshot struct {
	Contract        common.Address   `json:"contract"`
	Connected       bool             `json:"connected"`
	ContractError   string           `json:"contractError,omitempty"`
	Account         *common.Address  `json:"account,omitempty"`
	Power           Power            `json:"power"`
	ActiveProposals []types.Proposal `json:"activeProposals"`
	Loading         bool             `json:"loading"`
	Error           string           `json:"error,omitempty"`
}

func newSession(logger cmtlog.Logger, gov Governance, initErr error, opts ...Option) *Session {
	s := &Session{
		logger:      logger.With("module", "session"),
		gov:         gov,
		initErr:     initErr,
		now:         time.Now,
		sleep:       sleepContext,
		settleDelay: 2 * time.Second,
		active:      []types.Proposal{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.power = Power{
		Staked:   new(big.Int),
		MinStake: new(big.Int).Set(DefaultMinStakeToPropose),
	}
	if acct, ok := s.accountAddress(); ok {
		s.power.Address = acct
	}
	if initErr != nil {
		s.logger.Error("contract init fail", "err", initErr)
		s.lastErr = initErr.Error()
	}
	return s
}

func NewSession(logger cmtlog.Logger, gov Governance, opts ...Option) *Session {
	return newSession(logger, gov, nil, opts...)
}

// Open binds the governance contract at address. Init failures, such as a
// missing chain or a malformed address, are kept on the session and returned
// by every operation without touching the network.
func Open(logger cmtlog.Logger, address string, caller bind.ContractCaller, opts ...Option) *Session {
	if caller == nil {
		return newSession(logger, nil, contract.ErrNoActiveChain, opts...)
	}
	gov, err := contract.New(address, caller)
	if err != nil {
		return newSession(logger, nil, err, opts...)
	}
	return newSession(logger, gov, nil, opts...)
}

// Unavailable returns a session whose every operation fails with cause.
func Unavailable(logger cmtlog.Logger, cause error, opts ...Option) *Session {
	return newSession(logger, nil, cause, opts...)
}

func (s *Session) ready() (Governance, error) {
	if s.initErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotInitialized, s.initErr)
	}
	if s.gov == nil {
		return nil, ErrNotInitialized
	}
	return s.gov, nil
}

// Err returns the initialisation error, if any.
func (s *Session) Err() error {
	_, err := s.ready()
	return err
}

func (s *Session) Contract() common.Address {
	if s.gov == nil {
		return common.Address{}
	}
	return s.gov.Address()
}

func (s *Session) accountAddress() (common.Address, bool) {
	if s.account != nil {
		return *s.account, true
	}
	if s.sender != nil {
		return s.sender.From(), true
	}
	return common.Address{}, false
}

func (s *Session) State() Snapshot {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	snap := Snapshot{
		Contract:        s.Contract(),
		Connected:       s.initErr == nil && s.gov != nil,
		Power:           s.power.clone(),
		ActiveProposals: copyProposals(s.active),
		Loading:         s.loading > 0,
		Error:           s.lastErr,
	}
	if s.initErr != nil {
		snap.ContractError = s.initErr.Error()
	}
	if acct, ok := s.accountAddress(); ok {
		snap.Account = &acct
	}
	return snap
}

func (s *Session) begin() {
	s.mtx.Lock()
	s.loading++
	s.lastErr = ""
	s.mtx.Unlock()
}

func (s *Session) end() {
	s.mtx.Lock()
	s.loading--
	s.mtx.Unlock()
}

func (s *Session) setError(msg string) {
	s.mtx.Lock()
	s.lastErr = msg
	s.mtx.Unlock()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
