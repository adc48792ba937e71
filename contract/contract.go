package contract

import (
	"context"
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"

	"github.com/fiestadao/fiesta-gov/types"
)

var addressPattern = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)

// ValidateAddress checks the configured contract address before any call is made.
func ValidateAddress(address string) error {
	if address == "" {
		return ErrMissingContractAddress
	}
	if !addressPattern.MatchString(address) {
		return fmt.Errorf("%w: %q", ErrInvalidContractAddress, address)
	}
	return nil
}

// rawProposal mirrors the getProposal tuple so abi.ConvertType can copy it.
type rawProposal struct {
	Id           *big.Int
	ProjectId    *big.Int
	Title        string
	Description  string
	VotesFor     *big.Int
	VotesAgainst *big.Int
	EndTime      *big.Int
	Executed     bool
	Passed       bool
}

func (r rawProposal) proposal() types.Proposal {
	return types.Proposal{
		ID:           r.Id,
		ProjectID:    r.ProjectId,
		Title:        r.Title,
		Description:  r.Description,
		VotesFor:     r.VotesFor,
		VotesAgainst: r.VotesAgainst,
		EndTime:      r.EndTime,
		Executed:     r.Executed,
		Passed:       r.Passed,
	}
}

// Contract is a typed handle to the governance contract. Reads go through the
// caller; writes are only described here and submitted by a Sender.
type Contract struct {
	address common.Address
	abi     abi.ABI
	bound   *bind.BoundContract
}

func New(address string, caller bind.ContractCaller) (*Contract, error) {
	if err := ValidateAddress(address); err != nil {
		return nil, err
	}
	parsed, err := abi.JSON(strings.NewReader(GovernanceABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse governance ABI: %w", err)
	}
	addr := common.HexToAddress(address)
	return &Contract{
		address: addr,
		abi:     parsed,
		bound:   bind.NewBoundContract(addr, parsed, caller, nil, nil),
	}, nil
}

func (c *Contract) Address() common.Address {
	return c.address
}

func (c *Contract) ABI() abi.ABI {
	return c.abi
}

func (c *Contract) call(ctx context.Context, method string, params ...interface{}) ([]interface{}, error) {
	var out []interface{}
	err := c.bound.Call(&bind.CallOpts{Context: ctx}, &out, method, params...)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s: empty result", method)
	}
	return out, nil
}

func (c *Contract) callUint(ctx context.Context, method string, params ...interface{}) (*big.Int, error) {
	out, err := c.call(ctx, method, params...)
	if err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

// TotalProposals reads getTotalProposals. Ids are assumed to run 1..total.
func (c *Contract) TotalProposals(ctx context.Context) (uint64, error) {
	total, err := c.callUint(ctx, MethodGetTotalProposals)
	if err != nil {
		return 0, err
	}
	if !total.IsUint64() {
		return 0, fmt.Errorf("%w: %v", ErrCounterOverflow, total)
	}
	return total.Uint64(), nil
}

func (c *Contract) Proposal(ctx context.Context, id uint64) (types.Proposal, error) {
	out, err := c.call(ctx, MethodGetProposal, new(big.Int).SetUint64(id))
	if err != nil {
		return types.Proposal{}, err
	}
	raw := *abi.ConvertType(out[0], new(rawProposal)).(*rawProposal)
	return raw.proposal(), nil
}

func (c *Contract) StakedTokens(ctx context.Context, account common.Address) (*big.Int, error) {
	return c.callUint(ctx, MethodStakedTokens, account)
}

func (c *Contract) MinStakeToCreateProposal(ctx context.Context) (*big.Int, error) {
	return c.callUint(ctx, MethodMinStake)
}
