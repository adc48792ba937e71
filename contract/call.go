package contract

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

var ErrNonPositiveValue = errors.New("amount must be greater than 0")

// Call describes a state-changing contract call before it is signed.
type Call struct {
	Method string
	To     common.Address
	Data   []byte
	Value  *big.Int
}

// Sender submits prepared calls. It does not wait for confirmation.
type Sender interface {
	From() common.Address
	Send(ctx context.Context, call Call) (common.Hash, error)
}

func (c *Contract) prepare(method string, value *big.Int, params ...interface{}) (Call, error) {
	data, err := c.abi.Pack(method, params...)
	if err != nil {
		return Call{}, err
	}
	if value == nil {
		value = new(big.Int)
	}
	return Call{
		Method: method,
		To:     c.address,
		Data:   data,
		Value:  new(big.Int).Set(value),
	}, nil
}

// StakeCall builds stakeTokens() carrying amount as value.
func (c *Contract) StakeCall(amount *big.Int) (Call, error) {
	if amount == nil || amount.Sign() <= 0 {
		return Call{}, ErrNonPositiveValue
	}
	return c.prepare(MethodStakeTokens, amount)
}

func (c *Contract) CreateProposalCall(projectID *big.Int, title, description string) (Call, error) {
	return c.prepare(MethodCreateProposal, nil, projectID, title, description)
}

func (c *Contract) VoteCall(proposalID *big.Int, support bool) (Call, error) {
	return c.prepare(MethodVoteOnProposal, nil, proposalID, support)
}
