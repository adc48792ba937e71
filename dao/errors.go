package dao

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotInitialized        = errors.New("contract not initialized")
	ErrNoWallet              = errors.New("no wallet configured")
	ErrNoAccount             = errors.New("no account connected")
	ErrEmptyTitle            = errors.New("title must not be empty")
	ErrEmptyDescription      = errors.New("description must not be empty")
	ErrInvalidProposalID     = errors.New("proposal id must be at least 1")
	ErrInvalidProjectID      = errors.New("project id must not be negative")
	ErrUnstakeNotImplemented = errors.New("unstaking is not supported by this client yet")
)

const insufficientFundsReason = "insufficient funds to cover the amount plus network fees"

// TxError is a rejected stake, proposal or vote. Reason is meant for display.
type TxError struct {
	Op     string
	Reason string
	Err    error
}

func newTxError(op string, err error) *TxError {
	reason := err.Error()
	if strings.Contains(strings.ToLower(reason), "insufficient funds") {
		reason = insufficientFundsReason
	}
	return &TxError{
		Op:     op,
		Reason: reason,
		Err:    err,
	}
}

func (e *TxError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func (e *TxError) Unwrap() error {
	return e.Err
}
