package contract

import "errors"

var (
	ErrMissingContractAddress = errors.New("contract address is not configured")
	ErrInvalidContractAddress = errors.New("invalid contract address format")
	ErrNoActiveChain          = errors.New("no active chain detected")
	ErrWrongNetwork           = errors.New("connected to the wrong network")
	ErrCounterOverflow        = errors.New("proposal counter exceeds uint64")
)
