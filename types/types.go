package types

const (
	TxKindStake          = "stake"
	TxKindCreateProposal = "create_proposal"
	TxKindVote           = "vote"
)

const (
	FlagHome      = "home"
	FlagOverwrite = "overwrite"
	FlagNetwork   = "network"
	FlagContract  = "contract"
)

const DefaultPageSize = 20
