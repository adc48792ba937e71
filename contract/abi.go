package contract

// GovernanceABI is the subset of the governance contract the client calls.
const GovernanceABI = `[
	{"type":"function","name":"getTotalProposals","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"getProposal","stateMutability":"view","inputs":[{"name":"proposalId","type":"uint256"}],"outputs":[{"name":"","type":"tuple","components":[
		{"name":"id","type":"uint256"},
		{"name":"projectId","type":"uint256"},
		{"name":"title","type":"string"},
		{"name":"description","type":"string"},
		{"name":"votesFor","type":"uint256"},
		{"name":"votesAgainst","type":"uint256"},
		{"name":"endTime","type":"uint256"},
		{"name":"executed","type":"bool"},
		{"name":"passed","type":"bool"}
	]}]},
	{"type":"function","name":"stakedTokens","stateMutability":"view","inputs":[{"name":"","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"MIN_STAKE_TO_CREATE_PROPOSAL","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"createProposal","stateMutability":"nonpayable","inputs":[{"name":"projectId","type":"uint256"},{"name":"title","type":"string"},{"name":"description","type":"string"}],"outputs":[]},
	{"type":"function","name":"voteOnProposal","stateMutability":"nonpayable","inputs":[{"name":"proposalId","type":"uint256"},{"name":"support","type":"bool"}],"outputs":[]},
	{"type":"function","name":"stakeTokens","stateMutability":"payable","inputs":[],"outputs":[]}
]`

const (
	MethodGetTotalProposals = "getTotalProposals"
	MethodGetProposal       = "getProposal"
	MethodStakedTokens      = "stakedTokens"
	MethodMinStake          = "MIN_STAKE_TO_CREATE_PROPOSAL"
	MethodCreateProposal    = "createProposal"
	MethodVoteOnProposal    = "voteOnProposal"
	MethodStakeTokens       = "stakeTokens"
)
