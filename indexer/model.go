package indexer

import (
	"math/big"
	"time"

	"github.com/fiestadao/fiesta-gov/dao"
	"github.com/fiestadao/fiesta-gov/types"
)

// sqlite models

// ProposalRecord is the last observed state of a proposal. uint256 values
// are kept as decimal strings.
type ProposalRecord struct {
	Id           uint64 `gorm:"primaryKey" json:"id"`
	ProjectId    string `json:"projectId"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	VotesFor     string `json:"votesFor"`
	VotesAgainst string `json:"votesAgainst"`
	EndTime      string `json:"endTime"`
	Executed     bool   `json:"executed"`
	Passed       bool   `json:"passed"`
	Active       bool   `json:"active"`
	Status       string `json:"status"`
	ObservedAt   int64  `json:"observedAt"`
}

type SyncState struct {
	Id       uint64 `gorm:"primaryKey" json:"-"`
	Total    uint64 `json:"total"`
	Failed   uint64 `json:"failed"`
	LastSync int64  `json:"lastSync"`
}

// TxRecord journals a transaction submitted through this node.
type TxRecord struct {
	Id              uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Hash            string `json:"hash"`
	Method          string `json:"method"`
	Address         string `json:"address"`
	Value           string `json:"value"`
	ProposalId      string `json:"proposalId,omitempty"`
	ProjectId       string `json:"projectId,omitempty"`
	Title           string `json:"title,omitempty"`
	Support         bool   `json:"support"`
	CreateTimestamp int64  `json:"createTimestamp"`
}

func bigString(v *big.Int) string {
	if v == nil {
		return ""
	}
	return v.String()
}

func newProposalRecord(p types.Proposal, observed time.Time) ProposalRecord {
	return ProposalRecord{
		Id:           p.ID.Uint64(),
		ProjectId:    bigString(p.ProjectID),
		Title:        p.Title,
		Description:  p.Description,
		VotesFor:     bigString(p.VotesFor),
		VotesAgainst: bigString(p.VotesAgainst),
		EndTime:      bigString(p.EndTime),
		Executed:     p.Executed,
		Passed:       p.Passed,
		Active:       p.IsActive(observed),
		Status:       p.Status(observed).String(),
		ObservedAt:   observed.Unix(),
	}
}

func newTxRecord(sub dao.Submission) TxRecord {
	return TxRecord{
		Hash:            sub.Hash.Hex(),
		Method:          sub.Method,
		Address:         sub.From.Hex(),
		Value:           bigString(sub.Value),
		ProposalId:      bigString(sub.ProposalID),
		ProjectId:       bigString(sub.ProjectID),
		Title:           sub.Title,
		Support:         sub.Support,
		CreateTimestamp: sub.At.Unix(),
	}
}
