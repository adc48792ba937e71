package indexer

import (
	"errors"
	"os"
	"path/filepath"

	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"

	"github.com/fiestadao/fiesta-gov/dao"
)

const syncStateID = 1

// Archive is the sqlite store behind the indexer and the API.
type Archive struct {
	db *gorm.DB
}

func OpenArchive(dbPath string) (*Archive, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}
	db, err := gorm.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&ProposalRecord{}, &SyncState{}, &TxRecord{}).Error; err != nil {
		db.Close()
		return nil, err
	}
	return &Archive{db: db}, nil
}

func (a *Archive) Close() error {
	return a.db.Close()
}

func (a *Archive) saveProposal(rec *ProposalRecord) error {
	return a.db.Save(rec).Error
}

func (a *Archive) saveSyncState(st SyncState) error {
	st.Id = syncStateID
	return a.db.Save(&st).Error
}

func (a *Archive) saveTx(rec *TxRecord) error {
	return a.db.Create(rec).Error
}

// RecordTx journals sub. It is registered with dao.WithSubmitHook and logs
// instead of failing the caller.
func (a *Archive) RecordTx(logger cmtlog.Logger, sub dao.Submission) {
	rec := newTxRecord(sub)
	if err := a.saveTx(&rec); err != nil {
		logger.Error("save tx fail", "hash", rec.Hash, "err", err)
	}
}

// SyncState returns the last sync round. ok is false before the first one.
func (a *Archive) SyncState() (st SyncState, ok bool, err error) {
	err = a.db.Where("id = ?", syncStateID).First(&st).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return SyncState{}, false, nil
	}
	if err != nil {
		return SyncState{}, false, err
	}
	return st, true, nil
}

func (a *Archive) getProposals(page int, pageSize int) ([]ProposalRecord, uint64, error) {
	var proposals []ProposalRecord
	err := a.db.Order("id desc").Offset(page * pageSize).Limit(pageSize).Find(&proposals).Error
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	err = a.db.Model(&ProposalRecord{}).Count(&total).Error
	if err != nil {
		return nil, 0, err
	}
	return proposals, total, nil
}

func (a *Archive) getProposalById(proposalId uint64) (ProposalRecord, error) {
	var proposal ProposalRecord
	err := a.db.Where("id = ?", proposalId).First(&proposal).Error
	if err != nil {
		return ProposalRecord{}, err
	}
	return proposal, nil
}

func (a *Archive) getTxs(address string, page int, pageSize int) ([]TxRecord, uint64, error) {
	q := a.db.Model(&TxRecord{})
	if address != "" {
		q = q.Where("address = ?", address)
	}
	var txs []TxRecord
	err := q.Order("id desc").Offset(page * pageSize).Limit(pageSize).Find(&txs).Error
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	err = q.Count(&total).Error
	if err != nil {
		return nil, 0, err
	}
	return txs, total, nil
}
