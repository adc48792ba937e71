package indexer

import (
	"context"
	"errors"
	"math/big"
	"net/http"
	"time"

	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"

	"github.com/fiestadao/fiesta-gov/config"
	"github.com/fiestadao/fiesta-gov/dao"
	"github.com/fiestadao/fiesta-gov/metrics"
	"github.com/fiestadao/fiesta-gov/types"
)

const maxPageSize = 100

// BalanceReader is satisfied by *ethclient.Client.
type BalanceReader interface {
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
}

type Service struct {
	logger   cmtlog.Logger
	engine   *gin.Engine
	server   *http.Server
	network  config.Network
	session  *dao.Session
	archive  *Archive
	balances BalanceReader
}

func NewService(logger cmtlog.Logger, listenAddr string, network config.Network, session *dao.Session, archive *Archive, balances BalanceReader) *Service {
	r := gin.Default()
	s := &Service{
		logger:   logger.With("module", "api"),
		engine:   r,
		network:  network,
		session:  session,
		archive:  archive,
		balances: balances,
	}
	s.server = &http.Server{
		Addr:    listenAddr,
		Handler: r,
	}
	s.engine.GET("/network", s.handleGetNetwork)
	s.engine.GET("/treasury", s.handleGetTreasury)
	s.engine.GET("/metrics", gin.WrapH(metrics.Handler()))
	s.engine.POST("/getActiveProposals", s.handleGetActiveProposals)
	s.engine.POST("/getProposals", s.handleGetProposals)
	s.engine.POST("/getVotingPower", s.handleGetVotingPower)
	s.engine.POST("/getTxs", s.handleGetTxs)
	s.engine.POST("/stake", s.handleStake)
	s.engine.POST("/createProposal", s.handleCreateProposal)
	s.engine.POST("/vote", s.handleVote)
	return s
}

func (s *Service) Handler() http.Handler {
	return s.engine
}

// Start serves until Shutdown is called.
func (s *Service) Start() error {
	s.logger.Info("api listening", "addr", s.server.Addr)
	err := s.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Service) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func pageArgs(page, pageSize int) (int, int) {
	if page < 0 {
		page = 0
	}
	if pageSize <= 0 {
		pageSize = types.DefaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

func (s *Service) writeError(c *gin.Context, err error) {
	var txErr *dao.TxError
	switch {
	case errors.Is(err, dao.ErrNotInitialized), errors.Is(err, dao.ErrNoWallet):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case errors.As(err, &txErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": txErr.Reason, "op": txErr.Op})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

type NetworkResponse struct {
	config.Network
	Contract string `json:"contract"`
}

func (s *Service) handleGetNetwork(c *gin.Context) {
	c.JSON(http.StatusOK, NetworkResponse{
		Network:  s.network,
		Contract: s.session.Contract().Hex(),
	})
}

type GetActiveProposalsResponse struct {
	Proposals []types.Proposal `json:"proposals"`
	Total     int              `json:"total"`
}

func (s *Service) handleGetActiveProposals(c *gin.Context) {
	proposals, err := s.session.ActiveProposals(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, GetActiveProposalsResponse{
		Proposals: proposals,
		Total:     len(proposals),
	})
}

type GetProposalsReq struct {
	ProposalId uint64 `json:"proposalId"`
	Page       int    `json:"page"`
	PageSize   int    `json:"pageSize"`
}

type GetProposalsResponse struct {
	Proposals []ProposalRecord `json:"proposals"`
	Total     uint64           `json:"total"`
	Sync      *SyncState       `json:"sync,omitempty"`
}

func (s *Service) handleGetProposals(c *gin.Context) {
	var response GetProposalsResponse
	response.Proposals = make([]ProposalRecord, 0)
	var requestData GetProposalsReq
	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if st, ok, err := s.archive.SyncState(); err == nil && ok {
		response.Sync = &st
	}

	if requestData.ProposalId != 0 {
		proposal, err := s.archive.getProposalById(requestData.ProposalId)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "proposal not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		response.Proposals = append(response.Proposals, proposal)
		response.Total = 1
		c.JSON(http.StatusOK, response)
		return
	}

	page, pageSize := pageArgs(requestData.Page, requestData.PageSize)
	proposals, total, err := s.archive.getProposals(page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	response.Proposals = append(response.Proposals, proposals...)
	response.Total = total
	c.JSON(http.StatusOK, response)
}

type GetVotingPowerReq struct {
	Address string `json:"address"`
}

type VotingPowerResponse struct {
	Address    string `json:"address"`
	Staked     string `json:"staked"`
	MinStake   string `json:"minStake"`
	CanPropose bool   `json:"canPropose"`
	CanVote    bool   `json:"canVote"`
}

func (s *Service) handleGetVotingPower(c *gin.Context) {
	var requestData GetVotingPowerReq
	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var (
		power dao.Power
		err   error
	)
	if requestData.Address == "" {
		power, err = s.session.RefreshVotingPower(c.Request.Context())
	} else {
		if !common.IsHexAddress(requestData.Address) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address"})
			return
		}
		power, err = s.session.PowerOf(c.Request.Context(), common.HexToAddress(requestData.Address))
	}
	if errors.Is(err, dao.ErrNoAccount) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "address is required"})
		return
	}
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, VotingPowerResponse{
		Address:    power.Address.Hex(),
		Staked:     power.Staked.String(),
		MinStake:   power.MinStake.String(),
		CanPropose: power.CanPropose(),
		CanVote:    power.CanVote(),
	})
}

type TreasuryResponse struct {
	Address   string `json:"address"`
	Balance   string `json:"balance"`
	Formatted string `json:"formatted"`
	Symbol    string `json:"symbol"`
	Explorer  string `json:"explorer"`
}

func (s *Service) handleGetTreasury(c *gin.Context) {
	if err := s.session.Err(); err != nil {
		s.writeError(c, err)
		return
	}
	addr := s.session.Contract()
	balance, err := s.balances.BalanceAt(c.Request.Context(), addr, nil)
	if err != nil {
		s.logger.Error("get treasury balance fail", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, TreasuryResponse{
		Address:   addr.Hex(),
		Balance:   balance.String(),
		Formatted: s.network.FormatAmount(balance),
		Symbol:    s.network.NativeCurrency.Symbol,
		Explorer:  s.network.AddressURL(addr),
	})
}

type TxResponse struct {
	Hash     string `json:"hash"`
	Explorer string `json:"explorer"`
}

func (s *Service) txResponse(hash common.Hash) TxResponse {
	return TxResponse{
		Hash:     hash.Hex(),
		Explorer: s.network.TxURL(hash),
	}
}

type StakeReq struct {
	Amount string `json:"amount" binding:"required"`
}

func (s *Service) handleStake(c *gin.Context) {
	var requestData StakeReq
	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	amount, err := s.network.ParseAmount(requestData.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	hash, err := s.session.Stake(c.Request.Context(), amount)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.txResponse(hash))
}

type CreateProposalReq struct {
	ProjectId   uint64 `json:"projectId"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (s *Service) handleCreateProposal(c *gin.Context) {
	var requestData CreateProposalReq
	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	projectID := new(big.Int).SetUint64(requestData.ProjectId)
	hash, err := s.session.CreateProposal(c.Request.Context(), projectID, requestData.Title, requestData.Description)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.txResponse(hash))
}

type VoteReq struct {
	ProposalId uint64 `json:"proposalId"`
	Support    bool   `json:"support"`
}

func (s *Service) handleVote(c *gin.Context) {
	var requestData VoteReq
	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	proposalID := new(big.Int).SetUint64(requestData.ProposalId)
	hash, err := s.session.Vote(c.Request.Context(), proposalID, requestData.Support)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.txResponse(hash))
}

type GetTxsReq struct {
	Address  string `json:"address"`
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
}

type GetTxsResponse struct {
	Txs   []TxRecord `json:"txs"`
	Total uint64     `json:"total"`
}

func (s *Service) handleGetTxs(c *gin.Context) {
	var response GetTxsResponse
	response.Txs = make([]TxRecord, 0)
	var requestData GetTxsReq
	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	address := ""
	if requestData.Address != "" {
		if !common.IsHexAddress(requestData.Address) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address"})
			return
		}
		address = common.HexToAddress(requestData.Address).Hex()
	}
	page, pageSize := pageArgs(requestData.Page, requestData.PageSize)
	txs, total, err := s.archive.getTxs(address, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	response.Txs = append(response.Txs, txs...)
	response.Total = total
	c.JSON(http.StatusOK, response)
}

// shutdownTimeout bounds Shutdown when the caller passes no deadline.
const shutdownTimeout = 5 * time.Second

// Stop shuts the server down within shutdownTimeout.
func (s *Service) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.Shutdown(ctx)
}
