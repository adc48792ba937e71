package main

import (
	"context"
	"errors"
	"os"
	"time"

	cmtflags "github.com/cometbft/cometbft/libs/cli/flags"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/fiestadao/fiesta-gov/config"
	"github.com/fiestadao/fiesta-gov/contract"
	"github.com/fiestadao/fiesta-gov/crypto"
	"github.com/fiestadao/fiesta-gov/dao"
	"github.com/fiestadao/fiesta-gov/monitoring"
)

const dialTimeout = 10 * time.Second

// node bundles what every command needs to talk to the contract.
type node struct {
	cfg     *config.Config
	logger  cmtlog.Logger
	network config.Network
	client  *ethclient.Client
	key     *crypto.Key
	session *dao.Session
}

func loadConfig() (*config.Config, cmtlog.Logger, error) {
	cfg, err := config.Load(homeDir)
	if err != nil {
		return nil, nil, err
	}
	logger := cmtlog.NewTMLogger(cmtlog.NewSyncWriter(os.Stderr))
	logger, err = cmtflags.ParseLogLevel(cfg.LogLevel, logger, config.DefaultLogLevel)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// newNode dials the configured network and opens the session. A dial failure
// is not returned: the session carries it and every operation reports it.
func newNode(ctx context.Context, opts ...dao.Option) (*node, error) {
	cfg, logger, err := loadConfig()
	if err != nil {
		return nil, err
	}
	network, err := cfg.ResolveNetwork()
	if err != nil {
		return nil, err
	}
	if err := monitoring.Init(cfg.Monitoring.SentryDSN, network.Name); err != nil {
		logger.Error("init sentry fail", "err", err)
	} else if monitoring.Enabled() {
		logger.Info("sentry reporting enabled", "environment", network.Name)
	}
	n := &node{
		cfg:     cfg,
		logger:  logger,
		network: network,
	}
	n.key, err = crypto.LoadKeyFile(cfg.KeyFilePath())
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		logger.Debug("no wallet key, read only", "path", cfg.KeyFilePath())
	}

	opts = append([]dao.Option{dao.WithStakeSettleDelay(cfg.Wallet.StakeSettleDelay)}, opts...)
	dctx, cancel := context.WithTimeout(ctx, dialTimeout)
	client, err := contract.Dial(dctx, network, cfg.Contract.ClientID)
	cancel()
	if err != nil {
		logger.Error("dial rpc fail", "rpc", network.RPCURL, "err", err)
		n.session = dao.Unavailable(logger, err, opts...)
		return n, nil
	}
	n.client = client
	if n.key != nil {
		wallet := contract.NewKeyedWallet(n.key, network.ChainID, client, logger)
		opts = append(opts, dao.WithSender(wallet))
	}
	n.session = dao.Open(logger, cfg.Contract.Address, client, opts...)
	return n, nil
}

func (n *node) Close() {
	if n.client != nil {
		n.client.Close()
	}
	monitoring.Flush(2 * time.Second)
}

func commandContext(timeout string) (context.Context, context.CancelFunc, error) {
	d, err := time.ParseDuration(timeout)
	if err != nil {
		return nil, nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), d)
	return ctx, cancel, nil
}
