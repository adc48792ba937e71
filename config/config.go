package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	eth_crypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "FIESTA"

	DefaultLogLevel          = "info"
	DefaultClientID          = "development-client-id"
	DefaultListenAddress     = "127.0.0.1:8080"
	DefaultPollInterval      = 15 * time.Second
	DefaultStakeSettleDelay  = 2 * time.Second
	DefaultKeyFile           = "config/owner_priv_key"
	DefaultArchiveDB         = "data/archive.db"
	DefaultConfigFileRelPath = "config/config.toml"
)

type NetworkConfig struct {
	Name     string `mapstructure:"name"`
	ChainID  uint64 `mapstructure:"chain_id"`
	RPC      string `mapstructure:"rpc"`
	Explorer string `mapstructure:"explorer"`
}

type ContractConfig struct {
	Address  string `mapstructure:"address"`
	ClientID string `mapstructure:"client_id"`
}

type WalletConfig struct {
	KeyFile          string        `mapstructure:"key_file"`
	StakeSettleDelay time.Duration `mapstructure:"stake_settle_delay"`
}

type APIConfig struct {
	ListenAddress string `mapstructure:"listen_address"`
}

type IndexerConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	DBPath       string        `mapstructure:"db_path"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

type MonitoringConfig struct {
	SentryDSN string `mapstructure:"sentry_dsn"`
}

type Config struct {
	Home string `mapstructure:"-"`

	LogLevel   string           `mapstructure:"log_level"`
	Network    NetworkConfig    `mapstructure:"network"`
	Contract   ContractConfig   `mapstructure:"contract"`
	Wallet     WalletConfig     `mapstructure:"wallet"`
	API        APIConfig        `mapstructure:"api"`
	Indexer    IndexerConfig    `mapstructure:"indexer"`
	Monitoring MonitoringConfig `mapstructure:"monitoring"`
}

func DefaultHome() string {
	return os.ExpandEnv("$HOME/.fiesta")
}

func DefaultConfig(home string) *Config {
	if len(home) == 0 {
		home = DefaultHome()
	}
	return &Config{
		Home:     home,
		LogLevel: DefaultLogLevel,
		Network: NetworkConfig{
			Name: DefaultNetwork,
		},
		Contract: ContractConfig{
			ClientID: DefaultClientID,
		},
		Wallet: WalletConfig{
			KeyFile:          DefaultKeyFile,
			StakeSettleDelay: DefaultStakeSettleDelay,
		},
		API: APIConfig{
			ListenAddress: DefaultListenAddress,
		},
		Indexer: IndexerConfig{
			Enabled:      true,
			DBPath:       DefaultArchiveDB,
			PollInterval: DefaultPollInterval,
		},
	}
}

func (cfg *Config) ConfigFile() string {
	return filepath.Join(cfg.Home, DefaultConfigFileRelPath)
}

func (cfg *Config) KeyFilePath() string {
	return cfg.rooted(cfg.Wallet.KeyFile)
}

func (cfg *Config) ArchiveDBPath() string {
	return cfg.rooted(cfg.Indexer.DBPath)
}

func (cfg *Config) rooted(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(cfg.Home, p)
}

// ResolveNetwork starts from the named built-in network and applies any
// explicitly configured overrides. A custom network needs chain_id and rpc.
func (cfg *Config) ResolveNetwork() (Network, error) {
	n, ok := LookupNetwork(cfg.Network.Name)
	if !ok {
		if cfg.Network.Name != "" && (cfg.Network.ChainID == 0 || cfg.Network.RPC == "") {
			return Network{}, fmt.Errorf("%w: %q", ErrUnknownNetwork, cfg.Network.Name)
		}
		n = Network{Name: cfg.Network.Name, NativeCurrency: NativeCurrency{Decimals: 18}}
	}
	if cfg.Network.ChainID != 0 {
		n.ChainID = cfg.Network.ChainID
	}
	if cfg.Network.RPC != "" {
		n.RPCURL = cfg.Network.RPC
	}
	if cfg.Network.Explorer != "" {
		n.ExplorerURL = cfg.Network.Explorer
	}
	return n, nil
}

func (cfg *Config) ValidateBasic() error {
	if cfg.LogLevel == "" {
		return errors.New("log_level must not be empty")
	}
	if _, err := cfg.ResolveNetwork(); err != nil {
		return err
	}
	if cfg.Contract.ClientID == "" {
		return errors.New("contract.client_id must not be empty")
	}
	if cfg.API.ListenAddress == "" {
		return errors.New("api.listen_address must not be empty")
	}
	if cfg.Wallet.StakeSettleDelay < 0 {
		return fmt.Errorf("wallet.stake_settle_delay cannot be negative (got %v)", cfg.Wallet.StakeSettleDelay)
	}
	if cfg.Indexer.Enabled && cfg.Indexer.PollInterval <= 0 {
		return fmt.Errorf("indexer.poll_interval must be positive (got %v)", cfg.Indexer.PollInterval)
	}
	return nil
}

// Load reads home/config/config.toml when present and overlays FIESTA_*
// environment variables, e.g. FIESTA_CONTRACT_ADDRESS.
func Load(home string) (*Config, error) {
	cfg := DefaultConfig(home)
	v := viper.New()
	v.SetConfigFile(cfg.ConfigFile())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, cfg)

	if _, err := os.Stat(cfg.ConfigFile()); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("invalid configuration data: %w", err)
	}
	return cfg, nil
}

// Every key needs a default, otherwise AutomaticEnv never sees it on Unmarshal.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("network.name", cfg.Network.Name)
	v.SetDefault("network.chain_id", cfg.Network.ChainID)
	v.SetDefault("network.rpc", cfg.Network.RPC)
	v.SetDefault("network.explorer", cfg.Network.Explorer)
	v.SetDefault("contract.address", cfg.Contract.Address)
	v.SetDefault("contract.client_id", cfg.Contract.ClientID)
	v.SetDefault("wallet.key_file", cfg.Wallet.KeyFile)
	v.SetDefault("wallet.stake_settle_delay", cfg.Wallet.StakeSettleDelay)
	v.SetDefault("api.listen_address", cfg.API.ListenAddress)
	v.SetDefault("indexer.enabled", cfg.Indexer.Enabled)
	v.SetDefault("indexer.db_path", cfg.Indexer.DBPath)
	v.SetDefault("indexer.poll_interval", cfg.Indexer.PollInterval)
	v.SetDefault("monitoring.sentry_dsn", cfg.Monitoring.SentryDSN)
}

// InitializeOwner generates a wallet key and stores it hex encoded at the
// configured key file path.
func InitializeOwner(cfg *Config) (owner string, err error) {
	priv, err := eth_crypto.GenerateKey()
	if err != nil {
		return "", err
	}
	keyFile := cfg.KeyFilePath()
	if err = os.MkdirAll(filepath.Dir(keyFile), DefaultDirPerm); err != nil {
		return "", fmt.Errorf("could not create directory %q: %w", filepath.Dir(keyFile), err)
	}
	key := hex.EncodeToString(eth_crypto.FromECDSA(priv))
	if err = os.WriteFile(keyFile, []byte(key), 0o600); err != nil {
		return "", fmt.Errorf("writing private key to file: %w", err)
	}
	owner = eth_crypto.PubkeyToAddress(priv.PublicKey).Hex()
	return
}
