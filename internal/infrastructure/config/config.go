// Package config loads the builder's configuration from a yaml file and
// environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the transaction builder
type Config struct {
	Environment string        `mapstructure:"environment"`
	LogLevel    string        `mapstructure:"log_level"`
	CoreAPI     CoreAPIConfig `mapstructure:"core_api"`
	Solana      SolanaConfig  `mapstructure:"solana"`
	Evm         EvmConfig     `mapstructure:"evm"`
	Metrics     MetricsConfig `mapstructure:"metrics"`
}

// CoreAPIConfig points at the catalog and cost oracle backend.
type CoreAPIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout"` // seconds
}

// SolanaConfig carries the Solana chain addresses the builder needs beyond
// the per-token catalog.
type SolanaConfig struct {
	RPCURL             string     `mapstructure:"rpc_url"`
	WormholeProgramID  string     `mapstructure:"wormhole_program_id"`
	LookupTableAddress string     `mapstructure:"lookup_table_address"`
	AggregatorURL      string     `mapstructure:"aggregator_url"`
	Cctp               CctpConfig `mapstructure:"cctp"`
}

// CctpConfig configures the CCTP route; Domains maps bridge chain ids to
// Circle domains.
type CctpConfig struct {
	TransmitterProgramID   string         `mapstructure:"transmitter_program_id"`
	TokenMessengerMinterID string         `mapstructure:"token_messenger_minter_id"`
	Domains                map[int]uint32 `mapstructure:"domains"`
}

// EvmConfig carries per-chain RPC endpoints for pool state reads, keyed by
// chain symbol.
type EvmConfig struct {
	RPCURLs map[string]string `mapstructure:"rpc_urls"`
}

// MetricsConfig controls the prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

// Load reads configuration from ./configs/config.yaml (when present) with
// environment variable overrides.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore errors if file doesn't exist)
	godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &config, nil
}

func setDefaults() {
	viper.SetDefault("environment", "development")
	viper.SetDefault("log_level", "info")
	viper.SetDefault("core_api.base_url", "https://core.api.allbridgecoreapi.net")
	viper.SetDefault("core_api.timeout", 30)
	viper.SetDefault("solana.rpc_url", "https://api.mainnet-beta.solana.com")
	viper.SetDefault("solana.aggregator_url", "https://quote-api.jup.ag/v6")
	// register the required keys so environment overrides reach Unmarshal
	viper.SetDefault("solana.wormhole_program_id", "")
	viper.SetDefault("solana.lookup_table_address", "")
	viper.SetDefault("solana.cctp.transmitter_program_id", "")
	viper.SetDefault("solana.cctp.token_messenger_minter_id", "")
	viper.SetDefault("metrics.enabled", true)
	viper.SetDefault("metrics.port", 9090)
}

func validate(config *Config) error {
	if config.CoreAPI.BaseURL == "" {
		return fmt.Errorf("core_api.base_url is required")
	}
	if config.Solana.RPCURL == "" {
		return fmt.Errorf("solana.rpc_url is required")
	}
	if config.Solana.WormholeProgramID == "" {
		return fmt.Errorf("solana.wormhole_program_id is required")
	}
	if config.Solana.LookupTableAddress == "" {
		return fmt.Errorf("solana.lookup_table_address is required")
	}
	return nil
}
