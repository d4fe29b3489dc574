package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresWormholeProgramID(t *testing.T) {
	viper.Reset()
	t.Setenv("SOLANA_WORMHOLE_PROGRAM_ID", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wormhole_program_id")
}

func TestLoad_RequiresLookupTable(t *testing.T) {
	viper.Reset()
	t.Setenv("SOLANA_WORMHOLE_PROGRAM_ID", "worm7oU8JPLw8Mnq3pD7KDpDZ1YdZbbTsp1AhPz6Nv5")
	t.Setenv("SOLANA_LOOKUP_TABLE_ADDRESS", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lookup_table_address")
}

func TestLoad_FromEnvironment(t *testing.T) {
	viper.Reset()
	t.Setenv("SOLANA_WORMHOLE_PROGRAM_ID", "worm7oU8JPLw8Mnq3pD7KDpDZ1YdZbbTsp1AhPz6Nv5")
	t.Setenv("SOLANA_LOOKUP_TABLE_ADDRESS", "2aQ5zM3fjzn9VdRB5mNnpGHFAkMCCCsPbaRHbnjbbUtm")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "worm7oU8JPLw8Mnq3pD7KDpDZ1YdZbbTsp1AhPz6Nv5", cfg.Solana.WormholeProgramID)
	assert.Equal(t, "development", cfg.Environment)
	assert.NotEmpty(t, cfg.CoreAPI.BaseURL)
	assert.Equal(t, 30, cfg.CoreAPI.Timeout)
}
