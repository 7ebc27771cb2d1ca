package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "GASWHISPERER_SOURCE_RPCURL", envKey("source.rpcUrl"))
	assert.Equal(t, "GASWHISPERER_ADVISOR_APIKEY", envKey("advisor.apiKey"))
}

func TestBindLegacyEnvs(t *testing.T) {
	t.Setenv("USE_REAL_DATA", "1")
	t.Setenv("RPC_URL", "http://legacy:8545")
	t.Setenv("GASWHISPERER_SOURCE_RPCURL", "http://prefixed:8545")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GASWHISPERER_ADVISOR_APIKEY", "")

	bindLegacyEnvs()

	assert.True(t, viper.GetBool("source.useRealData"))
	assert.Equal(t, "http://prefixed:8545", viper.GetString("source.rpcUrl"))
	assert.Empty(t, viper.GetString("advisor.apiKey"))
}
