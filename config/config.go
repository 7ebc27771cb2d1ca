package config

import (
	"strings"

	"github.com/Conflux-Chain/go-conflux-util/config"
	"github.com/gaswhisperer/gaswhisperer/util/pprof"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Read system environment variables prefixed with "GASWHISPERER".
// eg., `GASWHISPERER_LOG_LEVEL` will override "log.level" config item from the config file.
const viperEnvPrefix = "gaswhisperer"

// legacyEnvs maps config keys to environment variables without prefix, which are still
// supported for compatibility.
var legacyEnvs = map[string]string{
	"source.useRealData": "USE_REAL_DATA",
	"source.rpcUrl":      "RPC_URL",
	"advisor.apiKey":     "OPENAI_API_KEY",
}

func Init() {
	// init utilities eg., viper, metrics and logging
	config.MustInit(viperEnvPrefix)

	bindLegacyEnvs()

	// init pprof
	pprof.MustInit()
}

// bindLegacyEnvs binds legacy environment variables, which take lower precedence than
// the prefixed ones.
func bindLegacyEnvs() {
	for key, env := range legacyEnvs {
		prefixed := envKey(key)
		if err := viper.BindEnv(key, prefixed, env); err != nil {
			logrus.WithError(err).WithField("key", key).Fatal("Failed to bind legacy env")
		}
	}
}

// envKey returns the prefixed environment variable of config key, e.g. GASWHISPERER_SOURCE_RPCURL.
func envKey(key string) string {
	return strings.ToUpper(viperEnvPrefix + "_" + strings.ReplaceAll(key, ".", "_"))
}
