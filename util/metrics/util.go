package metrics

import (
	"fmt"

	"github.com/ethereum/go-ethereum/metrics"
)

// Note, must use metrics.DefaultRegistry from geth, since go-rpc-provider depends on it
// for rpc metrics by default.
var DefaultRegistry = metrics.DefaultRegistry

func GetOrRegisterCounter(nameFormat string, nameArgs ...interface{}) metrics.Counter {
	name := fmt.Sprintf(nameFormat, nameArgs...)
	return metrics.GetOrRegisterCounter(name, DefaultRegistry)
}

func GetOrRegisterMeter(nameFormat string, nameArgs ...interface{}) metrics.Meter {
	name := fmt.Sprintf(nameFormat, nameArgs...)
	return metrics.GetOrRegisterMeter(name, DefaultRegistry)
}

func GetOrRegisterTimer(nameFormat string, nameArgs ...interface{}) metrics.Timer {
	name := fmt.Sprintf(nameFormat, nameArgs...)
	return metrics.GetOrRegisterTimer(name, DefaultRegistry)
}
