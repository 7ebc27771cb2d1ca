package rpc

import (
	"sort"
	"strings"

	"github.com/gaswhisperer/gaswhisperer/util/metrics"
)

const metricPrefix = "gaswhisperer/"

// metricsAPI exposes service metrics, e.g. API latency and LLM completion stats.
type metricsAPI struct{}

func (api *metricsAPI) List() []string {
	var names []string

	for k := range metrics.DefaultRegistry.GetAll() {
		if strings.HasPrefix(k, metricPrefix) {
			names = append(names, k)
		}
	}

	sort.Strings(names)

	return names
}

func (api *metricsAPI) Get(name string) map[string]interface{} {
	if !strings.HasPrefix(name, metricPrefix) {
		return nil
	}

	return metrics.DefaultRegistry.GetAll()[name]
}

func (api *metricsAPI) All() map[string]map[string]interface{} {
	all := metrics.DefaultRegistry.GetAll()
	content := make(map[string]map[string]interface{})

	for _, v := range api.List() {
		content[v] = all[v]
	}

	return content
}
