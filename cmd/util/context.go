package util

import (
	"encoding/json"
	"fmt"

	"github.com/gaswhisperer/gaswhisperer/advisor"
	"github.com/gaswhisperer/gaswhisperer/gasstation"
	"github.com/gaswhisperer/gaswhisperer/rpc/handler"
	"github.com/gaswhisperer/gaswhisperer/source"
	"github.com/sirupsen/logrus"
)

// MustNewGasStationHandlerFromViper wires up gas point source, optimizer and advisor
// from configuration, and panics if failed.
func MustNewGasStationHandlerFromViper() *handler.GasStationHandler {
	src := source.MustNewSourceFromViper()
	optimizer := gasstation.MustNewOptimizerFromViper()
	advisor := advisor.MustNewAdvisorFromViper()

	return handler.NewGasStationHandler(src, optimizer, advisor)
}

// MustPrintJSON prints the value as indented JSON to stdout.
func MustPrintJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		logrus.WithError(err).Fatal("Failed to marshal JSON")
	}

	fmt.Println(string(data))
}
