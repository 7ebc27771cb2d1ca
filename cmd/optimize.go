package cmd

import (
	"context"

	cmdutil "github.com/gaswhisperer/gaswhisperer/cmd/util"
	"github.com/gaswhisperer/gaswhisperer/types"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	optimizeReq types.OptimizationRequest

	optimizeCmd = &cobra.Command{
		Use:   "optimize",
		Short: "Suggest gas price and submission time for a transaction against recent gas prices",
		Run:   optimize,
	}
)

func init() {
	optimizeCmd.Flags().Float64VarP(&optimizeReq.CurrentGas, "gas", "g", 0, "proposed gas price in gwei")
	optimizeCmd.MarkFlagRequired("gas")

	optimizeCmd.Flags().StringVarP(&optimizeReq.Tx, "tx", "t", "", "transaction description")
}

func optimize(cmd *cobra.Command, args []string) {
	gasHandler := cmdutil.MustNewGasStationHandlerFromViper()

	result, err := gasHandler.Optimize(context.Background(), &optimizeReq)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to optimize gas price")
	}

	cmdutil.MustPrintJSON(result)
}
