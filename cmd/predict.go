package cmd

import (
	"context"

	cmdutil "github.com/gaswhisperer/gaswhisperer/cmd/util"
	"github.com/gaswhisperer/gaswhisperer/types"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	predictReq types.PredictionRequest

	predictCmd = &cobra.Command{
		Use:   "predict",
		Short: "Predict short-term gas trend in one line",
		Run:   predict,
	}
)

func init() {
	predictCmd.Flags().IntVarP(&predictReq.Count, "count", "c", types.DefaultWindowSize, "number of recent gas points")
	predictCmd.Flags().StringVar(&predictReq.ApiKey, "api-key", "", "LLM api key, overrides the configured one")
}

func predict(cmd *cobra.Command, args []string) {
	gasHandler := cmdutil.MustNewGasStationHandlerFromViper()

	prediction, err := gasHandler.Predict(context.Background(), &predictReq)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to predict gas trend")
	}

	cmdutil.MustPrintJSON(prediction)
}
