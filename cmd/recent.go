package cmd

import (
	"context"

	cmdutil "github.com/gaswhisperer/gaswhisperer/cmd/util"
	"github.com/gaswhisperer/gaswhisperer/types"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	recentCount int

	recentCmd = &cobra.Command{
		Use:   "recent",
		Short: "Print the most recent gas prices along with where they came from",
		Run:   printRecent,
	}
)

func init() {
	recentCmd.Flags().IntVarP(&recentCount, "count", "c", types.DefaultWindowSize, "number of recent gas points")
}

func printRecent(cmd *cobra.Command, args []string) {
	gasHandler := cmdutil.MustNewGasStationHandlerFromViper()

	points, err := gasHandler.Recent(context.Background(), recentCount)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to fetch recent gas points")
	}

	cmdutil.MustPrintJSON(points)
}
