package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lazypower/growthlog/internal/export"
	"github.com/lazypower/growthlog/internal/report"
)

var (
	exportOutput  string
	exportRemote  string
	exportNoPeers bool
)

var exportCmd = &cobra.Command{
	Use:   "export <userID>",
	Short: "Write a user's feedback and period report to an xlsx workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := parseUserID(args[0])
		if err != nil {
			return err
		}
		src, closeFn, err := openSource(exportRemote)
		if err != nil {
			return err
		}
		defer closeFn()

		ctx := cmd.Context()
		list, err := src.FeedbackList(ctx, userID, report.SortAsc)
		if err != nil {
			return err
		}
		detail, err := src.PeriodDetail(ctx, userID, !exportNoPeers)
		if err != nil {
			return err
		}

		if err := export.SaveWorkbook(exportOutput, list, detail); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", exportOutput)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "growthlog.xlsx", "Output workbook path")
	exportCmd.Flags().StringVar(&exportRemote, "remote", "", "Fetch from a running server at this URL instead of the local database")
	exportCmd.Flags().BoolVar(&exportNoPeers, "no-peers", false, "Skip peer goal sampling")
}
