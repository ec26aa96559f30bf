package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/lazypower/growthlog/internal/client"
	"github.com/lazypower/growthlog/internal/report"
	"github.com/lazypower/growthlog/internal/service"
)

// source yields reports either from the local database or a running server.
type source interface {
	FeedbackList(ctx context.Context, userID int64, order report.SortOrder) (report.FeedbackList, error)
	PeriodDetail(ctx context.Context, userID int64, withPeers bool) (report.PeriodDetail, error)
}

type localSource struct {
	reports *service.Reports
}

func (s localSource) FeedbackList(ctx context.Context, userID int64, order report.SortOrder) (report.FeedbackList, error) {
	return s.reports.FeedbackList(ctx, userID, order)
}

func (s localSource) PeriodDetail(ctx context.Context, userID int64, withPeers bool) (report.PeriodDetail, error) {
	return s.reports.PeriodDetail(ctx, userID, withPeers, time.Now())
}

// openSource returns a remote source when remote is set, otherwise a local
// one. The returned close func is never nil.
func openSource(remote string) (source, func() error, error) {
	if remote != "" {
		return client.New(remote), func() error { return nil }, nil
	}
	rt, err := openRuntime()
	if err != nil {
		return nil, nil, err
	}
	return localSource{reports: rt.reports}, rt.Close, nil
}

var (
	reportSort    string
	reportRemote  string
	reportNoPeers bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print a user's reports as JSON",
}

var reportFeedbackCmd = &cobra.Command{
	Use:   "feedback <userID>",
	Short: "Per-experience feedback with emotion summaries",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := parseUserID(args[0])
		if err != nil {
			return err
		}
		src, closeFn, err := openSource(reportRemote)
		if err != nil {
			return err
		}
		defer closeFn()

		list, err := src.FeedbackList(cmd.Context(), userID, report.ParseSortOrder(reportSort))
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), list)
	},
}

var reportDetailCmd = &cobra.Command{
	Use:   "detail <userID>",
	Short: "Weekly and monthly progress, emotions and peer goals",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := parseUserID(args[0])
		if err != nil {
			return err
		}
		src, closeFn, err := openSource(reportRemote)
		if err != nil {
			return err
		}
		defer closeFn()

		detail, err := src.PeriodDetail(cmd.Context(), userID, !reportNoPeers)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), detail)
	},
}

func init() {
	reportCmd.PersistentFlags().StringVar(&reportRemote, "remote", "", "Fetch from a running server at this URL instead of the local database")
	reportFeedbackCmd.Flags().StringVar(&reportSort, "sort", "asc", "Date order: asc or desc")
	reportDetailCmd.Flags().BoolVar(&reportNoPeers, "no-peers", false, "Skip peer goal sampling")

	reportCmd.AddCommand(reportFeedbackCmd)
	reportCmd.AddCommand(reportDetailCmd)
}

func parseUserID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid user id %q", s)
	}
	return id, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
