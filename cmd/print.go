package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/matheuskafuri/newsdesk/internal/tui"
	"github.com/matheuskafuri/newsdesk/internal/view"
	"github.com/spf13/cobra"
)

const printWidth = 100

var searchCmd = &cobra.Command{
	Use:          "search <topic>",
	Short:        "Search news by topic and print the results",
	Long:         "Run a single search against the backend and print the matching articles. Multiple arguments are joined into one topic.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		topic := strings.TrimSpace(strings.Join(args, " "))
		if topic == "" {
			return errors.New(tui.MsgEmptyTopic)
		}

		rt, err := setup()
		if err != nil {
			return err
		}
		defer rt.Close()

		res, err := rt.client.Search(cmd.Context(), topic)
		if err != nil {
			return err
		}
		out := tui.RenderResults(view.Results(&res, false, rt.formatter), tui.RenderOpts{Width: printWidth, Cursor: -1})
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

var trendingCmd = &cobra.Command{
	Use:          "trending",
	Short:        "Print trending articles",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup()
		if err != nil {
			return err
		}
		defer rt.Close()

		res, err := rt.client.Trending(cmd.Context())
		if err != nil {
			return err
		}
		v := view.Trending(view.Ready(res), view.TrendingOptions{
			Limit:            rt.cfg.GetTrendingLimit(),
			DescriptionLimit: rt.cfg.GetDescriptionLimit(),
		})
		fmt.Fprintln(cmd.OutOrStdout(), tui.RenderTrending(v, tui.RenderOpts{Width: printWidth, Cursor: -1}))
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:          "history",
	Short:        "Print recent searches",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup()
		if err != nil {
			return err
		}
		defer rt.Close()

		entries, err := rt.client.History(cmd.Context())
		if err != nil {
			return err
		}
		v := view.History(view.Ready(entries), rt.cfg.GetHistoryLimit(), rt.formatter)
		fmt.Fprintln(cmd.OutOrStdout(), tui.RenderHistory(v, tui.RenderOpts{Width: printWidth, Cursor: -1}))
		return nil
	},
}
