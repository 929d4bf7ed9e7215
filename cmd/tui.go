package cmd

import (
	"fmt"

	"github.com/matheuskafuri/newsdesk/internal/browser"
	"github.com/matheuskafuri/newsdesk/internal/tui"
	"github.com/spf13/cobra"
)

func runTUI(cmd *cobra.Command, args []string) error {
	rt, err := setup()
	if err != nil {
		return err
	}
	defer rt.Close()

	err = tui.Run(tui.RunOpts{
		Client:           rt.client,
		Formatter:        rt.formatter,
		Opener:           browser.NewOpener(),
		Log:              rt.log,
		TrendingLimit:    rt.cfg.GetTrendingLimit(),
		DescriptionLimit: rt.cfg.GetDescriptionLimit(),
		HistoryLimit:     rt.cfg.GetHistoryLimit(),
	})
	if err != nil {
		return fmt.Errorf("running tui: %w", err)
	}
	return nil
}
