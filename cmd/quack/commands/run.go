package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/quack/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [names...]",
		Short: "Build targets and run scripts",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}
			mode, _ := cmd.Flags().GetString("cache")
			jobs, _ := cmd.Flags().GetInt("jobs")
			return c.app.Run(cmd.Context(), args, app.RunOptions{
				CacheMode: mode,
				Jobs:      jobs,
			})
		},
	}
	cmd.Flags().StringP("cache", "c", "", "Cache policy: false, local, cloud or dev")
	cmd.Flags().IntP("jobs", "j", 0, "Maximum number of targets building in parallel")
	return cmd
}
