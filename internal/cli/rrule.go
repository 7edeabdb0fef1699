package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/yukikurage/bujo-tasks/internal/recurrence"
)

func newRRuleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rrule",
		Short: "Work with recurrence rules",
	}

	var (
		rule, timezone, start, end string
		limit                      int
	)
	previewCmd := &cobra.Command{
		Use:   "preview",
		Short: "Print the instants of a rule that fall in [start, end)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := time.Parse(time.RFC3339, start)
			if err != nil {
				return fmt.Errorf("invalid --start: %w", err)
			}
			to, err := time.Parse(time.RFC3339, end)
			if err != nil {
				return fmt.Errorf("invalid --end: %w", err)
			}
			// a bare RRULE is previewed as if it started with the window
			r, err := recurrence.ParseAt(rule, timezone, from)
			if err != nil {
				return err
			}

			instants, err := r.Between(from, to, recurrence.Limits{MaxInstants: limit})
			if err != nil {
				return err
			}
			for _, at := range instants {
				fmt.Fprintln(cmd.OutOrStdout(), at.Format(time.RFC3339))
			}
			return nil
		},
	}
	previewCmd.Flags().StringVar(&rule, "rule", "", "recurrence rule; without a DTSTART line it starts at --start")
	previewCmd.Flags().StringVar(&timezone, "tz", "UTC", "IANA time zone of the rule")
	previewCmd.Flags().StringVar(&start, "start", "", "window start (RFC 3339)")
	previewCmd.Flags().StringVar(&end, "end", "", "window end (RFC 3339), exclusive")
	previewCmd.Flags().IntVar(&limit, "limit", recurrence.DefaultLimits.MaxInstants, "maximum number of instants")
	_ = previewCmd.MarkFlagRequired("rule")
	_ = previewCmd.MarkFlagRequired("start")
	_ = previewCmd.MarkFlagRequired("end")

	cmd.AddCommand(previewCmd)
	return cmd
}
