package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/vellum/internal/audit"
	"github.com/PolarWolf314/vellum/internal/ui"
	"github.com/PolarWolf314/vellum/internal/workflows"
)

var (
	logLimit     int
	logReverse   bool
	logUser      string
	logOperation string
	logSince     string
	logUntil     string
	logOneline   bool
	logJSON      bool
)

func init() {
	logCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "limit number of entries shown")
	logCmd.Flags().BoolVar(&logReverse, "reverse", false, "show most recent entries first")
	logCmd.Flags().StringVar(&logUser, "user", "", "filter by user name")
	logCmd.Flags().StringVar(&logOperation, "operation", "", "filter by operation type (comma-separated)")
	logCmd.Flags().StringVar(&logSince, "since", "", "show entries after date (YYYY-MM-DD)")
	logCmd.Flags().StringVar(&logUntil, "until", "", "show entries before date (YYYY-MM-DD)")
	logCmd.Flags().BoolVar(&logOneline, "oneline", false, "compact one-line format")
	logCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View the audit log",
	Long: `Displays the audit log of credential operations in this clone.

Examples:
  vellum log                          # View full log
  vellum log -n 10                    # Last 10 entries
  vellum log --reverse                # Most recent first
  vellum log --operation rekey,flush  # Filter by operation
  vellum log --since 2024-01-01       # Filter by date
  vellum log --json                   # JSON output`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		env, err := openEnv(ctx)
		if err != nil {
			fmt.Fprintln(out, formatError(err))
			return ErrReported
		}

		result, err := workflows.Log(ctx, env, workflows.LogOptions{
			Limit:      logLimit,
			Reverse:    logReverse,
			User:       logUser,
			Operations: logOperation,
			Since:      logSince,
			Until:      logUntil,
		})
		if err != nil {
			fmt.Fprintln(out, formatError(err))
			return ErrReported
		}
		Logger.Debugf("Showing %d of %d entries", len(result.Entries), result.TotalEntriesBeforeFilter)

		if len(result.Entries) == 0 {
			if result.TotalEntriesBeforeFilter == 0 {
				fmt.Fprintln(out, "No audit log entries found.")
			} else {
				fmt.Fprintln(out, "No audit log entries found matching the filters.")
			}
			return nil
		}

		switch {
		case logJSON:
			return outputLogJSON(out, result.Entries)
		case logOneline:
			for _, e := range result.Entries {
				fmt.Fprintf(out, "%s %s %s %s\n", workflows.FormatDate(e.Timestamp), e.User, e.Operation, workflows.FormatDetails(e))
			}
		default:
			for _, e := range result.Entries {
				fmt.Fprintf(out, "%-19s  %-12s  %-10s  %s\n",
					workflows.FormatDateTime(e.Timestamp), e.User, ui.Highlight.Sprint(e.Operation), workflows.FormatDetails(e))
			}
		}
		return nil
	},
}

func outputLogJSON(w io.Writer, entries []audit.Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal entries: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
