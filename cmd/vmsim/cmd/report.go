package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarchlab/vmsim/datarecording"
	"github.com/sarchlab/vmsim/mem/vm/mmu"
)

var reportCmd = &cobra.Command{
	Use:   "report <file.sqlite3>",
	Short: "Summarize a request recording.",
	Long: "`report run.sqlite3` reads the requests written with --record-db " +
		"and prints them with a count per outcome.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outcome, _ := cmd.Flags().GetString("outcome")
		limit, _ := cmd.Flags().GetInt("limit")

		reader, err := datarecording.NewReader(args[0])
		if err != nil {
			return err
		}
		defer reader.Close()

		reader.MapTable(mmu.RequestTable, mmu.RequestRow{})

		params := datarecording.QueryParams{
			OrderBy: "Time",
			Limit:   limit,
		}
		if outcome != "" {
			params.Where = "Outcome = ?"
			params.Args = []any{outcome}
		}

		rows, total, err := reader.Query(cmd.Context(), mmu.RequestTable, params)
		if err != nil {
			return err
		}

		all, _, err := reader.Query(cmd.Context(), mmu.RequestTable,
			datarecording.QueryParams{})
		if err != nil {
			return err
		}

		return printReport(cmd, rows, total, all)
	},
}

// printReport lists rows and counts the outcomes of all the recorded
// requests, whatever the listing filter.
func printReport(cmd *cobra.Command, rows []any, total int, all []any) error {
	w := cmd.OutOrStdout()

	for _, r := range rows {
		row, ok := r.(*mmu.RequestRow)
		if !ok {
			return fmt.Errorf("unexpected row type %T", r)
		}

		line := fmt.Sprintf("%6.0f  %s  page %-4X  %-8s  frame %d",
			row.Time, row.Engine, row.Page, row.Outcome, row.Frame)
		if row.HasEvicted {
			line += fmt.Sprintf("  evicted page %X", row.Evicted)
		}

		fmt.Fprintln(w, line)
	}

	fmt.Fprintf(w, "Showing %d of %d requests\n", len(rows), total)

	perOutcome := make(map[string]int)

	for _, r := range all {
		if row, ok := r.(*mmu.RequestRow); ok {
			perOutcome[row.Outcome]++
		}
	}

	fmt.Fprintf(w, "Recorded %d requests\n", len(all))

	for _, o := range []mmu.Outcome{
		mmu.OutcomeTLBHit, mmu.OutcomeTableHit, mmu.OutcomeFault,
	} {
		fmt.Fprintf(w, "%s: %d\n", o, perOutcome[string(o)])
	}

	return nil
}

func init() {
	reportCmd.Flags().String("outcome", "", "only list requests with this outcome")
	reportCmd.Flags().Int("limit", 0, "maximum number of requests to list")

	rootCmd.AddCommand(reportCmd)
}
