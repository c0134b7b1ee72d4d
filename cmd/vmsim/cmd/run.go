package cmd

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/sarchlab/vmsim/mem/vm/mmu"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Translate a list of pages.",
	Long: "`run --pages 0,1,2,1A` translates the given hexadecimal page " +
		"numbers in order and prints each outcome and the final statistics.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		pageList, _ := cmd.Flags().GetString("pages")
		baseStr, _ := cmd.Flags().GetString("base")

		pages, err := mmu.ParseHexPageList(pageList)
		if err != nil {
			return err
		}

		base, err := mmu.ParseHexAddress(baseStr)
		if err != nil {
			return err
		}

		return runLoad(cmd, mmu.Load{BaseAddress: base, Pages: pages})
	},
}

func runLoad(cmd *cobra.Command, load mmu.Load) error {
	s, err := newSession(cmd, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer s.close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	br, err := s.engine.LoadBatch(ctx, load.BaseAddress, load.Pages)
	printBatch(cmd.OutOrStdout(), br)
	printOutcomes(cmd.OutOrStdout(), s.outcomes)

	return err
}

func init() {
	runCmd.Flags().String("pages", "", "comma-separated hexadecimal page numbers")
	runCmd.Flags().String("base", "0", "hexadecimal base address of the load")
	_ = runCmd.MarkFlagRequired("pages")

	rootCmd.AddCommand(runCmd)
}
