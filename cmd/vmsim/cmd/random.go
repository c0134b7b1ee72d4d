package cmd

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/sarchlab/vmsim/mem/vm/mmu"
)

var randomCmd = &cobra.Command{
	Use:   "random",
	Short: "Generate and translate a random load.",
	Long: "`random --count 10 --seed 42` picks a random base address and " +
		"random in-range pages, then translates them like `run`.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := configFromFlags(cmd)
		if err != nil {
			return err
		}

		count, _ := cmd.Flags().GetInt("count")
		seed, _ := cmd.Flags().GetInt64("seed")
		if !cmd.Flags().Changed("seed") {
			seed = time.Now().UnixNano()
		}

		rng := rand.New(rand.NewSource(seed))

		load, err := mmu.RandomLoad(rng, cfg.AddressSpaceSize, count)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Seed %d, load %s\n", seed, load)

		return runLoad(cmd, load)
	},
}

func init() {
	randomCmd.Flags().Int("count", mmu.DefaultRandomLoadCount,
		"number of pages to generate")
	randomCmd.Flags().Int64("seed", 0, "random seed, defaults to the clock")

	rootCmd.AddCommand(randomCmd)
}
