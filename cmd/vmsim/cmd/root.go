// Package cmd provides the command-line interface of vmsim.
package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/vmsim/mem/vm/mmu"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "vmsim",
	Short: "vmsim simulates virtual memory address translation.",
	Long: `vmsim simulates virtual memory address translation with a TLB, ` +
		`a page table and a frame pool that replaces pages with FIFO or LRU. ` +
		`Defaults can be set with VMSIM_* variables, also read from a .env ` +
		`file in the working directory.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

func init() {
	loadDotEnv(".env")

	def := mmu.DefaultConfig()
	flags := rootCmd.PersistentFlags()

	flags.Int("space", envInt("VMSIM_SPACE", def.AddressSpaceSize),
		"number of pages in the address space")
	flags.Int("frames", envInt("VMSIM_FRAMES", def.NumFrames),
		"number of physical frames")
	flags.Int("tlb", envInt("VMSIM_TLB", def.TLBCapacity),
		"number of TLB entries")
	flags.String("policy", envString("VMSIM_POLICY", string(def.Policy)),
		"page replacement policy, FIFO or LRU")
	flags.Duration("pacing", envDuration("VMSIM_PACING", 0),
		"delay after each translation")
	flags.Bool("log", envBool("VMSIM_LOG", false),
		"print every engine event to stderr")
	flags.String("trace-db", envString("VMSIM_TRACE_DB", ""),
		"write request traces to this SQLite file (without extension)")
	flags.String("record-db", envString("VMSIM_RECORD_DB", ""),
		"record every request to this SQLite file (without extension)")
	flags.String("trace-pages", envString("VMSIM_TRACE_PAGES", ""),
		"only trace these hexadecimal pages, comma-separated")
	flags.Bool("parallel-ids", envBool("VMSIM_PARALLEL_IDS", false),
		"use globally unique task IDs instead of counting from 1")
}

// loadDotEnv loads variables from file. Variables already set in the
// environment win.
func loadDotEnv(file string) {
	if _, err := os.Stat(file); err != nil {
		return
	}

	if err := godotenv.Load(file); err != nil {
		fmt.Fprintf(os.Stderr, "Ignoring %s: %v\n", file, err)
	}
}

func envString(name, def string) string {
	if v, ok := os.LookupEnv(name); ok && v != "" {
		return v
	}

	return def
}

func envInt(name string, def int) int {
	v, ok := os.LookupEnv(name)
	if !ok {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ignoring %s=%q: not an integer\n", name, v)
		return def
	}

	return n
}

func envBool(name string, def bool) bool {
	v, ok := os.LookupEnv(name)
	if !ok {
		return def
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ignoring %s=%q: not a boolean\n", name, v)
		return def
	}

	return b
}

func envDuration(name string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(name)
	if !ok {
		return def
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ignoring %s=%q: not a duration\n", name, v)
		return def
	}

	return d
}
