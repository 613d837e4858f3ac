package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/heavycoin/heavyminer/pkg/core/consensus"
	"github.com/heavycoin/heavyminer/pkg/core/consensus/heavy"
)

var cmdMasks = &cobra.Command{
	Use:   "masks <difficulty>",
	Short: "Show the per-algorithm masks and share target for a difficulty",
	Args:  cobra.ExactArgs(1),
	RunE:  runMasks,
}

func init() {
	cmdMain.AddCommand(cmdMasks)
}

func runMasks(_ *cobra.Command, args []string) error {
	diff, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("parse difficulty: %w", err)
	}
	if !(diff > 0) {
		return fmt.Errorf("difficulty must be positive, got %v", diff)
	}

	fmt.Println(heavy.DeriveMasks(diff))
	fmt.Printf("target %064x\n", consensus.TargetFromDifficulty(diff))
	return nil
}
