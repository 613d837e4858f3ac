package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heavycoin/heavyminer/pkg/core/consensus"
	"github.com/heavycoin/heavyminer/pkg/core/types"
	"github.com/heavycoin/heavyminer/pkg/work"
)

var cmdHash = &cobra.Command{
	Use:   "hash <header-hex>",
	Short: "Compute the combined hash of an 80 or 84 byte block header",
	Args:  cobra.ExactArgs(1),
	RunE:  runHash,
}

var flagHash struct {
	Normalized bool
}

func init() {
	cmdMain.AddCommand(cmdHash)

	cmdHash.Flags().BoolVar(&flagHash.Normalized, "normalized", false, "The header is already in hashing byte order; skip the word swap")
}

func runHash(_ *cobra.Command, args []string) error {
	data, err := hex.DecodeString(args[0])
	if err != nil {
		return fmt.Errorf("decode header: %w", err)
	}
	variant, err := types.VariantForSize(len(data))
	if err != nil {
		return err
	}
	if !flagHash.Normalized {
		data, err = work.Normalize(data)
		if err != nil {
			return err
		}
	}

	hasher, err := consensus.NewHasher()
	if err != nil {
		return err
	}
	defer hasher.Close()

	hash, err := hasher.Hash(data)
	if err != nil {
		return err
	}
	fmt.Printf("%s %s\n", variant, hash)
	return nil
}
