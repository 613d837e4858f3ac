package main

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/heavycoin/heavyminer/pkg/config"
	"github.com/heavycoin/heavyminer/pkg/core/consensus"
	"github.com/heavycoin/heavyminer/pkg/core/types"
	"github.com/heavycoin/heavyminer/pkg/store"
	"github.com/heavycoin/heavyminer/pkg/work"
)

var cmdShares = &cobra.Command{
	Use:   "shares",
	Short: "List the shares in a share database",
	Args:  cobra.NoArgs,
	RunE:  runShares,
}

var flagShares struct {
	Verify bool
}

func init() {
	cmdMain.AddCommand(cmdShares)

	cmdShares.Flags().String("store", config.Default().Store.Path, "Share database directory")
	cmdShares.Flags().BoolVar(&flagShares.Verify, "verify", false, "Re-execute the hash of every share")
	bindFlag(cmdShares, "store.path", "store")
}

func runShares(*cobra.Command, []string) error {
	if cfg.Store.Path == "" {
		return errors.New("--store is required")
	}
	st, err := store.NewBadgerStore(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer st.Close()

	var hasher consensus.Hasher
	if flagShares.Verify {
		hasher, err = consensus.NewHasher()
		if err != nil {
			return err
		}
		defer hasher.Close()
	}

	var invalid int
	err = st.Shares(func(share *types.Share) error {
		status := ""
		if hasher != nil {
			status = " ok"
			if err := work.ValidateShare(share, hasher); err != nil {
				status = " INVALID: " + err.Error()
				invalid++
			}
		}
		fmt.Printf("%s %s nonce %08x sdiff %g found %s%s\n",
			share.Hash, share.Variant, share.Nonce, share.SDiff, humanize.Time(share.FoundAt), status)
		return nil
	})
	if err != nil {
		return err
	}

	count, err := st.Count()
	if err != nil {
		return err
	}
	fmt.Printf("%s shares\n", humanize.Comma(int64(count)))
	if invalid > 0 {
		return fmt.Errorf("%d invalid shares", invalid)
	}
	return nil
}
