package main

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/heavycoin/heavyminer/pkg/config"
	"github.com/heavycoin/heavyminer/pkg/core/consensus"
	"github.com/heavycoin/heavyminer/pkg/core/types"
	"github.com/heavycoin/heavyminer/pkg/miner"
	"github.com/heavycoin/heavyminer/pkg/rpc"
	"github.com/heavycoin/heavyminer/pkg/store"
	"github.com/heavycoin/heavyminer/pkg/work"
)

var cmdMine = &cobra.Command{
	Use:   "mine",
	Short: "Scan the nonce space of a header template for shares",
	Args:  cobra.NoArgs,
	RunE:  runMine,
}

var flagMine struct {
	Header string
}

func init() {
	cmdMain.AddCommand(cmdMine)

	defaults := config.Default()
	cmdMine.Flags().StringVar(&flagMine.Header, "header", "", "Header template as hex, in wire byte order (required)")
	cmdMine.Flags().String("variant", defaults.Miner.Variant, "Header variant (hefty: 80 bytes, heavy: 84 bytes)")
	cmdMine.Flags().Float64("difficulty", defaults.Miner.Difficulty, "Share difficulty")
	cmdMine.Flags().IntP("threads", "t", defaults.Miner.Threads, "Worker threads (0 = one per CPU)")
	cmdMine.Flags().Duration("stats-interval", defaults.Miner.StatsInterval, "How often to log the hashrate (0 disables)")
	cmdMine.Flags().String("store", defaults.Store.Path, "Share database directory (empty keeps shares in memory)")
	cmdMine.Flags().String("rpc", defaults.RPC.Listen, "Diagnostics HTTP listen address (empty disables)")
	check(cmdMine.MarkFlagRequired("header"))

	bindFlag(cmdMine, "miner.variant", "variant")
	bindFlag(cmdMine, "miner.difficulty", "difficulty")
	bindFlag(cmdMine, "miner.threads", "threads")
	bindFlag(cmdMine, "miner.stats-interval", "stats-interval")
	bindFlag(cmdMine, "store.path", "store")
	bindFlag(cmdMine, "rpc.listen", "rpc")
}

func runMine(*cobra.Command, []string) error {
	variant, err := types.ParseVariant(cfg.Miner.Variant)
	if err != nil {
		return err
	}
	data, err := hex.DecodeString(flagMine.Header)
	if err != nil {
		return fmt.Errorf("decode header: %w", err)
	}
	w, err := work.New(variant, data, cfg.Miner.Difficulty)
	if err != nil {
		return err
	}

	hasher, err := consensus.NewHasher()
	if err != nil {
		return err
	}
	defer hasher.Close()

	st, err := store.NewBadgerStore(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer st.Close()

	m := miner.NewMiner(miner.Config{
		Threads:       cfg.Miner.Threads,
		StatsInterval: cfg.Miner.StatsInterval,
	}, hasher, st)

	if cfg.RPC.Listen != "" {
		server := rpc.NewServer(hasher, st, m)
		go func() {
			if err := server.Start(cfg.RPC.Listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("RPC server failed")
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := m.Start(ctx, w); err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() { done <- m.Wait() }()

	for {
		select {
		case share := <-m.Shares():
			fmt.Printf("share %s nonce %08x\n", share.Hash, share.Nonce)
		case err := <-done:
			if err != nil {
				return err
			}
			if ctx.Err() == nil {
				log.Info().Msg("Nonce space exhausted")
			}
			return ignoreNotRunning(m.Stop())
		case <-ctx.Done():
			log.Info().Msg("Shutting down...")
			return ignoreNotRunning(m.Stop())
		}
	}
}

func ignoreNotRunning(err error) error {
	if errors.Is(err, miner.ErrNotRunning) {
		return nil
	}
	return err
}
