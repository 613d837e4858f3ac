package miner

import (
	"context"
	"errors"
	"math"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/heavycoin/heavyminer/pkg/core/consensus"
	"github.com/heavycoin/heavyminer/pkg/core/types"
	"github.com/heavycoin/heavyminer/pkg/store"
	"github.com/heavycoin/heavyminer/pkg/work"
)

var (
	ErrAlreadyRunning = errors.New("miner is already running")
	ErrNotRunning     = errors.New("miner is not running")
)

// Config tunes a Miner.
type Config struct {
	// Threads is the number of worker goroutines; 0 means one per CPU.
	Threads int
	// StatsInterval is how often the hashrate is logged; 0 disables it.
	StatsInterval time.Duration
	// ShareBuffer is the capacity of the Shares channel.
	ShareBuffer int
}

// Miner scans the nonce space of a work item with a pool of workers.
// Each worker hashes its own copy of the header, so the hasher is the only
// thing they share.
type Miner struct {
	cfg    Config
	hasher consensus.Hasher
	store  store.ShareStore

	shares chan *types.Share
	hashes atomic.Uint64

	mu      sync.Mutex
	cancel  context.CancelFunc
	group   *errgroup.Group
	started time.Time
}

// NewMiner returns a stopped miner. st may be nil, in which case shares
// are only published on the Shares channel.
func NewMiner(cfg Config, hasher consensus.Hasher, st store.ShareStore) *Miner {
	if cfg.Threads <= 0 {
		cfg.Threads = runtime.NumCPU()
	}
	if cfg.ShareBuffer <= 0 {
		cfg.ShareBuffer = 64
	}
	return &Miner{
		cfg:    cfg,
		hasher: hasher,
		store:  st,
		shares: make(chan *types.Share, cfg.ShareBuffer),
	}
}

// Shares returns the channel found shares are published on. Shares are
// dropped when nobody drains it.
func (m *Miner) Shares() <-chan *types.Share {
	return m.shares
}

// Hashes returns the total number of headers hashed.
func (m *Miner) Hashes() uint64 {
	return m.hashes.Load()
}

// Hashrate returns hashes per second since the last Start.
func (m *Miner) Hashrate() float64 {
	m.mu.Lock()
	started := m.started
	m.mu.Unlock()
	if started.IsZero() {
		return 0
	}
	elapsed := time.Since(started).Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(m.Hashes()) / elapsed
}

// Start prepares w and begins mining it. Worker i tries nonces
// start+i, start+i+threads, ... until the nonce space wraps, ctx is
// cancelled or Stop is called.
func (m *Miner) Start(ctx context.Context, w *work.Work) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cancel != nil {
		return ErrAlreadyRunning
	}

	w.Prepare()
	log.Info().
		Int("threads", m.cfg.Threads).
		Str("variant", w.Variant.String()).
		Float64("sdiff", w.SDiff).
		Stringer("masks", w.Masks).
		Msg("Miner started")

	ctx, cancel := context.WithCancel(ctx)
	group, ctx := errgroup.WithContext(ctx)
	m.cancel = cancel
	m.group = group
	m.hashes.Store(0)
	m.started = time.Now()

	start := w.Nonce()
	stride := uint32(m.cfg.Threads)
	for i := uint32(0); i < stride; i++ {
		job := w.Clone()
		first := start + i
		count := strideCount(i, stride)
		group.Go(func() error {
			return m.scan(ctx, job, first, stride, count)
		})
	}
	if m.cfg.StatsInterval > 0 {
		go m.reportStats(ctx)
	}
	return nil
}

// Stop cancels all workers and waits for them. It returns the first worker
// error, if any.
func (m *Miner) Stop() error {
	m.mu.Lock()
	cancel, group := m.cancel, m.group
	m.cancel, m.group = nil, nil
	m.mu.Unlock()

	if cancel == nil {
		return ErrNotRunning
	}
	cancel()
	err := group.Wait()
	log.Info().Str("hashes", humanize.Comma(int64(m.Hashes()))).Msg("Miner stopped")
	return err
}

// Wait blocks until every worker has finished, without cancelling them.
func (m *Miner) Wait() error {
	m.mu.Lock()
	group := m.group
	m.mu.Unlock()
	if group == nil {
		return ErrNotRunning
	}
	return group.Wait()
}

// strideCount returns how many nonces worker offset hashes so that the
// workers together cover all 2^32 nonces exactly once.
func strideCount(offset, stride uint32) uint64 {
	return (uint64(math.MaxUint32) + 1 - uint64(offset) + uint64(stride) - 1) / uint64(stride)
}

func (m *Miner) scan(ctx context.Context, w *work.Work, first, stride uint32, count uint64) error {
	nonce := first
	for n := uint64(0); n < count; n++ {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		w.SetNonce(nonce)
		if _, err := w.Regen(m.hasher); err != nil {
			return err
		}
		m.hashes.Add(1)

		ok, err := w.MeetsTarget()
		if err != nil {
			return err
		}
		if ok {
			if err := m.submit(ctx, w); err != nil {
				return err
			}
		}
		nonce += stride
	}
	return nil
}

func (m *Miner) submit(ctx context.Context, w *work.Work) error {
	share := &types.Share{
		Hash:    w.Hash,
		Variant: w.Variant,
		Header:  append([]byte(nil), w.Data...),
		Nonce:   w.Nonce(),
		SDiff:   w.SDiff,
		TBits:   w.Masks.TBits,
		Masks:   w.Masks.Masks,
		FoundAt: time.Now(),
	}
	log.Info().Str("hash", share.Hash.Hex()).Uint32("nonce", share.Nonce).Msg("Found share")

	if m.store != nil {
		if err := m.store.SaveShare(share); err != nil {
			return err
		}
	}

	select {
	case m.shares <- share:
	case <-ctx.Done():
	default:
		log.Warn().Str("hash", share.Hash.Hex()).Msg("Share channel full, dropping notification")
	}
	return nil
}

func (m *Miner) reportStats(ctx context.Context) {
	ticker := time.NewTicker(m.cfg.StatsInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			log.Info().
				Str("hashrate", humanize.SI(m.Hashrate(), "H/s")).
				Str("hashes", humanize.Comma(int64(m.Hashes()))).
				Msg("Miner stats")
		}
	}
}
