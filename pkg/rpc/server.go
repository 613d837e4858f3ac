package rpc

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/heavycoin/heavyminer/pkg/core/consensus"
	"github.com/heavycoin/heavyminer/pkg/core/consensus/heavy"
	"github.com/heavycoin/heavyminer/pkg/core/types"
	"github.com/heavycoin/heavyminer/pkg/store"
	"github.com/heavycoin/heavyminer/pkg/work"
)

// MinerStats is the part of the miner the status endpoint reports on.
type MinerStats interface {
	Hashes() uint64
	Hashrate() float64
}

type Server struct {
	hasher consensus.Hasher
	store  store.ShareStore
	miner  MinerStats
}

// NewServer returns a diagnostics server. st and miner may be nil.
func NewServer(hasher consensus.Hasher, st store.ShareStore, miner MinerStats) *Server {
	return &Server{
		hasher: hasher,
		store:  st,
		miner:  miner,
	}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/hash", s.handleHash)
	mux.HandleFunc("/masks", s.handleMasks)
	mux.HandleFunc("/status", s.handleStatus)
	return mux
}

func (s *Server) Start(addr string) error {
	log.Info().Str("addr", addr).Msg("RPC server listening")
	return http.ListenAndServe(addr, s.Handler())
}

type HashResponse struct {
	Variant string `json:"variant"`
	Hash    string `json:"hash"`
}

// GET /hash?header=<hex>
// The header is raw (not yet normalized); its length selects the variant.
func (s *Server) handleHash(w http.ResponseWriter, r *http.Request) {
	raw, err := hex.DecodeString(r.URL.Query().Get("header"))
	if err != nil {
		http.Error(w, "invalid header hex", http.StatusBadRequest)
		return
	}
	variant, err := types.VariantForSize(len(raw))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	data, err := work.Normalize(raw)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	hash, err := s.hasher.Hash(data)
	if err != nil {
		http.Error(w, fmt.Sprintf("hash failed: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, HashResponse{Variant: variant.String(), Hash: hash.Hex()})
}

type MasksResponse struct {
	Difficulty float64 `json:"difficulty"`
	TBits      int     `json:"tbits"`
	Sha        string  `json:"sha"`
	Keccak     string  `json:"keccak"`
	Groestl    string  `json:"groestl"`
	Blake      string  `json:"blake"`
	Target     string  `json:"target"`
}

// GET /masks?diff=<float>
func (s *Server) handleMasks(w http.ResponseWriter, r *http.Request) {
	diff, err := strconv.ParseFloat(r.URL.Query().Get("diff"), 64)
	if err != nil || !(diff > 0) {
		http.Error(w, "diff must be a positive number", http.StatusBadRequest)
		return
	}

	set := heavy.DeriveMasks(diff)
	mask := func(a heavy.Algorithm) string { return fmt.Sprintf("0x%08x", set.Mask(a)) }
	writeJSON(w, MasksResponse{
		Difficulty: diff,
		TBits:      set.TBits,
		Sha:        mask(heavy.Reference),
		Keccak:     mask(heavy.Keccak),
		Groestl:    mask(heavy.Groestl),
		Blake:      mask(heavy.Blake),
		Target:     fmt.Sprintf("%064x", consensus.TargetFromDifficulty(diff)),
	})
}

type StatusResponse struct {
	Hefty1   bool    `json:"hefty1"`
	Shares   uint64  `json:"shares"`
	Hashes   uint64  `json:"hashes"`
	Hashrate float64 `json:"hashrate"`
}

// GET /status
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	resp := StatusResponse{Hefty1: consensus.HasHefty1}
	if s.store != nil {
		count, err := s.store.Count()
		if err != nil {
			http.Error(w, fmt.Sprintf("failed to count shares: %v", err), http.StatusInternalServerError)
			return
		}
		resp.Shares = count
	}
	if s.miner != nil {
		resp.Hashes = s.miner.Hashes()
		resp.Hashrate = s.miner.Hashrate()
	}
	writeJSON(w, resp)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("RPC: failed to write response")
	}
}
