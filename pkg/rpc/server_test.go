package rpc

import (
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/heavycoin/heavyminer/pkg/core/consensus"
	"github.com/heavycoin/heavyminer/pkg/core/types"
	"github.com/heavycoin/heavyminer/pkg/store"
	"github.com/heavycoin/heavyminer/pkg/work"
)

type fakeMiner struct{}

func (fakeMiner) Hashes() uint64    { return 1234 }
func (fakeMiner) Hashrate() float64 { return 56.5 }

func newTestServer(t *testing.T) (*Server, *store.BadgerStore) {
	t.Helper()
	st, err := store.NewBadgerStore("")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return NewServer(consensus.NewHeavyHasher(consensus.SHA256Domain{}), st, fakeMiner{}), st
}

func get(t *testing.T, s *Server, url string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	return rec
}

func TestHandleHash(t *testing.T) {
	s, _ := newTestServer(t)
	raw := make([]byte, types.HeavyHeaderSize)
	raw[0] = 0x42

	rec := get(t, s, "/hash?header="+hex.EncodeToString(raw))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp HashResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, "heavy", resp.Variant)

	normalized, err := work.Normalize(raw)
	require.NoError(t, err)
	want, err := s.hasher.Hash(normalized)
	require.NoError(t, err)
	require.Equal(t, want.Hex(), resp.Hash)
}

func TestHandleHashErrors(t *testing.T) {
	s, _ := newTestServer(t)
	require.Equal(t, http.StatusBadRequest, get(t, s, "/hash?header=xyz").Code)
	require.Equal(t, http.StatusBadRequest, get(t, s, "/hash?header=0011").Code)
	require.Equal(t, http.StatusBadRequest, get(t, s, "/hash").Code)
}

func TestHandleMasks(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s, "/masks?diff=1")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp MasksResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, 31, resp.TBits)
	require.Equal(t, "0xff000000", resp.Sha)
	require.Equal(t, "0xff000000", resp.Keccak)
	require.Equal(t, "0xff000000", resp.Groestl)
	require.Equal(t, "0xfe000000", resp.Blake)
	require.Equal(t, "00000000ffff0000000000000000000000000000000000000000000000000000", resp.Target)

	require.Equal(t, http.StatusBadRequest, get(t, s, "/masks?diff=abc").Code)
	require.Equal(t, http.StatusBadRequest, get(t, s, "/masks?diff=0").Code)
	require.Equal(t, http.StatusBadRequest, get(t, s, "/masks?diff=-2").Code)
}

func TestHandleStatus(t *testing.T) {
	s, st := newTestServer(t)
	require.NoError(t, st.SaveShare(&types.Share{Hash: types.Hash{1}}))

	rec := get(t, s, "/status")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp StatusResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, uint64(1), resp.Shares)
	require.Equal(t, uint64(1234), resp.Hashes)
	require.Equal(t, 56.5, resp.Hashrate)
	require.Equal(t, consensus.HasHefty1, resp.Hefty1)
}

func TestHandleStatusWithoutCollaborators(t *testing.T) {
	s := NewServer(consensus.NewHeavyHasher(consensus.SHA256Domain{}), nil, nil)
	rec := get(t, s, "/status")
	require.Equal(t, http.StatusOK, rec.Code)
}
