package heavy

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/heavycoin/heavyminer/pkg/core/types"
)

// sha256Domain stands in for HEFTY1 in the recorded vectors.
var sha256Domain = DomainFunc(sha256.Sum256)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestSumGoldenVectors(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{
			name:  "zero heavy header",
			input: make([]byte, types.HeavyHeaderSize),
			want:  "dc6796830ab594d4e5bc5ddcec62cc6cf5d28d08b58f2086a60d59847deac2bc",
		},
		{
			name:  "zero hefty header",
			input: make([]byte, types.HeftyHeaderSize),
			want:  "4a79d21f4f3d8b448c50b2f39d5931dae41758ea3f2d96cc88b78d4765291df7",
		},
		{
			name:  "patterned heavy header",
			input: testHeader(types.HeavyHeaderSize),
			want:  "72c6d98f57801aff86b946d1b287b6496b304ac2f19e585734bb8f14c806c051",
		},
	}

	h := New(sha256Domain)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, h.Sum(tt.input).Hex())
		})
	}
}

func TestAuxKnownAnswers(t *testing.T) {
	tests := []struct {
		alg   Algorithm
		input []byte
		want  string
	}{
		{Keccak, nil, "0eab42de4c3ceb9235fc91acffe746b29c29a8c366b7c60e4e67c466f36a4304c00fa9caf9d87976ba469bcbe06713b435f091ef2769fb160cdab33d3670680e"},
		{Keccak, []byte("abc"), "18587dc2ea106b9a1563e32b3312421ca164c7f1f07bc922a9c83d77cea3a1e5d0c69910739025372dc14ac9642629379540c17e2a65b19d77aa511a9d00bb96"},
		{Groestl, nil, "6d3ad29d279110eef3adbd66de2a0345a77baede1557f5d099fce0c03d6dc2ba8e6d4a6633dfbd66053c20faa87d1a11f39a7fbe4a6c2f009801370308fc4ad8"},
		{Blake, nil, "a8cfbbd73726062df0c6864dda65defe58ef0cc52a5625090fa17601e1eecd1b628e94f396ae402a00acc9eab77b4d4c2e852aaaa25a636d80af3fc7913ef5b8"},
		{Blake, []byte{0}, "97961587f6d970faba6d2478045de6d1fabd09b61ae50932054d52bc29d31be4ff9102b9f69e2bbdb83be13d4b9c06091e5fa0b48bd081b634058be0ec49beb3"},
		{Blake, make([]byte, 144), "313717d608e9cf758dcb1eb0f0c3cf9fc150b2d500fb33f51c52afc99d358a2f1374b8a38bba7974e7f6ef79cab16f22ce1e649d6e01ad9589c213045d545dde"},
	}
	for _, tt := range tests {
		t.Run(tt.alg.String(), func(t *testing.T) {
			ctx := newAux(tt.alg)
			ctx.Write(tt.input)
			require.Equal(t, types.Words512FromBytes(mustHex(t, tt.want)), ctx.Final(), "input %x", tt.input)
		})
	}
}

// The chain feeds input and H1 as two writes; every split of the same bytes
// must give the same digest.
func TestAuxSplitWrites(t *testing.T) {
	data := testHeader(types.HeavyHeaderSize + 32)
	for _, alg := range auxAlgorithms {
		whole := newAux(alg)
		whole.Write(data)
		want := whole.Final()

		for cut := 0; cut <= len(data); cut++ {
			ctx := newAux(alg)
			ctx.Write(data[:cut])
			ctx.Write(data[cut:])
			require.Equal(t, want, ctx.Final(), "%v split at %d", alg, cut)
		}
	}
}
