package hybrid

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hybrid_gw/internal/message"
)

// scriptedBody yields a fixed chunk sequence, then an optional error
// or io.EOF, with optional trailers.
type scriptedBody struct {
	chunks   [][]byte
	chunkErr error
	trailers *message.Headers
	trailErr error
	pos      int
}

func (s *scriptedBody) EndOfStream() bool {
	return s.pos >= len(s.chunks) && s.chunkErr == nil
}

func (s *scriptedBody) Next(ctx context.Context) ([]byte, error) {
	if s.pos < len(s.chunks) {
		chunk := s.chunks[s.pos]
		s.pos++
		return chunk, nil
	}
	if s.chunkErr != nil {
		return nil, s.chunkErr
	}
	return nil, io.EOF
}

func (s *scriptedBody) Trailers(ctx context.Context) (*message.Headers, error) {
	return s.trailers, s.trailErr
}

func collect(t *testing.T, body message.Body) [][]byte {
	t.Helper()
	var chunks [][]byte
	for {
		chunk, err := body.Next(context.Background())
		if err == io.EOF {
			return chunks
		}
		require.NoError(t, err)
		chunks = append(chunks, chunk)
	}
}

func TestResponseBody_ForwardsChunksTransparently(t *testing.T) {
	for _, branch := range []Branch{BranchWeb, BranchRpc} {
		t.Run(branch.String(), func(t *testing.T) {
			chunks := [][]byte{[]byte("one"), []byte("two"), []byte("three")}
			direct := collect(t, &scriptedBody{chunks: chunks})
			wrapped := collect(t, NewResponseBody(branch, &scriptedBody{chunks: chunks}))

			assert.Equal(t, direct, wrapped, "wrapped body must yield byte-identical chunks")
		})
	}
}

func TestResponseBody_EndOfStreamForwards(t *testing.T) {
	inner := &scriptedBody{chunks: [][]byte{[]byte("x")}}
	body := NewResponseBody(BranchWeb, inner)

	assert.False(t, body.EndOfStream())
	_, err := body.Next(context.Background())
	require.NoError(t, err)
	assert.True(t, body.EndOfStream())
}

func TestResponseBody_ChunkErrorIsBranchTagged(t *testing.T) {
	innerErr := fmt.Errorf("stream torn down")

	tests := []struct {
		name   string
		branch Branch
	}{
		{name: "web branch", branch: BranchWeb},
		{name: "rpc branch", branch: BranchRpc},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			body := NewResponseBody(tc.branch, &scriptedBody{chunkErr: innerErr})

			_, err := body.Next(context.Background())
			require.Error(t, err)

			var hybridErr *HybridError
			require.ErrorAs(t, err, &hybridErr)
			assert.Equal(t, tc.branch, hybridErr.Branch())
			assert.Equal(t, innerErr.Error(), hybridErr.Error(), "rendering must match the inner error exactly")
			assert.ErrorIs(t, err, innerErr)
		})
	}
}

func TestResponseBody_EOFPassesThroughUntagged(t *testing.T) {
	body := NewResponseBody(BranchRpc, &scriptedBody{})

	_, err := body.Next(context.Background())
	assert.Equal(t, io.EOF, err)
}

func TestResponseBody_TrailersForward(t *testing.T) {
	trailers := message.NewHeaders()
	trailers.Set("grpc-status", "0")
	body := NewResponseBody(BranchRpc, &scriptedBody{trailers: trailers})

	got, err := body.Trailers(context.Background())
	require.NoError(t, err)
	assert.Same(t, trailers, got)
}

func TestResponseBody_TrailerErrorIsBranchTagged(t *testing.T) {
	trailErr := fmt.Errorf("trailers lost")
	body := NewResponseBody(BranchWeb, &scriptedBody{trailErr: trailErr})

	_, err := body.Trailers(context.Background())

	var hybridErr *HybridError
	require.ErrorAs(t, err, &hybridErr)
	assert.Equal(t, BranchWeb, hybridErr.Branch())
	assert.ErrorIs(t, err, trailErr)
}
