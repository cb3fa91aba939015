package message

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytesBody(t *testing.T) {
	body := NewBytesBody([]byte("payload"))
	ctx := context.Background()

	assert.False(t, body.EndOfStream())

	chunk, err := body.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), chunk)
	assert.True(t, body.EndOfStream())

	_, err = body.Next(ctx)
	assert.Equal(t, io.EOF, err)

	trailers, err := body.Trailers(ctx)
	require.NoError(t, err)
	assert.Nil(t, trailers)
}

func TestBytesBody_Empty(t *testing.T) {
	body := NewBytesBody(nil)

	assert.True(t, body.EndOfStream())
	_, err := body.Next(context.Background())
	assert.Equal(t, io.EOF, err)
}

func TestBytesBody_ContextCancelled(t *testing.T) {
	body := NewBytesBody([]byte("payload"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := body.Next(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReaderBody_ChunksUpToSize(t *testing.T) {
	body := NewReaderBody(strings.NewReader("abcdefghij"), 4)
	ctx := context.Background()

	var total []byte
	for {
		chunk, err := body.Next(ctx)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		assert.LessOrEqual(t, len(chunk), 4)
		total = append(total, chunk...)
	}

	assert.Equal(t, "abcdefghij", string(total))
	assert.True(t, body.EndOfStream())
}

func TestReaderBody_EmptyReader(t *testing.T) {
	body := NewReaderBody(strings.NewReader(""), 8)

	_, err := body.Next(context.Background())
	assert.Equal(t, io.EOF, err)
	assert.True(t, body.EndOfStream())
}
