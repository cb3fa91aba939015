package web

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hybrid_gw/internal/message"
	"hybrid_gw/internal/registry"
	"hybrid_gw/types"
)

func newHandler(t *testing.T, f *Factory) *Handler {
	t.Helper()
	h, err := f.New(context.Background(), types.ConnInfo{})
	require.NoError(t, err)
	return h.(*Handler)
}

func TestHandler_RoutesByExactPath(t *testing.T) {
	f := NewFactory(nil, 0)
	f.Handle("/", func(ctx context.Context, req *message.Request) (*message.Response, error) {
		return Text(200, "Hello world!"), nil
	})
	h := newHandler(t, f)

	resp, err := h.Handle(context.Background(), message.NewRequest("GET", "/"))
	require.NoError(t, err)

	assert.Equal(t, 200, resp.Status)
	body := resp.Body.(*message.BytesBody)
	assert.Equal(t, "Hello world!", string(body.Bytes()))
}

func TestHandler_UnknownPathIs404(t *testing.T) {
	h := newHandler(t, NewFactory(nil, 0))

	resp, err := h.Handle(context.Background(), message.NewRequest("GET", "/nope"))
	require.NoError(t, err)

	assert.Equal(t, 404, resp.Status)
}

func TestHandler_PropagatesRouteError(t *testing.T) {
	routeErr := fmt.Errorf("route blew up")
	f := NewFactory(nil, 0)
	f.Handle("/boom", func(ctx context.Context, req *message.Request) (*message.Response, error) {
		return nil, routeErr
	})
	h := newHandler(t, f)

	_, err := h.Handle(context.Background(), message.NewRequest("GET", "/boom"))
	assert.Equal(t, routeErr, err)
}

func TestFactory_ReadyHonorsConnectionBudget(t *testing.T) {
	reg := registry.NewRegistry()
	f := NewFactory(reg, 2)

	ok, err := f.Ready()
	require.NoError(t, err)
	assert.True(t, ok)

	reg.Register("c1", "10.0.0.1:1")
	reg.Register("c2", "10.0.0.1:2")

	ok, err = f.Ready()
	require.NoError(t, err)
	assert.False(t, ok, "factory must backpressure at the connection budget")

	reg.Remove("c1")
	ok, _ = f.Ready()
	assert.True(t, ok)
}

func TestFactory_NoBudgetAlwaysReady(t *testing.T) {
	f := NewFactory(nil, 0)
	ok, err := f.Ready()
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFactory_HandlersAreIndependentPerConnection(t *testing.T) {
	f := NewFactory(nil, 0)
	f.Handle("/", func(ctx context.Context, req *message.Request) (*message.Response, error) {
		return Text(200, "ok"), nil
	})

	first := newHandler(t, f)

	// Routes added after construction do not leak into live handlers.
	f.Handle("/late", func(ctx context.Context, req *message.Request) (*message.Response, error) {
		return Text(200, "late"), nil
	})
	second := newHandler(t, f)

	resp, err := first.Handle(context.Background(), message.NewRequest("GET", "/late"))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.Status)

	resp, err = second.Handle(context.Background(), message.NewRequest("GET", "/late"))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.Status)
}
