package fetcher_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hulla/gittar/internal/fetcher"
)

func TestClient_Get_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("payload"))
	}))
	t.Cleanup(server.Close)

	client := fetcher.New(fetcher.Options{})
	dl, err := client.Get(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, dl.StatusCode)
	assert.Equal(t, int64(len("payload")), dl.Size)
	require.NotEmpty(t, dl.Path)
	t.Cleanup(func() { os.Remove(dl.Path) })

	content, err := os.ReadFile(dl.Path)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(content))
}

func TestClient_Get_NotFoundIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	t.Cleanup(server.Close)

	client := fetcher.New(fetcher.Options{})
	dl, err := client.Get(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, dl.StatusCode)
	assert.Empty(t, dl.Path)
}

func TestClient_Get_TransportError(t *testing.T) {
	server := httptest.NewServer(nil)
	server.Close()

	client := fetcher.New(fetcher.Options{})
	_, err := client.Get(context.Background(), server.URL)

	assert.Error(t, err)
}

func TestClient_Get_NoRetryByDefault(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)

	client := fetcher.New(fetcher.Options{})
	dl, err := client.Get(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, dl.StatusCode)
	assert.Equal(t, int32(1), hits.Load())
}

func TestClient_Get_RetriesTransientStatus(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	}))
	t.Cleanup(server.Close)

	client := fetcher.New(fetcher.Options{MaxRetries: 2})
	dl, err := client.Get(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, dl.StatusCode)
	assert.Equal(t, int32(2), hits.Load())
	t.Cleanup(func() { os.Remove(dl.Path) })
}

func TestClient_Get_NeverRetries404(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.NotFound(w, r)
	}))
	t.Cleanup(server.Close)

	client := fetcher.New(fetcher.Options{MaxRetries: 3})
	dl, err := client.Get(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, dl.StatusCode)
	assert.Equal(t, int32(1), hits.Load())
}

func TestClient_Get_RetriesExhaustedSurfacesStatus(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	client := fetcher.New(fetcher.Options{MaxRetries: 2})
	dl, err := client.Get(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, dl.StatusCode)
	assert.Equal(t, int32(3), hits.Load())
}

func TestShouldRetryStatus(t *testing.T) {
	assert.True(t, fetcher.ShouldRetryStatus(429))
	assert.True(t, fetcher.ShouldRetryStatus(502))
	assert.True(t, fetcher.ShouldRetryStatus(503))
	assert.True(t, fetcher.ShouldRetryStatus(504))
	assert.False(t, fetcher.ShouldRetryStatus(404))
	assert.False(t, fetcher.ShouldRetryStatus(200))
	assert.False(t, fetcher.ShouldRetryStatus(500))
}
