package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kumarlokesh/prefix-tree/internal/api"
	"github.com/kumarlokesh/prefix-tree/internal/config"
)

func newTestServer(t *testing.T) (*api.Store, *httptest.Server) {
	t.Helper()
	store, err := api.NewStore(config.DefaultSeedWords...)
	require.NoError(t, err)

	server := api.NewServer(":0", store, zerolog.Nop())
	testServer := httptest.NewServer(server.Handler())
	t.Cleanup(testServer.Close)
	return store, testServer
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

type lookupResult struct {
	Prefix    string   `json:"prefix"`
	HasPrefix bool     `json:"has_prefix"`
	Words     []string `json:"words"`
}

func TestAPI(t *testing.T) {
	store, testServer := newTestServer(t)
	client := testServer.Client()

	t.Run("Health", func(t *testing.T) {
		resp, err := client.Get(testServer.URL + "/health")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
		assert.Equal(t, map[string]string{"status": "ok"}, decode[map[string]string](t, resp))
	})

	t.Run("Lookup", func(t *testing.T) {
		tests := []struct {
			prefix  string
			want    []string
			wantHas bool
		}{
			{"ap", []string{"ap", "apple"}, true},
			{"b", []string{"banana"}, true},
			{"c", []string{}, false},
			{"applesauce", []string{}, false},
			{"", []string{"ap", "apple", "avocado", "banana"}, true},
		}
		for _, tt := range tests {
			t.Run(fmt.Sprintf("prefix %q", tt.prefix), func(t *testing.T) {
				resp, err := client.Get(testServer.URL + "/words?prefix=" + tt.prefix)
				require.NoError(t, err)
				defer resp.Body.Close()

				assert.Equal(t, http.StatusOK, resp.StatusCode)
				got := decode[lookupResult](t, resp)
				assert.Equal(t, tt.prefix, got.Prefix)
				assert.Equal(t, tt.wantHas, got.HasPrefix)
				assert.Equal(t, tt.want, got.Words)
			})
		}
	})

	t.Run("Get word", func(t *testing.T) {
		resp, err := client.Get(testServer.URL + "/words/avocado")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp2, err := client.Get(testServer.URL + "/words/avo")
		require.NoError(t, err)
		defer resp2.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp2.StatusCode)
	})

	t.Run("Put word", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodPut, testServer.URL+"/words/apricot", nil)
		require.NoError(t, err)

		resp, err := client.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.True(t, store.Contains("apricot"))
		assert.Equal(t, []string{"ap", "apple", "apricot"}, store.Lookup("ap"))
	})

	t.Run("Insert batch", func(t *testing.T) {
		body := bytes.NewBufferString(`{"words":["band","bandana"]}`)
		resp, err := client.Post(testServer.URL+"/words", "application/json", body)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, map[string]int{"inserted": 2}, decode[map[string]int](t, resp))
		assert.Equal(t, []string{"banana", "band", "bandana"}, store.Lookup("ban"))
	})

	t.Run("Insert batch with bad body", func(t *testing.T) {
		resp, err := client.Post(testServer.URL+"/words", "application/json", strings.NewReader("{"))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, decode[map[string]string](t, resp)["error"], "invalid request body")
	})

	t.Run("Stats", func(t *testing.T) {
		resp, err := client.Get(testServer.URL + "/stats")
		require.NoError(t, err)
		defer resp.Body.Close()

		stats := decode[api.Stats](t, resp)
		assert.Equal(t, store.Stats(), stats)
		assert.Equal(t, 7, stats.Words)
		assert.Equal(t, len("avocado"), stats.MaxDepth)
	})

	t.Run("Method not allowed", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodDelete, testServer.URL+"/words/apple", nil)
		require.NoError(t, err)

		resp, err := client.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	})
}

func TestAPI_ClosedStore(t *testing.T) {
	store, testServer := newTestServer(t)
	store.Close()

	req, err := http.NewRequest(http.MethodPut, testServer.URL+"/words/apple", nil)
	require.NoError(t, err)
	resp, err := testServer.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	resp2, err := testServer.Client().Post(testServer.URL+"/words", "application/json",
		strings.NewReader(`{"words":["apple"]}`))
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp2.StatusCode)

	resp3, err := testServer.Client().Get(testServer.URL + "/words?prefix=a")
	require.NoError(t, err)
	defer resp3.Body.Close()
	got := decode[lookupResult](t, resp3)
	assert.Empty(t, got.Words)
	assert.False(t, got.HasPrefix)
}

func TestServer_StartFailsOnBusyAddress(t *testing.T) {
	store, err := api.NewStore()
	require.NoError(t, err)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	server := api.NewServer(listener.Addr().String(), store, zerolog.Nop())
	err = server.Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to listen on "+server.Addr())
}

func TestServer_ServeAndShutdown(t *testing.T) {
	store, err := api.NewStore("go")
	require.NoError(t, err)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	server := api.NewServer(listener.Addr().String(), store, zerolog.Nop(), api.WithReadTimeout(time.Second))
	assert.Equal(t, listener.Addr().String(), server.Addr())
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(listener)
	}()

	resp, err := http.Get("http://" + listener.Addr().String() + "/words?prefix=g")
	require.NoError(t, err)
	got := decode[lookupResult](t, resp)
	resp.Body.Close()
	assert.Equal(t, []string{"go"}, got.Words)
	assert.True(t, got.HasPrefix)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, server.Shutdown(ctx))
	assert.NoError(t, <-errCh)
}
