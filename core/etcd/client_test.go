package etcd_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"node-manager/core/etcd"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (etcd.Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := etcd.NewClient(etcd.Config{
		Endpoint:       srv.URL,
		Namespace:      "/gpu/nodes/",
		TimeoutSeconds: 5,
	})
	require.NoError(t, err)

	return client, srv
}

func TestNewClient(t *testing.T) {
	t.Run("RequiresEndpoint", func(t *testing.T) {
		_, err := etcd.NewClient(etcd.Config{})
		assert.Error(t, err)
	})

	t.Run("ValidConfig", func(t *testing.T) {
		client, err := etcd.NewClient(etcd.Config{Endpoint: "http://localhost:2380"})
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})
}

func TestPut(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		var gotPath, gotKey, gotValue string

		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path

			var body struct {
				Key   string `json:"key"`
				Value string `json:"value"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

			key, err := base64.StdEncoding.DecodeString(body.Key)
			require.NoError(t, err)
			value, err := base64.StdEncoding.DecodeString(body.Value)
			require.NoError(t, err)

			gotKey = string(key)
			gotValue = string(value)

			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"header":{"revision":"7"}}`))
		})

		res := client.Put(context.Background(), "test-node-1", []byte("hostname: test-node-1\n"))

		assert.True(t, res.OK())
		assert.Equal(t, etcd.OutcomeOK, res.Outcome)
		assert.Equal(t, "/v3/kv/put", gotPath)
		assert.Equal(t, "/gpu/nodes/test-node-1", gotKey)
		assert.Equal(t, "hostname: test-node-1\n", gotValue)
	})

	t.Run("NonSuccessStatus", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		res := client.Put(context.Background(), "test-node-1", []byte("x"))

		assert.False(t, res.OK())
		assert.Equal(t, etcd.OutcomeProtocolError, res.Outcome)
	})

	t.Run("TransportFailure", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		client, err := etcd.NewClient(etcd.Config{Endpoint: srv.URL, TimeoutSeconds: 1})
		require.NoError(t, err)
		srv.Close()

		res := client.Put(context.Background(), "test-node-1", []byte("x"))

		assert.False(t, res.OK())
		assert.Equal(t, etcd.OutcomeTransportError, res.Outcome)
	})
}

func TestGet(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		stored := "hostname: test-node-1\nip: 10.0.0.10\n"

		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v3/kv/range", r.URL.Path)

			var body struct {
				Key string `json:"key"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			key, err := base64.StdEncoding.DecodeString(body.Key)
			require.NoError(t, err)
			assert.Equal(t, "/gpu/nodes/test-node-1", string(key))

			resp := map[string]any{
				"kvs": []map[string]string{
					{
						"key":   body.Key,
						"value": base64.StdEncoding.EncodeToString([]byte(stored)),
					},
				},
			}
			_ = json.NewEncoder(w).Encode(resp)
		})

		res := client.Get(context.Background(), "test-node-1")

		require.True(t, res.Found())
		assert.Equal(t, yaml.MapSlice{
			{Key: "hostname", Value: "test-node-1"},
			{Key: "ip", Value: "10.0.0.10"},
		}, res.Document)
	})

	t.Run("NoValueForKey", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"header":{"revision":"7"}}`))
		})

		res := client.Get(context.Background(), "missing-node")

		assert.True(t, res.NotFound())
		assert.Equal(t, etcd.OutcomeNotFound, res.Outcome)
		assert.Nil(t, res.Document)
	})

	t.Run("NonSuccessStatus", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		res := client.Get(context.Background(), "test-node-1")

		assert.True(t, res.NotFound())
		assert.Equal(t, etcd.OutcomeProtocolError, res.Outcome)
	})

	t.Run("MalformedResponseBody", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"kvs": [`))
		})

		res := client.Get(context.Background(), "test-node-1")

		assert.True(t, res.NotFound())
		assert.Equal(t, etcd.OutcomeProtocolError, res.Outcome)
	})

	t.Run("ValueNotBase64", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"kvs":[{"key":"azE=","value":"%%%not-base64%%%"}]}`))
		})

		res := client.Get(context.Background(), "test-node-1")

		assert.True(t, res.NotFound())
		assert.Equal(t, etcd.OutcomeDecodeError, res.Outcome)
	})

	t.Run("ValueNotAMapping", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			value := base64.StdEncoding.EncodeToString([]byte("- just\n- a\n- list\n"))
			_, _ = w.Write([]byte(`{"kvs":[{"key":"azE=","value":"` + value + `"}]}`))
		})

		res := client.Get(context.Background(), "test-node-1")

		assert.True(t, res.NotFound())
		assert.Equal(t, etcd.OutcomeDecodeError, res.Outcome)
	})

	t.Run("TransportFailure", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		client, err := etcd.NewClient(etcd.Config{Endpoint: srv.URL, TimeoutSeconds: 1})
		require.NoError(t, err)
		srv.Close()

		res := client.Get(context.Background(), "test-node-1")

		assert.True(t, res.NotFound())
		assert.Equal(t, etcd.OutcomeTransportError, res.Outcome)
	})
}

// Transport failures and missing values are indistinguishable through the
// collapsed view, which is exactly the compatibility contract.
func TestGet_CollapsedView(t *testing.T) {
	empty, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	srv := httptest.NewServer(http.NotFoundHandler())
	down, err := etcd.NewClient(etcd.Config{Endpoint: srv.URL, TimeoutSeconds: 1})
	require.NoError(t, err)
	srv.Close()

	fromEmpty := empty.Get(context.Background(), "node-a")
	fromDown := down.Get(context.Background(), "node-a")

	assert.True(t, fromEmpty.NotFound())
	assert.True(t, fromDown.NotFound())
	assert.Equal(t, fromEmpty.NotFound(), fromDown.NotFound())
}
