package etcd

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"node-manager/core/node"
)

// DefaultNamespace is the key prefix for node records.
const DefaultNamespace = "/gpu/nodes/"

// Outcome tags a store call with its precise cause. Callers that only need
// the reference semantics use PutResult.OK / GetResult.NotFound, which
// collapse every non-OK outcome; reporters and tests can still tell a
// network failure from a present-but-undecodable value.
type Outcome string

const (
	// OutcomeOK means the call succeeded.
	OutcomeOK Outcome = "ok"
	// OutcomeNotFound means the store holds no value for the key.
	OutcomeNotFound Outcome = "not_found"
	// OutcomeTransportError means the store could not be reached.
	OutcomeTransportError Outcome = "transport_error"
	// OutcomeProtocolError means the store answered with a non-success
	// status or a malformed response body.
	OutcomeProtocolError Outcome = "protocol_error"
	// OutcomeDecodeError means a value was returned but could not be
	// decoded as a node document.
	OutcomeDecodeError Outcome = "decode_error"
)

// PutResult is the outcome of a write.
type PutResult struct {
	Outcome Outcome
}

// OK reports whether the write succeeded. Every failure cause collapses to
// false; no error crosses the store boundary.
func (r PutResult) OK() bool {
	return r.Outcome == OutcomeOK
}

// GetResult is the outcome of a read. Document is only set when Found.
type GetResult struct {
	Outcome  Outcome
	Document yaml.MapSlice
}

// Found reports whether a decodable value exists for the key.
func (r GetResult) Found() bool {
	return r.Outcome == OutcomeOK
}

// NotFound is the collapsed view of every failure cause: transport errors,
// protocol errors, missing values and undecodable values all read as
// not found.
func (r GetResult) NotFound() bool {
	return !r.Found()
}

// Client defines the interface for node record storage.
type Client interface {
	// Put writes the serialized record under the namespaced identifier.
	// Last-writer-wins, whole-value overwrite.
	Put(ctx context.Context, identifier string, value []byte) PutResult
	// Get reads the namespaced identifier and decodes the stored document.
	Get(ctx context.Context, identifier string) GetResult
}

// kvRequest is the gateway request body. Value is omitted for range reads.
type kvRequest struct {
	Key   string `json:"key"`
	Value string `json:"value,omitempty"`
}

// rangeResponse is the subset of the gateway range response we consume.
type rangeResponse struct {
	Kvs []struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	} `json:"kvs"`
}

// NewClient creates a client for the etcd v3 HTTP gateway.
func NewClient(cfg Config) (Client, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("etcd endpoint is required")
	}

	namespace := cfg.Namespace
	if namespace == "" {
		namespace = DefaultNamespace
	}

	// Ensure timeout defaults if not set
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 10
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	// Create custom transport with strict timeouts
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration, // Connection setup timeout
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration, // TLS Handshake timeout
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration, // Wait for first response byte timeout
	}

	return &gatewayClient{
		endpoint:  strings.TrimRight(cfg.Endpoint, "/"),
		namespace: namespace,
		http: &http.Client{
			Transport: transport,
			Timeout:   timeoutDuration,
		},
	}, nil
}

// gatewayClient talks to the etcd v3 HTTP+JSON gateway. Keys and values are
// base64-encoded on the wire; both directions must reproduce this exactly
// to stay compatible with records written by other tooling.
type gatewayClient struct {
	endpoint  string
	namespace string
	http      *http.Client
}

func (c *gatewayClient) key(identifier string) string {
	return c.namespace + identifier
}

func (c *gatewayClient) post(ctx context.Context, path string, body kvRequest) (*http.Response, Outcome) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, OutcomeTransportError
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(payload))
	if err != nil {
		return nil, OutcomeTransportError
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, OutcomeTransportError
	}

	return resp, OutcomeOK
}

// Put writes the record value under "<namespace><identifier>" via
// POST /v3/kv/put. Success iff the gateway answers HTTP 200.
func (c *gatewayClient) Put(ctx context.Context, identifier string, value []byte) PutResult {
	body := kvRequest{
		Key:   base64.StdEncoding.EncodeToString([]byte(c.key(identifier))),
		Value: base64.StdEncoding.EncodeToString(value),
	}

	resp, outcome := c.post(ctx, "/v3/kv/put", body)
	if outcome != OutcomeOK {
		return PutResult{Outcome: outcome}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return PutResult{Outcome: OutcomeProtocolError}
	}

	return PutResult{Outcome: OutcomeOK}
}

// Get reads "<namespace><identifier>" via POST /v3/kv/range and decodes the
// first returned value as a node document.
func (c *gatewayClient) Get(ctx context.Context, identifier string) GetResult {
	body := kvRequest{
		Key: base64.StdEncoding.EncodeToString([]byte(c.key(identifier))),
	}

	resp, outcome := c.post(ctx, "/v3/kv/range", body)
	if outcome != OutcomeOK {
		return GetResult{Outcome: outcome}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return GetResult{Outcome: OutcomeProtocolError}
	}

	var parsed rangeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return GetResult{Outcome: OutcomeProtocolError}
	}

	if len(parsed.Kvs) == 0 {
		return GetResult{Outcome: OutcomeNotFound}
	}

	raw, err := base64.StdEncoding.DecodeString(parsed.Kvs[0].Value)
	if err != nil {
		return GetResult{Outcome: OutcomeDecodeError}
	}

	document, err := node.DecodeMapping(raw)
	if err != nil {
		return GetResult{Outcome: OutcomeDecodeError}
	}

	return GetResult{Outcome: OutcomeOK, Document: document}
}
