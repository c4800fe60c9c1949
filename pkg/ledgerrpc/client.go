// Package ledgerrpc builds the Solana RPC client used by the staking binaries.
//
// The SDK packages never retry on their own; retrying lives here, in the transport that
// binaries hand to the SDK clients.
package ledgerrpc

import (
	"net"
	"net/http"
	"time"

	solanarpc "github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
	"github.com/klauspost/compress/gzhttp"
)

const (
	defaultMaxConnsPerHost = 9
	defaultTimeout         = 1 * time.Minute
	defaultKeepAlive       = 180 * time.Second
)

// New creates a Solana RPC client with gzip transport and retrying request behavior.
func New(endpoint string, retryOpt *RetryOptions) *solanarpc.Client {
	return NewWithHeaders(endpoint, nil, retryOpt)
}

// NewWithHeaders is New with custom headers sent on every request, e.g. provider API keys.
func NewWithHeaders(endpoint string, headers map[string]string, retryOpt *RetryOptions) *solanarpc.Client {
	opts := &jsonrpc.RPCClientOpts{
		HTTPClient:    newHTTPClient(),
		CustomHeaders: headers,
	}
	inner := jsonrpc.NewClientWithOpts(endpoint, opts)
	return solanarpc.NewWithCustomRPCClient(WithRetry(inner, retryOpt))
}

func newHTTPClient() *http.Client {
	tr := &http.Transport{
		IdleConnTimeout:     defaultTimeout,
		MaxConnsPerHost:     defaultMaxConnsPerHost,
		MaxIdleConnsPerHost: defaultMaxConnsPerHost,
		Proxy:               http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   defaultTimeout,
			KeepAlive: defaultKeepAlive,
		}).DialContext,
		ForceAttemptHTTP2:   true,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &http.Client{
		Timeout:   defaultTimeout,
		Transport: gzhttp.Transport(tr),
	}
}
