package ledgerrpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	solanarpc "github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
	"github.com/stretchr/testify/require"
)

var _ solanarpc.JSONRPCClient = (*retryingJSONRPCClient)(nil)

func TestLedgerRPC_IsRetryable(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"context canceled", context.Canceled, false},
		{"context deadline", context.DeadlineExceeded, false},
		{"net timeout", timeoutErr{}, true},
		{"econnreset", syscall.ECONNRESET, true},
		{"econnrefused", syscall.ECONNREFUSED, true},
		{"broken pipe msg", errors.New("write: broken pipe"), true},
		{"http 429", httpErr(http.StatusTooManyRequests), true},
		{"http 502", httpErr(http.StatusBadGateway), true},
		{"http 400", httpErr(http.StatusBadRequest), false},
		{"node behind -32005", &jsonrpc.RPCError{Code: -32005, Message: "node is behind"}, true},
		{"wrapped node behind -32004", fmt.Errorf("get slot: %w", &jsonrpc.RPCError{Code: -32004}), true},
		{"invalid params -32602", &jsonrpc.RPCError{Code: -32602}, false},
		{"json syntax", &json.SyntaxError{Offset: 1}, false},
		{"account not found", solanarpc.ErrNotFound, false},
		{"net.Error non-timeout", net.UnknownNetworkError("wat"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, isRetryable(tc.err))
		})
	}
}

func TestLedgerRPC_WithRetry_NilOptionsUsesDefaults(t *testing.T) {
	t.Parallel()

	c := WithRetry(&seqClient{}, nil).(*retryingJSONRPCClient)
	require.Equal(t, defaultMaxAttempts, c.opt.MaxAttempts)
	require.Equal(t, defaultBaseBackoff, c.opt.BaseBackoff)
	require.Equal(t, defaultMaxBackoff, c.opt.MaxBackoff)
}

func TestLedgerRPC_Retry_RetriesThenSucceeds(t *testing.T) {
	t.Parallel()

	inner := &seqClient{
		callForIntoSeq: []error{syscall.ECONNRESET, httpErr(http.StatusTooManyRequests), nil},
	}
	c := WithRetry(inner, fastRetryOpt(5))

	var out any
	require.NoError(t, c.CallForInto(context.Background(), &out, "getAccountInfo", nil))
	require.Equal(t, int32(3), inner.callForIntoN.Load())
}

func TestLedgerRPC_Retry_StopsOnNonRetryable(t *testing.T) {
	t.Parallel()

	inner := &seqClient{
		callForIntoSeq: []error{errors.New("bad request"), nil},
	}
	c := WithRetry(inner, fastRetryOpt(5))

	var out any
	err := c.CallForInto(context.Background(), &out, "getAccountInfo", nil)
	require.EqualError(t, err, "bad request")
	require.Equal(t, int32(1), inner.callForIntoN.Load())
}

func TestLedgerRPC_Retry_ExhaustsAttempts(t *testing.T) {
	t.Parallel()

	inner := &seqClient{
		callForIntoSeq: []error{syscall.ECONNRESET, syscall.ECONNRESET, syscall.ECONNRESET, nil},
	}
	c := WithRetry(inner, fastRetryOpt(3))

	var out any
	err := c.CallForInto(context.Background(), &out, "getProgramAccounts", nil)
	require.ErrorIs(t, err, syscall.ECONNRESET)
	require.Equal(t, int32(3), inner.callForIntoN.Load())
}

func TestLedgerRPC_Retry_ContextCancelDuringBackoff(t *testing.T) {
	t.Parallel()

	inner := &seqClient{
		callForIntoSeq: []error{syscall.ECONNRESET, nil},
	}
	c := WithRetry(inner, &RetryOptions{
		MaxAttempts: 3,
		BaseBackoff: 500 * time.Millisecond,
		MaxBackoff:  500 * time.Millisecond,
	})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	var out any
	err := c.CallForInto(ctx, &out, "getAccountInfo", nil)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, int32(1), inner.callForIntoN.Load())
}

func TestLedgerRPC_CallBatch_RetriesAndReturnsResponses(t *testing.T) {
	t.Parallel()

	inner := &seqClient{
		callBatchSeq: []error{syscall.ETIMEDOUT, nil},
	}
	c := WithRetry(inner, fastRetryOpt(3))

	resp, err := c.CallBatch(context.Background(), jsonrpc.RPCRequests{})
	require.NoError(t, err)
	require.NotNil(t, resp)
	require.Equal(t, int32(2), inner.callBatchN.Load())
}

func TestLedgerRPC_CallWithCallback_Retries(t *testing.T) {
	t.Parallel()

	inner := &seqClient{
		callWithCbSeq: []error{syscall.ETIMEDOUT, nil},
	}
	c := WithRetry(inner, fastRetryOpt(3))

	require.NoError(t, c.CallWithCallback(context.Background(), "getSlot", nil, func(*http.Request, *http.Response) error { return nil }))
	require.Equal(t, int32(2), inner.callWithCbN.Load())
}

type seqClient struct {
	callForIntoSeq []error
	callWithCbSeq  []error
	callBatchSeq   []error

	callForIntoN atomic.Int32
	callWithCbN  atomic.Int32
	callBatchN   atomic.Int32
}

func (s *seqClient) CallForInto(ctx context.Context, out any, method string, params []any) error {
	i := int(s.callForIntoN.Add(1)) - 1
	if i >= len(s.callForIntoSeq) {
		return nil
	}
	return s.callForIntoSeq[i]
}

func (s *seqClient) CallWithCallback(ctx context.Context, method string, params []any, cb func(*http.Request, *http.Response) error) error {
	i := int(s.callWithCbN.Add(1)) - 1
	if i >= len(s.callWithCbSeq) {
		return nil
	}
	return s.callWithCbSeq[i]
}

func (s *seqClient) CallBatch(ctx context.Context, req jsonrpc.RPCRequests) (jsonrpc.RPCResponses, error) {
	i := int(s.callBatchN.Add(1)) - 1
	if i >= len(s.callBatchSeq) {
		return jsonrpc.RPCResponses{}, nil
	}
	return nil, s.callBatchSeq[i]
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return false }

func httpErr(code int) *jsonrpc.HTTPError {
	return jsonrpc.NewHTTPError(code, fmt.Errorf("status code: %d", code))
}

func fastRetryOpt(max int) *RetryOptions {
	return &RetryOptions{
		MaxAttempts: max,
		BaseBackoff: 1 * time.Millisecond,
		MaxBackoff:  2 * time.Millisecond,
	}
}
