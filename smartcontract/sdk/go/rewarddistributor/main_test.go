package rewarddistributor_test

import (
	"bytes"
	"context"
	"flag"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	solanarpc "github.com/gagliardetto/solana-go/rpc"
	"github.com/lmittmann/tint"
	"github.com/malbeclabs/staking/smartcontract/sdk/go/rewarddistributor"
)

var (
	log *slog.Logger
)

// TestMain sets up the test environment with a global logger.
func TestMain(m *testing.M) {
	flag.Parse()
	verbose := false
	if vFlag := flag.Lookup("test.v"); vFlag != nil && vFlag.Value.String() == "true" {
		verbose = true
	}
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	log = slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level:      logLevel,
		TimeFormat: time.RFC3339,
		AddSource:  true,
	}))

	os.Exit(m.Run())
}

type mockRPCClient struct {
	rewarddistributor.RPCClient

	GetAccountInfoFunc func(context.Context, solana.PublicKey) (*solanarpc.GetAccountInfoResult, error)
}

func (m *mockRPCClient) GetAccountInfo(ctx context.Context, account solana.PublicKey) (*solanarpc.GetAccountInfoResult, error) {
	return m.GetAccountInfoFunc(ctx, account)
}

func accountResult(t *testing.T, account interface{ Serialize(io.Writer) error }) *solanarpc.GetAccountInfoResult {
	t.Helper()
	buf := new(bytes.Buffer)
	if err := account.Serialize(buf); err != nil {
		t.Fatalf("mock serialize: %v", err)
	}
	return &solanarpc.GetAccountInfoResult{
		Value: &solanarpc.Account{
			Data: solanarpc.DataBytesOrJSONFromBytes(buf.Bytes()),
		},
	}
}

func u64(v uint64) *uint64 {
	return &v
}
