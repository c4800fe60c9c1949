package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/malbeclabs/staking/config"
	"github.com/malbeclabs/staking/pkg/ledgerrpc"
	"github.com/malbeclabs/staking/smartcontract/sdk/go/rewarddistributor"
	"github.com/malbeclabs/staking/smartcontract/sdk/go/stakepool"
	"github.com/malbeclabs/staking/smartcontract/sdk/go/staking"
	"github.com/malbeclabs/staking/smartcontract/sdk/go/tokenmanager"
	"github.com/spf13/cobra"
)

const (
	exitCodeSuccess = 0
	exitCodeError   = 1
)

type rootFlags struct {
	env                      string
	verbose                  bool
	rpcURL                   string
	stakePoolProgramID       string
	rewardDistributorProgram string
	tokenManagerProgramID    string
}

type clients struct {
	log               *slog.Logger
	stakePool         *stakepool.Client
	rewardDistributor *rewarddistributor.Client
	tokenManager      *tokenmanager.Client
	staking           *staking.Client
}

func main() {
	_ = godotenv.Load()
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:           "stakepool-cli",
		Short:         "Read-only CLI for stake pool, reward distributor and token manager accounts.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cmd.Help(); err != nil {
				return fmt.Errorf("failed to show help: %w", err)
			}
			return nil
		},
	}
	rootCmd.SetArgs(args)

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.env, "env", "e", config.EnvMainnetBeta, "Solana environment (mainnet-beta, devnet)")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "set debug logging level")
	pf.StringVar(&flags.rpcURL, "rpc-url", "", "Solana RPC URL override")
	pf.StringVar(&flags.stakePoolProgramID, "stake-pool-program-id", "", "Stake pool program ID override")
	pf.StringVar(&flags.rewardDistributorProgram, "reward-distributor-program-id", "", "Reward distributor program ID override")
	pf.StringVar(&flags.tokenManagerProgramID, "token-manager-program-id", "", "Token manager program ID override")

	rootCmd.AddCommand(
		newPoolCmd(flags),
		newEntryCmd(flags),
		newEntriesCmd(flags),
		newStakeSecondsCmd(flags),
		newRewardsCmd(flags),
		newSummaryCmd(flags),
		newRemainingAccountsCmd(flags),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitCodeError
	}
	return exitCodeSuccess
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
}

func (f *rootFlags) networkConfig() (*config.NetworkConfig, error) {
	netCfg, err := config.NetworkConfigForEnv(f.env)
	if err != nil {
		return nil, fmt.Errorf("invalid --env %q: %w", f.env, err)
	}
	if f.rpcURL != "" {
		netCfg.LedgerRPCURL = f.rpcURL
	}

	overrides := []struct {
		flag  string
		value string
		dst   *solana.PublicKey
	}{
		{"stake-pool-program-id", f.stakePoolProgramID, &netCfg.StakePoolProgramID},
		{"reward-distributor-program-id", f.rewardDistributorProgram, &netCfg.RewardDistributorProgramID},
		{"token-manager-program-id", f.tokenManagerProgramID, &netCfg.TokenManagerProgramID},
	}
	for _, o := range overrides {
		if o.value == "" {
			continue
		}
		pk, err := solana.PublicKeyFromBase58(o.value)
		if err != nil {
			return nil, fmt.Errorf("invalid --%s: %w", o.flag, err)
		}
		*o.dst = pk
	}
	return netCfg, nil
}

func (f *rootFlags) clients() (*clients, error) {
	netCfg, err := f.networkConfig()
	if err != nil {
		return nil, err
	}

	log := newLogger(f.verbose)
	log.Debug("Using network config",
		"env", netCfg.Moniker,
		"rpcURL", netCfg.LedgerRPCURL,
		"stakePoolProgramID", netCfg.StakePoolProgramID,
		"rewardDistributorProgramID", netCfg.RewardDistributorProgramID,
		"tokenManagerProgramID", netCfg.TokenManagerProgramID,
	)

	rpcClient := ledgerrpc.New(netCfg.LedgerRPCURL, nil)
	tm := tokenmanager.New(log, rpcClient, netCfg.TokenManagerProgramID)
	sp := stakepool.New(log, rpcClient, netCfg.StakePoolProgramID, stakepool.WithTokenManager(tm))
	rd := rewarddistributor.New(log, rpcClient, netCfg.RewardDistributorProgramID)

	return &clients{
		log:               log,
		stakePool:         sp,
		rewardDistributor: rd,
		tokenManager:      tm,
		staking:           staking.New(log, sp, rd),
	}, nil
}
