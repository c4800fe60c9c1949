package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/malbeclabs/staking/config"
	"github.com/malbeclabs/staking/pkg/ledgerrpc"
	"github.com/malbeclabs/staking/smartcontract/sdk/go/rewarddistributor"
	"github.com/malbeclabs/staking/smartcontract/sdk/go/stakepool"
	"github.com/malbeclabs/staking/smartcontract/sdk/go/staking"
	"github.com/malbeclabs/staking/telemetry/stake-exporter/internal/exporter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	defaultInterval = 1 * time.Minute
)

var (
	env                        = flag.String("env", config.EnvMainnetBeta, "the environment to export metrics for (mainnet-beta, devnet)")
	interval                   = flag.Duration("interval", defaultInterval, "interval between polls of every target")
	poolSize                   = flag.Int("pool-size", 8, "maximum number of targets polled concurrently")
	verbose                    = flag.Bool("verbose", false, "enable verbose logging")
	showVersion                = flag.Bool("version", false, "Print the version and exit")
	metricsAddr                = flag.String("metrics-addr", ":8080", "Address to listen on for prometheus metrics")
	ledgerRPCURL               = flag.String("ledger-rpc-url", "", "the url of the ledger rpc, overrides the environment default")
	stakePoolProgramID         = flag.String("stake-pool-program-id", "", "the id of the stake pool program, overrides the environment default")
	rewardDistributorProgramID = flag.String("reward-distributor-program-id", "", "the id of the reward distributor program, overrides the environment default")
	version                    = "dev"
	commit                     = "none"
	date                       = "unknown"
)

func main() {
	var targets []exporter.Target
	flag.Func("target", "a <pool>:<mint> pair to export metrics for (repeatable)", func(s string) error {
		target, err := exporter.ParseTarget(s)
		if err != nil {
			return err
		}
		targets = append(targets, target)
		return nil
	})
	flag.Parse()

	if *showVersion {
		fmt.Printf("version: %s, commit: %s, date: %s\n", version, commit, date)
		os.Exit(0)
	}

	_ = godotenv.Load()

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	log := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	if len(targets) == 0 {
		log.Error("Missing required flag", "flag", "target")
		flag.Usage()
		os.Exit(1)
	}

	networkConfig, err := config.NetworkConfigForEnv(*env)
	if err != nil {
		log.Error("Failed to get network config", "error", err)
		flag.Usage()
		os.Exit(1)
	}
	if *ledgerRPCURL != "" {
		networkConfig.LedgerRPCURL = *ledgerRPCURL
	}
	if *stakePoolProgramID != "" {
		networkConfig.StakePoolProgramID, err = solana.PublicKeyFromBase58(*stakePoolProgramID)
		if err != nil {
			log.Error("Failed to parse stake pool program id", "error", err)
			os.Exit(1)
		}
	}
	if *rewardDistributorProgramID != "" {
		networkConfig.RewardDistributorProgramID, err = solana.PublicKeyFromBase58(*rewardDistributorProgramID)
		if err != nil {
			log.Error("Failed to parse reward distributor program id", "error", err)
			os.Exit(1)
		}
	}

	clock := clockwork.NewRealClock()

	rpcClient := ledgerrpc.New(networkConfig.LedgerRPCURL, nil)
	defer rpcClient.Close()
	stakePoolClient := stakepool.New(log, rpcClient, networkConfig.StakePoolProgramID, stakepool.WithClock(clock))
	rewardDistributorClient := exporter.NewCachingRewardDistributorClient(
		rewarddistributor.New(log, rpcClient, networkConfig.RewardDistributorProgramID),
		*interval/2,
	)
	stakingClient := staking.New(log, stakePoolClient, rewardDistributorClient)

	exporter.MetricBuildInfo.WithLabelValues(version, commit, date).Set(1)
	go func() {
		listener, err := net.Listen("tcp", *metricsAddr)
		if err != nil {
			log.Error("Failed to start prometheus metrics server listener", "error", err)
			os.Exit(1)
		}
		log.Info("Prometheus metrics server listening", "address", listener.Addr().String())
		http.Handle("/metrics", promhttp.Handler())
		if err := http.Serve(listener, nil); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Failed to start prometheus metrics server", "error", err)
			os.Exit(1)
		}
	}()

	e, err := exporter.New(&exporter.Config{
		Logger:   log,
		Staking:  stakingClient,
		Targets:  targets,
		Interval: *interval,
		Clock:    clock,
		PoolSize: *poolSize,
	})
	if err != nil {
		log.Error("Failed to create stake exporter", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := e.Run(ctx); err != nil {
		log.Error("Failed to run stake exporter", "error", err)
		os.Exit(1)
	}
}
