package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/malbeclabs/staking/smartcontract/sdk/go/rewarddistributor"
	"github.com/malbeclabs/staking/smartcontract/sdk/go/stakepool"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// runWithClients builds the SDK clients and a signal-aware context for a subcommand.
func runWithClients(flags *rootFlags, fn func(ctx context.Context, c *clients, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		c, err := flags.clients()
		if err != nil {
			return err
		}
		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		return fn(ctx, c, args)
	}
}

func newPoolCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "pool <identifier|address>",
		Short: "Show a stake pool by numeric identifier or account address",
		Args:  cobra.ExactArgs(1),
		RunE: runWithClients(flags, func(ctx context.Context, c *clients, args []string) error {
			var (
				pool *stakepool.StakePool
				err  error
			)
			if id, parseErr := strconv.ParseUint(args[0], 10, 64); parseErr == nil {
				pool, err = c.stakePool.FetchStakePool(ctx, id)
			} else {
				addr, keyErr := solana.PublicKeyFromBase58(args[0])
				if keyErr != nil {
					return fmt.Errorf("invalid pool %q: not an identifier or address", args[0])
				}
				pool, err = c.stakePool.FetchStakePoolByAddress(ctx, addr)
			}
			if err != nil {
				return fmt.Errorf("failed to fetch stake pool: %w", err)
			}

			fmt.Printf("%-45s %d\n", "Identifier:", pool.Identifier)
			fmt.Printf("%-45s %s\n", "Authority:", pool.Authority)
			fmt.Printf("%-45s %d\n", "Total staked:", pool.TotalStaked)
			fmt.Printf("%-45s %t\n", "Requires authorization:", pool.RequiresAuthorization)
			fmt.Printf("%-45s %t\n", "Reset on stake:", pool.ResetOnStake)
			fmt.Printf("%-45s %q\n", "Overlay text:", pool.OverlayText)
			fmt.Printf("%-45s %s\n", "Image URI:", pool.ImageURI)
			for _, creator := range pool.RequiresCreators {
				fmt.Printf("%-45s %s\n", "Required creator:", creator)
			}
			for _, collection := range pool.RequiresCollections {
				fmt.Printf("%-45s %s\n", "Required collection:", collection)
			}
			return nil
		}),
	}
}

func newEntryCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "entry <pool> <mint>",
		Short: "Show the stake entry of a mint in a pool",
		Args:  cobra.ExactArgs(2),
		RunE: runWithClients(flags, func(ctx context.Context, c *clients, args []string) error {
			pool, mint, err := parsePoolAndMint(args)
			if err != nil {
				return err
			}
			entry, err := c.stakePool.FetchStakeEntry(ctx, pool, mint)
			if err != nil {
				return fmt.Errorf("failed to fetch stake entry: %w", err)
			}

			fmt.Printf("%-45s %s\n", "Pool:", entry.Pool)
			fmt.Printf("%-45s %s\n", "Original mint:", entry.OriginalMint)
			fmt.Printf("%-45s %t\n", "Original mint claimed:", entry.OriginalMintClaimed)
			fmt.Printf("%-45s %s\n", "Last staker:", entry.LastStaker)
			fmt.Printf("%-45s %s\n", "Last staked at:", formatUnix(entry.LastStakedAt))
			fmt.Printf("%-45s %s\n", "Total stake time:", stakepool.TotalStakeSeconds(entry))
			fmt.Printf("%-45s %s\n", "Stake type:", stakepool.StakeType(entry.Kind))
			if entry.StakeMint != nil {
				fmt.Printf("%-45s %s\n", "Stake mint:", *entry.StakeMint)
			}
			return nil
		}),
	}
}

func newEntriesCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "entries <pool>",
		Short: "List every stake entry of a pool",
		Args:  cobra.ExactArgs(1),
		RunE: runWithClients(flags, func(ctx context.Context, c *clients, args []string) error {
			pool, err := solana.PublicKeyFromBase58(args[0])
			if err != nil {
				return fmt.Errorf("invalid pool: %w", err)
			}
			entries, err := c.stakePool.FetchStakeEntriesForPool(ctx, pool)
			if err != nil {
				return fmt.Errorf("failed to fetch stake entries: %w", err)
			}

			now := c.stakePool.Now()
			table := newTable("Entry", "Mint", "Staker", "Type", "Total\nStake Time", "Active\nStake Time")
			for _, e := range entries {
				staker := "-"
				if e.IsStaked() {
					staker = e.LastStaker.String()
				}
				table.Append([]string{
					e.Address.String(),
					e.OriginalMint.String(),
					staker,
					stakepool.StakeType(e.Kind).String(),
					stakepool.TotalStakeSeconds(&e.StakeEntry).String(),
					stakepool.ActiveStakeSeconds(&e.StakeEntry, now).String(),
				})
			}
			table.Render()
			return nil
		}),
	}
}

func newStakeSecondsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stake-seconds <pool> <mint>",
		Short: "Show total and active stake seconds of a mint",
		Args:  cobra.ExactArgs(2),
		RunE: runWithClients(flags, func(ctx context.Context, c *clients, args []string) error {
			pool, mint, err := parsePoolAndMint(args)
			if err != nil {
				return err
			}
			total, err := c.stakePool.GetTotalStakeSeconds(ctx, pool, mint)
			if err != nil {
				return fmt.Errorf("failed to get total stake seconds: %w", err)
			}
			active, err := c.stakePool.GetActiveStakeSeconds(ctx, pool, mint)
			if err != nil {
				return fmt.Errorf("failed to get active stake seconds: %w", err)
			}

			fmt.Printf("%-45s %d\n", "Total stake seconds:", int64(total.Seconds()))
			fmt.Printf("%-45s %d\n", "Active stake seconds:", int64(active.Seconds()))
			return nil
		}),
	}
}

func newRewardsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "rewards <pool>",
		Short: "Show the reward distributor of a pool",
		Args:  cobra.ExactArgs(1),
		RunE: runWithClients(flags, func(ctx context.Context, c *clients, args []string) error {
			pool, err := solana.PublicKeyFromBase58(args[0])
			if err != nil {
				return fmt.Errorf("invalid pool: %w", err)
			}
			d, err := c.rewardDistributor.FetchRewardDistributor(ctx, pool)
			if err != nil {
				return fmt.Errorf("failed to fetch reward distributor: %w", err)
			}
			printRewardDistributor(os.Stdout, d)
			return nil
		}),
	}
}

func newSummaryCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "summary <pool> [mint]",
		Short: "Summarize stake metrics for a mint, or for every entry of a pool",
		Args:  cobra.RangeArgs(1, 2),
		RunE: runWithClients(flags, func(ctx context.Context, c *clients, args []string) error {
			pool, err := solana.PublicKeyFromBase58(args[0])
			if err != nil {
				return fmt.Errorf("invalid pool: %w", err)
			}

			if len(args) == 2 {
				mint, err := solana.PublicKeyFromBase58(args[1])
				if err != nil {
					return fmt.Errorf("invalid mint: %w", err)
				}
				s, err := c.staking.Summary(ctx, pool, mint)
				if err != nil {
					return err
				}
				fmt.Printf("%-45s %s\n", "Staker:", s.Staker)
				fmt.Printf("%-45s %s\n", "Total stake time:", s.TotalStakeSeconds)
				fmt.Printf("%-45s %s\n", "Active stake time:", s.ActiveStakeSeconds)
				fmt.Printf("%-45s %t\n", "Reward distributor:", s.HasRewardDistributor)
				fmt.Printf("%-45s %d\n", "Claimed rewards:", s.ClaimedRewards)
				fmt.Printf("%-45s %d\n", "Unclaimed rewards:", s.UnclaimedRewards)
				return nil
			}

			s, err := c.staking.PoolSummary(ctx, pool)
			if err != nil {
				return err
			}
			fmt.Printf("%-45s %d/%d\n", "Staked entries:", s.Staked, len(s.Entries))
			fmt.Printf("%-45s %s\n", "Total stake time:", s.TotalStakeSeconds)
			fmt.Printf("%-45s %s\n", "Active stake time:", s.ActiveStakeSeconds)
			fmt.Printf("%-45s %t\n", "Reward distributor:", s.HasRewardDistributor)
			fmt.Printf("%-45s %d\n", "Claimed rewards:", s.ClaimedRewards)
			fmt.Printf("%-45s %d\n", "Unclaimed rewards:", s.UnclaimedRewards)
			return nil
		}),
	}
}

func newRemainingAccountsCmd(flags *rootFlags) *cobra.Command {
	var (
		payerStr  string
		stakeType string
	)
	cmd := &cobra.Command{
		Use:   "remaining-accounts <mint>",
		Short: "Show the remaining accounts a stake transaction for the mint would carry",
		Args:  cobra.ExactArgs(1),
		RunE: runWithClients(flags, func(ctx context.Context, c *clients, args []string) error {
			mint, err := solana.PublicKeyFromBase58(args[0])
			if err != nil {
				return fmt.Errorf("invalid mint: %w", err)
			}
			payer, err := solana.PublicKeyFromBase58(payerStr)
			if err != nil {
				return fmt.Errorf("invalid --payer: %w", err)
			}
			st, err := parseStakeType(stakeType)
			if err != nil {
				return err
			}

			tx := solana.NewTransactionBuilder()
			accounts, err := c.stakePool.RemainingAccountsForStake(ctx, tx, payer, mint, st)
			if err != nil {
				return fmt.Errorf("failed to build remaining accounts: %w", err)
			}

			table := newTable("#", "Account", "Writable", "Signer")
			for i, a := range accounts {
				table.Append([]string{
					strconv.Itoa(i),
					a.PublicKey.String(),
					strconv.FormatBool(a.IsWritable),
					strconv.FormatBool(a.IsSigner),
				})
			}
			table.Render()

			setup, err := setupInstructionCount(tx, payer)
			if err != nil {
				return fmt.Errorf("failed to build setup transaction: %w", err)
			}
			fmt.Printf("%-45s %d\n", "Setup instructions:", setup)
			return nil
		}),
	}
	cmd.Flags().StringVar(&payerStr, "payer", "", "Fee payer of the stake transaction")
	cmd.Flags().StringVar(&stakeType, "stake-type", "locked", "Stake type (transfer, locked)")
	_ = cmd.MarkFlagRequired("payer")
	return cmd
}

func parsePoolAndMint(args []string) (solana.PublicKey, solana.PublicKey, error) {
	pool, err := solana.PublicKeyFromBase58(args[0])
	if err != nil {
		return solana.PublicKey{}, solana.PublicKey{}, fmt.Errorf("invalid pool: %w", err)
	}
	mint, err := solana.PublicKeyFromBase58(args[1])
	if err != nil {
		return solana.PublicKey{}, solana.PublicKey{}, fmt.Errorf("invalid mint: %w", err)
	}
	return pool, mint, nil
}

func parseStakeType(s string) (stakepool.StakeType, error) {
	switch s {
	case "transfer":
		return stakepool.StakeTypeTransfer, nil
	case "locked":
		return stakepool.StakeTypeLocked, nil
	default:
		return 0, fmt.Errorf("invalid stake type %q, must be one of: transfer, locked", s)
	}
}

func formatUnix(ts int64) string {
	if ts == 0 {
		return "-"
	}
	return time.Unix(ts, 0).UTC().Format(time.RFC3339)
}

func newTable(header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_CENTER)
	table.SetAutoFormatHeaders(false)
	table.SetBorder(true)
	table.SetHeader(header)
	return table
}

func printRewardDistributor(w io.Writer, d *rewarddistributor.RewardDistributor) {
	maxSupply := "unset"
	if d.MaxSupply != nil {
		maxSupply = strconv.FormatUint(*d.MaxSupply, 10)
	}
	fmt.Fprintf(w, "%-45s %s\n", "Kind:", d.Kind)
	fmt.Fprintf(w, "%-45s %s\n", "Authority:", d.Authority)
	fmt.Fprintf(w, "%-45s %s\n", "Reward mint:", d.RewardMint)
	fmt.Fprintf(w, "%-45s %d per %ds\n", "Reward rate:", d.RewardAmount, d.RewardDurationSeconds)
	fmt.Fprintf(w, "%-45s %s\n", "Max supply:", maxSupply)
	fmt.Fprintf(w, "%-45s %d\n", "Claimed rewards:", rewarddistributor.ClaimedRewards(d))
	fmt.Fprintf(w, "%-45s %d\n", "Unclaimed rewards:", rewarddistributor.UnclaimedRewards(d))
}

// setupInstructionCount returns how many instructions have to run before the stake, which is
// non-zero when the token manager ATA has to be created first.
func setupInstructionCount(tx *solana.TransactionBuilder, payer solana.PublicKey) (int, error) {
	built, err := tx.SetFeePayer(payer).SetRecentBlockHash(solana.Hash{}).Build()
	if err != nil {
		// The builder refuses to build a transaction without instructions.
		if strings.Contains(err.Error(), "at-least one instruction") {
			return 0, nil
		}
		return 0, err
	}
	return len(built.Message.Instructions), nil
}
