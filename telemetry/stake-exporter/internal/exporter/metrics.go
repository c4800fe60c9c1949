package exporter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	MetricNameBuildInfo            = "stake_exporter_build_info"
	MetricNameErrors               = "stake_exporter_errors_total"
	MetricNameTotalStakeSeconds    = "stake_exporter_total_stake_seconds"
	MetricNameActiveStakeSeconds   = "stake_exporter_active_stake_seconds"
	MetricNameUnclaimedRewards     = "stake_exporter_unclaimed_rewards"
	MetricNameClaimedRewards       = "stake_exporter_claimed_rewards"
	MetricNameHasRewardDistributor = "stake_exporter_has_reward_distributor"
	MetricNamePollDuration         = "stake_exporter_poll_duration_seconds"

	MetricLabelVersion   = "version"
	MetricLabelCommit    = "commit"
	MetricLabelDate      = "date"
	MetricLabelErrorType = "error_type"
	MetricLabelPool      = "pool"
	MetricLabelMint      = "mint"

	errorTypeSummary = "summary"
)

var (
	MetricBuildInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricNameBuildInfo,
			Help: "Build information of the stake exporter",
		},
		[]string{MetricLabelVersion, MetricLabelCommit, MetricLabelDate},
	)

	MetricErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameErrors,
			Help: "Number of errors encountered",
		},
		[]string{MetricLabelErrorType},
	)

	MetricTotalStakeSeconds = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricNameTotalStakeSeconds,
			Help: "Cumulative seconds the mint has been staked in the pool",
		},
		[]string{MetricLabelPool, MetricLabelMint},
	)

	MetricActiveStakeSeconds = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricNameActiveStakeSeconds,
			Help: "Seconds the mint has been staked by its current staker",
		},
		[]string{MetricLabelPool, MetricLabelMint},
	)

	MetricUnclaimedRewards = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricNameUnclaimedRewards,
			Help: "Rewards the pool's distributor can still issue, in reward mint base units",
		},
		[]string{MetricLabelPool, MetricLabelMint},
	)

	MetricClaimedRewards = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricNameClaimedRewards,
			Help: "Rewards the pool's distributor has issued, in reward mint base units",
		},
		[]string{MetricLabelPool, MetricLabelMint},
	)

	MetricHasRewardDistributor = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricNameHasRewardDistributor,
			Help: "1 if the pool has a reward distributor, 0 otherwise",
		},
		[]string{MetricLabelPool, MetricLabelMint},
	)

	MetricPollDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNamePollDuration,
			Help:    "Duration of a poll over every target",
			Buckets: prometheus.DefBuckets,
		},
	)
)
