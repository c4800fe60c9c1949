package exporter

import (
	"context"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/jellydator/ttlcache/v3"
	"github.com/malbeclabs/staking/smartcontract/sdk/go/rewarddistributor"
	"github.com/malbeclabs/staking/smartcontract/sdk/go/staking"
	"golang.org/x/sync/singleflight"
)

// CachingRewardDistributorClient shares one reward distributor fetch between every target
// of the same pool within a poll. Concurrent misses for a pool wait on a single in-flight
// fetch; errors are returned to every waiter and never cached.
type CachingRewardDistributorClient struct {
	inner staking.RewardDistributorClient
	ttl   time.Duration
	cache *ttlcache.Cache[solana.PublicKey, *rewarddistributor.RewardDistributor]
	group singleflight.Group
}

func NewCachingRewardDistributorClient(inner staking.RewardDistributorClient, ttl time.Duration) *CachingRewardDistributorClient {
	return &CachingRewardDistributorClient{
		inner: inner,
		ttl:   ttl,
		cache: ttlcache.New(
			ttlcache.WithTTL[solana.PublicKey, *rewarddistributor.RewardDistributor](ttl),
			ttlcache.WithDisableTouchOnHit[solana.PublicKey, *rewarddistributor.RewardDistributor](),
		),
	}
}

func (c *CachingRewardDistributorClient) FetchRewardDistributor(ctx context.Context, stakePool solana.PublicKey) (*rewarddistributor.RewardDistributor, error) {
	if item := c.cache.Get(stakePool); item != nil {
		return item.Value(), nil
	}

	v, err, _ := c.group.Do(stakePool.String(), func() (any, error) {
		// A fetch that finished between the miss above and joining the group has
		// already filled the cache.
		if item := c.cache.Get(stakePool); item != nil {
			return item.Value(), nil
		}
		distributor, err := c.inner.FetchRewardDistributor(ctx, stakePool)
		if err != nil {
			return nil, err
		}
		c.cache.Set(stakePool, distributor, c.ttl)
		return distributor, nil
	})
	if err != nil {
		return nil, err
	}
	distributor, _ := v.(*rewarddistributor.RewardDistributor)
	return distributor, nil
}
