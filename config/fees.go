package config

import (
	"os"
	"strconv"
	"sync"
)

// PaymentChannel selects which fee policy applies to a transaction.
type PaymentChannel string

const (
	// ChannelEscrow is the job-funding escrow path.
	ChannelEscrow PaymentChannel = "escrow"
	// ChannelWallet is the ad-hoc wallet-to-wallet payment path.
	ChannelWallet PaymentChannel = "wallet"
)

// Default fee rates per channel. The two rates are independent policies
// and are intentionally not unified.
const (
	defaultEscrowFeeRate = 0.08
	defaultWalletFeeRate = 0.05

	defaultRewardPointsMultiplier = 10
)

var (
	feeOnce sync.Once
	fees    map[PaymentChannel]float64
	rewards float64
)

func load() {
	fees = map[PaymentChannel]float64{
		ChannelEscrow: envFloat("FEE_RATE_ESCROW", defaultEscrowFeeRate),
		ChannelWallet: envFloat("FEE_RATE_WALLET", defaultWalletFeeRate),
	}
	rewards = envFloat("REWARD_POINTS_MULTIPLIER", defaultRewardPointsMultiplier)
}

// FeeRate returns the platform fee rate for the given channel.
// Unknown channels fall back to the escrow rate.
func FeeRate(ch PaymentChannel) float64 {
	feeOnce.Do(load)
	if rate, ok := fees[ch]; ok {
		return rate
	}
	return fees[ChannelEscrow]
}

// RewardPointsMultiplier is applied to a completed payment amount to
// derive display-only reward points. Never persisted.
func RewardPointsMultiplier() float64 {
	feeOnce.Do(load)
	return rewards
}

func envFloat(key string, def float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return def
	}
	return v
}
