// Copyright (c) 2025 The Solvault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package schema

import (
	"github.com/gagliardetto/solana-go"
)

// Vault is the global singleton record holding staking configuration and
// aggregate counters. It is created once at initialization and never
// deleted. On-disk size: 8 (discriminator) + 32 + 4 + 32 + 8 + 32 + 1 +
// 8 + 1 + 17 + 40 = 183 bytes.
type Vault struct {
	Authority           solana.PublicKey // 32 bytes
	TotalStaked         uint32           // 4 bytes
	RewardTokenMint     solana.PublicKey // 32 bytes
	RewardRatePerSecond uint64           // 8 bytes, base units per staked NFT per second
	CollectionMint      solana.PublicKey // 32 bytes
	Paused              bool             // 1 byte
	LastUpdateTimestamp int64            // 8 bytes
	Bump                uint8            // 1 byte
	CircuitBreaker      CircuitBreakerState
	DailyLimit          DailyLimits
}

func (v *Vault) Marshal() ([]byte, error) {
	return marshalRecord(discVault, v)
}

func UnmarshalVault(data []byte) (*Vault, error) {
	var v Vault
	if err := unmarshalRecord(discVault, data, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// CircuitBreakerState trips the vault's value-moving operations after
// repeated failures. 17 bytes.
type CircuitBreakerState struct {
	FailureCount         uint32 // 4 bytes
	LastFailureTimestamp int64  // 8 bytes
	Blocked              bool   // 1 byte
	TotalOperations      uint32 // 4 bytes
}

// CanExecute reports whether the breaker admits an operation at the
// given time. A blocked breaker reopens once resetTimeout has elapsed
// since the last recorded failure.
func (c *CircuitBreakerState) CanExecute(now int64, failureThreshold uint32, resetTimeout int64) bool {
	if !c.Blocked {
		return true
	}
	if now-c.LastFailureTimestamp > resetTimeout {
		return true
	}
	return c.FailureCount < failureThreshold
}

// OnSuccess records a successful operation and slowly heals a tripped
// breaker.
func (c *CircuitBreakerState) OnSuccess() {
	c.TotalOperations++
	if c.Blocked && c.FailureCount > 0 {
		c.FailureCount--
		if c.FailureCount == 0 {
			c.Blocked = false
		}
	}
}

// OnFailure records a failed operation and trips the breaker at the
// threshold.
func (c *CircuitBreakerState) OnFailure(now int64, failureThreshold uint32) {
	c.TotalOperations++
	c.FailureCount++
	c.LastFailureTimestamp = now
	if c.FailureCount >= failureThreshold {
		c.Blocked = true
	}
}

// DailyLimits caps stake and claim volume per UTC day. 40 bytes.
type DailyLimits struct {
	MaxStakesPerDay     uint32 // 4 bytes
	MaxClaimsPerDay     uint32 // 4 bytes
	MaxRewardsPerDay    uint64 // 8 bytes, base units
	StakesToday         uint32 // 4 bytes
	ClaimsToday         uint32 // 4 bytes
	RewardsClaimedToday uint64 // 8 bytes
	LastResetTimestamp  int64  // 8 bytes
}

const secondsPerDay = 86_400

// ResetIfNewDay zeroes the running counters once a day has elapsed.
func (d *DailyLimits) ResetIfNewDay(now int64) {
	if now-d.LastResetTimestamp > secondsPerDay {
		d.StakesToday = 0
		d.ClaimsToday = 0
		d.RewardsClaimedToday = 0
		d.LastResetTimestamp = now
	}
}

func (d *DailyLimits) CanStake() bool {
	return d.StakesToday < d.MaxStakesPerDay
}

func (d *DailyLimits) CanClaim(amount uint64) bool {
	if d.ClaimsToday >= d.MaxClaimsPerDay {
		return false
	}
	if d.RewardsClaimedToday > d.MaxRewardsPerDay {
		return false
	}
	return amount <= d.MaxRewardsPerDay-d.RewardsClaimedToday
}

func (d *DailyLimits) RecordStake() {
	d.StakesToday++
}

func (d *DailyLimits) RecordClaim(amount uint64) {
	d.ClaimsToday++
	d.RewardsClaimedToday += amount
}
