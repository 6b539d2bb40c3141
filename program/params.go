// Copyright (c) 2025 The Solvault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package program

import (
	"github.com/pkg/errors"
)

// Params are the policy knobs of the program. The rate-limit and
// ceiling values are anti-abuse heuristics, not security invariants,
// and are deliberately configurable.
type Params struct {
	// MinStakeInterval is the minimum time in seconds between two
	// stake/unstake mutations of the same UserStake record.
	MinStakeInterval int64
	// MinClaimInterval is the minimum time in seconds between claims,
	// stricter than the stake interval to bound minting frequency.
	MinClaimInterval int64
	// MaxTimeElapsed bounds the accrual window; a larger timestamp jump
	// is treated as invalid input rather than a reward windfall.
	MaxTimeElapsed int64
	// ClaimCeilingWindow caps a single claim at this many seconds of
	// accrual per staked NFT.
	ClaimCeilingWindow int64

	// Daily volume caps, reset per UTC day.
	MaxStakesPerDay  uint32
	MaxClaimsPerDay  uint32
	MaxRewardsPerDay uint64

	// Circuit breaker tuning.
	BreakerFailureThreshold uint32
	BreakerResetTimeout     int64
}

// DefaultParams returns the production policy defaults.
func DefaultParams() Params {
	return Params{
		MinStakeInterval:        1,
		MinClaimInterval:        60,
		MaxTimeElapsed:          2_592_000, // 30 days
		ClaimCeilingWindow:      86_400,    // one day's worth per NFT
		MaxStakesPerDay:         100,
		MaxClaimsPerDay:         50,
		MaxRewardsPerDay:        1_000_000_000,
		BreakerFailureThreshold: 10,
		BreakerResetTimeout:     600,
	}
}

func (p Params) Validate() error {
	if p.MinStakeInterval <= 0 || p.MinClaimInterval <= 0 {
		return errors.New("rate-limit intervals must be positive")
	}
	if p.MaxTimeElapsed <= 0 {
		return errors.New("max time elapsed must be positive")
	}
	if p.ClaimCeilingWindow <= 0 {
		return errors.New("claim ceiling window must be positive")
	}
	if p.MaxStakesPerDay == 0 || p.MaxClaimsPerDay == 0 || p.MaxRewardsPerDay == 0 {
		return errors.New("daily limits must be positive")
	}
	if p.BreakerFailureThreshold == 0 || p.BreakerResetTimeout <= 0 {
		return errors.New("circuit breaker tuning must be positive")
	}
	return nil
}
