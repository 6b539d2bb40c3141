// Copyright (c) 2025 The Solvault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package program

import (
	"github.com/gagliardetto/solana-go"

	"github.com/solvault/solvault/reverts"
	"github.com/solvault/solvault/schema"
	"github.com/solvault/solvault/token"
)

// ClaimRewards mints the user's pending rewards into their derived
// reward token account and zeroes the pending balance. Residual rewards
// remain claimable after full unstaking; the per-claim ceiling only
// applies while NFTs are staked.
func (e *Engine) ClaimRewards(
	signers Signers,
	user solana.PublicKey,
	rewardTokenMint solana.PublicKey,
) (*Receipt, error) {
	return e.execute("claim_rewards", func(now int64) ([]Event, error) {
		if err := requireSigner(signers, user); err != nil {
			return nil, err
		}
		vault, err := e.loadVault()
		if err != nil {
			return nil, err
		}
		if vault.Paused {
			return nil, reverts.ErrVaultPaused
		}
		if !vault.CircuitBreaker.CanExecute(now, e.params.BreakerFailureThreshold, e.params.BreakerResetTimeout) {
			return nil, reverts.ErrCircuitBreakerActive
		}
		if !rewardTokenMint.Equals(vault.RewardTokenMint) {
			return nil, reverts.ErrMintMismatch
		}

		stake, stakeAddr, err := e.loadUserStake(user)
		if err != nil {
			return nil, err
		}
		if stake == nil {
			return nil, reverts.ErrAccountNotFound
		}
		if now-stake.LastUpdateTimestamp < e.params.MinClaimInterval {
			return nil, reverts.ErrTooFrequentClaim
		}
		if err := e.accrue(stake, vault.RewardRatePerSecond, now); err != nil {
			return nil, err
		}
		total := stake.PendingRewards
		if total == 0 {
			return nil, reverts.ErrNoRewardsToClaim
		}

		vault.DailyLimit.ResetIfNewDay(now)
		if !vault.DailyLimit.CanClaim(total) {
			return nil, reverts.ErrDailyLimitExceeded
		}
		if stake.StakedNfts > 0 {
			ceiling, err := CalculateRewards(e.params.ClaimCeilingWindow, vault.RewardRatePerSecond, uint64(stake.StakedNfts), e.params.MaxTimeElapsed)
			if err != nil {
				return nil, err
			}
			if total > ceiling {
				return nil, reverts.ErrExcessiveRewardClaim
			}
		}

		mint, err := token.GetMint(e.st, vault.RewardTokenMint)
		if err != nil {
			return nil, err
		}
		if !mint.IsMintAuthority(e.vaultAddr) {
			return nil, reverts.ErrInvalidMintAuthority
		}

		rewardAddr, _, err := schema.RewardAccountAddress(user)
		if err != nil {
			return nil, err
		}
		if _, err := token.EnsureAccount(e.st, rewardAddr, vault.RewardTokenMint, user); err != nil {
			return nil, err
		}
		if err := token.MintTo(e.st, vault.RewardTokenMint, rewardAddr, e.vaultAddr, total); err != nil {
			return nil, err
		}

		stake.PendingRewards = 0
		stake.LastUpdateTimestamp = now
		vault.LastUpdateTimestamp = now
		vault.DailyLimit.RecordClaim(total)
		vault.CircuitBreaker.OnSuccess()

		if err := e.storeUserStake(stakeAddr, stake); err != nil {
			return nil, err
		}
		if err := e.storeVault(vault); err != nil {
			return nil, err
		}
		return []Event{&RewardsClaimed{
			User:      user,
			Amount:    total,
			Timestamp: now,
		}}, nil
	})
}
