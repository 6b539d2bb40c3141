// Copyright (c) 2025 The Solvault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package program

import (
	"github.com/gagliardetto/solana-go"

	"github.com/solvault/solvault/reverts"
	"github.com/solvault/solvault/schema"
)

// VaultStatus is a read-only snapshot of the vault record.
type VaultStatus struct {
	Vault     *schema.Vault
	VaultAddr solana.PublicKey
	QueriedAt int64
}

// Status returns the current vault record. Fails with ErrAccountNotFound
// before initialization.
func (e *Engine) Status() (*VaultStatus, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	vault, err := e.loadVault()
	if err != nil {
		return nil, err
	}
	return &VaultStatus{
		Vault:     vault,
		VaultAddr: e.vaultAddr,
		QueriedAt: e.clock.Now().Unix(),
	}, nil
}

// UserStatus is a read-only snapshot of a user's stake record, with the
// rewards that would be credited if the user claimed now.
type UserStatus struct {
	Stake        *schema.UserStake
	ClaimableNow uint64
	QueriedAt    int64
}

// User returns the stake record for the given user together with a
// claimable-now preview. The preview applies the same accrual rule the
// claim instruction would.
func (e *Engine) User(user solana.PublicKey) (*UserStatus, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	vault, err := e.loadVault()
	if err != nil {
		return nil, err
	}
	stake, _, err := e.loadUserStake(user)
	if err != nil {
		return nil, err
	}
	if stake == nil {
		return nil, reverts.ErrAccountNotFound
	}

	now := e.clock.Now().Unix()
	claimable := stake.PendingRewards
	if stake.StakedNfts > 0 {
		earned, err := CalculateRewards(now-stake.LastUpdateTimestamp, vault.RewardRatePerSecond, uint64(stake.StakedNfts), e.params.MaxTimeElapsed)
		if err == nil {
			claimable += earned
		}
	}
	return &UserStatus{
		Stake:        stake,
		ClaimableNow: claimable,
		QueriedAt:    now,
	}, nil
}
