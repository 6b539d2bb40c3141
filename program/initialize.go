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

// InitializeVault creates the singleton vault record and takes mint
// authority over the reward token. The authority must currently hold
// that mint authority; after initialization only the vault itself can
// mint rewards.
func (e *Engine) InitializeVault(
	signers Signers,
	authority solana.PublicKey,
	rewardTokenMint solana.PublicKey,
	collectionMint solana.PublicKey,
	rewardRatePerSecond uint64,
) (*Receipt, error) {
	return e.execute("initialize_vault", func(now int64) ([]Event, error) {
		if err := requireSigner(signers, authority); err != nil {
			return nil, err
		}
		if rewardRatePerSecond == 0 {
			return nil, reverts.ErrInvalidRewardRate
		}
		exists, err := e.st.Exists(e.vaultAddr)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, reverts.ErrAccountExists
		}

		if err := token.SetMintAuthority(e.st, rewardTokenMint, authority, &e.vaultAddr); err != nil {
			if reverts.Is(err, reverts.CodeInvalidMintAuthority) {
				return nil, reverts.ErrMintAuthorityTransferFailed
			}
			return nil, err
		}
		mint, err := token.GetMint(e.st, rewardTokenMint)
		if err != nil {
			return nil, err
		}
		if !mint.IsMintAuthority(e.vaultAddr) {
			return nil, reverts.ErrMintAuthorityTransferFailed
		}

		vault := &schema.Vault{
			Authority:           authority,
			RewardTokenMint:     rewardTokenMint,
			RewardRatePerSecond: rewardRatePerSecond,
			CollectionMint:      collectionMint,
			LastUpdateTimestamp: now,
			Bump:                e.vaultBump,
			DailyLimit: schema.DailyLimits{
				MaxStakesPerDay:    e.params.MaxStakesPerDay,
				MaxClaimsPerDay:    e.params.MaxClaimsPerDay,
				MaxRewardsPerDay:   e.params.MaxRewardsPerDay,
				LastResetTimestamp: now,
			},
		}
		if err := e.storeVault(vault); err != nil {
			return nil, err
		}
		return nil, nil
	})
}
