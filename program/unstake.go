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

// UnstakeNft returns one NFT from vault custody to the user's token
// account and debits the stake. Accrued rewards are folded into the
// pending balance first, so unstaking never forfeits earned rewards.
func (e *Engine) UnstakeNft(
	signers Signers,
	user solana.PublicKey,
	nftMint solana.PublicKey,
	nftAccount solana.PublicKey,
) (*Receipt, error) {
	return e.execute("unstake_nft", func(now int64) ([]Event, error) {
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

		stake, stakeAddr, err := e.loadUserStake(user)
		if err != nil {
			return nil, err
		}
		if stake == nil {
			return nil, reverts.ErrAccountNotFound
		}
		if stake.StakedNfts == 0 {
			return nil, reverts.ErrNoNftsStaked
		}
		if now-stake.LastUpdateTimestamp < e.params.MinStakeInterval {
			return nil, reverts.ErrTooFrequent
		}
		if err := e.accrue(stake, vault.RewardRatePerSecond, now); err != nil {
			return nil, err
		}

		acc, err := token.GetAccount(e.st, nftAccount)
		if err != nil {
			return nil, err
		}
		if !acc.Mint.Equals(nftMint) {
			return nil, reverts.ErrMintMismatch
		}
		if !acc.Owner.Equals(user) {
			return nil, reverts.ErrOwnerMismatch
		}

		custodyAddr, _, err := schema.CustodyAddress(nftMint)
		if err != nil {
			return nil, err
		}
		if err := token.Transfer(e.st, custodyAddr, nftAccount, e.vaultAddr, 1); err != nil {
			return nil, err
		}

		stake.StakedNfts, err = checkedDecU32(stake.StakedNfts)
		if err != nil {
			return nil, err
		}
		vault.TotalStaked, err = checkedDecU32(vault.TotalStaked)
		if err != nil {
			return nil, err
		}
		stake.LastUpdateTimestamp = now
		vault.LastUpdateTimestamp = now

		if err := e.storeUserStake(stakeAddr, stake); err != nil {
			return nil, err
		}
		if err := e.storeVault(vault); err != nil {
			return nil, err
		}
		return []Event{&NftUnstaked{
			User:        user,
			NftMint:     nftMint,
			TotalStaked: vault.TotalStaked,
			Timestamp:   now,
		}}, nil
	})
}
