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

// StakeNft deposits one NFT into vault custody and credits the user's
// stake. The NFT must be a true NFT (supply 1, zero decimals), owned by
// the user, and carry verified membership in the vault's collection.
func (e *Engine) StakeNft(
	signers Signers,
	user solana.PublicKey,
	nftMint solana.PublicKey,
	nftAccount solana.PublicKey,
) (*Receipt, error) {
	return e.execute("stake_nft", func(now int64) ([]Event, error) {
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
		vault.DailyLimit.ResetIfNewDay(now)
		if !vault.DailyLimit.CanStake() {
			return nil, reverts.ErrDailyLimitExceeded
		}

		if err := e.verifyNft(user, nftMint, nftAccount, vault.CollectionMint); err != nil {
			vault.CircuitBreaker.OnFailure(now, e.params.BreakerFailureThreshold)
			if serr := e.storeVault(vault); serr != nil {
				return nil, serr
			}
			if cerr := e.st.Commit(); cerr != nil {
				return nil, cerr
			}
			return nil, err
		}

		stake, stakeAddr, err := e.loadUserStake(user)
		if err != nil {
			return nil, err
		}
		if stake == nil {
			stake = &schema.UserStake{User: user}
		} else if stake.LastUpdateTimestamp > 0 && now-stake.LastUpdateTimestamp < e.params.MinStakeInterval {
			return nil, reverts.ErrTooFrequent
		}
		if err := e.accrue(stake, vault.RewardRatePerSecond, now); err != nil {
			return nil, err
		}

		custodyAddr, _, err := schema.CustodyAddress(nftMint)
		if err != nil {
			return nil, err
		}
		if _, err := token.EnsureAccount(e.st, custodyAddr, nftMint, e.vaultAddr); err != nil {
			return nil, err
		}
		if err := token.Transfer(e.st, nftAccount, custodyAddr, user, 1); err != nil {
			return nil, err
		}

		stake.StakedNfts, err = checkedIncU32(stake.StakedNfts)
		if err != nil {
			return nil, err
		}
		vault.TotalStaked, err = checkedIncU32(vault.TotalStaked)
		if err != nil {
			return nil, err
		}
		stake.LastUpdateTimestamp = now
		vault.LastUpdateTimestamp = now
		vault.DailyLimit.RecordStake()
		vault.CircuitBreaker.OnSuccess()

		if err := e.storeUserStake(stakeAddr, stake); err != nil {
			return nil, err
		}
		if err := e.storeVault(vault); err != nil {
			return nil, err
		}
		return []Event{&NftStaked{
			User:        user,
			NftMint:     nftMint,
			TotalStaked: vault.TotalStaked,
			Timestamp:   now,
		}}, nil
	})
}

// verifyNft checks the NFT's shape, ownership and verified collection
// membership.
func (e *Engine) verifyNft(user, nftMint, nftAccount solana.PublicKey, collectionMint solana.PublicKey) error {
	mint, err := token.GetMint(e.st, nftMint)
	if err != nil {
		return err
	}
	if mint.Decimals != 0 || mint.Supply != 1 {
		return reverts.ErrInvalidNft
	}
	acc, err := token.GetAccount(e.st, nftAccount)
	if err != nil {
		return err
	}
	if !acc.Mint.Equals(nftMint) {
		return reverts.ErrMintMismatch
	}
	if !acc.Owner.Equals(user) {
		return reverts.ErrOwnerMismatch
	}
	if acc.Amount != 1 {
		return reverts.ErrInvalidNft
	}

	metaAddr, _, err := schema.MetadataAddress(nftMint)
	if err != nil {
		return err
	}
	data, err := e.st.Get(metaAddr)
	if err != nil {
		return err
	}
	if data == nil {
		return reverts.ErrAccountNotFound
	}
	meta, err := schema.UnmarshalMetadata(data)
	if err != nil {
		return err
	}
	if !meta.Mint.Equals(nftMint) {
		return reverts.ErrAccountMismatch
	}
	if meta.Collection == nil {
		return reverts.ErrNoCollectionFound
	}
	if !meta.Collection.Verified {
		return reverts.ErrCollectionNotVerified
	}
	if !meta.Collection.Key.Equals(collectionMint) {
		return reverts.ErrWrongCollection
	}
	return nil
}
