// Copyright (c) 2025 The Solvault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package program

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solvault/solvault/reverts"
	"github.com/solvault/solvault/schema"
	"github.com/solvault/solvault/state"
	"github.com/solvault/solvault/token"
)

func TestClaimRewards(t *testing.T) {
	env := newTestEnv(t, DefaultParams())
	env.initVault()
	nftMint, nftAccount := env.seedNft(env.user)

	env.advance(1)
	_, err := env.engine.StakeNft(SignedBy(env.user), env.user, nftMint, nftAccount)
	require.NoError(t, err)

	env.advance(1000)
	receipt, err := env.engine.ClaimRewards(SignedBy(env.user), env.user, env.rewardMint)
	require.NoError(t, err)
	require.Len(t, receipt.Events, 1)
	claimed := receipt.Events[0].(*RewardsClaimed)
	assert.Equal(t, uint64(1000)*testRate, claimed.Amount)

	rewardAddr, _, err := schema.RewardAccountAddress(env.user)
	require.NoError(t, err)
	acc := env.tokenAccount(rewardAddr)
	assert.Equal(t, uint64(1000)*testRate, acc.Amount)
	assert.Equal(t, env.rewardMint, acc.Mint)
	assert.Equal(t, env.user, acc.Owner)

	mint, err := token.GetMint(state.New(env.store), env.rewardMint)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000)*testRate, mint.Supply)

	us, err := env.engine.User(env.user)
	require.NoError(t, err)
	assert.Zero(t, us.Stake.PendingRewards)

	// A second claim accumulates into the same account.
	env.advance(100)
	_, err = env.engine.ClaimRewards(SignedBy(env.user), env.user, env.rewardMint)
	require.NoError(t, err)
	assert.Equal(t, uint64(1100)*testRate, env.tokenAccount(rewardAddr).Amount)

	// Back-to-back claims are rate limited.
	env.advance(30)
	_, err = env.engine.ClaimRewards(SignedBy(env.user), env.user, env.rewardMint)
	requireRevert(t, err, reverts.CodeTooFrequentClaim)
}

func TestClaimValidation(t *testing.T) {
	env := newTestEnv(t, DefaultParams())
	env.initVault()
	nftMint, nftAccount := env.seedNft(env.user)

	// No stake record yet.
	_, err := env.engine.ClaimRewards(SignedBy(env.user), env.user, env.rewardMint)
	requireRevert(t, err, reverts.CodeAccountNotFound)

	env.advance(1)
	_, err = env.engine.StakeNft(SignedBy(env.user), env.user, nftMint, nftAccount)
	require.NoError(t, err)

	_, err = env.engine.ClaimRewards(Signers{}, env.user, env.rewardMint)
	requireRevert(t, err, reverts.CodeMissingSignature)

	_, err = env.engine.ClaimRewards(SignedBy(env.user), env.user, solana.NewWallet().PublicKey())
	requireRevert(t, err, reverts.CodeMintMismatch)

	// Under the claim interval.
	env.advance(59)
	_, err = env.engine.ClaimRewards(SignedBy(env.user), env.user, env.rewardMint)
	requireRevert(t, err, reverts.CodeTooFrequentClaim)

	env.advance(1)
	_, err = env.engine.ClaimRewards(SignedBy(env.user), env.user, env.rewardMint)
	require.NoError(t, err)
}

func TestResidualRewardsClaimableAfterFullUnstake(t *testing.T) {
	env := newTestEnv(t, DefaultParams())
	env.initVault()
	nftMint, nftAccount := env.seedNft(env.user)

	env.advance(1)
	_, err := env.engine.StakeNft(SignedBy(env.user), env.user, nftMint, nftAccount)
	require.NoError(t, err)
	env.advance(500)
	_, err = env.engine.UnstakeNft(SignedBy(env.user), env.user, nftMint, nftAccount)
	require.NoError(t, err)

	env.advance(60)
	receipt, err := env.engine.ClaimRewards(SignedBy(env.user), env.user, env.rewardMint)
	require.NoError(t, err)
	claimed := receipt.Events[0].(*RewardsClaimed)
	// Only the staked window earned; the idle minute after unstaking
	// accrued nothing.
	assert.Equal(t, uint64(500)*testRate, claimed.Amount)

	// Nothing left afterwards.
	env.advance(60)
	_, err = env.engine.ClaimRewards(SignedBy(env.user), env.user, env.rewardMint)
	requireRevert(t, err, reverts.CodeNoRewardsToClaim)
}

func TestClaimCeiling(t *testing.T) {
	env := newTestEnv(t, DefaultParams())
	env.initVault()
	nftMint, nftAccount := env.seedNft(env.user)

	env.advance(1)
	_, err := env.engine.StakeNft(SignedBy(env.user), env.user, nftMint, nftAccount)
	require.NoError(t, err)

	// 100k seconds at rate 10 is 1M, over the one-day-per-NFT ceiling
	// of 864k.
	env.advance(100_000)
	_, err = env.engine.ClaimRewards(SignedBy(env.user), env.user, env.rewardMint)
	requireRevert(t, err, reverts.CodeExcessiveRewardClaim)

	// The failed claim kept the pending balance intact.
	us, err := env.engine.User(env.user)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_000_000), us.ClaimableNow)

	// Unstaking lifts the ceiling; the residual is fully claimable.
	_, err = env.engine.UnstakeNft(SignedBy(env.user), env.user, nftMint, nftAccount)
	require.NoError(t, err)
	env.advance(60)
	receipt, err := env.engine.ClaimRewards(SignedBy(env.user), env.user, env.rewardMint)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_000_000), receipt.Events[0].(*RewardsClaimed).Amount)
}

func TestClaimAccrualWindowBound(t *testing.T) {
	env := newTestEnv(t, DefaultParams())
	env.initVault()
	nftMint, nftAccount := env.seedNft(env.user)

	env.advance(1)
	_, err := env.engine.StakeNft(SignedBy(env.user), env.user, nftMint, nftAccount)
	require.NoError(t, err)

	// Past the 30-day accrual window the elapsed time is rejected
	// outright instead of being clamped.
	env.advance(2_592_001)
	_, err = env.engine.ClaimRewards(SignedBy(env.user), env.user, env.rewardMint)
	requireRevert(t, err, reverts.CodeInvalidTimeElapsed)
}

func TestClaimDailyRewardLimit(t *testing.T) {
	params := DefaultParams()
	params.MaxRewardsPerDay = 5_000
	env := newTestEnv(t, params)
	env.initVault()
	nftMint, nftAccount := env.seedNft(env.user)

	env.advance(1)
	_, err := env.engine.StakeNft(SignedBy(env.user), env.user, nftMint, nftAccount)
	require.NoError(t, err)

	// First claim fits under the 5k daily cap.
	env.advance(400)
	receipt, err := env.engine.ClaimRewards(SignedBy(env.user), env.user, env.rewardMint)
	require.NoError(t, err)
	assert.Equal(t, uint64(4_000), receipt.Events[0].(*RewardsClaimed).Amount)

	// The second would push the day's total past the cap.
	env.advance(200)
	_, err = env.engine.ClaimRewards(SignedBy(env.user), env.user, env.rewardMint)
	requireRevert(t, err, reverts.CodeDailyLimitExceeded)

	// Freeze the balance by unstaking; the next day admits the claim.
	_, err = env.engine.UnstakeNft(SignedBy(env.user), env.user, nftMint, nftAccount)
	require.NoError(t, err)
	env.advance(86_400)
	receipt, err = env.engine.ClaimRewards(SignedBy(env.user), env.user, env.rewardMint)
	require.NoError(t, err)
	assert.Equal(t, uint64(2_000), receipt.Events[0].(*RewardsClaimed).Amount)
}
