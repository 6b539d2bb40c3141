// Copyright (c) 2025 The Solvault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package schema

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randKey(t *testing.T) solana.PublicKey {
	key, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	return key.PublicKey()
}

func TestDerivedAddressesAreDeterministic(t *testing.T) {
	a1, bump1, err := VaultAddress()
	require.NoError(t, err)
	a2, bump2, err := VaultAddress()
	require.NoError(t, err)
	assert.Equal(t, a1, a2)
	assert.Equal(t, bump1, bump2)

	user := randKey(t)
	u1, _, err := UserStakeAddress(user)
	require.NoError(t, err)
	u2, _, err := UserStakeAddress(user)
	require.NoError(t, err)
	assert.Equal(t, u1, u2)

	other := randKey(t)
	uOther, _, err := UserStakeAddress(other)
	require.NoError(t, err)
	assert.NotEqual(t, u1, uOther)
}

func TestDerivationSpacesAreDisjoint(t *testing.T) {
	user := randKey(t)
	stakeAddr, _, err := UserStakeAddress(user)
	require.NoError(t, err)
	roleAddr, _, err := RoleAddress(user)
	require.NoError(t, err)
	rewardAddr, _, err := RewardAccountAddress(user)
	require.NoError(t, err)

	assert.NotEqual(t, stakeAddr, roleAddr)
	assert.NotEqual(t, stakeAddr, rewardAddr)
	assert.NotEqual(t, roleAddr, rewardAddr)
}

func TestVaultRoundTrip(t *testing.T) {
	_, bump, err := VaultAddress()
	require.NoError(t, err)

	vault := &Vault{
		Authority:           randKey(t),
		TotalStaked:         3,
		RewardTokenMint:     randKey(t),
		RewardRatePerSecond: 1_000_000,
		CollectionMint:      randKey(t),
		Paused:              true,
		LastUpdateTimestamp: 1_700_000_000,
		Bump:                bump,
		DailyLimit: DailyLimits{
			MaxStakesPerDay:  100,
			MaxClaimsPerDay:  50,
			MaxRewardsPerDay: 1_000_000_000,
		},
	}

	data, err := vault.Marshal()
	require.NoError(t, err)

	got, err := UnmarshalVault(data)
	require.NoError(t, err)
	assert.Equal(t, vault, got)
}

func TestDiscriminatorGuardsRecordType(t *testing.T) {
	stake := &UserStake{User: randKey(t), StakedNfts: 1}
	data, err := stake.Marshal()
	require.NoError(t, err)

	_, err = UnmarshalVault(data)
	assert.True(t, IsDiscriminatorMismatch(err))

	_, err = UnmarshalVault([]byte{0x01})
	assert.True(t, IsDiscriminatorMismatch(err))
}

func TestMintOptionalAuthority(t *testing.T) {
	auth := randKey(t)
	mint := &Mint{MintAuthority: &auth, Supply: 42, Decimals: 6}
	data, err := mint.Marshal()
	require.NoError(t, err)
	got, err := UnmarshalMint(data)
	require.NoError(t, err)
	require.NotNil(t, got.MintAuthority)
	assert.True(t, got.IsMintAuthority(auth))
	assert.False(t, got.IsMintAuthority(randKey(t)))

	frozen := &Mint{Supply: 1, Decimals: 0}
	data, err = frozen.Marshal()
	require.NoError(t, err)
	got, err = UnmarshalMint(data)
	require.NoError(t, err)
	assert.Nil(t, got.MintAuthority)
	assert.False(t, got.IsMintAuthority(auth))
}

func TestMetadataCollectionRoundTrip(t *testing.T) {
	mint := randKey(t)
	collection := randKey(t)

	meta := &Metadata{
		Mint:       mint,
		Collection: &Collection{Verified: true, Key: collection},
	}
	data, err := meta.Marshal()
	require.NoError(t, err)
	got, err := UnmarshalMetadata(data)
	require.NoError(t, err)
	assert.Equal(t, meta, got)

	bare := &Metadata{Mint: mint}
	data, err = bare.Marshal()
	require.NoError(t, err)
	got, err = UnmarshalMetadata(data)
	require.NoError(t, err)
	assert.Nil(t, got.Collection)
}

func TestRolePermissions(t *testing.T) {
	cases := []struct {
		role      Role
		pause     bool
		config    bool
		roleAdmin bool
	}{
		{RoleSuperAdmin, true, true, true},
		{RoleAdmin, true, true, false},
		{RoleModerator, true, false, false},
		{RoleOperator, false, false, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.pause, tc.role.CanPauseVault(), "%s pause", tc.role)
		assert.Equal(t, tc.config, tc.role.CanUpdateConfig(), "%s config", tc.role)
		assert.Equal(t, tc.roleAdmin, tc.role.CanManageRoles(), "%s roles", tc.role)
	}
	assert.False(t, Role(99).Valid())
	assert.True(t, RoleOperator.Valid())
}

func TestCircuitBreaker(t *testing.T) {
	var cb CircuitBreakerState
	const threshold = 10
	const resetTimeout = 600

	assert.True(t, cb.CanExecute(1000, threshold, resetTimeout))

	for i := 0; i < threshold; i++ {
		cb.OnFailure(1000, threshold)
	}
	assert.True(t, cb.Blocked)
	assert.False(t, cb.CanExecute(1010, threshold, resetTimeout))

	// reopens after the reset window
	assert.True(t, cb.CanExecute(1000+resetTimeout+1, threshold, resetTimeout))

	// successes heal the breaker one failure at a time
	for i := 0; i < threshold; i++ {
		cb.OnSuccess()
	}
	assert.False(t, cb.Blocked)
	assert.True(t, cb.CanExecute(1010, threshold, resetTimeout))
}

func TestDailyLimits(t *testing.T) {
	d := DailyLimits{
		MaxStakesPerDay:  2,
		MaxClaimsPerDay:  1,
		MaxRewardsPerDay: 100,
	}

	assert.True(t, d.CanStake())
	d.RecordStake()
	d.RecordStake()
	assert.False(t, d.CanStake())

	assert.True(t, d.CanClaim(100))
	assert.False(t, d.CanClaim(101))
	d.RecordClaim(60)
	assert.False(t, d.CanClaim(50)) // claim count cap reached

	// a day later everything resets
	d.LastResetTimestamp = 0
	d.ResetIfNewDay(secondsPerDay + 1)
	assert.True(t, d.CanStake())
	assert.True(t, d.CanClaim(100))
}
