// Copyright (c) 2025 The Solvault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package program

import (
	"github.com/gagliardetto/solana-go"

	"github.com/solvault/solvault/auditdb"
)

// Event is emitted by a successfully executed instruction. Events are
// produced only after all state mutations succeed; a reverted
// instruction emits nothing.
type Event interface {
	// Name returns the stable event identifier.
	Name() string

	auditRecord() auditdb.Record
}

type NftStaked struct {
	User        solana.PublicKey
	NftMint     solana.PublicKey
	TotalStaked uint32
	Timestamp   int64
}

func (e *NftStaked) Name() string { return "nft_staked" }

func (e *NftStaked) auditRecord() auditdb.Record {
	return auditdb.Record{
		Name:      e.Name(),
		User:      e.User,
		Subject:   e.NftMint,
		Amount:    uint64(e.TotalStaked),
		Timestamp: e.Timestamp,
	}
}

type NftUnstaked struct {
	User        solana.PublicKey
	NftMint     solana.PublicKey
	TotalStaked uint32
	Timestamp   int64
}

func (e *NftUnstaked) Name() string { return "nft_unstaked" }

func (e *NftUnstaked) auditRecord() auditdb.Record {
	return auditdb.Record{
		Name:      e.Name(),
		User:      e.User,
		Subject:   e.NftMint,
		Amount:    uint64(e.TotalStaked),
		Timestamp: e.Timestamp,
	}
}

type RewardsClaimed struct {
	User      solana.PublicKey
	Amount    uint64
	Timestamp int64
}

func (e *RewardsClaimed) Name() string { return "rewards_claimed" }

func (e *RewardsClaimed) auditRecord() auditdb.Record {
	return auditdb.Record{
		Name:      e.Name(),
		User:      e.User,
		Amount:    e.Amount,
		Timestamp: e.Timestamp,
	}
}

type VaultPaused struct {
	Authority solana.PublicKey
	Timestamp int64
}

func (e *VaultPaused) Name() string { return "vault_paused" }

func (e *VaultPaused) auditRecord() auditdb.Record {
	return auditdb.Record{
		Name:      e.Name(),
		User:      e.Authority,
		Timestamp: e.Timestamp,
	}
}

type VaultUnpaused struct {
	Authority solana.PublicKey
	Timestamp int64
}

func (e *VaultUnpaused) Name() string { return "vault_unpaused" }

func (e *VaultUnpaused) auditRecord() auditdb.Record {
	return auditdb.Record{
		Name:      e.Name(),
		User:      e.Authority,
		Timestamp: e.Timestamp,
	}
}

type ConfigUpdated struct {
	Authority     solana.PublicKey
	RewardRate    uint64
	CollectionSet bool
	Timestamp     int64
}

func (e *ConfigUpdated) Name() string { return "config_updated" }

func (e *ConfigUpdated) auditRecord() auditdb.Record {
	return auditdb.Record{
		Name:      e.Name(),
		User:      e.Authority,
		Amount:    e.RewardRate,
		Timestamp: e.Timestamp,
	}
}

type RoleGranted struct {
	Grantee   solana.PublicKey
	GrantedBy solana.PublicKey
	Role      uint8
	Timestamp int64
}

func (e *RoleGranted) Name() string { return "role_granted" }

func (e *RoleGranted) auditRecord() auditdb.Record {
	return auditdb.Record{
		Name:      e.Name(),
		User:      e.GrantedBy,
		Subject:   e.Grantee,
		Amount:    uint64(e.Role),
		Timestamp: e.Timestamp,
	}
}

type RoleRevoked struct {
	Revokee   solana.PublicKey
	RevokedBy solana.PublicKey
	Timestamp int64
}

func (e *RoleRevoked) Name() string { return "role_revoked" }

func (e *RoleRevoked) auditRecord() auditdb.Record {
	return auditdb.Record{
		Name:      e.Name(),
		User:      e.RevokedBy,
		Subject:   e.Revokee,
		Timestamp: e.Timestamp,
	}
}
