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

// PauseVault halts deposits and reward minting. Requires the vault
// authority or a role with pause permission. Pausing an already paused
// vault fails so an operator noticing double-submission gets a signal.
func (e *Engine) PauseVault(signers Signers, signer solana.PublicKey) (*Receipt, error) {
	return e.execute("pause_vault", func(now int64) ([]Event, error) {
		if err := requireSigner(signers, signer); err != nil {
			return nil, err
		}
		vault, err := e.loadVault()
		if err != nil {
			return nil, err
		}
		if vault.Paused {
			return nil, reverts.ErrAlreadyPaused
		}
		if err := e.requireAdmin(vault, signer, schema.Role.CanPauseVault); err != nil {
			return nil, err
		}

		vault.Paused = true
		vault.LastUpdateTimestamp = now
		if err := e.storeVault(vault); err != nil {
			return nil, err
		}
		return []Event{&VaultPaused{Authority: signer, Timestamp: now}}, nil
	})
}

// UnpauseVault lifts a pause.
func (e *Engine) UnpauseVault(signers Signers, signer solana.PublicKey) (*Receipt, error) {
	return e.execute("unpause_vault", func(now int64) ([]Event, error) {
		if err := requireSigner(signers, signer); err != nil {
			return nil, err
		}
		vault, err := e.loadVault()
		if err != nil {
			return nil, err
		}
		if !vault.Paused {
			return nil, reverts.ErrNotPaused
		}
		if err := e.requireAdmin(vault, signer, schema.Role.CanPauseVault); err != nil {
			return nil, err
		}

		vault.Paused = false
		vault.LastUpdateTimestamp = now
		if err := e.storeVault(vault); err != nil {
			return nil, err
		}
		return []Event{&VaultUnpaused{Authority: signer, Timestamp: now}}, nil
	})
}

// UpdateConfig changes the reward rate and/or the authorized collection.
// Nil fields are left unchanged. Accrual is lazy, so a rate change
// reprices any elapsed time a user has not yet folded into their
// pending balance; rewards already pending are unaffected.
func (e *Engine) UpdateConfig(
	signers Signers,
	signer solana.PublicKey,
	newRate *uint64,
	newCollection *solana.PublicKey,
) (*Receipt, error) {
	return e.execute("update_config", func(now int64) ([]Event, error) {
		if err := requireSigner(signers, signer); err != nil {
			return nil, err
		}
		vault, err := e.loadVault()
		if err != nil {
			return nil, err
		}
		if err := e.requireAdmin(vault, signer, schema.Role.CanUpdateConfig); err != nil {
			return nil, err
		}
		if newRate != nil {
			if *newRate == 0 {
				return nil, reverts.ErrInvalidRewardRate
			}
			vault.RewardRatePerSecond = *newRate
		}
		if newCollection != nil {
			vault.CollectionMint = *newCollection
		}

		vault.LastUpdateTimestamp = now
		if err := e.storeVault(vault); err != nil {
			return nil, err
		}
		return []Event{&ConfigUpdated{
			Authority:     signer,
			RewardRate:    vault.RewardRatePerSecond,
			CollectionSet: newCollection != nil,
			Timestamp:     now,
		}}, nil
	})
}

// GrantRole assigns a role to a user, replacing any existing grant.
// Only the vault authority or a super-admin can manage roles.
func (e *Engine) GrantRole(
	signers Signers,
	signer solana.PublicKey,
	grantee solana.PublicKey,
	role schema.Role,
) (*Receipt, error) {
	return e.execute("grant_role", func(now int64) ([]Event, error) {
		if err := requireSigner(signers, signer); err != nil {
			return nil, err
		}
		vault, err := e.loadVault()
		if err != nil {
			return nil, err
		}
		if err := e.requireAdmin(vault, signer, schema.Role.CanManageRoles); err != nil {
			return nil, err
		}
		if !role.Valid() {
			return nil, reverts.ErrInvalidRole
		}

		addr, _, err := schema.RoleAddress(grantee)
		if err != nil {
			return nil, err
		}
		rec := &schema.RoleRecord{
			User:      grantee,
			Role:      role,
			GrantedBy: signer,
			GrantedAt: now,
		}
		data, err := rec.Marshal()
		if err != nil {
			return nil, err
		}
		e.st.Set(addr, data)
		return []Event{&RoleGranted{
			Grantee:   grantee,
			GrantedBy: signer,
			Role:      uint8(role),
			Timestamp: now,
		}}, nil
	})
}

// RevokeRole removes a user's role grant entirely.
func (e *Engine) RevokeRole(
	signers Signers,
	signer solana.PublicKey,
	revokee solana.PublicKey,
) (*Receipt, error) {
	return e.execute("revoke_role", func(now int64) ([]Event, error) {
		if err := requireSigner(signers, signer); err != nil {
			return nil, err
		}
		vault, err := e.loadVault()
		if err != nil {
			return nil, err
		}
		if err := e.requireAdmin(vault, signer, schema.Role.CanManageRoles); err != nil {
			return nil, err
		}

		rec, addr, err := e.loadRole(revokee)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			return nil, reverts.ErrAccountNotFound
		}
		e.st.Delete(addr)
		return []Event{&RoleRevoked{
			Revokee:   revokee,
			RevokedBy: signer,
			Timestamp: now,
		}}, nil
	})
}
