// Copyright (c) 2025 The Solvault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package token implements the fungible/non-fungible token ledger the
// staking program moves value through: mints with a single optional
// mint authority, token accounts with owner-gated transfers, and
// authority-gated minting. All balance math is overflow-checked.
package token

import (
	"github.com/gagliardetto/solana-go"

	"github.com/solvault/solvault/reverts"
	"github.com/solvault/solvault/safemath"
	"github.com/solvault/solvault/schema"
	"github.com/solvault/solvault/state"
)

// GetMint loads the mint record at addr.
func GetMint(st *state.State, addr solana.PublicKey) (*schema.Mint, error) {
	data, err := st.Get(addr)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, reverts.ErrAccountNotFound
	}
	return schema.UnmarshalMint(data)
}

// GetAccount loads the token account record at addr.
func GetAccount(st *state.State, addr solana.PublicKey) (*schema.TokenAccount, error) {
	data, err := st.Get(addr)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, reverts.ErrAccountNotFound
	}
	return schema.UnmarshalTokenAccount(data)
}

func putMint(st *state.State, addr solana.PublicKey, mint *schema.Mint) error {
	data, err := mint.Marshal()
	if err != nil {
		return err
	}
	st.Set(addr, data)
	return nil
}

func putAccount(st *state.State, addr solana.PublicKey, acc *schema.TokenAccount) error {
	data, err := acc.Marshal()
	if err != nil {
		return err
	}
	st.Set(addr, data)
	return nil
}

// CreateMint creates a new mint record. Fails if addr is occupied.
func CreateMint(st *state.State, addr solana.PublicKey, authority *solana.PublicKey, decimals uint8) error {
	exists, err := st.Exists(addr)
	if err != nil {
		return err
	}
	if exists {
		return reverts.ErrAccountExists
	}
	return putMint(st, addr, &schema.Mint{MintAuthority: authority, Decimals: decimals})
}

// CreateAccount creates an empty token account for the given mint and
// owner. Fails if addr is occupied.
func CreateAccount(st *state.State, addr, mint, owner solana.PublicKey) error {
	exists, err := st.Exists(addr)
	if err != nil {
		return err
	}
	if exists {
		return reverts.ErrAccountExists
	}
	return putAccount(st, addr, &schema.TokenAccount{Mint: mint, Owner: owner})
}

// EnsureAccount creates the token account if absent, otherwise checks
// that the existing record matches the expected mint and owner.
func EnsureAccount(st *state.State, addr, mint, owner solana.PublicKey) (*schema.TokenAccount, error) {
	data, err := st.Get(addr)
	if err != nil {
		return nil, err
	}
	if data == nil {
		acc := &schema.TokenAccount{Mint: mint, Owner: owner}
		if err := putAccount(st, addr, acc); err != nil {
			return nil, err
		}
		return acc, nil
	}
	acc, err := schema.UnmarshalTokenAccount(data)
	if err != nil {
		return nil, err
	}
	if !acc.Mint.Equals(mint) {
		return nil, reverts.ErrMintMismatch
	}
	if !acc.Owner.Equals(owner) {
		return nil, reverts.ErrOwnerMismatch
	}
	return acc, nil
}

// Transfer moves amount from one token account to another. The
// authority must own the source account and both accounts must share a
// mint.
func Transfer(st *state.State, from, to, authority solana.PublicKey, amount uint64) error {
	src, err := GetAccount(st, from)
	if err != nil {
		return err
	}
	dst, err := GetAccount(st, to)
	if err != nil {
		return err
	}
	if !src.Owner.Equals(authority) {
		return reverts.ErrOwnerMismatch
	}
	if !src.Mint.Equals(dst.Mint) {
		return reverts.ErrMintMismatch
	}
	if src.Amount < amount {
		return reverts.ErrInsufficientFunds
	}

	src.Amount, err = safemath.CheckedSubU64(src.Amount, amount)
	if err != nil {
		return err
	}
	dst.Amount, err = safemath.CheckedAddU64(dst.Amount, amount)
	if err != nil {
		return err
	}

	if err := putAccount(st, from, src); err != nil {
		return err
	}
	return putAccount(st, to, dst)
}

// MintTo mints amount of the given mint into dest. The authority must
// hold mint authority.
func MintTo(st *state.State, mintAddr, dest, authority solana.PublicKey, amount uint64) error {
	mint, err := GetMint(st, mintAddr)
	if err != nil {
		return err
	}
	if !mint.IsMintAuthority(authority) {
		return reverts.ErrInvalidMintAuthority
	}
	acc, err := GetAccount(st, dest)
	if err != nil {
		return err
	}
	if !acc.Mint.Equals(mintAddr) {
		return reverts.ErrMintMismatch
	}

	mint.Supply, err = safemath.CheckedAddU64(mint.Supply, amount)
	if err != nil {
		return err
	}
	acc.Amount, err = safemath.CheckedAddU64(acc.Amount, amount)
	if err != nil {
		return err
	}

	if err := putMint(st, mintAddr, mint); err != nil {
		return err
	}
	return putAccount(st, dest, acc)
}

// SetMintAuthority reassigns a mint's authority. The current authority
// must sign off; a nil newAuthority freezes the supply permanently.
func SetMintAuthority(st *state.State, mintAddr, current solana.PublicKey, newAuthority *solana.PublicKey) error {
	mint, err := GetMint(st, mintAddr)
	if err != nil {
		return err
	}
	if !mint.IsMintAuthority(current) {
		return reverts.ErrInvalidMintAuthority
	}
	mint.MintAuthority = newAuthority
	return putMint(st, mintAddr, mint)
}
