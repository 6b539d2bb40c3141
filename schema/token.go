// Copyright (c) 2025 The Solvault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package schema

import (
	"github.com/gagliardetto/solana-go"
)

// Mint describes a token mint. A nil MintAuthority means the supply is
// frozen forever. On-disk size: 8 (discriminator) + 1..33 + 8 + 1 bytes.
type Mint struct {
	MintAuthority *solana.PublicKey `bin:"optional"` // borsh option, 1 or 33 bytes
	Supply        uint64            // 8 bytes
	Decimals      uint8             // 1 byte
}

func (m *Mint) Marshal() ([]byte, error) {
	return marshalRecord(discMint, m)
}

func UnmarshalMint(data []byte) (*Mint, error) {
	var m Mint
	if err := unmarshalRecord(discMint, data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// IsMintAuthority reports whether the given identity holds mint
// authority.
func (m *Mint) IsMintAuthority(id solana.PublicKey) bool {
	return m.MintAuthority != nil && m.MintAuthority.Equals(id)
}

// TokenAccount holds a balance of one mint for one owner. On-disk size:
// 8 (discriminator) + 32 + 32 + 8 = 80 bytes.
type TokenAccount struct {
	Mint   solana.PublicKey // 32 bytes
	Owner  solana.PublicKey // 32 bytes
	Amount uint64           // 8 bytes
}

func (a *TokenAccount) Marshal() ([]byte, error) {
	return marshalRecord(discTokenAccount, a)
}

func UnmarshalTokenAccount(data []byte) (*TokenAccount, error) {
	var a TokenAccount
	if err := unmarshalRecord(discTokenAccount, data, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Metadata is the oracle-written metadata record for an NFT mint. The
// program trusts its verified-collection flag and never writes it.
type Metadata struct {
	Mint       solana.PublicKey // 32 bytes
	Collection *Collection      `bin:"optional"` // borsh option
}

// Collection is a claimed collection membership. Verified is set only
// by the collection authority through the oracle.
type Collection struct {
	Verified bool             // 1 byte
	Key      solana.PublicKey // 32 bytes
}

func (m *Metadata) Marshal() ([]byte, error) {
	return marshalRecord(discMetadata, m)
}

func UnmarshalMetadata(data []byte) (*Metadata, error) {
	var m Metadata
	if err := unmarshalRecord(discMetadata, data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
