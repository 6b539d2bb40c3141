// Copyright (c) 2025 The Solvault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package schema defines the persisted account records and their
// derivation rules. Every record is a fixed-layout borsh encoding
// prefixed with an 8-byte discriminator, stored at an address derived
// deterministically from static seeds (plus the user identity for
// per-user records). Derived addresses are controllable only by program
// logic, never by a private key.
package schema

import (
	"bytes"
	"crypto/sha256"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
)

// ProgramID is the deployed program identity all record addresses are
// derived under.
var ProgramID = solana.MustPublicKeyFromBase58("B8XmBimHbyZkzL1hsaYJM5BHwbPV2vVGf9eWtWc1zQ9P")

// MetadataProgramID is the token-metadata oracle program. Metadata
// records live under its derivation space; this program only reads them.
var MetadataProgramID = solana.MustPublicKeyFromBase58("metaqbxxUerdq28cj1RbAWkYQm3ybzjb6a8bt518x1s")

// Static derivation seeds.
const (
	SeedVault     = "vault"
	SeedUserStake = "user_stake"
	SeedRole      = "role"
	SeedCustody   = "custody"
	SeedReward    = "reward"
	SeedMetadata  = "metadata"
)

// VaultAddress derives the singleton vault record address and its bump.
func VaultAddress() (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{[]byte(SeedVault)}, ProgramID)
}

// UserStakeAddress derives the per-user stake record address.
func UserStakeAddress(user solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{[]byte(SeedUserStake), user.Bytes()}, ProgramID)
}

// RoleAddress derives the per-user role record address.
func RoleAddress(user solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{[]byte(SeedRole), user.Bytes()}, ProgramID)
}

// CustodyAddress derives the vault-owned custody token account for an
// NFT mint. Staked NFTs are physically held here.
func CustodyAddress(nftMint solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{[]byte(SeedCustody), nftMint.Bytes()}, ProgramID)
}

// RewardAccountAddress derives the user's reward token account created
// on first claim.
func RewardAccountAddress(user solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{[]byte(SeedReward), user.Bytes()}, ProgramID)
}

// MetadataAddress derives the metadata record address for an NFT mint,
// under the metadata program's derivation space.
func MetadataAddress(nftMint solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress(
		[][]byte{[]byte(SeedMetadata), MetadataProgramID.Bytes(), nftMint.Bytes()},
		MetadataProgramID,
	)
}

// discriminator derives the 8-byte record tag from the record name.
func discriminator(name string) (d [8]byte) {
	h := sha256.Sum256([]byte("account:" + name))
	copy(d[:], h[:8])
	return
}

var (
	discVault        = discriminator("Vault")
	discUserStake    = discriminator("UserStake")
	discRole         = discriminator("Role")
	discMint         = discriminator("Mint")
	discTokenAccount = discriminator("TokenAccount")
	discMetadata     = discriminator("Metadata")
)

var errDiscriminatorMismatch = errors.New("account discriminator mismatch")

func marshalRecord(disc [8]byte, v any) ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Write(disc[:])
	if err := bin.NewBorshEncoder(buf).Encode(v); err != nil {
		return nil, errors.Wrap(err, "encode record")
	}
	return buf.Bytes(), nil
}

func unmarshalRecord(disc [8]byte, data []byte, v any) error {
	if len(data) < 8 || !bytes.Equal(data[:8], disc[:]) {
		return errDiscriminatorMismatch
	}
	if err := bin.NewBorshDecoder(data[8:]).Decode(v); err != nil {
		return errors.Wrap(err, "decode record")
	}
	return nil
}

// IsDiscriminatorMismatch reports whether err marks a record of the
// wrong type at a given address.
func IsDiscriminatorMismatch(err error) bool {
	return errors.Is(err, errDiscriminatorMismatch)
}
