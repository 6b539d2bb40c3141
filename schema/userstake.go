// Copyright (c) 2025 The Solvault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package schema

import (
	"github.com/gagliardetto/solana-go"
)

// UserStake is the per-user staking record, created lazily on first
// stake and kept forever so reward bookkeeping survives full unstaking.
// On-disk size: 8 (discriminator) + 32 + 4 + 8 + 8 = 60 bytes.
type UserStake struct {
	User                solana.PublicKey // 32 bytes, must match the signer on every mutation
	StakedNfts          uint32           // 4 bytes
	PendingRewards      uint64           // 8 bytes, accrued but unclaimed base units
	LastUpdateTimestamp int64            // 8 bytes, baseline for the next accrual
}

func (u *UserStake) Marshal() ([]byte, error) {
	return marshalRecord(discUserStake, u)
}

func UnmarshalUserStake(data []byte) (*UserStake, error) {
	var u UserStake
	if err := unmarshalRecord(discUserStake, data, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
