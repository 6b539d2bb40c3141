// Copyright (c) 2025 The Solvault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package program

import (
	"github.com/solvault/solvault/reverts"
	"github.com/solvault/solvault/safemath"
)

// CalculateRewards computes the rewards accrued over timeElapsed seconds
// at ratePerSecond lamports per staked NFT. The elapsed window must lie
// in [0, maxElapsed]; clock skew outside that range is rejected rather
// than silently clamped.
func CalculateRewards(timeElapsed int64, ratePerSecond, stakedCount uint64, maxElapsed int64) (uint64, error) {
	if timeElapsed < 0 || timeElapsed > maxElapsed {
		return 0, reverts.ErrInvalidTimeElapsed
	}
	perNft, err := safemath.CheckedMulU64(uint64(timeElapsed), ratePerSecond)
	if err != nil {
		return 0, err
	}
	total, err := safemath.CheckedMulU64(perNft, stakedCount)
	if err != nil {
		return 0, err
	}
	return total, nil
}
