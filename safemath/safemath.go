// Copyright (c) 2025 The Solvault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package safemath provides overflow-checked unsigned arithmetic.
// All reward and counter math in the program goes through these helpers;
// a failed check aborts the whole instruction instead of wrapping.
package safemath

import (
	"math/bits"

	"github.com/solvault/solvault/reverts"
)

// CheckedAddU64 returns a + b, or MathOverflow if the sum wraps.
func CheckedAddU64(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, reverts.ErrMathOverflow
	}
	return sum, nil
}

// CheckedSubU64 returns a - b, or MathUnderflow if b > a.
func CheckedSubU64(a, b uint64) (uint64, error) {
	diff, borrow := bits.Sub64(a, b, 0)
	if borrow != 0 {
		return 0, reverts.ErrMathUnderflow
	}
	return diff, nil
}

// CheckedMulU64 returns a * b, or MathOverflow if the product wraps.
func CheckedMulU64(a, b uint64) (uint64, error) {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return 0, reverts.ErrMathOverflow
	}
	return lo, nil
}
