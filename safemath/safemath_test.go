// Copyright (c) 2025 The Solvault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package safemath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solvault/solvault/reverts"
)

func TestCheckedAddU64(t *testing.T) {
	sum, err := CheckedAddU64(1, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), sum)

	sum, err = CheckedAddU64(math.MaxUint64, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), sum)

	_, err = CheckedAddU64(math.MaxUint64, 1)
	assert.True(t, reverts.Is(err, reverts.CodeMathOverflow))
}

func TestCheckedSubU64(t *testing.T) {
	diff, err := CheckedSubU64(3, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), diff)

	diff, err = CheckedSubU64(2, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), diff)

	_, err = CheckedSubU64(2, 3)
	assert.True(t, reverts.Is(err, reverts.CodeMathUnderflow))
}

func TestCheckedMulU64(t *testing.T) {
	prod, err := CheckedMulU64(65, 1_000_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(65_000_000), prod)

	prod, err = CheckedMulU64(0, math.MaxUint64)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), prod)

	_, err = CheckedMulU64(math.MaxUint64, 2)
	assert.True(t, reverts.Is(err, reverts.CodeMathOverflow))
}
