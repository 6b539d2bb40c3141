// Copyright (c) 2025 The Solvault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"io"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestIsRevertErr(t *testing.T) {
	assert.False(t, IsRevertErr(nil))
	assert.False(t, IsRevertErr("not an error"))
	assert.False(t, IsRevertErr(io.EOF))
	assert.True(t, IsRevertErr(ErrVaultPaused))
	assert.True(t, IsRevertErr(errors.Wrap(ErrVaultPaused, "stake rejected")))
}

func TestCodeOf(t *testing.T) {
	code, ok := CodeOf(ErrMathOverflow)
	assert.True(t, ok)
	assert.Equal(t, CodeMathOverflow, code)

	_, ok = CodeOf(io.EOF)
	assert.False(t, ok)

	assert.True(t, Is(errors.Wrap(ErrTooFrequent, "rate limit"), CodeTooFrequent))
	assert.False(t, Is(ErrTooFrequent, CodeTooFrequentClaim))
}

func TestCodesAreDistinct(t *testing.T) {
	codes := []Code{
		CodeMathOverflow, CodeMathUnderflow, CodeNoNftsStaked, CodeNoRewardsToClaim,
		CodeInvalidNft, CodeNoCollectionFound, CodeCollectionNotVerified, CodeWrongCollection,
		CodeVaultPaused, CodeTooFrequent, CodeTooFrequentClaim, CodeInvalidTimeElapsed,
		CodeExcessiveRewardClaim, CodeInvalidRewardRate, CodeAlreadyPaused, CodeNotPaused,
	}
	seen := make(map[Code]bool)
	for _, c := range codes {
		assert.False(t, seen[c], "duplicate code %d", c)
		seen[c] = true
	}
}
