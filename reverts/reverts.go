// Copyright (c) 2025 The Solvault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package reverts defines the typed errors that abort an instruction.
// Every validation failure inside the program maps to exactly one code,
// so callers can distinguish retryable conditions from policy violations.
package reverts

import (
	"errors"
	"fmt"
)

// Code identifies a revert reason. Codes are offset by 6000 to keep them
// clear of substrate-level error numbers.
type Code uint32

const (
	CodeMathOverflow Code = 6000 + iota
	CodeMathUnderflow
	CodeNoNftsStaked
	CodeNoRewardsToClaim
	CodeInvalidNft
	CodeNoCollectionFound
	CodeCollectionNotVerified
	CodeWrongCollection
	CodeVaultPaused
	CodeTooFrequent
	CodeTooFrequentClaim
	CodeInvalidTimeElapsed
	CodeExcessiveRewardClaim
	CodeInvalidRewardRate
	CodeAlreadyPaused
	CodeNotPaused
	CodeUnauthorized
	CodeInsufficientPermissions
	CodeMintAuthorityTransferFailed
	CodeInvalidMintAuthority
	CodeCircuitBreakerActive
	CodeDailyLimitExceeded
	CodeMissingSignature
	CodeAccountNotFound
	CodeAccountExists
	CodeAccountMismatch
	CodeOwnerMismatch
	CodeMintMismatch
	CodeInsufficientFunds
	CodeInvalidRole
)

// ErrRevert is the error type returned by all failed instructions.
type ErrRevert struct {
	code    Code
	message string
}

func New(code Code, message string) *ErrRevert {
	return &ErrRevert{
		code:    code,
		message: message,
	}
}

func (e *ErrRevert) Error() string {
	return fmt.Sprintf("%s (code %d)", e.message, e.code)
}

func (e *ErrRevert) Code() Code {
	return e.code
}

// IsRevertErr reports whether err (or anything it wraps) is a revert.
func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *ErrRevert
	return errors.As(e, &ve)
}

// Is reports whether err carries the given revert code.
func Is(err error, code Code) bool {
	c, ok := CodeOf(err)
	return ok && c == code
}

// CodeOf extracts the revert code from err.
func CodeOf(err error) (Code, bool) {
	var ve *ErrRevert
	if errors.As(err, &ve) {
		return ve.code, true
	}
	return 0, false
}

// Canned reverts shared by the handlers and the token ledger.
var (
	ErrMathOverflow                = New(CodeMathOverflow, "math overflow")
	ErrMathUnderflow               = New(CodeMathUnderflow, "math underflow")
	ErrNoNftsStaked                = New(CodeNoNftsStaked, "no NFTs staked")
	ErrNoRewardsToClaim            = New(CodeNoRewardsToClaim, "no rewards to claim")
	ErrInvalidNft                  = New(CodeInvalidNft, "invalid NFT - must have amount=1 and decimals=0")
	ErrNoCollectionFound           = New(CodeNoCollectionFound, "no collection found in NFT metadata")
	ErrCollectionNotVerified       = New(CodeCollectionNotVerified, "collection not verified")
	ErrWrongCollection             = New(CodeWrongCollection, "NFT not from authorized collection")
	ErrVaultPaused                 = New(CodeVaultPaused, "vault is paused")
	ErrTooFrequent                 = New(CodeTooFrequent, "operation too frequent - rate limited")
	ErrTooFrequentClaim            = New(CodeTooFrequentClaim, "claim too frequent")
	ErrInvalidTimeElapsed          = New(CodeInvalidTimeElapsed, "invalid time elapsed")
	ErrExcessiveRewardClaim        = New(CodeExcessiveRewardClaim, "reward claim exceeds maximum allowed")
	ErrInvalidRewardRate           = New(CodeInvalidRewardRate, "reward rate must be greater than 0")
	ErrAlreadyPaused               = New(CodeAlreadyPaused, "already paused")
	ErrNotPaused                   = New(CodeNotPaused, "not paused")
	ErrUnauthorized                = New(CodeUnauthorized, "unauthorized access")
	ErrInsufficientPermissions     = New(CodeInsufficientPermissions, "insufficient permissions for this action")
	ErrMintAuthorityTransferFailed = New(CodeMintAuthorityTransferFailed, "failed to transfer mint authority to vault")
	ErrInvalidMintAuthority        = New(CodeInvalidMintAuthority, "invalid mint authority")
	ErrCircuitBreakerActive        = New(CodeCircuitBreakerActive, "circuit breaker is active - too many failures")
	ErrDailyLimitExceeded          = New(CodeDailyLimitExceeded, "daily operation limit exceeded")
	ErrMissingSignature            = New(CodeMissingSignature, "required signature is missing")
	ErrAccountNotFound             = New(CodeAccountNotFound, "account does not exist")
	ErrAccountExists               = New(CodeAccountExists, "account already exists")
	ErrAccountMismatch             = New(CodeAccountMismatch, "account does not match derived address")
	ErrOwnerMismatch               = New(CodeOwnerMismatch, "account owner mismatch")
	ErrMintMismatch                = New(CodeMintMismatch, "token account mint mismatch")
	ErrInsufficientFunds           = New(CodeInsufficientFunds, "insufficient token balance")
	ErrInvalidRole                 = New(CodeInvalidRole, "role is not a member of the closed role set")
)
