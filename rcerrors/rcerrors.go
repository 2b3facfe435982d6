// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package rcerrors defines the error taxonomy of spec §7, one sentinel-
// wrapped type per error kind so host code can errors.As/errors.Is to
// distinguish them, matching the teacher's fmt.Errorf("...: %w", err)
// wrapping convention (see core/state_processor.go's ErrInsufficientFunds
// and similar typed transaction-rejection errors).
package rcerrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is comparisons against the coarse kind,
// independent of the struct payload a given occurrence carries.
var (
	ErrInsufficientRC        = errors.New("rcengine: insufficient resource credits")
	ErrNoResourceUser        = errors.New("rcengine: transaction has no resource user")
	ErrUnknownStakeDelta     = errors.New("rcengine: max_mana diverges from cached last_max_rc")
	ErrMissingRCAccount      = errors.New("rcengine: expected RC account state not found")
	ErrSeedParseFailure      = errors.New("rcengine: genesis resource parameter seed is invalid")
	ErrArithmeticOverflow    = errors.New("rcengine: arithmetic overflow")
)

// InsufficientRCError is the user-visible error of spec §7, carrying the
// billed account and the transaction's full RC cost (rc_needed).
type InsufficientRCError struct {
	Account  string
	RCNeeded int64
}

func (e *InsufficientRCError) Error() string {
	return fmt.Sprintf("rcengine: insufficient resource credits: account %q needs %d RC", e.Account, e.RCNeeded)
}

func (e *InsufficientRCError) Unwrap() error { return ErrInsufficientRC }

// NewInsufficientRC constructs the production-path rejection error of
// spec §4.7's charging policy.
func NewInsufficientRC(account string, rcNeeded int64) error {
	return &InsufficientRCError{Account: account, RCNeeded: rcNeeded}
}

// NoResourceUserError is raised only in production for transactions
// whose §4.7 selector returns empty (spec §7).
type NoResourceUserError struct {
	TxID string
}

func (e *NoResourceUserError) Error() string {
	return fmt.Sprintf("rcengine: transaction %s has no resource user", e.TxID)
}

func (e *NoResourceUserError) Unwrap() error { return ErrNoResourceUser }

func NewNoResourceUser(txID string) error {
	return &NoResourceUserError{TxID: txID}
}

// UnknownStakeDeltaError is raised (or logged, per skip flag) when
// pre-op max_mana(A) disagrees with the cached last_max_rc (spec §7, I3).
type UnknownStakeDeltaError struct {
	Account  string
	Expected int64
	Actual   int64
}

func (e *UnknownStakeDeltaError) Error() string {
	return fmt.Sprintf("rcengine: account %q last_max_rc=%d but derived max_mana=%d", e.Account, e.Expected, e.Actual)
}

func (e *UnknownStakeDeltaError) Unwrap() error { return ErrUnknownStakeDelta }

func NewUnknownStakeDelta(account string, expected, actual int64) error {
	return &UnknownStakeDeltaError{Account: account, Expected: expected, Actual: actual}
}

// MissingRCAccountError signals a missed creation hook (spec §7): always
// fatal, never gated by a skip flag.
type MissingRCAccountError struct {
	Account string
}

func (e *MissingRCAccountError) Error() string {
	return fmt.Sprintf("rcengine: account %q has no RC state; a creation hook was missed", e.Account)
}

func (e *MissingRCAccountError) Unwrap() error { return ErrMissingRCAccount }

func NewMissingRCAccount(account string) error {
	return &MissingRCAccountError{Account: account}
}

// SeedParseError wraps a failure to parse the opaque genesis seed at
// first-block initialization (spec §7); always fatal.
type SeedParseError struct {
	Cause error
}

func (e *SeedParseError) Error() string {
	return fmt.Sprintf("rcengine: genesis seed parse failure: %v", e.Cause)
}

func (e *SeedParseError) Unwrap() error { return ErrSeedParseFailure }

func WrapSeedParseFailure(cause error) error {
	return &SeedParseError{Cause: cause}
}

// ArithmeticOverflowError wraps an unexpected overflow surfaced from the
// pricing curve or related saturating-arithmetic helpers (spec §7):
// always fatal.
type ArithmeticOverflowError struct {
	Cause error
}

func (e *ArithmeticOverflowError) Error() string {
	return fmt.Sprintf("rcengine: arithmetic overflow: %v", e.Cause)
}

func (e *ArithmeticOverflowError) Unwrap() error { return ErrArithmeticOverflow }

func WrapArithmeticOverflow(cause error) error {
	return &ArithmeticOverflowError{Cause: cause}
}
