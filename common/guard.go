package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
)

const (
	// ErrZeroAddress appears when the zero account (or a malformed one)
	// is passed where a real participant is required.
	ErrZeroAddress = "zero address"
	// ErrZeroAmount appears when a value-moving method receives a
	// non-positive amount.
	ErrZeroAmount = "zero amount"
)

// CheckAccount panics with ErrZeroAddress unless account is a well-formed
// non-zero Hash160.
func CheckAccount(account interop.Hash160) {
	if len(account) != interop.Hash160Len {
		panic(ErrZeroAddress)
	}
	if BytesEqual(account, make([]byte, interop.Hash160Len)) {
		panic(ErrZeroAddress)
	}
}

// CheckPositive panics with ErrZeroAmount unless amount is strictly positive.
func CheckPositive(amount int) {
	if amount <= 0 {
		panic(ErrZeroAmount)
	}
}
