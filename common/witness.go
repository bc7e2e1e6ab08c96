package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/util"
)

var (
	// ErrOwnerWitnessFailed appears when the method must be called
	// by an owner of some assets but was not.
	ErrOwnerWitnessFailed = "owner witness check failed"
	// ErrWitnessFailed appears when the method must be called
	// using certain account but was not.
	ErrWitnessFailed = "witness check failed"
)

// CheckOwnerWitness checks witness of the passed asset owner.
// It panics with ErrOwnerWitnessFailed message on fail.
func CheckOwnerWitness(owner interop.Hash160) {
	checkWitnessWithPanic(owner, ErrOwnerWitnessFailed)
}

// CheckWitness checks witness of the passed caller.
// It panics with ErrWitnessFailed message on fail.
func CheckWitness(caller interop.Hash160) {
	checkWitnessWithPanic(caller, ErrWitnessFailed)
}

func checkWitnessWithPanic(caller interop.Hash160, panicMsg string) {
	if !runtime.CheckWitness(caller) {
		panic(panicMsg)
	}
}

// AuthorizedBy reports whether addr signed the current transaction or is the
// contract that performed the current call. The latter lets a contract move
// its own assets, the way the vault pushes pooled underlying tokens out.
func AuthorizedBy(addr interop.Hash160) bool {
	if runtime.CheckWitness(addr) {
		return true
	}
	return BytesEqual(runtime.GetCallingScriptHash(), addr)
}

// BytesEqual compares two slices of bytes via string conversion, the only
// comparison the VM supports for byte strings.
func BytesEqual(a []byte, b []byte) bool {
	return util.Equals(string(a), string(b))
}
