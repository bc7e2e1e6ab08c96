package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

const (
	// ErrPaused appears when a mutating method is invoked while the
	// contract is halted, and when pause is requested twice.
	ErrPaused = "enforced pause"
	// ErrNotPaused appears when unpause is requested on a running
	// contract.
	ErrNotPaused = "pause not active"

	pauseKey = "P"
)

// IsPaused returns the state of the halt flag.
func IsPaused(ctx storage.Context) bool {
	return storage.Get(ctx, pauseKey) != nil
}

// SetPaused toggles the halt flag. Redundant transitions panic, which makes
// an accidental double pause (or unpause) visible to the operator. Produces
// Paused or Unpaused notification.
func SetPaused(ctx storage.Context, paused bool) {
	if paused {
		CheckNotPaused(ctx)
		storage.Put(ctx, pauseKey, 1)
		runtime.Notify("Paused")
	} else {
		CheckPaused(ctx)
		storage.Delete(ctx, pauseKey)
		runtime.Notify("Unpaused")
	}
}

// CheckNotPaused panics with ErrPaused if the halt flag is set. Every
// mutating token and vault method calls it first.
func CheckNotPaused(ctx storage.Context) {
	if IsPaused(ctx) {
		panic(ErrPaused)
	}
}

// CheckPaused panics with ErrNotPaused if the halt flag is not set.
func CheckPaused(ctx storage.Context) {
	if !IsPaused(ctx) {
		panic(ErrNotPaused)
	}
}
