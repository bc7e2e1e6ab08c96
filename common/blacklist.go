package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

const (
	// ErrBlacklisted appears when a blacklisted account shows up on
	// either side of a value-moving operation.
	ErrBlacklisted = "blacklisted account"

	blacklistPrefix = 'X'
)

func blacklistKey(account interop.Hash160) []byte {
	return append([]byte{blacklistPrefix}, account...)
}

// IsBlacklisted returns the deny-list flag of account.
func IsBlacklisted(ctx storage.Context, account interop.Hash160) bool {
	return storage.Get(ctx, blacklistKey(account)) != nil
}

// SetBlacklisted sets or clears the deny-list flag of account. Redundant
// calls are no-ops and produce no notification. Produces Blacklisted or
// UnBlacklisted notification on an actual transition.
func SetBlacklisted(ctx storage.Context, account interop.Hash160, flagged bool) {
	key := blacklistKey(account)
	if flagged {
		if storage.Get(ctx, key) != nil {
			return
		}
		storage.Put(ctx, key, 1)
		runtime.Notify("Blacklisted", account)
	} else {
		if storage.Get(ctx, key) == nil {
			return
		}
		storage.Delete(ctx, key)
		runtime.Notify("UnBlacklisted", account)
	}
}

// CheckNotBlacklisted panics with ErrBlacklisted if account is deny-listed.
func CheckNotBlacklisted(ctx storage.Context, account interop.Hash160) {
	if IsBlacklisted(ctx, account) {
		panic(ErrBlacklisted)
	}
}
