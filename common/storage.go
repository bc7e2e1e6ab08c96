package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// GetIntOrZero returns an integer value from contract storage, zero when the
// key is missing.
func GetIntOrZero(ctx storage.Context, key interface{}) int {
	data := storage.Get(ctx, key)
	if data != nil {
		return data.(int)
	}

	return 0
}

// PutIntOrDelete puts an integer value into contract storage, removing the
// key entirely when the value is zero. Balances, allowances and nonces all
// treat a missing key as zero, so empty records do not accumulate.
func PutIntOrDelete(ctx storage.Context, key interface{}, value int) {
	if value == 0 {
		storage.Delete(ctx, key)
	} else {
		storage.Put(ctx, key, value)
	}
}
