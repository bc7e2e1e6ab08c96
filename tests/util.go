package tests

import (
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/neotest/chain"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

func newExecutor(t *testing.T) *neotest.Executor {
	bc, acc := chain.NewSingle(t)
	return neotest.NewExecutor(t, bc, acc, acc)
}

// checkEvent asserts that the transaction produced a notification with the
// given name and arguments from the given contract.
func checkEvent(t *testing.T, e *neotest.Executor, h util.Uint256, hash util.Uint160,
	name string, args ...stackitem.Item) {
	aer := e.CheckHalt(t, h)
	for _, ev := range aer.Events {
		if ev.ScriptHash.Equals(hash) && ev.Name == name {
			require.Equal(t, stackitem.NewArray(args).Value(), ev.Item.Value())
			return
		}
	}
	t.Fatalf("notification %s not found in transaction %s", name, h.StringLE())
}

// checkNoEvent asserts that the transaction produced no notification with the
// given name from the given contract.
func checkNoEvent(t *testing.T, e *neotest.Executor, h util.Uint256, hash util.Uint160, name string) {
	aer := e.CheckHalt(t, h)
	for _, ev := range aer.Events {
		if ev.ScriptHash.Equals(hash) && ev.Name == name {
			t.Fatalf("unexpected %s notification in transaction %s", name, h.StringLE())
		}
	}
}
