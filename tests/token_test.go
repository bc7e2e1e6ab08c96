package tests

import (
	"crypto/sha256"
	"math/big"
	"path"
	"testing"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/crypto/keys"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

const tokenPath = "../token"

// 1000.00 KRWW at 2 decimals.
const tokenUnit = 100

func roleID(name string) []byte {
	h := sha256.Sum256([]byte(name))
	return h[:]
}

func compileTokenContract(t *testing.T, e *neotest.Executor) *neotest.Contract {
	return neotest.CompileFile(t, e.CommitteeHash, tokenPath, path.Join(tokenPath, "config.yml"))
}

func newTokenInvoker(t *testing.T) (*neotest.Executor, *neotest.ContractInvoker) {
	e := newExecutor(t)
	ctr := compileTokenContract(t, e)
	e.DeployContract(t, ctr, []interface{}{e.CommitteeHash})
	return e, e.CommitteeInvoker(ctr.Hash)
}

func TestTokenInfo(t *testing.T) {
	_, c := newTokenInvoker(t)

	c.Invoke(t, "Korean Won Wonder", "name")
	c.Invoke(t, "KRWW", "symbol")
	c.Invoke(t, 2, "decimals")
	c.Invoke(t, 0, "totalSupply")
	c.Invoke(t, false, "paused")
}

func TestTokenDeployZeroAdmin(t *testing.T) {
	e := newExecutor(t)
	ctr := compileTokenContract(t, e)
	e.DeployContractCheckFAULT(t, ctr, []interface{}{util.Uint160{}}, "zero address")
}

func TestTokenDeployRoles(t *testing.T) {
	e, c := newTokenInvoker(t)

	admin := e.CommitteeHash
	c.Invoke(t, true, "hasRole", make([]byte, 32), admin)
	c.Invoke(t, true, "hasRole", roleID("MINTER_ROLE"), admin)
	c.Invoke(t, true, "hasRole", roleID("PAUSER_ROLE"), admin)
	c.Invoke(t, true, "hasRole", roleID("BLACKLIST_MANAGER_ROLE"), admin)

	c.Invoke(t, make([]byte, 32), "adminRole")
	c.Invoke(t, roleID("MINTER_ROLE"), "minterRole")
	c.Invoke(t, roleID("PAUSER_ROLE"), "pauserRole")
	c.Invoke(t, roleID("BLACKLIST_MANAGER_ROLE"), "blacklistManagerRole")
}

func TestTokenMint(t *testing.T) {
	e, c := newTokenInvoker(t)

	user := c.NewAccount(t)
	amount := int64(1000 * tokenUnit)

	h := c.Invoke(t, stackitem.Null{}, "mint", user.ScriptHash(), amount)
	checkEvent(t, e, h, c.Hash, "Mint",
		stackitem.NewByteArray(user.ScriptHash().BytesBE()), stackitem.Make(amount))
	checkEvent(t, e, h, c.Hash, "Transfer",
		stackitem.Null{}, stackitem.NewByteArray(user.ScriptHash().BytesBE()), stackitem.Make(amount))

	c.Invoke(t, amount, "balanceOf", user.ScriptHash())
	c.Invoke(t, amount, "totalSupply")

	t.Run("without minter role", func(t *testing.T) {
		cUser := c.WithSigners(user)
		cUser.InvokeFail(t, "account is missing role MINTER_ROLE", "mint",
			user.ScriptHash(), amount)
		c.Invoke(t, amount, "totalSupply")
	})
	t.Run("zero address", func(t *testing.T) {
		c.InvokeFail(t, "zero address", "mint", util.Uint160{}, amount)
	})
	t.Run("zero amount", func(t *testing.T) {
		c.InvokeFail(t, "zero amount", "mint", user.ScriptHash(), int64(0))
	})
	t.Run("blacklisted receiver", func(t *testing.T) {
		bad := c.NewAccount(t)
		c.Invoke(t, stackitem.Null{}, "blacklist", bad.ScriptHash())
		c.InvokeFail(t, "blacklisted account", "mint", bad.ScriptHash(), amount)
	})
}

func TestTokenTransfer(t *testing.T) {
	e, c := newTokenInvoker(t)

	from := c.NewAccount(t)
	to := c.NewAccount(t)
	amount := int64(1000 * tokenUnit)
	c.Invoke(t, stackitem.Null{}, "mint", from.ScriptHash(), amount)

	cFrom := c.WithSigners(from)
	h := cFrom.Invoke(t, true, "transfer", from.ScriptHash(), to.ScriptHash(), int64(300*tokenUnit), nil)
	checkEvent(t, e, h, c.Hash, "Transfer",
		stackitem.NewByteArray(from.ScriptHash().BytesBE()),
		stackitem.NewByteArray(to.ScriptHash().BytesBE()),
		stackitem.Make(300*tokenUnit))

	c.Invoke(t, 700*tokenUnit, "balanceOf", from.ScriptHash())
	c.Invoke(t, 300*tokenUnit, "balanceOf", to.ScriptHash())
	c.Invoke(t, amount, "totalSupply")

	t.Run("missing witness", func(t *testing.T) {
		cTo := c.WithSigners(to)
		cTo.Invoke(t, false, "transfer", from.ScriptHash(), to.ScriptHash(), int64(tokenUnit), nil)
	})
	t.Run("insufficient balance", func(t *testing.T) {
		cFrom.InvokeFail(t, "insufficient balance", "transfer",
			from.ScriptHash(), to.ScriptHash(), int64(10000*tokenUnit), nil)
	})
	t.Run("negative amount", func(t *testing.T) {
		cFrom.InvokeFail(t, "zero amount", "transfer",
			from.ScriptHash(), to.ScriptHash(), int64(-1), nil)
	})
}

func TestTokenBurn(t *testing.T) {
	e, c := newTokenInvoker(t)

	user := c.NewAccount(t)
	amount := int64(1000 * tokenUnit)
	c.Invoke(t, stackitem.Null{}, "mint", user.ScriptHash(), amount)

	cUser := c.WithSigners(user)
	h := cUser.Invoke(t, stackitem.Null{}, "burn", user.ScriptHash(), int64(500*tokenUnit))
	checkEvent(t, e, h, c.Hash, "Burn",
		stackitem.NewByteArray(user.ScriptHash().BytesBE()), stackitem.Make(500*tokenUnit))

	c.Invoke(t, 500*tokenUnit, "balanceOf", user.ScriptHash())
	c.Invoke(t, 500*tokenUnit, "totalSupply")

	t.Run("zero amount", func(t *testing.T) {
		cUser.InvokeFail(t, "zero amount", "burn", user.ScriptHash(), int64(0))
	})
	t.Run("blacklisted owner", func(t *testing.T) {
		c.Invoke(t, stackitem.Null{}, "blacklist", user.ScriptHash())
		cUser.InvokeFail(t, "blacklisted account", "burn", user.ScriptHash(), int64(tokenUnit))
		c.Invoke(t, stackitem.Null{}, "unBlacklist", user.ScriptHash())
	})
	t.Run("burn from approved account", func(t *testing.T) {
		spender := c.NewAccount(t)
		cUser.Invoke(t, stackitem.Null{}, "approve",
			user.ScriptHash(), spender.ScriptHash(), int64(300*tokenUnit))

		cSpender := c.WithSigners(spender)
		h := cSpender.Invoke(t, stackitem.Null{}, "burnFrom",
			spender.ScriptHash(), user.ScriptHash(), int64(300*tokenUnit))
		checkEvent(t, e, h, c.Hash, "Burn",
			stackitem.NewByteArray(user.ScriptHash().BytesBE()), stackitem.Make(300*tokenUnit))

		c.Invoke(t, 200*tokenUnit, "balanceOf", user.ScriptHash())
		c.Invoke(t, 0, "allowance", user.ScriptHash(), spender.ScriptHash())

		cSpender.InvokeFail(t, "insufficient allowance", "burnFrom",
			spender.ScriptHash(), user.ScriptHash(), int64(tokenUnit))
	})
}

func TestTokenApprove(t *testing.T) {
	e, c := newTokenInvoker(t)

	owner := c.NewAccount(t)
	spender := c.NewAccount(t)
	to := c.NewAccount(t)
	c.Invoke(t, stackitem.Null{}, "mint", owner.ScriptHash(), int64(1000*tokenUnit))

	cOwner := c.WithSigners(owner)
	h := cOwner.Invoke(t, stackitem.Null{}, "approve",
		owner.ScriptHash(), spender.ScriptHash(), int64(400*tokenUnit))
	checkEvent(t, e, h, c.Hash, "Approval",
		stackitem.NewByteArray(owner.ScriptHash().BytesBE()),
		stackitem.NewByteArray(spender.ScriptHash().BytesBE()),
		stackitem.Make(400*tokenUnit))

	c.Invoke(t, 400*tokenUnit, "allowance", owner.ScriptHash(), spender.ScriptHash())

	cSpender := c.WithSigners(spender)
	cSpender.Invoke(t, true, "transferFrom",
		spender.ScriptHash(), owner.ScriptHash(), to.ScriptHash(), int64(250*tokenUnit))

	c.Invoke(t, 150*tokenUnit, "allowance", owner.ScriptHash(), spender.ScriptHash())
	c.Invoke(t, 250*tokenUnit, "balanceOf", to.ScriptHash())

	t.Run("insufficient allowance", func(t *testing.T) {
		cSpender.InvokeFail(t, "insufficient allowance", "transferFrom",
			spender.ScriptHash(), owner.ScriptHash(), to.ScriptHash(), int64(200*tokenUnit))
	})
	t.Run("missing spender witness", func(t *testing.T) {
		cOwner.InvokeFail(t, "owner witness check failed", "transferFrom",
			spender.ScriptHash(), owner.ScriptHash(), to.ScriptHash(), int64(tokenUnit))
	})
}

func TestTokenBlacklist(t *testing.T) {
	e, c := newTokenInvoker(t)

	holder := c.NewAccount(t)
	other := c.NewAccount(t)
	c.Invoke(t, stackitem.Null{}, "mint", holder.ScriptHash(), int64(1000*tokenUnit))

	h := c.Invoke(t, stackitem.Null{}, "blacklist", holder.ScriptHash())
	checkEvent(t, e, h, c.Hash, "Blacklisted",
		stackitem.NewByteArray(holder.ScriptHash().BytesBE()))
	c.Invoke(t, true, "isBlacklisted", holder.ScriptHash())

	t.Run("redundant blacklist is silent", func(t *testing.T) {
		h := c.Invoke(t, stackitem.Null{}, "blacklist", holder.ScriptHash())
		checkNoEvent(t, e, h, c.Hash, "Blacklisted")
	})

	cHolder := c.WithSigners(holder)
	cHolder.InvokeFail(t, "blacklisted account", "transfer",
		holder.ScriptHash(), other.ScriptHash(), int64(100*tokenUnit), nil)
	c.Invoke(t, 1000*tokenUnit, "balanceOf", holder.ScriptHash())

	t.Run("blacklisted receiver", func(t *testing.T) {
		c.Invoke(t, stackitem.Null{}, "mint", other.ScriptHash(), int64(100*tokenUnit))
		cOther := c.WithSigners(other)
		cOther.InvokeFail(t, "blacklisted account", "transfer",
			other.ScriptHash(), holder.ScriptHash(), int64(tokenUnit), nil)
	})

	h = c.Invoke(t, stackitem.Null{}, "unBlacklist", holder.ScriptHash())
	checkEvent(t, e, h, c.Hash, "UnBlacklisted",
		stackitem.NewByteArray(holder.ScriptHash().BytesBE()))
	c.Invoke(t, false, "isBlacklisted", holder.ScriptHash())

	cHolder.Invoke(t, true, "transfer",
		holder.ScriptHash(), other.ScriptHash(), int64(100*tokenUnit), nil)

	t.Run("without manager role", func(t *testing.T) {
		cHolder.InvokeFail(t, "account is missing role BLACKLIST_MANAGER_ROLE",
			"blacklist", other.ScriptHash())
	})
}

func TestTokenPause(t *testing.T) {
	_, c := newTokenInvoker(t)

	user := c.NewAccount(t)
	other := c.NewAccount(t)
	c.Invoke(t, stackitem.Null{}, "mint", user.ScriptHash(), int64(1000*tokenUnit))

	c.Invoke(t, stackitem.Null{}, "pause")
	c.Invoke(t, true, "paused")

	cUser := c.WithSigners(user)
	cUser.InvokeFail(t, "enforced pause", "transfer",
		user.ScriptHash(), other.ScriptHash(), int64(tokenUnit), nil)
	c.InvokeFail(t, "enforced pause", "mint", user.ScriptHash(), int64(tokenUnit))
	cUser.InvokeFail(t, "enforced pause", "burn", user.ScriptHash(), int64(tokenUnit))
	c.InvokeFail(t, "enforced pause", "pause")

	c.Invoke(t, stackitem.Null{}, "unpause")
	c.Invoke(t, false, "paused")
	c.InvokeFail(t, "pause not active", "unpause")

	cUser.Invoke(t, true, "transfer",
		user.ScriptHash(), other.ScriptHash(), int64(tokenUnit), nil)

	t.Run("without pauser role", func(t *testing.T) {
		cUser.InvokeFail(t, "account is missing role PAUSER_ROLE", "pause")
	})
}

func TestTokenRoles(t *testing.T) {
	e, c := newTokenInvoker(t)

	minter := c.NewAccount(t)
	user := c.NewAccount(t)

	c.Invoke(t, false, "hasRole", roleID("MINTER_ROLE"), minter.ScriptHash())
	h := c.Invoke(t, stackitem.Null{}, "grantRole", roleID("MINTER_ROLE"), minter.ScriptHash())
	checkEvent(t, e, h, c.Hash, "RoleGranted",
		stackitem.NewByteArray(roleID("MINTER_ROLE")),
		stackitem.NewByteArray(minter.ScriptHash().BytesBE()))
	c.Invoke(t, true, "hasRole", roleID("MINTER_ROLE"), minter.ScriptHash())

	cMinter := c.WithSigners(minter)
	cMinter.Invoke(t, stackitem.Null{}, "mint", user.ScriptHash(), int64(tokenUnit))

	h = c.Invoke(t, stackitem.Null{}, "revokeRole", roleID("MINTER_ROLE"), minter.ScriptHash())
	checkEvent(t, e, h, c.Hash, "RoleRevoked",
		stackitem.NewByteArray(roleID("MINTER_ROLE")),
		stackitem.NewByteArray(minter.ScriptHash().BytesBE()))
	cMinter.InvokeFail(t, "account is missing role MINTER_ROLE", "mint",
		user.ScriptHash(), int64(tokenUnit))

	t.Run("without admin role", func(t *testing.T) {
		cMinter.InvokeFail(t, "account is missing role DEFAULT_ADMIN_ROLE",
			"grantRole", roleID("MINTER_ROLE"), minter.ScriptHash())
	})
}

func signPermit(t *testing.T, e *neotest.Executor, tokenHash util.Uint160, priv *keys.PrivateKey,
	spender util.Uint160, amount, nonce, deadline int64) []byte {
	owner := priv.GetScriptHash()

	domain, err := stackitem.Serialize(stackitem.NewArray([]stackitem.Item{
		stackitem.Make("Korean Won Wonder"),
		stackitem.Make("KRWW"),
		stackitem.Make(int64(e.Chain.GetConfig().Magic)),
		stackitem.NewByteArray(tokenHash.BytesBE()),
	}))
	require.NoError(t, err)
	separator := sha256.Sum256(domain)

	body, err := stackitem.Serialize(stackitem.NewArray([]stackitem.Item{
		stackitem.NewByteArray(owner.BytesBE()),
		stackitem.NewByteArray(spender.BytesBE()),
		stackitem.NewBigInteger(big.NewInt(amount)),
		stackitem.NewBigInteger(big.NewInt(nonce)),
		stackitem.NewBigInteger(big.NewInt(deadline)),
	}))
	require.NoError(t, err)

	return priv.Sign(append(separator[:], body...))
}

func TestTokenPermit(t *testing.T) {
	e, c := newTokenInvoker(t)

	priv, err := keys.NewPrivateKey()
	require.NoError(t, err)
	owner := priv.GetScriptHash()
	spender := c.NewAccount(t)

	amount := int64(500 * tokenUnit)
	deadline := time.Now().UnixMilli() + int64(time.Hour/time.Millisecond)

	c.Invoke(t, 0, "nonces", owner)

	sig := signPermit(t, e, c.Hash, priv, spender.ScriptHash(), amount, 0, deadline)
	c.Invoke(t, stackitem.Null{}, "permit",
		owner, spender.ScriptHash(), amount, deadline, priv.PublicKey().Bytes(), sig)

	c.Invoke(t, amount, "allowance", owner, spender.ScriptHash())
	c.Invoke(t, 1, "nonces", owner)

	t.Run("replayed signature", func(t *testing.T) {
		c.InvokeFail(t, "invalid permit signature", "permit",
			owner, spender.ScriptHash(), amount, deadline, priv.PublicKey().Bytes(), sig)
	})
	t.Run("expired deadline", func(t *testing.T) {
		sig := signPermit(t, e, c.Hash, priv, spender.ScriptHash(), amount, 1, 1)
		c.InvokeFail(t, "permit deadline expired", "permit",
			owner, spender.ScriptHash(), amount, int64(1), priv.PublicKey().Bytes(), sig)
	})
	t.Run("wrong key", func(t *testing.T) {
		stranger, err := keys.NewPrivateKey()
		require.NoError(t, err)
		sig := signPermit(t, e, c.Hash, stranger, spender.ScriptHash(), amount, 1, deadline)
		c.InvokeFail(t, "invalid permit signature", "permit",
			owner, spender.ScriptHash(), amount, deadline, stranger.PublicKey().Bytes(), sig)
	})
	t.Run("domain separator is stable", func(t *testing.T) {
		domain, err := stackitem.Serialize(stackitem.NewArray([]stackitem.Item{
			stackitem.Make("Korean Won Wonder"),
			stackitem.Make("KRWW"),
			stackitem.Make(int64(e.Chain.GetConfig().Magic)),
			stackitem.NewByteArray(c.Hash.BytesBE()),
		}))
		require.NoError(t, err)
		separator := sha256.Sum256(domain)
		c.Invoke(t, separator[:], "domainSeparator")
	})
}
