package tests

import (
	"math"
	"path"
	"testing"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/core/native/nativenames"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

const vaultPath = "../vault"

func compileVaultContract(t *testing.T, e *neotest.Executor) *neotest.Contract {
	return neotest.CompileFile(t, e.CommitteeHash, vaultPath, path.Join(vaultPath, "config.yml"))
}

// newVaultEnv deploys the underlying token and the vault on a fresh chain,
// the committee account holding every role of both contracts.
func newVaultEnv(t *testing.T, cooldownMs int64) (*neotest.Executor, *neotest.ContractInvoker, *neotest.ContractInvoker) {
	e := newExecutor(t)

	tokenCtr := compileTokenContract(t, e)
	e.DeployContract(t, tokenCtr, []interface{}{e.CommitteeHash})

	vaultCtr := compileVaultContract(t, e)
	e.DeployContract(t, vaultCtr, []interface{}{e.CommitteeHash, tokenCtr.Hash, cooldownMs})

	return e, e.CommitteeInvoker(tokenCtr.Hash), e.CommitteeInvoker(vaultCtr.Hash)
}

func TestVaultInfo(t *testing.T) {
	_, cTok, cVlt := newVaultEnv(t, 1000)

	cVlt.Invoke(t, "Staked Korean Won Wonder", "name")
	cVlt.Invoke(t, "sKRWW", "symbol")
	cVlt.Invoke(t, 2, "decimals")
	cVlt.Invoke(t, 0, "totalSupply")
	cVlt.Invoke(t, 0, "totalAssets")
	cVlt.Invoke(t, cTok.Hash.BytesBE(), "asset")
	cVlt.Invoke(t, 1000, "cooldownPeriod")
	cVlt.Invoke(t, 1000, "rewardRate")
	cVlt.Invoke(t, false, "paused")

	cVlt.Invoke(t, true, "hasRole", make([]byte, 32), cVlt.CommitteeHash)
	cVlt.Invoke(t, true, "hasRole", roleID("VAULT_MANAGER_ROLE"), cVlt.CommitteeHash)
	cVlt.Invoke(t, roleID("VAULT_MANAGER_ROLE"), "vaultManagerRole")
}

func TestVaultDeployFaults(t *testing.T) {
	e := newExecutor(t)
	tokenCtr := compileTokenContract(t, e)
	e.DeployContract(t, tokenCtr, []interface{}{e.CommitteeHash})
	vaultCtr := compileVaultContract(t, e)

	e.DeployContractCheckFAULT(t, vaultCtr,
		[]interface{}{util.Uint160{}, tokenCtr.Hash, int64(1000)}, "zero address")
	e.DeployContractCheckFAULT(t, vaultCtr,
		[]interface{}{e.CommitteeHash, util.Uint160{}, int64(1000)}, "zero address")
	e.DeployContractCheckFAULT(t, vaultCtr,
		[]interface{}{e.CommitteeHash, tokenCtr.Hash, int64(-1)}, "negative cooldown duration")
}

func TestVaultDeposit(t *testing.T) {
	hour := int64(time.Hour / time.Millisecond)
	e, cTok, cVlt := newVaultEnv(t, hour)

	user := cVlt.NewAccount(t)
	cTok.Invoke(t, stackitem.Null{}, "mint", user.ScriptHash(), int64(1000*tokenUnit))

	cVlt.Invoke(t, int64(math.MaxInt64), "maxDeposit", user.ScriptHash())
	cVlt.Invoke(t, 400*tokenUnit, "previewDeposit", int64(400*tokenUnit))

	vUser := cVlt.WithSigners(user)
	h := vUser.Invoke(t, 400*tokenUnit, "deposit",
		user.ScriptHash(), int64(400*tokenUnit), user.ScriptHash())
	checkEvent(t, e, h, cVlt.Hash, "Deposit",
		stackitem.NewByteArray(user.ScriptHash().BytesBE()),
		stackitem.NewByteArray(user.ScriptHash().BytesBE()),
		stackitem.Make(400*tokenUnit), stackitem.Make(400*tokenUnit))

	cTok.Invoke(t, 600*tokenUnit, "balanceOf", user.ScriptHash())
	cTok.Invoke(t, 400*tokenUnit, "balanceOf", cVlt.Hash)
	cVlt.Invoke(t, 400*tokenUnit, "balanceOf", user.ScriptHash())
	cVlt.Invoke(t, 400*tokenUnit, "totalSupply")
	cVlt.Invoke(t, 400*tokenUnit, "totalAssets")

	t.Run("cooldown is armed", func(t *testing.T) {
		ts, err := cVlt.TestInvoke(t, "getDepositTimestamp", user.ScriptHash())
		require.NoError(t, err)
		require.NotEqual(t, int64(0), ts.Pop().BigInt().Int64())

		rem, err := cVlt.TestInvoke(t, "getCooldownRemaining", user.ScriptHash())
		require.NoError(t, err)
		remaining := rem.Pop().BigInt().Int64()
		require.True(t, remaining > 0 && remaining <= hour)

		cVlt.Invoke(t, 0, "maxWithdraw", user.ScriptHash())
		cVlt.Invoke(t, 0, "maxRedeem", user.ScriptHash())
		vUser.InvokeFail(t, "cooldown not met", "withdraw",
			user.ScriptHash(), int64(100*tokenUnit), user.ScriptHash(), user.ScriptHash())
	})
	t.Run("zero assets", func(t *testing.T) {
		vUser.InvokeFail(t, "zero amount", "deposit",
			user.ScriptHash(), int64(0), user.ScriptHash())
	})
	t.Run("zero receiver", func(t *testing.T) {
		vUser.InvokeFail(t, "zero address", "deposit",
			user.ScriptHash(), int64(tokenUnit), util.Uint160{})
	})
	t.Run("missing owner witness", func(t *testing.T) {
		cVlt.InvokeFail(t, "owner witness check failed", "deposit",
			user.ScriptHash(), int64(tokenUnit), user.ScriptHash())
	})
	t.Run("blacklisted receiver", func(t *testing.T) {
		bad := cVlt.NewAccount(t)
		cVlt.Invoke(t, stackitem.Null{}, "blacklist", bad.ScriptHash())
		cVlt.Invoke(t, 0, "maxDeposit", bad.ScriptHash())
		cVlt.Invoke(t, 0, "maxMint", bad.ScriptHash())
		vUser.InvokeFail(t, "blacklisted account", "deposit",
			user.ScriptHash(), int64(tokenUnit), bad.ScriptHash())
	})
	t.Run("paused", func(t *testing.T) {
		cVlt.Invoke(t, stackitem.Null{}, "pause")
		cVlt.Invoke(t, 0, "maxDeposit", user.ScriptHash())
		vUser.InvokeFail(t, "enforced pause", "deposit",
			user.ScriptHash(), int64(tokenUnit), user.ScriptHash())
		cVlt.Invoke(t, stackitem.Null{}, "unpause")
	})
}

func TestVaultMint(t *testing.T) {
	e, cTok, cVlt := newVaultEnv(t, int64(time.Hour/time.Millisecond))

	user := cVlt.NewAccount(t)
	cTok.Invoke(t, stackitem.Null{}, "mint", user.ScriptHash(), int64(1000*tokenUnit))

	cVlt.Invoke(t, 250*tokenUnit, "previewMint", int64(250*tokenUnit))

	vUser := cVlt.WithSigners(user)
	h := vUser.Invoke(t, 250*tokenUnit, "mint",
		user.ScriptHash(), int64(250*tokenUnit), user.ScriptHash())
	checkEvent(t, e, h, cVlt.Hash, "Deposit",
		stackitem.NewByteArray(user.ScriptHash().BytesBE()),
		stackitem.NewByteArray(user.ScriptHash().BytesBE()),
		stackitem.Make(250*tokenUnit), stackitem.Make(250*tokenUnit))

	cVlt.Invoke(t, 250*tokenUnit, "balanceOf", user.ScriptHash())
	cTok.Invoke(t, 750*tokenUnit, "balanceOf", user.ScriptHash())
	cVlt.Invoke(t, 250*tokenUnit, "totalAssets")
}

func TestVaultWithdraw(t *testing.T) {
	const cooldownMs = 1000
	e, cTok, cVlt := newVaultEnv(t, cooldownMs)

	user := cVlt.NewAccount(t)
	cTok.Invoke(t, stackitem.Null{}, "mint", user.ScriptHash(), int64(1000*tokenUnit))

	vUser := cVlt.WithSigners(user)
	vUser.Invoke(t, 1000*tokenUnit, "deposit",
		user.ScriptHash(), int64(1000*tokenUnit), user.ScriptHash())

	vUser.InvokeFail(t, "cooldown not met", "withdraw",
		user.ScriptHash(), int64(100*tokenUnit), user.ScriptHash(), user.ScriptHash())

	time.Sleep(2 * cooldownMs * time.Millisecond)

	cVlt.Invoke(t, 1000*tokenUnit, "maxWithdraw", user.ScriptHash())
	cVlt.Invoke(t, 1000*tokenUnit, "maxRedeem", user.ScriptHash())
	cVlt.Invoke(t, 0, "getCooldownRemaining", user.ScriptHash())
	cVlt.Invoke(t, 300*tokenUnit, "previewWithdraw", int64(300*tokenUnit))

	h := vUser.Invoke(t, 300*tokenUnit, "withdraw",
		user.ScriptHash(), int64(300*tokenUnit), user.ScriptHash(), user.ScriptHash())
	checkEvent(t, e, h, cVlt.Hash, "Withdraw",
		stackitem.NewByteArray(user.ScriptHash().BytesBE()),
		stackitem.NewByteArray(user.ScriptHash().BytesBE()),
		stackitem.NewByteArray(user.ScriptHash().BytesBE()),
		stackitem.Make(300*tokenUnit), stackitem.Make(300*tokenUnit))

	cVlt.Invoke(t, 700*tokenUnit, "balanceOf", user.ScriptHash())
	cVlt.Invoke(t, 700*tokenUnit, "totalAssets")
	cTok.Invoke(t, 300*tokenUnit, "balanceOf", user.ScriptHash())

	t.Run("redeem", func(t *testing.T) {
		vUser.Invoke(t, 700*tokenUnit, "redeem",
			user.ScriptHash(), int64(700*tokenUnit), user.ScriptHash(), user.ScriptHash())
		cVlt.Invoke(t, 0, "balanceOf", user.ScriptHash())
		cVlt.Invoke(t, 0, "totalSupply")
		cTok.Invoke(t, 1000*tokenUnit, "balanceOf", user.ScriptHash())
	})
	t.Run("insufficient shares", func(t *testing.T) {
		vUser.InvokeFail(t, "insufficient balance", "redeem",
			user.ScriptHash(), int64(tokenUnit), user.ScriptHash(), user.ScriptHash())
	})
}

func TestVaultThirdPartyWithdraw(t *testing.T) {
	e, cTok, cVlt := newVaultEnv(t, 0)

	owner := cVlt.NewAccount(t)
	operator := cVlt.NewAccount(t)
	receiver := cVlt.NewAccount(t)
	cTok.Invoke(t, stackitem.Null{}, "mint", owner.ScriptHash(), int64(1000*tokenUnit))

	vOwner := cVlt.WithSigners(owner)
	vOwner.Invoke(t, 1000*tokenUnit, "deposit",
		owner.ScriptHash(), int64(1000*tokenUnit), owner.ScriptHash())

	vOperator := cVlt.WithSigners(operator)
	vOperator.InvokeFail(t, "insufficient allowance", "withdraw",
		operator.ScriptHash(), int64(100*tokenUnit), receiver.ScriptHash(), owner.ScriptHash())

	vOwner.Invoke(t, stackitem.Null{}, "approve",
		owner.ScriptHash(), operator.ScriptHash(), int64(400*tokenUnit))
	cVlt.Invoke(t, 400*tokenUnit, "allowance", owner.ScriptHash(), operator.ScriptHash())

	h := vOperator.Invoke(t, 400*tokenUnit, "withdraw",
		operator.ScriptHash(), int64(400*tokenUnit), receiver.ScriptHash(), owner.ScriptHash())
	checkEvent(t, e, h, cVlt.Hash, "Withdraw",
		stackitem.NewByteArray(operator.ScriptHash().BytesBE()),
		stackitem.NewByteArray(receiver.ScriptHash().BytesBE()),
		stackitem.NewByteArray(owner.ScriptHash().BytesBE()),
		stackitem.Make(400*tokenUnit), stackitem.Make(400*tokenUnit))

	cVlt.Invoke(t, 0, "allowance", owner.ScriptHash(), operator.ScriptHash())
	cVlt.Invoke(t, 600*tokenUnit, "balanceOf", owner.ScriptHash())
	cTok.Invoke(t, 400*tokenUnit, "balanceOf", receiver.ScriptHash())
}

func TestVaultRewards(t *testing.T) {
	e, cTok, cVlt := newVaultEnv(t, 0)

	user := cVlt.NewAccount(t)
	cTok.Invoke(t, stackitem.Null{}, "mint", user.ScriptHash(), int64(1000*tokenUnit))
	cTok.Invoke(t, stackitem.Null{}, "mint", cTok.CommitteeHash, int64(100*tokenUnit))

	vUser := cVlt.WithSigners(user)
	vUser.Invoke(t, 1000*tokenUnit, "deposit",
		user.ScriptHash(), int64(1000*tokenUnit), user.ScriptHash())

	h := cVlt.Invoke(t, stackitem.Null{}, "distributeRewards",
		cVlt.CommitteeHash, int64(100*tokenUnit))
	checkEvent(t, e, h, cVlt.Hash, "RewardsDistributed", stackitem.Make(100*tokenUnit))

	// No shares minted for rewards, every existing share just got 10% richer.
	cVlt.Invoke(t, 1000*tokenUnit, "totalSupply")
	cVlt.Invoke(t, 1100*tokenUnit, "totalAssets")
	cVlt.Invoke(t, 1100*tokenUnit, "convertToAssets", int64(1000*tokenUnit))
	cVlt.Invoke(t, 1000*tokenUnit, "convertToShares", int64(1100*tokenUnit))

	t.Run("rounding directions", func(t *testing.T) {
		// 5 assets are worth 4.54 shares at the 1.1 rate.
		cVlt.Invoke(t, 4, "previewDeposit", int64(5))
		cVlt.Invoke(t, 5, "previewWithdraw", int64(5))
		// 5 shares are worth 5.5 assets.
		cVlt.Invoke(t, 5, "previewRedeem", int64(5))
		cVlt.Invoke(t, 6, "previewMint", int64(5))
	})
	t.Run("full redeem collects yield", func(t *testing.T) {
		vUser.Invoke(t, 1100*tokenUnit, "redeem",
			user.ScriptHash(), int64(1000*tokenUnit), user.ScriptHash(), user.ScriptHash())
		cTok.Invoke(t, 1100*tokenUnit, "balanceOf", user.ScriptHash())
		cVlt.Invoke(t, 0, "totalAssets")
	})
	t.Run("without manager role", func(t *testing.T) {
		vUser.InvokeFail(t, "account is missing role VAULT_MANAGER_ROLE",
			"distributeRewards", user.ScriptHash(), int64(tokenUnit))
	})
}

func TestVaultRewardRate(t *testing.T) {
	e, _, cVlt := newVaultEnv(t, 0)

	cVlt.Invoke(t, 1000, "rewardRate")
	h := cVlt.Invoke(t, stackitem.Null{}, "setRewardRate", cVlt.CommitteeHash, int64(1500))
	checkEvent(t, e, h, cVlt.Hash, "RewardRateUpdated",
		stackitem.Make(1000), stackitem.Make(1500))
	cVlt.Invoke(t, 1500, "rewardRate")

	cVlt.InvokeFail(t, "negative reward rate", "setRewardRate", cVlt.CommitteeHash, int64(-1))

	stranger := cVlt.NewAccount(t)
	vStranger := cVlt.WithSigners(stranger)
	vStranger.InvokeFail(t, "account is missing role VAULT_MANAGER_ROLE",
		"setRewardRate", stranger.ScriptHash(), int64(500))
}

func TestVaultShareTransfer(t *testing.T) {
	_, cTok, cVlt := newVaultEnv(t, 0)

	holder := cVlt.NewAccount(t)
	other := cVlt.NewAccount(t)
	cTok.Invoke(t, stackitem.Null{}, "mint", holder.ScriptHash(), int64(1000*tokenUnit))

	vHolder := cVlt.WithSigners(holder)
	vHolder.Invoke(t, 1000*tokenUnit, "deposit",
		holder.ScriptHash(), int64(1000*tokenUnit), holder.ScriptHash())

	vHolder.Invoke(t, true, "transfer",
		holder.ScriptHash(), other.ScriptHash(), int64(300*tokenUnit), nil)
	cVlt.Invoke(t, 700*tokenUnit, "balanceOf", holder.ScriptHash())
	cVlt.Invoke(t, 300*tokenUnit, "balanceOf", other.ScriptHash())

	// A transfer does not arm the receiver's cooldown, the shares are
	// immediately redeemable here.
	vOther := cVlt.WithSigners(other)
	vOther.Invoke(t, 300*tokenUnit, "redeem",
		other.ScriptHash(), int64(300*tokenUnit), other.ScriptHash(), other.ScriptHash())
	cTok.Invoke(t, 300*tokenUnit, "balanceOf", other.ScriptHash())

	t.Run("blacklisted holder is frozen", func(t *testing.T) {
		cVlt.Invoke(t, stackitem.Null{}, "blacklist", holder.ScriptHash())
		cVlt.Invoke(t, 0, "maxWithdraw", holder.ScriptHash())
		vHolder.InvokeFail(t, "blacklisted account", "transfer",
			holder.ScriptHash(), other.ScriptHash(), int64(tokenUnit), nil)
		vHolder.InvokeFail(t, "blacklisted account", "withdraw",
			holder.ScriptHash(), int64(tokenUnit), holder.ScriptHash(), holder.ScriptHash())

		cVlt.Invoke(t, stackitem.Null{}, "unBlacklist", holder.ScriptHash())
		vHolder.Invoke(t, true, "transfer",
			holder.ScriptHash(), other.ScriptHash(), int64(tokenUnit), nil)
	})
}

func TestVaultIncomingPayments(t *testing.T) {
	_, cTok, cVlt := newVaultEnv(t, 0)

	user := cVlt.NewAccount(t)
	cTok.Invoke(t, stackitem.Null{}, "mint", user.ScriptHash(), int64(1000*tokenUnit))

	vUser := cVlt.WithSigners(user)
	vUser.Invoke(t, 500*tokenUnit, "deposit",
		user.ScriptHash(), int64(500*tokenUnit), user.ScriptHash())

	t.Run("underlying donation raises the rate", func(t *testing.T) {
		tUser := cTok.WithSigners(user)
		tUser.Invoke(t, true, "transfer",
			user.ScriptHash(), cVlt.Hash, int64(100*tokenUnit), nil)
		cVlt.Invoke(t, 600*tokenUnit, "totalAssets")
		cVlt.Invoke(t, 500*tokenUnit, "totalSupply")
		cVlt.Invoke(t, 120, "convertToAssets", int64(100))
	})
	t.Run("foreign token is rejected", func(t *testing.T) {
		e := cVlt.Executor
		gas := e.CommitteeInvoker(e.NativeHash(t, nativenames.Gas))
		gas.InvokeFail(t, "only underlying asset accepted", "transfer",
			e.CommitteeHash, cVlt.Hash, int64(1_0000_0000), nil)
	})
}
