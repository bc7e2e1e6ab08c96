// Package vault contains RPC wrappers for the sKRWW vault contract.
package vault

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/nep17"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// DepositEvent represents "Deposit" event emitted by the contract.
type DepositEvent struct {
	Owner    util.Uint160
	Receiver util.Uint160
	Assets   *big.Int
	Shares   *big.Int
}

// WithdrawEvent represents "Withdraw" event emitted by the contract.
type WithdrawEvent struct {
	Spender  util.Uint160
	Receiver util.Uint160
	Owner    util.Uint160
	Assets   *big.Int
	Shares   *big.Int
}

// RewardsDistributedEvent represents "RewardsDistributed" event emitted by the contract.
type RewardsDistributedEvent struct {
	Amount *big.Int
}

// RewardRateUpdatedEvent represents "RewardRateUpdated" event emitted by the contract.
type RewardRateUpdatedEvent struct {
	OldRate *big.Int
	NewRate *big.Int
}

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	nep17.Invoker
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	nep17.Actor

	MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error)
	MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error)
	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	nep17.TokenReader
	invoker Invoker
	hash    util.Uint160
}

// Contract implements all contract methods.
type Contract struct {
	ContractReader
	nep17.TokenWriter
	actor Actor
	hash  util.Uint160
}

// NewReader creates an instance of ContractReader using provided contract hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{*nep17.NewReader(invoker, hash), invoker, hash}
}

// New creates an instance of Contract using provided contract hash and the given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	var nep17t = nep17.New(actor, hash)
	return &Contract{ContractReader{nep17t.TokenReader, actor, hash}, nep17t.TokenWriter, actor, hash}
}

// Asset invokes `asset` method of contract.
func (c *ContractReader) Asset() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "asset"))
}

// TotalAssets invokes `totalAssets` method of contract.
func (c *ContractReader) TotalAssets() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "totalAssets"))
}

// ConvertToShares invokes `convertToShares` method of contract.
func (c *ContractReader) ConvertToShares(assets *big.Int) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "convertToShares", assets))
}

// ConvertToAssets invokes `convertToAssets` method of contract.
func (c *ContractReader) ConvertToAssets(shares *big.Int) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "convertToAssets", shares))
}

// PreviewDeposit invokes `previewDeposit` method of contract.
func (c *ContractReader) PreviewDeposit(assets *big.Int) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "previewDeposit", assets))
}

// PreviewMint invokes `previewMint` method of contract.
func (c *ContractReader) PreviewMint(shares *big.Int) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "previewMint", shares))
}

// PreviewWithdraw invokes `previewWithdraw` method of contract.
func (c *ContractReader) PreviewWithdraw(assets *big.Int) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "previewWithdraw", assets))
}

// PreviewRedeem invokes `previewRedeem` method of contract.
func (c *ContractReader) PreviewRedeem(shares *big.Int) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "previewRedeem", shares))
}

// MaxDeposit invokes `maxDeposit` method of contract.
func (c *ContractReader) MaxDeposit(receiver util.Uint160) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "maxDeposit", receiver))
}

// MaxMint invokes `maxMint` method of contract.
func (c *ContractReader) MaxMint(receiver util.Uint160) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "maxMint", receiver))
}

// MaxWithdraw invokes `maxWithdraw` method of contract.
func (c *ContractReader) MaxWithdraw(owner util.Uint160) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "maxWithdraw", owner))
}

// MaxRedeem invokes `maxRedeem` method of contract.
func (c *ContractReader) MaxRedeem(owner util.Uint160) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "maxRedeem", owner))
}

// GetDepositTimestamp invokes `getDepositTimestamp` method of contract.
func (c *ContractReader) GetDepositTimestamp(owner util.Uint160) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "getDepositTimestamp", owner))
}

// GetCooldownRemaining invokes `getCooldownRemaining` method of contract.
func (c *ContractReader) GetCooldownRemaining(owner util.Uint160) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "getCooldownRemaining", owner))
}

// CooldownPeriod invokes `cooldownPeriod` method of contract.
func (c *ContractReader) CooldownPeriod() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "cooldownPeriod"))
}

// RewardRate invokes `rewardRate` method of contract.
func (c *ContractReader) RewardRate() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "rewardRate"))
}

// Allowance invokes `allowance` method of contract.
func (c *ContractReader) Allowance(owner util.Uint160, spender util.Uint160) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "allowance", owner, spender))
}

// Paused invokes `paused` method of contract.
func (c *ContractReader) Paused() (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "paused"))
}

// IsBlacklisted invokes `isBlacklisted` method of contract.
func (c *ContractReader) IsBlacklisted(account util.Uint160) (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "isBlacklisted", account))
}

// HasRole invokes `hasRole` method of contract.
func (c *ContractReader) HasRole(role []byte, account util.Uint160) (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "hasRole", role, account))
}

// AdminRole invokes `adminRole` method of contract.
func (c *ContractReader) AdminRole() ([]byte, error) {
	return unwrap.Bytes(c.invoker.Call(c.hash, "adminRole"))
}

// VaultManagerRole invokes `vaultManagerRole` method of contract.
func (c *ContractReader) VaultManagerRole() ([]byte, error) {
	return unwrap.Bytes(c.invoker.Call(c.hash, "vaultManagerRole"))
}

// PauserRole invokes `pauserRole` method of contract.
func (c *ContractReader) PauserRole() ([]byte, error) {
	return unwrap.Bytes(c.invoker.Call(c.hash, "pauserRole"))
}

// BlacklistManagerRole invokes `blacklistManagerRole` method of contract.
func (c *ContractReader) BlacklistManagerRole() ([]byte, error) {
	return unwrap.Bytes(c.invoker.Call(c.hash, "blacklistManagerRole"))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// Deposit creates a transaction invoking `deposit` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Deposit(owner util.Uint160, assets *big.Int, receiver util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "deposit", owner, assets, receiver)
}

// DepositTransaction creates a transaction invoking `deposit` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) DepositTransaction(owner util.Uint160, assets *big.Int, receiver util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "deposit", owner, assets, receiver)
}

// DepositUnsigned creates a transaction invoking `deposit` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) DepositUnsigned(owner util.Uint160, assets *big.Int, receiver util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "deposit", nil, owner, assets, receiver)
}

// Mint creates a transaction invoking `mint` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Mint(owner util.Uint160, shares *big.Int, receiver util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "mint", owner, shares, receiver)
}

// MintTransaction creates a transaction invoking `mint` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) MintTransaction(owner util.Uint160, shares *big.Int, receiver util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "mint", owner, shares, receiver)
}

// MintUnsigned creates a transaction invoking `mint` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) MintUnsigned(owner util.Uint160, shares *big.Int, receiver util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "mint", nil, owner, shares, receiver)
}

// Withdraw creates a transaction invoking `withdraw` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Withdraw(spender util.Uint160, assets *big.Int, receiver util.Uint160, owner util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "withdraw", spender, assets, receiver, owner)
}

// WithdrawTransaction creates a transaction invoking `withdraw` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) WithdrawTransaction(spender util.Uint160, assets *big.Int, receiver util.Uint160, owner util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "withdraw", spender, assets, receiver, owner)
}

// WithdrawUnsigned creates a transaction invoking `withdraw` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) WithdrawUnsigned(spender util.Uint160, assets *big.Int, receiver util.Uint160, owner util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "withdraw", nil, spender, assets, receiver, owner)
}

// Redeem creates a transaction invoking `redeem` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Redeem(spender util.Uint160, shares *big.Int, receiver util.Uint160, owner util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "redeem", spender, shares, receiver, owner)
}

// RedeemTransaction creates a transaction invoking `redeem` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) RedeemTransaction(spender util.Uint160, shares *big.Int, receiver util.Uint160, owner util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "redeem", spender, shares, receiver, owner)
}

// RedeemUnsigned creates a transaction invoking `redeem` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) RedeemUnsigned(spender util.Uint160, shares *big.Int, receiver util.Uint160, owner util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "redeem", nil, spender, shares, receiver, owner)
}

// Approve creates a transaction invoking `approve` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Approve(owner util.Uint160, spender util.Uint160, amount *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "approve", owner, spender, amount)
}

// ApproveTransaction creates a transaction invoking `approve` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) ApproveTransaction(owner util.Uint160, spender util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "approve", owner, spender, amount)
}

// ApproveUnsigned creates a transaction invoking `approve` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) ApproveUnsigned(owner util.Uint160, spender util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "approve", nil, owner, spender, amount)
}

// TransferFrom creates a transaction invoking `transferFrom` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) TransferFrom(spender util.Uint160, from util.Uint160, to util.Uint160, amount *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "transferFrom", spender, from, to, amount)
}

// TransferFromTransaction creates a transaction invoking `transferFrom` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) TransferFromTransaction(spender util.Uint160, from util.Uint160, to util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "transferFrom", spender, from, to, amount)
}

// TransferFromUnsigned creates a transaction invoking `transferFrom` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) TransferFromUnsigned(spender util.Uint160, from util.Uint160, to util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "transferFrom", nil, spender, from, to, amount)
}

// DistributeRewards creates a transaction invoking `distributeRewards` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) DistributeRewards(manager util.Uint160, amount *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "distributeRewards", manager, amount)
}

// DistributeRewardsTransaction creates a transaction invoking `distributeRewards` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) DistributeRewardsTransaction(manager util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "distributeRewards", manager, amount)
}

// DistributeRewardsUnsigned creates a transaction invoking `distributeRewards` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) DistributeRewardsUnsigned(manager util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "distributeRewards", nil, manager, amount)
}

// SetRewardRate creates a transaction invoking `setRewardRate` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SetRewardRate(manager util.Uint160, newRate *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setRewardRate", manager, newRate)
}

// SetRewardRateTransaction creates a transaction invoking `setRewardRate` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SetRewardRateTransaction(manager util.Uint160, newRate *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "setRewardRate", manager, newRate)
}

// SetRewardRateUnsigned creates a transaction invoking `setRewardRate` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) SetRewardRateUnsigned(manager util.Uint160, newRate *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "setRewardRate", nil, manager, newRate)
}

// Pause creates a transaction invoking `pause` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Pause() (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "pause")
}

// PauseTransaction creates a transaction invoking `pause` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) PauseTransaction() (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "pause")
}

// PauseUnsigned creates a transaction invoking `pause` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) PauseUnsigned() (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "pause", nil)
}

// Unpause creates a transaction invoking `unpause` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Unpause() (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "unpause")
}

// UnpauseTransaction creates a transaction invoking `unpause` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UnpauseTransaction() (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "unpause")
}

// UnpauseUnsigned creates a transaction invoking `unpause` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UnpauseUnsigned() (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "unpause", nil)
}

// Blacklist creates a transaction invoking `blacklist` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Blacklist(account util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "blacklist", account)
}

// BlacklistTransaction creates a transaction invoking `blacklist` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) BlacklistTransaction(account util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "blacklist", account)
}

// BlacklistUnsigned creates a transaction invoking `blacklist` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) BlacklistUnsigned(account util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "blacklist", nil, account)
}

// UnBlacklist creates a transaction invoking `unBlacklist` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) UnBlacklist(account util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "unBlacklist", account)
}

// UnBlacklistTransaction creates a transaction invoking `unBlacklist` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UnBlacklistTransaction(account util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "unBlacklist", account)
}

// UnBlacklistUnsigned creates a transaction invoking `unBlacklist` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UnBlacklistUnsigned(account util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "unBlacklist", nil, account)
}

// GrantRole creates a transaction invoking `grantRole` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) GrantRole(role []byte, account util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "grantRole", role, account)
}

// GrantRoleTransaction creates a transaction invoking `grantRole` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) GrantRoleTransaction(role []byte, account util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "grantRole", role, account)
}

// GrantRoleUnsigned creates a transaction invoking `grantRole` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) GrantRoleUnsigned(role []byte, account util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "grantRole", nil, role, account)
}

// RevokeRole creates a transaction invoking `revokeRole` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) RevokeRole(role []byte, account util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "revokeRole", role, account)
}

// RevokeRoleTransaction creates a transaction invoking `revokeRole` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) RevokeRoleTransaction(role []byte, account util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "revokeRole", role, account)
}

// RevokeRoleUnsigned creates a transaction invoking `revokeRole` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) RevokeRoleUnsigned(role []byte, account util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "revokeRole", nil, role, account)
}

// Update creates a transaction invoking `update` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Update(script []byte, manifest []byte, data any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "update", script, manifest, data)
}

// UpdateTransaction creates a transaction invoking `update` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateTransaction(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "update", script, manifest, data)
}

// UpdateUnsigned creates a transaction invoking `update` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateUnsigned(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "update", nil, script, manifest, data)
}

func itemToUint160(item stackitem.Item) (util.Uint160, error) {
	b, err := item.TryBytes()
	if err != nil {
		return util.Uint160{}, err
	}
	return util.Uint160DecodeBytesBE(b)
}

// DepositEventsFromApplicationLog retrieves a set of all emitted events
// with "Deposit" name from the provided [result.ApplicationLog].
func DepositEventsFromApplicationLog(log *result.ApplicationLog) ([]*DepositEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*DepositEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Deposit" {
				continue
			}
			event := new(DepositEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize DepositEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to DepositEvent or
// returns an error if it's not possible to do to so.
func (e *DepositEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 4 {
		return errors.New("wrong number of structure elements")
	}

	var err error
	e.Owner, err = itemToUint160(arr[0])
	if err != nil {
		return fmt.Errorf("field Owner: %w", err)
	}

	e.Receiver, err = itemToUint160(arr[1])
	if err != nil {
		return fmt.Errorf("field Receiver: %w", err)
	}

	e.Assets, err = arr[2].TryInteger()
	if err != nil {
		return fmt.Errorf("field Assets: %w", err)
	}

	e.Shares, err = arr[3].TryInteger()
	if err != nil {
		return fmt.Errorf("field Shares: %w", err)
	}

	return nil
}

// WithdrawEventsFromApplicationLog retrieves a set of all emitted events
// with "Withdraw" name from the provided [result.ApplicationLog].
func WithdrawEventsFromApplicationLog(log *result.ApplicationLog) ([]*WithdrawEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*WithdrawEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Withdraw" {
				continue
			}
			event := new(WithdrawEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize WithdrawEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to WithdrawEvent or
// returns an error if it's not possible to do to so.
func (e *WithdrawEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 5 {
		return errors.New("wrong number of structure elements")
	}

	var err error
	e.Spender, err = itemToUint160(arr[0])
	if err != nil {
		return fmt.Errorf("field Spender: %w", err)
	}

	e.Receiver, err = itemToUint160(arr[1])
	if err != nil {
		return fmt.Errorf("field Receiver: %w", err)
	}

	e.Owner, err = itemToUint160(arr[2])
	if err != nil {
		return fmt.Errorf("field Owner: %w", err)
	}

	e.Assets, err = arr[3].TryInteger()
	if err != nil {
		return fmt.Errorf("field Assets: %w", err)
	}

	e.Shares, err = arr[4].TryInteger()
	if err != nil {
		return fmt.Errorf("field Shares: %w", err)
	}

	return nil
}

// RewardsDistributedEventsFromApplicationLog retrieves a set of all emitted events
// with "RewardsDistributed" name from the provided [result.ApplicationLog].
func RewardsDistributedEventsFromApplicationLog(log *result.ApplicationLog) ([]*RewardsDistributedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*RewardsDistributedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "RewardsDistributed" {
				continue
			}
			event := new(RewardsDistributedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize RewardsDistributedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to RewardsDistributedEvent or
// returns an error if it's not possible to do to so.
func (e *RewardsDistributedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 1 {
		return errors.New("wrong number of structure elements")
	}

	var err error
	e.Amount, err = arr[0].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}

// RewardRateUpdatedEventsFromApplicationLog retrieves a set of all emitted events
// with "RewardRateUpdated" name from the provided [result.ApplicationLog].
func RewardRateUpdatedEventsFromApplicationLog(log *result.ApplicationLog) ([]*RewardRateUpdatedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*RewardRateUpdatedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "RewardRateUpdated" {
				continue
			}
			event := new(RewardRateUpdatedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize RewardRateUpdatedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to RewardRateUpdatedEvent or
// returns an error if it's not possible to do to so.
func (e *RewardRateUpdatedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var err error
	e.OldRate, err = arr[0].TryInteger()
	if err != nil {
		return fmt.Errorf("field OldRate: %w", err)
	}

	e.NewRate, err = arr[1].TryInteger()
	if err != nil {
		return fmt.Errorf("field NewRate: %w", err)
	}

	return nil
}
