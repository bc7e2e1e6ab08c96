// Package token contains RPC wrappers for the KRWW token contract.
package token

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/crypto/keys"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/nep17"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// MintEvent represents "Mint" event emitted by the contract.
type MintEvent struct {
	To     util.Uint160
	Amount *big.Int
}

// BurnEvent represents "Burn" event emitted by the contract.
type BurnEvent struct {
	From   util.Uint160
	Amount *big.Int
}

// BlacklistedEvent represents "Blacklisted" event emitted by the contract.
type BlacklistedEvent struct {
	Account util.Uint160
}

// UnBlacklistedEvent represents "UnBlacklisted" event emitted by the contract.
type UnBlacklistedEvent struct {
	Account util.Uint160
}

// ApprovalEvent represents "Approval" event emitted by the contract.
type ApprovalEvent struct {
	Owner   util.Uint160
	Spender util.Uint160
	Amount  *big.Int
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

// Allowance invokes `allowance` method of contract.
func (c *ContractReader) Allowance(owner util.Uint160, spender util.Uint160) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "allowance", owner, spender))
}

// Nonces invokes `nonces` method of contract.
func (c *ContractReader) Nonces(owner util.Uint160) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "nonces", owner))
}

// DomainSeparator invokes `domainSeparator` method of contract.
func (c *ContractReader) DomainSeparator() ([]byte, error) {
	return unwrap.Bytes(c.invoker.Call(c.hash, "domainSeparator"))
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

// MinterRole invokes `minterRole` method of contract.
func (c *ContractReader) MinterRole() ([]byte, error) {
	return unwrap.Bytes(c.invoker.Call(c.hash, "minterRole"))
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

// Mint creates a transaction invoking `mint` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Mint(to util.Uint160, amount *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "mint", to, amount)
}

// MintTransaction creates a transaction invoking `mint` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) MintTransaction(to util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "mint", to, amount)
}

// MintUnsigned creates a transaction invoking `mint` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) MintUnsigned(to util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "mint", nil, to, amount)
}

// Burn creates a transaction invoking `burn` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Burn(owner util.Uint160, amount *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "burn", owner, amount)
}

// BurnTransaction creates a transaction invoking `burn` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) BurnTransaction(owner util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "burn", owner, amount)
}

// BurnUnsigned creates a transaction invoking `burn` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) BurnUnsigned(owner util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "burn", nil, owner, amount)
}

// BurnFrom creates a transaction invoking `burnFrom` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) BurnFrom(spender util.Uint160, owner util.Uint160, amount *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "burnFrom", spender, owner, amount)
}

// BurnFromTransaction creates a transaction invoking `burnFrom` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) BurnFromTransaction(spender util.Uint160, owner util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "burnFrom", spender, owner, amount)
}

// BurnFromUnsigned creates a transaction invoking `burnFrom` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) BurnFromUnsigned(spender util.Uint160, owner util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "burnFrom", nil, spender, owner, amount)
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

// Permit creates a transaction invoking `permit` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Permit(owner util.Uint160, spender util.Uint160, amount *big.Int, deadline *big.Int, pub *keys.PublicKey, signature []byte) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "permit", owner, spender, amount, deadline, pub.Bytes(), signature)
}

// PermitTransaction creates a transaction invoking `permit` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) PermitTransaction(owner util.Uint160, spender util.Uint160, amount *big.Int, deadline *big.Int, pub *keys.PublicKey, signature []byte) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "permit", owner, spender, amount, deadline, pub.Bytes(), signature)
}

// PermitUnsigned creates a transaction invoking `permit` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) PermitUnsigned(owner util.Uint160, spender util.Uint160, amount *big.Int, deadline *big.Int, pub *keys.PublicKey, signature []byte) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "permit", nil, owner, spender, amount, deadline, pub.Bytes(), signature)
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

// MintEventsFromApplicationLog retrieves a set of all emitted events
// with "Mint" name from the provided [result.ApplicationLog].
func MintEventsFromApplicationLog(log *result.ApplicationLog) ([]*MintEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*MintEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Mint" {
				continue
			}
			event := new(MintEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize MintEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to MintEvent or
// returns an error if it's not possible to do to so.
func (e *MintEvent) FromStackItem(item *stackitem.Array) error {
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
	e.To, err = itemToUint160(arr[0])
	if err != nil {
		return fmt.Errorf("field To: %w", err)
	}

	e.Amount, err = arr[1].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}

// BurnEventsFromApplicationLog retrieves a set of all emitted events
// with "Burn" name from the provided [result.ApplicationLog].
func BurnEventsFromApplicationLog(log *result.ApplicationLog) ([]*BurnEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*BurnEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Burn" {
				continue
			}
			event := new(BurnEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize BurnEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to BurnEvent or
// returns an error if it's not possible to do to so.
func (e *BurnEvent) FromStackItem(item *stackitem.Array) error {
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
	e.From, err = itemToUint160(arr[0])
	if err != nil {
		return fmt.Errorf("field From: %w", err)
	}

	e.Amount, err = arr[1].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}

// BlacklistedEventsFromApplicationLog retrieves a set of all emitted events
// with "Blacklisted" name from the provided [result.ApplicationLog].
func BlacklistedEventsFromApplicationLog(log *result.ApplicationLog) ([]*BlacklistedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*BlacklistedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Blacklisted" {
				continue
			}
			event := new(BlacklistedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize BlacklistedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to BlacklistedEvent or
// returns an error if it's not possible to do to so.
func (e *BlacklistedEvent) FromStackItem(item *stackitem.Array) error {
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
	e.Account, err = itemToUint160(arr[0])
	if err != nil {
		return fmt.Errorf("field Account: %w", err)
	}

	return nil
}

// UnBlacklistedEventsFromApplicationLog retrieves a set of all emitted events
// with "UnBlacklisted" name from the provided [result.ApplicationLog].
func UnBlacklistedEventsFromApplicationLog(log *result.ApplicationLog) ([]*UnBlacklistedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*UnBlacklistedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "UnBlacklisted" {
				continue
			}
			event := new(UnBlacklistedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize UnBlacklistedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to UnBlacklistedEvent or
// returns an error if it's not possible to do to so.
func (e *UnBlacklistedEvent) FromStackItem(item *stackitem.Array) error {
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
	e.Account, err = itemToUint160(arr[0])
	if err != nil {
		return fmt.Errorf("field Account: %w", err)
	}

	return nil
}

// ApprovalEventsFromApplicationLog retrieves a set of all emitted events
// with "Approval" name from the provided [result.ApplicationLog].
func ApprovalEventsFromApplicationLog(log *result.ApplicationLog) ([]*ApprovalEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*ApprovalEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Approval" {
				continue
			}
			event := new(ApprovalEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize ApprovalEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to ApprovalEvent or
// returns an error if it's not possible to do to so.
func (e *ApprovalEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var err error
	e.Owner, err = itemToUint160(arr[0])
	if err != nil {
		return fmt.Errorf("field Owner: %w", err)
	}

	e.Spender, err = itemToUint160(arr[1])
	if err != nil {
		return fmt.Errorf("field Spender: %w", err)
	}

	e.Amount, err = arr[2].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}
