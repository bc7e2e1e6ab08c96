package token

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/crypto"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/wondermoney/krww-contract/common"
)

// Token holds all token info.
type Token struct {
	// Full token name
	Name string
	// Ticker symbol
	Symbol string
	// Amount of decimals
	Decimals int
	// Storage key for circulation value
	CirculationKey string
}

const (
	tokenName     = "Korean Won Wonder"
	tokenSymbol   = "KRWW"
	tokenDecimals = 2
	circulation   = "TokenSupply"

	balancePrefix   = 'b'
	allowancePrefix = 'a'
	noncePrefix     = 'n'

	// MinterRoleName is the name of the role allowed to mint new tokens.
	MinterRoleName = "MINTER_ROLE"
	// PauserRoleName is the name of the role allowed to halt and resume
	// the contract.
	PauserRoleName = "PAUSER_ROLE"
	// BlacklistManagerRoleName is the name of the role allowed to manage
	// the deny-list.
	BlacklistManagerRoleName = "BLACKLIST_MANAGER_ROLE"
)

const (
	// ErrInsufficientBalance appears when the sender account holds less
	// than the transferred amount.
	ErrInsufficientBalance = "insufficient balance"
	// ErrInsufficientAllowance appears when a delegated transfer or burn
	// exceeds the allowance set by the owner.
	ErrInsufficientAllowance = "insufficient allowance"
	// ErrPermitExpired appears when a signature-based approval is
	// submitted after its deadline.
	ErrPermitExpired = "permit deadline expired"
	// ErrPermitSignature appears when a signature-based approval carries
	// a key or signature that does not verify for the owner and the
	// current nonce.
	ErrPermitSignature = "invalid permit signature"
)

var token Token

func createToken() Token {
	return Token{
		Name:           tokenName,
		Symbol:         tokenSymbol,
		Decimals:       tokenDecimals,
		CirculationKey: circulation,
	}
}

func init() {
	token = createToken()
}

func _deploy(data interface{}, isUpdate bool) {
	if isUpdate {
		args := data.([]interface{})
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.(struct {
		admin interop.Hash160
	})
	common.CheckAccount(args.admin)

	ctx := storage.GetContext()
	common.GrantRole(ctx, common.AdminRole(), args.admin)
	common.GrantRole(ctx, common.RoleID(MinterRoleName), args.admin)
	common.GrantRole(ctx, common.RoleID(PauserRoleName), args.admin)
	common.GrantRole(ctx, common.RoleID(BlacklistManagerRoleName), args.admin)

	runtime.Log("krww token contract initialized")
}

// Update method updates contract source code and manifest. Can be invoked
// only by an admin role member.
func Update(script []byte, manifest []byte, data interface{}) {
	ctx := storage.GetReadOnlyContext()
	common.CheckAdminWitness(ctx)

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("krww token contract updated")
}

// Name returns the full token name.
func Name() string {
	return token.Name
}

// Symbol is a NEP-17 standard method that returns the token ticker.
func Symbol() string {
	return token.Symbol
}

// Decimals is a NEP-17 standard method that returns the decimal scale of
// token amounts.
func Decimals() int {
	return token.Decimals
}

// TotalSupply is a NEP-17 standard method that returns the amount of tokens
// in circulation. It is always equal to the sum of all account balances.
func TotalSupply() int {
	ctx := storage.GetReadOnlyContext()
	return token.getSupply(ctx)
}

// BalanceOf is a NEP-17 standard method that returns the balance of the
// specified account.
func BalanceOf(account interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	return token.balanceOf(ctx, account)
}

// Transfer is a NEP-17 standard method that moves tokens between two
// accounts. It can be invoked by the owner of from or by a contract whose
// hash equals from. Returns false when the witness is missing, panics when
// any compliance or liveness guard fails.
//
// Produces Transfer notification.
func Transfer(from, to interop.Hash160, amount int, data interface{}) bool {
	ctx := storage.GetContext()
	common.CheckNotPaused(ctx)
	if len(to) != interop.Hash160Len {
		panic(common.ErrZeroAddress)
	}
	if amount < 0 {
		panic(common.ErrZeroAmount)
	}
	common.CheckNotBlacklisted(ctx, from)
	common.CheckNotBlacklisted(ctx, to)

	if !common.AuthorizedBy(from) {
		runtime.Log("transfer: missing sender witness")
		return false
	}

	token.move(ctx, from, to, amount, data)
	return true
}

// Allowance returns the remaining amount spender is allowed to move out of
// the owner account.
func Allowance(owner, spender interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	return common.GetIntOrZero(ctx, allowanceKey(owner, spender))
}

// Approve sets the allowance of spender over the owner account. Can be
// invoked only by the owner. An amount of zero clears the approval.
//
// Produces Approval notification.
func Approve(owner, spender interop.Hash160, amount int) {
	ctx := storage.GetContext()
	common.CheckNotPaused(ctx)
	common.CheckOwnerWitness(owner)
	common.CheckAccount(spender)
	if amount < 0 {
		panic(common.ErrZeroAmount)
	}
	common.CheckNotBlacklisted(ctx, owner)

	token.approve(ctx, owner, spender, amount)
}

// TransferFrom moves tokens out of the from account using the allowance
// previously set for spender. The allowance is decremented by the
// transferred amount.
//
// Produces Transfer notification.
func TransferFrom(spender, from, to interop.Hash160, amount int) bool {
	ctx := storage.GetContext()
	common.CheckNotPaused(ctx)
	common.CheckOwnerWitness(spender)
	if len(to) != interop.Hash160Len {
		panic(common.ErrZeroAddress)
	}
	if amount < 0 {
		panic(common.ErrZeroAmount)
	}
	common.CheckNotBlacklisted(ctx, from)
	common.CheckNotBlacklisted(ctx, to)

	token.spendAllowance(ctx, from, spender, amount)
	token.move(ctx, from, to, amount, nil)
	return true
}

// Mint creates amount of new tokens on the to account and increases total
// supply accordingly. Requires a MINTER_ROLE witness.
//
// Produces Transfer and Mint notifications.
func Mint(to interop.Hash160, amount int) {
	ctx := storage.GetContext()
	common.CheckNotPaused(ctx)
	common.CheckRoleWitness(ctx, common.RoleID(MinterRoleName), MinterRoleName)
	common.CheckAccount(to)
	common.CheckPositive(amount)
	common.CheckNotBlacklisted(ctx, to)

	token.addBalance(ctx, to, amount)
	storage.Put(ctx, token.CirculationKey, token.getSupply(ctx)+amount)

	runtime.Notify("Transfer", interop.Hash160(nil), to, amount)
	runtime.Notify("Mint", to, amount)
	postTransfer(nil, to, amount, nil)
}

// Burn destroys amount of tokens held by the from account and decreases
// total supply accordingly. Can be invoked only by the owner of from.
//
// Produces Transfer and Burn notifications.
func Burn(from interop.Hash160, amount int) {
	ctx := storage.GetContext()
	common.CheckNotPaused(ctx)
	common.CheckOwnerWitness(from)
	common.CheckPositive(amount)
	common.CheckNotBlacklisted(ctx, from)

	token.burn(ctx, from, amount)
}

// BurnFrom destroys amount of tokens held by the from account using the
// allowance previously set for spender.
//
// Produces Transfer and Burn notifications.
func BurnFrom(spender, from interop.Hash160, amount int) {
	ctx := storage.GetContext()
	common.CheckNotPaused(ctx)
	common.CheckOwnerWitness(spender)
	common.CheckPositive(amount)
	common.CheckNotBlacklisted(ctx, from)

	token.spendAllowance(ctx, from, spender, amount)
	token.burn(ctx, from, amount)
}

// Permit performs a signature-based approval: it sets the allowance of
// spender over the owner account exactly as Approve does, authorizing the
// change with an ECDSA signature instead of a transaction witness. The
// signed message binds the token domain (see DomainSeparator), the owner,
// the spender, the amount, the current owner nonce and a deadline in
// milliseconds. The nonce is consumed on success, so a signature can be
// used only once, and submission past the deadline fails.
//
// Produces Approval notification.
func Permit(owner, spender interop.Hash160, amount, deadline int, pub interop.PublicKey, sig interop.Signature) {
	ctx := storage.GetContext()
	common.CheckNotPaused(ctx)
	common.CheckAccount(spender)
	if amount < 0 {
		panic(common.ErrZeroAmount)
	}
	common.CheckNotBlacklisted(ctx, owner)
	if runtime.GetTime() > deadline {
		panic(ErrPermitExpired)
	}
	if !common.BytesEqual(contract.CreateStandardAccount(pub), owner) {
		panic(ErrPermitSignature)
	}

	nonce := common.GetIntOrZero(ctx, nonceKey(owner))
	msg := append(domainSeparator(),
		std.Serialize([]interface{}{owner, spender, amount, nonce, deadline})...)
	if !crypto.VerifyWithECDsa(msg, pub, sig, crypto.Secp256r1) {
		panic(ErrPermitSignature)
	}

	storage.Put(ctx, nonceKey(owner), nonce+1)
	token.approve(ctx, owner, spender, amount)
}

// Nonces returns the current signature-approval nonce of the owner account.
// It increases by one with every successful Permit invocation.
func Nonces(owner interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	return common.GetIntOrZero(ctx, nonceKey(owner))
}

// DomainSeparator returns the hash every Permit signature must be bound to.
// It commits to the token name and symbol, the network magic and the
// contract hash, so a signature is valid for exactly one deployment.
func DomainSeparator() []byte {
	return domainSeparator()
}

// Pause halts every mutating token method. Requires a PAUSER_ROLE witness,
// fails if the contract is already paused.
//
// Produces Paused notification.
func Pause() {
	ctx := storage.GetContext()
	common.CheckRoleWitness(ctx, common.RoleID(PauserRoleName), PauserRoleName)
	common.SetPaused(ctx, true)
}

// Unpause resumes the contract after Pause. Requires a PAUSER_ROLE witness,
// fails if the contract is not paused.
//
// Produces Unpaused notification.
func Unpause() {
	ctx := storage.GetContext()
	common.CheckRoleWitness(ctx, common.RoleID(PauserRoleName), PauserRoleName)
	common.SetPaused(ctx, false)
}

// Paused returns the state of the halt flag.
func Paused() bool {
	ctx := storage.GetReadOnlyContext()
	return common.IsPaused(ctx)
}

// Blacklist puts account on the deny-list, barring it from every
// value-moving operation. Requires a BLACKLIST_MANAGER_ROLE witness.
// Flagging an already flagged account is a no-op.
//
// Produces Blacklisted notification.
func Blacklist(account interop.Hash160) {
	ctx := storage.GetContext()
	common.CheckRoleWitness(ctx, common.RoleID(BlacklistManagerRoleName), BlacklistManagerRoleName)
	common.CheckAccount(account)
	common.SetBlacklisted(ctx, account, true)
}

// UnBlacklist removes account from the deny-list. Requires a
// BLACKLIST_MANAGER_ROLE witness. Clearing a clean account is a no-op.
//
// Produces UnBlacklisted notification.
func UnBlacklist(account interop.Hash160) {
	ctx := storage.GetContext()
	common.CheckRoleWitness(ctx, common.RoleID(BlacklistManagerRoleName), BlacklistManagerRoleName)
	common.CheckAccount(account)
	common.SetBlacklisted(ctx, account, false)
}

// IsBlacklisted returns the deny-list flag of account.
func IsBlacklisted(account interop.Hash160) bool {
	ctx := storage.GetReadOnlyContext()
	return common.IsBlacklisted(ctx, account)
}

// GrantRole adds account to the member set of role. Requires an admin role
// witness.
//
// Produces RoleGranted notification.
func GrantRole(role []byte, account interop.Hash160) {
	ctx := storage.GetContext()
	common.CheckAdminWitness(ctx)
	common.CheckAccount(account)
	common.GrantRole(ctx, role, account)
}

// RevokeRole removes account from the member set of role. Requires an admin
// role witness.
//
// Produces RoleRevoked notification.
func RevokeRole(role []byte, account interop.Hash160) {
	ctx := storage.GetContext()
	common.CheckAdminWitness(ctx)
	common.CheckAccount(account)
	common.RevokeRole(ctx, role, account)
}

// HasRole returns true iff account is a member of role.
func HasRole(role []byte, account interop.Hash160) bool {
	ctx := storage.GetReadOnlyContext()
	return common.HasRole(ctx, role, account)
}

// AdminRole returns the identifier of the admin role.
func AdminRole() []byte {
	return common.AdminRole()
}

// MinterRole returns the identifier of MINTER_ROLE.
func MinterRole() []byte {
	return common.RoleID(MinterRoleName)
}

// PauserRole returns the identifier of PAUSER_ROLE.
func PauserRole() []byte {
	return common.RoleID(PauserRoleName)
}

// BlacklistManagerRole returns the identifier of BLACKLIST_MANAGER_ROLE.
func BlacklistManagerRole() []byte {
	return common.RoleID(BlacklistManagerRoleName)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func balanceKey(account interop.Hash160) []byte {
	return append([]byte{balancePrefix}, account...)
}

func allowanceKey(owner, spender interop.Hash160) []byte {
	return append(append([]byte{allowancePrefix}, owner...), spender...)
}

func nonceKey(owner interop.Hash160) []byte {
	return append([]byte{noncePrefix}, owner...)
}

func domainSeparator() []byte {
	return crypto.Sha256(std.Serialize([]interface{}{
		tokenName, tokenSymbol, runtime.GetNetwork(), runtime.GetExecutingScriptHash(),
	}))
}

// getSupply gets the token totalSupply value from VM storage.
func (t Token) getSupply(ctx storage.Context) int {
	return common.GetIntOrZero(ctx, t.CirculationKey)
}

func (t Token) balanceOf(ctx storage.Context, holder interop.Hash160) int {
	return common.GetIntOrZero(ctx, balanceKey(holder))
}

func (t Token) addBalance(ctx storage.Context, holder interop.Hash160, delta int) {
	common.PutIntOrDelete(ctx, balanceKey(holder), t.balanceOf(ctx, holder)+delta)
}

// move updates both balances without any authorization checks, the exported
// wrappers are responsible for those.
func (t Token) move(ctx storage.Context, from, to interop.Hash160, amount int, data interface{}) {
	balance := t.balanceOf(ctx, from)
	if balance < amount {
		panic(ErrInsufficientBalance)
	}

	common.PutIntOrDelete(ctx, balanceKey(from), balance-amount)
	t.addBalance(ctx, to, amount)

	runtime.Notify("Transfer", from, to, amount)
	postTransfer(from, to, amount, data)
}

func (t Token) burn(ctx storage.Context, from interop.Hash160, amount int) {
	balance := t.balanceOf(ctx, from)
	if balance < amount {
		panic(ErrInsufficientBalance)
	}

	common.PutIntOrDelete(ctx, balanceKey(from), balance-amount)
	supply := t.getSupply(ctx)
	if supply < amount {
		panic("negative supply after burn")
	}
	storage.Put(ctx, t.CirculationKey, supply-amount)

	runtime.Notify("Transfer", from, interop.Hash160(nil), amount)
	runtime.Notify("Burn", from, amount)
}

func (t Token) approve(ctx storage.Context, owner, spender interop.Hash160, amount int) {
	common.PutIntOrDelete(ctx, allowanceKey(owner, spender), amount)
	runtime.Notify("Approval", owner, spender, amount)
}

func (t Token) spendAllowance(ctx storage.Context, owner, spender interop.Hash160, amount int) {
	key := allowanceKey(owner, spender)
	allowance := common.GetIntOrZero(ctx, key)
	if allowance < amount {
		panic(ErrInsufficientAllowance)
	}
	common.PutIntOrDelete(ctx, key, allowance-amount)
}

// postTransfer fires the NEP-17 payment callback when tokens arrive to a
// contract account.
func postTransfer(from, to interop.Hash160, amount int, data interface{}) {
	if management.GetContract(to) != nil {
		contract.Call(to, "onNEP17Payment", contract.All, from, amount, data)
	}
}
