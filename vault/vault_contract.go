package vault

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/wondermoney/krww-contract/common"
)

// Share holds all info of the vault share token.
type Share struct {
	// Full share token name
	Name string
	// Ticker symbol
	Symbol string
	// Amount of decimals, same as the underlying asset
	Decimals int
	// Storage key for circulating shares value
	CirculationKey string
}

const (
	shareName     = "Staked Korean Won Wonder"
	shareSymbol   = "sKRWW"
	shareDecimals = 2
	circulation   = "ShareSupply"

	assetKey      = "A"
	cooldownKey   = "C"
	rewardRateKey = "W"

	balancePrefix   = 'b'
	allowancePrefix = 'a'
	timestampPrefix = 't'

	// VaultManagerRoleName is the name of the role allowed to inject
	// rewards and tune the advisory reward rate.
	VaultManagerRoleName = "VAULT_MANAGER_ROLE"
	// PauserRoleName is the name of the role allowed to halt and resume
	// the contract.
	PauserRoleName = "PAUSER_ROLE"
	// BlacklistManagerRoleName is the name of the role allowed to manage
	// the deny-list.
	BlacklistManagerRoleName = "BLACKLIST_MANAGER_ROLE"

	// initialRewardRate is the advisory reward rate set at deployment,
	// in basis points.
	initialRewardRate = 1000

	// depositLimit caps a single deposit or mint. It is far beyond any
	// reachable supply, so the vault is effectively unbounded.
	depositLimit = 1<<63 - 1
)

const (
	// ErrCooldownNotMet appears when a withdrawal or redemption is
	// requested before the owner's cooldown has elapsed.
	ErrCooldownNotMet = "cooldown not met"
	// ErrAssetTransfer appears when the underlying token refuses a
	// transfer the vault requested.
	ErrAssetTransfer = "underlying transfer failed"
	// ErrUnknownToken appears when some other NEP-17 token is sent to the
	// vault account.
	ErrUnknownToken = "only underlying asset accepted"
	// ErrNegativeRate appears when a negative advisory reward rate is
	// submitted.
	ErrNegativeRate = "negative reward rate"
	// ErrInsufficientShares appears when the owner holds fewer shares
	// than an operation needs to burn or move.
	ErrInsufficientShares = "insufficient balance"
	// ErrInsufficientAllowance appears when a delegated share operation
	// exceeds the allowance set by the owner.
	ErrInsufficientAllowance = "insufficient allowance"
)

var share Share

func createShare() Share {
	return Share{
		Name:           shareName,
		Symbol:         shareSymbol,
		Decimals:       shareDecimals,
		CirculationKey: circulation,
	}
}

func init() {
	share = createShare()
}

func _deploy(data interface{}, isUpdate bool) {
	if isUpdate {
		args := data.([]interface{})
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.(struct {
		admin    interop.Hash160
		asset    interop.Hash160
		cooldown int
	})
	common.CheckAccount(args.admin)
	common.CheckAccount(args.asset)
	if args.cooldown < 0 {
		panic("negative cooldown duration")
	}

	ctx := storage.GetContext()
	storage.Put(ctx, assetKey, args.asset)
	storage.Put(ctx, cooldownKey, args.cooldown)
	storage.Put(ctx, rewardRateKey, initialRewardRate)

	common.GrantRole(ctx, common.AdminRole(), args.admin)
	common.GrantRole(ctx, common.RoleID(VaultManagerRoleName), args.admin)
	common.GrantRole(ctx, common.RoleID(PauserRoleName), args.admin)
	common.GrantRole(ctx, common.RoleID(BlacklistManagerRoleName), args.admin)

	runtime.Log("skrww vault contract initialized")
}

// Update method updates contract source code and manifest. Can be invoked
// only by an admin role member.
func Update(script []byte, manifest []byte, data interface{}) {
	ctx := storage.GetReadOnlyContext()
	common.CheckAdminWitness(ctx)

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("skrww vault contract updated")
}

// Name returns the full share token name.
func Name() string {
	return share.Name
}

// Symbol is a NEP-17 standard method that returns the share ticker.
func Symbol() string {
	return share.Symbol
}

// Decimals is a NEP-17 standard method that returns the decimal scale of
// share amounts. It matches the underlying asset scale.
func Decimals() int {
	return share.Decimals
}

// TotalSupply is a NEP-17 standard method that returns the amount of shares
// in circulation. It is always equal to the sum of all share balances.
func TotalSupply() int {
	ctx := storage.GetReadOnlyContext()
	return share.getSupply(ctx)
}

// BalanceOf is a NEP-17 standard method that returns the share balance of
// the specified account.
func BalanceOf(account interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	return share.balanceOf(ctx, account)
}

// Transfer is a NEP-17 standard method that moves shares between two
// accounts. The receiver keeps its own cooldown clock, transferred shares do
// not reset it.
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

	share.move(ctx, from, to, amount, data)
	return true
}

// Allowance returns the remaining amount of shares spender is allowed to
// move out of the owner account.
func Allowance(owner, spender interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	return common.GetIntOrZero(ctx, allowanceKey(owner, spender))
}

// Approve sets the share allowance of spender over the owner account. Can be
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

	share.approve(ctx, owner, spender, amount)
}

// TransferFrom moves shares out of the from account using the allowance
// previously set for spender.
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

	share.spendAllowance(ctx, from, spender, amount)
	share.move(ctx, from, to, amount, nil)
	return true
}

// Asset returns the hash of the underlying token contract.
func Asset() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return assetHash(ctx)
}

// TotalAssets returns the amount of underlying tokens pooled in the vault.
func TotalAssets() int {
	ctx := storage.GetReadOnlyContext()
	return totalAssets(ctx)
}

// ConvertToShares returns the amount of shares the given amount of
// underlying assets is currently worth, rounded down.
func ConvertToShares(assets int) int {
	ctx := storage.GetReadOnlyContext()
	return convertToShares(ctx, assets, false)
}

// ConvertToAssets returns the amount of underlying assets the given amount
// of shares is currently worth, rounded down.
func ConvertToAssets(shares int) int {
	ctx := storage.GetReadOnlyContext()
	return convertToAssets(ctx, shares, false)
}

// PreviewDeposit returns the exact amount of shares Deposit would mint for
// the given amount of assets in the current state.
func PreviewDeposit(assets int) int {
	ctx := storage.GetReadOnlyContext()
	return convertToShares(ctx, assets, false)
}

// PreviewMint returns the exact amount of assets Mint would pull for the
// given amount of shares in the current state. Rounds up, so the vault is
// never underpaid.
func PreviewMint(shares int) int {
	ctx := storage.GetReadOnlyContext()
	return convertToAssets(ctx, shares, true)
}

// PreviewWithdraw returns the exact amount of shares Withdraw would burn for
// the given amount of assets in the current state. Rounds up, so the vault
// never pays out more than the shares are worth.
func PreviewWithdraw(assets int) int {
	ctx := storage.GetReadOnlyContext()
	return convertToShares(ctx, assets, true)
}

// PreviewRedeem returns the exact amount of assets Redeem would pay out for
// the given amount of shares in the current state.
func PreviewRedeem(shares int) int {
	ctx := storage.GetReadOnlyContext()
	return convertToAssets(ctx, shares, false)
}

// Deposit locks assets of underlying tokens pulled from the owner account
// and mints the equivalent amount of shares (rounded down) to the receiver.
// The receiver's cooldown clock restarts and covers its entire resulting
// share balance, even if it already held shares. Returns the amount of
// shares minted.
//
// Produces Deposit and Transfer notifications.
func Deposit(owner interop.Hash160, assets int, receiver interop.Hash160) int {
	ctx := storage.GetContext()
	common.CheckNotPaused(ctx)
	common.CheckOwnerWitness(owner)
	common.CheckPositive(assets)
	common.CheckAccount(receiver)
	common.CheckNotBlacklisted(ctx, owner)
	common.CheckNotBlacklisted(ctx, receiver)

	shares := convertToShares(ctx, assets, false)
	pullAssets(ctx, owner, assets)
	share.mint(ctx, receiver, shares)
	storage.Put(ctx, timestampKey(receiver), runtime.GetTime())

	runtime.Notify("Deposit", owner, receiver, assets, shares)
	return shares
}

// Mint locks exactly as many underlying tokens as the requested amount of
// shares is worth (rounded up, so the vault is never underpaid) and mints
// the shares to the receiver. Cooldown behaviour is identical to Deposit.
// Returns the amount of assets pulled.
//
// Produces Deposit and Transfer notifications.
func Mint(owner interop.Hash160, shares int, receiver interop.Hash160) int {
	ctx := storage.GetContext()
	common.CheckNotPaused(ctx)
	common.CheckOwnerWitness(owner)
	common.CheckPositive(shares)
	common.CheckAccount(receiver)
	common.CheckNotBlacklisted(ctx, owner)
	common.CheckNotBlacklisted(ctx, receiver)

	assets := convertToAssets(ctx, shares, true)
	pullAssets(ctx, owner, assets)
	share.mint(ctx, receiver, shares)
	storage.Put(ctx, timestampKey(receiver), runtime.GetTime())

	runtime.Notify("Deposit", owner, receiver, assets, shares)
	return assets
}

// Withdraw burns as many of the owner's shares as the requested amount of
// assets is worth (rounded up) and pays the assets out to the receiver. The
// owner's cooldown must have elapsed. When the spender is not the owner, the
// share allowance set for the spender is decremented by the burned amount.
// Shares are burned before the underlying leaves the vault. Returns the
// amount of shares burned.
//
// Produces Withdraw and Transfer notifications.
func Withdraw(spender interop.Hash160, assets int, receiver, owner interop.Hash160) int {
	ctx := storage.GetContext()
	shares := convertToShares(ctx, assets, true)
	withdraw(ctx, spender, assets, shares, receiver, owner)
	return shares
}

// Redeem burns the requested amount of the owner's shares and pays out the
// equivalent amount of assets (rounded down) to the receiver. Cooldown and
// allowance rules are the same as in Withdraw. Returns the amount of assets
// paid out.
//
// Produces Withdraw and Transfer notifications.
func Redeem(spender interop.Hash160, shares int, receiver, owner interop.Hash160) int {
	ctx := storage.GetContext()
	assets := convertToAssets(ctx, shares, false)
	withdraw(ctx, spender, assets, shares, receiver, owner)
	return assets
}

// MaxDeposit returns the maximum amount of underlying assets the receiver
// can deposit right now: zero when the vault is paused or the receiver is
// deny-listed, an effectively unbounded ceiling otherwise.
func MaxDeposit(receiver interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	if common.IsPaused(ctx) || common.IsBlacklisted(ctx, receiver) {
		return 0
	}
	return depositLimit
}

// MaxMint returns the maximum amount of shares the receiver can mint right
// now, under the same conditions as MaxDeposit.
func MaxMint(receiver interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	if common.IsPaused(ctx) || common.IsBlacklisted(ctx, receiver) {
		return 0
	}
	return depositLimit
}

// MaxWithdraw returns the amount of underlying assets the owner could
// withdraw right now: zero before the cooldown elapses (or when paused or
// deny-listed), the value of the full share balance otherwise.
func MaxWithdraw(owner interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	if !canWithdraw(ctx, owner) {
		return 0
	}
	return convertToAssets(ctx, share.balanceOf(ctx, owner), false)
}

// MaxRedeem returns the amount of shares the owner could redeem right now:
// zero before the cooldown elapses (or when paused or deny-listed), the full
// share balance otherwise.
func MaxRedeem(owner interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	if !canWithdraw(ctx, owner) {
		return 0
	}
	return share.balanceOf(ctx, owner)
}

// GetDepositTimestamp returns the timestamp (ms) of the owner's most recent
// deposit, zero if the owner never deposited.
func GetDepositTimestamp(owner interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	return common.GetIntOrZero(ctx, timestampKey(owner))
}

// GetCooldownRemaining returns how many milliseconds are left until the
// owner's position unlocks, zero once it already has.
func GetCooldownRemaining(owner interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	remaining := common.GetIntOrZero(ctx, timestampKey(owner)) + cooldownPeriod(ctx) - runtime.GetTime()
	if remaining < 0 {
		return 0
	}
	return remaining
}

// CooldownPeriod returns the cooldown duration in milliseconds. It is fixed
// at deployment.
func CooldownPeriod() int {
	ctx := storage.GetReadOnlyContext()
	return cooldownPeriod(ctx)
}

// DistributeRewards pulls amount of underlying tokens from the manager into
// the pool without minting any shares, raising the assets-per-share rate for
// every existing holder. The manager must hold VAULT_MANAGER_ROLE and
// witness the transaction.
//
// Produces RewardsDistributed notification.
func DistributeRewards(manager interop.Hash160, amount int) {
	ctx := storage.GetContext()
	common.CheckNotPaused(ctx)
	common.CheckMemberWitness(ctx, common.RoleID(VaultManagerRoleName), VaultManagerRoleName, manager)
	common.CheckPositive(amount)
	common.CheckNotBlacklisted(ctx, manager)

	pullAssets(ctx, manager, amount)
	runtime.Notify("RewardsDistributed", amount)
}

// SetRewardRate stores a new advisory reward rate in basis points. Nothing
// in the conversion math reads it, the actual yield comes solely from
// DistributeRewards. The manager must hold VAULT_MANAGER_ROLE and witness
// the transaction.
//
// Produces RewardRateUpdated notification.
func SetRewardRate(manager interop.Hash160, newRate int) {
	ctx := storage.GetContext()
	common.CheckMemberWitness(ctx, common.RoleID(VaultManagerRoleName), VaultManagerRoleName, manager)
	if newRate < 0 {
		panic(ErrNegativeRate)
	}

	oldRate := common.GetIntOrZero(ctx, rewardRateKey)
	storage.Put(ctx, rewardRateKey, newRate)
	runtime.Notify("RewardRateUpdated", oldRate, newRate)
}

// RewardRate returns the advisory reward rate in basis points.
func RewardRate() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetIntOrZero(ctx, rewardRateKey)
}

// OnNEP17Payment reacts to incoming NEP-17 transfers. Only the underlying
// asset is accepted, any other token is rejected and the sending transaction
// aborted. Underlying tokens arriving outside Deposit simply raise the pool
// value, the same way DistributeRewards does.
func OnNEP17Payment(from interop.Hash160, amount int, data interface{}) {
	ctx := storage.GetReadOnlyContext()
	if !common.BytesEqual(runtime.GetCallingScriptHash(), assetHash(ctx)) {
		panic(ErrUnknownToken)
	}
}

// Pause halts every mutating vault method. Requires a PAUSER_ROLE witness,
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

// Blacklist puts account on the deny-list of the share ledger. Requires a
// BLACKLIST_MANAGER_ROLE witness. Flagging an already flagged account is a
// no-op.
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

// VaultManagerRole returns the identifier of VAULT_MANAGER_ROLE.
func VaultManagerRole() []byte {
	return common.RoleID(VaultManagerRoleName)
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

func timestampKey(owner interop.Hash160) []byte {
	return append([]byte{timestampPrefix}, owner...)
}

func assetHash(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, assetKey).(interop.Hash160)
}

func cooldownPeriod(ctx storage.Context) int {
	return common.GetIntOrZero(ctx, cooldownKey)
}

func totalAssets(ctx storage.Context) int {
	return contract.Call(assetHash(ctx), "balanceOf", contract.ReadOnly,
		runtime.GetExecutingScriptHash()).(int)
}

// convertToShares prices assets in shares at the current exchange rate with
// the requested rounding direction. An empty vault prices 1:1.
func convertToShares(ctx storage.Context, assets int, roundUp bool) int {
	supply := share.getSupply(ctx)
	if supply == 0 {
		return assets
	}
	pooled := totalAssets(ctx)
	if pooled == 0 {
		return assets
	}

	num := assets * supply
	q := num / pooled
	if roundUp && q*pooled != num {
		q++
	}
	return q
}

// convertToAssets prices shares in assets at the current exchange rate with
// the requested rounding direction. An empty vault prices 1:1.
func convertToAssets(ctx storage.Context, shares int, roundUp bool) int {
	supply := share.getSupply(ctx)
	if supply == 0 {
		return shares
	}

	num := shares * totalAssets(ctx)
	q := num / supply
	if roundUp && q*supply != num {
		q++
	}
	return q
}

func canWithdraw(ctx storage.Context, owner interop.Hash160) bool {
	if common.IsPaused(ctx) || common.IsBlacklisted(ctx, owner) {
		return false
	}
	return cooldownElapsed(ctx, owner)
}

func cooldownElapsed(ctx storage.Context, owner interop.Hash160) bool {
	deposited := common.GetIntOrZero(ctx, timestampKey(owner))
	return runtime.GetTime()-deposited >= cooldownPeriod(ctx)
}

// withdraw applies the shared guard chain and accounting of Withdraw and
// Redeem. Share burning and allowance spending come strictly before the
// underlying token leaves the vault.
func withdraw(ctx storage.Context, spender interop.Hash160, assets, shares int, receiver, owner interop.Hash160) {
	common.CheckNotPaused(ctx)
	common.CheckOwnerWitness(spender)
	common.CheckPositive(assets)
	common.CheckAccount(receiver)
	common.CheckNotBlacklisted(ctx, spender)
	common.CheckNotBlacklisted(ctx, receiver)
	common.CheckNotBlacklisted(ctx, owner)
	if !cooldownElapsed(ctx, owner) {
		panic(ErrCooldownNotMet)
	}

	if !common.BytesEqual(spender, owner) {
		share.spendAllowance(ctx, owner, spender, shares)
	}
	share.burn(ctx, owner, shares)
	pushAssets(ctx, receiver, assets)

	runtime.Notify("Withdraw", spender, receiver, owner, assets, shares)
}

// pullAssets moves underlying tokens from an external account into the pool.
// The from account has witnessed the current transaction, which authorizes
// the transfer on the token side.
func pullAssets(ctx storage.Context, from interop.Hash160, amount int) {
	ok := contract.Call(assetHash(ctx), "transfer", contract.All,
		from, runtime.GetExecutingScriptHash(), amount, nil).(bool)
	if !ok {
		panic(ErrAssetTransfer)
	}
}

// pushAssets moves underlying tokens out of the pool. The token recognizes
// the vault as the sender of its own funds via the calling script hash.
func pushAssets(ctx storage.Context, to interop.Hash160, amount int) {
	ok := contract.Call(assetHash(ctx), "transfer", contract.All,
		runtime.GetExecutingScriptHash(), to, amount, nil).(bool)
	if !ok {
		panic(ErrAssetTransfer)
	}
}

// getSupply gets the share totalSupply value from VM storage.
func (s Share) getSupply(ctx storage.Context) int {
	return common.GetIntOrZero(ctx, s.CirculationKey)
}

func (s Share) balanceOf(ctx storage.Context, holder interop.Hash160) int {
	return common.GetIntOrZero(ctx, balanceKey(holder))
}

func (s Share) mint(ctx storage.Context, to interop.Hash160, amount int) {
	common.PutIntOrDelete(ctx, balanceKey(to), s.balanceOf(ctx, to)+amount)
	storage.Put(ctx, s.CirculationKey, s.getSupply(ctx)+amount)
	runtime.Notify("Transfer", interop.Hash160(nil), to, amount)
}

func (s Share) burn(ctx storage.Context, from interop.Hash160, amount int) {
	balance := s.balanceOf(ctx, from)
	if balance < amount {
		panic(ErrInsufficientShares)
	}
	common.PutIntOrDelete(ctx, balanceKey(from), balance-amount)
	storage.Put(ctx, s.CirculationKey, s.getSupply(ctx)-amount)
	runtime.Notify("Transfer", from, interop.Hash160(nil), amount)
}

// move updates both share balances without any authorization checks, the
// exported wrappers are responsible for those.
func (s Share) move(ctx storage.Context, from, to interop.Hash160, amount int, data interface{}) {
	balance := s.balanceOf(ctx, from)
	if balance < amount {
		panic(ErrInsufficientShares)
	}

	common.PutIntOrDelete(ctx, balanceKey(from), balance-amount)
	common.PutIntOrDelete(ctx, balanceKey(to), s.balanceOf(ctx, to)+amount)

	runtime.Notify("Transfer", from, to, amount)
	if management.GetContract(to) != nil {
		contract.Call(to, "onNEP17Payment", contract.All, from, amount, data)
	}
}

func (s Share) approve(ctx storage.Context, owner, spender interop.Hash160, amount int) {
	common.PutIntOrDelete(ctx, allowanceKey(owner, spender), amount)
	runtime.Notify("Approval", owner, spender, amount)
}

func (s Share) spendAllowance(ctx storage.Context, owner, spender interop.Hash160, amount int) {
	key := allowanceKey(owner, spender)
	allowance := common.GetIntOrZero(ctx, key)
	if allowance < amount {
		panic(ErrInsufficientAllowance)
	}
	common.PutIntOrDelete(ctx, key, allowance-amount)
}
