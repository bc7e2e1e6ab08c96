/*
Vault contract is the sKRWW time-locked yield vault over the KRWW token.

The vault is itself a NEP-17 compatible share ledger: depositing underlying
tokens mints shares representing a proportional claim on the pooled balance,
withdrawing burns them. The exchange rate is total pooled assets over total
shares (1:1 while the vault is empty) and every conversion states its
rounding direction explicitly, always in the vault's favor. Each holder
carries a single deposit timestamp, any deposit or mint restarts the cooldown
for the holder's entire balance, and no withdrawal or redemption is possible
until the cooldown has elapsed. A vault manager injects yield by pulling
underlying tokens into the pool without minting shares, which raises the
assets-per-share rate for every existing holder. Pause, deny-list and role
management mirror the token contract.

Contract notifications

Transfer notification. This is the NEP-17 standard notification over shares.
Share minting emits it with a null from, share burning with a null to.

	Transfer:
	  - name: from
	    type: Hash160
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer

Approval notification. Produced when a share allowance is set.

	Approval:
	  - name: owner
	    type: Hash160
	  - name: spender
	    type: Hash160
	  - name: amount
	    type: Integer

Deposit notification. Produced by both deposit and mint.

	Deposit:
	  - name: caller
	    type: Hash160
	  - name: receiver
	    type: Hash160
	  - name: assets
	    type: Integer
	  - name: shares
	    type: Integer

Withdraw notification. Produced by both withdraw and redeem.

	Withdraw:
	  - name: caller
	    type: Hash160
	  - name: receiver
	    type: Hash160
	  - name: owner
	    type: Hash160
	  - name: assets
	    type: Integer
	  - name: shares
	    type: Integer

RewardsDistributed notification. Produced when a vault manager injects
yield.

	RewardsDistributed:
	  - name: amount
	    type: Integer

RewardRateUpdated notification. Produced when the advisory reward rate
changes.

	RewardRateUpdated:
	  - name: oldRate
	    type: Integer
	  - name: newRate
	    type: Integer

Blacklisted, UnBlacklisted, RoleGranted, RoleRevoked, Paused and Unpaused
notifications have the same shapes as in the token contract.
*/
package vault
