/*
Token contract is the compliance-gated KRWW fungible token.

Token contract is NEP-17 compatible, so balances can be tracked and moved by
any N3 wallet software. On top of the standard surface it carries an
allowance extension (approve, allowance, transferFrom, burnFrom and
signature-based permit), role-controlled minting and burning, a global pause
switch and a deny-list consulted on every value-moving operation. Role
membership is managed by the admin role assigned at deployment.

Contract notifications

Transfer notification. This is the NEP-17 standard notification. Minting
emits it with a null from, burning with a null to.

	Transfer:
	  - name: from
	    type: Hash160
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer

Approval notification. Produced when an allowance is set, either directly or
through permit.

	Approval:
	  - name: owner
	    type: Hash160
	  - name: spender
	    type: Hash160
	  - name: amount
	    type: Integer

Mint notification. Produced when new tokens are created by a minter.

	Mint:
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer

Burn notification. Produced when tokens are destroyed.

	Burn:
	  - name: from
	    type: Hash160
	  - name: amount
	    type: Integer

Blacklisted and UnBlacklisted notifications. Produced when the deny-list
flag of an account actually changes.

	Blacklisted:
	  - name: account
	    type: Hash160

	UnBlacklisted:
	  - name: account
	    type: Hash160

RoleGranted and RoleRevoked notifications. Produced on actual membership
changes.

	RoleGranted:
	  - name: role
	    type: ByteArray
	  - name: account
	    type: Hash160

	RoleRevoked:
	  - name: role
	    type: ByteArray
	  - name: account
	    type: Hash160

Paused and Unpaused notifications carry no arguments.
*/
package token
