package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/crypto"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

const (
	// AdminRoleName is the human-readable name of the distinguished admin
	// role that manages membership of every other role.
	AdminRoleName = "DEFAULT_ADMIN_ROLE"

	// ErrMissingRole is the prefix of the panic message thrown when a
	// privileged method lacks a witness of the required role. The role
	// name is appended to it.
	ErrMissingRole = "account is missing role"

	rolePrefix = 'R'
)

// RoleID derives a fixed-size role identifier from a human-readable role name.
// The admin role is all-zero, any other role is the SHA-256 hash of its name.
func RoleID(name string) []byte {
	if name == AdminRoleName {
		return AdminRole()
	}
	return crypto.Sha256([]byte(name))
}

// AdminRole returns the identifier of the admin role. The interop.Hash256
// conversion makes the compiler emit a ByteString rather than a Buffer,
// matching the ByteArray type of the SHA-256-derived role identifiers.
func AdminRole() []byte {
	return interop.Hash256(make([]byte, 32))
}

func roleKey(role []byte) []byte {
	return append([]byte{rolePrefix}, role...)
}

func memberKey(role []byte, account interop.Hash160) []byte {
	return append(roleKey(role), account...)
}

// HasRole returns true iff account is a member of role.
func HasRole(ctx storage.Context, role []byte, account interop.Hash160) bool {
	return storage.Get(ctx, memberKey(role, account)) != nil
}

// GrantRole adds account to the member set of role. Redundant grants are
// no-ops. Produces RoleGranted notification.
func GrantRole(ctx storage.Context, role []byte, account interop.Hash160) {
	key := memberKey(role, account)
	if storage.Get(ctx, key) != nil {
		return
	}
	storage.Put(ctx, key, 1)
	runtime.Notify("RoleGranted", role, account)
}

// RevokeRole removes account from the member set of role. Redundant revokes
// are no-ops. Produces RoleRevoked notification.
func RevokeRole(ctx storage.Context, role []byte, account interop.Hash160) {
	key := memberKey(role, account)
	if storage.Get(ctx, key) == nil {
		return
	}
	storage.Delete(ctx, key)
	runtime.Notify("RoleRevoked", role, account)
}

// CheckRoleWitness panics with ErrMissingRole unless the current transaction
// is witnessed by some member of role. name is used in the panic message.
func CheckRoleWitness(ctx storage.Context, role []byte, name string) {
	it := storage.Find(ctx, roleKey(role), storage.KeysOnly|storage.RemovePrefix)
	for iterator.Next(it) {
		member := iterator.Value(it).([]byte)
		if runtime.CheckWitness(member) {
			return
		}
	}
	panic(ErrMissingRole + " " + name)
}

// CheckMemberWitness panics with ErrMissingRole unless account is a member of
// role and has witnessed the current transaction. It is used by methods that
// act on behalf of a specific role holder rather than just requiring the role
// to be present among signers.
func CheckMemberWitness(ctx storage.Context, role []byte, name string, account interop.Hash160) {
	if !HasRole(ctx, role, account) || !runtime.CheckWitness(account) {
		panic(ErrMissingRole + " " + name)
	}
}

// CheckAdminWitness panics unless the current transaction is witnessed by an
// admin role member.
func CheckAdminWitness(ctx storage.Context) {
	CheckRoleWitness(ctx, AdminRole(), AdminRoleName)
}
