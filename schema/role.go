// Copyright (c) 2025 The Solvault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package schema

import (
	"github.com/gagliardetto/solana-go"
)

// Role is the closed set of administrative tiers. The permission set of
// each role is a pure function of its value; there is no dynamic
// dispatch and no way to extend the set at runtime.
type Role uint8

const (
	RoleSuperAdmin Role = iota
	RoleAdmin
	RoleModerator
	RoleOperator
)

func (r Role) String() string {
	switch r {
	case RoleSuperAdmin:
		return "super-admin"
	case RoleAdmin:
		return "admin"
	case RoleModerator:
		return "moderator"
	case RoleOperator:
		return "operator"
	default:
		return "unknown"
	}
}

// Valid reports whether r is a member of the closed role set.
func (r Role) Valid() bool {
	return r <= RoleOperator
}

func (r Role) CanPauseVault() bool {
	return r == RoleSuperAdmin || r == RoleAdmin || r == RoleModerator
}

func (r Role) CanUpdateConfig() bool {
	return r == RoleSuperAdmin || r == RoleAdmin
}

func (r Role) CanManageRoles() bool {
	return r == RoleSuperAdmin
}

// RoleRecord grants a role to a user. On-disk size: 8 (discriminator) +
// 32 + 1 + 32 + 8 = 81 bytes.
type RoleRecord struct {
	User      solana.PublicKey // 32 bytes
	Role      Role             // 1 byte
	GrantedBy solana.PublicKey // 32 bytes
	GrantedAt int64            // 8 bytes
}

func (r *RoleRecord) Marshal() ([]byte, error) {
	return marshalRecord(discRole, r)
}

func UnmarshalRoleRecord(data []byte) (*RoleRecord, error) {
	var r RoleRecord
	if err := unmarshalRecord(discRole, data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
