package multas

import "strings"

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleFinanceiro Role = "financeiro"
	RoleRH         Role = "rh"
)

func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleFinanceiro:
		return RoleFinanceiro, true
	case RoleRH:
		return RoleRH, true
	}
	return "", false
}

// Permissions is the fixed capability set of a role.
type Permissions struct {
	CanViewDetails    bool `json:"canViewDetails"`
	CanAccessBoleto   bool `json:"canAccessBoleto"`
	CanAccessConsulta bool `json:"canAccessConsulta"`
	CanMarkAsPaid     bool `json:"canMarkAsPaid"`
	CanMarkAsComplete bool `json:"canMarkAsComplete"`
	CanEdit           bool `json:"canEdit"`
	CanDelete         bool `json:"canDelete"`
	CanCreate         bool `json:"canCreate"`
	CanViewIndicacao  bool `json:"canViewIndicacao"`
}

var rolePermissions = map[Role]Permissions{
	RoleAdmin: {
		CanViewDetails:    true,
		CanAccessBoleto:   true,
		CanAccessConsulta: true,
		CanMarkAsPaid:     true,
		CanMarkAsComplete: true,
		CanEdit:           true,
		CanDelete:         true,
		CanCreate:         true,
		CanViewIndicacao:  true,
	},
	RoleFinanceiro: {
		CanViewDetails:    true,
		CanAccessBoleto:   true,
		CanAccessConsulta: true,
		CanMarkAsPaid:     true,
	},
	RoleRH: {
		CanViewDetails:    true,
		CanMarkAsComplete: true,
		CanViewIndicacao:  true,
	},
}

// PermissionsFor returns the capability set of role. Unknown roles get nothing.
func PermissionsFor(role Role) Permissions {
	return rolePermissions[role]
}

// Allows reports whether the capability set covers the given action.
func (p Permissions) Allows(a Action) bool {
	switch a {
	case ActionCreate:
		return p.CanCreate
	case ActionEdit:
		return p.CanEdit
	case ActionDelete:
		return p.CanDelete
	case ActionMarkPaid, ActionUnmarkPaid:
		return p.CanMarkAsPaid
	case ActionMarkComplete, ActionUndoComplete:
		return p.CanMarkAsComplete
	case ActionIndicate, ActionUndoIndication, ActionRefuseIndication:
		return p.CanViewIndicacao && p.CanMarkAsComplete
	}
	return false
}
