package entity

import "time"

// Roles válidos para User.
const (
	RoleAdminA   = "admin_a"
	RoleAdminB   = "admin_b"
	RoleOperador = "operador"
	RoleLector   = "lector"
)

// Grupos de roles usados por el RBAC de rutas.
var (
	AdminRoles  = []string{RoleAdminA, RoleAdminB}
	EditorRoles = []string{RoleAdminA, RoleAdminB, RoleOperador}
	AllRoles    = []string{RoleAdminA, RoleAdminB, RoleOperador, RoleLector}
)

// ValidRole indica si el rol pertenece al conjunto cerrado.
func ValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdminRole admin_a o admin_b.
func IsAdminRole(role string) bool {
	return role == RoleAdminA || role == RoleAdminB
}

// User representa un usuario del sistema.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // admin_a, admin_b, operador, lector
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CanEditBilling emitir comprobantes y editar clientes.
func (u *User) CanEditBilling() bool {
	return u.Role == RoleAdminA || u.Role == RoleAdminB || u.Role == RoleOperador
}

// CanDeleteHistory borrar comprobantes y clientes.
func (u *User) CanDeleteHistory() bool { return IsAdminRole(u.Role) }

// CanManageUsers alta, baja y cambio de rol de usuarios.
func (u *User) CanManageUsers() bool { return IsAdminRole(u.Role) }

// CanExport exportar reportes.
func (u *User) CanExport() bool { return u.CanEditBilling() }
