package entity

// Roles válidos para User.
const (
	RoleUsuario = "usuario"
	RoleAdmin   = "admin"
)

// User representa un usuario del sistema.
type User struct {
	ID           int64
	Username     string
	PasswordHash string // argon2id (o bcrypt heredado), nunca la contraseña en claro
	Role         string // usuario, admin
}

// IsAdmin indica si el usuario puede ver y reportar sobre todas las facturas.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
