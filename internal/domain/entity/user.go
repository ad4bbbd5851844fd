package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin  = "ADMIN"  // ve y opera precintos de todas las sedes
	RoleGestor = "GESTOR" // limitado a los precintos de su propia sede
)

// User representa un usuario del sistema (pertenece a exactamente una sede).
type User struct {
	ID           string
	Username     string
	FullName     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // ADMIN, GESTOR
	City         string // sede del usuario
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CanAccessCity indica si el usuario puede ver/operar precintos de la sede dada.
func (u *User) CanAccessCity(city string) bool {
	return u.Role == RoleAdmin || u.City == city
}
