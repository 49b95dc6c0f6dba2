package auth

// Role define los roles de usuario soportados por DailyPawie.
type Role string

const (
	RoleAdmin    Role = "admin"
	RolePetOwner Role = "petOwner"
	RolePetCarer Role = "petCarer"
)

// Claims representa la información extraída del token de sesión.
type Claims struct {
	UserID string
	Email  string
	Role   Role
}
