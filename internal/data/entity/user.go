package entity

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type User struct {
	Base
	Name         string   `db:"name"`
	Email        string   `db:"email"`
	PasswordHash string   `db:"password_hash"`
	Photo        *string  `db:"photo"`
	Role         UserRole `db:"role"`
	IsActive     bool     `db:"is_active"`
}
