package entity

const (
	RoleMember = "member"
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
)

type User struct {
	Base
	Name         string `db:"name"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	Role         string `db:"role"`
}
