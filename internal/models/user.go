package models

// UserRole mirrors domain.UserRole for storage.
type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN"
)

// User is the storage representation of an account holder.
type User struct {
	UserID       string
	Name         string
	Email        string
	PasswordHash string
	Role         UserRole
	AuditFields
}
