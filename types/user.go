package types

import "time"

// Roles recognized by the authorization guard.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an account in the system.
// Regular members and administrators share this record and are told apart by Role.
type User struct {
	// ID is the unique identifier of the user.
	ID int `json:"id" db:"id"`

	// Name is the user's display name.
	Name string `json:"name" db:"name"`

	// Email is the user's email address. It is unique across all accounts
	// and is the login identifier.
	Email string `json:"email" db:"email"`

	// Bio is an optional free-form profile description.
	Bio string `json:"bio" db:"bio"`

	// Role indicates the user's authorization level ("user" or "admin").
	Role string `json:"role" db:"role"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// This field is never exposed in API responses.
	PasswordHash string `json:"-" db:"password_hash"`

	// CreatedAt is the timestamp when the account was registered.
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// IsAdmin reports whether the user carries the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
