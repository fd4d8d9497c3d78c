package models

import "time"

// AdminUser is a back-office operator. Usernames are stored lowercase so
// uniqueness is case-insensitive.
type AdminUser struct {
	Username  string     `json:"username" db:"username"`
	FullName  string     `json:"full_name" db:"full_name"`
	LastLogin *time.Time `json:"last_login,omitempty" db:"last_login"`
}
