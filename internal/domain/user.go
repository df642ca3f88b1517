package domain

import "time"

// User as exposed to clients. The password hash lives only in the users
// table and in AuthService.
type User struct {
	ID        string    `db:"id" json:"id"`
	Username  string    `db:"username" json:"username"`
	Email     string    `db:"email" json:"email"`
	CreatedAt time.Time `db:"created_at" json:"-"`
}
