package domain

import "time"

// User is a registered account. Password holds the bcrypt hash, never the plaintext.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"created_at"`
}
