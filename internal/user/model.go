package user

import "time"

type User struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never expose the hash in JSON
	CreatedAt    time.Time `json:"created_at"`
}
