package model

import "time"

// MaxUsernameLength bounds usernames at registration time.
const MaxUsernameLength = 25

// Player is the persisted account record. Username is the identity key:
// unique, immutable, case-sensitive.
type Player struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"` // bcrypt verifier, never the plaintext
	Score        int64     `json:"score"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity is the (username, role) pair a session resolves to. The role is a
// snapshot captured at login time.
type Identity struct {
	Username string
	IsAdmin  bool
}
