package domain

import "time"

// RemindingsMaxLen bounds the free-text remindings note on a profile.
const RemindingsMaxLen = 140

type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string // argon2id encoded
	Remindings   string // free-text note, <= RemindingsMaxLen chars
	LastSeen     time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
