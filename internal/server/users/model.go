package users

import "time"

type User struct {
	ID              string
	FullName        string
	Phone           string
	Email           string
	Referrer        string
	PasswordHash    []byte
	WithdrawAddress string
	OTP             string
	Verified        bool
	CreatedAt       time.Time
}

// Referral is a downline member together with its distance from the root.
type Referral struct {
	User  *User
	Level int
}
