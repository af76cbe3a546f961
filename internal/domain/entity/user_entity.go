package entity

import (
	"time"
)

// User is an account. Password holds the bcrypt hash and is never serialized.
// Reset and confirmation tokens are stored as SHA-256 hex digests.
type User struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	Email               string     `json:"email"`
	Role                Role       `json:"role"`
	Password            string     `json:"-"`
	ResetPasswordToken  *string    `json:"-"`
	ResetPasswordExpire *time.Time `json:"-"`
	ConfirmEmailToken   *string    `json:"-"`
	IsEmailConfirmed    bool       `json:"isEmailConfirmed"`
	CreatedAt           time.Time  `json:"createdAt"`
}

// ClearReset drops any pending password reset.
func (u *User) ClearReset() {
	u.ResetPasswordToken = nil
	u.ResetPasswordExpire = nil
}
