package domain

import "time"

// BootstrapAdminUserName is the account created on first startup when no users exist.
const BootstrapAdminUserName = "admin"

// User represents a registered account.
type User struct {
	ID             int64     `json:"_id"`
	UserName       string    `json:"userName"`
	Password       string    `json:"-"` // Plaintext password, only set while registering
	HashedPassword string    `json:"-"` // Never expose password hash in JSON
	Admin          bool      `json:"admin"`
	Created        time.Time `json:"created"`
	Updated        time.Time `json:"updated"`
	CreatedBy      int64     `json:"createdBy"`
	UpdatedBy      int64     `json:"updatedBy"`
}

// Principal is the identity encoded in an access token: the user record without
// any password material.
type Principal struct {
	ID       int64  `json:"_id"`
	UserName string `json:"userName"`
	Admin    bool   `json:"admin"`
}

// Principal returns the token identity for u.
func (u *User) Principal() Principal {
	return Principal{ID: u.ID, UserName: u.UserName, Admin: u.Admin}
}

// Scrubbed returns a copy of u with every password field cleared.
func (u *User) Scrubbed() *User {
	c := *u
	c.Password = ""
	c.HashedPassword = ""
	return &c
}

// CanChangePasswordOf reports whether p may change the password of userID:
// admins may change anyone's, everyone else only their own.
func (p Principal) CanChangePasswordOf(userID int64) bool {
	return p.Admin || p.ID == userID
}
