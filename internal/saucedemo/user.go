// internal/saucedemo/user.go
package saucedemo

// User is a set of SauceDemo credentials.
type User struct {
	Username string
	Password string
}

// StandardUser is the account SauceDemo accepts without restrictions.
func StandardUser() User {
	return User{Username: "standard_user", Password: "secret_sauce"}
}

// LockedOutUser is the account SauceDemo always rejects.
func LockedOutUser() User {
	return User{Username: "locked_out_user", Password: "secret_sauce"}
}

// String never includes the password.
func (u User) String() string { return u.Username }
