// internal/saucedemo/tasks.go
package saucedemo

import (
	"github.com/xkilldash9x/screenplay-cli/internal/screenplay"
)

// DefaultURL is the public SauceDemo site.
const DefaultURL = "https://www.saucedemo.com/"

// Login types the user's credentials and submits the form. The password is
// masked in every report.
func Login(user User) screenplay.Task {
	return screenplay.NewTask("{0} logs in as "+user.Username,
		screenplay.Enter(user.Username).Into(LoginPage.UsernameField),
		screenplay.Enter(user.Password).Masked().Into(LoginPage.PasswordField),
		screenplay.Click(LoginPage.LoginButton),
	)
}

// OpenTheApplication navigates to baseURL, or DefaultURL when it is empty.
func OpenTheApplication(baseURL string) screenplay.Task {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	return screenplay.NewTask("{0} opens SauceDemo", screenplay.Open(baseURL))
}
