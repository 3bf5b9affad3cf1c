// internal/saucedemo/pages.go
package saucedemo

import "github.com/xkilldash9x/screenplay-cli/internal/screenplay"

// LoginPage maps the SauceDemo login screen.
var LoginPage = struct {
	UsernameField screenplay.Target
	PasswordField screenplay.Target
	LoginButton   screenplay.Target
	ErrorMessage  screenplay.Target
}{
	UsernameField: screenplay.The("username field").
		LocatedBy(screenplay.ByID("user-name"), screenplay.ByXPath("//input[@id='user-name']")),
	PasswordField: screenplay.The("password field").
		LocatedBy(screenplay.ByID("password"), screenplay.ByXPath("//input[@id='password']")),
	LoginButton: screenplay.The("login button").
		LocatedBy(screenplay.ByID("login-button"), screenplay.ByXPath("//input[@id='login-button']")),
	ErrorMessage: screenplay.The("login error message").
		LocatedBy(screenplay.ByCSS("[data-test='error'], .error-message-container")),
}

// InventoryPage maps the product listing shown after a successful login.
var InventoryPage = struct {
	Container screenplay.Target
	Items     screenplay.Target
	Title     screenplay.Target
}{
	Container: screenplay.The("inventory container").
		LocatedBy(screenplay.ByID("inventory_container"), screenplay.ByXPath("//div[@class='inventory_list']")),
	Items: screenplay.The("product items").
		LocatedBy(screenplay.ByCSS(".inventory_item"), screenplay.ByXPath("//div[@class='inventory_item']")),
	Title: screenplay.The("page title").
		LocatedBy(screenplay.ByCSS("[data-test='title']"), screenplay.ByCSS(".title")),
}
