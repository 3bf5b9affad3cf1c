// internal/saucedemo/questions.go
package saucedemo

import (
	"context"

	"github.com/xkilldash9x/screenplay-cli/internal/screenplay"
)

// InventoryPageIsVisible is true when the inventory container is shown.
func InventoryPageIsVisible() screenplay.Question[bool] {
	return screenplay.VisibilityOf(InventoryPage.Container)
}

// InventoryPageToTheUser reads better in some step sentences; it asks the
// same thing as InventoryPageIsVisible.
func InventoryPageToTheUser() screenplay.Question[bool] {
	return InventoryPageIsVisible()
}

// InventoryPageViewedBy asks actor whether the inventory page is visible.
func InventoryPageViewedBy(ctx context.Context, actor *screenplay.Actor) bool {
	return screenplay.AsksFor(ctx, actor, InventoryPageIsVisible())
}

// ProductsListAreVisible is true when at least one product is listed and the
// first one is visible.
func ProductsListAreVisible() screenplay.Question[bool] {
	return screenplay.VisibilityOfAll(InventoryPage.Items)
}

// LoginErrorIsVisible is true when the login form shows an error.
func LoginErrorIsVisible() screenplay.Question[bool] {
	return screenplay.VisibilityOf(LoginPage.ErrorMessage)
}

// LoginErrorText is the text of the login error, or "" when there is none.
func LoginErrorText() screenplay.Question[string] {
	return screenplay.TextOf(LoginPage.ErrorMessage)
}

// ProductCount is the number of listed products.
func ProductCount() screenplay.Question[int] {
	return screenplay.CountOf(InventoryPage.Items)
}
