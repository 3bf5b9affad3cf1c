// internal/screenplay/target_test.go
package screenplay_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/screenplay-cli/internal/mocks"
	"github.com/xkilldash9x/screenplay-cli/internal/screenplay"
)

func TestTarget_ConstructionIsLazy(t *testing.T) {
	driver := &mocks.MockDriver{}
	screenplay.Named("usuario").WhoCan(screenplay.BrowseTheWebWith(driver))

	target := screenplay.The("login button").LocatedBy(screenplay.ByID("login-button"))
	_ = screenplay.Click(target)
	_ = screenplay.VisibilityOf(target)
	_ = screenplay.NewTask("log in", screenplay.Enter("standard_user").Into(target))

	driver.AssertNotCalled(t, "Locate", mock.Anything, mock.Anything)
	driver.AssertNotCalled(t, "LocateAll", mock.Anything, mock.Anything)
}

func TestTarget_Describe(t *testing.T) {
	target := screenplay.The("login button").LocatedBy(screenplay.ByXPath("//input[@id='login-button']"))
	assert.Equal(t, "login button", target.Name())
	assert.Equal(t, "the login button", target.String())
	assert.Equal(t, []screenplay.Selector{{Kind: screenplay.KindXPath, Value: "//input[@id='login-button']"}}, target.Selectors())
	assert.Equal(t, "xpath=//input[@id='login-button']", target.Selectors()[0].String())
}

func TestTarget_LocatedByCopiesSelectors(t *testing.T) {
	selectors := []screenplay.Selector{screenplay.ByID("a")}
	target := screenplay.The("thing").LocatedBy(selectors...)
	selectors[0] = screenplay.ByID("mutated")

	assert.Equal(t, "a", target.Selectors()[0].Value)

	returned := target.Selectors()
	returned[0] = screenplay.ByID("mutated too")
	assert.Equal(t, "a", target.Selectors()[0].Value)
}

func TestTarget_Of(t *testing.T) {
	template := screenplay.The("{0} add button").LocatedBy(
		screenplay.ByCSS("[data-test='add-to-cart-{0}']"),
		screenplay.ByXPath("//div[text()='{1}']"),
	)

	item := template.Of("sauce-labs-backpack", "Sauce Labs Backpack")

	assert.Equal(t, "sauce-labs-backpack add button", item.Name())
	assert.Equal(t, "[data-test='add-to-cart-sauce-labs-backpack']", item.Selectors()[0].Value)
	assert.Equal(t, "//div[text()='Sauce Labs Backpack']", item.Selectors()[1].Value)
	assert.Equal(t, "[data-test='add-to-cart-{0}']", template.Selectors()[0].Value, "the template is untouched")
}

func TestTarget_ResolveOne(t *testing.T) {
	ctx := context.Background()

	t.Run("falls through to the next candidate", func(t *testing.T) {
		driver := newFakeDriver()
		el := &fakeElement{visible: true}
		driver.put(screenplay.ByCSS(".inventory_list"), el)
		actor := screenplay.Named("usuario").WhoCan(screenplay.BrowseTheWebWith(driver))

		target := screenplay.The("inventory").LocatedBy(screenplay.ByID("inventory_container"), screenplay.ByCSS(".inventory_list"))
		got, err := target.ResolveOne(ctx, actor)
		require.NoError(t, err)
		assert.Same(t, el, got)
		assert.Equal(t, []string{"id=inventory_container", "css=.inventory_list"}, driver.lookups())
	})

	t.Run("stops at the first matching candidate", func(t *testing.T) {
		driver := newFakeDriver()
		driver.put(screenplay.ByID("a"), &fakeElement{})
		actor := screenplay.Named("usuario").WhoCan(screenplay.BrowseTheWebWith(driver))

		_, err := screenplay.The("a").LocatedBy(screenplay.ByID("a"), screenplay.ByID("b")).ResolveOne(ctx, actor)
		require.NoError(t, err)
		assert.Equal(t, []string{"id=a"}, driver.lookups())
	})

	t.Run("no match wraps ErrElementNotFound", func(t *testing.T) {
		actor := screenplay.Named("usuario").WhoCan(screenplay.BrowseTheWebWith(newFakeDriver()))
		_, err := screenplay.The("ghost").LocatedBy(screenplay.ByID("ghost")).ResolveOne(ctx, actor)
		assert.ErrorIs(t, err, screenplay.ErrElementNotFound)
		assert.Contains(t, err.Error(), "the ghost")
	})

	t.Run("no selectors", func(t *testing.T) {
		actor := screenplay.Named("usuario").WhoCan(screenplay.BrowseTheWebWith(newFakeDriver()))
		_, err := screenplay.The("nothing").ResolveOne(ctx, actor)
		assert.ErrorIs(t, err, screenplay.ErrElementNotFound)
	})

	t.Run("driver errors are surfaced", func(t *testing.T) {
		driver := newFakeDriver()
		driver.locateErr = errors.New("target closed")
		actor := screenplay.Named("usuario").WhoCan(screenplay.BrowseTheWebWith(driver))

		_, err := screenplay.The("a").LocatedBy(screenplay.ByID("a")).ResolveOne(ctx, actor)
		assert.ErrorContains(t, err, "target closed")
	})

	t.Run("missing ability", func(t *testing.T) {
		_, err := screenplay.The("a").LocatedBy(screenplay.ByID("a")).ResolveOne(ctx, screenplay.Named("usuario"))
		var missing *screenplay.MissingAbilityError
		assert.ErrorAs(t, err, &missing)
	})
}

func TestTarget_ResolveAll(t *testing.T) {
	ctx := context.Background()

	t.Run("returns every element of the first non-empty candidate", func(t *testing.T) {
		driver := newFakeDriver()
		a, b := &fakeElement{}, &fakeElement{}
		driver.put(screenplay.ByCSS(".inventory_item"), a, b)
		driver.put(screenplay.ByXPath("//div[@class='inventory_item']"), &fakeElement{})
		actor := screenplay.Named("usuario").WhoCan(screenplay.BrowseTheWebWith(driver))

		target := screenplay.The("products").LocatedBy(screenplay.ByCSS(".inventory_item"), screenplay.ByXPath("//div[@class='inventory_item']"))
		els, err := target.ResolveAll(ctx, actor)
		require.NoError(t, err)
		assert.Equal(t, []screenplay.Element{a, b}, els)
	})

	t.Run("no match is an empty slice", func(t *testing.T) {
		actor := screenplay.Named("usuario").WhoCan(screenplay.BrowseTheWebWith(newFakeDriver()))
		els, err := screenplay.The("products").LocatedBy(screenplay.ByCSS(".inventory_item")).ResolveAll(ctx, actor)
		require.NoError(t, err)
		assert.NotNil(t, els)
		assert.Empty(t, els)
	})

	t.Run("repeated resolution gives the same outcome", func(t *testing.T) {
		driver := newFakeDriver()
		driver.put(screenplay.ByCSS(".inventory_item"), &fakeElement{visible: false}, &fakeElement{visible: true})
		actor := screenplay.Named("usuario").WhoCan(screenplay.BrowseTheWebWith(driver))
		target := screenplay.The("products").LocatedBy(screenplay.ByID("missing"), screenplay.ByCSS(".inventory_item"))

		first, err := target.ResolveAll(ctx, actor)
		require.NoError(t, err)
		second, err := target.ResolveAll(ctx, actor)
		require.NoError(t, err)
		require.Len(t, second, len(first))
		for i := range first {
			v1, _ := first[i].Visible(ctx)
			v2, _ := second[i].Visible(ctx)
			assert.Equal(t, v1, v2)
		}

		q := screenplay.VisibilityOfAll(target)
		assert.Equal(t, screenplay.AsksFor(ctx, actor, q), screenplay.AsksFor(ctx, actor, q))
		assert.False(t, screenplay.AsksFor(ctx, actor, q), "the first match is hidden")

		// Only lookups reached the driver: no navigation, no interaction.
		assert.Empty(t, driver.visited)
		var want []string
		for range 5 {
			want = append(want, "id=missing", "css=.inventory_item")
		}
		assert.Equal(t, want, driver.lookups())
		for _, el := range first {
			fe := el.(*fakeElement)
			assert.Zero(t, fe.clicks)
			assert.Empty(t, fe.setCalls)
		}
	})

	t.Run("driver error falls through to the next candidate", func(t *testing.T) {
		driver := &mocks.MockDriver{}
		el := &fakeElement{visible: true}
		driver.On("LocateAll", mock.Anything, screenplay.ByCSS(".a")).Return(nil, errors.New("transient"))
		driver.On("LocateAll", mock.Anything, screenplay.ByCSS(".b")).Return([]screenplay.Element{el}, nil)
		actor := screenplay.Named("usuario").WhoCan(screenplay.BrowseTheWebWith(driver))

		els, err := screenplay.The("x").LocatedBy(screenplay.ByCSS(".a"), screenplay.ByCSS(".b")).ResolveAll(ctx, actor)
		require.NoError(t, err)
		assert.Equal(t, []screenplay.Element{el}, els)
		driver.AssertExpectations(t)
	})

	t.Run("driver error with no later match is returned", func(t *testing.T) {
		driver := &mocks.MockDriver{}
		driver.On("LocateAll", mock.Anything, screenplay.ByCSS(".a")).Return(nil, errors.New("transient"))
		driver.On("LocateAll", mock.Anything, screenplay.ByCSS(".b")).Return([]screenplay.Element{}, nil)
		actor := screenplay.Named("usuario").WhoCan(screenplay.BrowseTheWebWith(driver))

		_, err := screenplay.The("x").LocatedBy(screenplay.ByCSS(".a"), screenplay.ByCSS(".b")).ResolveAll(ctx, actor)
		assert.ErrorContains(t, err, "resolving all of the x by css=.a: transient")
		driver.AssertExpectations(t)
	})

	t.Run("driver error", func(t *testing.T) {
		driver := &mocks.MockDriver{}
		driver.On("LocateAll", mock.Anything, screenplay.ByCSS(".x")).Return(nil, errors.New("session lost"))
		actor := screenplay.Named("usuario").WhoCan(screenplay.BrowseTheWebWith(driver))

		_, err := screenplay.The("x").LocatedBy(screenplay.ByCSS(".x")).ResolveAll(ctx, actor)
		assert.ErrorContains(t, err, "session lost")
		driver.AssertExpectations(t)
	})
}

func TestInteractions(t *testing.T) {
	ctx := context.Background()
	field := screenplay.The("password field").LocatedBy(screenplay.ByID("password"))
	button := screenplay.The("login button").LocatedBy(screenplay.ByID("login-button"))

	t.Run("enter replaces the value", func(t *testing.T) {
		el := &mocks.MockElement{}
		el.On("SetValue", mock.Anything, "secret_sauce").Return(nil).Once()
		driver := &mocks.MockDriver{}
		driver.On("Locate", mock.Anything, screenplay.ByID("password")).Return(el, nil)
		actor := screenplay.Named("usuario").WhoCan(screenplay.BrowseTheWebWith(driver))

		require.NoError(t, actor.AttemptsTo(ctx, screenplay.Enter("secret_sauce").Into(field)))
		el.AssertExpectations(t)
	})

	t.Run("masked values stay out of descriptions", func(t *testing.T) {
		masked := screenplay.Enter("secret_sauce").Masked().Into(field)
		plain := screenplay.Enter("standard_user").Into(field)

		assert.Equal(t, "enter ******** into the password field", masked.String())
		assert.NotContains(t, masked.String(), "secret_sauce")
		assert.Equal(t, `enter "standard_user" into the password field`, plain.String())
	})

	t.Run("click", func(t *testing.T) {
		el := &fakeElement{}
		driver := newFakeDriver()
		driver.put(screenplay.ByID("login-button"), el)
		actor := screenplay.Named("usuario").WhoCan(screenplay.BrowseTheWebWith(driver))

		interaction := screenplay.Click(button)
		assert.Equal(t, "click on the login button", interaction.String())
		require.NoError(t, actor.AttemptsTo(ctx, interaction))
		assert.Equal(t, 1, el.clicks)
	})

	t.Run("click on a missing element fails", func(t *testing.T) {
		actor := screenplay.Named("usuario").WhoCan(screenplay.BrowseTheWebWith(newFakeDriver()))
		err := actor.AttemptsTo(ctx, screenplay.Click(button))
		assert.ErrorIs(t, err, screenplay.ErrElementNotFound)
		var execErr *screenplay.ActivityExecutionError
		require.ErrorAs(t, err, &execErr)
		assert.Equal(t, "click on the login button", execErr.Activity)
	})

	t.Run("open navigates", func(t *testing.T) {
		driver := newFakeDriver()
		actor := screenplay.Named("usuario").WhoCan(screenplay.BrowseTheWebWith(driver))
		require.NoError(t, actor.AttemptsTo(ctx, screenplay.Open("https://www.saucedemo.com/")))
		assert.Equal(t, []string{"https://www.saucedemo.com/"}, driver.visited)
	})

	t.Run("interaction without a body", func(t *testing.T) {
		actor := screenplay.Named("usuario")
		err := actor.AttemptsTo(ctx, screenplay.NewInteraction("nothing", nil))
		assert.ErrorContains(t, err, "has nothing to perform")
	})
}

func TestTask_Activities(t *testing.T) {
	var log []string
	a := record(&log, "a")
	task := screenplay.NewTask("task", a)

	activities := task.Activities()
	require.Len(t, activities, 1)
	activities[0] = record(&log, "b")
	assert.Equal(t, "a", task.Activities()[0].(screenplay.Interaction).String())
	assert.Equal(t, "task", task.String())

	ptr := &task
	require.NoError(t, screenplay.Named("usuario").AttemptsTo(context.Background(), ptr))
	assert.Equal(t, []string{"a"}, log)
}
