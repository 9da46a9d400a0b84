package features

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/cucumber/godog"

	"github.com/donaldgifford/vitam-chat/pkg/cart"
	domain "github.com/donaldgifford/vitam-chat/pkg/types"
)

type cartTestContext struct {
	cart *cart.Cart
}

func (c *cartTestContext) reset() {
	c.cart = cart.New()
}

func (c *cartTestContext) anEmptyCart() error {
	c.reset()
	return nil
}

func (c *cartTestContext) iAddProductPriced(id, price string) error {
	c.cart.Add(domain.Product{ID: id, Name: id, Price: price})
	return nil
}

func (c *cartTestContext) iAddProductNamedPriced(id, name, price string) error {
	c.cart.Add(domain.Product{ID: id, Name: name, Price: price})
	return nil
}

func (c *cartTestContext) iRemoveProduct(id string) error {
	c.cart.Remove(id)
	return nil
}

func (c *cartTestContext) iClearTheCart() error {
	c.cart.Clear()
	return nil
}

func (c *cartTestContext) iOpenTheCart() error {
	c.cart.SetOpen(true)
	return nil
}

func (c *cartTestContext) iToggleTheCart() error {
	c.cart.Toggle()
	return nil
}

func (c *cartTestContext) theCartHasLines(n int) error {
	if got := c.cart.Len(); got != n {
		return fmt.Errorf("expected %d lines, got %d", n, got)
	}
	return nil
}

func (c *cartTestContext) productHasQuantity(id string, qty int) error {
	item, err := c.find(id)
	if err != nil {
		return err
	}
	if item.Quantity != qty {
		return fmt.Errorf("expected quantity %d for %s, got %d", qty, id, item.Quantity)
	}
	return nil
}

func (c *cartTestContext) productIsNamed(id, name string) error {
	item, err := c.find(id)
	if err != nil {
		return err
	}
	if item.Name != name {
		return fmt.Errorf("expected %s to be named %q, got %q", id, name, item.Name)
	}
	return nil
}

func (c *cartTestContext) theCartTotalItemsIs(n int) error {
	if got := c.cart.TotalItems(); got != n {
		return fmt.Errorf("expected %d total items, got %d", n, got)
	}
	return nil
}

func (c *cartTestContext) theCartTotalPriceIs(want float64) error {
	if got := c.cart.TotalPrice(); math.Abs(got-want) > 1e-9 {
		return fmt.Errorf("expected total price %.2f, got %.2f", want, got)
	}
	return nil
}

func (c *cartTestContext) theCartIsOpen() error {
	if !c.cart.IsOpen() {
		return fmt.Errorf("expected cart to be open")
	}
	return nil
}

func (c *cartTestContext) theCartIsClosed() error {
	if c.cart.IsOpen() {
		return fmt.Errorf("expected cart to be closed")
	}
	return nil
}

func (c *cartTestContext) find(id string) (domain.CartItem, error) {
	for _, item := range c.cart.Items() {
		if item.ID == id {
			return item, nil
		}
	}
	return domain.CartItem{}, fmt.Errorf("product %s not in cart", id)
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &cartTestContext{}

	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^an empty cart$`, tc.anEmptyCart)

	// When steps
	ctx.Step(`^I add product "([^"]*)" priced "([^"]*)"$`, tc.iAddProductPriced)
	ctx.Step(`^I add product "([^"]*)" named "([^"]*)" priced "([^"]*)"$`, tc.iAddProductNamedPriced)
	ctx.Step(`^I remove product "([^"]*)"$`, tc.iRemoveProduct)
	ctx.Step(`^I clear the cart$`, tc.iClearTheCart)
	ctx.Step(`^I open the cart$`, tc.iOpenTheCart)
	ctx.Step(`^I toggle the cart$`, tc.iToggleTheCart)

	// Then steps
	ctx.Step(`^the cart has (\d+) lines?$`, tc.theCartHasLines)
	ctx.Step(`^product "([^"]*)" has quantity (\d+)$`, tc.productHasQuantity)
	ctx.Step(`^product "([^"]*)" is named "([^"]*)"$`, tc.productIsNamed)
	ctx.Step(`^the cart total items is (\d+)$`, tc.theCartTotalItemsIs)
	ctx.Step(`^the cart total price is (\d+\.\d+)$`, tc.theCartTotalPriceIs)
	ctx.Step(`^the cart is open$`, tc.theCartIsOpen)
	ctx.Step(`^the cart is closed$`, tc.theCartIsClosed)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"cart.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
