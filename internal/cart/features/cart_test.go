package features

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/cucumber/godog"
	"github.com/nikolayk812/figurestore/internal/cart"
	"github.com/nikolayk812/figurestore/internal/catalog"
	"github.com/nikolayk812/figurestore/internal/snapshot"
	"github.com/shopspring/decimal"
)

type cartTestContext struct {
	catalog   *catalog.Store
	snapshots *snapshot.Memory
	svc       *cart.Service
	err       error
}

func (c *cartTestContext) newService() error {
	svc, err := cart.New(c.catalog, c.snapshots, cart.WithCheckoutLatency(0))
	if err != nil {
		return err
	}
	c.svc = svc
	return nil
}

func (c *cartTestContext) theSeededCatalog() error {
	c.catalog = catalog.NewSeeded()
	c.snapshots = snapshot.NewMemory()
	return nil
}

func (c *cartTestContext) anEmptyCart() error {
	return c.newService()
}

func (c *cartTestContext) productHasStock(ctx context.Context, id int64, stock int) error {
	return c.catalog.UpdateStock(ctx, id, stock)
}

func (c *cartTestContext) iAddProductToTheCartTimes(ctx context.Context, id int64, times int) error {
	p, err := c.catalog.GetByID(ctx, id)
	if err != nil {
		return err
	}

	for range times {
		c.err = c.svc.AddToCart(ctx, p)
		if c.err != nil {
			return nil
		}
	}
	return nil
}

func (c *cartTestContext) iAddProductToTheCart(ctx context.Context, id int64) error {
	return c.iAddProductToTheCartTimes(ctx, id, 1)
}

func (c *cartTestContext) iRemoveProductFromTheCart(ctx context.Context, id int64) error {
	c.err = c.svc.RemoveFromCart(ctx, id)
	return nil
}

func (c *cartTestContext) iCheckOut(ctx context.Context) error {
	c.err = c.svc.Checkout(ctx)
	return nil
}

func (c *cartTestContext) iReloadTheCart(ctx context.Context) error {
	if err := c.newService(); err != nil {
		return err
	}
	return c.svc.Load(ctx)
}

func (c *cartTestContext) theLastActionSucceeds() error {
	if c.err != nil {
		return fmt.Errorf("expected success, got %v", c.err)
	}
	return nil
}

func (c *cartTestContext) theLastActionFailsWith(msg string) error {
	if c.err == nil {
		return errors.New("expected an error, got none")
	}
	if !strings.Contains(c.err.Error(), msg) {
		return fmt.Errorf("expected error containing %q, got %q", msg, c.err.Error())
	}
	return nil
}

func (c *cartTestContext) theCartHoldsOfProduct(quantity int, id int64) error {
	if got := c.svc.ItemQuantity(id); got != quantity {
		return fmt.Errorf("expected quantity %d of product %d, got %d", quantity, id, got)
	}
	return nil
}

func (c *cartTestContext) theCartIsEmpty() error {
	if got := c.svc.TotalItems(); got != 0 {
		return fmt.Errorf("expected empty cart, got %d items", got)
	}
	return nil
}

func (c *cartTestContext) theTotalPriceIs(want string) error {
	got := c.svc.TotalPrice().Amount
	if !decimal.RequireFromString(want).Equal(got) {
		return fmt.Errorf("expected total %s, got %s", want, got)
	}
	return nil
}

func (c *cartTestContext) productShowsStock(ctx context.Context, id int64, stock int) error {
	p, err := c.catalog.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p.Stock != stock {
		return fmt.Errorf("expected stock %d for product %d, got %d", stock, id, p.Stock)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &cartTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		*tc = cartTestContext{}
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^the seeded catalog$`, tc.theSeededCatalog)
	ctx.Step(`^an empty cart$`, tc.anEmptyCart)
	ctx.Step(`^the catalog sets product (\d+) stock to (\d+)$`, tc.productHasStock)

	// When steps
	ctx.Step(`^I add product (\d+) to the cart (\d+) times$`, tc.iAddProductToTheCartTimes)
	ctx.Step(`^I add product (\d+) to the cart$`, tc.iAddProductToTheCart)
	ctx.Step(`^I remove product (\d+) from the cart$`, tc.iRemoveProductFromTheCart)
	ctx.Step(`^I check out$`, tc.iCheckOut)
	ctx.Step(`^I reload the cart$`, tc.iReloadTheCart)

	// Then steps
	ctx.Step(`^product (\d+) has stock (\d+)$`, tc.productShowsStock)
	ctx.Step(`^the last action succeeds$`, tc.theLastActionSucceeds)
	ctx.Step(`^the last action fails with "([^"]*)"$`, tc.theLastActionFailsWith)
	ctx.Step(`^the cart holds (\d+) of product (\d+)$`, tc.theCartHoldsOfProduct)
	ctx.Step(`^the cart is empty$`, tc.theCartIsEmpty)
	ctx.Step(`^the total price is "([^"]*)"$`, tc.theTotalPriceIs)
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
