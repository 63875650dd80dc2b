package main

import (
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/nikolayk812/figurestore/internal/catalog"
	"github.com/nikolayk812/figurestore/internal/config"
	"github.com/nikolayk812/figurestore/internal/domain"
	"github.com/nikolayk812/figurestore/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type cli struct {
	configPath string
	app        *app
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:          "figurestore",
		Short:        "Collectible figure storefront: catalog, cart and checkout",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.open(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			c.close()
		},
	}

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "path to a config file")

	root.AddCommand(c.sessionCommands()...)
	root.AddCommand(c.shellCmd())

	return root
}

func (c *cli) open(cmd *cobra.Command) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	logger, err := logging.New(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("logging.New: %w", err)
	}

	c.app, err = newApp(cmd.Context(), cfg, logger)
	if err != nil {
		_ = logger.Sync()
		return fmt.Errorf("newApp: %w", err)
	}

	return nil
}

func (c *cli) close() {
	if c.app == nil {
		return
	}
	c.app.close()
	_ = c.app.logger.Sync()
	c.app = nil
}

// sessionCommands are shared by the root command and the shell.
func (c *cli) sessionCommands() []*cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse the catalog",
	}
	catalogCmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List all products with live stock",
			Args:  cobra.NoArgs,
			RunE:  c.runCatalogList,
		},
		&cobra.Command{
			Use:   "show <id>",
			Short: "Show one product and its neighbours",
			Args:  cobra.ExactArgs(1),
			RunE:  c.runCatalogShow,
		},
	)

	cartCmd := &cobra.Command{
		Use:   "cart",
		Short: "Inspect and change the cart",
	}
	cartCmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show cart lines, stock issues and totals",
			Args:  cobra.NoArgs,
			RunE:  c.runCartShow,
		},
		&cobra.Command{
			Use:   "add <id>",
			Short: "Add one unit of a product",
			Args:  cobra.ExactArgs(1),
			RunE:  c.runCartAdd,
		},
		&cobra.Command{
			Use:   "remove <id>",
			Short: "Remove one unit of a product",
			Args:  cobra.ExactArgs(1),
			RunE:  c.runCartRemove,
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Empty the cart",
			Args:  cobra.NoArgs,
			RunE:  c.runCartClear,
		},
	)

	checkoutCmd := &cobra.Command{
		Use:   "checkout",
		Short: "Buy everything in the cart",
		Args:  cobra.NoArgs,
		RunE:  c.runCheckout,
	}

	return []*cobra.Command{catalogCmd, cartCmd, checkoutCmd}
}

func (c *cli) runCatalogList(cmd *cobra.Command, _ []string) error {
	products, err := c.app.catalog.GetAll(cmd.Context())
	if err != nil {
		return fmt.Errorf("catalog.GetAll: %w", err)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tSTOCK")
	for _, p := range products {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", p.ID, p.Name, c.price(p.Price), stockLabel(p))
	}

	return w.Flush()
}

func (c *cli) runCatalogShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	p, err := c.app.catalog.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("product %d: %w", id, err)
	}

	products, err := c.app.catalog.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("catalog.GetAll: %w", err)
	}

	prev, next, err := catalog.Adjacent(products, id)
	if err != nil {
		return fmt.Errorf("catalog.Adjacent: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (#%d)\n", p.Name, p.ID)
	if p.Description != "" {
		fmt.Fprintln(out, p.Description)
	}
	fmt.Fprintf(out, "price: %s\n", c.price(p.Price))
	fmt.Fprintf(out, "stock: %s\n", stockLabel(p))
	fmt.Fprintf(out, "in cart: %d\n", c.app.cart.ItemQuantity(p.ID))
	fmt.Fprintf(out, "image: %s\n", p.Image)
	fmt.Fprintf(out, "prev: #%d %s | next: #%d %s\n", prev.ID, prev.Name, next.ID, next.Name)

	return nil
}

func (c *cli) runCartShow(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	lines, err := c.app.cart.Lines(ctx)
	if err != nil {
		return fmt.Errorf("cart.Lines: %w", err)
	}

	if len(lines) == 0 {
		fmt.Fprintln(out, "cart is empty")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tQTY\tSTOCK\tSUBTOTAL")
	for _, l := range lines {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%s\n", l.Product.ID, l.Product.Name, l.Quantity, l.Product.Stock,
			l.Subtotal(c.app.cart.Currency()))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	issues, err := c.app.cart.StockIssues(ctx)
	if err != nil {
		return fmt.Errorf("cart.StockIssues: %w", err)
	}
	for _, issue := range issues {
		fmt.Fprintf(out, "stock issue: %s: requested %d, only %d available\n", issue.Name, issue.Requested, issue.Available)
	}

	fmt.Fprintf(out, "items: %d\n", c.app.cart.TotalItems())
	fmt.Fprintf(out, "total: %s\n", c.app.cart.TotalPrice())

	return nil
}

func (c *cli) runCartAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	p, err := c.app.catalog.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("product %d: %w", id, err)
	}

	if err := c.ignoreSaveFailure(c.app.cart.AddToCart(ctx, p)); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "added %s (%d in cart)\n", p.Name, c.app.cart.ItemQuantity(id))
	return nil
}

func (c *cli) runCartRemove(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	if err := c.ignoreSaveFailure(c.app.cart.RemoveFromCart(cmd.Context(), id)); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "product %d: %d in cart\n", id, c.app.cart.ItemQuantity(id))
	return nil
}

func (c *cli) runCartClear(cmd *cobra.Command, _ []string) error {
	if err := c.ignoreSaveFailure(c.app.cart.ClearCart(cmd.Context())); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "cart cleared")
	return nil
}

func (c *cli) runCheckout(cmd *cobra.Command, _ []string) error {
	total := c.app.cart.TotalPrice()
	items := c.app.cart.TotalItems()

	if err := c.ignoreSaveFailure(c.app.cart.Checkout(cmd.Context())); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "purchase complete: %d items, %s\n", items, total)
	return nil
}

// ignoreSaveFailure keeps a mutation that succeeded in memory but could not be persisted.
func (c *cli) ignoreSaveFailure(err error) error {
	if errors.Is(err, domain.ErrSnapshotSave) {
		c.app.logger.Warn("cart changed but not saved", zap.Error(err))
		return nil
	}
	return err
}

func (c *cli) price(minor int64) domain.Money {
	return domain.MoneyFromMinor(minor, c.app.cart.Currency())
}

func stockLabel(p domain.Product) string {
	if !p.InStock() {
		return "sold out"
	}
	return strconv.Itoa(p.Stock)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("product id[%s] is not a positive integer", s)
	}
	return id, nil
}
