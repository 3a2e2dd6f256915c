package cli

import (
	"context"
	"fmt"
	"strconv"

	"shop-service/client/api"
	"shop-service/client/cart"
	"shop-service/models"
)

func (a *App) listProducts(ctx context.Context) error {
	list, err := a.api.ListProducts(ctx)
	if err != nil {
		a.report(ctx, err)
		return err
	}

	if len(list) == 0 {
		fmt.Fprintln(a.out, "No products yet.")
		return nil
	}
	for _, p := range list {
		printProduct(a, p)
	}
	return nil
}

func (a *App) showProduct(ctx context.Context, args []string) error {
	id, ok := a.productID(args, "show <id>")
	if !ok {
		return nil
	}

	p, err := a.api.GetProduct(ctx, id)
	if err != nil {
		a.report(ctx, err)
		return err
	}

	printProduct(a, *p)
	if p.Description != "" {
		fmt.Fprintln(a.out, "      ", p.Description)
	}
	return nil
}

func (a *App) newProduct(ctx context.Context) error {
	var form api.ProductForm
	fields := []struct {
		label string
		dst   *string
	}{
		{"Name", &form.Name},
		{"Description", &form.Description},
		{"Price", &form.Price},
		{"Image file (empty for none)", &form.ImagePath},
	}
	for _, f := range fields {
		v, err := a.prompt(f.label)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	p, err := a.api.CreateProduct(ctx, form)
	if err != nil {
		a.report(ctx, err)
		return err
	}

	fmt.Fprintf(a.out, "Product #%d created.\n", p.ID)
	return nil
}

func printProduct(a *App, p models.Product) {
	image := "-"
	if p.Image != nil {
		image = *p.Image
	}
	fmt.Fprintf(a.out, "%4d  %-30s %10s  %s\n", p.ID, p.Name, cart.FormatAmount(p.Price), image)
}

// productID parses args[0] as a product id, printing usage when it is
// missing or malformed.
func (a *App) productID(args []string, usage string) (int64, bool) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage:", usage)
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		fmt.Fprintln(a.out, "Invalid product id:", args[0])
		return 0, false
	}
	return id, true
}
