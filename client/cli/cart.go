package cli

import (
	"context"
	"fmt"
	"strconv"

	"shop-service/client/cart"
)

func (a *App) addToCart(ctx context.Context, args []string) error {
	id, ok := a.productID(args, "add <id>")
	if !ok {
		return nil
	}

	p, err := a.api.GetProduct(ctx, id)
	if err != nil {
		a.report(ctx, err)
		return err
	}

	if err := a.cart.Add(*p); err != nil {
		a.warnNotSaved(err)
	}
	fmt.Fprintf(a.out, "Added %s. Cart: %d item(s).\n", p.Name, a.cart.ItemsCount())
	return nil
}

func (a *App) setQuantity(args []string) error {
	id, ok := a.productID(args, "qty <id> <quantity>")
	if !ok {
		return nil
	}
	if len(args) < 2 {
		fmt.Fprintln(a.out, "Usage: qty <id> <quantity>")
		return nil
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		fmt.Fprintln(a.out, "Invalid quantity:", args[1])
		return nil
	}

	if err := a.cart.UpdateQuantity(id, n); err != nil {
		a.warnNotSaved(err)
	}
	a.printCart()
	return nil
}

func (a *App) removeFromCart(args []string) error {
	id, ok := a.productID(args, "remove <id>")
	if !ok {
		return nil
	}
	if err := a.cart.Remove(id); err != nil {
		a.warnNotSaved(err)
	}
	a.printCart()
	return nil
}

func (a *App) clearCart() error {
	if err := a.cart.Clear(); err != nil {
		a.warnNotSaved(err)
	}
	fmt.Fprintln(a.out, "Cart cleared.")
	return nil
}

func (a *App) printCart() {
	items := a.cart.Items()
	if len(items) == 0 {
		fmt.Fprintln(a.out, "Your cart is empty.")
		return
	}

	for _, it := range items {
		line := it.Product.Price * float64(it.Quantity)
		fmt.Fprintf(a.out, "%4d  %-30s x%-3d %10s\n", it.Product.ID, it.Product.Name, it.Quantity, cart.FormatAmount(line))
	}
	fmt.Fprintf(a.out, "Items: %d  Total: %s\n", a.cart.ItemsCount(), cart.FormatAmount(a.cart.Total()))
}

func (a *App) checkout() error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Log in to check out.")
		return nil
	}
	if a.cart.ItemsCount() == 0 {
		fmt.Fprintln(a.out, "Your cart is empty.")
		return nil
	}
	fmt.Fprintf(a.out, "Total due: %s. Payment is not implemented yet.\n", cart.FormatAmount(a.cart.Total()))
	return nil
}

func (a *App) warnNotSaved(err error) {
	fmt.Fprintln(a.out, "Warning: the cart could not be saved:", err)
}
