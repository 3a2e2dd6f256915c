package cli

import (
	"context"
	"fmt"
	"strings"
)

const (
	helpLoggedOut = "Commands: register, login, products, show <id>, newproduct, add <id>, qty <id> <n>, remove <id>, cart, clear, exit"
	helpLoggedIn  = "Commands: me, logout, products, show <id>, newproduct, add <id>, qty <id> <n>, remove <id>, cart, clear, checkout, exit"
)

func (a *App) status() string {
	var parts []string
	if a.user != nil {
		parts = append(parts, a.user.Name)
	} else if a.isLoggedIn() {
		parts = append(parts, "logged in")
	}
	if n := a.cart.ItemsCount(); n > 0 {
		parts = append(parts, fmt.Sprintf("cart: %d", n))
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, ", ") + ") "
}

// repl reads commands until exit or end of input. Command errors are
// reported by the commands themselves.
func (a *App) repl(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(a.out, "shop %s> ", a.status())

		line, err := a.readLine()
		if err != nil {
			fmt.Fprintln(a.out)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd, args := parts[0], parts[1:]
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(a.out, helpLoggedIn)
			} else {
				fmt.Fprintln(a.out, helpLoggedOut)
			}
		case "register":
			_ = a.register(ctx)
		case "login":
			_ = a.login(ctx)
		case "logout":
			_ = a.logout(ctx)
		case "me":
			_ = a.me(ctx)
		case "products", "list":
			_ = a.listProducts(ctx)
		case "show":
			_ = a.showProduct(ctx, args)
		case "newproduct":
			_ = a.newProduct(ctx)
		case "add":
			_ = a.addToCart(ctx, args)
		case "qty":
			_ = a.setQuantity(args)
		case "remove", "rm":
			_ = a.removeFromCart(args)
		case "cart":
			a.printCart()
		case "clear":
			_ = a.clearCart()
		case "checkout":
			_ = a.checkout()
		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return
		default:
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}
	}
}
