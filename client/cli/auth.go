package cli

import (
	"context"
	"errors"
	"fmt"

	"shop-service/client/api"
)

func (a *App) register(ctx context.Context) error {
	name, err := a.prompt("Name")
	if err != nil {
		return err
	}
	email, err := a.prompt("Email")
	if err != nil {
		return err
	}
	password, err := a.promptPassword("Password")
	if err != nil {
		return err
	}

	if _, err := a.api.Register(ctx, name, email, password); err != nil {
		a.report(ctx, err)
		return err
	}

	fmt.Fprintln(a.out, "Account created. You can now log in.")
	return nil
}

func (a *App) login(ctx context.Context) error {
	email, err := a.prompt("Email")
	if err != nil {
		return err
	}
	password, err := a.promptPassword("Password")
	if err != nil {
		return err
	}

	resp, err := a.api.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			fmt.Fprintln(a.out, "Invalid email or password.")
		} else {
			a.report(ctx, err)
		}
		return err
	}

	a.startSession(ctx, resp.Token, resp.User)
	fmt.Fprintf(a.out, "Logged in as %s.\n", resp.User.Name)
	return nil
}

func (a *App) logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	a.dropSession(ctx)
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) me(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}

	me, err := a.api.Me(ctx, a.token)
	if err != nil {
		a.report(ctx, err)
		return err
	}

	a.user = me
	fmt.Fprintf(a.out, "#%d %s <%s>\n", me.ID, me.Name, me.Email)
	return nil
}
