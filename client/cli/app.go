package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"shop-service/client/api"
	"shop-service/client/cart"
	"shop-service/models"
)

// API is the part of the HTTP client the CLI uses.
type API interface {
	Register(ctx context.Context, name, email, password string) (*models.RegisterResponse, error)
	Login(ctx context.Context, email, password string) (*models.LoginResponse, error)
	Me(ctx context.Context, token string) (*models.Identity, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	CreateProduct(ctx context.Context, form api.ProductForm) (*models.Product, error)
}

// TokenStore persists the session token between runs.
type TokenStore interface {
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
}

type App struct {
	api    API
	tokens TokenStore
	cart   *cart.Store

	in     io.Reader
	reader *bufio.Reader
	out    io.Writer

	token string
	user  *models.Identity
}

func NewApp(client API, tokens TokenStore, c *cart.Store, in io.Reader, out io.Writer) *App {
	return &App{
		api:    client,
		tokens: tokens,
		cart:   c,
		in:     in,
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// Run restores a saved session, if any, and serves commands until exit or
// end of input.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Shop CLI (type 'help' for commands)")
	a.restoreSession(ctx)
	a.repl(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.token != ""
}

func (a *App) restoreSession(ctx context.Context) {
	token, err := a.tokens.Token(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Could not read the saved session:", err)
		return
	}
	if token == "" {
		return
	}
	a.token = token

	me, err := a.api.Me(ctx, token)
	switch {
	case err == nil:
		a.user = me
		fmt.Fprintf(a.out, "Welcome back, %s.\n", me.Name)
	case errors.Is(err, api.ErrUnavailable):
		fmt.Fprintln(a.out, "Cannot reach the server; the saved session will be checked later.")
	default:
		a.report(ctx, err)
	}
}

// startSession keeps the token in memory and in local storage.
func (a *App) startSession(ctx context.Context, token string, user models.Identity) {
	a.token = token
	a.user = &user
	if err := a.tokens.SetToken(ctx, token); err != nil {
		fmt.Fprintln(a.out, "Warning: the session could not be saved:", err)
	}
}

func (a *App) dropSession(ctx context.Context) {
	a.token = ""
	a.user = nil
	if err := a.tokens.ClearToken(ctx); err != nil {
		fmt.Fprintln(a.out, "Warning: the saved session could not be removed:", err)
	}
}

// report prints err for the user. Unreachable and rejected requests get
// different messages; a 401 also discards the session.
func (a *App) report(ctx context.Context, err error) {
	var apiErr *api.APIError
	switch {
	case errors.Is(err, api.ErrUnavailable):
		fmt.Fprintln(a.out, "Cannot connect to the server. Check that it is running and try again.")
	case errors.Is(err, api.ErrUnauthorized):
		if a.isLoggedIn() {
			a.dropSession(ctx)
		}
		fmt.Fprintln(a.out, "Your session is invalid or has expired. Please log in again.")
	case errors.Is(err, api.ErrInvalidInput):
		fmt.Fprintln(a.out, err)
	case errors.As(err, &apiErr):
		fmt.Fprintln(a.out, "Request rejected:", rejectionMessage(apiErr))
	default:
		fmt.Fprintln(a.out, "Error:", err)
	}
}

func rejectionMessage(e *api.APIError) string {
	if e.Message != "" {
		return e.Message
	}
	switch {
	case e.StatusCode == 400:
		return "please check the information you entered"
	case e.StatusCode == 404:
		return "not found"
	case e.StatusCode >= 500:
		return "server error, try again later"
	default:
		return fmt.Sprintf("status %d", e.StatusCode)
	}
}
