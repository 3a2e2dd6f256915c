// Package api is the HTTP client for the shop service. Authenticated calls
// take the token as an argument; nothing is attached implicitly.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"shop-service/models"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// newRequest builds a request for path. The Authorization header is set
// only when token is not empty.
func (c *Client) newRequest(ctx context.Context, method, path, token string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

func (c *Client) newJSONRequest(ctx context.Context, method, path, token string, payload interface{}) (*http.Request, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, method, path, token, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// do sends req and decodes a 2xx body into out. Transport failures become
// ErrUnavailable and error statuses become *APIError.
func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var body models.MessageResponse
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return &APIError{StatusCode: resp.StatusCode, Message: body.Message}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) Register(ctx context.Context, name, email, password string) (*models.RegisterResponse, error) {
	if err := ValidateRegistration(name, email, password); err != nil {
		return nil, err
	}

	req, err := c.newJSONRequest(ctx, http.MethodPost, "/auth/register", "",
		models.RegisterRequest{Name: strings.TrimSpace(name), Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	var out models.RegisterResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	if err := ValidateLogin(email, password); err != nil {
		return nil, err
	}

	req, err := c.newJSONRequest(ctx, http.MethodPost, "/auth/login", "",
		models.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	var out models.LoginResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	if out.Token == "" {
		return nil, errors.New("no token in login response")
	}
	return &out, nil
}

// Me resolves the identity behind token.
func (c *Client) Me(ctx context.Context, token string) (*models.Identity, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/auth/me", token, nil)
	if err != nil {
		return nil, err
	}

	var out models.Identity
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/products", "", nil)
	if err != nil {
		return nil, err
	}

	out := []models.Product{}
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/products/"+strconv.FormatInt(id, 10), "", nil)
	if err != nil {
		return nil, err
	}

	var out models.Product
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ProductForm is the body of a create-product call. ImagePath, when set,
// names a local file sent as the image part.
type ProductForm struct {
	Name        string
	Description string
	Price       string
	ImagePath   string
}

func (c *Client) CreateProduct(ctx context.Context, form ProductForm) (*models.Product, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fields := []struct{ name, value string }{
		{"name", form.Name},
		{"description", form.Description},
		{"price", form.Price},
	}
	for _, f := range fields {
		if err := mw.WriteField(f.name, f.value); err != nil {
			return nil, err
		}
	}

	if form.ImagePath != "" {
		if err := attachFile(mw, "image", form.ImagePath); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/products", "", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var out models.Product
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func attachFile(mw *multipart.Writer, field, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	part, err := mw.CreateFormFile(field, filepath.Base(path))
	if err != nil {
		return err
	}
	_, err = io.Copy(part, f)
	return err
}
