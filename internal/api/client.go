// Package api is the only code path that talks to the rental
// backend. It centralizes header construction, body encoding,
// response decoding and error normalization; every endpoint method is
// a thin wrapper over the same request core.
package api

import (
	"bytes"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"

	"github.com/rentd-dev/rentd/internal/auth"
	"github.com/rentd-dev/rentd/internal/models"
)

// Client represents an HTTP client for the rental API
type Client struct {
	baseURL    string
	server     string
	httpClient *http.Client
	tokens     auth.TokenStore
	validate   *validator.Validate
}

// New creates a new API client for the given server address
func New(server string) *Client {
	// Assume HTTPS by default
	baseURL := fmt.Sprintf("https://%s", server)

	return &Client{
		baseURL: baseURL,
		server:  server,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			// Skip TLS verification for self-signed certificates
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: true,
				},
			},
		},
		tokens:   auth.Default,
		validate: validator.New(),
	}
}

// SetHTTPClient sets a custom HTTP client
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}

// SetBaseURL overrides the derived base URL (used by tests to point
// at a plain-HTTP server)
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}

// SetTokenStore sets a custom credential store
func (c *Client) SetTokenStore(tokens auth.TokenStore) {
	c.tokens = tokens
}

// do performs one API call: it attaches the stored credential as a
// bearer header, encodes body as JSON, and decodes a 2xx response
// into out (which may be nil for endpoints with no interesting body).
//
// When requiresAuth is true and no credential is stored the call
// fails with ErrUnauthenticated without touching the network. When a
// credential exists it is attached even on calls that do not require
// one, so the server can personalize responses.
func (c *Client) do(method, path string, body any, requiresAuth bool, out any) error {
	token, err := c.tokens.LoadToken(c.server)
	if err != nil {
		if requiresAuth {
			return ErrUnauthenticated
		}
		token = ""
	}

	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}
	req.Header.Set("X-Request-ID", ulid.Make().String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Msg("api request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		return &HTTPError{
			Status:  resp.StatusCode,
			Message: strings.TrimSpace(string(respBody)),
		}
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &DecodeError{Err: err}
	}

	return nil
}

// checkPayload validates a request payload client-side so obviously
// malformed requests never reach the wire.
func (c *Client) checkPayload(payload any) error {
	if err := c.validate.Struct(payload); err != nil {
		return &ValidationError{Err: err}
	}
	return nil
}

// LoginResult is the outcome of a successful authentication: the
// bearer token and the identity decoded from its claims. The client
// never stores either; the caller decides when the session changes.
type LoginResult struct {
	Token    string
	Identity models.Identity
}

// Authenticate exchanges email and password for a bearer token. The
// returned identity is decoded from the token claims; the caller is
// responsible for persisting the token and updating the session
// store.
func (c *Client) Authenticate(email, password string) (*LoginResult, error) {
	req := models.AuthRequest{Email: email, Password: password}
	if err := c.checkPayload(req); err != nil {
		return nil, err
	}

	var resp models.AuthResponse
	if err := c.do("POST", "/api/authenticate", req, false, &resp); err != nil {
		return nil, err
	}

	identity, err := auth.DecodeIdentity(resp.Token)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}

	return &LoginResult{Token: resp.Token, Identity: identity}, nil
}

// Register creates a new account and returns the bearer token for it,
// so a fresh signup is immediately logged in.
func (c *Client) Register(req models.RegisterRequest) (*LoginResult, error) {
	if err := c.checkPayload(req); err != nil {
		return nil, err
	}

	var resp models.AuthResponse
	if err := c.do("POST", "/api/register", req, false, &resp); err != nil {
		return nil, err
	}

	identity, err := auth.DecodeIdentity(resp.Token)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}

	return &LoginResult{Token: resp.Token, Identity: identity}, nil
}

// ListUsers returns all user accounts (admin only)
func (c *Client) ListUsers() ([]models.User, error) {
	var users []models.User
	if err := c.do("GET", "/api/users", nil, true, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser fetches a user account by email
func (c *Client) GetUser(email string) (*models.User, error) {
	var user models.User
	if err := c.do("GET", "/api/users/"+email, nil, true, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser updates a user account and returns the re-issued bearer
// token reflecting the new account data
func (c *Client) UpdateUser(email string, update models.UserUpdate) (string, error) {
	if err := c.checkPayload(update); err != nil {
		return "", err
	}

	var resp models.AuthResponse
	if err := c.do("PUT", "/api/users/"+email, update, true, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// UpdateUserPassword changes a user's password
func (c *Client) UpdateUserPassword(email string, update models.PasswordUpdate) error {
	if err := c.checkPayload(update); err != nil {
		return err
	}
	return c.do("PUT", "/api/users/"+email+"/password", update, true, nil)
}

// DeleteUser deletes a user account
func (c *Client) DeleteUser(email string) error {
	return c.do("DELETE", "/api/users/"+email, nil, true, nil)
}

// ListCars returns the car catalog. No credential is required; when
// one is stored it is still attached so the server can mark
// favorites.
func (c *Client) ListCars() ([]models.Car, error) {
	var cars []models.Car
	if err := c.do("GET", "/api/cars", nil, false, &cars); err != nil {
		return nil, err
	}
	return cars, nil
}

// GetCar fetches a car by ID
func (c *Client) GetCar(id int64) (*models.Car, error) {
	var car models.Car
	if err := c.do("GET", fmt.Sprintf("/api/cars/%d", id), nil, false, &car); err != nil {
		return nil, err
	}
	return &car, nil
}

// AddCar creates a car and returns its new ID (admin only)
func (c *Client) AddCar(car models.Car) (int64, error) {
	if err := c.checkPayload(car); err != nil {
		return 0, err
	}

	var id int64
	if err := c.do("POST", "/api/cars", car, true, &id); err != nil {
		return 0, err
	}
	return id, nil
}

// UpdateCar replaces a car by ID (admin only)
func (c *Client) UpdateCar(id int64, car models.Car) error {
	if err := c.checkPayload(car); err != nil {
		return err
	}
	return c.do("PUT", fmt.Sprintf("/api/cars/%d", id), car, true, nil)
}

// DeleteCar deletes a car by ID (admin only)
func (c *Client) DeleteCar(id int64) error {
	return c.do("DELETE", fmt.Sprintf("/api/cars/%d", id), nil, true, nil)
}

// ListRentals returns all rentals visible to the caller
func (c *Client) ListRentals() ([]models.Rental, error) {
	var rentals []models.Rental
	if err := c.do("GET", "/api/rentals", nil, true, &rentals); err != nil {
		return nil, err
	}
	return rentals, nil
}

// GetRental fetches a rental by ID
func (c *Client) GetRental(id int64) (*models.Rental, error) {
	var rental models.Rental
	if err := c.do("GET", fmt.Sprintf("/api/rentals/%d", id), nil, true, &rental); err != nil {
		return nil, err
	}
	return &rental, nil
}

// AddRental books a provider's car for a user and returns the new
// rental ID
func (c *Client) AddRental(email string, providerID int64, rental models.Rental) (int64, error) {
	if err := c.checkPayload(rental); err != nil {
		return 0, err
	}

	var id int64
	path := fmt.Sprintf("/api/rentals/%s/%d", email, providerID)
	if err := c.do("POST", path, rental, true, &id); err != nil {
		return 0, err
	}
	return id, nil
}

// DeleteRental cancels a rental by ID
func (c *Client) DeleteRental(id int64) error {
	return c.do("DELETE", fmt.Sprintf("/api/rentals/%d", id), nil, true, nil)
}

// ListReceipts returns all receipts visible to the caller
func (c *Client) ListReceipts() ([]models.Receipt, error) {
	var receipts []models.Receipt
	if err := c.do("GET", "/api/receipts", nil, true, &receipts); err != nil {
		return nil, err
	}
	return receipts, nil
}

// GetReceipt fetches a receipt by ID
func (c *Client) GetReceipt(id int64) (*models.Receipt, error) {
	var receipt models.Receipt
	if err := c.do("GET", fmt.Sprintf("/api/receipts/%d", id), nil, true, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

// AddReceipt generates a receipt from a rental. The body is the total
// price, matching the backend contract.
func (c *Client) AddReceipt(email string, rentalID int64, totalPrice float64) (int64, error) {
	var id int64
	path := fmt.Sprintf("/api/receipts/%s/%d", email, rentalID)
	if err := c.do("POST", path, totalPrice, true, &id); err != nil {
		return 0, err
	}
	return id, nil
}

// DeleteReceipt deletes a receipt by ID
func (c *Client) DeleteReceipt(id int64) error {
	return c.do("DELETE", fmt.Sprintf("/api/receipts/%d", id), nil, true, nil)
}
