package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/GiftMothusi/tshwane-transit-cli/internal/client/models"
)

// HTTPClient talks JSON over HTTP to the Tshwane Transit backend.
//
// The zero value is not usable; construct with NewHTTPClient. Once a
// credential is set via SetCredential, every request carries it as an
// Authorization bearer header until ClearCredential is called.
type HTTPClient struct {
	baseURL  string
	deviceID string
	http     *http.Client

	mu    sync.RWMutex
	token string
}

// NewHTTPClient builds a client for the API rooted at baseURL (for example
// "http://localhost:8000/api"). Requests time out after timeout. deviceID
// identifies this installation and is sent with every request; it may be
// empty.
func NewHTTPClient(baseURL string, timeout time.Duration, deviceID string) *HTTPClient {
	return &HTTPClient{
		baseURL:  baseURL,
		deviceID: deviceID,
		http:     &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) SetCredential(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *HTTPClient) ClearCredential() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
}

func (c *HTTPClient) credential() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var buf *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding %s %s body: %w", method, path, err)
		}
		buf = bytes.NewReader(b)
	} else {
		buf = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, buf)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	if c.deviceID != "" {
		req.Header.Set("X-Device-ID", c.deviceID)
	}
	if token := c.credential(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// do executes the request, mapping transport failures to ErrUnavailable so
// callers can distinguish "server said no" from "server not reachable".
func (c *HTTPClient) do(req *http.Request) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return resp, nil
}

// authResponse is the success body of /auth/login and /auth/register.
type authResponse struct {
	User  models.UserProfile `json:"user"`
	Token string             `json:"token"`
}

func (c *HTTPClient) authCall(ctx context.Context, path string, payload any) (*models.UserProfile, string, error) {
	req, err := c.newRequest(ctx, http.MethodPost, path, payload)
	if err != nil {
		return nil, "", err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", authErrorFromResponse(resp)
	}

	var out authResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, "", fmt.Errorf("decoding %s response: %w", path, err)
	}
	return &out.User, out.Token, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.UserProfile, string, error) {
	payload := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	return c.authCall(ctx, "/auth/login", payload)
}

func (c *HTTPClient) Register(ctx context.Context, reg Registration) (*models.UserProfile, string, error) {
	return c.authCall(ctx, "/auth/register", reg)
}

// Logout notifies the server that the session is over. Any HTTP response,
// including 5xx, is treated as success; only transport failures are reported.
func (c *HTTPClient) Logout(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/auth/logout", nil)
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// getJSON issues a GET and decodes a successful response into out.
func (c *HTTPClient) getJSON(ctx context.Context, path string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}

// postJSON issues a POST with a JSON body and decodes a successful response
// into out (which may be nil).
func (c *HTTPClient) postJSON(ctx context.Context, path string, payload, out any) error {
	req, err := c.newRequest(ctx, http.MethodPost, path, payload)
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}

// checkStatus maps non-2xx transit responses to errors, preferring the
// server-supplied message.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return nil
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	var p errorPayload
	if err := json.NewDecoder(resp.Body).Decode(&p); err == nil && p.Message != "" {
		return fmt.Errorf("server error: %s", p.Message)
	}
	return fmt.Errorf("server error: %s", resp.Status)
}

func (c *HTTPClient) PlanRoute(ctx context.Context, req RoutePlanRequest) ([]models.RouteOption, error) {
	var out struct {
		Routes []models.RouteOption `json:"routes"`
	}
	if err := c.postJSON(ctx, "/v1/routes/plan", req, &out); err != nil {
		return nil, fmt.Errorf("planning route: %w", err)
	}
	return out.Routes, nil
}

func (c *HTTPClient) NearbyStops(ctx context.Context, at models.Coordinates, radius float64) ([]models.Stop, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(at.Latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(at.Longitude, 'f', -1, 64))
	q.Set("radius", strconv.FormatFloat(radius, 'f', -1, 64))

	var out struct {
		Data []models.Stop `json:"data"`
	}
	if err := c.getJSON(ctx, "/v1/bus-stops/nearby?"+q.Encode(), &out); err != nil {
		return nil, fmt.Errorf("fetching nearby stops: %w", err)
	}
	return out.Data, nil
}

func (c *HTTPClient) BusSchedules(ctx context.Context) ([]models.Schedule, error) {
	var out struct {
		Data []models.Schedule `json:"data"`
	}
	if err := c.getJSON(ctx, "/v1/bus-schedules", &out); err != nil {
		return nil, fmt.Errorf("fetching bus schedules: %w", err)
	}
	return out.Data, nil
}

func (c *HTTPClient) BusLocations(ctx context.Context) ([]models.BusLocation, error) {
	var out struct {
		Data []models.BusLocation `json:"data"`
	}
	if err := c.getJSON(ctx, "/v1/bus-locations", &out); err != nil {
		return nil, fmt.Errorf("fetching bus locations: %w", err)
	}
	return out.Data, nil
}

func (c *HTTPClient) Wallet(ctx context.Context) (*models.Wallet, error) {
	var out struct {
		Data models.Wallet `json:"data"`
	}
	if err := c.getJSON(ctx, "/v1/wallet", &out); err != nil {
		return nil, fmt.Errorf("fetching wallet: %w", err)
	}
	return &out.Data, nil
}

func (c *HTTPClient) TopUp(ctx context.Context, amount float64, paymentMethod string) (*models.Wallet, error) {
	payload := struct {
		Amount        float64 `json:"amount"`
		PaymentMethod string  `json:"payment_method"`
	}{Amount: amount, PaymentMethod: paymentMethod}

	var out struct {
		Data models.Wallet `json:"data"`
	}
	if err := c.postJSON(ctx, "/v1/wallet/topup", payload, &out); err != nil {
		return nil, fmt.Errorf("topping up wallet: %w", err)
	}
	return &out.Data, nil
}
