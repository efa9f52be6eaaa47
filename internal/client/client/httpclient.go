package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dkolesov/flashdeck/internal/client/models"
	"github.com/dkolesov/flashdeck/internal/common"
)

// HTTPClient talks JSON over HTTP to the FlashDeck authority.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) Me(ctx context.Context, accessToken string) (*models.User, error) {
	var out struct {
		User *models.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/", accessToken, nil, "", &out); err != nil {
		return nil, remap(err, map[int]error{http.StatusUnauthorized: ErrUnauthorized})
	}
	if out.User == nil {
		return nil, fmt.Errorf("authority returned no user")
	}
	return out.User, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	var out struct {
		AccessToken string `json:"access_token"`
	}
	err := c.do(ctx, http.MethodPost, "/auth/token", "",
		strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", &out)
	if err != nil {
		return "", remap(err, map[int]error{
			http.StatusUnauthorized: ErrUnauthorized,
			http.StatusForbidden:    ErrNotVerified,
		})
	}
	if out.AccessToken == "" {
		return "", fmt.Errorf("authority returned no access token")
	}
	return out.AccessToken, nil
}

func (c *HTTPClient) Register(ctx context.Context, email, password string) error {
	payload := map[string]string{"email": email, "password": password}
	return c.postJSON(ctx, "/auth/register", "", payload, nil)
}

func (c *HTTPClient) VerifyOTP(ctx context.Context, email, code string) (string, error) {
	return c.verify(ctx, "/auth/verify-otp", email, code, "access_token")
}

func (c *HTTPClient) ResendOTP(ctx context.Context, email string) error {
	return c.postJSON(ctx, "/auth/resend-otp", "", map[string]string{"email": email}, nil)
}

func (c *HTTPClient) RequestReset(ctx context.Context, email string) error {
	return c.postJSON(ctx, "/auth/reset-password/request", "", map[string]string{"email": email}, nil)
}

func (c *HTTPClient) VerifyResetOTP(ctx context.Context, email, code string) (string, error) {
	return c.verify(ctx, "/auth/reset-password/verify-otp", email, code, "reset_token")
}

func (c *HTTPClient) ConfirmReset(ctx context.Context, resetTicket, newPassword string) error {
	payload := map[string]string{"new_password": newPassword}
	err := c.postJSON(ctx, "/auth/reset-password/confirm", resetTicket, payload, nil)
	return remap(err, map[int]error{
		http.StatusUnauthorized: ErrArtifactExpired,
		http.StatusGone:         ErrArtifactExpired,
	})
}

func (c *HTTPClient) ListUsers(ctx context.Context, accessToken string) ([]models.User, error) {
	var out struct {
		Users []models.User `json:"users"`
	}
	if err := c.do(ctx, http.MethodGet, "/admin/users", accessToken, nil, "", &out); err != nil {
		return nil, remap(err, map[int]error{http.StatusUnauthorized: ErrUnauthorized})
	}
	return out.Users, nil
}

func (c *HTTPClient) UpdateTokenBalance(ctx context.Context, accessToken string, userID int64, tokens int) (*models.User, error) {
	body, err := json.Marshal(map[string]int{"tokens": tokens})
	if err != nil {
		return nil, err
	}

	var out models.User
	path := fmt.Sprintf("/admin/users/%d/tokens", userID)
	err = c.do(ctx, http.MethodPatch, path, accessToken, bytes.NewReader(body), "application/json", &out)
	if err != nil {
		return nil, remap(err, map[int]error{http.StatusUnauthorized: ErrUnauthorized})
	}
	return &out, nil
}

// verify posts {email, otp_code} and extracts the named credential field.
// 410 Gone means the challenge expired and must be reissued; any other
// rejection leaves the challenge retryable.
func (c *HTTPClient) verify(ctx context.Context, path, email, code, field string) (string, error) {
	payload := map[string]string{"email": email, "otp_code": code}

	var out map[string]string
	err := c.postJSON(ctx, path, "", payload, &out)
	if err != nil {
		return "", remap(err, map[int]error{http.StatusGone: ErrArtifactExpired})
	}
	cred := out[field]
	if cred == "" {
		return "", fmt.Errorf("authority returned no %s", field)
	}
	return cred, nil
}

func (c *HTTPClient) postJSON(ctx context.Context, path, bearer string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, bearer, bytes.NewReader(body), "application/json", out)
}

func (c *HTTPClient) do(ctx context.Context, method, path, bearer string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if bearer != "" {
		req.Header.Set(common.AuthHeaderName, common.BearerPrefix+bearer)
	}
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return &APIError{Status: resp.StatusCode, Detail: errorDetail(data)}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// errorDetail extracts the authority's message from an error body, if any.
func errorDetail(data []byte) string {
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	return body.Detail
}
