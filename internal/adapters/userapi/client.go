// Package userapi is the HTTP/JSON adapter for the remote user service. All
// business rules (credential checks, OTP issuance, record storage) run on
// that service; this client only shapes requests and interprets responses.
package userapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"

	domainauth "github.com/caseworks/user-portal/internal/domain/auth"
	"github.com/caseworks/user-portal/internal/domain/model"
	apperrors "github.com/caseworks/user-portal/internal/errors"
)

// ClientOptions groups dependencies for Client.
type ClientOptions struct {
	// BaseURL is the user service root, e.g. "http://localhost:3000".
	BaseURL string
	// HTTPClient is optional; defaults to http.DefaultClient. Requests carry
	// no client-side timeout, the caller's context bounds them.
	HTTPClient *http.Client
	// Logger is optional.
	Logger *slog.Logger
}

// Client implements ports.UserDirectory against the user service's REST API.
type Client struct {
	base   string
	hc     *http.Client
	logger *slog.Logger
}

// NewClient constructs a Client and validates the base URL eagerly so a
// misconfigured deployment fails at startup, not on the first login.
func NewClient(opts ClientOptions) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		return nil, errors.New("user service base URL is required")
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse user service base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("user service base URL must be http(s), got %q", u.Scheme)
	}

	hc := opts.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "userapi_client")
	}

	return &Client{base: base, hc: hc, logger: logger}, nil
}

// do sends one request and returns the decoded JSON document for 2xx
// responses. Non-2xx responses become upstream errors carrying the server's
// "message" field verbatim; transport failures become unavailable errors.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (any, error) {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode request body")
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		if c.logger != nil {
			c.logger.ErrorContext(ctx, "user service request failed", "method", method, "path", path, "error", err)
		}
		return nil, apperrors.Unavailable(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Unavailable(err)
	}

	var doc any
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &doc); err != nil {
			if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return nil, apperrors.Unavailable(fmt.Errorf("decode response body: %w", err))
			}
			doc = nil
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := stringAt(doc, "message")
		if c.logger != nil {
			c.logger.WarnContext(ctx, "user service rejected request",
				"method", method, "path", path, "status", resp.StatusCode)
		}
		return nil, apperrors.Upstream(resp.StatusCode, msg)
	}
	return doc, nil
}

// stringAt extracts a string from a decoded JSON document by JMESPath
// expression. Missing keys and type mismatches yield "" rather than errors;
// upstream response shapes vary and callers always have a fallback.
func stringAt(doc any, expr string) string {
	if doc == nil {
		return ""
	}
	res, err := jmespath.Search(expr, doc)
	if err != nil {
		return ""
	}
	s, _ := res.(string)
	return s
}

// reshape re-marshals a JSON subtree into a typed struct.
func reshape(doc any, out any) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, reg model.Registration) error {
	_, err := c.do(ctx, http.MethodPost, "/user/register", nil, reg)
	return err
}

// Login verifies credentials.
func (c *Client) Login(ctx context.Context, email, password string) error {
	_, err := c.do(ctx, http.MethodPost, "/user/login", nil, map[string]string{
		"email":    email,
		"password": password,
	})
	return err
}

// VerifyOTP confirms a one-time password.
func (c *Client) VerifyOTP(ctx context.Context, email, otp string) error {
	_, err := c.do(ctx, http.MethodPost, "/user/verify-otp", nil, map[string]string{
		"email": email,
		"otp":   otp,
	})
	return err
}

// ResendOTP requests a fresh OTP. The returned string is the server's
// confirmation message, which may be empty.
func (c *Client) ResendOTP(ctx context.Context, email string) (string, error) {
	doc, err := c.do(ctx, http.MethodPost, "/user/resend-otp", nil, map[string]string{"email": email})
	if err != nil {
		return "", err
	}
	return stringAt(doc, "message"), nil
}

// Logout notifies the service that the user signed out.
func (c *Client) Logout(ctx context.Context, email string) error {
	_, err := c.do(ctx, http.MethodPost, "/user/logout", nil, map[string]string{"email": email})
	return err
}

// ForgotPassword starts the reset flow.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	_, err := c.do(ctx, http.MethodPost, "/user/forgotpwd", nil, map[string]string{"email": email})
	return err
}

// ResetPassword sets a new password after OTP verification.
func (c *Client) ResetPassword(ctx context.Context, email, newPassword string) error {
	_, err := c.do(ctx, http.MethodPost, "/user/resetpwd", nil, map[string]string{
		"email":  email,
		"newpwd": newPassword,
	})
	return err
}

// ChangePassword rotates a signed-in user's password.
func (c *Client) ChangePassword(ctx context.Context, email, current, newPassword string) (string, error) {
	doc, err := c.do(ctx, http.MethodPost, "/user/changepwd", nil, map[string]string{
		"email":    email,
		"password": current,
		"newpwd":   newPassword,
	})
	if err != nil {
		return "", err
	}
	return stringAt(doc, "message"), nil
}

// Profile fetches the signed-in user's own record. The service nests the
// record under a "user" key.
func (c *Client) Profile(ctx context.Context, email string) (model.Profile, error) {
	doc, err := c.do(ctx, http.MethodGet, "/user/profile", url.Values{"email": {email}}, nil)
	if err != nil {
		return model.Profile{}, err
	}
	sub, err := jmespath.Search("user", doc)
	if err != nil || sub == nil {
		return model.Profile{}, apperrors.NotFound("profile not found")
	}
	var p model.Profile
	if err := reshape(sub, &p); err != nil {
		return model.Profile{}, apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "decode profile")
	}
	return p, nil
}

// UpdateProfile updates the signed-in user's own record.
func (c *Client) UpdateProfile(ctx context.Context, upd model.ProfileUpdate) (string, error) {
	doc, err := c.do(ctx, http.MethodPut, "/user/"+url.PathEscape(upd.Email), nil, upd)
	if err != nil {
		return "", err
	}
	return stringAt(doc, "message"), nil
}

// Role looks up the authorization role for an email.
func (c *Client) Role(ctx context.Context, email string) (domainauth.Role, error) {
	doc, err := c.do(ctx, http.MethodGet, "/user/role", url.Values{"email": {email}}, nil)
	if err != nil {
		return "", err
	}
	return domainauth.Role(stringAt(doc, "role")), nil
}

// wireUser tolerates the id being a JSON number or a string; the service is
// not consistent about it across records.
type wireUser struct {
	ID               any    `json:"id"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	Email            string `json:"email"`
	MobileNo         string `json:"mobile_no"`
	OrganizationName string `json:"organization_name"`
	Role             string `json:"role"`
}

func (w wireUser) toModel() model.User {
	var id string
	switch v := w.ID.(type) {
	case string:
		id = v
	case float64:
		id = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return model.User{
		ID:               id,
		FirstName:        w.FirstName,
		LastName:         w.LastName,
		Email:            w.Email,
		MobileNo:         w.MobileNo,
		OrganizationName: w.OrganizationName,
		Role:             w.Role,
	}
}

// ListUsers returns every directory record. The service answers with a
// top-level JSON array.
func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	doc, err := c.do(ctx, http.MethodGet, "/user/all", nil, nil)
	if err != nil {
		return nil, err
	}
	var wire []wireUser
	if err := reshape(doc, &wire); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "decode user list")
	}
	users := make([]model.User, 0, len(wire))
	for _, w := range wire {
		users = append(users, w.toModel())
	}
	return users, nil
}

// UpdateUser replaces a directory record by id.
func (c *Client) UpdateUser(ctx context.Context, id string, user model.User) error {
	_, err := c.do(ctx, http.MethodPut, "/user/update/"+url.PathEscape(id), nil, user)
	return err
}

// DeleteUser removes a directory record by id.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/user/delete/"+url.PathEscape(id), nil, nil)
	return err
}
