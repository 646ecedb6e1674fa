// Package client is a Go client for the LifeVault API. A Client wraps one
// base URL and one Session; all methods attach the session token when set.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
	session *Session
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		session: NewSession(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Session() *Session {
	return c.session
}

// SignUp registers an account and signs the session in.
func (c *Client) SignUp(ctx context.Context, name, email, password string) (*User, error) {
	var creds Credentials
	err := c.do(ctx, http.MethodPost, "/api/auth/signup", map[string]string{
		"name": name, "email": email, "password": password,
	}, &creds)
	if err != nil {
		return nil, err
	}
	return c.adopt(creds), nil
}

// SignIn authenticates and signs the session in.
func (c *Client) SignIn(ctx context.Context, email, password string) (*User, error) {
	var creds Credentials
	err := c.do(ctx, http.MethodPost, "/api/auth/signin", map[string]string{
		"email": email, "password": password,
	}, &creds)
	if err != nil {
		return nil, err
	}
	return c.adopt(creds), nil
}

// SignOut drops the session locally. Tokens are stateless so there is
// nothing to tell the server.
func (c *Client) SignOut() {
	c.session.Clear()
}

func (c *Client) Me(ctx context.Context) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) UpdateProfile(ctx context.Context, name, email *string) (*User, error) {
	var u User
	body := map[string]*string{"name": name, "email": email}
	if err := c.do(ctx, http.MethodPut, "/api/profile", body, &u); err != nil {
		return nil, err
	}
	if cur := c.session.User(); cur != nil {
		c.session.Set(&u, c.session.Token())
	}
	return &u, nil
}

func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	return c.do(ctx, http.MethodPost, "/api/profile/change-password", map[string]string{
		"currentPassword": current, "newPassword": next,
	}, nil)
}

// DeleteAccount removes the account and clears the session.
func (c *Client) DeleteAccount(ctx context.Context) error {
	if err := c.do(ctx, http.MethodDelete, "/api/profile", nil, nil); err != nil {
		return err
	}
	c.session.Clear()
	return nil
}

func (c *Client) GetPatient(ctx context.Context, id string) (*Patient, error) {
	var p Patient
	if err := c.do(ctx, http.MethodGet, "/api/patients/"+url.PathEscape(id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) CreatePatient(ctx context.Context, p Patient) (*Patient, error) {
	var out Patient
	if err := c.do(ctx, http.MethodPost, "/api/patients", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdatePatient(ctx context.Context, id string, p Patient) (*Patient, error) {
	var out Patient
	if err := c.do(ctx, http.MethodPut, "/api/patients/"+url.PathEscape(id), p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListRecords(ctx context.Context, patientID string) ([]HealthRecord, error) {
	var out []HealthRecord
	path := "/api/records?patientId=" + url.QueryEscape(patientID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetRecord(ctx context.Context, id string) (*RecordDetail, error) {
	var out RecordDetail
	if err := c.do(ctx, http.MethodGet, "/api/records/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateRecord(ctx context.Context, in RecordInput) (*HealthRecord, error) {
	var out HealthRecord
	if err := c.do(ctx, http.MethodPost, "/api/records", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateRecord(ctx context.Context, id string, in RecordUpdate) (*HealthRecord, error) {
	var out HealthRecord
	if err := c.do(ctx, http.MethodPut, "/api/records/"+url.PathEscape(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteRecord(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/records/"+url.PathEscape(id), nil, nil)
}

// ShareRecord grants access to an email address. expireInDays selects how
// long the grant lives; zero or negative means it never expires. The ledger
// stores absolute instants, so the day count resolves to a timestamp here.
func (c *Client) ShareRecord(ctx context.Context, recordID, email string, perms SharePermissions, expireInDays int) (*Grant, error) {
	body := map[string]interface{}{"email": email}
	if perms.View != nil {
		body["viewPermission"] = *perms.View
	}
	if perms.Download != nil {
		body["downloadPermission"] = *perms.Download
	}
	if perms.Reshare != nil {
		body["resharePermission"] = *perms.Reshare
	}
	if expireInDays > 0 {
		body["expiration"] = time.Now().AddDate(0, 0, expireInDays).UTC().Format(time.RFC3339)
	}

	var g Grant
	path := "/api/records/" + url.PathEscape(recordID) + "/share"
	if err := c.do(ctx, http.MethodPost, path, body, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// SharedWithMe lists unexpired records shared to an email address.
func (c *Client) SharedWithMe(ctx context.Context, email string) ([]SharedRecord, error) {
	var out []SharedRecord
	path := "/api/records/shared?email=" + url.QueryEscape(email)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) RevokeShare(ctx context.Context, grantID string) error {
	return c.do(ctx, http.MethodDelete, "/api/records/share/"+url.PathEscape(grantID), nil, nil)
}

func (c *Client) adopt(creds Credentials) *User {
	u := &User{ID: creds.ID, Name: creds.Name, Email: creds.Email}
	c.session.Set(u, creds.Token)
	return u
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.session.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Message != "" {
		apiErr.Message = payload.Message
	} else {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
