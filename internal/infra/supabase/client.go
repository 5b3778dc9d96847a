// Package supabase is a database.Store over the Supabase PostgREST API.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/xavierca1/coachflow/internal/infra/database"
)

const (
	maxResponseBytes  = 8 << 20  // 8 MiB
	maxErrorBodyBytes = 32 << 10 // 32 KiB
)

var errResponseTooLarge = errors.New("response exceeds size limit")

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// apiError is the PostgREST error body.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func (c *Client) List(ctx context.Context, table string, q database.Query) ([]byte, error) {
	params := scope(q)
	params.Set("select", "*")

	dir := "desc"
	if q.Ascending {
		dir = "asc"
	}
	order := q.OrderBy
	if order == "" {
		order = "created_at"
	}
	params.Set("order", order+"."+dir)
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	body, err := c.request(ctx, http.MethodGet, table, nil, params, q.Token)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	return body, nil
}

func (c *Client) Insert(ctx context.Context, table string, row any, q database.Query) ([]byte, error) {
	body, err := c.request(ctx, http.MethodPost, table, row, nil, q.Token)
	if err != nil {
		return nil, fmt.Errorf("insert %s: %w", table, err)
	}
	return first(body)
}

func (c *Client) Update(ctx context.Context, table, id string, patch map[string]any, q database.Query) ([]byte, error) {
	params := scope(q)
	params.Set("id", "eq."+id)

	body, err := c.request(ctx, http.MethodPatch, table, patch, params, q.Token)
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", table, err)
	}
	return first(body)
}

func (c *Client) Delete(ctx context.Context, table, id string, q database.Query) error {
	params := scope(q)
	params.Set("id", "eq."+id)

	body, err := c.request(ctx, http.MethodDelete, table, nil, params, q.Token)
	if err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}
	_, err = first(body)
	return err
}

// Ping hits the REST root, which lists the exposed schema.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/rest/v1/", nil)
	if err != nil {
		return err
	}
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBodyBytes))

	if resp.StatusCode >= 500 {
		return fmt.Errorf("supabase unhealthy: status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) request(ctx context.Context, method, table string, payload any, params url.Values, token string) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/rest/v1/%s", c.baseURL, table)
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	bearer := token
	if bearer == "" {
		bearer = c.apiKey
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+bearer)
	if method != http.MethodGet {
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, responseError(method, resp.StatusCode, raw)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if len(raw) > maxResponseBytes {
		return nil, errResponseTooLarge
	}
	return raw, nil
}

// responseError maps a failed response. 401 and 403 are access denials.
// Bad payloads, conflicts and constraint violations on writes are
// rejections; everything else is a failure to reach the data.
func responseError(method string, status int, raw []byte) error {
	var apiErr apiError
	msg := strings.TrimSpace(string(raw))
	if json.Unmarshal(raw, &apiErr) == nil && apiErr.Message != "" {
		msg = apiErr.Message
		if apiErr.Details != "" {
			msg += ": " + apiErr.Details
		}
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%w: supabase API error %d: %s", database.ErrAccessDenied, status, msg)
	case method != http.MethodGet && status < 500 && (rejectedStatus(status) || strings.HasPrefix(apiErr.Code, "23")):
		return &database.RejectedError{Status: status, Code: apiErr.Code, Message: msg}
	}
	return fmt.Errorf("supabase API error %d: %s", status, msg)
}

func rejectedStatus(status int) bool {
	switch status {
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		return true
	}
	return false
}

// scope renders the owner and equality filters as PostgREST operators.
func scope(q database.Query) url.Values {
	params := url.Values{}
	if !q.AllOwners {
		owner := q.OwnerColumn
		if owner == "" {
			owner = database.DefaultOwnerColumn
		}
		params.Set(owner, "eq."+q.Owner)
	}
	for col, v := range q.Filters {
		params.Set(col, "eq."+v)
	}
	return params
}

// first unwraps the representation array PostgREST returns for writes.
func first(body []byte) ([]byte, error) {
	var rows []json.RawMessage
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode representation: %w", err)
	}
	if len(rows) == 0 {
		return nil, database.ErrNotFound
	}
	return rows[0], nil
}
