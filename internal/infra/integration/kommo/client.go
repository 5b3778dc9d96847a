package kommo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/xavierca1/coachflow/internal/entity"
)

// Client mirrors dashboard leads into a Kommo pipeline.
type Client struct {
	BaseURL    string
	token      string
	pipelineID int
	statusID   int
	http       *http.Client
}

// NewClient targets https://<domain>/api/v4. A zero pipeline or status
// leaves the choice to the account defaults.
func NewClient(domain, token string, pipelineID, statusID int) *Client {
	return &Client{
		BaseURL:    "https://" + domain + "/api/v4",
		token:      token,
		pipelineID: pipelineID,
		statusID:   statusID,
		http:       &http.Client{Timeout: 15 * time.Second},
	}
}

// SyncLead creates the lead in Kommo linked to a contact found by phone or
// email, or created when none exists. It returns the Kommo lead id.
func (c *Client) SyncLead(ctx context.Context, lead entity.Lead) (int, error) {
	contactID, err := c.findOrCreateContact(ctx, lead)
	if err != nil {
		return 0, fmt.Errorf("kommo contact: %w", err)
	}

	item := map[string]any{
		"name": lead.Name,
		"_embedded": map[string]any{
			"tags": []map[string]any{
				{"name": "source_" + lead.Source},
				{"name": lead.Temperature},
			},
			"contacts": []map[string]any{{"id": contactID}},
		},
	}
	if c.pipelineID > 0 {
		item["pipeline_id"] = c.pipelineID
	}
	if c.statusID > 0 {
		item["status_id"] = c.statusID
	}

	var result embeddedIDs
	if err := c.do(ctx, http.MethodPost, "/leads", []map[string]any{item}, &result); err != nil {
		return 0, fmt.Errorf("kommo create lead: %w", err)
	}
	if len(result.Embedded.Leads) == 0 {
		return 0, fmt.Errorf("kommo create lead: empty response")
	}
	return result.Embedded.Leads[0].ID, nil
}

type embeddedIDs struct {
	Embedded struct {
		Leads []struct {
			ID int `json:"id"`
		} `json:"leads"`
		Contacts []struct {
			ID int `json:"id"`
		} `json:"contacts"`
	} `json:"_embedded"`
}

func (c *Client) findOrCreateContact(ctx context.Context, lead entity.Lead) (int, error) {
	query := lead.Phone
	if query == "" {
		query = lead.Email
	}
	if id, err := c.findContact(ctx, query); err == nil && id > 0 {
		return id, nil
	}
	return c.createContact(ctx, lead)
}

func (c *Client) findContact(ctx context.Context, query string) (int, error) {
	var result embeddedIDs
	if err := c.do(ctx, http.MethodGet, "/contacts?query="+url.QueryEscape(query), nil, &result); err != nil {
		return 0, err
	}
	if len(result.Embedded.Contacts) == 0 {
		return 0, nil
	}
	return result.Embedded.Contacts[0].ID, nil
}

func (c *Client) createContact(ctx context.Context, lead entity.Lead) (int, error) {
	fields := []map[string]any{{
		"field_code": "EMAIL",
		"values":     []map[string]any{{"value": lead.Email, "enum_code": "WORK"}},
	}}
	if lead.Phone != "" {
		fields = append(fields, map[string]any{
			"field_code": "PHONE",
			"values":     []map[string]any{{"value": lead.Phone, "enum_code": "WORK"}},
		})
	}
	contact := []map[string]any{{"name": lead.Name, "custom_fields_values": fields}}

	var result embeddedIDs
	if err := c.do(ctx, http.MethodPost, "/contacts", contact, &result); err != nil {
		return 0, err
	}
	if len(result.Embedded.Contacts) == 0 {
		return 0, fmt.Errorf("no contact id in response")
	}
	return result.Embedded.Contacts[0].ID, nil
}

// do sends a JSON request and decodes a JSON response. Kommo answers an
// empty search with 204.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("status %d: %s", resp.StatusCode, raw)
	}
	return json.Unmarshal(raw, out)
}
