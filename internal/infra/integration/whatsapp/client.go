package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const DefaultBaseURL = "https://graph.facebook.com/v18.0"

type Client struct {
	BaseURL     string
	accessToken string
	phoneID     string
	language    string
	http        *http.Client
}

func NewClient(accessToken, phoneID string) *Client {
	return &Client{
		BaseURL:     DefaultBaseURL,
		accessToken: accessToken,
		phoneID:     phoneID,
		language:    "en_US",
		http:        &http.Client{Timeout: 15 * time.Second},
	}
}

type SendTemplateInput struct {
	PhoneNumber  string
	TemplateName string
	Parameters   []string
}

type sendResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
	Error *apiError `json:"error"`
}

type apiError struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
	Type    string `json:"type"`
}

// SendTemplate sends an approved template message and returns its id.
func (c *Client) SendTemplate(ctx context.Context, input SendTemplateInput) (string, error) {
	payload := map[string]any{
		"messaging_product": "whatsapp",
		"recipient_type":    "individual",
		"to":                input.PhoneNumber,
		"type":              "template",
		"template": map[string]any{
			"name":     input.TemplateName,
			"language": map[string]string{"code": c.language},
			"components": []map[string]any{{
				"type":       "body",
				"parameters": textParameters(input.Parameters),
			}},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/%s/messages", c.BaseURL, c.phoneID), bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("whatsapp send: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	var result sendResponse
	if err := json.Unmarshal(raw, &result); err != nil && resp.StatusCode < 300 {
		return "", fmt.Errorf("whatsapp decode: %w", err)
	}
	if result.Error != nil {
		return "", fmt.Errorf("whatsapp: %s (code %d)", result.Error.Message, result.Error.Code)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("whatsapp api error: %d", resp.StatusCode)
	}
	if len(result.Messages) == 0 {
		return "", nil
	}
	return result.Messages[0].ID, nil
}

func textParameters(params []string) []map[string]string {
	out := make([]map[string]string, 0, len(params))
	for _, p := range params {
		out = append(out, map[string]string{"type": "text", "text": p})
	}
	return out
}
