package whatsapp

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendTemplate(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/phone-1/messages", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		io.WriteString(w, `{"messages":[{"id":"wamid.1"}]}`)
	}))
	defer srv.Close()

	c := NewClient("tok", "phone-1")
	c.BaseURL = srv.URL

	id, err := c.SendTemplate(context.Background(), SendTemplateInput{
		PhoneNumber:  "5511999999999",
		TemplateName: "coachflow_welcome",
		Parameters:   []string{"Ana"},
	})

	require.NoError(t, err)
	assert.Equal(t, "wamid.1", id)
	assert.Equal(t, "5511999999999", got["to"])
	tmpl := got["template"].(map[string]any)
	assert.Equal(t, "coachflow_welcome", tmpl["name"])
}

func TestSendTemplateAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"error":{"message":"Invalid parameter","code":100,"type":"OAuthException"}}`)
	}))
	defer srv.Close()

	c := NewClient("tok", "phone-1")
	c.BaseURL = srv.URL

	_, err := c.SendTemplate(context.Background(), SendTemplateInput{PhoneNumber: "1", TemplateName: "x"})

	assert.ErrorContains(t, err, "Invalid parameter")
}
