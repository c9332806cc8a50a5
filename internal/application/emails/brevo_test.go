package emails

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrevoClient_Send(t *testing.T) {
	var got BrevoSendRequest
	var apiKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey = r.Header.Get("api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := &BrevoClient{APIKey: "key-1", Endpoint: srv.URL}
	err := c.Send(context.Background(), Message{
		ToEmail:     "ravi@example.com",
		ToName:      "Ravi",
		Subject:     "Payment receipt",
		HTML:        "<p>hi</p>",
		Attachments: []Attachment{{Name: "r.pdf", Content: []byte("%PDF-")}},
	})
	require.NoError(t, err)
	assert.Equal(t, "key-1", apiKey)
	assert.Equal(t, CompanyEmail, got.Sender.Email)
	require.Len(t, got.To, 1)
	assert.Equal(t, "ravi@example.com", got.To[0].Email)
	require.Len(t, got.Attachment, 1)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("%PDF-")), got.Attachment[0].Content)
}

func TestBrevoClient_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	err := (&BrevoClient{APIKey: "bad", Endpoint: srv.URL}).Send(context.Background(), Message{ToEmail: "a@b.in"})
	assert.ErrorContains(t, err, "status 401")

	err = (&BrevoClient{Endpoint: srv.URL}).Send(context.Background(), Message{ToEmail: "a@b.in"})
	assert.Error(t, err)
}

func TestReceiptContent_Escapes(t *testing.T) {
	out := Layout(ReceiptContent(ReceiptFacts{CustomerName: "<b>Ravi</b>", Amount: "30,000"}))
	assert.Contains(t, out, "&lt;b&gt;Ravi&lt;/b&gt;")
	assert.Contains(t, out, "Rs. 30,000")
	assert.Contains(t, out, CompanyName)
}
