package whatsapp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendTextMessagePayload(t *testing.T) {
	var got TextMessageRequest
	var path, auth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(MessageResponse{MessagingProduct: "whatsapp"})
	}))
	defer srv.Close()

	client := NewClient("token123", srv.URL, "phone1", http.Client{})

	err := client.SendTextMessage(context.Background(), "15551234567", "Hi!")
	require.NoError(t, err)

	assert.Equal(t, "/phone1/messages", path)
	assert.Equal(t, "Bearer token123", auth)
	assert.Equal(t, "whatsapp", got.MessagingProduct)
	assert.Equal(t, "individual", got.RecipientType)
	assert.Equal(t, "15551234567", got.To)
	assert.Equal(t, "text", got.Type)
	assert.Equal(t, "Hi!", got.Text.Body)
}

func TestSendTextMessageRejectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient("bad-token", srv.URL, "phone1", http.Client{})

	err := client.SendTextMessage(context.Background(), "15551234567", "Hi!")
	assert.Error(t, err)
}

func TestMarkMessageAsRead(t *testing.T) {
	var got MarkAsReadRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	client := NewClient("token123", srv.URL, "phone1", http.Client{})

	err := client.MarkMessageAsRead(context.Background(), "wamid.abc")
	require.NoError(t, err)

	assert.Equal(t, "read", got.Status)
	assert.Equal(t, "wamid.abc", got.MessageID)
}
