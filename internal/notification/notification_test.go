package notification

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitalsync/vitalsync-api/internal/config"
)

func TestHTTPEmailSenderSend(t *testing.T) {
	var got struct {
		From    string   `json:"from"`
		To      []string `json:"to"`
		Subject string   `json:"subject"`
		HTML    string   `json:"html"`
	}
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	sender := NewHTTPEmailSender(config.EmailConfig{
		APIKey:  "key-123",
		From:    "alerts@vitalsync.dev",
		BaseURL: server.URL,
	}, zerolog.Nop())

	require.True(t, sender.Configured())
	err := sender.Send(context.Background(), []string{"admin@example.com"}, "Critical alert", "<h1>hi</h1>")
	require.NoError(t, err)
	assert.Equal(t, "Bearer key-123", auth)
	assert.Equal(t, "alerts@vitalsync.dev", got.From)
	assert.Equal(t, []string{"admin@example.com"}, got.To)
	assert.Equal(t, "Critical alert", got.Subject)
}

func TestHTTPEmailSenderProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	sender := NewHTTPEmailSender(config.EmailConfig{APIKey: "k", From: "f", BaseURL: server.URL}, zerolog.Nop())
	err := sender.Send(context.Background(), []string{"a@example.com"}, "s", "<p/>")
	assert.Error(t, err)
}

func TestHTTPEmailSenderUnconfigured(t *testing.T) {
	sender := NewHTTPEmailSender(config.EmailConfig{From: "f", BaseURL: "http://localhost"}, zerolog.Nop())
	assert.False(t, sender.Configured())
	assert.Error(t, sender.Send(context.Background(), []string{"a@example.com"}, "s", "<p/>"))
}

func TestTwilioSMSSenderSend(t *testing.T) {
	var gotPath, gotTo, gotFrom, gotBody string
	var user, pass string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		user, pass, _ = r.BasicAuth()
		require.NoError(t, r.ParseForm())
		gotTo = r.PostForm.Get("To")
		gotFrom = r.PostForm.Get("From")
		gotBody = r.PostForm.Get("Body")
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	sender := NewTwilioSMSSender(config.SMSConfig{
		AccountSID: "AC123",
		AuthToken:  "token",
		FromNumber: "+15550100",
		BaseURL:    server.URL,
	}, zerolog.Nop())

	require.True(t, sender.Configured())
	err := sender.Send(context.Background(), "+911234567890", "[VitalSync CRITICAL] test")
	require.NoError(t, err)
	assert.Equal(t, "/2010-04-01/Accounts/AC123/Messages.json", gotPath)
	assert.Equal(t, "AC123", user)
	assert.Equal(t, "token", pass)
	assert.Equal(t, "+911234567890", gotTo)
	assert.Equal(t, "+15550100", gotFrom)
	assert.Equal(t, "[VitalSync CRITICAL] test", gotBody)
}

func TestTwilioSMSSenderUnconfigured(t *testing.T) {
	sender := NewTwilioSMSSender(config.SMSConfig{AccountSID: "AC123"}, zerolog.Nop())
	assert.False(t, sender.Configured())
	assert.Error(t, sender.Send(context.Background(), "+1", "body"))
}
