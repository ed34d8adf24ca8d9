// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/task-manager/internal/config"
	"github.com/MKhiriev/task-manager/internal/logger"
	"github.com/MKhiriev/task-manager/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMailAdapter(t *testing.T, serverURL, apiKey string) Notifier {
	t.Helper()
	cfg := config.Adapter{
		MailAPIURL:     serverURL,
		MailAPIKey:     apiKey,
		MailFrom:       "noreply@task-manager.local",
		RequestTimeout: 2 * time.Second,
	}

	n, err := NewHTTPMailAdapter(cfg, logger.Nop())
	require.NoError(t, err)
	return n
}

var welcome = models.Mail{
	To:      "arryan@umich.edu",
	Name:    "Arryan",
	Subject: "Thanks for joining in!",
	Text:    "Welcome to the app, Arryan.",
}

// ── Send ────────────────────────────────────────────────────────────────────

func TestSend_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, sendMailPath, r.URL.Path)
		assert.Equal(t, "Bearer key-1", r.Header.Get("Authorization"))

		var body mailRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "noreply@task-manager.local", body.From)
		assert.Equal(t, welcome.To, body.To)
		assert.Equal(t, welcome.Subject, body.Subject)
		assert.Equal(t, welcome.Text, body.Text)

		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	err := newTestMailAdapter(t, srv.URL, "key-1").Send(context.Background(), welcome)
	require.NoError(t, err)
}

func TestSend_NoAPIKey_NoAuthorizationHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	require.NoError(t, newTestMailAdapter(t, srv.URL, "").Send(context.Background(), welcome))
}

func TestSend_EmptyRecipient(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	err := newTestMailAdapter(t, srv.URL, "").Send(context.Background(), models.Mail{To: "  "})
	assert.ErrorIs(t, err, ErrEmptyRecipient)
	assert.False(t, called)
}

func TestSend_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"bad request", http.StatusBadRequest, ErrMailRejected},
		{"unprocessable", http.StatusUnprocessableEntity, ErrMailRejected},
		{"unauthorized", http.StatusUnauthorized, ErrUnauthorized},
		{"forbidden", http.StatusForbidden, ErrUnauthorized},
		{"not found", http.StatusNotFound, ErrNotFound},
		{"rate limited", http.StatusTooManyRequests, ErrRateLimited},
		{"bad gateway", http.StatusBadGateway, ErrUnavailable},
		{"internal", http.StatusInternalServerError, ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("rejected"))
			}))
			defer srv.Close()

			err := newTestMailAdapter(t, srv.URL, "").Send(context.Background(), welcome)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), "rejected")
		})
	}
}

func TestSend_UnmappedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	err := newTestMailAdapter(t, srv.URL, "").Send(context.Background(), welcome)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 418")
}

func TestSend_RetriesUnavailable(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	err := newTestMailAdapter(t, srv.URL, "").Send(context.Background(), welcome)

	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestSend_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := newTestMailAdapter(t, srv.URL, "").Send(ctx, welcome)
	assert.Error(t, err)
}

// ── constructors ────────────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{"http://mail.local:8025/", "http://mail.local:8025", false},
		{"mail.local:8025", "http://mail.local:8025", false},
		{"  https://api.mail.example/v3  ", "https://api.mail.example/v3", false},
		{"", "", true},
		{"http://", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewHTTPMailAdapter_InvalidURL(t *testing.T) {
	_, err := NewHTTPMailAdapter(config.Adapter{MailAPIURL: "   "}, logger.Nop())
	assert.Error(t, err)
}

func TestNewNotifier(t *testing.T) {
	n, err := NewNotifier(config.Adapter{}, logger.Nop())
	require.NoError(t, err)
	assert.IsType(t, &logNotifier{}, n)

	n, err = NewNotifier(config.Adapter{MailAPIURL: "http://mail.local"}, logger.Nop())
	require.NoError(t, err)
	assert.IsType(t, &httpMailAdapter{}, n)
}

func TestLogNotifier_Send(t *testing.T) {
	n := NewLogNotifier(logger.Nop())

	assert.NoError(t, n.Send(context.Background(), welcome))
	assert.ErrorIs(t, n.Send(context.Background(), models.Mail{}), ErrEmptyRecipient)
}
