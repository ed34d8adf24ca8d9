package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/task-manager/internal/config"
	"github.com/MKhiriev/task-manager/internal/logger"
	"github.com/MKhiriev/task-manager/internal/utils"
	"github.com/MKhiriev/task-manager/models"
)

// mailRetries is how many times a rate-limited or failed send is repeated.
const mailRetries = 2

const sendMailPath = "/mail/send"

// mailRequest is the JSON body accepted by the mail API.
type mailRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Name    string `json:"name,omitempty"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

type httpMailAdapter struct {
	client *utils.HTTPClient

	apiKey string
	from   string

	logger *logger.Logger
}

// NewHTTPMailAdapter constructs an HTTP implementation of [Notifier].
// It normalises and validates the base URL from cfg.MailAPIURL and
// configures the underlying HTTP client with the resolved base URL and
// request timeout.
//
// Returns an error if cfg.MailAPIURL is empty or cannot be parsed as a
// valid URL.
func NewHTTPMailAdapter(cfg config.Adapter, logger *logger.Logger) (Notifier, error) {
	baseURL, err := normalizeBaseURL(cfg.MailAPIURL)
	if err != nil {
		return nil, fmt.Errorf("invalid mail API address: %w", err)
	}

	return &httpMailAdapter{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout).WithRetries(mailRetries),
		apiKey: cfg.MailAPIKey,
		from:   cfg.MailFrom,
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Send implements [Notifier]. The API key, when configured, is attached as
// a bearer token.
func (h *httpMailAdapter) Send(ctx context.Context, mail models.Mail) error {
	if strings.TrimSpace(mail.To) == "" {
		return ErrEmptyRecipient
	}

	req := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(mailRequest{
			From:    h.from,
			To:      mail.To,
			Name:    mail.Name,
			Subject: mail.Subject,
			Text:    mail.Text,
		})
	if h.apiKey != "" {
		req.SetAuthToken(h.apiKey)
	}

	resp, err := req.Post(sendMailPath)
	if err != nil {
		return fmt.Errorf("send mail request: %w", err)
	}
	if err = mapMailAPIError(resp); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*httpMailAdapter.Send").
			Int("status", resp.StatusCode()).
			Msg("mail API rejected the mail")
		return err
	}

	return nil
}
