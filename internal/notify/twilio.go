// Package notify dispatches SMS alerts through the Twilio REST API. The
// core pipeline never calls this; it is invoked by the CLI after a flag is
// surfaced and the user decides to alert.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.twilio.com"

// Credential environment variables.
const (
	EnvAccountSID = "TWILIO_ACCOUNT_SID"
	EnvAuthToken  = "TWILIO_AUTH_TOKEN"
	EnvFrom       = "TWILIO_FROM"
	EnvTo         = "TWILIO_TO"
)

// Sender sends SMS messages via Twilio.
type Sender struct {
	accountSID string
	authToken  string
	from       string
	defaultTo  string

	baseURL string
	client  *http.Client
}

// NewFromEnv builds a Sender from the TWILIO_* environment variables.
// Returns an error when any required credential is missing.
func NewFromEnv() (*Sender, error) {
	sid := os.Getenv(EnvAccountSID)
	token := os.Getenv(EnvAuthToken)
	from := os.Getenv(EnvFrom)
	if sid == "" || token == "" || from == "" {
		return nil, fmt.Errorf("missing Twilio credentials: set %s, %s and %s", EnvAccountSID, EnvAuthToken, EnvFrom)
	}
	return &Sender{
		accountSID: sid,
		authToken:  token,
		from:       from,
		defaultTo:  os.Getenv(EnvTo),
		baseURL:    defaultBaseURL,
		client:     &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// NewSender builds a Sender with explicit credentials; baseURL may be
// overridden for tests.
func NewSender(accountSID, authToken, from, defaultTo, baseURL string) *Sender {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Sender{
		accountSID: accountSID,
		authToken:  authToken,
		from:       from,
		defaultTo:  defaultTo,
		baseURL:    baseURL,
		client:     &http.Client{Timeout: 30 * time.Second},
	}
}

// messageResponse is the slice of the Twilio message resource we use.
type messageResponse struct {
	SID     string `json:"sid"`
	Message string `json:"message"` // error detail on non-2xx
}

// Send delivers body to the destination (falling back to the configured
// default). On success the returned text carries the message SID; on
// failure the error carries the gateway diagnostic.
func (s *Sender) Send(ctx context.Context, body, to string) (string, error) {
	dest := to
	if dest == "" {
		dest = s.defaultTo
	}
	if dest == "" {
		return "", fmt.Errorf("no destination phone number provided (set %s or pass one)", EnvTo)
	}

	form := url.Values{}
	form.Set("Body", body)
	form.Set("From", s.from)
	form.Set("To", dest)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", s.baseURL, s.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.SetBasicAuth(s.accountSID, s.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("sending SMS: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading gateway response: %w", err)
	}

	var msg messageResponse
	if err := json.Unmarshal(raw, &msg); err != nil {
		msg = messageResponse{}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := msg.Message
		if detail == "" {
			detail = strings.TrimSpace(string(raw))
		}
		return "", fmt.Errorf("gateway returned %d: %s", resp.StatusCode, detail)
	}

	return fmt.Sprintf("Sent message, SID=%s", msg.SID), nil
}
