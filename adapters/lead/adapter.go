// Package lead delivers completed quotes, with the requesting contact
// attached, to a downstream lead-capture webhook.
//
// Delivery is fire and forget from the caller's point of view: a quote
// is never failed because the webhook is down. The adapter posts the
// payload as JSON first and falls back to a form-encoded post for
// endpoints that cannot accept JSON.
package lead

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"lender-quote/core/quote"
	"lender-quote/core/types"
	"lender-quote/internal/errors"
	"lender-quote/internal/logging"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateLead checks the contact details attached to a delivery
func ValidateLead(l types.Lead) error {
	if strings.TrimSpace(l.ClientName) == "" {
		return errors.Incomplete("client name")
	}
	if l.ClientEmail == "" {
		return errors.Incomplete("client email")
	}
	if !emailPattern.MatchString(l.ClientEmail) {
		return errors.Invalid("client email is not a valid email address")
	}
	if l.ClientPhone != "" {
		digits := 0
		for _, r := range l.ClientPhone {
			if r >= '0' && r <= '9' {
				digits++
			}
		}
		if digits < 10 || digits > 15 {
			return errors.Invalid("client phone must contain 10 to 15 digits")
		}
	}
	return nil
}

// Adapter posts quote payloads to a configured webhook
type Adapter struct {
	url    string
	client *http.Client
}

// New creates a lead adapter for a webhook URL. An empty URL yields a
// disabled adapter whose Deliver is a no-op.
func New(webhookURL string) *Adapter {
	return &Adapter{
		url: webhookURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Enabled reports whether a webhook is configured
func (a *Adapter) Enabled() bool {
	return a.url != ""
}

// payload is the JSON delivery shape
type payload struct {
	Lead  types.Lead         `json:"lead"`
	Quote *types.QuoteResult `json:"quote"`
}

// Deliver posts a quote and its lead to the webhook. The JSON post is
// tried once; on any failure the flattened form encoding is tried once.
// Errors are logged and returned but callers treat them as advisory.
func (a *Adapter) Deliver(ctx context.Context, l types.Lead, res *types.QuoteResult) error {
	if !a.Enabled() {
		return nil
	}
	if err := ValidateLead(l); err != nil {
		return err
	}

	jsonErr := a.deliverJSON(ctx, l, res)
	if jsonErr == nil {
		logging.Info("lead delivered",
			zap.String("variant", string(res.Variant)),
			zap.String("encoding", "json"))
		return nil
	}

	formErr := a.deliverForm(ctx, l, res)
	if formErr == nil {
		logging.Info("lead delivered",
			zap.String("variant", string(res.Variant)),
			zap.String("encoding", "form"))
		return nil
	}

	logging.Warn("lead delivery failed",
		zap.String("variant", string(res.Variant)),
		zap.NamedError("json_error", jsonErr),
		zap.NamedError("form_error", formErr))
	return errors.Wrap(errors.TypeNetwork, "lead delivery failed", formErr)
}

func (a *Adapter) deliverJSON(ctx context.Context, l types.Lead, res *types.QuoteResult) error {
	body, err := json.Marshal(payload{Lead: l, Quote: res})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return a.send(req)
}

func (a *Adapter) deliverForm(ctx context.Context, l types.Lead, res *types.QuoteResult) error {
	form := url.Values{}
	form.Set("clientName", l.ClientName)
	form.Set("clientPhone", l.ClientPhone)
	form.Set("clientEmail", l.ClientEmail)
	for k, v := range quote.Flatten(res) {
		form.Set(k, v)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.url,
		strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return a.send(req)
}

func (a *Adapter) send(req *http.Request) error {
	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
