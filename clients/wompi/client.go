// Package wompi talks to the Wompi payments API.
package wompi

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

var ErrMissingPublicKey = errors.New("wompi: public key not configured")

// Acceptance is a presigned legal acceptance the buyer must accept before paying
type Acceptance struct {
	AcceptanceToken string `json:"acceptance_token"`
	Permalink       string `json:"permalink"`
	Type            string `json:"type"`
}

// Merchant is the subset of the merchant endpoint this service relies on
type Merchant struct {
	Name                      string      `json:"name"`
	PublicKey                 string      `json:"public_key"`
	PresignedAcceptance       Acceptance  `json:"presigned_acceptance"`
	PresignedPersonalDataAuth *Acceptance `json:"presigned_personal_data_auth,omitempty"`
	AcceptedPaymentMethods    []string    `json:"accepted_payment_methods"`
	AcceptedCurrencies        []string    `json:"accepted_currencies"`
}

type merchantResponse struct {
	Data Merchant `json:"data"`
}

type errorResponse struct {
	Error struct {
		Type     string                 `json:"type"`
		Reason   string                 `json:"reason"`
		Messages map[string]interface{} `json:"messages"`
	} `json:"error"`
}

// ProviderError is a structured rejection from Wompi
type ProviderError struct {
	Status int
	Type   string
	Reason string
}

func (e *ProviderError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("wompi: %d %s: %s", e.Status, e.Type, e.Reason)
	}
	return fmt.Sprintf("wompi: status %d", e.Status)
}

type Client struct {
	http      *resty.Client
	publicKey string
}

func New(baseURL, publicKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		http: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetTimeout(timeout).
			SetHeader("Accept", "application/json"),
		publicKey: publicKey,
	}
}

// PublicKey returns the merchant public key the client was built with
func (c *Client) PublicKey() string {
	return c.publicKey
}

// GetMerchant fetches merchant information, including the current acceptance token
func (c *Client) GetMerchant(ctx context.Context) (*Merchant, error) {
	if c.publicKey == "" {
		return nil, ErrMissingPublicKey
	}

	var out merchantResponse
	var failure errorResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		SetError(&failure).
		Get("/merchants/" + url.PathEscape(c.publicKey))
	if err != nil {
		return nil, fmt.Errorf("wompi merchant: %w", err)
	}
	if resp.IsError() {
		return nil, &ProviderError{Status: resp.StatusCode(), Type: failure.Error.Type, Reason: failure.Error.Reason}
	}
	if out.Data.PresignedAcceptance.AcceptanceToken == "" {
		return nil, fmt.Errorf("wompi merchant: empty acceptance token")
	}
	return &out.Data, nil
}
