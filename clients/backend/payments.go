package backend

import (
	"context"
	"net/http"
	"net/url"

	"tincadia/models"
)

// InitiatePaymentRequest is the shared payment DTO. Amount is deliberately absent:
// the backend prices the product itself.
type InitiatePaymentRequest struct {
	UserID       string             `json:"userId"`
	Email        string             `json:"email"`
	ProductType  models.ProductType `json:"productType"`
	ProductID    string             `json:"productId"`
	BillingCycle string             `json:"billingCycle"`
}

// InitiatePaymentResponse carries a hosted checkout URL, a widget configuration, or both
type InitiatePaymentResponse struct {
	CheckoutURL  string               `json:"checkoutUrl,omitempty"`
	WidgetConfig *models.WidgetConfig `json:"widgetConfig,omitempty"`
	Reference    string               `json:"reference"`
}

func (c *Client) InitiatePayment(ctx context.Context, in InitiatePaymentRequest) (*InitiatePaymentResponse, error) {
	var out InitiatePaymentResponse
	req := c.request(ctx).SetBody(in)
	if err := c.do(req, http.MethodPost, "/payments/initiate", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyTransaction asks the backend for the provider's current view of a transaction
func (c *Client) VerifyTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	var out models.Transaction
	if err := c.do(c.request(ctx), http.MethodGet, "/payments/transactions/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindTransactionByReference looks a transaction up by the reference generated at initiation
func (c *Client) FindTransactionByReference(ctx context.Context, reference string) (*models.Transaction, error) {
	var out models.Transaction
	path := "/payments/transactions/by-reference/" + url.PathEscape(reference)
	if err := c.do(c.request(ctx), http.MethodGet, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
