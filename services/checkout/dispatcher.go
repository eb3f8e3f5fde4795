package checkout

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"tincadia/clients/backend"
	"tincadia/models"
)

var (
	// ErrNoCheckoutTarget means the backend returned neither a checkout URL nor a widget configuration
	ErrNoCheckoutTarget = errors.New("checkout: backend returned no checkout url and no widget config")
	// ErrIncompleteCheckout means a hosted checkout URL arrived without the configuration its query needs
	ErrIncompleteCheckout = errors.New("checkout: checkout url returned without widget config")
)

// Dispatch tells the browser how to reach the payment provider
type Dispatch struct {
	Mode         models.CheckoutMode  `json:"mode"`
	URL          string               `json:"url,omitempty"`
	WidgetConfig *models.WidgetConfig `json:"widgetConfig,omitempty"`
	Reference    string               `json:"reference"`
}

// DispatchCheckout prefers the provider-hosted redirect and falls back to the embedded widget.
// The widget configuration is handed over untouched.
func DispatchCheckout(resp *backend.InitiatePaymentResponse) (*Dispatch, error) {
	if resp == nil {
		return nil, ErrNoCheckoutTarget
	}

	if resp.CheckoutURL != "" {
		if resp.WidgetConfig == nil {
			return nil, ErrIncompleteCheckout
		}
		return &Dispatch{
			Mode:      models.CheckoutModeRedirect,
			URL:       resp.CheckoutURL + "?" + BuildCheckoutQuery(*resp.WidgetConfig),
			Reference: referenceOf(resp),
		}, nil
	}

	if resp.WidgetConfig != nil {
		return &Dispatch{
			Mode:         models.CheckoutModeWidget,
			WidgetConfig: resp.WidgetConfig,
			Reference:    referenceOf(resp),
		}, nil
	}

	return nil, ErrNoCheckoutTarget
}

func referenceOf(resp *backend.InitiatePaymentResponse) string {
	if resp.Reference != "" {
		return resp.Reference
	}
	if resp.WidgetConfig != nil {
		return resp.WidgetConfig.Reference
	}
	return ""
}

// BuildCheckoutQuery renders the hosted-checkout query string. Keys are the provider's
// contract and are emitted verbatim, in a fixed order; optional keys are dropped when empty.
func BuildCheckoutQuery(cfg models.WidgetConfig) string {
	type param struct{ key, value string }

	params := []param{
		{"public-key", cfg.PublicKey},
		{"currency", cfg.Currency},
		{"amount-in-cents", strconv.FormatInt(cfg.AmountInCents, 10)},
		{"reference", cfg.Reference},
		{"redirect-url", cfg.RedirectURL},
	}

	optional := []param{{"signature:integrity", cfg.Integrity()}}
	if cd := cfg.CustomerData; cd != nil {
		optional = append(optional,
			param{"customer-data:email", cd.Email},
			param{"customer-data:full-name", cd.FullName},
			param{"customer-data:phone-number", cd.PhoneNumber},
			param{"customer-data:legal-id", cd.LegalID},
		)
	}
	for _, p := range optional {
		if strings.TrimSpace(p.value) != "" {
			params = append(params, p)
		}
	}

	var b strings.Builder
	for i, p := range params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(p.key)
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.value))
	}
	return b.String()
}
