package models

// CustomerData is the optional buyer information forwarded to the provider checkout
type CustomerData struct {
	Email             string `json:"email,omitempty"`
	FullName          string `json:"fullName,omitempty"`
	PhoneNumber       string `json:"phoneNumber,omitempty"`
	PhoneNumberPrefix string `json:"phoneNumberPrefix,omitempty"`
	LegalID           string `json:"legalId,omitempty"`
	LegalIDType       string `json:"legalIdType,omitempty"`
}

// Signature carries the integrity hash computed by the backend
type Signature struct {
	Integrity string `json:"integrity,omitempty"`
}

// WidgetConfig is the transient checkout configuration returned by the backend.
// It is never persisted.
type WidgetConfig struct {
	PublicKey     string        `json:"publicKey"`
	Currency      string        `json:"currency"`
	AmountInCents int64         `json:"amountInCents"`
	Reference     string        `json:"reference"`
	Signature     *Signature    `json:"signature,omitempty"`
	RedirectURL   string        `json:"redirectUrl,omitempty"`
	CustomerData  *CustomerData `json:"customerData,omitempty"`
}

// Integrity returns the integrity signature, or "" when none was provided
func (w WidgetConfig) Integrity() string {
	if w.Signature == nil {
		return ""
	}
	return w.Signature.Integrity
}
