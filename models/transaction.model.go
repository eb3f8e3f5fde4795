package models

import (
	"strings"
	"time"
)

// TransactionStatus is the payment provider's final (or interim) verdict on a transaction
type TransactionStatus string

const (
	TransactionStatusApproved TransactionStatus = "APPROVED"
	TransactionStatusPending  TransactionStatus = "PENDING"
	TransactionStatusDeclined TransactionStatus = "DECLINED"
	TransactionStatusError    TransactionStatus = "ERROR"
	TransactionStatusVoided   TransactionStatus = "VOIDED"
)

// AllTransactionStatuses lists every status in display order
var AllTransactionStatuses = []TransactionStatus{
	TransactionStatusApproved,
	TransactionStatusPending,
	TransactionStatusDeclined,
	TransactionStatusError,
	TransactionStatusVoided,
}

// ParseTransactionStatus normalizes case and whitespace; ok is false for unknown values
func ParseTransactionStatus(raw string) (TransactionStatus, bool) {
	s := TransactionStatus(strings.ToUpper(strings.TrimSpace(raw)))
	for _, known := range AllTransactionStatuses {
		if s == known {
			return s, true
		}
	}
	return s, false
}

// IsTerminal reports whether the provider will not change the status any more
func (s TransactionStatus) IsTerminal() bool {
	return s != TransactionStatusPending
}

// Transaction is a payment transaction as verified by the backend
type Transaction struct {
	ID                string            `json:"id"`
	Reference         string            `json:"reference"`
	Status            TransactionStatus `json:"status"`
	StatusMessage     string            `json:"statusMessage,omitempty"`
	AmountInCents     int64             `json:"amountInCents"`
	Currency          string            `json:"currency"`
	PaymentMethodType string            `json:"paymentMethodType,omitempty"`
	CustomerEmail     string            `json:"customerEmail,omitempty"`
	CustomerName      string            `json:"customerName,omitempty"`
	CreatedAt         time.Time         `json:"createdAt"`
	FinalizedAt       *time.Time        `json:"finalizedAt,omitempty"`
}
