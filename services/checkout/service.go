// Package checkout starts payments, dispatches the browser to the provider and reconciles
// what the provider reports back.
package checkout

import (
	"context"

	"tincadia/clients/backend"
	"tincadia/logger"
	"tincadia/models"
)

// PaymentGateway creates payment sessions on the backend
type PaymentGateway interface {
	InitiatePayment(ctx context.Context, in backend.InitiatePaymentRequest) (*backend.InitiatePaymentResponse, error)
}

// TransactionVerifier asks the backend for the provider's view of a transaction
type TransactionVerifier interface {
	VerifyTransaction(ctx context.Context, id string) (*models.Transaction, error)
}

type Options struct {
	Ledger             *Ledger // optional
	Logger             *logger.Logger
	OptimisticFallback bool
}

type Service struct {
	payments   PaymentGateway
	verifier   TransactionVerifier
	ledger     *Ledger
	log        *logger.Logger
	optimistic bool
}

func NewService(payments PaymentGateway, verifier TransactionVerifier, opts Options) *Service {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		payments:   payments,
		verifier:   verifier,
		ledger:     opts.Ledger,
		log:        log,
		optimistic: opts.OptimisticFallback,
	}
}
