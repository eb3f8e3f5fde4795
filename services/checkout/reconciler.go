package checkout

import (
	"context"
	"net/url"
	"strings"

	"tincadia/models"
)

// State is what the payment response page shows
type State string

const (
	StateLoading  State = "loading"
	StateApproved State = State(models.TransactionStatusApproved)
	StatePending  State = State(models.TransactionStatusPending)
	StateDeclined State = State(models.TransactionStatusDeclined)
	StateError    State = State(models.TransactionStatusError)
	StateVoided   State = State(models.TransactionStatusVoided)
)

const (
	placeholderApproved = "approved"
	placeholderFailed   = "failed"

	statusSuccess = "success"
	statusFailed  = "failed"

	maxReasonRunes = 500
)

const (
	msgMissingID          = "No se encontró el identificador de la transacción."
	msgVerificationFailed = "No pudimos verificar el estado de tu pago."
	msgUnknownStatus      = "El proveedor de pagos devolvió un estado desconocido."
)

// ResponseParams are the query parameters the provider redirect carries back
type ResponseParams struct {
	ID     string `query:"id"`
	Status string `query:"status"`
	Reason string `query:"reason"`
}

// Result is the reconciled outcome. Verified is true only when the backend confirmed the status.
type Result struct {
	State         State               `json:"state"`
	Message       string              `json:"message,omitempty"`
	Verified      bool                `json:"verified"`
	TransactionID string              `json:"transactionId,omitempty"`
	Transaction   *models.Transaction `json:"transaction,omitempty"`
}

func isPlaceholderID(id string) bool {
	switch strings.ToLower(id) {
	case "", placeholderApproved, placeholderFailed:
		return true
	}
	return false
}

// Reconcile maps a provider redirect to a final state. Placeholder or missing ids are resolved
// from the query alone; real ids are verified against the backend first.
func (s *Service) Reconcile(ctx context.Context, p ResponseParams) Result {
	id := strings.TrimSpace(p.ID)

	if isPlaceholderID(id) {
		if res, ok := fallback(p); ok {
			return res
		}
		return Result{State: StateError, Message: msgMissingID}
	}

	tx, err := s.verifier.VerifyTransaction(ctx, id)
	if err != nil {
		s.log.Warn("transaction verification failed", "transaction_id", id, "error", err)
		if s.optimistic {
			if res, ok := fallback(p); ok {
				res.TransactionID = id
				res.Message = ""
				return res
			}
		}
		return Result{State: StateError, Message: msgVerificationFailed, TransactionID: id}
	}

	status, known := models.ParseTransactionStatus(string(tx.Status))
	if !known {
		s.log.Warn("unknown transaction status", "transaction_id", id, "status", tx.Status)
		return Result{State: StateError, Message: msgUnknownStatus, TransactionID: id, Transaction: tx}
	}
	tx.Status = status
	if tx.ID == "" {
		tx.ID = id
	}

	s.applyToLedger(ctx, tx)

	res := Result{State: State(status), Verified: true, TransactionID: tx.ID, Transaction: tx}
	if status != models.TransactionStatusApproved {
		res.Message = tx.StatusMessage
	}
	return res
}

// fallback derives a state from the redirect query. An explicit status wins; a bare
// placeholder id stands for its own outcome.
func fallback(p ResponseParams) (Result, bool) {
	status := strings.ToLower(strings.TrimSpace(p.Status))
	if status == "" {
		switch strings.ToLower(strings.TrimSpace(p.ID)) {
		case placeholderApproved:
			status = statusSuccess
		case placeholderFailed:
			status = statusFailed
		}
	}

	switch status {
	case statusSuccess:
		return Result{State: StateApproved}, true
	case statusFailed:
		return Result{State: StateDeclined, Message: decodeReason(p.Reason)}, true
	}
	return Result{}, false
}

func decodeReason(raw string) string {
	if raw == "" {
		return ""
	}
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		decoded = raw
	}
	decoded = strings.TrimSpace(decoded)
	if r := []rune(decoded); len(r) > maxReasonRunes {
		decoded = strings.TrimSpace(string(r[:maxReasonRunes]))
	}
	return decoded
}

func (s *Service) applyToLedger(ctx context.Context, tx *models.Transaction) {
	if s.ledger == nil {
		return
	}
	attempt, changed, err := s.ledger.ApplyVerified(ctx, tx)
	if err != nil {
		s.log.Error("failed to update checkout attempt", "reference", tx.Reference, "error", err)
		return
	}
	if attempt != nil && changed {
		s.log.Info("checkout attempt updated", "reference", attempt.Reference, "status", attempt.Status)
	}
}
