package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tincadia/clients/backend"
	"tincadia/models"
)

// DefaultBillingCycle fills the billing cycle the shared payment DTO requires, even for one-time purchases
const DefaultBillingCycle = "MONTHLY"

var ErrMissingBuyer = errors.New("checkout: authenticated buyer required")

type PurchaseRequest struct {
	UserID       string
	Email        string
	CourseID     string
	BillingCycle string
}

// InitiateCoursePurchase asks the backend to open a payment for a course and resolves how the
// browser should reach the provider. The amount is never sent; the backend prices the course.
// Failures are returned to the caller as-is and never retried.
func (s *Service) InitiateCoursePurchase(ctx context.Context, in PurchaseRequest) (*Dispatch, error) {
	if strings.TrimSpace(in.UserID) == "" || strings.TrimSpace(in.Email) == "" {
		return nil, ErrMissingBuyer
	}
	cycle := in.BillingCycle
	if cycle == "" {
		cycle = DefaultBillingCycle
	}

	resp, err := s.payments.InitiatePayment(ctx, backend.InitiatePaymentRequest{
		UserID:       in.UserID,
		Email:        in.Email,
		ProductType:  models.ProductTypeCourse,
		ProductID:    in.CourseID,
		BillingCycle: cycle,
	})
	if err != nil {
		return nil, fmt.Errorf("initiate payment: %w", err)
	}

	dispatch, err := DispatchCheckout(resp)
	if err != nil {
		return nil, err
	}

	s.record(ctx, in, resp, dispatch)
	return dispatch, nil
}

// record keeps an audit row of the attempt; a ledger failure never blocks the buyer
func (s *Service) record(ctx context.Context, in PurchaseRequest, resp *backend.InitiatePaymentResponse, d *Dispatch) {
	if s.ledger == nil || d.Reference == "" {
		return
	}
	attempt := &models.CheckoutAttempt{
		Reference:   d.Reference,
		UserID:      in.UserID,
		Email:       in.Email,
		ProductType: models.ProductTypeCourse,
		ProductID:   in.CourseID,
		Mode:        d.Mode,
		Status:      models.TransactionStatusPending,
	}
	if cfg := resp.WidgetConfig; cfg != nil {
		attempt.AmountInCents = cfg.AmountInCents
		attempt.Currency = cfg.Currency
	}
	if err := s.ledger.RecordInitiation(ctx, attempt); err != nil {
		s.log.Error("failed to record checkout attempt", "reference", d.Reference, "error", err)
		return
	}
	s.log.Info("checkout initiated", "reference", d.Reference, "mode", d.Mode, "course_id", in.CourseID, "user_id", in.UserID)
}
