package models

import "time"

// SubscriptionStatus enum values, as reported by the backend
const (
	SubscriptionActive   = "active"
	SubscriptionPastDue  = "past_due"
	SubscriptionCanceled = "canceled"
)

// Subscription is a user's recurring plan
type Subscription struct {
	ID                 string    `json:"id"`
	PlanID             string    `json:"planId"`
	PlanName           string    `json:"planName,omitempty"`
	Status             string    `json:"status"`
	CurrentPeriodStart time.Time `json:"currentPeriodStart"`
	CurrentPeriodEnd   time.Time `json:"currentPeriodEnd"`
	CancelAtPeriodEnd  bool      `json:"cancelAtPeriodEnd"`
}

// IsActive reports whether the subscription still grants access at now.
// A canceled or past-due subscription stays usable until the paid-through period end
// only when it was scheduled to cancel at period end.
func (s Subscription) IsActive(now time.Time) bool {
	switch s.Status {
	case SubscriptionActive:
		return true
	case SubscriptionCanceled, SubscriptionPastDue:
		return s.CancelAtPeriodEnd && now.Before(s.CurrentPeriodEnd)
	default:
		return false
	}
}
