package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"tincadia/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Ledger is the local record of checkout attempts
type Ledger struct {
	DB  *gorm.DB
	now func() time.Time
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{DB: db, now: time.Now}
}

// RecordInitiation stores a new PENDING attempt. Re-recording a known reference is a no-op.
func (l *Ledger) RecordInitiation(ctx context.Context, attempt *models.CheckoutAttempt) error {
	if attempt.Status == "" {
		attempt.Status = models.TransactionStatusPending
	}
	return l.DB.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "reference"}}, DoNothing: true}).
		Create(attempt).Error
}

// FindByReference returns the attempt for a reference, or nil when unknown
func (l *Ledger) FindByReference(ctx context.Context, reference string) (*models.CheckoutAttempt, error) {
	var attempt models.CheckoutAttempt
	err := l.DB.WithContext(ctx).Where("reference = ?", reference).First(&attempt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

// ApplyVerified stores a backend-verified transaction on its attempt. It returns the
// updated attempt (nil when the reference is unknown) and whether the status changed.
func (l *Ledger) ApplyVerified(ctx context.Context, tx *models.Transaction) (*models.CheckoutAttempt, bool, error) {
	if tx == nil || tx.Reference == "" {
		return nil, false, nil
	}

	var (
		attempt models.CheckoutAttempt
		changed bool
	)
	err := l.DB.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		if err := db.Where("reference = ?", tx.Reference).First(&attempt).Error; err != nil {
			return err
		}

		if attempt.Status.IsTerminal() && !tx.Status.IsTerminal() {
			return nil
		}

		payload, err := json.Marshal(tx)
		if err != nil {
			return err
		}
		now := l.now()
		changed = attempt.Status != tx.Status

		attempt.Status = tx.Status
		attempt.Verified = true
		attempt.LastCheckedAt = &now
		attempt.ProviderPayload = datatypes.JSON(payload)
		if tx.ID != "" {
			attempt.TransactionID = tx.ID
		}
		if tx.AmountInCents > 0 {
			attempt.AmountInCents = tx.AmountInCents
		}
		if tx.Currency != "" {
			attempt.Currency = tx.Currency
		}
		return db.Save(&attempt).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &attempt, changed, nil
}

// Touch records that an attempt was checked without a usable answer
func (l *Ledger) Touch(ctx context.Context, id uint) error {
	return l.DB.WithContext(ctx).Model(&models.CheckoutAttempt{}).
		Where("id = ?", id).
		Update("last_checked_at", l.now()).Error
}

// ListPending returns unresolved attempts, least recently checked first
func (l *Ledger) ListPending(ctx context.Context, limit int) ([]models.CheckoutAttempt, error) {
	var attempts []models.CheckoutAttempt
	err := l.DB.WithContext(ctx).
		Where("status = ?", models.TransactionStatusPending).
		Order("last_checked_at IS NOT NULL, last_checked_at ASC, created_at ASC").
		Limit(limit).
		Find(&attempts).Error
	return attempts, err
}

// ListUnnotified returns verified approvals whose buyer has not been emailed yet
func (l *Ledger) ListUnnotified(ctx context.Context, limit int) ([]models.CheckoutAttempt, error) {
	var attempts []models.CheckoutAttempt
	err := l.DB.WithContext(ctx).
		Where("status = ? AND verified = ? AND notified_at IS NULL", models.TransactionStatusApproved, true).
		Order("created_at ASC").
		Limit(limit).
		Find(&attempts).Error
	return attempts, err
}

// MarkAbandoned closes an attempt the provider never heard of
func (l *Ledger) MarkAbandoned(ctx context.Context, id uint) error {
	return l.DB.WithContext(ctx).Model(&models.CheckoutAttempt{}).
		Where("id = ? AND status = ?", id, models.TransactionStatusPending).
		Updates(map[string]interface{}{
			"status":          models.TransactionStatusError,
			"last_checked_at": l.now(),
		}).Error
}

// MarkNotified stamps the confirmation email as sent
func (l *Ledger) MarkNotified(ctx context.Context, id uint) error {
	return l.DB.WithContext(ctx).Model(&models.CheckoutAttempt{}).
		Where("id = ?", id).
		Update("notified_at", l.now()).Error
}
