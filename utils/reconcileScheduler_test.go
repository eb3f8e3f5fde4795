package utils

import (
	"context"
	"errors"
	"testing"
	"time"

	"tincadia/clients/backend"
	"tincadia/logger"
	"tincadia/models"
	"tincadia/services/checkout"
	"tincadia/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLookup struct {
	byID  map[string]*models.Transaction
	byRef map[string]*models.Transaction
	err   error
}

func (f *fakeLookup) VerifyTransaction(_ context.Context, id string) (*models.Transaction, error) {
	if f.err != nil {
		return nil, f.err
	}
	if tx, ok := f.byID[id]; ok {
		cp := *tx
		return &cp, nil
	}
	return nil, &backend.APIError{Status: 404, Path: "/payments/transactions/" + id}
}

func (f *fakeLookup) FindTransactionByReference(_ context.Context, ref string) (*models.Transaction, error) {
	if f.err != nil {
		return nil, f.err
	}
	if tx, ok := f.byRef[ref]; ok {
		cp := *tx
		return &cp, nil
	}
	return nil, &backend.APIError{Status: 404, Path: "/payments/transactions/by-reference/" + ref}
}

type recordingMailer struct {
	sent []string
	err  error
}

func (m *recordingMailer) Send(_ context.Context, to, _, _, _ string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, to)
	return nil
}

func seed(t *testing.T, ledger *checkout.Ledger, ref, txID string, createdAt time.Time) {
	t.Helper()
	a := &models.CheckoutAttempt{
		Reference:     ref,
		UserID:        "u-1",
		Email:         ref + "@example.com",
		ProductType:   models.ProductTypeCourse,
		ProductID:     "c-1",
		TransactionID: txID,
	}
	a.CreatedAt = createdAt
	require.NoError(t, ledger.RecordInitiation(context.Background(), a))
}

func newJob(t *testing.T, lookup TransactionLookup, mailer Mailer) (*ReconcileJob, *checkout.Ledger) {
	ledger := checkout.NewLedger(testutil.DB(t))
	return &ReconcileJob{
		Ledger:       ledger,
		Transactions: lookup,
		Mailer:       mailer,
		Log:          logger.Nop(),
		AbandonAfter: 48 * time.Hour,
		FrontendURL:  "https://tincadia.com/cursos",
	}, ledger
}

func TestReconcileJobResolvesAndNotifiesOnce(t *testing.T) {
	lookup := &fakeLookup{
		byID:  map[string]*models.Transaction{"tx-1": {ID: "tx-1", Status: "APPROVED"}},
		byRef: map[string]*models.Transaction{"ref-2": {ID: "tx-2", Reference: "ref-2", Status: "DECLINED"}},
	}
	mailer := &recordingMailer{}
	job, ledger := newJob(t, lookup, mailer)
	ctx := context.Background()

	seed(t, ledger, "ref-1", "tx-1", time.Now())
	seed(t, ledger, "ref-2", "", time.Now())

	stats := job.Run(ctx)
	assert.Equal(t, 2, stats.Checked)
	assert.Equal(t, 2, stats.Resolved)
	assert.Equal(t, 1, stats.Notified)
	assert.Equal(t, []string{"ref-1@example.com"}, mailer.sent)

	a, err := ledger.FindByReference(ctx, "ref-2")
	require.NoError(t, err)
	assert.Equal(t, models.TransactionStatusDeclined, a.Status)
	assert.Equal(t, "tx-2", a.TransactionID)

	stats = job.Run(ctx)
	assert.Zero(t, stats.Checked)
	assert.Zero(t, stats.Notified)
	assert.Len(t, mailer.sent, 1)
}

func TestReconcileJobAbandonsStaleUnknownAttempts(t *testing.T) {
	job, ledger := newJob(t, &fakeLookup{}, nil)
	ctx := context.Background()

	seed(t, ledger, "stale", "", time.Now().Add(-72*time.Hour))
	seed(t, ledger, "fresh", "", time.Now())

	stats := job.Run(ctx)
	assert.Equal(t, 1, stats.Abandoned)

	stale, _ := ledger.FindByReference(ctx, "stale")
	assert.Equal(t, models.TransactionStatusError, stale.Status)
	fresh, _ := ledger.FindByReference(ctx, "fresh")
	assert.Equal(t, models.TransactionStatusPending, fresh.Status)
	assert.NotNil(t, fresh.LastCheckedAt)
}

func TestReconcileJobKeepsPendingOnBackendFailure(t *testing.T) {
	job, ledger := newJob(t, &fakeLookup{err: errors.New("connection refused")}, &recordingMailer{})
	ctx := context.Background()
	seed(t, ledger, "old", "", time.Now().Add(-72*time.Hour))

	stats := job.Run(ctx)
	assert.Zero(t, stats.Abandoned)

	a, _ := ledger.FindByReference(ctx, "old")
	assert.Equal(t, models.TransactionStatusPending, a.Status)
}

func TestReconcileJobRetriesFailedEmail(t *testing.T) {
	lookup := &fakeLookup{byID: map[string]*models.Transaction{"tx-1": {ID: "tx-1", Status: "APPROVED"}}}
	mailer := &recordingMailer{err: errors.New("sendgrid down")}
	job, ledger := newJob(t, lookup, mailer)
	seed(t, ledger, "ref-1", "tx-1", time.Now())

	stats := job.Run(context.Background())
	assert.Zero(t, stats.Notified)

	mailer.err = nil
	stats = job.Run(context.Background())
	assert.Equal(t, 1, stats.Notified)
}
