package checkout

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"tincadia/cache"
	"tincadia/clients/backend"
	"tincadia/clients/wompi"
	"tincadia/models"
	"tincadia/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	got  backend.InitiatePaymentRequest
	resp *backend.InitiatePaymentResponse
	err  error
}

func (f *fakeGateway) InitiatePayment(_ context.Context, in backend.InitiatePaymentRequest) (*backend.InitiatePaymentResponse, error) {
	f.got = in
	return f.resp, f.err
}

type fakeVerifier struct {
	calls int
	tx    *models.Transaction
	err   error
}

func (f *fakeVerifier) VerifyTransaction(_ context.Context, id string) (*models.Transaction, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	tx := *f.tx
	return &tx, nil
}

func TestInitiateCoursePurchaseRecordsAttempt(t *testing.T) {
	gw := &fakeGateway{resp: &backend.InitiatePaymentResponse{
		CheckoutURL:  "https://checkout.wompi.co/p/",
		WidgetConfig: baseConfig(),
		Reference:    "TIN-COURSE-42",
	}}
	ledger := NewLedger(testutil.DB(t))
	svc := NewService(gw, &fakeVerifier{}, Options{Ledger: ledger})

	d, err := svc.InitiateCoursePurchase(context.Background(), PurchaseRequest{UserID: "u-1", Email: "ana@example.com", CourseID: "c-42"})
	require.NoError(t, err)
	assert.Equal(t, models.CheckoutModeRedirect, d.Mode)

	assert.Equal(t, models.ProductTypeCourse, gw.got.ProductType)
	assert.Equal(t, "c-42", gw.got.ProductID)
	assert.Equal(t, DefaultBillingCycle, gw.got.BillingCycle)

	attempt, err := ledger.FindByReference(context.Background(), "TIN-COURSE-42")
	require.NoError(t, err)
	require.NotNil(t, attempt)
	assert.Equal(t, models.TransactionStatusPending, attempt.Status)
	assert.Equal(t, int64(12900000), attempt.AmountInCents)
	assert.False(t, attempt.Verified)
}

func TestInitiateCoursePurchaseFailures(t *testing.T) {
	svc := NewService(&fakeGateway{err: errors.New("connection refused")}, &fakeVerifier{}, Options{})

	_, err := svc.InitiateCoursePurchase(context.Background(), PurchaseRequest{CourseID: "c-1"})
	assert.ErrorIs(t, err, ErrMissingBuyer)

	_, err = svc.InitiateCoursePurchase(context.Background(), PurchaseRequest{UserID: "u", Email: "e@x.co", CourseID: "c-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")

	svc = NewService(&fakeGateway{resp: &backend.InitiatePaymentResponse{Reference: "r"}}, &fakeVerifier{}, Options{})
	_, err = svc.InitiateCoursePurchase(context.Background(), PurchaseRequest{UserID: "u", Email: "e@x.co", CourseID: "c-1"})
	assert.ErrorIs(t, err, ErrNoCheckoutTarget)
}

func TestReconcilePlaceholderSkipsVerification(t *testing.T) {
	v := &fakeVerifier{}
	svc := NewService(&fakeGateway{}, v, Options{OptimisticFallback: true})

	res := svc.Reconcile(context.Background(), ResponseParams{ID: "approved"})
	assert.Equal(t, StateApproved, res.State)
	assert.False(t, res.Verified)
	assert.Zero(t, v.calls)

	res = svc.Reconcile(context.Background(), ResponseParams{ID: "failed", Status: "failed", Reason: "Fondos%20insuficientes"})
	assert.Equal(t, StateDeclined, res.State)
	assert.Equal(t, "Fondos insuficientes", res.Message)

	res = svc.Reconcile(context.Background(), ResponseParams{Status: "success"})
	assert.Equal(t, StateApproved, res.State)

	res = svc.Reconcile(context.Background(), ResponseParams{})
	assert.Equal(t, StateError, res.State)
	assert.Equal(t, msgMissingID, res.Message)
	assert.Zero(t, v.calls)
}

func TestReconcileFallbackReasonDecoding(t *testing.T) {
	svc := NewService(&fakeGateway{}, &fakeVerifier{}, Options{OptimisticFallback: true})

	res := svc.Reconcile(context.Background(), ResponseParams{ID: "failed", Reason: "Pago+rechazado%20por%20el%20banco"})
	assert.Equal(t, StateDeclined, res.State)
	assert.Equal(t, "Pago+rechazado por el banco", res.Message)

	res = svc.Reconcile(context.Background(), ResponseParams{ID: "failed", Reason: "100%"})
	assert.Equal(t, "100%", res.Message)

	long := strings.Repeat("ñ", maxReasonRunes+40)
	res = svc.Reconcile(context.Background(), ResponseParams{ID: "failed", Reason: long})
	assert.Equal(t, StateDeclined, res.State)
	assert.Equal(t, maxReasonRunes, utf8.RuneCountInString(res.Message))
}

func TestReconcileVerificationFailureFallsBack(t *testing.T) {
	v := &fakeVerifier{err: errors.New("backend down")}
	svc := NewService(&fakeGateway{}, v, Options{OptimisticFallback: true})

	res := svc.Reconcile(context.Background(), ResponseParams{ID: "12822-1718822-44021", Status: "success"})
	assert.Equal(t, StateApproved, res.State)
	assert.Empty(t, res.Message)
	assert.False(t, res.Verified)
	assert.Equal(t, 1, v.calls)

	res = svc.Reconcile(context.Background(), ResponseParams{ID: "12822-1718822-44021"})
	assert.Equal(t, StateError, res.State)
	assert.Equal(t, msgVerificationFailed, res.Message)
}

func TestReconcileStrictModeRejectsUnverified(t *testing.T) {
	svc := NewService(&fakeGateway{}, &fakeVerifier{err: errors.New("timeout")}, Options{OptimisticFallback: false})

	res := svc.Reconcile(context.Background(), ResponseParams{ID: "12822-1718822-44021", Status: "success"})
	assert.Equal(t, StateError, res.State)
	assert.False(t, res.Verified)
}

func TestReconcileUsesVerifiedTransaction(t *testing.T) {
	ledger := NewLedger(testutil.DB(t))
	ctx := context.Background()
	require.NoError(t, ledger.RecordInitiation(ctx, newAttempt("TIN-COURSE-42")))

	v := &fakeVerifier{tx: &models.Transaction{
		ID:            "12822-1718822-44021",
		Reference:     "TIN-COURSE-42",
		Status:        "declined",
		StatusMessage: "Tarjeta rechazada",
		AmountInCents: 12900000,
		Currency:      "COP",
	}}
	svc := NewService(&fakeGateway{}, v, Options{Ledger: ledger, OptimisticFallback: true})

	res := svc.Reconcile(ctx, ResponseParams{ID: "12822-1718822-44021", Status: "success"})
	assert.Equal(t, StateDeclined, res.State)
	assert.True(t, res.Verified)
	require.NotNil(t, res.Transaction)
	assert.Equal(t, int64(12900000), res.Transaction.AmountInCents)
	assert.Equal(t, "Tarjeta rechazada", res.Message)

	attempt, err := ledger.FindByReference(ctx, "TIN-COURSE-42")
	require.NoError(t, err)
	assert.Equal(t, models.TransactionStatusDeclined, attempt.Status)
	assert.Equal(t, "12822-1718822-44021", attempt.TransactionID)
}

func TestReconcileUnverifiedApprovalLeavesLedgerPending(t *testing.T) {
	ledger := NewLedger(testutil.DB(t))
	ctx := context.Background()
	require.NoError(t, ledger.RecordInitiation(ctx, newAttempt("TIN-COURSE-7")))

	svc := NewService(&fakeGateway{}, &fakeVerifier{err: errors.New("502")}, Options{Ledger: ledger, OptimisticFallback: true})
	res := svc.Reconcile(ctx, ResponseParams{ID: "tx-7", Status: "success"})
	assert.Equal(t, StateApproved, res.State)

	attempt, err := ledger.FindByReference(ctx, "TIN-COURSE-7")
	require.NoError(t, err)
	assert.Equal(t, models.TransactionStatusPending, attempt.Status)
}

func TestReconcileUnknownStatusIsError(t *testing.T) {
	svc := NewService(&fakeGateway{}, &fakeVerifier{tx: &models.Transaction{ID: "tx", Status: "REFUNDED"}}, Options{})

	res := svc.Reconcile(context.Background(), ResponseParams{ID: "tx"})
	assert.Equal(t, StateError, res.State)
	assert.Equal(t, msgUnknownStatus, res.Message)
}

type fakeMerchants struct {
	calls int
	err   error
}

func (f *fakeMerchants) PublicKey() string { return "pub_test_abc" }

func (f *fakeMerchants) GetMerchant(context.Context) (*wompi.Merchant, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &wompi.Merchant{
		PresignedAcceptance:       wompi.Acceptance{AcceptanceToken: "eyJhbGciOi", Permalink: "https://wompi.co/terms.pdf"},
		PresignedPersonalDataAuth: &wompi.Acceptance{AcceptanceToken: "pd-token", Permalink: "https://wompi.co/data.pdf"},
	}, nil
}

func TestAcceptanceProviderCaches(t *testing.T) {
	src := &fakeMerchants{}
	provider := NewAcceptanceProvider(src, cache.NewMemory(), time.Minute, nil)

	first, err := provider.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "eyJhbGciOi", first.AcceptanceToken)
	assert.Equal(t, "pd-token", first.PersonalDataToken)

	second, err := provider.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, src.calls)
}

func TestAcceptanceProviderPropagatesProviderError(t *testing.T) {
	provider := NewAcceptanceProvider(&fakeMerchants{err: wompi.ErrMissingPublicKey}, cache.NewMemory(), time.Minute, nil)

	_, err := provider.Get(context.Background())
	assert.ErrorIs(t, err, wompi.ErrMissingPublicKey)
}
