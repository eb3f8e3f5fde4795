package utils

import (
	"context"
	"errors"
	"time"

	"tincadia/clients/backend"
	"tincadia/logger"
	"tincadia/models"
	"tincadia/models/course"
	"tincadia/services/checkout"

	"github.com/robfig/cron/v3"
)

// TransactionLookup reads the backend's view of a transaction
type TransactionLookup interface {
	VerifyTransaction(ctx context.Context, id string) (*models.Transaction, error)
	FindTransactionByReference(ctx context.Context, reference string) (*models.Transaction, error)
}

type CourseLookup interface {
	GetCourse(ctx context.Context, id string) (*course.Course, error)
}

// ReconcileJob re-verifies checkout attempts the browser never confirmed and emails
// buyers once their payment is verified as approved.
type ReconcileJob struct {
	Ledger       *checkout.Ledger
	Transactions TransactionLookup
	Courses      CourseLookup // optional, used for email wording
	Mailer       Mailer
	Log          *logger.Logger
	AbandonAfter time.Duration
	FrontendURL  string
	BatchSize    int

	now func() time.Time
}

type ReconcileStats struct {
	Checked   int
	Resolved  int
	Abandoned int
	Notified  int
}

func (j *ReconcileJob) clock() time.Time {
	if j.now != nil {
		return j.now()
	}
	return time.Now()
}

func (j *ReconcileJob) batch() int {
	if j.BatchSize > 0 {
		return j.BatchSize
	}
	return 50
}

// Run processes one batch of pending attempts, then the confirmation email queue
func (j *ReconcileJob) Run(ctx context.Context) ReconcileStats {
	var stats ReconcileStats

	pending, err := j.Ledger.ListPending(ctx, j.batch())
	if err != nil {
		j.Log.Error("reconcile: failed to list pending attempts", "error", err)
		return stats
	}

	for _, attempt := range pending {
		stats.Checked++
		switch j.recheck(ctx, attempt) {
		case outcomeResolved:
			stats.Resolved++
		case outcomeAbandoned:
			stats.Abandoned++
		}
	}

	stats.Notified = j.notify(ctx)
	if stats.Checked > 0 || stats.Notified > 0 {
		j.Log.Info("reconcile: batch done", "checked", stats.Checked, "resolved", stats.Resolved,
			"abandoned", stats.Abandoned, "notified", stats.Notified)
	}
	return stats
}

type outcome int

const (
	outcomeUnchanged outcome = iota
	outcomeResolved
	outcomeAbandoned
)

func (j *ReconcileJob) recheck(ctx context.Context, attempt models.CheckoutAttempt) outcome {
	var (
		tx  *models.Transaction
		err error
	)
	if attempt.TransactionID != "" {
		tx, err = j.Transactions.VerifyTransaction(ctx, attempt.TransactionID)
	} else {
		tx, err = j.Transactions.FindTransactionByReference(ctx, attempt.Reference)
	}

	if err != nil {
		if errors.Is(err, backend.ErrNotFound) && attempt.TransactionID == "" &&
			j.clock().Sub(attempt.CreatedAt) > j.AbandonAfter {
			if err := j.Ledger.MarkAbandoned(ctx, attempt.ID); err != nil {
				j.Log.Error("reconcile: failed to abandon attempt", "reference", attempt.Reference, "error", err)
				return outcomeUnchanged
			}
			j.Log.Warn("reconcile: attempt abandoned", "reference", attempt.Reference)
			return outcomeAbandoned
		}
		if !errors.Is(err, backend.ErrNotFound) {
			j.Log.Warn("reconcile: lookup failed", "reference", attempt.Reference, "error", err)
		}
		j.touch(ctx, attempt)
		return outcomeUnchanged
	}

	status, known := models.ParseTransactionStatus(string(tx.Status))
	if !known {
		j.Log.Warn("reconcile: unknown transaction status", "reference", attempt.Reference, "status", tx.Status)
		j.touch(ctx, attempt)
		return outcomeUnchanged
	}
	tx.Status = status
	tx.Reference = attempt.Reference

	updated, changed, err := j.Ledger.ApplyVerified(ctx, tx)
	if err != nil {
		j.Log.Error("reconcile: failed to store verified transaction", "reference", attempt.Reference, "error", err)
		return outcomeUnchanged
	}
	if updated != nil && changed && status.IsTerminal() {
		j.Log.Info("reconcile: attempt resolved", "reference", attempt.Reference, "status", status)
		return outcomeResolved
	}
	return outcomeUnchanged
}

func (j *ReconcileJob) touch(ctx context.Context, attempt models.CheckoutAttempt) {
	if err := j.Ledger.Touch(ctx, attempt.ID); err != nil {
		j.Log.Error("reconcile: failed to touch attempt", "reference", attempt.Reference, "error", err)
	}
}

func (j *ReconcileJob) notify(ctx context.Context) int {
	if j.Mailer == nil {
		return 0
	}
	attempts, err := j.Ledger.ListUnnotified(ctx, j.batch())
	if err != nil {
		j.Log.Error("reconcile: failed to list unnotified attempts", "error", err)
		return 0
	}

	sent := 0
	for _, attempt := range attempts {
		if attempt.Email == "" {
			continue
		}
		subject, body := PurchaseConfirmationEmail("", j.productLabel(ctx, attempt), attempt.Reference, j.FrontendURL)
		if err := j.Mailer.Send(ctx, attempt.Email, "", subject, body); err != nil {
			j.Log.Error("reconcile: confirmation email failed", "reference", attempt.Reference, "error", err)
			continue
		}
		if err := j.Ledger.MarkNotified(ctx, attempt.ID); err != nil {
			j.Log.Error("reconcile: failed to mark notified", "reference", attempt.Reference, "error", err)
			continue
		}
		sent++
	}
	return sent
}

func (j *ReconcileJob) productLabel(ctx context.Context, attempt models.CheckoutAttempt) string {
	if j.Courses != nil && attempt.ProductType == models.ProductTypeCourse {
		if c, err := j.Courses.GetCourse(ctx, attempt.ProductID); err == nil && c.Title != "" {
			return c.Title
		}
	}
	return "tu curso"
}

// InitializeReconcileScheduler registers the job on its own cron; overlapping runs are skipped
func InitializeReconcileScheduler(job *ReconcileJob, schedule string, timeout time.Duration) (*cron.Cron, error) {
	job.Log.Info("reconcile: initializing scheduler", "schedule", schedule)

	c := cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger)))
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		job.Run(ctx)
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	return c, nil
}
