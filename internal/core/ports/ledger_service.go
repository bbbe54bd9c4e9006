package ports

import (
	"context"

	"github.com/reachskyline/crm-api/internal/core/domain"
)

// ClientSubmission is a client record as entered on the dashboard.
type ClientSubmission struct {
	ClientName   string
	Industry     string
	DeliveryDate string
	Phone        string
	Email        string
	// Services holds the submitted slots keyed by catalogue name. Names
	// outside the catalogue are ignored.
	Services map[string]domain.SlotSubmission
	// Actor is the empID of the submitting employee, recorded in the trail.
	Actor string
}

// SubmitResult is returned by Ledger.SubmitClient.
type SubmitResult struct {
	Client *domain.Client
	// Merged is true when the submission was folded into an existing client.
	Merged bool
}

// Ledger owns every mutation that keeps a client's billing total in step
// with its deliverables and tasks.
type Ledger interface {
	SubmitClient(ctx context.Context, in ClientSubmission) (*SubmitResult, error)
	// DeleteTask deletes a task and reverses its amount on the owning client.
	DeleteTask(ctx context.Context, taskID, actor string) (*DeleteTaskResult, error)
}

// ReconcileOutcome says what happened to the client total on task deletion.
type ReconcileOutcome string

const (
	ReconcileApplied ReconcileOutcome = "applied"
	// ReconcileSkipped means the task's client no longer exists.
	ReconcileSkipped ReconcileOutcome = "skipped"
)

// DeleteTaskResult is returned by Ledger.DeleteTask.
type DeleteTaskResult struct {
	Outcome     ReconcileOutcome
	ClientID    string
	Amount      int
	TotalAmount int
}

// ActivityRecorder receives ledger activity for asynchronous persistence.
type ActivityRecorder interface {
	Record(a domain.Activity)
}
