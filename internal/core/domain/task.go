package domain

// Known task statuses. Status is free-form; these are the values the
// frontend and the efficiency report care about.
const (
	TaskStatusPending       = "Pending"
	TaskStatusAssigned      = "Assigned"
	TaskStatusCompleted     = "Completed"
	TaskStatusCallCompleted = "Call Completed"
)

// CompletedStatuses are counted as done by the efficiency report.
var CompletedStatuses = []string{TaskStatusCompleted, TaskStatusCallCompleted}

// Task is a unit of work handed to a team for one client. ClientID is a
// data-level reference; the client may no longer exist.
type Task struct {
	ID               string
	Team             string
	AssignedTo       string
	ClientID         string
	Client           string
	ActivityCode     string
	DeliveryDate     string
	Status           string
	Remarks          string
	SubmissionLink   string
	Count            map[string]int
	Minutes          map[string]int
	Amount           map[string]int
	Description      string
	CallsDescription string
}

// AmountTotal sums every value in the task's amount breakdown.
func (t *Task) AmountTotal() int {
	total := 0
	for _, v := range t.Amount {
		total += v
	}
	return total
}

// TaskPatch carries the mutable task fields. Nil fields are left untouched.
type TaskPatch struct {
	AssignedTo     *string
	Status         *string
	Remarks        *string
	SubmissionLink *string
}

// Empty reports whether the patch changes nothing.
func (p TaskPatch) Empty() bool {
	return p.AssignedTo == nil && p.Status == nil && p.Remarks == nil && p.SubmissionLink == nil
}

// TaskFilter narrows task listings. Empty fields do not filter.
type TaskFilter struct {
	Team       string
	AssignedTo string
}
