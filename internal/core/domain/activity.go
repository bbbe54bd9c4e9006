package domain

import "time"

// ActivityKind names the ledger mutation an Activity records.
type ActivityKind string

const (
	ActivityClientCreated  ActivityKind = "client_created"
	ActivityClientMerged   ActivityKind = "client_merged"
	ActivityTaskReconciled ActivityKind = "task_reconciled"
)

// Activity is one entry in a client's billing trail.
type Activity struct {
	ClientID   string       `json:"clientID" bson:"clientID"`
	Kind       ActivityKind `json:"kind" bson:"kind"`
	Amount     int          `json:"amount" bson:"amount"`
	TotalAfter int          `json:"totalAfter" bson:"totalAfter"`
	Actor      string       `json:"actor,omitempty" bson:"actor,omitempty"`
	At         time.Time    `json:"at" bson:"at"`
}
